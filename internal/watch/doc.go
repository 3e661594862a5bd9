// Package watch keeps a pcbworld.World in sync with the board open in KiCad.
//
// Ownership boundary:
// - the reconnect loop and its state machine
// - publishing board gauges and refresh counters
// - the HTTP status surface (health, status, metrics)
//
// The loop is the only place in the module that retries; kicad.Client calls
// stay single-shot.
package watch
