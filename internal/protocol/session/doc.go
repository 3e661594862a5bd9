// Package session owns client-side KiCad API session state.
//
// Ownership boundary:
// - client identity and request header construction
// - kicad_token capture and continuity
// - retry/backoff primitives for callers that reconnect
//
// The request/response path itself never retries; backoff is consumed by
// long-running callers such as the watch loop.
package session
