// Package pcbworld owns the in-memory model of one loaded board.
//
// Ownership boundary:
// - entity storage for decoded footprints and mounting holes
// - classification by reference designator and footprint name
// - attribute queries and board statistics
//
// The world is filled from kicad.FootprintData; it never talks to KiCad.
package pcbworld
