// Package protocol owns the KiCad API envelope contract.
//
// Ownership boundary:
// - request/response envelope encode and decode
// - polymorphic Any payload pack/unpack
// - envelope-level error classification
//
// Field primitives live in protocol/wire; message records in kiapi.
// Token continuity lives in protocol/session.
package protocol
