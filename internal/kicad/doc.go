// Package kicad is the request/response client for a running KiCad.
//
// Ownership boundary:
// - connection establishment and the version handshake
// - one method per remote operation, each a single synchronous exchange
// - reply status classification into typed errors
// - footprint decoding into flat records with millimeter units
//
// A Client owns one transport and is not safe for concurrent use. Nothing in
// this package retries; callers that want a retry policy wrap whole calls.
package kicad
