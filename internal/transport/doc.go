// Package transport owns the byte-level link to a KiCad instance.
//
// Ownership boundary:
// - one synchronous request/reply socket per connection
// - dial/send/recv failure classification
//
// Messages are opaque byte buffers here; envelopes are encoded by protocol.
package transport
