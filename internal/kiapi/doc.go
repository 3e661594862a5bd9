// Package kiapi holds the KiCad IPC API wire messages used by the client.
//
// Ownership boundary:
// - message records for the kiapi.common and kiapi.board schema packages
//
// - protobuf wire encode/decode for those records
//
// - enum symbolic names
//
// The records mirror the upstream .proto schema by field number. Only the
// fields the client reads or writes are modelled; unknown fields are skipped
// on decode and are not re-emitted.
package kiapi
