// Package labels turns shipment records into a multi-page label document.
//
// Layout draws one record onto an abstract Canvas using an explicit Geometry.
// Assembler synthesizes barcode and QR artwork (optionally in parallel),
// draws one page per record in input order and serializes the result into
// an Artifact. Generator is the entry point used by the CLI and the HTTP API:
// it rejects empty selections, assembles, and hands the artifact to a Sink.
//
// Barcode or QR failures degrade a page to text only and are reported through
// PageOutcome; canvas and serialization failures abort the whole document with
// a SerializationError.
package labels
