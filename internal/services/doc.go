// Package services defines shared utilities consumed by the ledger store,
// the label pipeline, and the HTTP API.
//
// Key responsibilities:
//   - Context helpers that stamp shipment record IDs, stage names, and
//     correlation identifiers for logging and tracing.
//   - Structured error markers plus the Wrap helper so callers can classify
//     failures (bad input vs missing record vs internal fault) without string
//     matching.
//
// Use these helpers when wiring new components so error handling and
// observability stay uniform across the CLI and daemon.
package services
