// Package api exposes shipment and label operations as transport-neutral
// DTOs shared by the HTTP server and the CLI.
//
// Payloads use camelCase JSON field names. ShipmentService composes the
// SQLite store, the spreadsheet importer and the label generator so both
// front ends apply the same validation and error classification.
package api
