// Package store persists shipment records in SQLite.
//
// The Store manages the database connection, schema initialization, busy
// retries, and every ledger operation: single and batch inserts, filtered
// listing with free-text search, patching many records at once, status
// updates by house bill prefix, and deletions. Records are keyed by UUID and
// listed newest first.
//
// When you add a column, update schema.sql, the column list in helpers.go,
// and bump schemaVersion.
package store
