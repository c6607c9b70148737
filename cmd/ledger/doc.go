// Command ledger manages the shipment ledger and prints shipment labels.
//
// Commands open the SQLite store directly, so they work whether or not ledgerd
// is running. Use --json on read commands for machine readable output.
package main
