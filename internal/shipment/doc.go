// Package shipment defines the logistics record model shared by the store,
// the spreadsheet importer, the HTTP API, and the label renderer.
//
// A Record is one house bill: shipper and consignee details, cargo figures,
// and the lifecycle Status. Numeric cargo fields are pointers so a value that
// was never captured stays distinguishable from zero; Text renders any field
// the way it appears on a printed label.
package shipment
