// Package barcode derives label barcode payloads and renders the Code 128 and
// QR raster images placed on shipment label pages.
//
// Symbol encoding is delegated to boombuler/barcode and skip2/go-qrcode; this
// package owns the payload rule, the fixed rendering options and the
// EncodingError type the label assembler uses to degrade a page instead of
// failing a batch.
package barcode
