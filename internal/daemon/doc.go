// Package daemon runs the long-lived ledgerd process.
//
// It owns the single-instance flock, the gin HTTP server that exposes the
// shipment ledger and label generation, and the middleware every request
// passes through (request IDs, panic recovery, access logging). Handlers stay
// thin: they decode requests, call api.ShipmentService and map errors to
// status codes through services.HTTPStatus.
package daemon
