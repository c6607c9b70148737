// Package textutil provides filename and object prefix sanitization shared by the
// label generator and the delivery sinks.
package textutil
