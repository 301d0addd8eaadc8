// Package server exposes the generator over a small JSON HTTP API: mapping
// table inspection and update, phase listing, generation preview, and
// generation itself. It is an internal commissioning tool surface; there is
// no authentication layer.
package server
