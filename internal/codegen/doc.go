// Package codegen runs one generation: it groups the activation sequence by
// step, resolves each activation against the mapping tables, compiles any
// custom conditions, and renders the requested target artifacts.
//
// A run is a synchronous single-pass batch transform. Every stage is a pure
// function over the request plus the read-only tables, so concurrent runs
// are safe as long as each gets its own request and output destination.
package codegen
