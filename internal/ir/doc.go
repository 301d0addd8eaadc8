// Package ir provides the canonical in-memory representation shared by every
// stage of the phasegen pipeline.
//
// This package contains type definitions and pure constructors only. All other
// internal packages import ir; ir imports nothing internal. This keeps the
// representation the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - An Activation with an empty Tag is a placeholder row: the step exists
//     but emits nothing beyond its heading.
//   - A Clause is one level of OR-of-AND, never deeper. The condition grammar
//     is frozen; there is no recursive expression tree here on purpose.
//   - Step names are NFC-normalized when grouped so that emitted banners and
//     comment blocks are byte-stable across input encodings.
package ir
