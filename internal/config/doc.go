// Package config owns the immutable mapping tables that drive activation
// resolution: device-class names, tag suffix rules, and qualifier names.
//
// The tables persist as a JSON document with three top-level keys
// (type_mapping, suffix_mapping, pid_type_mapping), keyed by decimal code
// strings. A suffix_mapping value is either a plain string or a two-key
// variant object (pid_type_4/pid_type_other or pid_type_2/pid_type_other)
// for the qualifier-dependent device classes. That document shape is shared
// with the other tooling that edits it and must not change.
//
// Tables are loaded once per run and passed by value into the core; nothing
// downstream mutates them.
package config
