// Package core is the orchestration layer.  It composes the listener,
// the per-connection session and the command dispatcher into the
// pairing window, and provides a builder that wires all of it from a
// Config.
//
// Architecture layers (bottom → top):
//
//	decoder, runner  →  capability  →  session  →  core  →  cmd (CLI)
//	                       transport  ──────────↗
package core
