// Package redo defines the operation-context capability the block package
// consumes to schedule persistent updates: append_set and append_bitwise,
// plus a transient entry kind for writes (like the huge-block FOOTER)
// that must participate in a commit but never appear in the on-media redo
// log. The log-replay engine itself is an external collaborator; this
// package only models the shape callers bind mutations against.
//
// Log is a minimal, in-process implementation of Context good enough to
// drive tests and the CLI tools: it records entries, then Commit applies
// them to a backing buffer in order and drains persistence, mirroring the
// ordered-flush discipline a transaction manager would enforce (flush
// data, then header, then optionally fsync).
package redo
