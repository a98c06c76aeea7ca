// Package errors provides structured, coded errors for the runtime and
// its serving layers. Every user-facing failure mode has a stable code
// (E001, E100, ...) registered with a message and, where useful, a fix
// suggestion.
package errors
