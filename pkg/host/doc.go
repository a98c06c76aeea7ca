// Package host defines the boundary between the rendering runtime and a
// concrete rendering target. The runtime creates, mutates, and destroys
// target handles exclusively through the Surface interface; it never
// inspects them.
//
// Two implementations ship with the module: pkg/memdom (an in-memory
// target used by tests and headless rendering) and pkg/remote (a target
// that streams mutations to a thin browser client over a WebSocket).
package host
