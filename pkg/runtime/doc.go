// Package runtime is the reconciliation engine: it walks an old instance
// tree and a new virtual node tree together, decides mount/update/unmount
// per node, manages per-component hook state across renders, and
// schedules effect execution and batched re-renders.
//
// All state lives on an explicit Session rather than package globals, so
// tests and servers can run any number of isolated sessions. A Session is
// logically single-threaded: every external entry point runs as one turn
// on the session's cooperative task queue, and any number of state
// updates within a turn coalesce into a single render on a subsequent
// turn. Effects never run inside the render that scheduled them; they are
// flushed on a later turn, after the target has been committed.
package runtime
