package runtime

import (
	"sort"
	"sync"
)

// hookStore holds all hook state for a session, addressed by component
// path and slot index. Slot order within a path is fixed by hook call
// order, which components must keep stable across renders.
type hookStore struct {
	mu      sync.Mutex
	slots   map[string][]any
	cursor  map[string]int
	visited map[string]bool
	stack   []string
	pending []effectRef
}

// effectRef addresses one effect slot queued for execution.
type effectRef struct {
	path  string
	index int
}

// stateCell is a UseState slot.
type stateCell struct {
	value any
}

// effectSlot is a UseEffect slot: the latest callback, the dependency
// list from the last render (hasDeps false means run every render), the
// cleanup returned by the last run, and whether a run is already queued.
type effectSlot struct {
	fn      func() Cleanup
	deps    []any
	hasDeps bool
	cleanup Cleanup
	pending bool
}

// memoSlot is a UseMemo slot caching a value keyed by its dependencies.
type memoSlot struct {
	value   any
	deps    []any
	hasDeps bool
	valid   bool
}

func newHookStore() *hookStore {
	return &hookStore{
		slots:   make(map[string][]any),
		cursor:  make(map[string]int),
		visited: make(map[string]bool),
	}
}

// beginPass starts a render pass: the visited set resets so the pass can
// distinguish components re-rendered from components gone.
func (st *hookStore) beginPass() {
	st.mu.Lock()
	st.visited = make(map[string]bool)
	st.mu.Unlock()
}

// enter marks path as the active component: its cursor rewinds to zero,
// the path is marked visited, and the previous cursor is returned so
// nested renders of the same path restore correctly.
func (st *hookStore) enter(path string) int {
	st.mu.Lock()
	defer st.mu.Unlock()
	saved := st.cursor[path]
	st.cursor[path] = 0
	st.visited[path] = true
	st.stack = append(st.stack, path)
	return saved
}

// exit pops the active component and restores the saved cursor.
func (st *hookStore) exit(path string, saved int) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.stack = st.stack[:len(st.stack)-1]
	st.cursor[path] = saved
}

// nextSlot claims the next slot index for path and advances the cursor.
func (st *hookStore) nextSlot(path string) int {
	st.mu.Lock()
	defer st.mu.Unlock()
	idx := st.cursor[path]
	st.cursor[path] = idx + 1
	return idx
}

// slot returns the hook slot at idx for path, creating it with create on
// first occupancy. Reports whether the slot was just created.
func (st *hookStore) slot(path string, idx int, create func() any) (any, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	slots := st.slots[path]
	if idx < len(slots) {
		return slots[idx], false
	}
	// Stable hook order means slots always append at the cursor.
	v := create()
	st.slots[path] = append(slots, v)
	return v, true
}

// scheduleEffect queues one effect run, deduplicating per slot.
func (st *hookStore) scheduleEffect(path string, idx int, slot *effectSlot) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if slot.pending {
		return
	}
	slot.pending = true
	st.pending = append(st.pending, effectRef{path: path, index: idx})
}

// takePending drains the queued effect refs.
func (st *hookStore) takePending() []effectRef {
	st.mu.Lock()
	defer st.mu.Unlock()
	refs := st.pending
	st.pending = nil
	return refs
}

// pendingCount returns how many effect runs are queued.
func (st *hookStore) pendingCount() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.pending)
}

// effectAt returns the effect slot at (path, idx), or nil if the path was
// collected or the slot is not an effect.
func (st *hookStore) effectAt(path string, idx int) *effectSlot {
	st.mu.Lock()
	defer st.mu.Unlock()
	slots := st.slots[path]
	if idx >= len(slots) {
		return nil
	}
	es, _ := slots[idx].(*effectSlot)
	return es
}

// pathCount returns how many component paths currently hold hook state.
func (st *hookStore) pathCount() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.slots)
}

// collectGarbage drops hook state for every path not visited this pass
// and returns the stored effect cleanups of the collected paths, in path
// order then slot order. The caller runs them after the store unlocks.
func (st *hookStore) collectGarbage() (collected int, cleanups []Cleanup) {
	st.mu.Lock()
	var dead []string
	for path := range st.slots {
		if !st.visited[path] {
			dead = append(dead, path)
		}
	}
	sort.Strings(dead)
	for _, path := range dead {
		for _, slot := range st.slots[path] {
			if es, ok := slot.(*effectSlot); ok && es.cleanup != nil {
				cleanups = append(cleanups, es.cleanup)
				es.cleanup = nil
			}
		}
		delete(st.slots, path)
		delete(st.cursor, path)
	}
	st.mu.Unlock()
	return len(dead), cleanups
}

// reset discards all hook state and pending effect runs, returning every
// stored effect cleanup in path order then slot order.
func (st *hookStore) reset() []Cleanup {
	st.mu.Lock()
	paths := make([]string, 0, len(st.slots))
	for path := range st.slots {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	var cleanups []Cleanup
	for _, path := range paths {
		for _, slot := range st.slots[path] {
			if es, ok := slot.(*effectSlot); ok && es.cleanup != nil {
				cleanups = append(cleanups, es.cleanup)
				es.cleanup = nil
			}
		}
	}
	st.slots = make(map[string][]any)
	st.cursor = make(map[string]int)
	st.visited = make(map[string]bool)
	st.stack = nil
	st.pending = nil
	st.mu.Unlock()
	return cleanups
}
