package runtime

import (
	"reflect"

	"github.com/loom-ui/loom/pkg/vdom"
)

// Cleanup is returned by an effect to undo it. It runs before the
// effect's next execution and when the component unmounts.
type Cleanup func()

// UseState registers a state cell at the component's next hook slot and
// returns its current value together with a setter. The initial value is
// used only on the slot's first occupancy; later renders return whatever
// the cell holds.
func UseState[T any](rc vdom.RenderCtx, initial T) (T, *Setter[T]) {
	return useState(rc, func() T { return initial })
}

// UseStateLazy is UseState with a producer for expensive initial values.
// The producer runs only when the slot is first occupied.
func UseStateLazy[T any](rc vdom.RenderCtx, initial func() T) (T, *Setter[T]) {
	return useState(rc, initial)
}

func useState[T any](rc vdom.RenderCtx, initial func() T) (T, *Setter[T]) {
	c := hookCtx(rc)
	st := c.session.store
	idx := st.nextSlot(c.path)
	slot, _ := st.slot(c.path, idx, func() any {
		return &stateCell{value: initial()}
	})
	cell := slot.(*stateCell)

	st.mu.Lock()
	value := cell.value.(T)
	st.mu.Unlock()
	return value, &Setter[T]{session: c.session, cell: cell}
}

// Setter updates one state cell. Set and Update write the cell
// immediately and request a render; a value equal to the current one is
// a no-op and schedules nothing. Any number of writes within a turn
// coalesce into a single render on a subsequent turn.
type Setter[T any] struct {
	session *Session
	cell    *stateCell
}

// Set replaces the cell's value.
func (s *Setter[T]) Set(value T) {
	s.apply(func(T) T { return value })
}

// Update computes the next value from the current one. Because the cell
// is written immediately, chained Updates within a turn each observe the
// previous one's result.
func (s *Setter[T]) Update(fn func(T) T) {
	s.apply(fn)
}

func (s *Setter[T]) apply(fn func(T) T) {
	st := s.session.store
	st.mu.Lock()
	current := s.cell.value.(T)
	next := fn(current)
	changed := !equals(current, next)
	if changed {
		s.cell.value = next
	}
	st.mu.Unlock()
	if changed {
		s.session.enqueueRender()
	}
}

// UseEffect registers a side effect. Scheduling follows the dependency
// list: a nil deps slice runs the effect after every render, a non-nil
// slice runs it when any entry changed shallowly since the last render,
// and an empty non-nil slice runs it on mount only. Effects run on a
// turn after the render that scheduled them, in registration order, each
// preceded by its previous cleanup.
func UseEffect(rc vdom.RenderCtx, fn func() Cleanup, deps []any) {
	c := hookCtx(rc)
	st := c.session.store
	idx := st.nextSlot(c.path)
	slot, first := st.slot(c.path, idx, func() any { return &effectSlot{} })
	es := slot.(*effectSlot)

	st.mu.Lock()
	prevDeps, prevHas := es.deps, es.hasDeps
	es.fn = fn
	es.deps = deps
	es.hasDeps = deps != nil
	run := first || deps == nil || !prevHas || !depsEqual(prevDeps, deps)
	st.mu.Unlock()

	if run {
		st.scheduleEffect(c.path, idx, es)
	}
}

// UseMemo caches a computed value across renders. The compute function
// reruns when any dependency changed shallowly; a nil deps slice
// recomputes every render.
func UseMemo[T any](rc vdom.RenderCtx, compute func() T, deps []any) T {
	c := hookCtx(rc)
	st := c.session.store
	idx := st.nextSlot(c.path)
	slot, _ := st.slot(c.path, idx, func() any { return &memoSlot{} })
	ms := slot.(*memoSlot)

	st.mu.Lock()
	stale := !ms.valid || deps == nil || !ms.hasDeps || !depsEqual(ms.deps, deps)
	if !stale {
		value := ms.value.(T)
		st.mu.Unlock()
		return value
	}
	st.mu.Unlock()

	value := compute()
	st.mu.Lock()
	ms.value = value
	ms.deps = deps
	ms.hasDeps = deps != nil
	ms.valid = true
	st.mu.Unlock()
	return value
}

// UseCallback memoizes a function value on its dependency list, so child
// props keep referential identity across renders.
func UseCallback[F any](rc vdom.RenderCtx, fn F, deps []any) F {
	return UseMemo(rc, func() F { return fn }, deps)
}

// Ref is a mutable box that persists across renders without triggering
// them.
type Ref[T any] struct {
	Current T
}

// UseRef returns the component's ref box at the next hook slot, creating
// it with initial on first occupancy.
func UseRef[T any](rc vdom.RenderCtx, initial T) *Ref[T] {
	c := hookCtx(rc)
	st := c.session.store
	idx := st.nextSlot(c.path)
	slot, _ := st.slot(c.path, idx, func() any { return &Ref[T]{Current: initial} })
	return slot.(*Ref[T])
}

// depsEqual compares two dependency lists shallowly. Lists of different
// lengths never compare equal.
func depsEqual(prev, next []any) bool {
	if len(prev) != len(next) {
		return false
	}
	for i := range next {
		if !vdom.PropsEqual(prev[i], next[i]) {
			return false
		}
	}
	return true
}

// equals compares two state values, fast-pathing comparable kinds before
// falling back to deep equality.
func equals[T any](a, b T) bool {
	switch av := any(a).(type) {
	case string:
		return av == any(b).(string)
	case int:
		return av == any(b).(int)
	case int64:
		return av == any(b).(int64)
	case float64:
		return av == any(b).(float64)
	case bool:
		return av == any(b).(bool)
	case nil:
		return any(b) == nil
	}
	return reflect.DeepEqual(a, b)
}
