// Package loom provides the public API for the loom UI runtime.
//
// This is the recommended import for most applications:
//
//	import "github.com/loom-ui/loom"
//
// Usage:
//
//	func Counter(ctx loom.Ctx, props loom.Props) *loom.VNode {
//		n, setN := loom.UseState(ctx, 0)
//		return loom.Button(
//			loom.OnClick(func() { setN.Update(func(n int) int { return n + 1 }) }),
//			loom.Textf("%d", n),
//		)
//	}
//
//	session := loom.NewSession(memdom.New())
//	session.Mount(loom.H(Counter, nil), container)
package loom

import (
	"github.com/loom-ui/loom/pkg/host"
	"github.com/loom-ui/loom/pkg/runtime"
	"github.com/loom-ui/loom/pkg/vdom"
)

// Virtual tree types.
type (
	// VNode is an immutable virtual tree node.
	VNode = vdom.VNode
	// Props holds attributes and event handlers.
	Props = vdom.Props
	// Attr is one attribute for an element helper.
	Attr = vdom.Attr
	// Ctx is the render context passed to components.
	Ctx = vdom.RenderCtx
	// ComponentFunc renders one child node from props.
	ComponentFunc = vdom.ComponentFunc
	// Event is a native event delivered to handlers.
	Event = host.Event
)

// Runtime types.
type (
	// Session owns one mounted tree and its task queue.
	Session = runtime.Session
	// Cleanup undoes an effect.
	Cleanup = runtime.Cleanup
)

// Construction.
var (
	H         = vdom.H
	Text      = vdom.Text
	Textf     = vdom.Textf
	Fragment  = vdom.Fragment
	If        = vdom.If
	IfElse    = vdom.IfElse
	When      = vdom.When
	Unless    = vdom.Unless
	Key       = vdom.Key
	Normalize = vdom.Normalize
)

// Common elements; the full set lives in pkg/vdom.
var (
	El     = vdom.El
	Div    = vdom.Div
	Span   = vdom.Span
	P      = vdom.P
	Button = vdom.Button
	Input  = vdom.Input
	Ul     = vdom.Ul
	Li     = vdom.Li
)

// Common attributes and events.
var (
	Class   = vdom.Class
	ID      = vdom.ID
	Style   = vdom.Style
	Value   = vdom.Value
	OnClick = vdom.OnClick
	OnInput = vdom.OnInput
	On      = vdom.On
)

// Session construction.
var (
	NewSession = runtime.NewSession
	WithLogger = runtime.WithLogger
	WithOnIdle = runtime.WithOnIdle
)

// UseState registers a state cell on the component's next hook slot.
func UseState[T any](ctx Ctx, initial T) (T, *runtime.Setter[T]) {
	return runtime.UseState(ctx, initial)
}

// UseEffect registers a side effect scheduled by its dependency list.
func UseEffect(ctx Ctx, fn func() Cleanup, deps []any) {
	runtime.UseEffect(ctx, fn, deps)
}

// UseMemo caches a computed value across renders.
func UseMemo[T any](ctx Ctx, compute func() T, deps []any) T {
	return runtime.UseMemo(ctx, compute, deps)
}

// UseRef returns a mutable box persisted across renders.
func UseRef[T any](ctx Ctx, initial T) *runtime.Ref[T] {
	return runtime.UseRef(ctx, initial)
}

// Range maps a slice to nodes.
func Range[T any](items []T, fn func(item T, index int) *VNode) []*VNode {
	return vdom.Range(items, fn)
}
