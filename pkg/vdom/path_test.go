package vdom

import "testing"

func TestChildPathKeyed(t *testing.T) {
	child := H("li", Props{"key": "row-3"})
	siblings := []*VNode{child}
	if got := ChildPath("root.i0", child, 5, siblings); got != "root.i0.krow-3" {
		t.Errorf("got %q", got)
	}
}

func TestChildPathIndexed(t *testing.T) {
	child := Text("x")
	if got := ChildPath("root", child, 2, []*VNode{nil, nil, child}); got != "root.i2" {
		t.Errorf("got %q", got)
	}
}

func TestChildPathComponentOrdinals(t *testing.T) {
	comp := func(ctx RenderCtx, props Props) *VNode { return nil }
	other := func(ctx RenderCtx, props Props) *VNode { return nil }

	a := H(comp, nil)
	b := H(other, nil)
	c := H(comp, nil)
	siblings := []*VNode{a, b, c}

	pathA := ChildPath("root", a, 0, siblings)
	pathB := ChildPath("root", b, 1, siblings)
	pathC := ChildPath("root", c, 2, siblings)

	// Ordinals count same-function siblings only, so each component
	// keeps its identity when unrelated siblings appear.
	if pathA == pathC {
		t.Errorf("repeated component must get distinct ordinals: %q vs %q", pathA, pathC)
	}
	if pathA == pathB {
		t.Errorf("different components must get distinct paths: %q vs %q", pathA, pathB)
	}
	wantSuffix := "_1"
	if len(pathC) < len(wantSuffix) || pathC[len(pathC)-len(wantSuffix):] != wantSuffix {
		t.Errorf("second occurrence = %q, want suffix %q", pathC, wantSuffix)
	}
}

func TestChildPathKeyedComponentPrefersKey(t *testing.T) {
	comp := func(ctx RenderCtx, props Props) *VNode { return nil }
	child := H(comp, Props{"key": "tab-a"})
	if got := ChildPath("root", child, 0, []*VNode{child}); got != "root.ktab-a" {
		t.Errorf("got %q", got)
	}
}

func TestSameComponent(t *testing.T) {
	a := func(ctx RenderCtx, props Props) *VNode { return nil }
	b := func(ctx RenderCtx, props Props) *VNode { return nil }

	if !SameComponent(ComponentFunc(a), ComponentFunc(a)) {
		t.Error("same function must compare equal")
	}
	if SameComponent(ComponentFunc(a), ComponentFunc(b)) {
		t.Error("different functions must compare unequal")
	}
	if SameComponent(nil, ComponentFunc(a)) {
		t.Error("nil never matches a function")
	}
}
