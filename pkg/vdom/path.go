package vdom

import (
	"reflect"
	"runtime"
	"strconv"
	"strings"
)

// ChildPath builds the stable identity path for a child at a given render
// position. Paths are the join key between renders: two nodes at the same
// path (with matching type and key) across two passes are treated as the
// same instance to update rather than remount.
//
// Keyed identity is strongest and user-controlled. Unkeyed components get
// a type-qualified occurrence counter so repeated siblings of the same
// component stay distinct as long as their relative order holds. Everything
// else falls back to the positional index, accepting that reordering
// unkeyed primitive siblings remounts rather than moves.
func ChildPath(parent string, child *VNode, index int, siblings []*VNode) string {
	if child != nil && child.Key != "" {
		return parent + ".k" + child.Key
	}
	if child != nil && child.Kind == KindComponent {
		n := 0
		for i := 0; i < index && i < len(siblings); i++ {
			s := siblings[i]
			if s != nil && s.Kind == KindComponent && s.Key == "" && SameComponent(s.Comp, child.Comp) {
				n++
			}
		}
		return parent + ".c" + ComponentName(child.Comp) + "_" + strconv.Itoa(n)
	}
	return parent + ".i" + strconv.Itoa(index)
}

// SameComponent reports whether two component functions are the same
// function reference.
func SameComponent(a, b ComponentFunc) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

// ComponentName returns the base name of a component's render function,
// used in identity paths and diagnostics. Anonymous functions get their
// compiler-assigned name (funcN); a nil component yields "component".
func ComponentName(fn ComponentFunc) string {
	if fn == nil {
		return "component"
	}
	f := runtime.FuncForPC(reflect.ValueOf(fn).Pointer())
	if f == nil {
		return "component"
	}
	name := f.Name()
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, "-fm")
	if name == "" {
		return "component"
	}
	return name
}
