package vdom

import (
	"reflect"
	"strings"
)

// PropsEqual compares two prop values for equality. Scalars compare by
// value, functions by code pointer, everything else falls back to
// reflect.DeepEqual. Note that closures built from the same literal share
// a code pointer regardless of captured state.
func PropsEqual(a, b any) bool {
	// Fast path for common types
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return av == bv
		}
		return false
	case int:
		if bv, ok := b.(int); ok {
			return av == bv
		}
		return false
	case int64:
		if bv, ok := b.(int64); ok {
			return av == bv
		}
		return false
	case float64:
		if bv, ok := b.(float64); ok {
			return av == bv
		}
		return false
	case bool:
		if bv, ok := b.(bool); ok {
			return av == bv
		}
		return false
	case nil:
		return b == nil
	}

	ra := reflect.ValueOf(a)
	if ra.Kind() == reflect.Func {
		rb := reflect.ValueOf(b)
		return rb.Kind() == reflect.Func && ra.Pointer() == rb.Pointer()
	}

	// Fallback to reflect for complex types
	return reflect.DeepEqual(a, b)
}

// IsEventProp returns true if the prop key names an event handler
// (an "on" prefix, e.g. "onclick"). Case-insensitive to catch onClick,
// ONCLICK, OnInput, etc.
func IsEventProp(key string) bool {
	return len(key) > 2 && strings.EqualFold(key[:2], "on")
}
