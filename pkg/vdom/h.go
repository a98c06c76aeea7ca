package vdom

import (
	"fmt"
	"strconv"
)

// fragmentType is the sentinel passed to H for fragment nodes.
type fragmentType struct{}

// FragmentType is the type marker for fragment nodes, for use as the
// first argument of H. Code written by hand usually prefers Fragment.
var FragmentType fragmentType

// H is the generic construction entry point (the call target of a
// JSX-style transform). typ is a tag name, FragmentType, or a component
// function. A "key" entry in props is stripped into the node's Key.
// Children are flattened to arbitrary depth, normalized, and nil-filtered.
//
// H returns nil for an unsupported type, which renders nothing.
func H(typ any, props Props, children ...any) *VNode {
	node := &VNode{Props: Props{}}

	switch t := typ.(type) {
	case string:
		node.Kind = KindElement
		node.Tag = t
	case fragmentType:
		node.Kind = KindFragment
	case ComponentFunc:
		node.Kind = KindComponent
		node.Comp = t
	case func(RenderCtx, Props) *VNode:
		node.Kind = KindComponent
		node.Comp = t
	default:
		return nil
	}

	for k, v := range props {
		if k == "key" {
			node.Key = keyString(v)
			continue
		}
		node.Props[k] = v
	}

	node.Children = normalizeChildren(children)
	return node
}

// Normalize converts an arbitrary child value into a canonical VNode,
// or nil when the value renders nothing:
//
//   - nil and booleans render nothing
//   - strings and numbers become text nodes
//   - slices become fragments of their flattened, nil-filtered elements
//   - existing VNodes pass through unchanged
//
// Any other value renders nothing.
func Normalize(child any) *VNode {
	switch v := child.(type) {
	case nil:
		return nil
	case bool:
		return nil
	case *VNode:
		return v
	case string:
		return Text(v)
	case int:
		return Text(strconv.Itoa(v))
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return Text(fmt.Sprintf("%d", v))
	case float32:
		return Text(strconv.FormatFloat(float64(v), 'f', -1, 32))
	case float64:
		return Text(strconv.FormatFloat(v, 'f', -1, 64))
	case []any:
		return &VNode{Kind: KindFragment, Children: normalizeChildren(v)}
	case []*VNode:
		children := make([]*VNode, 0, len(v))
		for _, c := range v {
			if c != nil {
				children = append(children, c)
			}
		}
		return &VNode{Kind: KindFragment, Children: children}
	case ComponentFunc:
		return H(v, nil)
	case func(RenderCtx, Props) *VNode:
		return H(v, nil)
	default:
		return nil
	}
}

// normalizeChildren flattens raw child values to arbitrary depth,
// normalizes each, and drops everything that renders nothing.
func normalizeChildren(raw []any) []*VNode {
	out := make([]*VNode, 0, len(raw))
	for _, c := range raw {
		switch v := c.(type) {
		case []any:
			out = append(out, normalizeChildren(v)...)
		case []*VNode:
			for _, n := range v {
				if n != nil {
					out = append(out, n)
				}
			}
		default:
			if n := Normalize(c); n != nil {
				out = append(out, n)
			}
		}
	}
	return out
}

// keyString converts a key prop value to its string form.
func keyString(v any) string {
	switch k := v.(type) {
	case string:
		return k
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
