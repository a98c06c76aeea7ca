package host

import (
	"fmt"
	"strings"

	"github.com/loom-ui/loom/pkg/vdom"
)

// ApplyProps sets all non-children props onto a freshly created handle.
func ApplyProps(s Surface, h Handle, props vdom.Props) {
	for key, value := range props {
		applyProp(s, h, key, value)
	}
}

// DiffProps computes and applies the minimal delta between two prop sets.
// Identity-equal values are skipped entirely, keeping the diff
// O(number of changed props).
func DiffProps(s Surface, h Handle, prev, next vdom.Props) {
	// Removed props: run the inverse of the corresponding apply rule.
	for key, oldVal := range prev {
		if _, exists := next[key]; !exists {
			removeProp(s, h, key, oldVal)
		}
	}

	// Added and changed props.
	for key, newVal := range next {
		oldVal, had := prev[key]

		// Handlers re-attach unconditionally: closures from the same
		// literal share a code pointer even when their captured state
		// differs, so pointer equality cannot prove the handler is
		// unchanged. Removal must use the previously attached reference.
		if vdom.IsEventProp(key) {
			if had && oldVal != nil {
				s.RemoveEventListener(h, eventName(key), oldVal)
			}
			if newVal != nil {
				s.AddEventListener(h, eventName(key), newVal)
			}
			continue
		}

		if had && vdom.PropsEqual(oldVal, newVal) {
			continue
		}

		switch {
		case key == "children" || key == "key":
			// children drive reconciliation, never the target

		case key == "style":
			var oldStyle map[string]string
			if had {
				oldStyle, _ = styleMap(oldVal)
			}
			applyStyle(s, h, oldStyle, newVal)

		default:
			applyProp(s, h, key, newVal)
		}
	}
}

// applyProp sets a single prop per its key classification.
func applyProp(s Surface, h Handle, key string, value any) {
	switch {
	case key == "children" || key == "key":

	case vdom.IsEventProp(key):
		if value != nil {
			s.AddEventListener(h, eventName(key), value)
		}

	case key == "className" || key == "class":
		s.SetAttribute(h, "class", value)

	case key == "style":
		applyStyle(s, h, nil, value)

	default:
		if !s.SetProperty(h, key, value) {
			s.SetAttribute(h, key, value)
		}
	}
}

// removeProp runs the inverse of applyProp for a prop that disappeared.
func removeProp(s Surface, h Handle, key string, old any) {
	switch {
	case key == "children" || key == "key":

	case vdom.IsEventProp(key):
		if old != nil {
			s.RemoveEventListener(h, eventName(key), old)
		}

	case key == "className" || key == "class":
		s.RemoveAttribute(h, "class")

	case key == "style":
		if m, ok := styleMap(old); ok {
			for name := range m {
				s.RemoveStyle(h, name)
			}
		} else {
			s.RemoveAttribute(h, "style")
		}

	default:
		if !s.RemoveProperty(h, key) {
			s.RemoveAttribute(h, key)
		}
	}
}

// applyStyle applies a style value. Map values are applied
// property-by-property: entries present in old but absent in the new map
// are cleared, then every entry of the new map is (re)applied. A string
// value falls back to the style attribute.
func applyStyle(s Surface, h Handle, old map[string]string, value any) {
	if m, ok := styleMap(value); ok {
		for name := range old {
			if _, keep := m[name]; !keep {
				s.RemoveStyle(h, name)
			}
		}
		for name, val := range m {
			s.SetStyle(h, name, val)
		}
		return
	}
	if str, ok := value.(string); ok {
		for name := range old {
			s.RemoveStyle(h, name)
		}
		s.SetAttribute(h, "style", str)
	}
}

// styleMap normalizes a style prop value into a string map.
func styleMap(v any) (map[string]string, bool) {
	switch m := v.(type) {
	case map[string]string:
		return m, true
	case map[string]any:
		out := make(map[string]string, len(m))
		for k, val := range m {
			out[k] = fmt.Sprintf("%v", val)
		}
		return out, true
	default:
		return nil, false
	}
}

// eventName lower-cases the remainder of an "on"-prefixed prop key.
func eventName(key string) string {
	return strings.ToLower(key[2:])
}
