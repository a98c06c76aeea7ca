package vdom

// VKind is the node type discriminator.
type VKind uint8

const (
	KindText      VKind = iota // Plain text node
	KindElement                // <div>, <button>, etc.
	KindFragment               // Grouping without wrapper
	KindComponent              // Function component
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindElement:
		return "Element"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	default:
		return "Unknown"
	}
}

// Props holds attributes and event handlers. Event handler entries use
// "on"-prefixed keys ("onclick", "oninput", ...); their values are the
// handler functions themselves.
type Props map[string]any

// RenderCtx is the per-instance context the runtime passes to a component
// invocation. The hook helpers in pkg/runtime consume it; components
// normally just thread it through.
type RenderCtx interface {
	// Path returns the stable identity path of this component instance.
	Path() string
}

// ComponentFunc renders a single child node (or nil) from props.
// A component must call its hooks in the same order and count on every
// render; violating that is undefined behavior.
type ComponentFunc func(ctx RenderCtx, props Props) *VNode

// VNode is the virtual tree node: an immutable description of one node
// for a pending render. VNodes are created fresh per render pass and
// never mutated after construction.
type VNode struct {
	Kind     VKind         // Node type
	Tag      string        // Element tag name (e.g. "div")
	Props    Props         // Attributes and event handlers
	Children []*VNode      // Normalized child nodes
	Key      string        // Reconciliation key, "" when unkeyed
	Text     string        // Payload for KindText
	Comp     ComponentFunc // Render function for KindComponent
}

// Attr represents a single attribute passed to an element helper.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// EventHandler represents an event handler passed to an element helper.
type EventHandler struct {
	Event   string // "onclick", "oninput", etc.
	Handler any    // func() or func(host.Event)
}
