package host

// Handle is an opaque reference to one node owned by the rendering
// target. Its concrete type belongs to the Surface implementation.
type Handle any

// Event is a native event delivered by the rendering target to an
// attached listener.
type Event struct {
	// Type is the lower-cased event name ("click", "input", ...).
	Type string
	// Value carries the target's current value for input-like events.
	Value string
	// Checked carries checkbox/radio state for change events.
	Checked bool
	// Key carries the key name for keyboard events.
	Key string
}

// Surface is the set of primitive operations the runtime requires from a
// rendering target. All mutations are applied directly and synchronously;
// no queuing happens at this layer.
//
// Event listeners are passed as opaque handler values (func() or
// func(Event)); implementations invoke them through Invoke and must
// support removal by handler identity.
type Surface interface {
	// CreateText creates an owned text handle carrying the payload.
	CreateText(text string) Handle
	// CreateElement creates an owned element handle for the tag.
	CreateElement(tag string) Handle

	// SetText mutates a text handle's payload in place.
	SetText(h Handle, text string)

	// SetAttribute sets a generic attribute on an element handle.
	SetAttribute(h Handle, key string, value any)
	// RemoveAttribute removes a generic attribute.
	RemoveAttribute(h Handle, key string)

	// SetProperty assigns a native property on the handle. It returns
	// false when the target has no such settable property, in which case
	// the caller falls back to SetAttribute.
	SetProperty(h Handle, key string, value any) bool
	// RemoveProperty resets a native property. It returns false when the
	// target has no such property.
	RemoveProperty(h Handle, key string) bool

	// SetStyle sets a single inline style property.
	SetStyle(h Handle, name, value string)
	// RemoveStyle clears a single inline style property.
	RemoveStyle(h Handle, name string)

	// AddEventListener attaches a native listener for the lower-cased
	// event name.
	AddEventListener(h Handle, event string, handler any)
	// RemoveEventListener detaches a previously attached listener,
	// matched by handler identity.
	RemoveEventListener(h Handle, event string, handler any)

	// Append inserts child as the last child of parent.
	Append(parent, child Handle)
	// InsertBefore inserts child immediately before anchor; a nil anchor
	// appends.
	InsertBefore(parent, child, anchor Handle)
	// RemoveChild detaches child from parent.
	RemoveChild(parent, child Handle)
	// Clear removes all children of parent.
	Clear(parent Handle)

	// IsContainer reports whether h is a handle this surface can mount
	// children into.
	IsContainer(h Handle) bool
}

// Invoke calls an event handler value with the event. Handlers may be
// func() or func(Event); anything else is ignored.
func Invoke(handler any, ev Event) {
	switch fn := handler.(type) {
	case func():
		fn()
	case func(Event):
		fn(ev)
	}
}

// domProperties are prop keys applied as native properties rather than
// attributes, mirroring the IDL attributes that must be set as properties
// to affect live state (an "input" element's value attribute only sets
// the default, for example).
var domProperties = map[string]bool{
	"value":    true,
	"checked":  true,
	"selected": true,
	"disabled": true,
	"readOnly": true,
	"multiple": true,
	"muted":    true,
	"open":     true,
}

// KnownProperty reports whether key is applied as a native property by
// the built-in surfaces.
func KnownProperty(key string) bool {
	return domProperties[key]
}
