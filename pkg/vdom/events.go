package vdom

// event creates an EventHandler with the given name and handler.
// The name is prefixed with "on" (e.g. "click" becomes "onclick").
// Handlers may be func() or func(host.Event).
func event(name string, handler any) EventHandler {
	return EventHandler{Event: "on" + name, Handler: handler}
}

// Mouse events

// OnClick handles click events.
func OnClick(handler any) EventHandler { return event("click", handler) }

// OnDblClick handles double-click events.
func OnDblClick(handler any) EventHandler { return event("dblclick", handler) }

// OnMouseDown handles mousedown events.
func OnMouseDown(handler any) EventHandler { return event("mousedown", handler) }

// OnMouseUp handles mouseup events.
func OnMouseUp(handler any) EventHandler { return event("mouseup", handler) }

// OnMouseEnter handles mouseenter events.
func OnMouseEnter(handler any) EventHandler { return event("mouseenter", handler) }

// OnMouseLeave handles mouseleave events.
func OnMouseLeave(handler any) EventHandler { return event("mouseleave", handler) }

// Keyboard events

// OnKeyDown handles keydown events.
func OnKeyDown(handler any) EventHandler { return event("keydown", handler) }

// OnKeyUp handles keyup events.
func OnKeyUp(handler any) EventHandler { return event("keyup", handler) }

// Form events

// OnInput handles input events (fired when value changes).
func OnInput(handler any) EventHandler { return event("input", handler) }

// OnChange handles change events (fired when value is committed).
func OnChange(handler any) EventHandler { return event("change", handler) }

// OnSubmit handles form submit events.
func OnSubmit(handler any) EventHandler { return event("submit", handler) }

// OnFocus handles focus events.
func OnFocus(handler any) EventHandler { return event("focus", handler) }

// OnBlur handles blur events.
func OnBlur(handler any) EventHandler { return event("blur", handler) }

// Misc events

// OnScroll handles scroll events.
func OnScroll(handler any) EventHandler { return event("scroll", handler) }

// On handles an arbitrary event by name.
func On(name string, handler any) EventHandler { return event(name, handler) }
