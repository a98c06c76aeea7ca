package vdom

import "strings"

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// Identity attributes

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// ClassIf adds a class conditionally.
func ClassIf(condition bool, class string) Attr {
	if condition {
		return attr("class", class)
	}
	return Attr{} // Empty attr, will be ignored
}

// Style sets inline styles from a property map. Entries are applied to
// the target property-by-property, and diffed the same way.
func Style(styles map[string]string) Attr { return attr("style", styles) }

// StyleAttr sets the style attribute from a raw string.
func StyleAttr(style string) Attr { return attr("style", style) }

// Data creates a data-* attribute.
// Example: Data("id", "123") → data-id="123"
func Data(key, value string) Attr { return attr("data-"+key, value) }

// TitleAttr sets the title attribute.
func TitleAttr(title string) Attr { return attr("title", title) }

// Accessibility attributes

// Role sets the role attribute.
func Role(role string) Attr { return attr("role", role) }

// AriaLabel sets the aria-label attribute.
func AriaLabel(label string) Attr { return attr("aria-label", label) }

// AriaHidden sets the aria-hidden attribute.
func AriaHidden(hidden bool) Attr { return attr("aria-hidden", hidden) }

// TabIndex sets the tabindex attribute.
func TabIndex(index int) Attr { return attr("tabindex", index) }

// Link attributes

// Href sets the href attribute.
func Href(url string) Attr { return attr("href", url) }

// Target sets the target attribute.
func Target(target string) Attr { return attr("target", target) }

// Rel sets the rel attribute.
func Rel(rel string) Attr { return attr("rel", rel) }

// Form input attributes

// Name sets the name attribute.
func Name(name string) Attr { return attr("name", name) }

// Value sets the value property.
func Value(value string) Attr { return attr("value", value) }

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// Placeholder sets the placeholder attribute.
func Placeholder(text string) Attr { return attr("placeholder", text) }

// Disabled sets the disabled property.
func Disabled() Attr { return attr("disabled", true) }

// Checked sets the checked property.
func Checked() Attr { return attr("checked", true) }

// Selected sets the selected property.
func Selected() Attr { return attr("selected", true) }

// Required sets the required attribute.
func Required() Attr { return attr("required", true) }

// Autofocus sets the autofocus attribute.
func Autofocus() Attr { return attr("autofocus", true) }

// For sets the for attribute (for labels).
func For(id string) Attr { return attr("for", id) }

// Media attributes

// Src sets the src attribute.
func Src(url string) Attr { return attr("src", url) }

// Alt sets the alt attribute.
func Alt(text string) Attr { return attr("alt", text) }

// Width sets the width attribute.
func Width(w int) Attr { return attr("width", w) }

// Height sets the height attribute.
func Height(h int) Attr { return attr("height", h) }
