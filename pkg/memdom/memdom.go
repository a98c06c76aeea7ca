// Package memdom is an in-memory implementation of the host surface.
// It backs the runtime's test suite and doubles as a headless rendering
// target: nodes can be inspected directly, events can be fired into
// attached listeners, and subtrees render to an HTML-ish string for
// assertions.
package memdom

import (
	"fmt"
	"html"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/loom-ui/loom/pkg/host"
)

// NodeKind discriminates element and text nodes.
type NodeKind uint8

const (
	ElementNode NodeKind = iota
	TextNode
)

// Node is one in-memory target node.
type Node struct {
	Kind     NodeKind
	Tag      string
	Text     string
	Attrs    map[string]string
	Props    map[string]any
	Styles   map[string]string
	Children []*Node
	Parent   *Node

	listeners map[string][]any
}

// NewDocument returns a fresh container node to mount into.
func NewDocument() *Node {
	return newElement("body")
}

func newElement(tag string) *Node {
	return &Node{
		Kind:      ElementNode,
		Tag:       tag,
		Attrs:     make(map[string]string),
		Props:     make(map[string]any),
		Styles:    make(map[string]string),
		listeners: make(map[string][]any),
	}
}

// Dispatch fires a native event on the node, invoking every listener
// attached for the event's type.
func (n *Node) Dispatch(ev host.Event) {
	for _, handler := range n.listeners[ev.Type] {
		host.Invoke(handler, ev)
	}
}

// ListenerCount returns how many listeners are attached for an event.
func (n *Node) ListenerCount(event string) int {
	return len(n.listeners[event])
}

// OuterHTML renders the node and its subtree to an HTML-ish string,
// with attributes in sorted order for stable assertions.
func (n *Node) OuterHTML() string {
	var b strings.Builder
	n.writeHTML(&b)
	return b.String()
}

func (n *Node) writeHTML(b *strings.Builder) {
	if n.Kind == TextNode {
		b.WriteString(html.EscapeString(n.Text))
		return
	}

	b.WriteByte('<')
	b.WriteString(n.Tag)

	keys := make([]string, 0, len(n.Attrs)+len(n.Props))
	merged := make(map[string]string, len(n.Attrs)+len(n.Props))
	for k, v := range n.Attrs {
		keys = append(keys, k)
		merged[k] = v
	}
	for k, v := range n.Props {
		keys = append(keys, k)
		merged[k] = attrString(v)
	}
	if len(n.Styles) > 0 {
		keys = append(keys, "style")
		merged["style"] = n.styleString()
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, " %s=%q", k, merged[k])
	}
	b.WriteByte('>')

	for _, child := range n.Children {
		child.writeHTML(b)
	}
	fmt.Fprintf(b, "</%s>", n.Tag)
}

func (n *Node) styleString() string {
	names := make([]string, 0, len(n.Styles))
	for name := range n.Styles {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+n.Styles[name])
	}
	return strings.Join(parts, "; ")
}

// Surface implements host.Surface over *Node handles.
type Surface struct{}

// New returns a memdom surface.
func New() *Surface {
	return &Surface{}
}

var _ host.Surface = (*Surface)(nil)

// CreateText implements host.Surface.
func (s *Surface) CreateText(text string) host.Handle {
	return &Node{Kind: TextNode, Text: text}
}

// CreateElement implements host.Surface.
func (s *Surface) CreateElement(tag string) host.Handle {
	return newElement(tag)
}

// SetText implements host.Surface.
func (s *Surface) SetText(h host.Handle, text string) {
	h.(*Node).Text = text
}

// SetAttribute implements host.Surface.
func (s *Surface) SetAttribute(h host.Handle, key string, value any) {
	h.(*Node).Attrs[key] = attrString(value)
}

// RemoveAttribute implements host.Surface.
func (s *Surface) RemoveAttribute(h host.Handle, key string) {
	delete(h.(*Node).Attrs, key)
}

// SetProperty implements host.Surface.
func (s *Surface) SetProperty(h host.Handle, key string, value any) bool {
	if !host.KnownProperty(key) {
		return false
	}
	h.(*Node).Props[key] = value
	return true
}

// RemoveProperty implements host.Surface.
func (s *Surface) RemoveProperty(h host.Handle, key string) bool {
	if !host.KnownProperty(key) {
		return false
	}
	delete(h.(*Node).Props, key)
	return true
}

// SetStyle implements host.Surface.
func (s *Surface) SetStyle(h host.Handle, name, value string) {
	h.(*Node).Styles[name] = value
}

// RemoveStyle implements host.Surface.
func (s *Surface) RemoveStyle(h host.Handle, name string) {
	delete(h.(*Node).Styles, name)
}

// AddEventListener implements host.Surface.
func (s *Surface) AddEventListener(h host.Handle, event string, handler any) {
	n := h.(*Node)
	n.listeners[event] = append(n.listeners[event], handler)
}

// RemoveEventListener implements host.Surface. The handler is matched by
// function identity.
func (s *Surface) RemoveEventListener(h host.Handle, event string, handler any) {
	n := h.(*Node)
	ptr := reflect.ValueOf(handler).Pointer()
	handlers := n.listeners[event]
	for i, existing := range handlers {
		if reflect.ValueOf(existing).Pointer() == ptr {
			n.listeners[event] = append(handlers[:i], handlers[i+1:]...)
			return
		}
	}
}

// Append implements host.Surface.
func (s *Surface) Append(parent, child host.Handle) {
	s.InsertBefore(parent, child, nil)
}

// InsertBefore implements host.Surface.
func (s *Surface) InsertBefore(parent, child, anchor host.Handle) {
	p := parent.(*Node)
	c := child.(*Node)
	if c.Parent != nil {
		s.RemoveChild(c.Parent, c)
	}
	c.Parent = p

	if anchor != nil {
		a := anchor.(*Node)
		for i, existing := range p.Children {
			if existing == a {
				p.Children = append(p.Children[:i], append([]*Node{c}, p.Children[i:]...)...)
				return
			}
		}
	}
	p.Children = append(p.Children, c)
}

// RemoveChild implements host.Surface.
func (s *Surface) RemoveChild(parent, child host.Handle) {
	p := parent.(*Node)
	c := child.(*Node)
	for i, existing := range p.Children {
		if existing == c {
			p.Children = append(p.Children[:i], p.Children[i+1:]...)
			c.Parent = nil
			return
		}
	}
}

// Clear implements host.Surface.
func (s *Surface) Clear(parent host.Handle) {
	p := parent.(*Node)
	for _, child := range p.Children {
		child.Parent = nil
	}
	p.Children = nil
}

// IsContainer implements host.Surface.
func (s *Surface) IsContainer(h host.Handle) bool {
	n, ok := h.(*Node)
	return ok && n.Kind == ElementNode
}

// attrString converts an attribute value to its rendered string form.
func attrString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
