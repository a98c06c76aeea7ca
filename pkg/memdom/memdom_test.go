package memdom

import (
	"testing"

	"github.com/loom-ui/loom/pkg/host"
)

func TestTreeOps(t *testing.T) {
	s := New()
	doc := NewDocument()

	div := s.CreateElement("div")
	a := s.CreateText("a")
	c := s.CreateText("c")
	s.Append(div, a)
	s.Append(div, c)
	s.Append(doc, div)

	b := s.CreateText("b")
	s.InsertBefore(div, b, c)

	if want := `<body><div>abc</div></body>`; doc.OuterHTML() != want {
		t.Fatalf("got %s, want %s", doc.OuterHTML(), want)
	}

	s.RemoveChild(div, a)
	if want := `<body><div>bc</div></body>`; doc.OuterHTML() != want {
		t.Errorf("got %s, want %s", doc.OuterHTML(), want)
	}

	s.Clear(div)
	if want := `<body><div></div></body>`; doc.OuterHTML() != want {
		t.Errorf("got %s, want %s", doc.OuterHTML(), want)
	}
}

func TestInsertReparents(t *testing.T) {
	s := New()
	first := s.CreateElement("div").(*Node)
	second := s.CreateElement("div").(*Node)
	child := s.CreateText("x").(*Node)

	s.Append(first, child)
	s.Append(second, child)

	if len(first.Children) != 0 {
		t.Error("child must leave its old parent")
	}
	if child.Parent != second {
		t.Error("child must adopt the new parent")
	}
}

func TestAttributesAndStyles(t *testing.T) {
	s := New()
	el := s.CreateElement("div")

	s.SetAttribute(el, "class", "box")
	s.SetAttribute(el, "tabindex", 3)
	s.SetStyle(el, "color", "red")
	s.SetStyle(el, "margin", "0")

	want := `<div class="box" style="color: red; margin: 0" tabindex="3"></div>`
	if got := el.(*Node).OuterHTML(); got != want {
		t.Errorf("got %s, want %s", got, want)
	}

	s.RemoveAttribute(el, "class")
	s.RemoveStyle(el, "color")
	want = `<div style="margin: 0" tabindex="3"></div>`
	if got := el.(*Node).OuterHTML(); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestPropertiesGateOnKnownNames(t *testing.T) {
	s := New()
	el := s.CreateElement("input")

	if !s.SetProperty(el, "checked", true) {
		t.Error("checked is a known property")
	}
	if s.SetProperty(el, "madeup", 1) {
		t.Error("unknown property must be rejected")
	}
	if !s.RemoveProperty(el, "checked") {
		t.Error("checked removal must succeed")
	}
	if len(el.(*Node).Props) != 0 {
		t.Errorf("props = %v, want empty", el.(*Node).Props)
	}
}

func TestListeners(t *testing.T) {
	s := New()
	el := s.CreateElement("button").(*Node)

	calls := 0
	var got host.Event
	handler := func(ev host.Event) {
		calls++
		got = ev
	}
	s.AddEventListener(el, "click", handler)

	el.Dispatch(host.Event{Type: "click", Value: "v"})
	if calls != 1 || got.Value != "v" {
		t.Errorf("calls=%d event=%+v", calls, got)
	}

	s.RemoveEventListener(el, "click", handler)
	el.Dispatch(host.Event{Type: "click"})
	if calls != 1 {
		t.Errorf("calls = %d after removal, want 1", calls)
	}
	if el.ListenerCount("click") != 0 {
		t.Error("listener must be gone")
	}
}

func TestIsContainer(t *testing.T) {
	s := New()
	if !s.IsContainer(s.CreateElement("div")) {
		t.Error("element is a container")
	}
	if s.IsContainer(s.CreateText("x")) {
		t.Error("text is not a container")
	}
	if s.IsContainer("bogus") {
		t.Error("foreign handle is not a container")
	}
}

func TestOuterHTMLEscapes(t *testing.T) {
	s := New()
	text := s.CreateText(`<script>&`).(*Node)
	if want := "&lt;script&gt;&amp;"; text.OuterHTML() != want {
		t.Errorf("got %s, want %s", text.OuterHTML(), want)
	}
}
