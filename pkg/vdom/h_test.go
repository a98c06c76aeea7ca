package vdom

import "testing"

func TestHElement(t *testing.T) {
	node := H("div", Props{"class": "box", "key": "k1"}, "hello")

	if node.Kind != KindElement || node.Tag != "div" {
		t.Fatalf("kind=%v tag=%q", node.Kind, node.Tag)
	}
	if node.Key != "k1" {
		t.Errorf("key = %q, want k1", node.Key)
	}
	if _, ok := node.Props["key"]; ok {
		t.Error("key must be stripped from props")
	}
	if node.Props["class"] != "box" {
		t.Errorf("class = %v", node.Props["class"])
	}
	if len(node.Children) != 1 || node.Children[0].Kind != KindText {
		t.Fatalf("children = %v", node.Children)
	}
}

func TestHFragmentAndComponent(t *testing.T) {
	frag := H(FragmentType, nil, "a", "b")
	if frag.Kind != KindFragment || len(frag.Children) != 2 {
		t.Errorf("fragment: kind=%v children=%d", frag.Kind, len(frag.Children))
	}

	comp := func(ctx RenderCtx, props Props) *VNode { return nil }
	node := H(comp, Props{"title": "x"})
	if node.Kind != KindComponent || node.Comp == nil {
		t.Errorf("component: kind=%v comp=%v", node.Kind, node.Comp)
	}

	if H(42, nil) != nil {
		t.Error("unsupported type must yield nil")
	}
}

func TestNormalizePrimitives(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string // text payload, "" means nil result
	}{
		{"nil", nil, ""},
		{"true", true, ""},
		{"false", false, ""},
		{"string", "hi", "hi"},
		{"int", 5, "5"},
		{"int64", int64(-3), "-3"},
		{"float", 2.5, "2.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			if tt.want == "" {
				if got != nil {
					t.Errorf("Normalize(%v) = %v, want nil", tt.in, got)
				}
				return
			}
			if got == nil || got.Kind != KindText || got.Text != tt.want {
				t.Errorf("Normalize(%v) = %+v, want text %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeSliceFlattening(t *testing.T) {
	// Mixed slice with nothing-values dropped and nesting flattened.
	node := Normalize([]any{"x", 5, nil, true, []any{"y"}})
	if node == nil || node.Kind != KindFragment {
		t.Fatalf("got %+v, want fragment", node)
	}
	if len(node.Children) != 3 {
		t.Fatalf("children = %d, want 3", len(node.Children))
	}
	for i, want := range []string{"x", "5", "y"} {
		if node.Children[i].Text != want {
			t.Errorf("child %d = %q, want %q", i, node.Children[i].Text, want)
		}
	}
}

func TestElementHelperArgs(t *testing.T) {
	clicked := false
	node := Div(
		Class("a"),
		ID("main"),
		OnClick(func() { clicked = true }),
		Span("inner"),
		nil,
		"text",
	)

	if node.Props["class"] != "a" || node.Props["id"] != "main" {
		t.Errorf("props = %v", node.Props)
	}
	if node.Props["onclick"] == nil {
		t.Error("onclick missing")
	}
	if len(node.Children) != 2 {
		t.Fatalf("children = %d, want 2", len(node.Children))
	}
	_ = clicked
}

func TestKeyHelper(t *testing.T) {
	node := Li(Key(7), "item")
	if node.Key != "7" {
		t.Errorf("key = %q, want 7", node.Key)
	}
}
