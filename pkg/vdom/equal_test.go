package vdom

import "testing"

func TestPropsEqual(t *testing.T) {
	fn := func() {}
	other := func() {}

	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"strings equal", "x", "x", true},
		{"strings differ", "x", "y", false},
		{"ints equal", 3, 3, true},
		{"int vs string", 3, "3", false},
		{"floats equal", 1.5, 1.5, true},
		{"bools differ", true, false, false},
		{"nils", nil, nil, true},
		{"nil vs value", nil, 1, false},
		{"same func", fn, fn, true},
		{"different funcs", fn, other, false},
		{"equal slices", []string{"a"}, []string{"a"}, true},
		{"different slices", []string{"a"}, []string{"b"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PropsEqual(tt.a, tt.b); got != tt.want {
				t.Errorf("PropsEqual(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestIsEventProp(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"onclick", true},
		{"onInput", true},
		{"ONCHANGE", true},
		{"class", false},
		{"on", false},
		{"o", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsEventProp(tt.key); got != tt.want {
			t.Errorf("IsEventProp(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}
