package main

import (
	"strconv"

	"github.com/loom-ui/loom/pkg/host"
	"github.com/loom-ui/loom/pkg/runtime"
	"github.com/loom-ui/loom/pkg/vdom"
)

// demoApp is the root component served by `loom serve`: a counter plus a
// small todo list, enough to exercise state, effects, and keyed lists
// end to end in a browser.
func demoApp(ctx vdom.RenderCtx, props vdom.Props) *vdom.VNode {
	return vdom.Div(
		vdom.Style(map[string]string{
			"font-family": "sans-serif",
			"max-width":   "32rem",
			"margin":      "2rem auto",
		}),
		vdom.H1(vdom.Text("loom demo")),
		vdom.H(counter, nil),
		vdom.Hr(),
		vdom.H(todoList, nil),
	)
}

func counter(ctx vdom.RenderCtx, props vdom.Props) *vdom.VNode {
	n, setN := runtime.UseState(ctx, 0)
	parity := runtime.UseMemo(ctx, func() string {
		if n%2 == 0 {
			return "even"
		}
		return "odd"
	}, []any{n})

	return vdom.Div(
		vdom.P(vdom.Textf("count: %d (%s)", n, parity)),
		vdom.Button(
			vdom.OnClick(func() { setN.Update(func(n int) int { return n + 1 }) }),
			vdom.Text("+1"),
		),
		vdom.Button(
			vdom.OnClick(func() { setN.Set(0) }),
			vdom.Text("reset"),
		),
	)
}

func todoList(ctx vdom.RenderCtx, props vdom.Props) *vdom.VNode {
	items, setItems := runtime.UseState(ctx, []string{"learn loom"})
	draft, setDraft := runtime.UseState(ctx, "")

	add := func() {
		if draft == "" {
			return
		}
		next := append(append([]string{}, items...), draft)
		setItems.Set(next)
		setDraft.Set("")
	}

	return vdom.Div(
		vdom.H2(vdom.Text("todos")),
		vdom.Input(
			vdom.Type("text"),
			vdom.Value(draft),
			vdom.Placeholder("what next?"),
			vdom.OnInput(func(ev host.Event) { setDraft.Set(ev.Value) }),
		),
		vdom.Button(vdom.OnClick(add), vdom.Text("add")),
		vdom.Ul(
			vdom.Range(items, func(item string, i int) *vdom.VNode {
				return vdom.Li(
					vdom.Key(strconv.Itoa(i)+":"+item),
					vdom.Text(item),
				)
			}),
		),
	)
}
