package vdom

// createElement creates a new element VNode from variadic arguments.
// Arguments can be: nil, Attr, []Attr, EventHandler, *VNode, []*VNode,
// ComponentFunc, or string (shorthand for a text child).
func createElement(tag string, args []any) *VNode {
	node := &VNode{
		Kind:     KindElement,
		Tag:      tag,
		Props:    make(Props),
		Children: make([]*VNode, 0),
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			// Ignore nil (allows conditional attributes)
			continue

		case Attr:
			applyAttr(node, v)

		case []Attr:
			for _, a := range v {
				applyAttr(node, a)
			}

		case EventHandler:
			node.Props[v.Event] = v.Handler

		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}

		case []*VNode:
			for _, child := range v {
				if child != nil {
					node.Children = append(node.Children, child)
				}
			}

		case ComponentFunc:
			node.Children = append(node.Children, H(v, nil))

		case func(RenderCtx, Props) *VNode:
			node.Children = append(node.Children, H(v, nil))

		case string:
			node.Children = append(node.Children, Text(v))

		default:
			if child := Normalize(arg); child != nil {
				node.Children = append(node.Children, child)
			}
		}
	}

	return node
}

// applyAttr writes one attribute onto the node, routing "key" into the
// reconciliation key.
func applyAttr(node *VNode, a Attr) {
	if a.Key == "" {
		return
	}
	if a.Key == "key" {
		node.Key = keyString(a.Value)
		return
	}
	node.Props[a.Key] = a.Value
}

// El creates an element with an arbitrary tag.
func El(tag string, args ...any) *VNode { return createElement(tag, args) }

// Document structure

func Div(args ...any) *VNode     { return createElement("div", args) }
func Span(args ...any) *VNode    { return createElement("span", args) }
func P(args ...any) *VNode       { return createElement("p", args) }
func Main(args ...any) *VNode    { return createElement("main", args) }
func Section(args ...any) *VNode { return createElement("section", args) }
func Article(args ...any) *VNode { return createElement("article", args) }
func Header(args ...any) *VNode  { return createElement("header", args) }
func Footer(args ...any) *VNode  { return createElement("footer", args) }
func Nav(args ...any) *VNode     { return createElement("nav", args) }
func Aside(args ...any) *VNode   { return createElement("aside", args) }

// Headings

func H1(args ...any) *VNode { return createElement("h1", args) }
func H2(args ...any) *VNode { return createElement("h2", args) }
func H3(args ...any) *VNode { return createElement("h3", args) }
func H4(args ...any) *VNode { return createElement("h4", args) }

// Text-level elements

func A(args ...any) *VNode      { return createElement("a", args) }
func Strong(args ...any) *VNode { return createElement("strong", args) }
func Em(args ...any) *VNode     { return createElement("em", args) }
func Code(args ...any) *VNode   { return createElement("code", args) }
func Pre(args ...any) *VNode    { return createElement("pre", args) }
func Br(args ...any) *VNode     { return createElement("br", args) }
func Hr(args ...any) *VNode     { return createElement("hr", args) }

// Lists

func Ul(args ...any) *VNode { return createElement("ul", args) }
func Ol(args ...any) *VNode { return createElement("ol", args) }
func Li(args ...any) *VNode { return createElement("li", args) }

// Forms

func Form(args ...any) *VNode     { return createElement("form", args) }
func Label(args ...any) *VNode    { return createElement("label", args) }
func Input(args ...any) *VNode    { return createElement("input", args) }
func Textarea(args ...any) *VNode { return createElement("textarea", args) }
func Select(args ...any) *VNode   { return createElement("select", args) }
func Option(args ...any) *VNode   { return createElement("option", args) }
func Button(args ...any) *VNode   { return createElement("button", args) }

// Media

func Img(args ...any) *VNode { return createElement("img", args) }

// Tables

func Table(args ...any) *VNode { return createElement("table", args) }
func Thead(args ...any) *VNode { return createElement("thead", args) }
func Tbody(args ...any) *VNode { return createElement("tbody", args) }
func Tr(args ...any) *VNode    { return createElement("tr", args) }
func Th(args ...any) *VNode    { return createElement("th", args) }
func Td(args ...any) *VNode    { return createElement("td", args) }
