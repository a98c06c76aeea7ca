// Package vdom defines the virtual node tree: immutable descriptions of
// desired UI produced fresh on every render and diffed by the runtime.
//
// Nodes are built either through the generic construction entry point H
// (the target of a JSX-style transform) or through the typed element
// helpers (Div, Button, ...). Arbitrary child values are normalized into
// a canonical tree: nil and booleans render nothing, strings and numbers
// become text nodes, and nested slices are flattened.
package vdom
