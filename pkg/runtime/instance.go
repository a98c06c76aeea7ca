package runtime

import (
	"github.com/loom-ui/loom/pkg/host"
	"github.com/loom-ui/loom/pkg/vdom"
)

// Instance is the durable record of what is actually mounted at one tree
// position. Unlike nodes, which are rebuilt from scratch every render,
// instances persist: created on mount, mutated in place on update, and
// excised on unmount.
type Instance struct {
	kind vdom.VKind
	node *vdom.VNode
	path string
	key  string

	// dom is the handle this instance owns. Only text and element
	// instances own handles; fragments and components render through
	// their children.
	dom host.Handle

	children []*Instance
}

// Kind returns the instance's node kind.
func (in *Instance) Kind() vdom.VKind { return in.kind }

// Path returns the instance's structural identity path.
func (in *Instance) Path() string { return in.path }

// Handle returns the target handle this instance stands for: its own
// handle for text and element instances, or the first mounted
// descendant's handle (transitively) for fragments and components. Nil
// when the subtree rendered nothing.
func (in *Instance) Handle() host.Handle {
	if in == nil {
		return nil
	}
	if in.dom != nil {
		return in.dom
	}
	for _, child := range in.children {
		if h := child.Handle(); h != nil {
			return h
		}
	}
	return nil
}
