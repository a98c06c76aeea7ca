package runtime

import (
	"fmt"

	"github.com/loom-ui/loom/pkg/host"
	"github.com/loom-ui/loom/pkg/vdom"
)

// reconcile walks one old instance and one new node together and returns
// the instance now occupying the position. The four cases, in order:
// unmount (new side empty), mount (old side empty), replace (type or key
// changed), update (same identity, mutate in place). A non-nil anchor
// places newly mounted handles before it instead of appending, which keeps
// target order intact for mid-list replacements.
func (s *Session) reconcile(parent host.Handle, prev *Instance, next *vdom.VNode, path string, anchor host.Handle) *Instance {
	if next == nil {
		if prev != nil {
			s.unmount(parent, prev)
		}
		return nil
	}
	if prev == nil {
		return s.mount(parent, next, path, anchor)
	}
	if !sameIdentity(prev, next) {
		s.unmount(parent, prev)
		return s.mount(parent, next, path, anchor)
	}
	return s.update(parent, prev, next, path, anchor)
}

// sameIdentity reports whether next can update prev in place. A changed
// kind, key, tag, or component function forces a remount, which resets
// all descendant state.
func sameIdentity(prev *Instance, next *vdom.VNode) bool {
	if prev.kind != next.Kind || prev.key != next.Key {
		return false
	}
	switch next.Kind {
	case vdom.KindElement:
		return prev.node.Tag == next.Tag
	case vdom.KindComponent:
		return vdom.SameComponent(prev.node.Comp, next.Comp)
	default:
		return true
	}
}

// mount builds a fresh instance subtree for node under parent, placed
// before anchor when one is given.
func (s *Session) mount(parent host.Handle, node *vdom.VNode, path string, anchor host.Handle) *Instance {
	inst := &Instance{kind: node.Kind, node: node, key: node.Key, path: path}

	switch node.Kind {
	case vdom.KindText:
		inst.dom = s.surface.CreateText(node.Text)
		s.attach(parent, inst.dom, anchor)

	case vdom.KindElement:
		el := s.surface.CreateElement(node.Tag)
		inst.dom = el
		host.ApplyProps(s.surface, el, node.Props)
		inst.children = make([]*Instance, len(node.Children))
		for i, child := range node.Children {
			inst.children[i] = s.reconcile(el, nil, child, vdom.ChildPath(path, child, i, node.Children), nil)
		}
		// The subtree attaches fully built, as a single insertion.
		s.attach(parent, el, anchor)

	case vdom.KindFragment:
		inst.children = make([]*Instance, len(node.Children))
		for i, child := range node.Children {
			inst.children[i] = s.reconcile(parent, nil, child, vdom.ChildPath(path, child, i, node.Children), anchor)
		}

	case vdom.KindComponent:
		child := s.invokeComponent(node, path)
		inst.children = []*Instance{
			s.reconcile(parent, nil, child, componentChildPath(path, child), anchor),
		}
	}
	return inst
}

// attach inserts h under parent, before anchor when one is given.
func (s *Session) attach(parent, h, anchor host.Handle) {
	if anchor != nil {
		s.surface.InsertBefore(parent, h, anchor)
		return
	}
	s.surface.Append(parent, h)
}

// update mutates inst in place to match next. Identity was already
// established by the caller.
func (s *Session) update(parent host.Handle, inst *Instance, next *vdom.VNode, path string, anchor host.Handle) *Instance {
	switch inst.kind {
	case vdom.KindText:
		if inst.dom == nil {
			s.reportHandleMismatch(inst, next)
			return inst
		}
		if inst.node.Text != next.Text {
			s.surface.SetText(inst.dom, next.Text)
		}

	case vdom.KindElement:
		if inst.dom == nil {
			s.reportHandleMismatch(inst, next)
			return inst
		}
		s.diffProps(inst.dom, inst.node.Props, next.Props)
		s.updateChildren(inst.dom, inst, next, path, nil)

	case vdom.KindFragment:
		s.updateChildren(parent, inst, next, path, anchor)

	case vdom.KindComponent:
		child := s.invokeComponent(next, path)
		var prevChild *Instance
		if len(inst.children) > 0 {
			prevChild = inst.children[0]
		}
		inst.children = []*Instance{
			s.reconcile(parent, prevChild, child, componentChildPath(path, child), anchor),
		}
	}
	inst.node = next
	return inst
}

// updateChildren matches old and new children positionally: index i of
// the new list reconciles against index i of the old, and trailing old
// children beyond the new length unmount. Each position anchors on the
// next surviving old sibling's handle so replacements land in place
// instead of at the end; positions past the old list fall back to the
// inherited anchor.
func (s *Session) updateChildren(parent host.Handle, inst *Instance, next *vdom.VNode, path string, anchor host.Handle) {
	oldChildren := inst.children
	newChildren := next.Children
	n := len(newChildren)
	if len(oldChildren) > n {
		n = len(oldChildren)
	}

	result := make([]*Instance, 0, len(newChildren))
	for i := 0; i < n; i++ {
		var prevChild *Instance
		if i < len(oldChildren) {
			prevChild = oldChildren[i]
		}
		var nextChild *vdom.VNode
		if i < len(newChildren) {
			nextChild = newChildren[i]
		}
		childAnchor := anchor
		for j := i + 1; j < len(oldChildren); j++ {
			if h := oldChildren[j].Handle(); h != nil {
				childAnchor = h
				break
			}
		}
		child := s.reconcile(parent, prevChild, nextChild, vdom.ChildPath(path, nextChild, i, newChildren), childAnchor)
		if i < len(newChildren) {
			result = append(result, child)
		}
	}
	inst.children = result
}

// unmount detaches every owned handle in the subtree from parent. Only
// text and element instances own handles; fragment and component
// children sit directly under parent, so the walk recurses through them
// but never into element subtrees, which detach wholesale with their
// root handle.
func (s *Session) unmount(parent host.Handle, inst *Instance) {
	if inst == nil {
		return
	}
	switch inst.kind {
	case vdom.KindText, vdom.KindElement:
		if inst.dom != nil {
			s.surface.RemoveChild(parent, inst.dom)
		}
	default:
		for _, child := range inst.children {
			s.unmount(parent, child)
		}
	}
	if s.metrics != nil {
		s.metrics.incUnmounts()
	}
}

// invokeComponent renders one component: the path enters the hook store
// (cursor rewound, marked visited) for the duration of the call, and the
// returned child is normalized so components may return strings, slices,
// or nil.
func (s *Session) invokeComponent(node *vdom.VNode, path string) *vdom.VNode {
	if node.Comp == nil {
		return nil
	}
	saved := s.store.enter(path)
	defer s.store.exit(path, saved)
	ctx := &Ctx{session: s, path: path, props: node.Props}
	return vdom.Normalize(node.Comp(ctx, node.Props))
}

// componentChildPath derives the path of a component's single rendered
// child.
func componentChildPath(path string, child *vdom.VNode) string {
	if child == nil {
		return path + ".i0"
	}
	return vdom.ChildPath(path, child, 0, []*vdom.VNode{child})
}

// reportHandleMismatch logs an instance whose handle does not match its
// kind. The subtree's mutation is abandoned rather than risk corrupting
// the target.
func (s *Session) reportHandleMismatch(inst *Instance, node *vdom.VNode) {
	s.logger.Error("host handle mismatch, subtree abandoned",
		"code", "E100",
		"path", inst.path,
		"kind", inst.kind.String(),
		"node_kind", node.Kind.String())
}

// diffProps applies a prop delta to a handle. A panic out of the surface
// is logged with enough state to diagnose, then re-raised: the target
// may be partially updated and the caller must know.
func (s *Session) diffProps(h host.Handle, prev, next vdom.Props) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("prop diff failed",
				"code", "E101",
				"handle", fmt.Sprintf("%T", h),
				"prev", fmt.Sprintf("%v", prev),
				"next", fmt.Sprintf("%v", next),
				"panic", r)
			panic(r)
		}
	}()
	host.DiffProps(s.surface, h, prev, next)
}
