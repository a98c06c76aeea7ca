package runtime

import "github.com/loom-ui/loom/pkg/vdom"

// Ctx is the render context passed to a component for one invocation. It
// carries the component's structural path, which addresses its hook state
// in the session's store. A Ctx is only valid while its component is
// rendering; do not retain it.
type Ctx struct {
	session *Session
	path    string
	props   vdom.Props
}

var _ vdom.RenderCtx = (*Ctx)(nil)

// Path returns the component's structural identity path.
func (c *Ctx) Path() string { return c.path }

// Props returns the props of the current invocation.
func (c *Ctx) Props() vdom.Props { return c.props }

// Session returns the owning session.
func (c *Ctx) Session() *Session { return c.session }

// Dispatch schedules fn as a turn on the owning session. Goroutines and
// timers spawned from effects use this to feed state updates back into
// the session loop.
func (c *Ctx) Dispatch(fn func()) { c.session.Dispatch(fn) }

// hookCtx asserts the runtime's own render context. Hooks called with a
// foreign RenderCtx, or with none, cannot address any hook store.
func hookCtx(rc vdom.RenderCtx) *Ctx {
	c, ok := rc.(*Ctx)
	if !ok || c == nil {
		panic("loom: hook called outside a component render")
	}
	return c
}
