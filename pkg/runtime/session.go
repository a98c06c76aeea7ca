package runtime

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	loomerrors "github.com/loom-ui/loom/internal/errors"
	"github.com/loom-ui/loom/pkg/host"
	"github.com/loom-ui/loom/pkg/vdom"
)

// rootPath anchors every structural identity path.
const rootPath = "root"

// Session owns one mounted tree and everything that keeps it alive: the
// surface it renders to, the hook store, and the cooperative task queue
// that serializes all work.
//
// Each call to Dispatch (and to Mount, Unmount, and event handlers, which
// go through it) is one turn. The first caller drains the queue inline
// until it is empty, so by the time Dispatch returns the session is idle:
// renders done, effects flushed. Callers on other goroutines serialize on
// the queue, never on the tree.
type Session struct {
	surface host.Surface
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *Metrics
	onIdle  func()

	mu           sync.Mutex
	queue        []func()
	draining     bool
	renderQueued bool
	root         *rootState

	store *hookStore
}

// rootState tracks what is mounted where.
type rootState struct {
	node      *vdom.VNode
	container host.Handle
	instance  *Instance
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// WithMetrics attaches Prometheus metrics to the session.
func WithMetrics(m *Metrics) Option {
	return func(s *Session) { s.metrics = m }
}

// WithTracer sets the session's tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Session) { s.tracer = tracer }
}

// WithOnIdle registers a callback invoked each time the task queue
// drains empty. Remote surfaces use it to flush buffered ops once per
// committed turn batch.
func WithOnIdle(fn func()) Option {
	return func(s *Session) { s.onIdle = fn }
}

// NewSession creates a session rendering to surface.
func NewSession(surface host.Surface, opts ...Option) *Session {
	s := &Session{
		surface: surface,
		logger:  slog.Default().With("component", "runtime"),
		store:   newHookStore(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer("loom")
	}
	return s
}

// Surface returns the surface the session renders to.
func (s *Session) Surface() host.Surface { return s.surface }

// Dispatch runs fn as one turn. Called while the session is idle it
// drains the queue inline and returns once the session is idle again;
// called from within a turn it only enqueues, and the active drain picks
// the task up.
func (s *Session) Dispatch(fn func()) {
	s.mu.Lock()
	s.queue = append(s.queue, fn)
	if s.draining {
		s.mu.Unlock()
		return
	}
	s.drainLocked()
}

// drainLocked runs queued turns until none remain, then fires the idle
// callback. Called with s.mu held; returns with it released.
func (s *Session) drainLocked() {
	s.draining = true
	for len(s.queue) > 0 {
		task := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()
		task()
		s.mu.Lock()
	}
	s.draining = false
	onIdle := s.onIdle
	s.mu.Unlock()
	if onIdle != nil {
		onIdle()
	}
}

// enqueueRender requests a render pass on a subsequent turn. Any number
// of requests between passes coalesce into one.
func (s *Session) enqueueRender() {
	s.mu.Lock()
	if s.renderQueued || s.root == nil {
		s.mu.Unlock()
		return
	}
	s.renderQueued = true
	s.queue = append(s.queue, s.renderTask)
	if s.draining {
		s.mu.Unlock()
		return
	}
	s.drainLocked()
}

func (s *Session) renderTask() {
	s.mu.Lock()
	s.renderQueued = false
	s.mu.Unlock()
	s.renderPass()
}

// scheduleFlush queues an effect flush turn after the current one.
func (s *Session) scheduleFlush() {
	s.mu.Lock()
	s.queue = append(s.queue, s.flushEffects)
	if s.draining {
		s.mu.Unlock()
		return
	}
	s.drainLocked()
}

func (s *Session) currentRoot() *rootState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.root
}

func (s *Session) setRoot(root *rootState) {
	s.mu.Lock()
	s.root = root
	s.mu.Unlock()
}

// Mount renders node into container, replacing any previous mount on
// this session. Remounting is a hard reset: the old tree unmounts, every
// effect cleanup runs, all hook state drops, and the container is
// emptied before the new tree renders. Mount returns once the initial
// render has committed and its effects have flushed (unless called from
// within a turn, in which case the work is queued).
func (s *Session) Mount(node *vdom.VNode, container host.Handle) error {
	if node == nil {
		return loomerrors.New("E001")
	}
	if container == nil || !s.surface.IsContainer(container) {
		return loomerrors.New("E002")
	}
	s.Dispatch(func() { s.mountRoot(node, container) })
	return nil
}

func (s *Session) mountRoot(node *vdom.VNode, container host.Handle) {
	if root := s.currentRoot(); root != nil {
		if root.instance != nil {
			s.unmount(root.container, root.instance)
		}
		s.runCleanups(s.store.reset())
	}
	s.surface.Clear(container)
	s.setRoot(&rootState{node: node, container: container})
	s.renderPass()
}

// Unmount tears the current tree down: instances detach from the
// surface, every stored effect cleanup runs, and all hook state drops.
// A session with no mount is a no-op.
func (s *Session) Unmount() {
	s.Dispatch(func() {
		root := s.currentRoot()
		if root == nil {
			return
		}
		if root.instance != nil {
			s.unmount(root.container, root.instance)
		}
		s.runCleanups(s.store.reset())
		s.setRoot(nil)
	})
}

// renderPass reconciles the whole tree from the root, collects hook
// state for components that disappeared, and queues an effect flush if
// any effect was scheduled.
func (s *Session) renderPass() {
	root := s.currentRoot()
	if root == nil {
		return
	}

	_, span := s.tracer.Start(context.Background(), "loom.render")
	start := time.Now()

	s.store.beginPass()
	root.instance = s.reconcile(root.container, root.instance, root.node, rootPath, nil)
	collected, cleanups := s.store.collectGarbage()
	s.runCleanups(cleanups)

	elapsed := time.Since(start)
	if s.metrics != nil {
		s.metrics.observeRender(elapsed)
		s.metrics.setHookPaths(s.store.pathCount())
	}
	span.SetAttributes(
		attribute.Int("loom.paths_collected", collected),
		attribute.Int("loom.hook_paths", s.store.pathCount()),
	)
	span.End()

	s.logger.Debug("render pass committed",
		"duration", elapsed,
		"collected", collected)

	if s.store.pendingCount() > 0 {
		s.scheduleFlush()
	}
}

// flushEffects runs every queued effect once, in the order scheduled.
// Each run is preceded by the slot's previous cleanup. Effects whose
// component was collected between scheduling and flushing are skipped;
// their cleanups already ran during collection.
func (s *Session) flushEffects() {
	refs := s.store.takePending()
	if len(refs) == 0 {
		return
	}

	_, span := s.tracer.Start(context.Background(), "loom.flush_effects")
	ran := 0
	for _, ref := range refs {
		slot := s.store.effectAt(ref.path, ref.index)
		if slot == nil {
			continue
		}

		s.store.mu.Lock()
		slot.pending = false
		fn := slot.fn
		cleanup := slot.cleanup
		slot.cleanup = nil
		s.store.mu.Unlock()

		if cleanup != nil {
			cleanup()
		}
		if fn == nil {
			continue
		}
		next := fn()

		s.store.mu.Lock()
		slot.cleanup = next
		s.store.mu.Unlock()
		ran++
	}
	if s.metrics != nil {
		s.metrics.addEffectRuns(ran)
	}
	span.SetAttributes(attribute.Int("loom.effects_run", ran))
	span.End()
}

func (s *Session) runCleanups(cleanups []Cleanup) {
	for _, cleanup := range cleanups {
		cleanup()
	}
}
