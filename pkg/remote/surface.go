package remote

import (
	"encoding/json"
	"log/slog"
	"reflect"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/loom-ui/loom/pkg/host"
)

// Surface implements host.Surface over a websocket connection. Mutations
// buffer in call order; Flush writes the buffer as one ops frame. Wire it
// as the session's idle callback so each committed turn batch ships as a
// single frame.
type Surface struct {
	conn   *websocket.Conn
	logger *slog.Logger

	readTimeout  time.Duration
	writeTimeout time.Duration

	mu        sync.Mutex
	nextID    NodeID
	seq       uint64
	ops       []Op
	elements  map[NodeID]bool
	listeners map[NodeID]map[string]any
	parent    map[NodeID]NodeID
	children  map[NodeID][]NodeID
	closed    bool
}

var _ host.Surface = (*Surface)(nil)

// SurfaceOption configures a Surface.
type SurfaceOption func(*Surface)

// WithLogger sets the surface's logger.
func WithLogger(logger *slog.Logger) SurfaceOption {
	return func(s *Surface) { s.logger = logger }
}

// WithTimeouts overrides the read and write deadlines.
func WithTimeouts(read, write time.Duration) SurfaceOption {
	return func(s *Surface) {
		s.readTimeout = read
		s.writeTimeout = write
	}
}

// NewSurface wraps an established websocket connection. The caller keeps
// ownership of the connection's lifetime; Close tears it down.
func NewSurface(conn *websocket.Conn, opts ...SurfaceOption) *Surface {
	s := &Surface{
		conn:         conn,
		logger:       slog.Default().With("component", "remote"),
		readTimeout:  60 * time.Second,
		writeTimeout: 10 * time.Second,
		elements:     map[NodeID]bool{RootID: true},
		listeners:    make(map[NodeID]map[string]any),
		parent:       make(map[NodeID]NodeID),
		children:     make(map[NodeID][]NodeID),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Surface) push(op Op) {
	s.mu.Lock()
	s.ops = append(s.ops, op)
	s.mu.Unlock()
}

func (s *Surface) allocate(element bool) NodeID {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	if element {
		s.elements[id] = true
	}
	return id
}

// CreateText implements host.Surface.
func (s *Surface) CreateText(text string) host.Handle {
	id := s.allocate(false)
	s.push(Op{Op: OpCreateText, ID: id, Text: text})
	return id
}

// CreateElement implements host.Surface.
func (s *Surface) CreateElement(tag string) host.Handle {
	id := s.allocate(true)
	s.push(Op{Op: OpCreateElement, ID: id, Tag: tag})
	return id
}

// SetText implements host.Surface.
func (s *Surface) SetText(h host.Handle, text string) {
	s.push(Op{Op: OpSetText, ID: h.(NodeID), Text: text})
}

// SetAttribute implements host.Surface.
func (s *Surface) SetAttribute(h host.Handle, key string, value any) {
	s.push(Op{Op: OpSetAttr, ID: h.(NodeID), Key: key, Value: value})
}

// RemoveAttribute implements host.Surface.
func (s *Surface) RemoveAttribute(h host.Handle, key string) {
	s.push(Op{Op: OpRemoveAttr, ID: h.(NodeID), Key: key})
}

// SetProperty implements host.Surface.
func (s *Surface) SetProperty(h host.Handle, key string, value any) bool {
	if !host.KnownProperty(key) {
		return false
	}
	s.push(Op{Op: OpSetProp, ID: h.(NodeID), Key: key, Value: value})
	return true
}

// RemoveProperty implements host.Surface.
func (s *Surface) RemoveProperty(h host.Handle, key string) bool {
	if !host.KnownProperty(key) {
		return false
	}
	s.push(Op{Op: OpRemoveProp, ID: h.(NodeID), Key: key})
	return true
}

// SetStyle implements host.Surface.
func (s *Surface) SetStyle(h host.Handle, name, value string) {
	s.push(Op{Op: OpSetStyle, ID: h.(NodeID), Key: name, Value: value})
}

// RemoveStyle implements host.Surface.
func (s *Surface) RemoveStyle(h host.Handle, name string) {
	s.push(Op{Op: OpRemoveStyle, ID: h.(NodeID), Key: name})
}

// AddEventListener implements host.Surface. The handler stays server-side;
// the client only learns that the node now emits the event.
func (s *Surface) AddEventListener(h host.Handle, event string, handler any) {
	id := h.(NodeID)
	s.mu.Lock()
	if s.listeners[id] == nil {
		s.listeners[id] = make(map[string]any)
	}
	s.listeners[id][event] = handler
	s.ops = append(s.ops, Op{Op: OpListen, ID: id, Event: event})
	s.mu.Unlock()
}

// RemoveEventListener implements host.Surface. The handler is matched by
// function identity; a foreign handler is a no-op.
func (s *Surface) RemoveEventListener(h host.Handle, event string, handler any) {
	id := h.(NodeID)
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.listeners[id][event]
	if !ok || reflect.ValueOf(current).Pointer() != reflect.ValueOf(handler).Pointer() {
		return
	}
	delete(s.listeners[id], event)
	s.ops = append(s.ops, Op{Op: OpUnlisten, ID: id, Event: event})
}

// relinkLocked records child under parent, detaching it from any previous
// parent first.
func (s *Surface) relinkLocked(parent, child NodeID) {
	if old, ok := s.parent[child]; ok {
		s.unlinkLocked(old, child)
	}
	s.parent[child] = parent
	s.children[parent] = append(s.children[parent], child)
}

func (s *Surface) unlinkLocked(parent, child NodeID) {
	kids := s.children[parent]
	for i, id := range kids {
		if id == child {
			s.children[parent] = append(kids[:i], kids[i+1:]...)
			return
		}
	}
}

// releaseLocked drops all server-side state for id and its descendants:
// element and listener registrations and the tree links. Late client
// events for released ids then take the unknown-target path.
func (s *Surface) releaseLocked(id NodeID) {
	for _, child := range s.children[id] {
		s.releaseLocked(child)
	}
	delete(s.children, id)
	delete(s.parent, id)
	delete(s.elements, id)
	delete(s.listeners, id)
}

// Append implements host.Surface.
func (s *Surface) Append(parent, child host.Handle) {
	p, c := parent.(NodeID), child.(NodeID)
	s.mu.Lock()
	s.relinkLocked(p, c)
	s.ops = append(s.ops, Op{Op: OpAppend, ID: c, Parent: p})
	s.mu.Unlock()
}

// InsertBefore implements host.Surface.
func (s *Surface) InsertBefore(parent, child, anchor host.Handle) {
	p, c := parent.(NodeID), child.(NodeID)
	op := Op{Op: OpInsertBefore, ID: c, Parent: p}
	if anchor != nil {
		op.Anchor = anchor.(NodeID)
	}
	s.mu.Lock()
	s.relinkLocked(p, c)
	s.ops = append(s.ops, op)
	s.mu.Unlock()
}

// RemoveChild implements host.Surface. The whole removed subtree's
// server-side state is released, not just the direct child's.
func (s *Surface) RemoveChild(parent, child host.Handle) {
	p, c := parent.(NodeID), child.(NodeID)
	s.mu.Lock()
	s.unlinkLocked(p, c)
	s.releaseLocked(c)
	s.ops = append(s.ops, Op{Op: OpRemoveChild, ID: c, Parent: p})
	s.mu.Unlock()
}

// Clear implements host.Surface. Every child subtree's server-side state
// is released.
func (s *Surface) Clear(parent host.Handle) {
	p := parent.(NodeID)
	s.mu.Lock()
	for _, child := range s.children[p] {
		s.releaseLocked(child)
	}
	delete(s.children, p)
	s.ops = append(s.ops, Op{Op: OpClear, ID: p})
	s.mu.Unlock()
}

// IsContainer implements host.Surface. Only element ids this surface
// allocated (and the root) accept children.
func (s *Surface) IsContainer(h host.Handle) bool {
	id, ok := h.(NodeID)
	if !ok {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elements[id]
}

// Root returns the mount container handle.
func (s *Surface) Root() host.Handle {
	return RootID
}

// PendingOps returns how many buffered ops await a flush.
func (s *Surface) PendingOps() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ops)
}

// takeOps drains the buffer and assigns the frame sequence.
func (s *Surface) takeOps() (OpsFrame, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.ops) == 0 || s.closed {
		return OpsFrame{}, false
	}
	s.seq++
	frame := OpsFrame{Type: "ops", Seq: s.seq, Ops: s.ops}
	s.ops = nil
	return frame, true
}

// Flush writes all buffered ops as one frame. An empty buffer writes
// nothing. A write failure closes the surface; later flushes no-op.
func (s *Surface) Flush() {
	frame, ok := s.takeOps()
	if !ok {
		return
	}

	data, err := json.Marshal(frame)
	if err != nil {
		s.logger.Error("frame encode error", "error", err)
		return
	}

	s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		s.logger.Error("write error", "error", err)
		s.Close()
		return
	}
	s.logger.Debug("frame flushed", "seq", frame.Seq, "ops", len(frame.Ops))
}

// Close marks the surface closed and closes the connection.
func (s *Surface) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()
	s.conn.Close()
}

// handlerFor resolves the listener registered for an event frame.
func (s *Surface) handlerFor(id NodeID, event string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	handler, ok := s.listeners[id][event]
	return handler, ok
}
