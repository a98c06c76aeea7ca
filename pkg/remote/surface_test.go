package remote_test

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/loom-ui/loom/pkg/host"
	"github.com/loom-ui/loom/pkg/remote"
	"github.com/loom-ui/loom/pkg/runtime"
	"github.com/loom-ui/loom/pkg/vdom"
)

// newTestConn establishes a real websocket pair over httptest.
func newTestConn(t *testing.T) (server, client *websocket.Conn) {
	t.Helper()
	upgrader := websocket.Upgrader{}
	connCh := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		connCh <- c
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	select {
	case server = <-connCh:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for server conn")
	}
	t.Cleanup(func() { server.Close() })
	return server, client
}

func readFrame(t *testing.T, conn *websocket.Conn) remote.OpsFrame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var frame remote.OpsFrame
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("read frame: %v", err)
	}
	return frame
}

func TestFlushBatchesOpsIntoOneFrame(t *testing.T) {
	server, client := newTestConn(t)
	s := remote.NewSurface(server)

	el := s.CreateElement("div")
	text := s.CreateText("hi")
	s.SetAttribute(el, "class", "box")
	s.Append(el, text)
	s.Append(remote.RootID, el)
	s.Flush()

	frame := readFrame(t, client)
	if frame.Type != "ops" || frame.Seq != 1 {
		t.Errorf("frame type=%q seq=%d", frame.Type, frame.Seq)
	}
	if len(frame.Ops) != 5 {
		t.Fatalf("ops = %d, want 5", len(frame.Ops))
	}
	if frame.Ops[0].Op != remote.OpCreateElement || frame.Ops[0].Tag != "div" {
		t.Errorf("first op = %+v", frame.Ops[0])
	}
	if frame.Ops[4].Op != remote.OpAppend || frame.Ops[4].Parent != remote.RootID {
		t.Errorf("last op = %+v", frame.Ops[4])
	}

	// An empty buffer flushes nothing; the next batch continues the
	// sequence.
	s.Flush()
	s.SetText(text, "bye")
	s.Flush()

	frame = readFrame(t, client)
	if frame.Seq != 2 || len(frame.Ops) != 1 || frame.Ops[0].Op != remote.OpSetText {
		t.Errorf("frame = %+v", frame)
	}
}

func TestIsContainer(t *testing.T) {
	server, _ := newTestConn(t)
	s := remote.NewSurface(server)

	el := s.CreateElement("div")
	text := s.CreateText("x")

	if !s.IsContainer(remote.RootID) {
		t.Error("root must be a container")
	}
	if !s.IsContainer(el) {
		t.Error("element must be a container")
	}
	if s.IsContainer(text) {
		t.Error("text must not be a container")
	}
	if s.IsContainer("bogus") {
		t.Error("foreign handle must not be a container")
	}
}

func TestRemoveChildReleasesSubtree(t *testing.T) {
	server, client := newTestConn(t)
	s := remote.NewSurface(server)

	list := s.CreateElement("ul")
	item := s.CreateElement("li")
	removed := make(chan host.Event, 1)
	s.AddEventListener(item, "click", func(ev host.Event) { removed <- ev })
	s.Append(list, item)
	s.Append(remote.RootID, list)

	keep := s.CreateElement("button")
	kept := make(chan host.Event, 1)
	s.AddEventListener(keep, "click", func(ev host.Event) { kept <- ev })
	s.Append(remote.RootID, keep)

	s.RemoveChild(remote.RootID, list)

	if s.IsContainer(list) || s.IsContainer(item) {
		t.Error("removed subtree ids must stop being containers")
	}
	if !s.IsContainer(keep) {
		t.Error("surviving node must stay a container")
	}

	go s.ReadLoop(func(fn func()) { fn() })

	// The removed descendant's event must take the unknown-target path;
	// frames process in order, so the surviving node's event arriving
	// proves the first one was dropped.
	if err := client.WriteJSON(remote.EventFrame{
		Type: "event", ID: item.(remote.NodeID), Event: "click",
	}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := client.WriteJSON(remote.EventFrame{
		Type: "event", ID: keep.(remote.NodeID), Event: "click",
	}); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case <-kept:
	case <-time.After(2 * time.Second):
		t.Fatal("surviving handler never ran")
	}
	select {
	case <-removed:
		t.Error("handler for a removed descendant must not resolve")
	default:
	}
}

func TestClearReleasesChildren(t *testing.T) {
	server, _ := newTestConn(t)
	s := remote.NewSurface(server)

	outer := s.CreateElement("div")
	inner := s.CreateElement("div")
	s.Append(remote.RootID, outer)
	s.Append(outer, inner)

	s.Clear(remote.RootID)

	if s.IsContainer(outer) || s.IsContainer(inner) {
		t.Error("cleared subtree ids must stop being containers")
	}
	if !s.IsContainer(remote.RootID) {
		t.Error("root must survive a clear")
	}
}

func TestRemoveEventListenerMatchesIdentity(t *testing.T) {
	server, _ := newTestConn(t)
	s := remote.NewSurface(server)

	el := s.CreateElement("button")
	attached := func(host.Event) {}
	foreign := func(host.Event) {}
	s.AddEventListener(el, "click", attached)

	before := s.PendingOps()
	s.RemoveEventListener(el, "click", foreign)
	if s.PendingOps() != before {
		t.Error("removal with a foreign handler must be a no-op")
	}

	s.RemoveEventListener(el, "click", attached)
	if s.PendingOps() != before+1 {
		t.Error("removal with the attached handler must emit an unlisten")
	}
}

func TestReadLoopDispatchesEvents(t *testing.T) {
	server, client := newTestConn(t)
	s := remote.NewSurface(server)

	el := s.CreateElement("button")
	events := make(chan host.Event, 1)
	s.AddEventListener(el, "click", func(ev host.Event) { events <- ev })

	go s.ReadLoop(func(fn func()) { fn() })

	// A malformed frame is logged and skipped, not fatal.
	if err := client.WriteMessage(websocket.TextMessage, []byte("{broken")); err != nil {
		t.Fatalf("write: %v", err)
	}
	// An event for an unregistered target is dropped.
	if err := client.WriteJSON(remote.EventFrame{Type: "event", ID: 999, Event: "click"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := client.WriteJSON(remote.EventFrame{
		Type: "event", ID: el.(remote.NodeID), Event: "click", Value: "v",
	}); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case ev := <-events:
		if ev.Type != "click" || ev.Value != "v" {
			t.Errorf("event = %+v", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("handler never ran")
	}
}

func TestSessionOverRemoteSurface(t *testing.T) {
	server, client := newTestConn(t)
	surface := remote.NewSurface(server)
	session := runtime.NewSession(surface, runtime.WithOnIdle(surface.Flush))
	go surface.ReadLoop(session.Dispatch)

	counter := func(ctx vdom.RenderCtx, props vdom.Props) *vdom.VNode {
		n, set := runtime.UseState(ctx, 0)
		return vdom.Button(
			vdom.OnClick(func() { set.Update(func(n int) int { return n + 1 }) }),
			vdom.Text(strconv.Itoa(n)),
		)
	}

	if err := session.Mount(vdom.H(counter, nil), surface.Root()); err != nil {
		t.Fatalf("Mount: %v", err)
	}

	frame := readFrame(t, client)
	var buttonID remote.NodeID
	var sawListen bool
	for _, op := range frame.Ops {
		if op.Op == remote.OpCreateElement && op.Tag == "button" {
			buttonID = op.ID
		}
		if op.Op == remote.OpListen && op.Event == "click" {
			sawListen = true
		}
	}
	if buttonID == 0 || !sawListen {
		t.Fatalf("initial frame missing button or listen: %+v", frame.Ops)
	}

	if err := client.WriteJSON(remote.EventFrame{Type: "event", ID: buttonID, Event: "click"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	frame = readFrame(t, client)
	var sawUpdate bool
	for _, op := range frame.Ops {
		if op.Op == remote.OpSetText && op.Text == "1" {
			sawUpdate = true
		}
	}
	if !sawUpdate {
		t.Errorf("update frame missing setText: %+v", frame.Ops)
	}
}
