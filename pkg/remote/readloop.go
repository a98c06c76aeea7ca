package remote

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"github.com/loom-ui/loom/pkg/host"
)

// ReadLoop reads event frames from the client until the connection
// closes. Each resolved event runs through dispatch, which must execute
// the function as one session turn (runtime.Session.Dispatch). The loop
// blocks; run it on the connection's goroutine.
func (s *Surface) ReadLoop(dispatch func(fn func())) {
	defer s.Close()

	for {
		s.conn.SetReadDeadline(time.Now().Add(s.readTimeout))

		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
			}
			return
		}

		var frame EventFrame
		if err := json.Unmarshal(msg, &frame); err != nil || frame.Type != "event" {
			s.logger.Error("malformed client frame",
				"code", "E200", "error", err, "bytes", len(msg))
			continue
		}

		handler, ok := s.handlerFor(frame.ID, frame.Event)
		if !ok {
			// Benign during races: the node may have unmounted while the
			// event was in flight.
			s.logger.Warn("unknown event target",
				"code", "E201", "id", frame.ID, "event", frame.Event)
			continue
		}

		ev := host.Event{
			Type:    frame.Event,
			Value:   frame.Value,
			Checked: frame.Checked,
			Key:     frame.Key,
		}
		dispatch(func() { host.Invoke(handler, ev) })
	}
}
