package serve

import (
	_ "embed"
	"net/http"
)

// indexHTML is the embedded thin client: a page that opens the websocket,
// mirrors op frames into the real DOM, and reports events back.
//
//go:embed client/index.html
var indexHTML []byte

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(indexHTML)
}
