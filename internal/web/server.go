// Package web serves the ledctl status page and its JSON twin.
package web

import (
	"context"
	"net"
	"net/http"

	"github.com/ramos-ahron/Led-Intensity-Controller/internal/status"
)

// Server exposes the status tracker over HTTP: the HTML page at / (and
// /index.html) and machine-readable JSON at /index.json.
type Server struct {
	tracker *status.Tracker
	srv     *http.Server
}

// New creates a Server that will listen on addr.
func New(addr string, tracker *status.Tracker) *Server {
	s := &Server{tracker: tracker}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.page)
	mux.HandleFunc("/index.json", s.json)
	s.srv = &http.Server{Addr: addr, Handler: mux}

	return s
}

// ListenAndServe blocks serving requests until Shutdown.
func (s *Server) ListenAndServe() error {
	return s.srv.ListenAndServe()
}

// Serve serves on an existing listener.
func (s *Server) Serve(ln net.Listener) error {
	return s.srv.Serve(ln)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) page(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && r.URL.Path != "/index.html" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	renderHTML(w, s.tracker.Snapshot())
}

func (s *Server) json(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write(status.FormatJSON(s.tracker.Snapshot()))
}
