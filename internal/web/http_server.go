package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rook-computer/clockface/internal/assets"
)

type HTTPServer struct {
	Addr string

	// StaticDir, when set to an existing directory, is served at "/".
	// The API remains available under /api/v1/.
	StaticDir string

	// DevMode enables permissive CORS for a UI served from elsewhere.
	DevMode bool

	// ExtraRoutes, when set, may add routes to the mux before serving.
	ExtraRoutes func(mux *http.ServeMux)

	Deps   APIV1Deps
	Logger sysLogger

	mu     sync.Mutex
	srv    *http.Server
	ln     net.Listener
	closed bool
}

// sysLogger is the logging shape shared with the rest of the tree.
type sysLogger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

func NewHTTPServer(addr string, deps APIV1Deps) *HTTPServer {
	return &HTTPServer{Addr: addr, Deps: deps}
}

// Handler builds the server's handler without listening.
func (s *HTTPServer) Handler() http.Handler {
	mux := NewDefaultMux(s.StaticDir, s.Deps)
	if s.ExtraRoutes != nil {
		s.ExtraRoutes(mux)
	}
	var h http.Handler = mux
	if s.DevMode {
		h = WithDevCORS(h)
	}
	return h
}

func (s *HTTPServer) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errors.New("web server already stopped")
	}
	if s.srv != nil {
		return nil
	}

	addr := s.Addr
	if addr == "" {
		addr = ":8080"
	}

	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		s.srv = nil
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	s.ln = ln
	if s.Logger != nil {
		s.Logger.Infof("web", "control API listening on %s", ln.Addr())
	}

	go func() {
		<-ctx.Done()
		_ = s.Stop()
	}()

	srv, logger := s.srv, s.Logger
	go func() {
		err := srv.Serve(ln)
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return
		}
		if logger != nil {
			logger.Errorf("web", "serve: %v", err)
		}
	}()

	return nil
}

func (s *HTTPServer) Stop() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	srv := s.srv
	ln := s.ln
	s.srv = nil
	s.ln = nil
	s.mu.Unlock()

	if ln != nil {
		_ = ln.Close()
	}
	if srv == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

// StaticUIHandler serves dir at '/', or the embedded control page when dir
// is empty.
func StaticUIHandler(dir string) http.Handler {
	if dir == "" {
		return cleanPath(http.FileServer(http.FS(assets.WebUI)))
	}
	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		})
	}
	return cleanPath(http.FileServer(http.Dir(dir)))
}

// cleanPath guards against parent directory traversal.
func cleanPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.URL.Path = filepath.ToSlash(filepath.Clean("/" + r.URL.Path))
		next.ServeHTTP(w, r)
	})
}
