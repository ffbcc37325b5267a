package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/hsl-camera/internal/capture"
	"github.com/ironsheep/hsl-camera/internal/config"
	"github.com/ironsheep/hsl-camera/internal/detection"
	"github.com/ironsheep/hsl-camera/internal/imaging"
)

//go:embed web
var embeddedWeb embed.FS

// maxUploadBytes bounds image uploads.
const maxUploadBytes = 10 << 20

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 5 * time.Second

// Server serves the web UI and the processing API.
type Server struct {
	cfg       config.ServerConfig
	loader    *imaging.FrameLoader
	pipeline  *detection.Pipeline
	ranges    *config.RangeStore
	snapshots *capture.SnapshotSource
	latest    *capture.LatestSink
	assets    fs.FS
	handler   http.Handler
}

// Deps are the collaborators a Server is built from.
type Deps struct {
	Loader    *imaging.FrameLoader
	Pipeline  *detection.Pipeline
	Ranges    *config.RangeStore
	Snapshots *capture.SnapshotSource
	Latest    *capture.LatestSink
}

// New creates a server instance. Static assets come from cfg.StaticDir when
// set and from the embedded web directory otherwise.
func New(cfg config.ServerConfig, deps Deps) (*Server, error) {
	if deps.Loader == nil || deps.Pipeline == nil || deps.Ranges == nil {
		return nil, fmt.Errorf("server needs a loader, pipeline and range store")
	}
	if deps.Snapshots == nil {
		deps.Snapshots = capture.NewSnapshotSource()
	}
	if deps.Latest == nil {
		deps.Latest = capture.NewLatestSink()
	}

	var assets fs.FS
	if cfg.StaticDir != "" {
		if _, err := os.Stat(cfg.StaticDir); err != nil {
			return nil, fmt.Errorf("static_dir: %w", err)
		}
		assets = os.DirFS(cfg.StaticDir)
	} else {
		sub, err := fs.Sub(embeddedWeb, "web")
		if err != nil {
			return nil, fmt.Errorf("embedded assets: %w", err)
		}
		assets = sub
	}

	s := &Server{
		cfg:       cfg,
		loader:    deps.Loader,
		pipeline:  deps.Pipeline,
		ranges:    deps.Ranges,
		snapshots: deps.Snapshots,
		latest:    deps.Latest,
		assets:    assets,
	}
	s.handler = s.routes()
	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.WithFields(logrus.Fields{
			"function": "Server.Run",
			"addr":     s.cfg.Addr,
			"tls":      s.cfg.TLS,
		}).Info("Server listening")

		var err error
		if s.cfg.TLS {
			err = srv.ListenAndServeTLS(s.cfg.CertFile, s.cfg.KeyFile)
		} else {
			err = srv.ListenAndServe()
		}
		errCh <- err
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logrus.WithField("function", "Server.Run").Info("Server stopped")
	return nil
}

// routes builds the request multiplexer.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	for _, r := range s.routeTable() {
		mux.HandleFunc(r.Pattern, r.handler)
	}
	mux.Handle("GET /", http.FileServerFS(s.assets))
	return logRequests(mux)
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logrus.WithFields(logrus.Fields{
			"method":  r.Method,
			"path":    r.URL.Path,
			"status":  rec.status,
			"elapsed": time.Since(start),
		}).Debug("Request served")
	})
}
