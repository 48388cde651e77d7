// Package server serves the task REST contract backed by a local store.
package server

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"task-manager/internal/api"
	"task-manager/internal/logging"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// TasksPath is where the task collection is mounted.
const TasksPath = "/api/tasks"

const shutdownTimeout = 5 * time.Second

// Options configures a Server.
type Options struct {
	Addr string
	// AllowedOrigins lists CORS origins; empty allows any origin.
	AllowedOrigins []string
}

// Server exposes a Backend over HTTP.
type Server struct {
	backend api.Backend
	opts    Options
	handler http.Handler
}

// New builds the router, middleware and CORS policy for backend.
func New(backend api.Backend, opts Options) *Server {
	s := &Server{backend: backend, opts: opts}

	r := mux.NewRouter()
	r.Use(loggingMiddleware)

	r.HandleFunc(TasksPath, s.listTasks).Methods(http.MethodGet)
	r.HandleFunc(TasksPath, s.createTask).Methods(http.MethodPost)
	r.HandleFunc(TasksPath+"/{id}", s.getTask).Methods(http.MethodGet)
	r.HandleFunc(TasksPath+"/{id}", s.updateTask).Methods(http.MethodPut)
	r.HandleFunc(TasksPath+"/{id}", s.deleteTask).Methods(http.MethodDelete)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.handler = gorillahandlers.CORS(
		gorillahandlers.AllowedHeaders([]string{"X-Requested-With", "Content-Type", "Accept"}),
		gorillahandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorillahandlers.AllowedOrigins(origins),
	)(r)

	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe serves on the configured address until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Infof("task server listening on %s (collection at %s)", ln.Addr(), TasksPath)
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logging.Infof("shutting down task server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
