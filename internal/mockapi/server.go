package mockapi

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/five82/todoterm/internal/logging"
	"github.com/five82/todoterm/internal/todos"
)

// Options tunes the simulated backend.
type Options struct {
	// Latency delays every response.
	Latency time.Duration
	// FailRate is the probability in [0, 1] that a request answers 500.
	FailRate float64
	Logger   zerolog.Logger
	// Float64 overrides the random source used for FailRate.
	Float64 func() float64
}

// Server serves the todo REST contract from a Repository.
type Server struct {
	repo   *Repository
	opts   Options
	log    zerolog.Logger
	router *mux.Router
}

// NewServer wires the routes for repo.
func NewServer(repo *Repository, opts Options) *Server {
	if opts.Float64 == nil {
		opts.Float64 = rand.Float64
	}
	s := &Server{
		repo: repo,
		opts: opts,
		log:  logging.Component(opts.Logger, "mockapi"),
	}

	r := mux.NewRouter()
	r.Use(s.logRequests, s.simulate)
	r.HandleFunc("/todos", s.listTodos).Methods(http.MethodGet)
	r.HandleFunc("/todos", s.createTodo).Methods(http.MethodPost)
	r.HandleFunc("/todos/{id:[0-9]+}", s.updateTodo).Methods(http.MethodPatch)
	r.HandleFunc("/todos/{id:[0-9]+}", s.deleteTodo).Methods(http.MethodDelete)
	s.router = r
	return s
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.log.Info().Str("addr", ln.Addr().String()).Msg("mock api listening")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.log.Info().Msg("mock api stopped")
	return nil
}

func (s *Server) listTodos(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("userId"), 10, 64)
	if err != nil {
		http.Error(w, "userId must be a number", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, s.repo.List(userID))
}

func (s *Server) createTodo(w http.ResponseWriter, r *http.Request) {
	var req todos.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	item, err := s.repo.Create(req)
	if err != nil {
		if errors.Is(err, ErrInvalidTitle) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) updateTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req todos.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	item, err := s.repo.Update(id, req)
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "Todo not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidTitle):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case err != nil:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	default:
		writeJSON(w, http.StatusOK, item)
	}
}

func (s *Server) deleteTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "Todo not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
