package server

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/adfharrison1/go-cms/pkg/api"
	"github.com/adfharrison1/go-cms/pkg/metrics"
	"github.com/adfharrison1/go-cms/pkg/storage"
)

// Server holds references to storage, router, etc.
type Server struct {
	router  *mux.Router
	store   *storage.FileStore
	metrics *metrics.Metrics
}

// NewServer creates a new instance of Server around an existing store.
// m may be nil, in which case /metrics is not served.
func NewServer(store *storage.FileStore, m *metrics.Metrics) *Server {
	s := &Server{
		router:  mux.NewRouter(),
		store:   store,
		metrics: m,
	}

	// Define HTTP routes
	handler := api.NewHandler(store)
	handler.RegisterRoutes(s.router)
	if m != nil {
		s.router.Handle("/metrics", m.Handler()).Methods("GET")
	}

	s.router.Use(requestIDMiddleware)
	s.router.Use(requestLoggerMiddleware)
	s.router.Use(metricsMiddleware(m))

	// Customize NotFoundHandler to log 404s
	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("WARN: No route found for %s %s", r.Method, r.URL.Path)
		api.WriteJSONError(w, http.StatusNotFound, "No route for "+r.Method+" "+r.URL.Path)
	})
	s.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("WARN: Method %s not allowed for %s", r.Method, r.URL.Path)
		api.WriteJSONError(w, http.StatusMethodNotAllowed, "Method "+r.Method+" not allowed")
	})

	return s
}

// InitDB loads the document once so a missing file is created at startup
// rather than on the first request.
func (s *Server) InitDB() error {
	counts, err := s.store.Counts()
	if err != nil {
		log.Printf("ERROR: Could not load content from file %s: %v", s.store.Path(), err)
		return err
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	log.Printf("INFO: Loaded %d records from %s", total, s.store.Path())
	return nil
}

// SnapshotDB takes a final snapshot when snapshots are enabled.
func (s *Server) SnapshotDB() {
	if !s.store.SnapshotsEnabled() {
		return
	}
	if _, err := s.store.WriteSnapshot(); err != nil {
		log.Printf("ERROR: Could not snapshot %s: %v", s.store.Path(), err)
	}
}

// StartBackgroundWorkers starts the store's periodic snapshot worker.
func (s *Server) StartBackgroundWorkers() {
	s.store.StartBackgroundWorkers()
}

// StopBackgroundWorkers stops the store's background workers.
func (s *Server) StopBackgroundWorkers() {
	s.store.StopBackgroundWorkers()
}

// Router exposes the internal mux.Router.
func (s *Server) Router() http.Handler {
	return s.router
}
