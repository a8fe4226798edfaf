package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ncuwatch/taoyuanwx/internal/forecast"
	"github.com/ncuwatch/taoyuanwx/internal/metrics"
	"github.com/ncuwatch/taoyuanwx/internal/models"
	"github.com/ncuwatch/taoyuanwx/internal/store"
)

type Server struct {
	store   *store.Store
	addr    string
	loc     *time.Location
	grouper *forecast.Grouper
}

func NewServer(st *store.Store, addr string, loc *time.Location) *Server {
	return &Server{
		store:   st,
		addr:    addr,
		loc:     loc,
		grouper: forecast.NewGrouper(loc),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/variables", s.handleVariables)
	mux.HandleFunc("/api/table", s.handleTable)
	mux.HandleFunc("/api/map", s.handleMap)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// dataset returns the latest snapshot, or writes 503 and returns nil when no
// fetch has succeeded yet.
func (s *Server) dataset(w http.ResponseWriter, endpoint string) *models.Dataset {
	ds := s.store.Latest()
	if ds == nil {
		metrics.HTTPRequestsTotal.WithLabelValues(endpoint, "unavailable").Inc()
		http.Error(w, "no dataset loaded yet", http.StatusServiceUnavailable)
		return nil
	}
	metrics.DatasetAgeSeconds.Set(time.Since(ds.FetchedAt).Seconds())
	return ds
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ds := s.store.Latest()
	if ds == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		writeJSON(w, map[string]string{"status": "starting"})
		return
	}
	writeJSON(w, map[string]any{
		"status":    "ok",
		"districts": len(ds.Districts),
		"fetchedAt": ds.FetchedAt.In(s.loc).Format(time.RFC3339),
	})
}

func (s *Server) handleVariables(w http.ResponseWriter, r *http.Request) {
	ds := s.dataset(w, "variables")
	if ds == nil {
		return
	}
	metrics.HTTPRequestsTotal.WithLabelValues("variables", "ok").Inc()
	writeJSON(w, BuildVariables(ds))
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	ds := s.dataset(w, "table")
	if ds == nil {
		return
	}

	q := r.URL.Query()
	variable := q.Get("var")
	if variable == "" {
		variable = forecast.VarTemperature
	}
	view, err := BuildTable(ds, s.grouper, variable, q.Get("sub"), q.Get("mode"))
	if err != nil {
		metrics.HTTPRequestsTotal.WithLabelValues("table", "bad_request").Inc()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	metrics.HTTPRequestsTotal.WithLabelValues("table", "ok").Inc()
	writeJSON(w, view)
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	ds := s.dataset(w, "map")
	if ds == nil {
		return
	}

	q := r.URL.Query()
	variable := q.Get("var")
	if variable == "" {
		variable = forecast.VarTemperature
	}
	// Without an explicit group the map shows the maximum over every
	// period, the same default view the dashboard opens with.
	group := -1
	if raw := q.Get("t"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			metrics.HTTPRequestsTotal.WithLabelValues("map", "bad_request").Inc()
			http.Error(w, "t must be an integer group index", http.StatusBadRequest)
			return
		}
		group = n
	}

	view, err := BuildMap(ds, s.grouper, variable, q.Get("sub"), q.Get("mode"), group)
	if err != nil {
		metrics.HTTPRequestsTotal.WithLabelValues("map", "bad_request").Inc()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	metrics.HTTPRequestsTotal.WithLabelValues("map", "ok").Inc()
	writeJSON(w, view)
}
