package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/umputun/newsdesk/pkg/domain"
	"github.com/umputun/newsdesk/pkg/monitor"
)

const healthTimeout = 5 * time.Second

// fetchRequest is the body of the JSON fetch endpoint
type fetchRequest struct {
	Companies    []string `json:"companies"`
	ForceRefresh bool     `json:"force_refresh"`
}

// fetchResponse mirrors an outcome for API clients
type fetchResponse struct {
	State   domain.State      `json:"state"`
	Items   []domain.NewsItem `json:"items"`
	Message string            `json:"message,omitempty"`
	Notice  string            `json:"notice,omitempty"`
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	outcome := s.monitor.Outcome()
	items := 0
	if res, ok := outcome.(domain.Succeeded); ok {
		items = len(res.Items)
	}

	status := map[string]interface{}{
		"status":     "ok",
		"version":    s.version,
		"time":       time.Now().UTC(),
		"state":      domain.StateOf(outcome),
		"items":      items,
		"generation": s.monitor.Generation(),
		"backend":    s.backendStatus(r.Context()),
	}
	renderJSON(w, r, http.StatusOK, status)
}

// backendStatus checks the news service with a short timeout
func (s *Server) backendStatus(ctx context.Context) string {
	if s.health == nil {
		return "unknown"
	}
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()
	if err := s.health.Health(ctx); err != nil {
		log.Printf("[WARN] news service health check failed: %v", err)
		return "unavailable"
	}
	return "ok"
}

// apiFetchHandler runs a fetch for companies from the JSON body
func (s *Server) apiFetchHandler(w http.ResponseWriter, r *http.Request) {
	var req fetchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}

	outcome := s.monitor.FetchNews(r.Context(), req.Companies, req.ForceRefresh)
	resp := fetchResponse{State: domain.StateOf(outcome), Items: []domain.NewsItem{}}
	code := http.StatusOK
	switch o := outcome.(type) {
	case domain.Succeeded:
		resp.Items = o.Items
		resp.Notice = o.Notice
	case domain.Failed:
		resp.Message = o.Message
		code = http.StatusBadGateway
		if len(monitor.Companies(req.Companies)) == 0 {
			code = http.StatusBadRequest
		}
	}
	renderJSON(w, r, code, resp)
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
