package server

import (
	"log"
	"net/http"

	"github.com/umputun/newsdesk/pkg/domain"
	"github.com/umputun/newsdesk/pkg/feed"
)

// rssFeedHandler serves the latest fetched news as RSS, empty feed if nothing was fetched
func (s *Server) rssFeedHandler(w http.ResponseWriter, r *http.Request) {
	var items []domain.NewsItem
	if res, ok := s.monitor.Outcome().(domain.Succeeded); ok {
		items = res.Items
	}

	rss, err := feed.NewGenerator(baseURL(r)).GenerateRSS(items)
	if err != nil {
		log.Printf("[ERROR] failed to generate RSS: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write([]byte(rss)); err != nil {
		log.Printf("[WARN] failed to write RSS response: %v", err)
	}
}

// baseURL builds the external url of the server from the request
func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
