package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsdesk/pkg/domain"
	"github.com/umputun/newsdesk/pkg/monitor"
)

func formRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	return req
}

func sampleItems() []domain.NewsItem {
	return []domain.NewsItem{
		{Date: "2024-01-10", Company: "Tesla", Summary: "<b>Deliveries</b> up", Sentiment: "positive",
			Links: []string{"https://example.com/tesla", "javascript:alert(1)"}},
		{Date: "2024-01-12", Company: "Apple Inc", Summary: "New chip", Sentiment: "neutral", Links: []string{}},
		{Date: "2024-01-11", Company: "Boeing", Summary: "Recall", Sentiment: "negative", Links: []string{}},
	}
}

func TestServer_IndexHandler(t *testing.T) {
	srv := testServer(t, idleMonitor(domain.Idle{}), "Apple Inc", "")

	w := doRequest(t, srv, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, body, "Company News Monitor")
	assert.Contains(t, body, `value="Apple Inc"`)
	assert.Contains(t, body, `hx-put="/companies/1"`)
	assert.Contains(t, body, `id="outcome"`)
	assert.NotContains(t, body, `class="banner banner-error"`)
	assert.NotContains(t, body, `disabled>Fetch News`)
}

func TestServer_IndexHandlerFetchDisabled(t *testing.T) {
	srv := testServer(t, idleMonitor(domain.Idle{}), " ", "")

	w := doRequest(t, srv, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="false" disabled>Fetch News`)
	assert.Contains(t, w.Body.String(), `value="true" disabled>Force Refresh`)
}

func TestServer_CompanyRows(t *testing.T) {
	srv := testServer(t, idleMonitor(domain.Idle{}))

	t.Run("add", func(t *testing.T) {
		w := doRequest(t, srv, httptest.NewRequest(http.MethodPost, "/companies", http.NoBody))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 2, srv.companies.Len())
		assert.Contains(t, w.Body.String(), `id="companies"`)
		assert.Contains(t, w.Body.String(), `hx-delete="/companies/1"`)
	})

	t.Run("update", func(t *testing.T) {
		w := doRequest(t, srv, formRequest(http.MethodPut, "/companies/1", url.Values{"company": {" Tesla "}}))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"", " Tesla "}, srv.companies.Snapshot(), "value stored as typed")
		assert.Contains(t, w.Body.String(), `value=" Tesla "`)
	})

	t.Run("update with whole form posted", func(t *testing.T) {
		form := url.Values{"company": {"", "Tesla"}}
		w := doRequest(t, srv, formRequest(http.MethodPut, "/companies/1", form))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"", "Tesla"}, srv.companies.Snapshot())
		assert.Contains(t, w.Body.String(), `value="Tesla"`)

		form = url.Values{"company": {"Apple Inc", "Tesla"}}
		w = doRequest(t, srv, formRequest(http.MethodPut, "/companies/0", form))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"Apple Inc", "Tesla"}, srv.companies.Snapshot())

		form = url.Values{"company": {"Apple Inc", " Tesla "}}
		w = doRequest(t, srv, formRequest(http.MethodPut, "/companies/1", form))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"Apple Inc", " Tesla "}, srv.companies.Snapshot())
	})

	t.Run("update out of range", func(t *testing.T) {
		w := doRequest(t, srv, formRequest(http.MethodPut, "/companies/5", url.Values{"company": {"x"}}))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "error")
	})

	t.Run("update bad index", func(t *testing.T) {
		w := doRequest(t, srv, formRequest(http.MethodPut, "/companies/abc", url.Values{"company": {"x"}}))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid row index")
	})

	t.Run("remove", func(t *testing.T) {
		w := doRequest(t, srv, httptest.NewRequest(http.MethodDelete, "/companies/0", http.NoBody))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{" Tesla "}, srv.companies.Snapshot())
	})

	t.Run("remove last row rejected", func(t *testing.T) {
		w := doRequest(t, srv, httptest.NewRequest(http.MethodDelete, "/companies/0", http.NoBody))
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, 1, srv.companies.Len())
	})
}

func TestServer_FetchHandler(t *testing.T) {
	tbl := []struct {
		name     string
		outcome  domain.Outcome
		contains []string
		missing  []string
	}{
		{name: "failed", outcome: domain.Failed{Message: "Service unavailable"},
			contains: []string{"banner-error", "Service unavailable", `hx-post="/reset"`}, missing: []string{"<table"}},
		{name: "empty notice", outcome: domain.Succeeded{Items: []domain.NewsItem{}, Notice: monitor.NoNewsNotice},
			contains: []string{"banner-notice", monitor.NoNewsNotice}, missing: []string{"banner-error", "<table"}},
		{name: "results", outcome: domain.Succeeded{Items: sampleItems()},
			contains: []string{"<table", "Deliveries up", "sentiment positive", `href="https://example.com/tesla"`, "Source 1", "Date ▼"},
			missing:  []string{"banner", "javascript:", "<b>"}},
		{name: "idle", outcome: domain.Idle{}, missing: []string{"banner", "<table"}},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			mon := idleMonitor(domain.Idle{})
			mon.FetchNewsFunc = func(context.Context, []string, bool) domain.Outcome { return tt.outcome }
			srv := testServer(t, mon, "Tesla")

			w := doRequest(t, srv, formRequest(http.MethodPost, "/fetch", url.Values{"force": {"false"}}))
			require.Equal(t, http.StatusOK, w.Code)
			for _, s := range tt.contains {
				assert.Contains(t, w.Body.String(), s)
			}
			for _, s := range tt.missing {
				assert.NotContains(t, w.Body.String(), s)
			}
		})
	}
}

func TestServer_FetchHandlerRequest(t *testing.T) {
	mon := idleMonitor(domain.Idle{})
	mon.FetchNewsFunc = func(context.Context, []string, bool) domain.Outcome {
		return domain.Succeeded{Items: sampleItems()}
	}
	srv := testServer(t, mon, "Apple", "")

	t.Run("posted rows replace stored ones", func(t *testing.T) {
		form := url.Values{"company": {"Apple Inc", "Tesla"}, "force": {"true"}}
		w := doRequest(t, srv, formRequest(http.MethodPost, "/fetch", form))
		require.Equal(t, http.StatusOK, w.Code)

		calls := mon.FetchNewsCalls()
		require.Len(t, calls, 1)
		assert.Equal(t, []string{"Apple Inc", "Tesla"}, calls[0].Identifiers)
		assert.True(t, calls[0].ForceRefresh)
		assert.Equal(t, []string{"Apple Inc", "Tesla"}, srv.companies.Snapshot())
	})

	t.Run("mismatched rows ignored", func(t *testing.T) {
		form := url.Values{"company": {"Boeing"}}
		w := doRequest(t, srv, formRequest(http.MethodPost, "/fetch", form))
		require.Equal(t, http.StatusOK, w.Code)

		calls := mon.FetchNewsCalls()
		require.Len(t, calls, 2)
		assert.Equal(t, []string{"Apple Inc", "Tesla"}, calls[1].Identifiers)
		assert.False(t, calls[1].ForceRefresh)
	})
}

func TestServer_ResultsHandler(t *testing.T) {
	srv := testServer(t, idleMonitor(domain.Succeeded{Items: sampleItems()}))

	order := func(body string) []int {
		return []int{strings.Index(body, "Apple Inc"), strings.Index(body, "Boeing"), strings.Index(body, "Tesla")}
	}

	t.Run("default date desc", func(t *testing.T) {
		w := doRequest(t, srv, httptest.NewRequest(http.MethodGet, "/results", http.NoBody))
		require.Equal(t, http.StatusOK, w.Code)
		pos := order(w.Body.String())
		assert.Less(t, pos[0], pos[1], "apple 01-12 before boeing 01-11")
		assert.Less(t, pos[1], pos[2], "boeing 01-11 before tesla 01-10")
		assert.Contains(t, w.Body.String(), "2024-01-12", "date formatted with configured layout")
	})

	t.Run("company asc", func(t *testing.T) {
		w := doRequest(t, srv, httptest.NewRequest(http.MethodGet, "/results?sort=company", http.NoBody))
		require.Equal(t, http.StatusOK, w.Code)
		pos := order(w.Body.String())
		assert.Less(t, pos[0], pos[1])
		assert.Less(t, pos[1], pos[2])
		assert.Contains(t, w.Body.String(), "Company ▲")
	})

	t.Run("company again flips to desc", func(t *testing.T) {
		w := doRequest(t, srv, httptest.NewRequest(http.MethodGet, "/results?sort=company", http.NoBody))
		require.Equal(t, http.StatusOK, w.Code)
		pos := order(w.Body.String())
		assert.Greater(t, pos[0], pos[1])
		assert.Greater(t, pos[1], pos[2])
		assert.Equal(t, domain.SortSpec{Key: domain.SortByCompany, Direction: domain.Descending}, srv.presenter.Spec())
	})

	t.Run("loading", func(t *testing.T) {
		loading := testServer(t, idleMonitor(domain.Loading{}))
		w := doRequest(t, loading, httptest.NewRequest(http.MethodGet, "/results", http.NoBody))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `class="banner banner-loading">Loading news...`)
		assert.NotContains(t, w.Body.String(), "<table")
	})

	t.Run("unknown key", func(t *testing.T) {
		w := doRequest(t, srv, httptest.NewRequest(http.MethodGet, "/results?sort=score", http.NoBody))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "unknown sort key")
	})
}

func TestServer_ResetHandler(t *testing.T) {
	var outcome domain.Outcome = domain.Failed{Message: "boom"}
	mon := idleMonitor(nil)
	mon.OutcomeFunc = func() domain.Outcome { return outcome }
	mon.ResetFunc = func() { outcome = domain.Idle{} }
	srv := testServer(t, mon)

	w := doRequest(t, srv, httptest.NewRequest(http.MethodPost, "/reset", http.NoBody))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, mon.ResetCalls(), 1)
	assert.NotContains(t, w.Body.String(), "boom")
}
