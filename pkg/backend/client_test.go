package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_FetchNews(t *testing.T) {
	t.Run("request shape and items", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/fetch-news", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.Equal(t, "application/json", r.Header.Get("Accept"))
			assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			assert.JSONEq(t, `{"companies":["Apple Inc","Tesla"],"force_refresh":true}`, string(body))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"success":true,"message":"ok","data":[
				{"date":"2024-01-15","company":"Apple Inc","summary":"s1","sentiment":"positive","links":["https://a.com/1"],"cached":true},
				{"date":"2024-01-16","company":"Tesla","summary":"s2","sentiment":"negative"}
			]}`))
		}))
		defer srv.Close()

		c := NewClient(Params{URL: srv.URL + "/", Timeout: time.Second})
		items, err := c.FetchNews(context.Background(), Request{Companies: []string{"Apple Inc", "Tesla"}, ForceRefresh: true})
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "Apple Inc", items[0].Company)
		assert.Equal(t, []string{"https://a.com/1"}, items[0].Links)
		assert.True(t, items[0].IsCached())
		assert.Equal(t, "Tesla", items[1].Company)
		assert.Equal(t, []string{}, items[1].Links, "missing links become empty")
		assert.False(t, items[1].IsCached())
	})

	t.Run("custom fetch path", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v2/news", r.URL.Path)
			_, _ = w.Write([]byte(`{"data":[]}`))
		}))
		defer srv.Close()

		c := NewClient(Params{URL: srv.URL, FetchPath: "/v2/news"})
		items, err := c.FetchNews(context.Background(), Request{Companies: []string{"x"}})
		require.NoError(t, err)
		assert.Empty(t, items)
		assert.NotNil(t, items)
	})

	tbl := []struct {
		name    string
		status  int
		body    string
		wantErr string
		check   func(t *testing.T, err error)
	}{
		{name: "server error with detail", status: 500, body: `{"detail":"db down"}`, wantErr: "db down",
			check: func(t *testing.T, err error) {
				var se *ServerError
				require.ErrorAs(t, err, &se)
				assert.Equal(t, 500, se.Status)
			}},
		{name: "server error unparsable body", status: 500, body: `<html>oops</html>`, wantErr: "Server error: 500"},
		{name: "server error without detail", status: 502, body: `{"error":"bad gateway"}`, wantErr: "Server error: 502"},
		{name: "server error empty detail", status: 503, body: `{"detail":""}`, wantErr: "Server error: 503"},
		{name: "server error non-string detail", status: 422, body: `{"detail":[{"loc":["body"],"msg":"field required"}]}`,
			wantErr: "Server error: 422"},
		{name: "bad request", status: 400, body: `{"detail":"No companies provided"}`, wantErr: "No companies provided"},
		{name: "data not an array", status: 200, body: `{"data":"not an array"}`, wantErr: "Invalid response format from server",
			check: func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrMalformedResponse) }},
		{name: "data missing", status: 200, body: `{"success":true}`, wantErr: "Invalid response format from server"},
		{name: "data null", status: 200, body: `{"data":null}`, wantErr: "Invalid response format from server"},
		{name: "data object", status: 200, body: `{"data":{"a":1}}`, wantErr: "Invalid response format from server"},
		{name: "item with wrong types", status: 200, body: `{"data":[{"date":1}]}`, wantErr: "Invalid response format from server"},
		{name: "invalid json", status: 200, body: `{"data":[`, wantErr: "decode response:"},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(Params{URL: srv.URL, Timeout: time.Second})
			items, err := c.FetchNews(context.Background(), Request{Companies: []string{"Apple"}})
			require.Error(t, err)
			assert.Nil(t, items)
			assert.Contains(t, err.Error(), tt.wantErr)
			if tt.check != nil {
				tt.check(t, err)
			}
		})
	}

	t.Run("transport error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := srv.URL
		srv.Close()

		c := NewClient(Params{URL: url, Timeout: time.Second})
		_, err := c.FetchNews(context.Background(), Request{Companies: []string{"Apple"}})
		require.Error(t, err)
		var te *TransportError
		require.ErrorAs(t, err, &te)
		assert.NotEmpty(t, err.Error())
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		c := NewClient(Params{URL: srv.URL, Timeout: 20 * time.Millisecond})
		_, err := c.FetchNews(context.Background(), Request{Companies: []string{"Apple"}})
		require.Error(t, err)
		var te *TransportError
		require.ErrorAs(t, err, &te)
		assert.Contains(t, err.Error(), "Client.Timeout")
	})

	t.Run("canceled context", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data":[]}`))
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		c := NewClient(Params{URL: srv.URL})
		_, err := c.FetchNews(ctx, Request{Companies: []string{"Apple"}})
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestClient_Health(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/api/health", r.URL.Path)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
		}))
		defer srv.Close()

		c := NewClient(Params{URL: srv.URL})
		assert.NoError(t, c.Health(context.Background()))
	})

	t.Run("unhealthy", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		c := NewClient(Params{URL: srv.URL})
		err := c.Health(context.Background())
		require.Error(t, err)
		assert.Equal(t, "Server error: 503", err.Error())
	})
}

type healthFunc func(ctx context.Context) error

func (f healthFunc) Health(ctx context.Context) error { return f(ctx) }

func TestWaitReady(t *testing.T) {
	t.Run("ready after failures", func(t *testing.T) {
		var calls int32
		hc := healthFunc(func(context.Context) error {
			if atomic.AddInt32(&calls, 1) < 3 {
				return errors.New("not yet")
			}
			return nil
		})
		err := WaitReady(context.Background(), hc, 5, time.Millisecond)
		require.NoError(t, err)
		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	})

	t.Run("attempts exhausted", func(t *testing.T) {
		var calls int32
		hc := healthFunc(func(context.Context) error {
			atomic.AddInt32(&calls, 1)
			return errors.New("down")
		})
		err := WaitReady(context.Background(), hc, 3, time.Millisecond)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "wait for news service")
		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	})
}
