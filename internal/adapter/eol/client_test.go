package eol

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, zaptest.NewLogger(t)), srv
}

func TestFetchCycles_Success(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"cycle": "3.4", "eol": false},
			{"cycle": "3.3", "eol": true},
			{"cycle": "2.7", "eol": true}
		]`))
	})

	cycles := client.FetchCycles(context.Background())

	assert.Equal(t, []string{"3.4", "3.3", "2.7"}, cycles)
}

func TestFetchCycles_MissingCycleField(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"cycle": "3.4"}, {"eol": true}, {"cycle": null}]`))
	})

	cycles := client.FetchCycles(context.Background())

	assert.Equal(t, []string{"3.4", "unknown", "unknown"}, cycles)
}

func TestFetchCycles_NumericCycle(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"cycle": 3.4}]`))
	})

	cycles := client.FetchCycles(context.Background())

	assert.Equal(t, []string{"3.4"}, cycles)
}

func TestFetchCycles_Non2xx(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broken", http.StatusBadGateway)
	})

	cycles := client.FetchCycles(context.Background())

	assert.Empty(t, cycles)
	assert.NotNil(t, cycles)
}

func TestFetchCycles_MalformedBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not": "an array"`))
	})

	cycles := client.FetchCycles(context.Background())

	assert.Empty(t, cycles)
}

func TestFetchCycles_Unreachable(t *testing.T) {
	client, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	cycles := client.FetchCycles(context.Background())

	assert.Empty(t, cycles)
	assert.NotNil(t, cycles)
}

func TestFetchCycles_EmptyArray(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	cycles := client.FetchCycles(context.Background())

	assert.Empty(t, cycles)
	assert.NotNil(t, cycles)
}
