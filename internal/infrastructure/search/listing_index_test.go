package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/rentify/internal/domain/entity"
)

func newTestIndex(t *testing.T, handler http.HandlerFunc) *ListingIndex {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return NewListingIndex(es, "listings")
}

func TestSearchReturnsHitIDs(t *testing.T) {
	var gotQuery map[string]any
	idx := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/listings/_search", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotQuery)
		_, _ = w.Write([]byte(`{"hits":{"hits":[{"_id":"l2"},{"_id":"l1"}]}}`))
	})

	ids, err := idx.Search(context.Background(), "beach", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"l2", "l1"}, ids)

	mm := gotQuery["query"].(map[string]any)["multi_match"].(map[string]any)
	assert.Equal(t, "beach", mm["query"])
	assert.EqualValues(t, 50, gotQuery["size"])
}

func TestSearchErrorStatus(t *testing.T) {
	idx := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"unavailable"}`))
	})

	_, err := idx.Search(context.Background(), "beach", 10)
	assert.Error(t, err)
}

func TestIndexAndRemove(t *testing.T) {
	var paths []string
	idx := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNotFound)
		}
		_, _ = w.Write([]byte(`{"result":"ok"}`))
	})
	ctx := context.Background()

	require.NoError(t, idx.Index(ctx, &entity.Listing{ID: "l1", Title: "Beach house"}))
	require.NoError(t, idx.Remove(ctx, "l1"), "missing documents are ignored")

	assert.Equal(t, []string{"PUT /listings/_doc/l1", "DELETE /listings/_doc/l1"}, paths)
}
