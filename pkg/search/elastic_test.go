package search

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResponse struct {
	status int
	body   string
}

// newStubClient serves the cluster info request and answers every other
// request with routes[method+" "+path].
func newStubClient(t *testing.T, routes map[string]stubResponse) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")

		if r.Method == http.MethodGet && r.URL.Path == "/" {
			_, _ = io.WriteString(w, `{"version":{"number":"8.19.0"},"tagline":"You Know, for Search"}`)
			return
		}
		res, ok := routes[r.Method+" "+r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotImplemented)
			return
		}
		w.WriteHeader(res.status)
		_, _ = io.WriteString(w, res.body)
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(&Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return c
}

func TestCreateIndex(t *testing.T) {
	tests := []struct {
		name    string
		res     stubResponse
		wantErr bool
	}{
		{"created", stubResponse{http.StatusOK, `{"acknowledged":true}`}, false},
		{"already exists", stubResponse{http.StatusBadRequest, `{"error":{"type":"resource_already_exists_exception"},"status":400}`}, false},
		{"bad mapping", stubResponse{http.StatusBadRequest, `{"error":{"type":"mapper_parsing_exception"},"status":400}`}, true},
		{"cluster error", stubResponse{http.StatusInternalServerError, `{}`}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newStubClient(t, map[string]stubResponse{"PUT /products": tt.res})
			err := c.CreateIndex(context.Background(), "products", `{}`)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDeleteIgnoresMissingDocument(t *testing.T) {
	c := newStubClient(t, map[string]stubResponse{
		"DELETE /products/_doc/gone": {http.StatusNotFound, `{"result":"not_found"}`},
		"DELETE /products/_doc/boom": {http.StatusInternalServerError, `{}`},
	})

	assert.NoError(t, c.Delete(context.Background(), "products", "gone"))
	assert.Error(t, c.Delete(context.Background(), "products", "boom"))
}

func TestSearchDecodesHits(t *testing.T) {
	c := newStubClient(t, map[string]stubResponse{
		"POST /products/_search": {http.StatusOK, `{"hits":{"total":{"value":1},"hits":[{"_id":"p1","_source":{"name":"Bag"}}]}}`},
	})

	res, err := c.Search(context.Background(), "products", map[string]interface{}{"size": 1})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Hits.Total.Value)
	require.Len(t, res.Hits.Hits, 1)
	assert.Equal(t, "p1", res.Hits.Hits[0].ID)
	assert.JSONEq(t, `{"name":"Bag"}`, string(res.Hits.Hits[0].Source))
}
