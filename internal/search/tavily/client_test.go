package tavily

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/careerkit/profilescout/internal/discovery"
	"github.com/careerkit/profilescout/pkg/pipeline/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(Config{APIKey: "tvly-test", BaseURL: srv.URL, MaxResults: 15})
	require.NoError(t, err)
	return c
}

func TestNew_RequiresAPIKey(t *testing.T) {
	t.Parallel()

	_, err := New(Config{})
	require.Error(t, err)
}

func TestSearch_Items(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Bearer tvly-test", r.Header.Get("Authorization"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, `site:linkedin.com/in/ "Engineer" "Acme" company`, req["query"])
		assert.EqualValues(t, 15, req["max_results"])

		_, _ = w.Write([]byte(`{"results":[
			{"url":"https://www.linkedin.com/in/alice","content":"Alice - Engineer at Acme"},
			{"url":"https://www.linkedin.com/in/bob","content":""}
		]}`))
	})

	got, err := c.Search(context.Background(), `site:linkedin.com/in/ "Engineer" "Acme" company`)
	require.NoError(t, err)
	assert.Equal(t, discovery.KindItems, got.Kind)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "https://www.linkedin.com/in/alice", got.Items[0].URL)
	assert.Empty(t, got.Items[1].Content)
}

func TestSearch_EmptyResultList(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results":[]}`))
	})

	got, err := c.Search(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, discovery.KindItems, got.Kind)
	assert.Empty(t, got.Items)
}

func TestSearch_SummaryAnswer(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"answer":"Acme is a company that makes anvils."}`))
	})

	got, err := c.Search(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, discovery.KindSummary, got.Kind)
	assert.Equal(t, "Acme is a company that makes anvils.", got.Summary)
}

func TestSearch_UnrecognizedShape(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"something_else":42}`))
	})

	got, err := c.Search(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, discovery.KindUnrecognized, got.Kind)
}

func TestSearch_TransientStatuses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		status        int
		wantTransient bool
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, wantTransient: true},
		{name: "server error", status: http.StatusBadGateway, wantTransient: true},
		{name: "unauthorized", status: http.StatusUnauthorized, wantTransient: false},
		{name: "bad request", status: http.StatusBadRequest, wantTransient: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			})

			_, err := c.Search(context.Background(), "q")
			require.Error(t, err)
			assert.Equal(t, tt.wantTransient, core.IsTransient(err))
		})
	}
}

func TestSearch_MalformedJSON(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results": [`))
	})

	_, err := c.Search(context.Background(), "q")
	require.Error(t, err)
	assert.False(t, core.IsTransient(err))
}
