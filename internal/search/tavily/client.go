// Package tavily is a minimal client for the Tavily web-search API, shaped
// to the discovery pipeline's Searcher boundary.
package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/careerkit/profilescout/internal/discovery"
	"github.com/careerkit/profilescout/pkg/pipeline/core"
)

const (
	defaultBaseURL = "https://api.tavily.com"

	// defaultMaxResults keeps enough candidates per query for the ranking
	// model to filter from.
	defaultMaxResults = 15

	maxResponseBytes = 4 << 20
)

type Config struct {
	APIKey string

	// BaseURL overrides the API endpoint. Useful for proxies/testing.
	BaseURL string

	// MaxResults caps candidates returned per query.
	MaxResults int

	// HTTPClient overrides the transport. Defaults to a client with a
	// 30s safety-net timeout; per-request deadlines come from the context.
	HTTPClient *http.Client
}

type Client struct {
	apiKey     string
	baseURL    string
	maxResults int
	httpc      *http.Client
}

func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("TAVILY_API_KEY is required")
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	httpc := cfg.HTTPClient
	if httpc == nil {
		httpc = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		apiKey:     strings.TrimSpace(cfg.APIKey),
		baseURL:    strings.TrimRight(baseURL, "/"),
		maxResults: maxResults,
		httpc:      httpc,
	}, nil
}

type searchRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

type searchResponse struct {
	Answer  string `json:"answer"`
	Results []struct {
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}

// Search executes one query and returns a tagged response variant: result
// items when the provider returned a decomposable list, a summary when it
// answered in prose, or an unrecognized marker otherwise.
func (c *Client) Search(ctx context.Context, query string) (discovery.SearchResponse, error) {
	body, err := json.Marshal(searchRequest{Query: query, MaxResults: c.maxResults})
	if err != nil {
		return discovery.SearchResponse{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return discovery.SearchResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return discovery.SearchResponse{}, core.Transient(fmt.Errorf("tavily: %w", err))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return discovery.SearchResponse{}, core.Transient(fmt.Errorf("tavily: read response: %w", err))
	}
	if resp.StatusCode != http.StatusOK {
		return discovery.SearchResponse{}, classifyStatus(resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return discovery.SearchResponse{}, fmt.Errorf("tavily: parse response: %w", err)
	}

	switch {
	case parsed.Results != nil:
		items := make([]discovery.SearchResultItem, 0, len(parsed.Results))
		for _, r := range parsed.Results {
			items = append(items, discovery.SearchResultItem{URL: r.URL, Content: r.Content})
		}
		return discovery.SearchResponse{Kind: discovery.KindItems, Items: items}, nil
	case strings.TrimSpace(parsed.Answer) != "":
		return discovery.SearchResponse{Kind: discovery.KindSummary, Summary: parsed.Answer}, nil
	default:
		return discovery.SearchResponse{Kind: discovery.KindUnrecognized}, nil
	}
}

// classifyStatus maps rate limiting and server-side failures to transient
// errors so the worker pool retries them with backoff.
func classifyStatus(code int) error {
	err := fmt.Errorf("tavily: unexpected status %d", code)
	if code == http.StatusTooManyRequests || code/100 == 5 {
		return core.Transient(err)
	}
	return err
}
