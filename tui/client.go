package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"newsbrief/types"
)

// APIClient is a thin HTTP client for the summarizer API
type APIClient struct {
	baseURL string
	client  *http.Client
}

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Kind       string `json:"error"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("server returned %d", e.StatusCode)
}

// NewAPIClient creates a new client. Submissions wait on a scrape and an LLM
// call, so the timeout is generous.
func NewAPIClient(baseURL string) *APIClient {
	return NewAPIClientWithHTTP(baseURL, &http.Client{Timeout: 3 * time.Minute})
}

func NewAPIClientWithHTTP(baseURL string, client *http.Client) *APIClient {
	return &APIClient{baseURL: baseURL, client: client}
}

// ListArticles fetches stored summaries, newest first
func (c *APIClient) ListArticles(ctx context.Context) ([]types.ArticleSummary, error) {
	var articles []types.ArticleSummary
	if err := c.do(ctx, http.MethodGet, "/articles", nil, http.StatusOK, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

// CreateArticle submits a URL for summarization
func (c *APIClient) CreateArticle(ctx context.Context, articleURL string) (*types.ArticleSummary, error) {
	body, err := json.Marshal(map[string]string{"url": articleURL})
	if err != nil {
		return nil, err
	}
	var article types.ArticleSummary
	if err := c.do(ctx, http.MethodPost, "/articles", body, http.StatusCreated, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

// DeleteArticle removes a stored summary and reports whether one existed
func (c *APIClient) DeleteArticle(ctx context.Context, articleURL string) (bool, error) {
	var resp struct {
		Deleted bool `json:"deleted"`
	}
	path := "/articles?url=" + url.QueryEscape(articleURL)
	if err := c.do(ctx, http.MethodDelete, path, nil, http.StatusOK, &resp); err != nil {
		return false, err
	}
	return resp.Deleted, nil
}

func (c *APIClient) do(ctx context.Context, method, path string, body []byte, want int, out any) error {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		raw, _ := io.ReadAll(resp.Body)
		_ = json.Unmarshal(raw, apiErr)
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
