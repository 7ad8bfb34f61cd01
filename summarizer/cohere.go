package summarizer

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"time"

	"newsbrief/config"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
	"github.com/cohere-ai/cohere-go/v2/core"
	"github.com/cohere-ai/cohere-go/v2/option"
)

// CohereClient summarizes with the Cohere Chat API
// Docs: https://docs.cohere.com/reference/chat
type CohereClient struct {
	client *cohereclient.Client
	model  string
}

// NewCohere builds a client with retries off; baseURL may be empty.
func NewCohere(apiKey, model, baseURL string) *CohereClient {
	// Force HTTP/1.1; the Cohere endpoint has produced HTTP/2 protocol errors
	httpClient := &http.Client{
		Timeout: 90 * time.Second,
		Transport: &http.Transport{
			TLSNextProto:      make(map[string]func(authority string, c *tls.Conn) http.RoundTripper),
			ForceAttemptHTTP2: false,
		},
	}
	opts := []option.RequestOption{
		cohereclient.WithToken(apiKey),
		cohereclient.WithHTTPClient(httpClient),
		cohereclient.WithMaxAttempts(1),
	}
	if baseURL != "" {
		opts = append(opts, cohereclient.WithBaseURL(baseURL))
	}
	client := cohereclient.NewClient(opts...)
	return &CohereClient{client: client, model: model}
}

func (c *CohereClient) ModelName() string { return c.model }

func (c *CohereClient) Summarize(ctx context.Context, req Request) (string, error) {
	model := c.model
	preamble := systemPrompt
	temperature := config.SummaryTemperature
	topP := config.SummaryTopP
	maxTokens := config.SummaryMaxTokens

	resp, err := c.client.Chat(ctx, &cohere.ChatRequest{
		Message:     buildPrompt(req),
		Model:       &model,
		Preamble:    &preamble,
		Temperature: &temperature,
		P:           &topP,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		var apiErr *core.APIError
		if errors.As(err, &apiErr) {
			return "", newError(config.ProviderCohere, apiErr.StatusCode, err)
		}
		return "", newError(config.ProviderCohere, 0, err)
	}
	if resp == nil {
		return "", &SummarizationError{Kind: KindEmpty, Provider: config.ProviderCohere, Err: errors.New("cohere chat returned empty response")}
	}
	return finish(config.ProviderCohere, resp.Text)
}
