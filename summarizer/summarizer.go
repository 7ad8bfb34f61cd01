package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"newsbrief/config"
)

// Request is the article content handed to the LLM.
type Request struct {
	Title string
	Text  string
}

// Summarizer turns article text into a summary in the
// **Heading** / "* bullet" / paragraph convention.
type Summarizer interface {
	Summarize(ctx context.Context, req Request) (string, error)
	ModelName() string
}

// Default models per provider, used when SUMMARIZER_MODEL is empty.
const (
	DefaultGroqModel      = "llama-3.3-70b-versatile"
	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultAnthropicModel = "claude-haiku-4-5"
	DefaultCohereModel    = "command-r-plus"

	groqBaseURL = "https://api.groq.com/openai/v1/"
)

// New builds the summarizer selected by cfg.Provider.
func New(cfg *config.Config) (Summarizer, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("summarizer API key is empty")
	}
	model := cfg.Model

	switch cfg.Provider {
	case config.ProviderGroq:
		if model == "" {
			model = DefaultGroqModel
		}
		return NewOpenAICompatible(config.ProviderGroq, cfg.APIKey, model, groqBaseURL), nil
	case config.ProviderOpenAI:
		if model == "" {
			model = DefaultOpenAIModel
		}
		return NewOpenAICompatible(config.ProviderOpenAI, cfg.APIKey, model, ""), nil
	case config.ProviderAnthropic:
		if model == "" {
			model = DefaultAnthropicModel
		}
		return NewAnthropic(cfg.APIKey, model, ""), nil
	case config.ProviderCohere:
		if model == "" {
			model = DefaultCohereModel
		}
		return NewCohere(cfg.APIKey, model, ""), nil
	default:
		return nil, fmt.Errorf("unknown summarizer provider %q", cfg.Provider)
	}
}

// finish trims the model output and rejects empty summaries.
func finish(provider, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", &SummarizationError{Kind: KindEmpty, Provider: provider, Err: errors.New("empty response from model")}
	}
	return text, nil
}
