package store

import (
	"context"
	"sync"

	"newsbrief/config"
	"newsbrief/types"
)

// Memory keeps summaries in process. Records are held newest first.
type Memory struct {
	mu       sync.RWMutex
	articles []types.ArticleSummary
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Upsert(_ context.Context, a *types.ArticleSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.remove(a.URL)
	m.articles = append([]types.ArticleSummary{*a}, m.articles...)
	return nil
}

func (m *Memory) List(_ context.Context) ([]types.ArticleSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]types.ArticleSummary, len(m.articles))
	copy(out, m.articles)
	return out, nil
}

func (m *Memory) Delete(_ context.Context, url string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.remove(url), nil
}

func (m *Memory) Get(_ context.Context, url string) (*types.ArticleSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := range m.articles {
		if m.articles[i].URL == url {
			a := m.articles[i]
			return &a, nil
		}
	}
	return nil, wrap(config.BackendMemory, "get", ErrNotFound)
}

func (m *Memory) Ping(context.Context) error  { return nil }
func (m *Memory) Close(context.Context) error { return nil }

// remove drops the record for url; caller holds the write lock.
func (m *Memory) remove(url string) bool {
	for i := range m.articles {
		if m.articles[i].URL == url {
			m.articles = append(m.articles[:i], m.articles[i+1:]...)
			return true
		}
	}
	return false
}
