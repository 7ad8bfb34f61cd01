package feeds

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"newsbrief/pipeline"
	"newsbrief/store"
	"newsbrief/types"
)

// Creator summarizes and stores one article
type Creator interface {
	Create(ctx context.Context, rawURL string) (*types.ArticleSummary, error)
}

// Lookup finds an already stored summary
type Lookup interface {
	Get(ctx context.Context, url string) (*types.ArticleSummary, error)
}

// Result counts what happened to each item of a run
type Result struct {
	Created int
	Skipped int
	Failed  int
}

type Ingester struct {
	creator Creator
	lookup  Lookup
	workers int
	// Force resummarizes items that are already stored
	Force bool
}

func NewIngester(creator Creator, lookup Lookup, workers int) *Ingester {
	if workers < 1 {
		workers = 1
	}
	return &Ingester{creator: creator, lookup: lookup, workers: workers}
}

// Run summarizes items using a worker pool. Per-item failures are logged and
// counted; they never stop the run.
func (in *Ingester) Run(ctx context.Context, items []Item) Result {
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		res Result
	)
	itemChan := make(chan Item)

	for i := 0; i < in.workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for item := range itemChan {
				outcome := in.ingest(ctx, workerID, item)
				mu.Lock()
				switch outcome {
				case outcomeCreated:
					res.Created++
				case outcomeSkipped:
					res.Skipped++
				default:
					res.Failed++
				}
				mu.Unlock()
			}
		}(i)
	}

	// Queue items until done or cancelled
queue:
	for _, item := range items {
		if ctx.Err() != nil {
			break
		}
		select {
		case itemChan <- item:
		case <-ctx.Done():
			break queue
		}
	}
	close(itemChan)
	wg.Wait()
	return res
}

type outcome int

const (
	outcomeCreated outcome = iota
	outcomeSkipped
	outcomeFailed
)

func (in *Ingester) ingest(ctx context.Context, workerID int, item Item) outcome {
	// stored records are keyed by the normalized url
	target, err := pipeline.NormalizeURL(item.URL)
	if err != nil {
		slog.Warn("skipping feed item", "worker", workerID, "url", item.URL, "error", err)
		return outcomeFailed
	}

	if !in.Force && in.lookup != nil {
		_, err := in.lookup.Get(ctx, target)
		if err == nil {
			slog.Debug("already summarized", "worker", workerID, "url", target)
			return outcomeSkipped
		}
		if !errors.Is(err, store.ErrNotFound) {
			slog.Warn("lookup failed", "worker", workerID, "url", target, "error", err)
			return outcomeFailed
		}
	}

	if _, err := in.creator.Create(ctx, target); err != nil {
		slog.Warn("summarize feed item failed", "worker", workerID, "url", target, "error", err)
		return outcomeFailed
	}
	slog.Info("summarized feed item", "worker", workerID, "title", item.Title, "url", target)
	return outcomeCreated
}
