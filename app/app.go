// Package app wires configuration into a ready pipeline for the server and
// the feed ingester.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"newsbrief/archive"
	"newsbrief/config"
	"newsbrief/events"
	"newsbrief/pipeline"
	"newsbrief/scraper"
	"newsbrief/store"
	"newsbrief/summarizer"
)

type App struct {
	Config     *config.Config
	Pipeline   *pipeline.Pipeline
	Store      store.Store
	Summarizer summarizer.Summarizer
	Publisher  events.Publisher
}

// New opens the store and optional integrations selected by cfg.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	sum, err := summarizer.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("summarizer: %w", err)
	}

	st, err := store.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}

	var mirror archive.Mirror = archive.Noop{}
	if cfg.ArchiveEnabled() {
		s3Mirror, err := archive.NewS3(ctx, archive.S3Config{
			Bucket:       cfg.S3Bucket,
			Prefix:       cfg.S3Prefix,
			Region:       cfg.S3Region,
			Profile:      cfg.S3Profile,
			UsePathStyle: cfg.S3UsePathStyle,
		})
		if err != nil {
			_ = st.Close(ctx)
			return nil, fmt.Errorf("archive: %w", err)
		}
		mirror = s3Mirror
		slog.Info("archive mirror enabled", "bucket", cfg.S3Bucket, "prefix", cfg.S3Prefix)
	}

	var publisher events.Publisher = events.Noop{}
	if cfg.EventsEnabled() {
		k, err := events.NewKafka(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			_ = st.Close(ctx)
			return nil, fmt.Errorf("events: %w", err)
		}
		publisher = k
		slog.Info("event publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	p := pipeline.New(pipeline.Deps{
		Scraper:    scraper.New(cfg.ScrapeTimeout),
		Summarizer: sum,
		Store:      st,
		Archive:    mirror,
		Events:     publisher,
	})

	return &App{
		Config:     cfg,
		Pipeline:   p,
		Store:      st,
		Summarizer: sum,
		Publisher:  publisher,
	}, nil
}

// Close releases the publisher and the store connection.
func (a *App) Close(ctx context.Context) error {
	return errors.Join(a.Publisher.Close(), a.Store.Close(ctx))
}
