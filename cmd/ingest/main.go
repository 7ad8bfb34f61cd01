package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"newsbrief/app"
	"newsbrief/config"
	"newsbrief/feeds"

	"github.com/robfig/cron/v3"
)

func main() {
	feed := flag.String("feed", feeds.DefaultPreset, "RSS feed preset name or URL (use -feeds to list presets)")
	count := flag.Int("count", feeds.DefaultCount, "Number of feed items to summarize")
	workers := flag.Int("workers", feeds.WorkerCount, "Concurrent summarizations")
	schedule := flag.String("schedule", "", "Cron schedule (e.g. \"@every 1h\"); runs once when empty")
	force := flag.Bool("force", false, "Resummarize items that are already stored")
	listFeeds := flag.Bool("feeds", false, "List available feed presets and exit")
	flag.Parse()

	if *listFeeds {
		names := make([]string, 0, len(feeds.Presets))
		for name := range feeds.Presets {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			log.Printf("  %-6s %s", name, feeds.Presets[name])
		}
		return
	}

	if *count < 1 {
		log.Fatalf("invalid -count %d: must be at least 1", *count)
	}
	if *schedule != "" {
		if _, err := cron.ParseStandard(*schedule); err != nil {
			log.Fatalf("invalid schedule %q: %v", *schedule, err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("startup: %v", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()
		if err := a.Close(closeCtx); err != nil {
			slog.Error("close resources", "error", err)
		}
	}()

	ingester := feeds.NewIngester(a.Pipeline, a.Store, *workers)
	ingester.Force = *force
	feedURL := feeds.ResolveURL(*feed)

	run := func() {
		start := time.Now()
		items, err := feeds.Fetch(ctx, feedURL, *count)
		if err != nil {
			slog.Error("fetch feed", "feed", feedURL, "error", err)
			return
		}
		res := ingester.Run(ctx, items)
		slog.Info("ingest finished",
			"feed", feedURL,
			"items", len(items),
			"created", res.Created,
			"skipped", res.Skipped,
			"failed", res.Failed,
			"took", time.Since(start),
		)
	}

	if *schedule == "" {
		run()
		return
	}

	c := cron.New()
	if _, err := c.AddFunc(*schedule, run); err != nil {
		slog.Error("add cron job", "schedule", *schedule, "error", err)
		return
	}
	c.Start()
	slog.Info("ingest scheduled", "schedule", *schedule, "feed", feedURL)

	<-ctx.Done()
	// wait for a running ingest to return
	<-c.Stop().Done()
}
