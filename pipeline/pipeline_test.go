package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"newsbrief/events"
	"newsbrief/scraper"
	"newsbrief/store"
	"newsbrief/summarizer"
	"newsbrief/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScraper struct {
	page  *types.ScrapedPage
	err   error
	calls []string
}

func (f *fakeScraper) Scrape(_ context.Context, rawURL string) (*types.ScrapedPage, error) {
	f.calls = append(f.calls, rawURL)
	if f.err != nil {
		return nil, f.err
	}
	p := *f.page
	p.URL = rawURL
	return &p, nil
}

type fakeSummarizer struct {
	replies []string
	err     error
	got     []summarizer.Request
}

func (f *fakeSummarizer) Summarize(_ context.Context, req summarizer.Request) (string, error) {
	f.got = append(f.got, req)
	if f.err != nil {
		return "", f.err
	}
	reply := f.replies[0]
	if len(f.replies) > 1 {
		f.replies = f.replies[1:]
	}
	return reply, nil
}

func (f *fakeSummarizer) ModelName() string { return "fake-model" }

type failingStore struct {
	store.Store
	err error
}

func (s failingStore) Upsert(context.Context, *types.ArticleSummary) error { return s.err }
func (s failingStore) List(context.Context) ([]types.ArticleSummary, error) {
	return nil, s.err
}
func (s failingStore) Delete(context.Context, string) (bool, error) { return false, s.err }

type fakeMirror struct {
	puts    []string
	deletes []string
	err     error
}

func (f *fakeMirror) Put(_ context.Context, a *types.ArticleSummary) error {
	f.puts = append(f.puts, a.URL)
	return f.err
}

func (f *fakeMirror) Delete(_ context.Context, url string) error {
	f.deletes = append(f.deletes, url)
	return f.err
}

type fakePublisher struct {
	events []events.Event
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, e events.Event) error {
	f.events = append(f.events, e)
	return f.err
}

// ticker returns a clock that advances one second per call.
func ticker() func() time.Time {
	t := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func newTestPipeline(sc *fakeScraper, sum *fakeSummarizer, st store.Store) *Pipeline {
	return New(Deps{Scraper: sc, Summarizer: sum, Store: st, Now: ticker()})
}

func TestCreateStoresSummary(t *testing.T) {
	st := store.NewMemory()
	sc := &fakeScraper{page: &types.ScrapedPage{Text: "Lorem ipsum"}}
	sum := &fakeSummarizer{replies: []string{"**Summary**\n* point one"}}
	p := newTestPipeline(sc, sum, st)

	got, err := p.Create(context.Background(), "https://example.com/a")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a", got.URL)
	assert.Equal(t, "**Summary**\n* point one", got.Summary)
	assert.Nil(t, got.Image)
	assert.Equal(t, "fake-model", got.Model)
	assert.Equal(t, "Lorem ipsum", sum.got[0].Text)

	list, err := p.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "https://example.com/a", list[0].URL)
}

func TestResubmissionKeepsOneRecord(t *testing.T) {
	st := store.NewMemory()
	sc := &fakeScraper{page: &types.ScrapedPage{Text: "Lorem ipsum"}}
	sum := &fakeSummarizer{replies: []string{"**Summary**\n* point one", "**Summary**\n* point two"}}
	p := newTestPipeline(sc, sum, st)
	ctx := context.Background()

	_, err := p.Create(ctx, "https://example.com/a")
	require.NoError(t, err)
	_, err = p.Create(ctx, "https://example.com/a")
	require.NoError(t, err)

	list, err := p.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "**Summary**\n* point two", list[0].Summary)
}

func TestFailedSummarizationLeavesRecordUnchanged(t *testing.T) {
	st := store.NewMemory()
	sc := &fakeScraper{page: &types.ScrapedPage{Text: "Lorem ipsum"}}
	sum := &fakeSummarizer{replies: []string{"original"}}
	p := newTestPipeline(sc, sum, st)
	ctx := context.Background()

	_, err := p.Create(ctx, "https://example.com/a")
	require.NoError(t, err)

	sum.err = &summarizer.SummarizationError{Kind: summarizer.KindRateLimit, Provider: "groq", StatusCode: 429, Err: errors.New("slow down")}
	_, err = p.Create(ctx, "https://example.com/a")
	require.Error(t, err)
	assert.Equal(t, KindSummarization, KindOf(err))

	var se *summarizer.SummarizationError
	assert.True(t, errors.As(err, &se))

	list, _ := p.List(ctx)
	require.Len(t, list, 1)
	assert.Equal(t, "original", list[0].Summary)
}

func TestScrapeFailureStoresNothing(t *testing.T) {
	st := store.NewMemory()
	sc := &fakeScraper{err: &scraper.ScrapeError{Kind: scraper.KindTimeout, URL: "https://example.com/a"}}
	sum := &fakeSummarizer{replies: []string{"unused"}}
	p := newTestPipeline(sc, sum, st)

	_, err := p.Create(context.Background(), "https://example.com/a")
	assert.Equal(t, KindScrape, KindOf(err))
	assert.Empty(t, sum.got)

	list, _ := p.List(context.Background())
	assert.Empty(t, list)
}

func TestListIsReverseInsertionOrder(t *testing.T) {
	sc := &fakeScraper{page: &types.ScrapedPage{Text: "Lorem ipsum"}}
	p := newTestPipeline(sc, &fakeSummarizer{replies: []string{"s"}}, store.NewMemory())
	ctx := context.Background()

	for _, u := range []string{"https://example.com/1", "https://example.com/2", "https://example.com/3"} {
		_, err := p.Create(ctx, u)
		require.NoError(t, err)
	}

	list, err := p.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "https://example.com/3", list[0].URL)
	assert.Equal(t, "https://example.com/1", list[2].URL)
}

func TestCreateInvalidInput(t *testing.T) {
	sc := &fakeScraper{page: &types.ScrapedPage{Text: "x"}}
	p := newTestPipeline(sc, &fakeSummarizer{replies: []string{"s"}}, store.NewMemory())

	for _, in := range []string{"", "   ", "ftp://example.com/a", "https://", "http://bad host/"} {
		t.Run(in, func(t *testing.T) {
			_, err := p.Create(context.Background(), in)
			assert.Equal(t, KindInvalidInput, KindOf(err))
		})
	}
	assert.Empty(t, sc.calls)
}

func TestCreateStorageFailure(t *testing.T) {
	sc := &fakeScraper{page: &types.ScrapedPage{Text: "x"}}
	mirror := &fakeMirror{}
	p := New(Deps{
		Scraper:    sc,
		Summarizer: &fakeSummarizer{replies: []string{"s"}},
		Store:      failingStore{err: errors.New("connection refused")},
		Archive:    mirror,
	})

	_, err := p.Create(context.Background(), "https://example.com/a")
	assert.Equal(t, KindStorage, KindOf(err))
	assert.Empty(t, mirror.puts)
}

func TestSideOutputFailuresDoNotFailRequest(t *testing.T) {
	mirror := &fakeMirror{err: errors.New("s3 down")}
	pub := &fakePublisher{err: errors.New("kafka down")}
	p := New(Deps{
		Scraper:    &fakeScraper{page: &types.ScrapedPage{Text: "x", Image: "https://example.com/i.png"}},
		Summarizer: &fakeSummarizer{replies: []string{"s"}},
		Store:      store.NewMemory(),
		Archive:    mirror,
		Events:     pub,
	})
	ctx := context.Background()

	got, err := p.Create(ctx, "example.com/a")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a", got.URL)
	assert.Equal(t, "https://example.com/i.png", got.ImageURL())
	assert.Equal(t, []string{"https://example.com/a"}, mirror.puts)
	require.Len(t, pub.events, 1)
	assert.Equal(t, events.TypeSummarized, pub.events[0].Type)

	deleted, err := p.Delete(ctx, "https://example.com/a")
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, []string{"https://example.com/a"}, mirror.deletes)
	require.Len(t, pub.events, 2)
	assert.Equal(t, events.TypeDeleted, pub.events[1].Type)
}

func TestDeleteIsIdempotent(t *testing.T) {
	pub := &fakePublisher{}
	p := New(Deps{Store: store.NewMemory(), Events: pub})

	deleted, err := p.Delete(context.Background(), "https://example.com/never")
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Empty(t, pub.events)

	_, err = p.Delete(context.Background(), " ")
	assert.Equal(t, KindInvalidInput, KindOf(err))
}

func TestDeleteNormalizesLikeCreate(t *testing.T) {
	st := store.NewMemory()
	mirror := &fakeMirror{}
	sc := &fakeScraper{page: &types.ScrapedPage{Text: "Lorem ipsum"}}
	p := New(Deps{Scraper: sc, Summarizer: &fakeSummarizer{replies: []string{"s"}}, Store: st, Archive: mirror, Now: ticker()})
	ctx := context.Background()

	got, err := p.Create(ctx, "example.com/a")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a", got.URL)

	deleted, err := p.Delete(ctx, " example.com/a ")
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, []string{"https://example.com/a"}, mirror.deletes)

	list, err := p.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = p.Delete(ctx, "ftp://example.com/a")
	assert.Equal(t, KindInvalidInput, KindOf(err))
}

func TestStorageFailuresOnListAndDelete(t *testing.T) {
	p := New(Deps{Store: failingStore{err: errors.New("down")}})

	_, err := p.List(context.Background())
	assert.Equal(t, KindStorage, KindOf(err))

	_, err = p.Delete(context.Background(), "https://example.com/a")
	assert.Equal(t, KindStorage, KindOf(err))
}

func TestNormalizeURL(t *testing.T) {
	cases := map[string]string{
		"https://example.com/a":   "https://example.com/a",
		"  http://example.com/b ": "http://example.com/b",
		"example.com/news?id=1":   "https://example.com/news?id=1",
		"HTTPS://example.com/c":   "https://example.com/c",
	}
	for in, want := range cases {
		got, err := NormalizeURL(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
}

func TestKindOfForeignError(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(errors.New("x")))
}
