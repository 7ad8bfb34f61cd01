package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"newsbrief/config"
	"newsbrief/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func article(url, summary string, at time.Time) *types.ArticleSummary {
	return &types.ArticleSummary{
		URL:       url,
		Summary:   summary,
		Link:      url,
		CreatedAt: at.UTC().Truncate(time.Millisecond),
	}
}

// runStoreSuite checks the behavior every backend must share.
func runStoreSuite(t *testing.T, s Store) {
	ctx := context.Background()
	base := time.Now()

	t.Run("empty list", func(t *testing.T) {
		got, err := s.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("upsert replaces by url", func(t *testing.T) {
		require.NoError(t, s.Upsert(ctx, article("https://example.com/a", "**Summary**\n* point one", base)))
		require.NoError(t, s.Upsert(ctx, article("https://example.com/a", "**Summary**\n* point two", base.Add(time.Second))))

		got, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "**Summary**\n* point two", got[0].Summary)
		assert.Nil(t, got[0].Image)
	})

	t.Run("list is newest first", func(t *testing.T) {
		require.NoError(t, s.Upsert(ctx, article("https://example.com/b", "b", base.Add(2*time.Second))))
		require.NoError(t, s.Upsert(ctx, article("https://example.com/c", "c", base.Add(3*time.Second))))

		got, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "https://example.com/c", got[0].URL)
		assert.Equal(t, "https://example.com/b", got[1].URL)
		assert.Equal(t, "https://example.com/a", got[2].URL)
	})

	t.Run("resubmission moves to front", func(t *testing.T) {
		require.NoError(t, s.Upsert(ctx, article("https://example.com/a", "again", base.Add(4*time.Second))))

		got, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "https://example.com/a", got[0].URL)
		assert.Equal(t, "again", got[0].Summary)
	})

	t.Run("same timestamp keeps write order", func(t *testing.T) {
		require.NoError(t, s.Upsert(ctx, article("https://example.com/d", "d", base.Add(5*time.Second))))
		require.NoError(t, s.Upsert(ctx, article("https://example.com/e", "e", base.Add(5*time.Second))))
		require.NoError(t, s.Upsert(ctx, article("https://example.com/d", "d again", base.Add(5*time.Second))))

		got, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, got, 5)
		assert.Equal(t, "https://example.com/d", got[0].URL)
		assert.Equal(t, "https://example.com/e", got[1].URL)
		assert.Equal(t, "https://example.com/a", got[2].URL)

		for _, u := range []string{"https://example.com/d", "https://example.com/e"} {
			_, err := s.Delete(ctx, u)
			require.NoError(t, err)
		}
	})

	t.Run("get", func(t *testing.T) {
		a, err := s.Get(ctx, "https://example.com/b")
		require.NoError(t, err)
		assert.Equal(t, "b", a.Summary)

		_, err = s.Get(ctx, "https://example.com/missing")
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		deleted, err := s.Delete(ctx, "https://example.com/b")
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = s.Delete(ctx, "https://example.com/b")
		require.NoError(t, err)
		assert.False(t, deleted)

		got, err := s.List(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, s.Ping(ctx))
	})
}

func TestMemoryStore(t *testing.T) {
	runStoreSuite(t, NewMemory())
}

func TestMemoryListReturnsCopy(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	require.NoError(t, m.Upsert(ctx, article("https://example.com/a", "one", time.Now())))

	got, _ := m.List(ctx)
	got[0].Summary = "mutated"

	again, _ := m.List(ctx)
	assert.Equal(t, "one", again[0].Summary)
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "articles.db")

	s, err := NewSQLite(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })

	runStoreSuite(t, s)
}

func TestSQLiteKeepsImage(t *testing.T) {
	ctx := context.Background()
	s, err := NewSQLite(ctx, filepath.Join(t.TempDir(), "articles.db"))
	require.NoError(t, err)
	defer s.Close(ctx)

	a := article("https://example.com/a", "s", time.Now())
	a.Image = types.StringPtr("https://example.com/i.png")
	require.NoError(t, s.Upsert(ctx, a))

	got, err := s.Get(ctx, a.URL)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/i.png", got.ImageURL())
	assert.True(t, a.CreatedAt.Equal(got.CreatedAt))
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set")
	}
	ctx := context.Background()
	db := "newsbrief_test_" + time.Now().Format("20060102150405")

	m, err := NewMongo(ctx, uri, db)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = m.client.Database(db).Drop(context.Background())
		_ = m.Close(context.Background())
	})

	runStoreSuite(t, m)
}

func TestRedisStore(t *testing.T) {
	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		t.Skip("REDIS_TEST_URL not set")
	}
	ctx := context.Background()

	r, err := NewRedis(ctx, url)
	require.NoError(t, err)
	require.NoError(t, r.client.FlushDB(ctx).Err())
	t.Cleanup(func() {
		_ = r.client.FlushDB(context.Background()).Err()
		_ = r.Close(context.Background())
	})

	runStoreSuite(t, r)
}

func TestRedisKeys(t *testing.T) {
	k := articleKey("https://example.com/a")
	assert.Equal(t, "newsbrief:article:"+types.GenerateID("https://example.com/a"), k)
	assert.NotEqual(t, k, articleKey("https://example.com/b"))
	assert.Equal(t, "newsbrief:seq", redisSeqKey)
}

func TestStorageErrorUnwraps(t *testing.T) {
	err := wrap("mongo", "get", ErrNotFound)
	var se *StorageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "mongo", se.Backend)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Nil(t, wrap("mongo", "get", nil))
}

func TestNewRejectsUnknownBackend(t *testing.T) {
	_, err := New(context.Background(), &config.Config{Backend: "dynamo"})
	assert.Error(t, err)
}
