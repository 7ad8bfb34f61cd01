package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"newsbrief/config"
	"newsbrief/types"

	"github.com/redis/go-redis/v9"
)

const (
	redisIndexKey = config.RedisKeyPrefix + "articles"
	// counter scoring the index in write order
	redisSeqKey = config.RedisKeyPrefix + "seq"
	// hash field holding the JSON document
	redisDocField = "doc"
)

// Redis keeps one hash per article and a sorted set of URLs scored by write sequence.
type Redis struct {
	client *redis.Client
}

// NewRedis parses a redis:// URL and verifies connectivity.
func NewRedis(ctx context.Context, rawURL string) (*Redis, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, &StorageError{Backend: config.BackendRedis, Op: "parse url", Err: err}
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, wrap(config.BackendRedis, "ping", fmt.Errorf("failed to connect to redis at %s: %w", opts.Addr, err))
	}
	return NewRedisWithClient(client), nil
}

func NewRedisWithClient(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func articleKey(url string) string {
	return config.RedisKeyPrefix + "article:" + types.GenerateID(url)
}

func (r *Redis) Upsert(ctx context.Context, a *types.ArticleSummary) error {
	doc, err := json.Marshal(a)
	if err != nil {
		return wrap(config.BackendRedis, "encode", err)
	}
	seq, err := r.client.Incr(ctx, redisSeqKey).Result()
	if err != nil {
		return wrap(config.BackendRedis, "next seq", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, articleKey(a.URL), redisDocField, doc)
		pipe.ZAdd(ctx, redisIndexKey, redis.Z{Score: float64(seq), Member: a.URL})
		return nil
	})
	return wrap(config.BackendRedis, "upsert", err)
}

func (r *Redis) List(ctx context.Context) ([]types.ArticleSummary, error) {
	urls, err := r.client.ZRevRange(ctx, redisIndexKey, 0, -1).Result()
	if err != nil {
		return nil, wrap(config.BackendRedis, "list", err)
	}

	articles := []types.ArticleSummary{}
	if len(urls) == 0 {
		return articles, nil
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(urls))
	for i, u := range urls {
		cmds[i] = pipe.HGet(ctx, articleKey(u), redisDocField)
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, wrap(config.BackendRedis, "list", err)
	}

	for _, cmd := range cmds {
		raw, err := cmd.Bytes()
		if errors.Is(err, redis.Nil) {
			// index entry without a document; removed concurrently
			continue
		}
		if err != nil {
			return nil, wrap(config.BackendRedis, "list", err)
		}
		var a types.ArticleSummary
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, wrap(config.BackendRedis, "decode", err)
		}
		articles = append(articles, a)
	}
	return articles, nil
}

func (r *Redis) Delete(ctx context.Context, url string) (bool, error) {
	var del *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, articleKey(url))
		pipe.ZRem(ctx, redisIndexKey, url)
		return nil
	})
	if err != nil {
		return false, wrap(config.BackendRedis, "delete", err)
	}
	return del.Val() > 0, nil
}

func (r *Redis) Get(ctx context.Context, url string) (*types.ArticleSummary, error) {
	raw, err := r.client.HGet(ctx, articleKey(url), redisDocField).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, wrap(config.BackendRedis, "get", ErrNotFound)
	}
	if err != nil {
		return nil, wrap(config.BackendRedis, "get", err)
	}
	var a types.ArticleSummary
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, wrap(config.BackendRedis, "decode", err)
	}
	return &a, nil
}

func (r *Redis) Ping(ctx context.Context) error {
	return wrap(config.BackendRedis, "ping", r.client.Ping(ctx).Err())
}

func (r *Redis) Close(context.Context) error {
	return r.client.Close()
}
