package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"newsbrief/config"
	"newsbrief/types"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	mongoConnectTimeout = 10 * time.Second
	countersCollection  = "counters"
)

// Mongo stores one document per article in the articles collection.
type Mongo struct {
	client   *mongo.Client
	coll     *mongo.Collection
	counters *mongo.Collection
}

// mongoArticle adds the write sequence used for ordering. created_at only
// has millisecond precision in BSON.
type mongoArticle struct {
	types.ArticleSummary `bson:",inline"`
	Seq                  int64 `bson:"seq"`
}

// NewMongo connects, verifies the connection and ensures the indexes exist.
func NewMongo(ctx context.Context, uri, database string) (*Mongo, error) {
	connectCtx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, wrap(config.BackendMongo, "connect", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, wrap(config.BackendMongo, "ping", err)
	}

	db := client.Database(database)
	m := &Mongo{
		client:   client,
		coll:     db.Collection(config.ArticlesCollection),
		counters: db.Collection(countersCollection),
	}
	if err := m.EnsureIndexes(connectCtx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return m, nil
}

// EnsureIndexes creates the unique url index and the seq index used for ordering.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	_, err := m.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "url", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("url_unique"),
		},
		{
			Keys:    bson.D{{Key: "seq", Value: -1}},
			Options: options.Index().SetName("seq_desc"),
		},
	})
	return wrap(config.BackendMongo, "create indexes", err)
}

// nextSeq atomically increments the articles counter.
func (m *Mongo) nextSeq(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := m.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": config.ArticlesCollection},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	return counter.Seq, err
}

func (m *Mongo) Upsert(ctx context.Context, a *types.ArticleSummary) error {
	seq, err := m.nextSeq(ctx)
	if err != nil {
		return wrap(config.BackendMongo, "next seq", err)
	}
	_, err = m.coll.ReplaceOne(ctx,
		bson.M{"url": a.URL},
		mongoArticle{ArticleSummary: *a, Seq: seq},
		options.Replace().SetUpsert(true),
	)
	return wrap(config.BackendMongo, "upsert", err)
}

func (m *Mongo) List(ctx context.Context) ([]types.ArticleSummary, error) {
	cur, err := m.coll.Find(ctx, bson.D{},
		options.Find().
			SetSort(bson.D{{Key: "seq", Value: -1}}).
			SetProjection(bson.M{"_id": 0, "seq": 0}),
	)
	if err != nil {
		return nil, wrap(config.BackendMongo, "find", err)
	}

	articles := []types.ArticleSummary{}
	if err := cur.All(ctx, &articles); err != nil {
		return nil, wrap(config.BackendMongo, "decode", err)
	}
	return articles, nil
}

func (m *Mongo) Delete(ctx context.Context, url string) (bool, error) {
	res, err := m.coll.DeleteOne(ctx, bson.M{"url": url})
	if err != nil {
		return false, wrap(config.BackendMongo, "delete", err)
	}
	return res.DeletedCount > 0, nil
}

func (m *Mongo) Get(ctx context.Context, url string) (*types.ArticleSummary, error) {
	var a types.ArticleSummary
	err := m.coll.FindOne(ctx, bson.M{"url": url}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, wrap(config.BackendMongo, "get", ErrNotFound)
	}
	if err != nil {
		return nil, wrap(config.BackendMongo, "get", err)
	}
	return &a, nil
}

func (m *Mongo) Ping(ctx context.Context) error {
	return wrap(config.BackendMongo, "ping", m.client.Ping(ctx, nil))
}

func (m *Mongo) Close(ctx context.Context) error {
	if err := m.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect mongo: %w", err)
	}
	return nil
}
