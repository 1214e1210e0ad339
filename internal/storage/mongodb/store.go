// Package mongodb provides the MongoDB-backed store. Each entity lives in its own
// collection keyed by ObjectID; references between entities are stored as
// ObjectIDs and exposed to the rest of the program as hex strings.
package mongodb

import (
    "context"
    "errors"
    "fmt"
    "time"

    "go.mongodb.org/mongo-driver/bson"
    "go.mongodb.org/mongo-driver/bson/primitive"
    "go.mongodb.org/mongo-driver/mongo"
    "go.mongodb.org/mongo-driver/mongo/options"
    "go.mongodb.org/mongo-driver/mongo/readpref"

    "github.com/tinoosan/moviecatalog/internal/catalog"
    "github.com/tinoosan/moviecatalog/internal/errs"
)

const (
    moviesCollection    = "movies"
    producersCollection = "producers"
    ratingsCollection   = "ratings"
)

// Store holds a mongo client and the catalog database. All methods are safe for concurrent use.
type Store struct {
    client    *mongo.Client
    db        *mongo.Database
    movies    *mongo.Collection
    producers *mongo.Collection
    ratings   *mongo.Collection
    now       func() time.Time
}

// Open connects to uri, verifies the connection and selects database db.
func Open(ctx context.Context, uri, db string) (*Store, error) {
    client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
    if err != nil { return nil, fmt.Errorf("mongo connect: %w", err) }
    if err := client.Ping(ctx, readpref.Primary()); err != nil {
        _ = client.Disconnect(context.Background())
        return nil, fmt.Errorf("mongo ping: %w", err)
    }
    d := client.Database(db)
    return &Store{
        client:    client,
        db:        d,
        movies:    d.Collection(moviesCollection),
        producers: d.Collection(producersCollection),
        ratings:   d.Collection(ratingsCollection),
        now:       time.Now,
    }, nil
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
    if s.client == nil { return nil }
    return s.client.Disconnect(ctx)
}

// Ready pings the primary.
func (s *Store) Ready(ctx context.Context) error { return s.client.Ping(ctx, readpref.Primary()) }

// EnsureSchema installs the collection validators, then the indexes.
func (s *Store) EnsureSchema(ctx context.Context) error {
    if err := s.ensureValidators(ctx); err != nil { return err }
    return s.ensureIndexes(ctx)
}

// ensureIndexes creates the indexes used by listings and reference lookups.
func (s *Store) ensureIndexes(ctx context.Context) error {
    specs := []struct {
        coll   *mongo.Collection
        models []mongo.IndexModel
    }{
        {s.movies, []mongo.IndexModel{
            {Keys: bson.D{{Key: "producerId", Value: 1}}},
            {Keys: bson.D{{Key: "createdAt", Value: -1}}},
        }},
        {s.producers, []mongo.IndexModel{
            {Keys: bson.D{{Key: "createdAt", Value: -1}}},
        }},
        {s.ratings, []mongo.IndexModel{
            {Keys: bson.D{{Key: "movieId", Value: 1}, {Key: "ratingDate", Value: -1}}},
        }},
    }
    for _, spec := range specs {
        if _, err := spec.coll.Indexes().CreateMany(ctx, spec.models); err != nil {
            return fmt.Errorf("create indexes on %s: %w", spec.coll.Name(), err)
        }
    }
    return nil
}

// Reset removes every document from the catalog collections.
func (s *Store) Reset(ctx context.Context) error {
    for _, c := range []*mongo.Collection{s.ratings, s.movies, s.producers} {
        if _, err := c.DeleteMany(ctx, bson.D{}); err != nil { return err }
    }
    return nil
}

// timestamps are stored with millisecond precision
func (s *Store) timestamp() time.Time { return s.now().UTC().Truncate(time.Millisecond) }

func oid(id string) (primitive.ObjectID, bool) {
    o, err := primitive.ObjectIDFromHex(id)
    return o, err == nil
}

func byID(o primitive.ObjectID) bson.D { return bson.D{{Key: "_id", Value: o}} }

func newestFirst(field string) bson.D {
    return bson.D{{Key: field, Value: -1}, {Key: "_id", Value: -1}}
}

func findPage(sort bson.D, page catalog.Page) *options.FindOptions {
    limit := page.Limit
    if limit <= 0 { limit = catalog.DefaultLimit }
    return options.Find().SetSort(sort).SetSkip(int64(page.Skip)).SetLimit(int64(limit))
}

func (s *Store) exists(ctx context.Context, c *mongo.Collection, filter bson.D) (bool, error) {
    n, err := c.CountDocuments(ctx, filter, options.Count().SetLimit(1))
    if err != nil { return false, err }
    return n > 0, nil
}

func (s *Store) updateOne(ctx context.Context, c *mongo.Collection, id string, set bson.D) error {
    o, ok := oid(id)
    if !ok { return errs.ErrNotFound }
    set = append(set, bson.E{Key: "updatedAt", Value: s.timestamp()})
    res, err := c.UpdateOne(ctx, byID(o), bson.D{{Key: "$set", Value: set}})
    if err != nil { return err }
    if res.MatchedCount == 0 { return errs.ErrNotFound }
    return nil
}

func (s *Store) deleteOne(ctx context.Context, c *mongo.Collection, id string) error {
    o, ok := oid(id)
    if !ok { return errs.ErrNotFound }
    res, err := c.DeleteOne(ctx, byID(o))
    if err != nil { return err }
    if res.DeletedCount == 0 { return errs.ErrNotFound }
    return nil
}

func findOne[D any](ctx context.Context, c *mongo.Collection, id string) (D, error) {
    var doc D
    o, ok := oid(id)
    if !ok { return doc, errs.ErrNotFound }
    err := c.FindOne(ctx, byID(o)).Decode(&doc)
    if errors.Is(err, mongo.ErrNoDocuments) { return doc, errs.ErrNotFound }
    return doc, err
}

func findAll[D any](ctx context.Context, c *mongo.Collection, filter bson.D, opts *options.FindOptions) ([]D, error) {
    cur, err := c.Find(ctx, filter, opts)
    if err != nil { return nil, err }
    out := make([]D, 0)
    if err := cur.All(ctx, &out); err != nil { return nil, err }
    return out, nil
}
