package mongodb

import (
    "context"

    "go.mongodb.org/mongo-driver/bson"
    "go.mongodb.org/mongo-driver/bson/primitive"
    "go.mongodb.org/mongo-driver/mongo"

    "github.com/tinoosan/moviecatalog/internal/catalog"
    "github.com/tinoosan/moviecatalog/internal/errs"
)

// --- producers ---

func (s *Store) CreateProducer(ctx context.Context, p catalog.Producer) (string, error) {
    ts := s.timestamp()
    doc := producerDoc{
        ID: primitive.NewObjectID(), Name: p.Name, Country: p.Country, FoundedYear: p.FoundedYear,
        Website: p.Website, Bio: p.Bio, CreatedAt: ts, UpdatedAt: ts,
    }
    if _, err := s.producers.InsertOne(ctx, doc); err != nil { return "", err }
    return doc.ID.Hex(), nil
}

func (s *Store) GetProducer(ctx context.Context, id string) (catalog.Producer, error) {
    doc, err := findOne[producerDoc](ctx, s.producers, id)
    if err != nil { return catalog.Producer{}, err }
    return doc.toProducer(), nil
}

func (s *Store) ListProducers(ctx context.Context, page catalog.Page) ([]catalog.Producer, error) {
    docs, err := findAll[producerDoc](ctx, s.producers, bson.D{}, findPage(newestFirst("createdAt"), page))
    if err != nil { return nil, err }
    out := make([]catalog.Producer, 0, len(docs))
    for _, d := range docs { out = append(out, d.toProducer()) }
    return out, nil
}

func (s *Store) UpdateProducer(ctx context.Context, id string, patch catalog.ProducerPatch) error {
    var set bson.D
    if patch.Name != nil { set = append(set, bson.E{Key: "name", Value: *patch.Name}) }
    if patch.Country != nil { set = append(set, bson.E{Key: "country", Value: *patch.Country}) }
    if patch.FoundedYear != nil { set = append(set, bson.E{Key: "foundedYear", Value: *patch.FoundedYear}) }
    if patch.Website != nil { set = append(set, bson.E{Key: "website", Value: *patch.Website}) }
    if patch.Bio != nil { set = append(set, bson.E{Key: "bio", Value: *patch.Bio}) }
    return s.updateOne(ctx, s.producers, id, set)
}

func (s *Store) DeleteProducer(ctx context.Context, id string) error {
    return s.deleteOne(ctx, s.producers, id)
}

func (s *Store) ProducerExists(ctx context.Context, id string) (bool, error) {
    o, ok := oid(id)
    if !ok { return false, nil }
    return s.exists(ctx, s.producers, byID(o))
}

func (s *Store) ProducerHasMovies(ctx context.Context, id string) (bool, error) {
    o, ok := oid(id)
    if !ok { return false, nil }
    return s.exists(ctx, s.movies, bson.D{{Key: "producerId", Value: o}})
}

// --- movies ---

func (s *Store) CreateMovie(ctx context.Context, m catalog.Movie) (string, error) {
    pid, ok := oid(m.ProducerID)
    if !ok { return "", errs.Invalidf("Producer id %s is invalid", m.ProducerID) }
    genre := m.Genre
    if genre == nil { genre = []string{} }
    ts := s.timestamp()
    doc := movieDoc{
        ID: primitive.NewObjectID(), Title: m.Title, Description: m.Description, ReleaseYear: m.ReleaseYear,
        Duration: m.Duration, Genre: genre, ProducerID: pid, CreatedAt: ts, UpdatedAt: ts,
    }
    if _, err := s.movies.InsertOne(ctx, doc); err != nil { return "", err }
    return doc.ID.Hex(), nil
}

func (s *Store) GetMovie(ctx context.Context, id string) (catalog.Movie, error) {
    doc, err := findOne[movieDoc](ctx, s.movies, id)
    if err != nil { return catalog.Movie{}, err }
    return doc.toMovie(), nil
}

func (s *Store) ListMovies(ctx context.Context, page catalog.Page) ([]catalog.Movie, error) {
    docs, err := findAll[movieDoc](ctx, s.movies, bson.D{}, findPage(newestFirst("createdAt"), page))
    if err != nil { return nil, err }
    out := make([]catalog.Movie, 0, len(docs))
    for _, d := range docs { out = append(out, d.toMovie()) }
    return out, nil
}

func (s *Store) UpdateMovie(ctx context.Context, id string, patch catalog.MoviePatch) error {
    var set bson.D
    if patch.Title != nil { set = append(set, bson.E{Key: "title", Value: *patch.Title}) }
    if patch.Description != nil { set = append(set, bson.E{Key: "description", Value: *patch.Description}) }
    if patch.ReleaseYear != nil { set = append(set, bson.E{Key: "releaseYear", Value: *patch.ReleaseYear}) }
    if patch.Duration != nil { set = append(set, bson.E{Key: "duration", Value: *patch.Duration}) }
    if patch.Genre != nil { set = append(set, bson.E{Key: "genre", Value: patch.Genre}) }
    if patch.ProducerID != nil {
        pid, ok := oid(*patch.ProducerID)
        if !ok { return errs.Invalidf("Producer id %s is invalid", *patch.ProducerID) }
        set = append(set, bson.E{Key: "producerId", Value: pid})
    }
    return s.updateOne(ctx, s.movies, id, set)
}

func (s *Store) DeleteMovie(ctx context.Context, id string) error {
    return s.deleteOne(ctx, s.movies, id)
}

func (s *Store) MovieExists(ctx context.Context, id string) (bool, error) {
    o, ok := oid(id)
    if !ok { return false, nil }
    return s.exists(ctx, s.movies, byID(o))
}

// --- ratings ---

func (s *Store) CreateRating(ctx context.Context, r catalog.Rating) (string, error) {
    mid, ok := oid(r.MovieID)
    if !ok { return "", errs.Invalidf("Movie id %s is invalid", r.MovieID) }
    ts := s.timestamp()
    date := r.RatingDate.UTC()
    if r.RatingDate.IsZero() { date = ts }
    doc := ratingDoc{
        ID: primitive.NewObjectID(), MovieID: mid, Score: r.Score, Comment: r.Comment,
        RatingDate: date, CreatedBy: r.CreatedBy, CreatedAt: ts,
    }
    if _, err := s.ratings.InsertOne(ctx, doc); err != nil { return "", err }
    return doc.ID.Hex(), nil
}

// RatingsByMovie lists one movie's ratings, latest rating date first.
func (s *Store) RatingsByMovie(ctx context.Context, q catalog.RatingQuery) ([]catalog.Rating, error) {
    mid, ok := oid(q.MovieID)
    if !ok { return []catalog.Rating{}, nil }
    docs, err := findAll[ratingDoc](ctx, s.ratings, bson.D{{Key: "movieId", Value: mid}}, findPage(newestFirst("ratingDate"), q.Page))
    if err != nil { return nil, err }
    out := make([]catalog.Rating, 0, len(docs))
    for _, d := range docs { out = append(out, d.toRating()) }
    return out, nil
}

// CountRatingsByMovie groups ratings by movie. Ids with no ratings map to 0.
func (s *Store) CountRatingsByMovie(ctx context.Context, movieIDs []string) (map[string]int, error) {
    out := make(map[string]int, len(movieIDs))
    oids := make([]primitive.ObjectID, 0, len(movieIDs))
    for _, id := range movieIDs {
        out[id] = 0
        if o, ok := oid(id); ok { oids = append(oids, o) }
    }
    if len(oids) == 0 { return out, nil }
    pipeline := mongo.Pipeline{
        {{Key: "$match", Value: bson.D{{Key: "movieId", Value: bson.D{{Key: "$in", Value: oids}}}}}},
        {{Key: "$group", Value: bson.D{{Key: "_id", Value: "$movieId"}, {Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}}}}},
    }
    cur, err := s.ratings.Aggregate(ctx, pipeline)
    if err != nil { return nil, err }
    var rows []struct {
        MovieID primitive.ObjectID `bson:"_id"`
        Count   int                `bson:"count"`
    }
    if err := cur.All(ctx, &rows); err != nil { return nil, err }
    for _, r := range rows { out[r.MovieID.Hex()] = r.Count }
    return out, nil
}

// AverageRating averages scores server-side and rounds to 2 decimals.
func (s *Store) AverageRating(ctx context.Context, movieID string) (catalog.AverageRating, error) {
    mid, ok := oid(movieID)
    if !ok { return catalog.AverageRating{}, nil }
    pipeline := mongo.Pipeline{
        {{Key: "$match", Value: bson.D{{Key: "movieId", Value: mid}}}},
        {{Key: "$group", Value: bson.D{
            {Key: "_id", Value: "$movieId"},
            {Key: "average", Value: bson.D{{Key: "$avg", Value: "$score"}}},
            {Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
        }}},
        {{Key: "$project", Value: bson.D{
            {Key: "_id", Value: 0},
            {Key: "average", Value: bson.D{{Key: "$round", Value: bson.A{"$average", 2}}}},
            {Key: "count", Value: 1},
        }}},
    }
    cur, err := s.ratings.Aggregate(ctx, pipeline)
    if err != nil { return catalog.AverageRating{}, err }
    var rows []struct {
        Average float64 `bson:"average"`
        Count   int     `bson:"count"`
    }
    if err := cur.All(ctx, &rows); err != nil { return catalog.AverageRating{}, err }
    if len(rows) == 0 { return catalog.AverageRating{}, nil }
    return catalog.AverageRating{Average: rows[0].Average, Count: rows[0].Count}, nil
}
