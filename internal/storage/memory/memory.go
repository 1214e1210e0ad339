// Package memory provides a simple in-memory implementation used for development and tests.
// Records are kept in maps with an insertion sequence so listings stay stable
// when timestamps collide.
package memory

import (
    "context"
    "sort"
    "sync"
    "time"

    "github.com/tinoosan/moviecatalog/internal/catalog"
    "github.com/tinoosan/moviecatalog/internal/errs"
    "github.com/tinoosan/moviecatalog/internal/objectid"
)

type movieRow struct {
    seq uint64
    m   catalog.Movie
}

type producerRow struct {
    seq uint64
    p   catalog.Producer
}

type ratingRow struct {
    seq uint64
    r   catalog.Rating
}

// Store is an in-memory implementation of the repositories and writers used by the services.
// It is guarded by an RWMutex for concurrent reads/writes.
type Store struct {
    mu        sync.RWMutex
    seq       uint64
    now       func() time.Time
    movies    map[string]*movieRow
    producers map[string]*producerRow
    ratings   map[string]*ratingRow
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used for createdAt/updatedAt.
func WithClock(now func() time.Time) Option { return func(s *Store) { s.now = now } }

// New constructs an empty in-memory store.
func New(opts ...Option) *Store {
    s := &Store{now: time.Now}
    s.Reset()
    for _, o := range opts { o(s) }
    return s
}

// Reset drops every record.
func (s *Store) Reset() {
    s.mu.Lock()
    s.movies = map[string]*movieRow{}
    s.producers = map[string]*producerRow{}
    s.ratings = map[string]*ratingRow{}
    s.mu.Unlock()
}

// Ready always succeeds; it lets health checks treat every backend alike.
func (s *Store) Ready(context.Context) error { return nil }

func (s *Store) stamp() (uint64, time.Time) {
    s.seq++
    return s.seq, s.now().UTC()
}

// ---- producers ----

func (s *Store) CreateProducer(_ context.Context, p catalog.Producer) (string, error) {
    s.mu.Lock(); defer s.mu.Unlock()
    seq, ts := s.stamp()
    p.ID = objectid.New()
    p.CreatedAt, p.UpdatedAt = ts, ts
    if p.FoundedYear != nil { y := *p.FoundedYear; p.FoundedYear = &y }
    s.producers[p.ID] = &producerRow{seq: seq, p: p}
    return p.ID, nil
}

func (s *Store) GetProducer(_ context.Context, id string) (catalog.Producer, error) {
    s.mu.RLock(); defer s.mu.RUnlock()
    row, ok := s.producers[id]
    if !ok { return catalog.Producer{}, errs.ErrNotFound }
    return row.p, nil
}

// ListProducers returns a page of producers, newest first.
func (s *Store) ListProducers(_ context.Context, page catalog.Page) ([]catalog.Producer, error) {
    s.mu.RLock(); defer s.mu.RUnlock()
    rows := make([]*producerRow, 0, len(s.producers))
    for _, r := range s.producers { rows = append(rows, r) }
    sort.Slice(rows, func(i, j int) bool {
        return newer(rows[i].p.CreatedAt, rows[i].seq, rows[j].p.CreatedAt, rows[j].seq)
    })
    lo, hi := window(len(rows), page)
    out := make([]catalog.Producer, 0, hi-lo)
    for _, r := range rows[lo:hi] { out = append(out, r.p) }
    return out, nil
}

func (s *Store) UpdateProducer(_ context.Context, id string, patch catalog.ProducerPatch) error {
    s.mu.Lock(); defer s.mu.Unlock()
    row, ok := s.producers[id]
    if !ok { return errs.ErrNotFound }
    row.p = patch.Apply(row.p)
    row.p.UpdatedAt = s.now().UTC()
    return nil
}

func (s *Store) DeleteProducer(_ context.Context, id string) error {
    s.mu.Lock(); defer s.mu.Unlock()
    if _, ok := s.producers[id]; !ok { return errs.ErrNotFound }
    delete(s.producers, id)
    return nil
}

func (s *Store) ProducerExists(_ context.Context, id string) (bool, error) {
    s.mu.RLock(); defer s.mu.RUnlock()
    _, ok := s.producers[id]
    return ok, nil
}

// ProducerHasMovies reports whether any movie references the producer.
func (s *Store) ProducerHasMovies(_ context.Context, id string) (bool, error) {
    s.mu.RLock(); defer s.mu.RUnlock()
    for _, r := range s.movies {
        if r.m.ProducerID == id { return true, nil }
    }
    return false, nil
}

// ---- movies ----

func (s *Store) CreateMovie(_ context.Context, m catalog.Movie) (string, error) {
    s.mu.Lock(); defer s.mu.Unlock()
    seq, ts := s.stamp()
    m.ID = objectid.New()
    m.CreatedAt, m.UpdatedAt = ts, ts
    m.Genre = append([]string{}, m.Genre...)
    s.movies[m.ID] = &movieRow{seq: seq, m: m}
    return m.ID, nil
}

func (s *Store) GetMovie(_ context.Context, id string) (catalog.Movie, error) {
    s.mu.RLock(); defer s.mu.RUnlock()
    row, ok := s.movies[id]
    if !ok { return catalog.Movie{}, errs.ErrNotFound }
    m := row.m
    m.Genre = append([]string{}, m.Genre...)
    return m, nil
}

// ListMovies returns a page of movies, newest first.
func (s *Store) ListMovies(_ context.Context, page catalog.Page) ([]catalog.Movie, error) {
    s.mu.RLock(); defer s.mu.RUnlock()
    rows := make([]*movieRow, 0, len(s.movies))
    for _, r := range s.movies { rows = append(rows, r) }
    sort.Slice(rows, func(i, j int) bool {
        return newer(rows[i].m.CreatedAt, rows[i].seq, rows[j].m.CreatedAt, rows[j].seq)
    })
    lo, hi := window(len(rows), page)
    out := make([]catalog.Movie, 0, hi-lo)
    for _, r := range rows[lo:hi] {
        m := r.m
        m.Genre = append([]string{}, m.Genre...)
        out = append(out, m)
    }
    return out, nil
}

func (s *Store) UpdateMovie(_ context.Context, id string, patch catalog.MoviePatch) error {
    s.mu.Lock(); defer s.mu.Unlock()
    row, ok := s.movies[id]
    if !ok { return errs.ErrNotFound }
    row.m = patch.Apply(row.m)
    row.m.UpdatedAt = s.now().UTC()
    return nil
}

func (s *Store) DeleteMovie(_ context.Context, id string) error {
    s.mu.Lock(); defer s.mu.Unlock()
    if _, ok := s.movies[id]; !ok { return errs.ErrNotFound }
    delete(s.movies, id)
    return nil
}

func (s *Store) MovieExists(_ context.Context, id string) (bool, error) {
    s.mu.RLock(); defer s.mu.RUnlock()
    _, ok := s.movies[id]
    return ok, nil
}

// ---- ratings ----

func (s *Store) CreateRating(_ context.Context, r catalog.Rating) (string, error) {
    s.mu.Lock(); defer s.mu.Unlock()
    seq, ts := s.stamp()
    r.ID = objectid.New()
    r.CreatedAt = ts
    if r.RatingDate.IsZero() { r.RatingDate = ts }
    r.RatingDate = r.RatingDate.UTC()
    s.ratings[r.ID] = &ratingRow{seq: seq, r: r}
    return r.ID, nil
}

// RatingsByMovie returns one movie's ratings, latest rating date first.
func (s *Store) RatingsByMovie(_ context.Context, q catalog.RatingQuery) ([]catalog.Rating, error) {
    s.mu.RLock(); defer s.mu.RUnlock()
    rows := make([]*ratingRow, 0)
    for _, r := range s.ratings {
        if r.r.MovieID == q.MovieID { rows = append(rows, r) }
    }
    sort.Slice(rows, func(i, j int) bool {
        return newer(rows[i].r.RatingDate, rows[i].seq, rows[j].r.RatingDate, rows[j].seq)
    })
    lo, hi := window(len(rows), q.Page)
    out := make([]catalog.Rating, 0, hi-lo)
    for _, r := range rows[lo:hi] { out = append(out, r.r) }
    return out, nil
}

// CountRatingsByMovie counts ratings per movie id. Every requested id is
// present in the result, with 0 when it has no ratings.
func (s *Store) CountRatingsByMovie(_ context.Context, movieIDs []string) (map[string]int, error) {
    s.mu.RLock(); defer s.mu.RUnlock()
    out := make(map[string]int, len(movieIDs))
    for _, id := range movieIDs { out[id] = 0 }
    for _, r := range s.ratings {
        if _, ok := out[r.r.MovieID]; ok { out[r.r.MovieID]++ }
    }
    return out, nil
}

func (s *Store) AverageRating(_ context.Context, movieID string) (catalog.AverageRating, error) {
    s.mu.RLock(); defer s.mu.RUnlock()
    var sum, n int64
    for _, r := range s.ratings {
        if r.r.MovieID == movieID { sum += int64(r.r.Score); n++ }
    }
    return catalog.NewAverageRating(sum, n)
}

// newer orders by timestamp desc, then by insertion desc.
func newer(a time.Time, aseq uint64, b time.Time, bseq uint64) bool {
    if !a.Equal(b) { return a.After(b) }
    return aseq > bseq
}

// window clamps a skip/limit page to [0,n].
func window(n int, p catalog.Page) (int, int) {
    lo := p.Skip
    if lo < 0 { lo = 0 }
    if lo > n { lo = n }
    limit := p.Limit
    if limit <= 0 { limit = catalog.DefaultLimit }
    hi := lo + limit
    if hi > n { hi = n }
    return lo, hi
}
