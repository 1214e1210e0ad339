// Package postgres provides a pgx-backed storage implementation that satisfies
// the repository and writer interfaces used by the services.
//
// The expected schema lives under db/migrations. Identifiers are ObjectID hex
// strings generated here so every backend hands out ids of the same shape.
package postgres

import (
    "context"
    "errors"
    "fmt"
    "strings"
    "time"

    "github.com/jackc/pgx/v5"
    "github.com/jackc/pgx/v5/pgxpool"

    "github.com/tinoosan/moviecatalog/internal/catalog"
    "github.com/tinoosan/moviecatalog/internal/errs"
    "github.com/tinoosan/moviecatalog/internal/objectid"
)

// Store holds a pgx connection pool. All methods are safe for concurrent use.
type Store struct {
    pool *pgxpool.Pool
    now  func() time.Time
}

// Open establishes a pgx pool using the provided connection string.
func Open(ctx context.Context, dsn string) (*Store, error) {
    cfg, err := pgxpool.ParseConfig(dsn)
    if err != nil { return nil, err }
    pool, err := pgxpool.NewWithConfig(ctx, cfg)
    if err != nil { return nil, err }
    // Verify connection
    if err := pool.Ping(ctx); err != nil { pool.Close(); return nil, err }
    return &Store{pool: pool, now: time.Now}, nil
}

// Close releases the underlying pool.
func (s *Store) Close() { if s.pool != nil { s.pool.Close() } }

// Ready pings the pool to verify connectivity.
func (s *Store) Ready(ctx context.Context) error { return s.pool.Ping(ctx) }

// Migrate applies a schema script. Statements must be idempotent.
func (s *Store) Migrate(ctx context.Context, script string) error {
    _, err := s.pool.Exec(ctx, script)
    return err
}

// Reset removes every catalog row.
func (s *Store) Reset(ctx context.Context) error {
    _, err := s.pool.Exec(ctx, `truncate table ratings, movies, producers`)
    return err
}

// postgres keeps microseconds
func (s *Store) timestamp() time.Time { return s.now().UTC().Truncate(time.Microsecond) }

// assignments collects "col=$n" fragments for a partial update.
type assignments struct {
    cols []string
    args []any
}

func (a *assignments) set(col string, v any) {
    a.args = append(a.args, v)
    a.cols = append(a.cols, fmt.Sprintf("%s=$%d", col, len(a.args)))
}

func (s *Store) update(ctx context.Context, table, id string, a assignments) error {
    a.set("updated_at", s.timestamp())
    a.args = append(a.args, id)
    sql := fmt.Sprintf(`update %s set %s where id=$%d`, table, strings.Join(a.cols, ", "), len(a.args))
    ct, err := s.pool.Exec(ctx, sql, a.args...)
    if err != nil { return err }
    if ct.RowsAffected() == 0 { return errs.ErrNotFound }
    return nil
}

func (s *Store) remove(ctx context.Context, table, id string) error {
    ct, err := s.pool.Exec(ctx, fmt.Sprintf(`delete from %s where id=$1`, table), id)
    if err != nil { return err }
    if ct.RowsAffected() == 0 { return errs.ErrNotFound }
    return nil
}

func (s *Store) exists(ctx context.Context, sql string, args ...any) (bool, error) {
    var ok bool
    err := s.pool.QueryRow(ctx, `select exists(`+sql+`)`, args...).Scan(&ok)
    return ok, err
}

func nullable(s string) *string {
    if s == "" { return nil }
    return &s
}

func limitOf(p catalog.Page) int {
    if p.Limit <= 0 { return catalog.DefaultLimit }
    return p.Limit
}

// --- producers ---

const producerColumns = `id, name, coalesce(country,''), founded_year, coalesce(website,''), coalesce(bio,''), created_at, updated_at`

func scanProducer(row pgx.Row) (catalog.Producer, error) {
    var p catalog.Producer
    err := row.Scan(&p.ID, &p.Name, &p.Country, &p.FoundedYear, &p.Website, &p.Bio, &p.CreatedAt, &p.UpdatedAt)
    p.CreatedAt, p.UpdatedAt = p.CreatedAt.UTC(), p.UpdatedAt.UTC()
    return p, err
}

func (s *Store) CreateProducer(ctx context.Context, p catalog.Producer) (string, error) {
    id, ts := objectid.New(), s.timestamp()
    _, err := s.pool.Exec(ctx, `
        insert into producers (id, name, country, founded_year, website, bio, created_at, updated_at)
        values ($1,$2,$3,$4,$5,$6,$7,$7)
    `, id, p.Name, nullable(p.Country), p.FoundedYear, nullable(p.Website), nullable(p.Bio), ts)
    if err != nil { return "", err }
    return id, nil
}

func (s *Store) GetProducer(ctx context.Context, id string) (catalog.Producer, error) {
    p, err := scanProducer(s.pool.QueryRow(ctx, `select `+producerColumns+` from producers where id = $1`, id))
    if errors.Is(err, pgx.ErrNoRows) { return catalog.Producer{}, errs.ErrNotFound }
    return p, err
}

func (s *Store) ListProducers(ctx context.Context, page catalog.Page) ([]catalog.Producer, error) {
    rows, err := s.pool.Query(ctx, `
        select `+producerColumns+`
        from producers
        order by created_at desc, id desc
        offset $1 limit $2
    `, page.Skip, limitOf(page))
    if err != nil { return nil, err }
    defer rows.Close()
    out := make([]catalog.Producer, 0)
    for rows.Next() {
        p, err := scanProducer(rows)
        if err != nil { return nil, err }
        out = append(out, p)
    }
    return out, rows.Err()
}

func (s *Store) UpdateProducer(ctx context.Context, id string, patch catalog.ProducerPatch) error {
    var a assignments
    if patch.Name != nil { a.set("name", *patch.Name) }
    if patch.Country != nil { a.set("country", *patch.Country) }
    if patch.FoundedYear != nil { a.set("founded_year", *patch.FoundedYear) }
    if patch.Website != nil { a.set("website", *patch.Website) }
    if patch.Bio != nil { a.set("bio", *patch.Bio) }
    return s.update(ctx, "producers", id, a)
}

func (s *Store) DeleteProducer(ctx context.Context, id string) error { return s.remove(ctx, "producers", id) }

func (s *Store) ProducerExists(ctx context.Context, id string) (bool, error) {
    return s.exists(ctx, `select 1 from producers where id = $1`, id)
}

func (s *Store) ProducerHasMovies(ctx context.Context, id string) (bool, error) {
    return s.exists(ctx, `select 1 from movies where producer_id = $1`, id)
}

// --- movies ---

const movieColumns = `id, title, coalesce(description,''), release_year, duration, genre, producer_id, created_at, updated_at`

func scanMovie(row pgx.Row) (catalog.Movie, error) {
    var m catalog.Movie
    err := row.Scan(&m.ID, &m.Title, &m.Description, &m.ReleaseYear, &m.Duration, &m.Genre, &m.ProducerID, &m.CreatedAt, &m.UpdatedAt)
    if m.Genre == nil { m.Genre = []string{} }
    m.CreatedAt, m.UpdatedAt = m.CreatedAt.UTC(), m.UpdatedAt.UTC()
    return m, err
}

func (s *Store) CreateMovie(ctx context.Context, m catalog.Movie) (string, error) {
    id, ts := objectid.New(), s.timestamp()
    genre := m.Genre
    if genre == nil { genre = []string{} }
    _, err := s.pool.Exec(ctx, `
        insert into movies (id, title, description, release_year, duration, genre, producer_id, created_at, updated_at)
        values ($1,$2,$3,$4,$5,$6,$7,$8,$8)
    `, id, m.Title, nullable(m.Description), m.ReleaseYear, m.Duration, genre, m.ProducerID, ts)
    if err != nil { return "", err }
    return id, nil
}

func (s *Store) GetMovie(ctx context.Context, id string) (catalog.Movie, error) {
    m, err := scanMovie(s.pool.QueryRow(ctx, `select `+movieColumns+` from movies where id = $1`, id))
    if errors.Is(err, pgx.ErrNoRows) { return catalog.Movie{}, errs.ErrNotFound }
    return m, err
}

func (s *Store) ListMovies(ctx context.Context, page catalog.Page) ([]catalog.Movie, error) {
    rows, err := s.pool.Query(ctx, `
        select `+movieColumns+`
        from movies
        order by created_at desc, id desc
        offset $1 limit $2
    `, page.Skip, limitOf(page))
    if err != nil { return nil, err }
    defer rows.Close()
    out := make([]catalog.Movie, 0)
    for rows.Next() {
        m, err := scanMovie(rows)
        if err != nil { return nil, err }
        out = append(out, m)
    }
    return out, rows.Err()
}

func (s *Store) UpdateMovie(ctx context.Context, id string, patch catalog.MoviePatch) error {
    var a assignments
    if patch.Title != nil { a.set("title", *patch.Title) }
    if patch.Description != nil { a.set("description", *patch.Description) }
    if patch.ReleaseYear != nil { a.set("release_year", *patch.ReleaseYear) }
    if patch.Duration != nil { a.set("duration", *patch.Duration) }
    if patch.Genre != nil { a.set("genre", patch.Genre) }
    if patch.ProducerID != nil { a.set("producer_id", *patch.ProducerID) }
    return s.update(ctx, "movies", id, a)
}

func (s *Store) DeleteMovie(ctx context.Context, id string) error { return s.remove(ctx, "movies", id) }

func (s *Store) MovieExists(ctx context.Context, id string) (bool, error) {
    return s.exists(ctx, `select 1 from movies where id = $1`, id)
}

// --- ratings ---

func (s *Store) CreateRating(ctx context.Context, r catalog.Rating) (string, error) {
    id, ts := objectid.New(), s.timestamp()
    date := r.RatingDate.UTC()
    if r.RatingDate.IsZero() { date = ts }
    _, err := s.pool.Exec(ctx, `
        insert into ratings (id, movie_id, score, comment, rating_date, created_by, created_at)
        values ($1,$2,$3,$4,$5,$6,$7)
    `, id, r.MovieID, r.Score, nullable(r.Comment), date, nullable(r.CreatedBy), ts)
    if err != nil { return "", err }
    return id, nil
}

// RatingsByMovie lists one movie's ratings, latest rating date first.
func (s *Store) RatingsByMovie(ctx context.Context, q catalog.RatingQuery) ([]catalog.Rating, error) {
    rows, err := s.pool.Query(ctx, `
        select id, movie_id, score, coalesce(comment,''), rating_date, coalesce(created_by,''), created_at
        from ratings
        where movie_id = $1
        order by rating_date desc, id desc
        offset $2 limit $3
    `, q.MovieID, q.Skip, limitOf(q.Page))
    if err != nil { return nil, err }
    defer rows.Close()
    out := make([]catalog.Rating, 0)
    for rows.Next() {
        var r catalog.Rating
        if err := rows.Scan(&r.ID, &r.MovieID, &r.Score, &r.Comment, &r.RatingDate, &r.CreatedBy, &r.CreatedAt); err != nil { return nil, err }
        r.RatingDate, r.CreatedAt = r.RatingDate.UTC(), r.CreatedAt.UTC()
        out = append(out, r)
    }
    return out, rows.Err()
}

// CountRatingsByMovie groups ratings by movie id. Ids with no ratings map to 0.
func (s *Store) CountRatingsByMovie(ctx context.Context, movieIDs []string) (map[string]int, error) {
    out := make(map[string]int, len(movieIDs))
    for _, id := range movieIDs { out[id] = 0 }
    if len(movieIDs) == 0 { return out, nil }
    rows, err := s.pool.Query(ctx, `
        select movie_id, count(*)
        from ratings
        where movie_id = any($1)
        group by movie_id
    `, movieIDs)
    if err != nil { return nil, err }
    defer rows.Close()
    for rows.Next() {
        var id string
        var n int64
        if err := rows.Scan(&id, &n); err != nil { return nil, err }
        out[id] = int(n)
    }
    return out, rows.Err()
}

// AverageRating sums in SQL and rounds the mean with decimal arithmetic.
func (s *Store) AverageRating(ctx context.Context, movieID string) (catalog.AverageRating, error) {
    var sum, n int64
    err := s.pool.QueryRow(ctx, `
        select coalesce(sum(score),0), count(*) from ratings where movie_id = $1
    `, movieID).Scan(&sum, &n)
    if err != nil { return catalog.AverageRating{}, err }
    return catalog.NewAverageRating(sum, n)
}
