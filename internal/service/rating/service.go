// Package rating implements the rating service: creation against an existing
// movie, per-movie listing, bulk counts and averages.
package rating

import (
    "context"
    "strings"
    "time"

    "github.com/tinoosan/moviecatalog/internal/catalog"
    "github.com/tinoosan/moviecatalog/internal/errs"
    "github.com/tinoosan/moviecatalog/internal/objectid"
    "github.com/tinoosan/moviecatalog/internal/projection"
)

type Repo interface {
    RatingsByMovie(ctx context.Context, q catalog.RatingQuery) ([]catalog.Rating, error)
    CountRatingsByMovie(ctx context.Context, movieIDs []string) (map[string]int, error)
    AverageRating(ctx context.Context, movieID string) (catalog.AverageRating, error)
}

type Writer interface {
    CreateRating(ctx context.Context, r catalog.Rating) (string, error)
}

// Movies answers existence questions about movies; the movie service satisfies it.
type Movies interface {
    Exists(ctx context.Context, id string) (bool, error)
}

type Service interface {
    Create(ctx context.Context, r catalog.Rating) (string, error)
    FindByMovie(ctx context.Context, q catalog.RatingQuery) ([]projection.Rating, error)
    CountByMovies(ctx context.Context, movieIDs []string) (map[string]int, error)
    Average(ctx context.Context, movieID string) (catalog.AverageRating, error)
}

type service struct {
    repo   Repo
    writer Writer
    movies Movies
    now    func() time.Time
}

// Option configures the service.
type Option func(*service)

// WithClock sets the clock used to default a missing rating date.
func WithClock(now func() time.Time) Option { return func(s *service) { s.now = now } }

func New(repo Repo, writer Writer, movies Movies, opts ...Option) Service {
    s := &service{repo: repo, writer: writer, movies: movies, now: time.Now}
    for _, o := range opts { o(s) }
    return s
}

// Create stores a rating for an existing movie. RatingDate defaults to now.
func (s *service) Create(ctx context.Context, r catalog.Rating) (string, error) {
    if !objectid.IsValid(r.MovieID) { return "", invalidMovieID(r.MovieID) }
    ok, err := s.movies.Exists(ctx, r.MovieID)
    if err != nil { return "", err }
    if !ok { return "", errs.Invalidf("Movie with id %s doesn't exists.", r.MovieID) }
    if r.RatingDate.IsZero() { r.RatingDate = s.now().UTC() }
    return s.writer.CreateRating(ctx, r)
}

func (s *service) FindByMovie(ctx context.Context, q catalog.RatingQuery) ([]projection.Rating, error) {
    if !objectid.IsValid(q.MovieID) { return nil, invalidMovieID(q.MovieID) }
    rs, err := s.repo.RatingsByMovie(ctx, q)
    if err != nil { return nil, err }
    return projection.List(rs, projection.FromRating), nil
}

// CountByMovies rejects the whole request when any id is malformed.
func (s *service) CountByMovies(ctx context.Context, movieIDs []string) (map[string]int, error) {
    if bad := objectid.Invalid(movieIDs); len(bad) > 0 {
        return nil, errs.Invalidf("Invalid movie ids: %s", strings.Join(bad, ", "))
    }
    if len(movieIDs) == 0 { return map[string]int{}, nil }
    return s.repo.CountRatingsByMovie(ctx, movieIDs)
}

func (s *service) Average(ctx context.Context, movieID string) (catalog.AverageRating, error) {
    if !objectid.IsValid(movieID) { return catalog.AverageRating{}, invalidMovieID(movieID) }
    return s.repo.AverageRating(ctx, movieID)
}

func invalidMovieID(id string) error { return errs.Invalidf("Movie id %s is invalid", id) }
