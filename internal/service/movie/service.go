// Package movie implements the movie service. Every write that names a
// producer checks the producer id format and existence before storage is touched.
package movie

import (
    "context"
    "errors"

    "github.com/tinoosan/moviecatalog/internal/catalog"
    "github.com/tinoosan/moviecatalog/internal/errs"
    "github.com/tinoosan/moviecatalog/internal/objectid"
    "github.com/tinoosan/moviecatalog/internal/projection"
)

type Repo interface {
    GetMovie(ctx context.Context, id string) (catalog.Movie, error)
    ListMovies(ctx context.Context, page catalog.Page) ([]catalog.Movie, error)
    MovieExists(ctx context.Context, id string) (bool, error)
}

type Writer interface {
    CreateMovie(ctx context.Context, m catalog.Movie) (string, error)
    UpdateMovie(ctx context.Context, id string, patch catalog.MoviePatch) error
    DeleteMovie(ctx context.Context, id string) error
}

// Producers answers existence questions about producers; the producer service satisfies it.
type Producers interface {
    Exists(ctx context.Context, id string) (bool, error)
}

type Service interface {
    Create(ctx context.Context, m catalog.Movie) (string, error)
    Get(ctx context.Context, id string) (projection.Movie, error)
    List(ctx context.Context, page catalog.Page) ([]projection.Movie, error)
    Update(ctx context.Context, id string, patch catalog.MoviePatch) error
    Remove(ctx context.Context, id string) error
    Exists(ctx context.Context, id string) (bool, error)
}

type service struct {
    repo      Repo
    writer    Writer
    producers Producers
}

func New(repo Repo, writer Writer, producers Producers) Service {
    return &service{repo: repo, writer: writer, producers: producers}
}

func (s *service) Create(ctx context.Context, m catalog.Movie) (string, error) {
    if err := s.validateProducer(ctx, m.ProducerID); err != nil { return "", err }
    return s.writer.CreateMovie(ctx, m)
}

func (s *service) Get(ctx context.Context, id string) (projection.Movie, error) {
    if !objectid.IsValid(id) { return projection.Movie{}, invalidID(id) }
    m, err := s.repo.GetMovie(ctx, id)
    if err != nil { return projection.Movie{}, notFound(id, err) }
    return projection.FromMovie(m), nil
}

func (s *service) List(ctx context.Context, page catalog.Page) ([]projection.Movie, error) {
    ms, err := s.repo.ListMovies(ctx, page)
    if err != nil { return nil, err }
    return projection.List(ms, projection.FromMovie), nil
}

// Update applies the supplied fields. A new producer id is re-checked.
func (s *service) Update(ctx context.Context, id string, patch catalog.MoviePatch) error {
    if !objectid.IsValid(id) { return invalidID(id) }
    if patch.ProducerID != nil {
        if err := s.validateProducer(ctx, *patch.ProducerID); err != nil { return err }
    }
    if err := s.writer.UpdateMovie(ctx, id, patch); err != nil { return notFound(id, err) }
    return nil
}

func (s *service) Remove(ctx context.Context, id string) error {
    if !objectid.IsValid(id) { return invalidID(id) }
    if err := s.writer.DeleteMovie(ctx, id); err != nil { return notFound(id, err) }
    return nil
}

func (s *service) Exists(ctx context.Context, id string) (bool, error) {
    if !objectid.IsValid(id) { return false, invalidID(id) }
    return s.repo.MovieExists(ctx, id)
}

func (s *service) validateProducer(ctx context.Context, producerID string) error {
    if !objectid.IsValid(producerID) { return errs.Invalidf("Producer id %s is invalid", producerID) }
    ok, err := s.producers.Exists(ctx, producerID)
    if err != nil { return err }
    if !ok { return errs.Invalidf("Producer with id %s doesn't exists.", producerID) }
    return nil
}

func invalidID(id string) error { return errs.Invalidf("Movie id %s is invalid", id) }

func notFound(id string, err error) error {
    if errors.Is(err, errs.ErrNotFound) { return errs.NotFoundf("Movie with id %s not found", id) }
    return err
}
