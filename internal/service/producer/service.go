// Package producer implements the producer service rules: identifiers are
// checked before any storage access, and a producer still referenced by a
// movie cannot be removed.
package producer

import (
    "context"
    "errors"

    "github.com/tinoosan/moviecatalog/internal/catalog"
    "github.com/tinoosan/moviecatalog/internal/errs"
    "github.com/tinoosan/moviecatalog/internal/objectid"
    "github.com/tinoosan/moviecatalog/internal/projection"
)

type Repo interface {
    GetProducer(ctx context.Context, id string) (catalog.Producer, error)
    ListProducers(ctx context.Context, page catalog.Page) ([]catalog.Producer, error)
    ProducerExists(ctx context.Context, id string) (bool, error)
    ProducerHasMovies(ctx context.Context, id string) (bool, error)
}

type Writer interface {
    CreateProducer(ctx context.Context, p catalog.Producer) (string, error)
    UpdateProducer(ctx context.Context, id string, patch catalog.ProducerPatch) error
    DeleteProducer(ctx context.Context, id string) error
}

type Service interface {
    Create(ctx context.Context, p catalog.Producer) (string, error)
    Get(ctx context.Context, id string) (projection.Producer, error)
    GetInfo(ctx context.Context, id string) (projection.ProducerInfo, error)
    List(ctx context.Context, page catalog.Page) ([]projection.Producer, error)
    Update(ctx context.Context, id string, patch catalog.ProducerPatch) error
    Remove(ctx context.Context, id string) error
    Exists(ctx context.Context, id string) (bool, error)
}

type service struct {
    repo   Repo
    writer Writer
}

func New(repo Repo, writer Writer) Service { return &service{repo: repo, writer: writer} }

func (s *service) Create(ctx context.Context, p catalog.Producer) (string, error) {
    return s.writer.CreateProducer(ctx, p)
}

func (s *service) Get(ctx context.Context, id string) (projection.Producer, error) {
    p, err := s.load(ctx, id)
    if err != nil { return projection.Producer{}, err }
    return projection.FromProducer(p), nil
}

// GetInfo returns the short producer card with its display name.
func (s *service) GetInfo(ctx context.Context, id string) (projection.ProducerInfo, error) {
    p, err := s.load(ctx, id)
    if err != nil { return projection.ProducerInfo{}, err }
    return projection.FromProducerInfo(p), nil
}

func (s *service) List(ctx context.Context, page catalog.Page) ([]projection.Producer, error) {
    ps, err := s.repo.ListProducers(ctx, page)
    if err != nil { return nil, err }
    return projection.List(ps, projection.FromProducer), nil
}

func (s *service) Update(ctx context.Context, id string, patch catalog.ProducerPatch) error {
    if err := s.mustExist(ctx, id); err != nil { return err }
    if err := s.writer.UpdateProducer(ctx, id, patch); err != nil {
        return notFound(id, err)
    }
    return nil
}

// Remove deletes a producer that no movie references.
func (s *service) Remove(ctx context.Context, id string) error {
    if err := s.mustExist(ctx, id); err != nil { return err }
    has, err := s.repo.ProducerHasMovies(ctx, id)
    if err != nil { return err }
    if has { return errs.Invalid("Cannot delete producer with existing movies") }
    if err := s.writer.DeleteProducer(ctx, id); err != nil {
        return notFound(id, err)
    }
    return nil
}

func (s *service) Exists(ctx context.Context, id string) (bool, error) {
    if !objectid.IsValid(id) { return false, invalidID(id) }
    return s.repo.ProducerExists(ctx, id)
}

func (s *service) load(ctx context.Context, id string) (catalog.Producer, error) {
    if !objectid.IsValid(id) { return catalog.Producer{}, invalidID(id) }
    p, err := s.repo.GetProducer(ctx, id)
    if err != nil { return catalog.Producer{}, notFound(id, err) }
    return p, nil
}

func (s *service) mustExist(ctx context.Context, id string) error {
    ok, err := s.Exists(ctx, id)
    if err != nil { return err }
    if !ok { return errs.NotFoundf("Producer with id %s not found", id) }
    return nil
}

func invalidID(id string) error { return errs.Invalidf("Producer id %s is invalid", id) }

func notFound(id string, err error) error {
    if errors.Is(err, errs.ErrNotFound) { return errs.NotFoundf("Producer with id %s not found", id) }
    return err
}
