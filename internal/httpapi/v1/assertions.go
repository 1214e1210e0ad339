package v1

import (
    "github.com/tinoosan/moviecatalog/internal/service/movie"
    "github.com/tinoosan/moviecatalog/internal/service/producer"
    "github.com/tinoosan/moviecatalog/internal/service/rating"
    "github.com/tinoosan/moviecatalog/internal/storage/memory"
)

type movieStore interface {
    movie.Repo
    movie.Writer
}

type producerStore interface {
    producer.Repo
    producer.Writer
}

type ratingStore interface {
    rating.Repo
    rating.Writer
}

// Compile-time interface assertions for the in-memory Store against the API's Store union.
var _ Store = (*memory.Store)(nil)
