package v1

import "context"

// ReadyChecker is optionally implemented by stores to indicate readiness.
type ReadyChecker interface {
    Ready(ctx context.Context) error
}

// Store is the union of repositories and writers the API needs from one backend.
// Every storage implementation satisfies it.
type Store interface {
    ReadyChecker
    movieStore
    producerStore
    ratingStore
}
