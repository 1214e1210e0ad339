// Package v1 wires the HTTP surface of the movie catalog.
// It keeps handlers thin, delegating business rules to the service layer.
package v1

import (
    "net/http"
    "time"

    chi "github.com/go-chi/chi/v5"
    "log/slog"

    "github.com/tinoosan/moviecatalog/internal/schema"
    "github.com/tinoosan/moviecatalog/internal/service/movie"
    "github.com/tinoosan/moviecatalog/internal/service/producer"
    "github.com/tinoosan/moviecatalog/internal/service/rating"
)

// Server wires handlers and middleware using Chi.
// It composes read (repo) and write (writer) dependencies through services.
type Server struct {
    movies    movie.Service
    producers producer.Service
    ratings   rating.Service
    // stores are checked by /readyz when they implement ReadyChecker
    stores  []any
    log     *slog.Logger
    rt      *chi.Mux
    now     func() time.Time
    limiter *clientLimiter
}

// Option configures optional server behaviour.
type Option func(*Server)

// WithClock sets the clock used by request validation and rating defaults.
func WithClock(now func() time.Time) Option { return func(s *Server) { s.now = now } }

// WithRateLimit enables per-client token bucket limiting. rps <= 0 disables it.
func WithRateLimit(rps float64, burst int) Option {
    return func(s *Server) {
        if rps > 0 { s.limiter = newClientLimiter(rps, burst) }
    }
}

// New constructs the HTTP server with routes and middleware.
// The logger is used by request logging, panic recovery and 500 reporting.
func New(mrepo movie.Repo, mwriter movie.Writer, prepo producer.Repo, pwriter producer.Writer, rrepo rating.Repo, rwriter rating.Writer, logger *slog.Logger, opts ...Option) *Server {
    s := &Server{
        stores: []any{mrepo, mwriter, prepo, pwriter, rrepo, rwriter},
        log:    logger,
        rt:     chi.NewRouter(),
        now:    time.Now,
    }
    for _, o := range opts { o(s) }
    s.producers = producer.New(prepo, pwriter)
    s.movies = movie.New(mrepo, mwriter, s.producers)
    s.ratings = rating.New(rrepo, rwriter, s.movies, rating.WithClock(s.now))

    s.rt.Use(requestID)
    s.rt.Use(requestLogger(logger))
    s.rt.Use(s.recoverer)
    s.rt.Use(metricsMiddleware)
    if s.limiter != nil { s.rt.Use(s.rateLimit) }
    s.rt.NotFound(func(w http.ResponseWriter, r *http.Request) { writeErr(w, http.StatusNotFound, "Route not found") })
    s.rt.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
        writeErr(w, http.StatusMethodNotAllowed, "Method not allowed")
    })
    s.routes()
    return s
}

// Handler exposes the configured http.Handler.
func (s *Server) Handler() http.Handler { return s.rt }

// routes declares the public HTTP API endpoints and attaches any per-route middleware.
func (s *Server) routes() {
    s.rt.Route("/api/movies", func(r chi.Router) {
        r.With(s.validateBody(schema.MovieCreate)).Post("/", s.postMovie)
        r.With(s.validateQuery(schema.ListQuery)).Get("/", s.listMovies)
        r.Get("/{id}", s.getMovie)
        r.With(s.validateBody(schema.MovieUpdate)).Patch("/{id}", s.patchMovie)
        r.Delete("/{id}", s.deleteMovie)
    })
    s.rt.Route("/api/producers", func(r chi.Router) {
        r.With(s.validateBody(schema.ProducerCreate)).Post("/", s.postProducer)
        r.With(s.validateQuery(schema.ListQuery)).Get("/", s.listProducers)
        r.Get("/{id}", s.getProducer)
        r.Get("/{id}/info", s.getProducerInfo)
        r.With(s.validateBody(schema.ProducerUpdate)).Patch("/{id}", s.patchProducer)
        r.Delete("/{id}", s.deleteProducer)
    })
    s.rt.Route("/api/ratings", func(r chi.Router) {
        r.With(s.validateBody(schema.RatingCreate)).Post("/", s.postRating)
        r.With(s.validateQuery(schema.RatingQuery)).Get("/", s.listRatings)
        r.With(s.validateBody(schema.RatingCounts)).Post("/_counts", s.countRatings)
        r.Get("/{movieId}/average", s.averageRating)
    })
    // Health (unversioned)
    s.rt.Get("/healthz", s.healthz)
    s.rt.Get("/readyz", s.readyz)
    s.rt.Method(http.MethodGet, "/metrics", metricsHandler())
    // OpenAPI document
    s.rt.Get("/api-docs/openapi.yaml", s.openapiSpec)
}
