package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/tinoosan/moviecatalog/db"
	"github.com/tinoosan/moviecatalog/internal/catalog"
	"github.com/tinoosan/moviecatalog/internal/errs"
	"github.com/tinoosan/moviecatalog/internal/objectid"
)

func getTestDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping Postgres store tests")
	}
	return dsn
}

// mustOpen opens the store, applies the init script and empties every table.
func mustOpen(t *testing.T) *Store {
	t.Helper()
	dsn := getTestDSN(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s, err := Open(ctx, dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Migrate(ctx, db.InitSQL); err != nil {
		t.Fatalf("apply init sql: %v", err)
	}
	if err := s.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func TestStore_ProducersAndMovies(t *testing.T) {
	s := mustOpen(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pid, err := s.CreateProducer(ctx, catalog.Producer{Name: "Gaumont", Country: "France", Website: "https://www.gaumont.fr"})
	if err != nil {
		t.Fatalf("create producer: %v", err)
	}
	if !objectid.IsValid(pid) {
		t.Fatalf("id shape: %q", pid)
	}
	p, err := s.GetProducer(ctx, pid)
	if err != nil || p.Country != "France" || p.FoundedYear != nil || p.Bio != "" {
		t.Fatalf("get producer: %+v %v", p, err)
	}

	mid, err := s.CreateMovie(ctx, catalog.Movie{Title: "Amelie", ReleaseYear: 2001, Duration: 122, ProducerID: pid})
	if err != nil {
		t.Fatalf("create movie: %v", err)
	}
	m, err := s.GetMovie(ctx, mid)
	if err != nil || m.Title != "Amelie" || m.Genre == nil || len(m.Genre) != 0 {
		t.Fatalf("get movie: %+v %v", m, err)
	}
	if has, _ := s.ProducerHasMovies(ctx, pid); !has {
		t.Fatalf("expected producer to have movies")
	}

	genre := []string{"comedy", "romance"}
	if err := s.UpdateMovie(ctx, mid, catalog.MoviePatch{Genre: genre}); err != nil {
		t.Fatalf("update: %v", err)
	}
	m, _ = s.GetMovie(ctx, mid)
	if len(m.Genre) != 2 || m.Duration != 122 {
		t.Fatalf("partial update: %+v", m)
	}

	missing := objectid.New()
	if _, err := s.GetMovie(ctx, missing); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("get missing: %v", err)
	}
	if err := s.DeleteMovie(ctx, missing); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("delete missing: %v", err)
	}
	if err := s.DeleteMovie(ctx, mid); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.DeleteProducer(ctx, pid); err != nil {
		t.Fatalf("delete producer: %v", err)
	}
}

func TestStore_RatingAggregates(t *testing.T) {
	s := mustOpen(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	a, b, c := objectid.New(), objectid.New(), objectid.New()
	for _, score := range []int{8, 9, 7} {
		if _, err := s.CreateRating(ctx, catalog.Rating{MovieID: a, Score: score}); err != nil {
			t.Fatalf("create rating: %v", err)
		}
	}
	_, _ = s.CreateRating(ctx, catalog.Rating{MovieID: b, Score: 3})

	avg, err := s.AverageRating(ctx, a)
	if err != nil || avg.Average != 8 || avg.Count != 3 {
		t.Fatalf("average: %+v %v", avg, err)
	}
	counts, err := s.CountRatingsByMovie(ctx, []string{a, b, c})
	if err != nil || counts[a] != 3 || counts[b] != 1 || counts[c] != 0 {
		t.Fatalf("counts: %v %v", counts, err)
	}
	rs, err := s.RatingsByMovie(ctx, catalog.RatingQuery{MovieID: a, Page: catalog.Page{Skip: 1, Limit: 5}})
	if err != nil || len(rs) != 2 {
		t.Fatalf("ratings: %+v %v", rs, err)
	}
}
