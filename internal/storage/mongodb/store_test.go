package mongodb

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tinoosan/moviecatalog/internal/catalog"
	"github.com/tinoosan/moviecatalog/internal/errs"
	"github.com/tinoosan/moviecatalog/internal/objectid"
)

func mustOpen(t *testing.T) *Store {
	t.Helper()
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set; skipping Mongo store tests")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db := fmt.Sprintf("moviecatalog_test_%d", time.Now().UnixNano())
	s, err := Open(ctx, uri, db)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.EnsureSchema(ctx); err != nil {
		t.Fatalf("indexes: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = s.client.Database(db).Drop(ctx)
		_ = s.Close(ctx)
	})
	return s
}

func TestStore_ProducersAndMovies(t *testing.T) {
	s := mustOpen(t)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	year := 1985
	pid, err := s.CreateProducer(ctx, catalog.Producer{Name: "Studio Ghibli", Country: "Japan", FoundedYear: &year})
	if err != nil {
		t.Fatalf("create producer: %v", err)
	}
	p, err := s.GetProducer(ctx, pid)
	if err != nil || p.Name != "Studio Ghibli" || p.FoundedYear == nil || *p.FoundedYear != 1985 {
		t.Fatalf("get producer: %+v %v", p, err)
	}

	mid, err := s.CreateMovie(ctx, catalog.Movie{Title: "Spirited Away", ReleaseYear: 2001, Duration: 125, Genre: []string{"animation"}, ProducerID: pid})
	if err != nil {
		t.Fatalf("create movie: %v", err)
	}
	if has, _ := s.ProducerHasMovies(ctx, pid); !has {
		t.Fatalf("expected producer to have movies")
	}

	dur := 124
	if err := s.UpdateMovie(ctx, mid, catalog.MoviePatch{Duration: &dur}); err != nil {
		t.Fatalf("update: %v", err)
	}
	m, err := s.GetMovie(ctx, mid)
	if err != nil || m.Duration != 124 || m.Title != "Spirited Away" || m.ProducerID != pid {
		t.Fatalf("partial update: %+v %v", m, err)
	}

	missing := objectid.New()
	if err := s.UpdateMovie(ctx, missing, catalog.MoviePatch{Duration: &dur}); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("update missing: %v", err)
	}
	if _, err := s.GetMovie(ctx, missing); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("get missing: %v", err)
	}
	if err := s.DeleteMovie(ctx, mid); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if ok, _ := s.MovieExists(ctx, mid); ok {
		t.Fatalf("movie still exists")
	}
}

func TestStore_Pagination(t *testing.T) {
	s := mustOpen(t)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()
	pid, _ := s.CreateProducer(ctx, catalog.Producer{Name: "p"})
	for i := 0; i < 15; i++ {
		if _, err := s.CreateMovie(ctx, catalog.Movie{Title: fmt.Sprintf("m%d", i), ReleaseYear: 2000, Duration: 90, ProducerID: pid}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	first, _ := s.ListMovies(ctx, catalog.Page{Skip: 0, Limit: 10})
	rest, _ := s.ListMovies(ctx, catalog.Page{Skip: 10, Limit: 5})
	if len(first) != 10 || len(rest) != 5 {
		t.Fatalf("sizes %d %d", len(first), len(rest))
	}
	seen := map[string]bool{}
	for _, m := range first {
		seen[m.ID] = true
	}
	for _, m := range rest {
		if seen[m.ID] {
			t.Fatalf("overlap on %s", m.ID)
		}
	}
}

func TestStore_RatingAggregates(t *testing.T) {
	s := mustOpen(t)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()
	a, b, c := objectid.New(), objectid.New(), objectid.New()
	for _, score := range []int{8, 9, 9} {
		if _, err := s.CreateRating(ctx, catalog.Rating{MovieID: a, Score: score}); err != nil {
			t.Fatalf("create rating: %v", err)
		}
	}
	for _, score := range []int{8, 9} {
		_, _ = s.CreateRating(ctx, catalog.Rating{MovieID: b, Score: score})
	}

	counts, err := s.CountRatingsByMovie(ctx, []string{a, b, c})
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if counts[a] != 3 || counts[b] != 2 || counts[c] != 0 {
		t.Fatalf("counts: %v", counts)
	}

	avg, err := s.AverageRating(ctx, a)
	if err != nil || avg.Average != 8.67 || avg.Count != 3 {
		t.Fatalf("average: %+v %v", avg, err)
	}
	none, err := s.AverageRating(ctx, c)
	if err != nil || none.Average != 0 || none.Count != 0 {
		t.Fatalf("empty average: %+v %v", none, err)
	}

	rs, err := s.RatingsByMovie(ctx, catalog.RatingQuery{MovieID: a, Page: catalog.Page{Limit: 2}})
	if err != nil || len(rs) != 2 {
		t.Fatalf("ratings: %+v %v", rs, err)
	}
}

func TestStore_CollectionValidatorsRejectOutOfRangeWrites(t *testing.T) {
	s := mustOpen(t)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	// re-applying the validators to existing collections is allowed
	if err := s.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema twice: %v", err)
	}

	_, err := s.CreateRating(ctx, catalog.Rating{MovieID: objectid.New(), Score: 11})
	var we mongo.WriteException
	if !errors.As(err, &we) || !we.HasErrorCode(121) {
		t.Fatalf("expected document validation failure, got %v", err)
	}
	if errors.Is(err, errs.ErrInvalid) {
		t.Fatalf("storage failures must pass through unmapped")
	}

	ts := time.Now().UTC()
	_, err = s.movies.InsertOne(ctx, movieDoc{
		ID: primitive.NewObjectID(), Title: "Too long", ReleaseYear: 2000, Duration: 500,
		Genre: []string{}, ProducerID: primitive.NewObjectID(), CreatedAt: ts, UpdatedAt: ts,
	})
	if !errors.As(err, &we) || !we.HasErrorCode(121) {
		t.Fatalf("expected duration to be rejected, got %v", err)
	}

	if _, err := s.CreateProducer(ctx, catalog.Producer{Name: "Valid", Website: "https://example.org"}); err != nil {
		t.Fatalf("valid producer rejected: %v", err)
	}
}
