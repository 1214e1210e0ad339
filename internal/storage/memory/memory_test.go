package memory

import (
    "context"
    "errors"
    "testing"
    "time"

    "github.com/tinoosan/moviecatalog/internal/catalog"
    "github.com/tinoosan/moviecatalog/internal/errs"
    "github.com/tinoosan/moviecatalog/internal/objectid"
)

func fixedClock() func() time.Time {
    t0 := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
    return func() time.Time { return t0 }
}

func seedProducer(t *testing.T, s *Store) string {
    t.Helper()
    id, err := s.CreateProducer(context.Background(), catalog.Producer{Name: "Legendary"})
    if err != nil { t.Fatalf("create producer: %v", err) }
    return id
}

func TestCreateAndGetMovie(t *testing.T) {
    ctx := context.Background()
    s := New(WithClock(fixedClock()))
    pid := seedProducer(t, s)
    id, err := s.CreateMovie(ctx, catalog.Movie{Title: "Dune", ReleaseYear: 2021, Duration: 155, Genre: []string{"sci-fi"}, ProducerID: pid})
    if err != nil { t.Fatalf("create: %v", err) }
    if !objectid.IsValid(id) { t.Fatalf("id not object id shaped: %q", id) }
    m, err := s.GetMovie(ctx, id)
    if err != nil { t.Fatalf("get: %v", err) }
    if m.Title != "Dune" || m.Duration != 155 || m.ProducerID != pid || m.CreatedAt.IsZero() {
        t.Fatalf("unexpected movie: %+v", m)
    }
    if _, err := s.GetMovie(ctx, objectid.New()); !errors.Is(err, errs.ErrNotFound) {
        t.Fatalf("expected ErrNotFound, got %v", err)
    }
}

func TestListMovies_PaginationNewestFirst(t *testing.T) {
    ctx := context.Background()
    s := New(WithClock(fixedClock()))
    pid := seedProducer(t, s)
    var ids []string
    for i := 0; i < 15; i++ {
        id, err := s.CreateMovie(ctx, catalog.Movie{Title: "m", ReleaseYear: 2000, Duration: 90, ProducerID: pid})
        if err != nil { t.Fatalf("create: %v", err) }
        ids = append(ids, id)
    }
    first, _ := s.ListMovies(ctx, catalog.Page{Skip: 0, Limit: 10})
    rest, _ := s.ListMovies(ctx, catalog.Page{Skip: 10, Limit: 5})
    if len(first) != 10 || len(rest) != 5 {
        t.Fatalf("page sizes: %d %d", len(first), len(rest))
    }
    seen := map[string]bool{}
    for _, m := range first { seen[m.ID] = true }
    for _, m := range rest {
        if seen[m.ID] { t.Fatalf("pages overlap on %s", m.ID) }
    }
    if first[0].ID != ids[14] { t.Fatalf("newest first expected %s got %s", ids[14], first[0].ID) }
    if rest[4].ID != ids[0] { t.Fatalf("oldest last expected %s got %s", ids[0], rest[4].ID) }

    empty, _ := s.ListMovies(ctx, catalog.Page{Skip: 50, Limit: 5})
    if len(empty) != 0 { t.Fatalf("skip past end should be empty") }
}

func TestUpdateMovie_Partial(t *testing.T) {
    ctx := context.Background()
    s := New()
    pid := seedProducer(t, s)
    id, _ := s.CreateMovie(ctx, catalog.Movie{Title: "Old", ReleaseYear: 1999, Duration: 136, Genre: []string{"action"}, ProducerID: pid})
    title := "New"
    if err := s.UpdateMovie(ctx, id, catalog.MoviePatch{Title: &title}); err != nil { t.Fatalf("update: %v", err) }
    m, _ := s.GetMovie(ctx, id)
    if m.Title != "New" || m.ReleaseYear != 1999 || m.Duration != 136 || len(m.Genre) != 1 {
        t.Fatalf("partial update clobbered fields: %+v", m)
    }
    if err := s.UpdateMovie(ctx, objectid.New(), catalog.MoviePatch{Title: &title}); !errors.Is(err, errs.ErrNotFound) {
        t.Fatalf("expected ErrNotFound, got %v", err)
    }
}

func TestDeleteAndHasMovies(t *testing.T) {
    ctx := context.Background()
    s := New()
    pid := seedProducer(t, s)
    if has, _ := s.ProducerHasMovies(ctx, pid); has { t.Fatalf("no movies yet") }
    id, _ := s.CreateMovie(ctx, catalog.Movie{Title: "x", ReleaseYear: 2000, Duration: 90, ProducerID: pid})
    if has, _ := s.ProducerHasMovies(ctx, pid); !has { t.Fatalf("expected hasMovies") }
    if err := s.DeleteMovie(ctx, id); err != nil { t.Fatalf("delete: %v", err) }
    if ok, _ := s.MovieExists(ctx, id); ok { t.Fatalf("movie still exists") }
    if err := s.DeleteMovie(ctx, id); !errors.Is(err, errs.ErrNotFound) { t.Fatalf("second delete: %v", err) }
}

func TestRatings_ListCountAverage(t *testing.T) {
    ctx := context.Background()
    s := New()
    a, b, c := objectid.New(), objectid.New(), objectid.New()
    base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
    for i, score := range []int{8, 9, 9} {
        if _, err := s.CreateRating(ctx, catalog.Rating{MovieID: a, Score: score, RatingDate: base.AddDate(0, 0, i)}); err != nil {
            t.Fatalf("create rating: %v", err)
        }
    }
    for _, score := range []int{8, 9} {
        _, _ = s.CreateRating(ctx, catalog.Rating{MovieID: b, Score: score, RatingDate: base})
    }

    rs, _ := s.RatingsByMovie(ctx, catalog.RatingQuery{MovieID: a, Page: catalog.Page{Limit: 2}})
    if len(rs) != 2 || !rs[0].RatingDate.After(rs[1].RatingDate) {
        t.Fatalf("expected latest rating first: %+v", rs)
    }

    counts, _ := s.CountRatingsByMovie(ctx, []string{a, b, c})
    if counts[a] != 3 || counts[b] != 2 || counts[c] != 0 || len(counts) != 3 {
        t.Fatalf("counts: %v", counts)
    }

    avg, _ := s.AverageRating(ctx, a)
    if avg.Average != 8.67 || avg.Count != 3 { t.Fatalf("average: %+v", avg) }
    none, _ := s.AverageRating(ctx, c)
    if none.Average != 0 || none.Count != 0 { t.Fatalf("empty average: %+v", none) }
}

func TestCreateRating_DefaultsDate(t *testing.T) {
    ctx := context.Background()
    clock := fixedClock()
    s := New(WithClock(clock))
    mid := objectid.New()
    if _, err := s.CreateRating(ctx, catalog.Rating{MovieID: mid, Score: 5}); err != nil { t.Fatalf("create: %v", err) }
    rs, _ := s.RatingsByMovie(ctx, catalog.RatingQuery{MovieID: mid, Page: catalog.DefaultPage()})
    if len(rs) != 1 || !rs[0].RatingDate.Equal(clock()) { t.Fatalf("rating date not defaulted: %+v", rs) }
}
