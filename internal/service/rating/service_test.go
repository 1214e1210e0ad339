package rating_test

import (
    "context"
    "errors"
    "testing"
    "time"

    "github.com/tinoosan/moviecatalog/internal/catalog"
    "github.com/tinoosan/moviecatalog/internal/errs"
    "github.com/tinoosan/moviecatalog/internal/objectid"
    "github.com/tinoosan/moviecatalog/internal/service/movie"
    "github.com/tinoosan/moviecatalog/internal/service/producer"
    "github.com/tinoosan/moviecatalog/internal/service/rating"
    "github.com/tinoosan/moviecatalog/internal/storage/memory"
)

var now = time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)

func setup(t *testing.T) (rating.Service, string) {
    t.Helper()
    ctx := context.Background()
    st := memory.New()
    psvc := producer.New(st, st)
    msvc := movie.New(st, st, psvc)
    pid, _ := psvc.Create(ctx, catalog.Producer{Name: "Pixar"})
    mid, err := msvc.Create(ctx, catalog.Movie{Title: "Up", ReleaseYear: 2009, Duration: 96, ProducerID: pid})
    if err != nil { t.Fatalf("movie: %v", err) }
    return rating.New(st, st, msvc, rating.WithClock(func() time.Time { return now })), mid
}

func wantMessage(t *testing.T, err error, sentinel error, msg string) {
    t.Helper()
    if !errors.Is(err, sentinel) { t.Fatalf("expected %v, got %v", sentinel, err) }
    if err.Error() != msg { t.Fatalf("message: got %q want %q", err.Error(), msg) }
}

func TestCreate_MovieChecks(t *testing.T) {
    svc, mid := setup(t)
    ctx := context.Background()

    _, err := svc.Create(ctx, catalog.Rating{MovieID: "x1", Score: 5})
    wantMessage(t, err, errs.ErrInvalid, "Movie id x1 is invalid")

    ghost := objectid.New()
    _, err = svc.Create(ctx, catalog.Rating{MovieID: ghost, Score: 5})
    wantMessage(t, err, errs.ErrInvalid, "Movie with id "+ghost+" doesn't exists.")

    counts, _ := svc.CountByMovies(ctx, []string{ghost, mid})
    if counts[ghost] != 0 || counts[mid] != 0 { t.Fatalf("failed create must not persist: %v", counts) }
}

func TestCreate_DefaultsRatingDate(t *testing.T) {
    svc, mid := setup(t)
    ctx := context.Background()
    if _, err := svc.Create(ctx, catalog.Rating{MovieID: mid, Score: 7, CreatedBy: "ana"}); err != nil { t.Fatalf("create: %v", err) }
    rs, err := svc.FindByMovie(ctx, catalog.RatingQuery{MovieID: mid, Page: catalog.DefaultPage()})
    if err != nil || len(rs) != 1 { t.Fatalf("find: %v %v", rs, err) }
    if !rs[0].RatingDate.Equal(now) || rs[0].CreatedBy != "ana" { t.Fatalf("rating: %+v", rs[0]) }
}

func TestAverage(t *testing.T) {
    cases := []struct {
        scores []int
        avg    float64
    }{
        {[]int{8, 9, 7}, 8},
        {[]int{8, 9, 9}, 8.67},
        {nil, 0},
    }
    for _, c := range cases {
        svc, mid := setup(t)
        ctx := context.Background()
        for _, s := range c.scores {
            if _, err := svc.Create(ctx, catalog.Rating{MovieID: mid, Score: s}); err != nil { t.Fatalf("create: %v", err) }
        }
        got, err := svc.Average(ctx, mid)
        if err != nil { t.Fatalf("average: %v", err) }
        if got.Average != c.avg || got.Count != len(c.scores) { t.Fatalf("scores %v: got %+v", c.scores, got) }
    }
    svc, _ := setup(t)
    _, err := svc.Average(context.Background(), "bad")
    wantMessage(t, err, errs.ErrInvalid, "Movie id bad is invalid")
}

func TestCountByMovies(t *testing.T) {
    svc, mid := setup(t)
    ctx := context.Background()
    for i := 0; i < 3; i++ { _, _ = svc.Create(ctx, catalog.Rating{MovieID: mid, Score: 5}) }
    other := objectid.New()

    got, err := svc.CountByMovies(ctx, []string{mid, other})
    if err != nil { t.Fatalf("counts: %v", err) }
    if got[mid] != 3 || got[other] != 0 { t.Fatalf("counts: %v", got) }

    empty, err := svc.CountByMovies(ctx, []string{})
    if err != nil || len(empty) != 0 || empty == nil { t.Fatalf("empty: %v %v", empty, err) }

    _, err = svc.CountByMovies(ctx, []string{mid, "a", "b"})
    wantMessage(t, err, errs.ErrInvalid, "Invalid movie ids: a, b")
}

func TestFindByMovie_Paging(t *testing.T) {
    svc, mid := setup(t)
    ctx := context.Background()
    base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
    for i := 0; i < 5; i++ {
        _, _ = svc.Create(ctx, catalog.Rating{MovieID: mid, Score: i + 1, RatingDate: base.AddDate(0, i, 0)})
    }
    rs, err := svc.FindByMovie(ctx, catalog.RatingQuery{MovieID: mid, Page: catalog.Page{Skip: 1, Limit: 2}})
    if err != nil { t.Fatalf("find: %v", err) }
    if len(rs) != 2 || rs[0].Score != 4 || rs[1].Score != 3 { t.Fatalf("page: %+v", rs) }

    _, err = svc.FindByMovie(ctx, catalog.RatingQuery{MovieID: "m", Page: catalog.DefaultPage()})
    wantMessage(t, err, errs.ErrInvalid, "Movie id m is invalid")
}
