package seed

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/tinoosan/moviecatalog/internal/catalog"
	"github.com/tinoosan/moviecatalog/internal/service/movie"
	"github.com/tinoosan/moviecatalog/internal/service/producer"
	"github.com/tinoosan/moviecatalog/internal/service/rating"
	"github.com/tinoosan/moviecatalog/internal/storage/memory"
)

func TestLoad(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	ps := producer.New(st, st)
	ms := movie.New(st, st, ps)
	rs := rating.New(st, st, ms)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	sum, err := Load(ctx, ps, ms, rs, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), log)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if sum.Producers != len(producers) || sum.Movies != len(movies) {
		t.Fatalf("summary: %+v", sum)
	}
	all, _ := ms.List(ctx, catalog.Page{Limit: 100})
	if len(all) != len(movies) {
		t.Fatalf("movies stored: %d", len(all))
	}
	// newest first: the last seeded movie leads
	if all[0].Title != movies[len(movies)-1].movie.Title {
		t.Fatalf("order: %s", all[0].Title)
	}
	ps1, _ := ps.List(ctx, catalog.Page{Limit: 100})
	for _, p := range ps1 {
		if p.Name == "Warner Bros. Pictures" {
			if err := ps.Remove(ctx, p.ID); err == nil {
				t.Fatalf("producer with movies must not be removable")
			}
		}
	}
}
