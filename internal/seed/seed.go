// Package seed loads a small sample catalog through the services, so every
// invariant that guards API writes also guards the sample data.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tinoosan/moviecatalog/internal/catalog"
	"github.com/tinoosan/moviecatalog/internal/service/movie"
	"github.com/tinoosan/moviecatalog/internal/service/producer"
	"github.com/tinoosan/moviecatalog/internal/service/rating"
)

// Summary counts what was created.
type Summary struct {
	Producers int
	Movies    int
	Ratings   int
}

func year(y int) *int { return &y }

var producers = []catalog.Producer{
	{Name: "Warner Bros. Pictures", Country: "USA", FoundedYear: year(1923), Website: "https://www.warnerbros.com", Bio: "American film studio and one of the largest in the world."},
	{Name: "Paramount Pictures", Country: "USA", FoundedYear: year(1912), Website: "https://www.paramount.com", Bio: "One of the oldest Hollywood studios."},
	{Name: "Universal Pictures", Country: "USA", FoundedYear: year(1912), Website: "https://www.universalpictures.com"},
	{Name: "Studio Ghibli", Country: "Japan", FoundedYear: year(1985), Website: "https://www.ghibli.jp", Bio: "Japanese animation studio."},
	{Name: "Fox 2000 Pictures", Country: "USA", FoundedYear: year(1994)},
}

// movie rows reference producers by index
var movies = []struct {
	producer int
	movie    catalog.Movie
}{
	{0, catalog.Movie{Title: "Interstellar", Description: "Explorers travel through a wormhole in search of a new home for humanity.", ReleaseYear: 2014, Duration: 169, Genre: []string{"sci-fi", "drama", "adventure"}}},
	{0, catalog.Movie{Title: "Inception", Description: "A thief who steals secrets through dream-sharing technology.", ReleaseYear: 2010, Duration: 148, Genre: []string{"sci-fi", "action", "thriller"}}},
	{1, catalog.Movie{Title: "Titanic", Description: "A love story aboard the ill-fated liner.", ReleaseYear: 1997, Duration: 195, Genre: []string{"drama", "romance", "history"}}},
	{1, catalog.Movie{Title: "Forrest Gump", ReleaseYear: 1994, Duration: 142, Genre: []string{"drama", "comedy"}}},
	{2, catalog.Movie{Title: "Jurassic Park", ReleaseYear: 1993, Duration: 127, Genre: []string{"adventure", "sci-fi"}}},
	{3, catalog.Movie{Title: "Spirited Away", Description: "A girl wanders into a world of spirits.", ReleaseYear: 2001, Duration: 125, Genre: []string{"animation", "fantasy"}}},
	{3, catalog.Movie{Title: "My Neighbor Totoro", ReleaseYear: 1988, Duration: 86, Genre: []string{"animation", "family"}}},
	{4, catalog.Movie{Title: "Fight Club", ReleaseYear: 1999, Duration: 139, Genre: []string{"drama"}}},
}

// scores per movie index; each rating is dated one day after the previous
var scores = [][]int{
	{10, 9, 9, 8},
	{9, 8, 10},
	{8, 7},
	{9, 9, 10},
	{8},
	{10, 10, 9},
	{9, 8},
	{},
}

// Load creates the sample producers, movies and ratings. base dates the
// first rating of every movie.
func Load(ctx context.Context, ps producer.Service, ms movie.Service, rs rating.Service, base time.Time, log *slog.Logger) (Summary, error) {
	var sum Summary
	pids := make([]string, 0, len(producers))
	for _, p := range producers {
		id, err := ps.Create(ctx, p)
		if err != nil { return sum, fmt.Errorf("seed producer %q: %w", p.Name, err) }
		pids = append(pids, id)
		sum.Producers++
	}
	log.Info("seeded producers", "count", sum.Producers)

	for i, row := range movies {
		m := row.movie
		m.ProducerID = pids[row.producer]
		mid, err := ms.Create(ctx, m)
		if err != nil { return sum, fmt.Errorf("seed movie %q: %w", m.Title, err) }
		sum.Movies++
		for j, score := range scores[i] {
			r := catalog.Rating{MovieID: mid, Score: score, CreatedBy: fmt.Sprintf("viewer%d", j+1), RatingDate: base.AddDate(0, 0, j)}
			if _, err := rs.Create(ctx, r); err != nil { return sum, fmt.Errorf("seed rating for %q: %w", m.Title, err) }
			sum.Ratings++
		}
	}
	log.Info("seeded catalog", "producers", sum.Producers, "movies", sum.Movies, "ratings", sum.Ratings)
	return sum, nil
}
