// Package projection maps persisted records to the shapes returned to clients.
//
// Only public fields are copied. References are exposed as id strings and
// derived fields are computed here. Inputs are never modified.
package projection

import (
	"time"

	"github.com/tinoosan/moviecatalog/internal/catalog"
)

type Movie struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	ReleaseYear int       `json:"releaseYear"`
	Duration    int       `json:"duration"`
	Genre       []string  `json:"genre"`
	ProducerID  string    `json:"producerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Producer struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Country     string    `json:"country,omitempty"`
	FoundedYear *int      `json:"foundedYear,omitempty"`
	Website     string    `json:"website,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProducerInfo is the short producer card with a display name.
type ProducerInfo struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Country     string `json:"country,omitempty"`
	DisplayName string `json:"displayName"`
}

type Rating struct {
	ID         string    `json:"_id"`
	MovieID    string    `json:"movieId"`
	Score      int       `json:"score"`
	Comment    string    `json:"comment,omitempty"`
	RatingDate time.Time `json:"ratingDate"`
	CreatedBy  string    `json:"createdBy,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func FromMovie(m catalog.Movie) Movie {
	genre := make([]string, len(m.Genre))
	copy(genre, m.Genre)
	return Movie{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		ReleaseYear: m.ReleaseYear,
		Duration:    m.Duration,
		Genre:       genre,
		ProducerID:  m.ProducerID,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

func FromProducer(p catalog.Producer) Producer {
	var founded *int
	if p.FoundedYear != nil {
		y := *p.FoundedYear
		founded = &y
	}
	return Producer{
		ID:          p.ID,
		Name:        p.Name,
		Country:     p.Country,
		FoundedYear: founded,
		Website:     p.Website,
		Bio:         p.Bio,
		CreatedAt:   p.CreatedAt.UTC(),
		UpdatedAt:   p.UpdatedAt.UTC(),
	}
}

// FromProducerInfo derives the display name as "name (country)", or just the
// name when no country is recorded.
func FromProducerInfo(p catalog.Producer) ProducerInfo {
	display := p.Name
	if p.Country != "" {
		display += " (" + p.Country + ")"
	}
	return ProducerInfo{ID: p.ID, Name: p.Name, Country: p.Country, DisplayName: display}
}

func FromRating(r catalog.Rating) Rating {
	return Rating{
		ID:         r.ID,
		MovieID:    r.MovieID,
		Score:      r.Score,
		Comment:    r.Comment,
		RatingDate: r.RatingDate.UTC(),
		CreatedBy:  r.CreatedBy,
		CreatedAt:  r.CreatedAt.UTC(),
	}
}

// List applies fn to every record. The result is never nil.
func List[T, P any](records []T, fn func(T) P) []P {
	out := make([]P, 0, len(records))
	for _, r := range records {
		out = append(out, fn(r))
	}
	return out
}
