package catalog

import (
    "time"
)

// Field bounds shared by the schema tables and the storage backends.
const (
    MinTitleLength       = 1
    MaxTitleLength       = 400
    MaxDescriptionLength = 300
    // Updates accept a shorter title and a longer description than creates.
    MaxUpdatedTitleLength       = 200
    MaxUpdatedDescriptionLength = 2000
    MinReleaseYear       = 1888
    // ReleaseYearLead is how many years past the current year a release may be scheduled.
    ReleaseYearLead = 5
    MinDuration     = 1
    MaxDuration     = 240

    MaxProducerNameLength = 200
    MaxCountryLength      = 100
    MinFoundedYear        = 1800
    MaxWebsiteLength      = 200
    MaxBioLength          = 2000

    MinRatingScore        = 1
    MaxRatingScore        = 10
    MaxCommentLength      = 500
    MaxCreatedByLength    = 100
)

// MaxReleaseYear is the latest release year accepted at the given instant.
func MaxReleaseYear(now time.Time) int { return now.Year() + ReleaseYearLead }

// MaxFoundedYear is the latest founding year accepted at the given instant.
func MaxFoundedYear(now time.Time) int { return now.Year() }

// Movie is a persisted movie. ProducerID references a Producer by id only.
type Movie struct {
    ID          string
    Title       string
    Description string
    ReleaseYear int
    Duration    int
    Genre       []string
    ProducerID  string
    CreatedAt   time.Time
    UpdatedAt   time.Time
}

// MoviePatch carries the supplied fields of a partial update; nil means untouched.
type MoviePatch struct {
    Title       *string
    Description *string
    ReleaseYear *int
    Duration    *int
    Genre       []string
    ProducerID  *string
}

// Apply returns a copy of m with the patch applied.
func (p MoviePatch) Apply(m Movie) Movie {
    if p.Title != nil { m.Title = *p.Title }
    if p.Description != nil { m.Description = *p.Description }
    if p.ReleaseYear != nil { m.ReleaseYear = *p.ReleaseYear }
    if p.Duration != nil { m.Duration = *p.Duration }
    if p.Genre != nil { m.Genre = append([]string(nil), p.Genre...) }
    if p.ProducerID != nil { m.ProducerID = *p.ProducerID }
    return m
}

// Producer is a persisted film producer.
type Producer struct {
    ID          string
    Name        string
    Country     string
    FoundedYear *int
    Website     string
    Bio         string
    CreatedAt   time.Time
    UpdatedAt   time.Time
}

// ProducerPatch carries the supplied fields of a partial update.
type ProducerPatch struct {
    Name        *string
    Country     *string
    FoundedYear *int
    Website     *string
    Bio         *string
}

// Apply returns a copy of pr with the patch applied.
func (p ProducerPatch) Apply(pr Producer) Producer {
    if p.Name != nil { pr.Name = *p.Name }
    if p.Country != nil { pr.Country = *p.Country }
    if p.FoundedYear != nil { y := *p.FoundedYear; pr.FoundedYear = &y }
    if p.Website != nil { pr.Website = *p.Website }
    if p.Bio != nil { pr.Bio = *p.Bio }
    return pr
}

// Rating is a single score given to a movie.
type Rating struct {
    ID         string
    MovieID    string
    Score      int
    Comment    string
    RatingDate time.Time
    CreatedBy  string
    CreatedAt  time.Time
}

// Page is an offset/limit window over a sorted listing.
type Page struct {
    Skip  int
    Limit int
}

// Default page window when the caller supplies none.
const (
    DefaultLimit = 10
    MaxLimit     = 100
)

// DefaultPage is the first ten records.
func DefaultPage() Page { return Page{Skip: 0, Limit: DefaultLimit} }

// RatingQuery selects ratings of one movie, newest rating date first.
type RatingQuery struct {
    MovieID string
    Page
}

// AverageRating summarizes the scores of one movie.
type AverageRating struct {
    Average float64 `json:"average"`
    Count   int     `json:"count"`
}
