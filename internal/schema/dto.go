package schema

import (
	"regexp"

	"github.com/tinoosan/moviecatalog/internal/catalog"
)

var reWebsite = regexp.MustCompile(`^https?://.+`)

var (
	maxReleaseYear Bound = catalog.MaxReleaseYear
	maxFoundedYear Bound = catalog.MaxFoundedYear
)

func movieFields(create bool) []Field {
	title := Field{Name: "title", Required: true, Type: String, Trim: true, Constraints: []Constraint{
		NotEmpty(), MinLength(catalog.MinTitleLength), MaxLength(catalog.MaxTitleLength),
	}}
	description := Field{Name: "description", Type: String, Constraints: []Constraint{
		MaxLength(catalog.MaxDescriptionLength),
	}}
	producer := Field{Name: "producerId", Required: true, Type: String, Constraints: []Constraint{NotEmpty()}}
	if !create {
		title = Field{Name: "title", Type: String, Trim: true, Constraints: []Constraint{MinLength(catalog.MinTitleLength), MaxLength(catalog.MaxUpdatedTitleLength)}}
		description = Field{Name: "description", Type: String, Constraints: []Constraint{MaxLength(catalog.MaxUpdatedDescriptionLength)}}
		producer = Field{Name: "producerId", Type: String, Constraints: []Constraint{MinLength(1)}}
	}
	return []Field{
		title,
		description,
		{Name: "releaseYear", Required: create, Type: Int, Constraints: []Constraint{
			Min(Fixed(catalog.MinReleaseYear)), Max(maxReleaseYear),
		}},
		{Name: "duration", Required: create, Type: Int, Constraints: []Constraint{
			Min(Fixed(catalog.MinDuration)), Max(Fixed(catalog.MaxDuration)),
		}},
		{Name: "genre", Type: StringArray, Constraints: []Constraint{ArrayNotEmpty(), EachString()}},
		producer,
	}
}

func producerFields(create bool) []Field {
	return []Field{
		{Name: "name", Required: create, Type: String, Trim: true, Constraints: []Constraint{
			NotEmpty(), MinLength(1), MaxLength(catalog.MaxProducerNameLength),
		}},
		{Name: "country", Type: String, Constraints: []Constraint{MaxLength(catalog.MaxCountryLength)}},
		{Name: "foundedYear", Type: Int, Constraints: []Constraint{
			Min(Fixed(catalog.MinFoundedYear)), Max(maxFoundedYear),
		}},
		{Name: "website", Type: String, Constraints: []Constraint{
			MaxLength(catalog.MaxWebsiteLength), Matches(reWebsite, "Website must be a valid URL"),
		}},
		{Name: "bio", Type: String, Constraints: []Constraint{MaxLength(catalog.MaxBioLength)}},
	}
}

// Request body and query tables.
var (
	MovieCreate    = Schema{Name: "MovieCreate", Fields: movieFields(true)}
	MovieUpdate    = Schema{Name: "MovieUpdate", Fields: movieFields(false)}
	ProducerCreate = Schema{Name: "ProducerCreate", Fields: producerFields(true)}
	ProducerUpdate = Schema{Name: "ProducerUpdate", Fields: producerFields(false)}

	RatingCreate = Schema{Name: "RatingCreate", Fields: []Field{
		{Name: "movieId", Required: true, Type: String, Constraints: []Constraint{NotEmpty()}},
		{Name: "score", Required: true, Type: Int, Constraints: []Constraint{
			Min(Fixed(catalog.MinRatingScore)), Max(Fixed(catalog.MaxRatingScore)),
		}},
		{Name: "comment", Type: String, Constraints: []Constraint{MaxLength(catalog.MaxCommentLength)}},
		{Name: "ratingDate", Type: Date},
		{Name: "createdBy", Type: String, Constraints: []Constraint{MaxLength(catalog.MaxCreatedByLength)}},
	}}

	RatingCounts = Schema{Name: "RatingCounts", Fields: []Field{
		{Name: "movieIds", Required: true, Type: StringArray, Constraints: []Constraint{ArrayNotEmpty(), EachString()}},
	}}

	// RatingQuery leaves the movie id format to the rating service.
	RatingQuery = Schema{Name: "RatingQuery", Fields: append([]Field{
		{Name: "movieId", Type: String},
	}, pageFields("from", "size")...)}

	ListQuery = Schema{Name: "ListQuery", Fields: pageFields("skip", "limit")}
)

// pageFields never fail a request: unusable values fall back to the default window.
func pageFields(skip, limit string) []Field {
	return []Field{
		{Name: skip, Type: Int, Lenient: true, Constraints: []Constraint{Min(Fixed(0))}},
		{Name: limit, Type: Int, Lenient: true, Constraints: []Constraint{Min(Fixed(1))}},
	}
}

// Page reads an offset/limit window using the given parameter names. Missing
// values take the default window and limit is capped at catalog.MaxLimit.
func (v Values) Page(skip, limit string) catalog.Page {
	p := catalog.DefaultPage()
	if n, ok := v.Int(skip); ok {
		p.Skip = n
	}
	if n, ok := v.Int(limit); ok {
		p.Limit = min(n, catalog.MaxLimit)
	}
	return p
}
