package v1

import (
    "github.com/tinoosan/moviecatalog/internal/catalog"
    "github.com/tinoosan/moviecatalog/internal/schema"
)

// idResponse is returned by every create endpoint.
type idResponse struct {
    ID string `json:"id"`
}

func optString(v schema.Values, name string) *string {
    if s, ok := v.String(name); ok { return &s }
    return nil
}

func optInt(v schema.Values, name string) *int {
    if n, ok := v.Int(name); ok { return &n }
    return nil
}

func toMovie(v schema.Values) catalog.Movie {
    title, _ := v.String("title")
    desc, _ := v.String("description")
    genre, ok := v.Strings("genre")
    if !ok { genre = []string{} }
    pid, _ := v.String("producerId")
    return catalog.Movie{
        Title:       title,
        Description: desc,
        ReleaseYear: v.IntOr("releaseYear", 0),
        Duration:    v.IntOr("duration", 0),
        Genre:       genre,
        ProducerID:  pid,
    }
}

func toMoviePatch(v schema.Values) catalog.MoviePatch {
    genre, _ := v.Strings("genre")
    return catalog.MoviePatch{
        Title:       optString(v, "title"),
        Description: optString(v, "description"),
        ReleaseYear: optInt(v, "releaseYear"),
        Duration:    optInt(v, "duration"),
        Genre:       genre,
        ProducerID:  optString(v, "producerId"),
    }
}

func toProducer(v schema.Values) catalog.Producer {
    name, _ := v.String("name")
    country, _ := v.String("country")
    website, _ := v.String("website")
    bio, _ := v.String("bio")
    return catalog.Producer{Name: name, Country: country, FoundedYear: optInt(v, "foundedYear"), Website: website, Bio: bio}
}

func toProducerPatch(v schema.Values) catalog.ProducerPatch {
    return catalog.ProducerPatch{
        Name:        optString(v, "name"),
        Country:     optString(v, "country"),
        FoundedYear: optInt(v, "foundedYear"),
        Website:     optString(v, "website"),
        Bio:         optString(v, "bio"),
    }
}

// toRating leaves RatingDate zero when absent; the service fills it in.
func toRating(v schema.Values) catalog.Rating {
    movieID, _ := v.String("movieId")
    comment, _ := v.String("comment")
    by, _ := v.String("createdBy")
    date, _ := v.Time("ratingDate")
    return catalog.Rating{MovieID: movieID, Score: v.IntOr("score", 0), Comment: comment, RatingDate: date, CreatedBy: by}
}

func toRatingQuery(v schema.Values) catalog.RatingQuery {
    movieID, _ := v.String("movieId")
    return catalog.RatingQuery{MovieID: movieID, Page: v.Page("from", "size")}
}
