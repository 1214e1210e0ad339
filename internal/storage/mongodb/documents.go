package mongodb

import (
    "time"

    "go.mongodb.org/mongo-driver/bson/primitive"

    "github.com/tinoosan/moviecatalog/internal/catalog"
)

type movieDoc struct {
    ID          primitive.ObjectID `bson:"_id"`
    Title       string             `bson:"title"`
    Description string             `bson:"description,omitempty"`
    ReleaseYear int                `bson:"releaseYear"`
    Duration    int                `bson:"duration"`
    Genre       []string           `bson:"genre"`
    ProducerID  primitive.ObjectID `bson:"producerId"`
    CreatedAt   time.Time          `bson:"createdAt"`
    UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d movieDoc) toMovie() catalog.Movie {
    genre := d.Genre
    if genre == nil { genre = []string{} }
    return catalog.Movie{
        ID:          d.ID.Hex(),
        Title:       d.Title,
        Description: d.Description,
        ReleaseYear: d.ReleaseYear,
        Duration:    d.Duration,
        Genre:       genre,
        ProducerID:  d.ProducerID.Hex(),
        CreatedAt:   d.CreatedAt.UTC(),
        UpdatedAt:   d.UpdatedAt.UTC(),
    }
}

type producerDoc struct {
    ID          primitive.ObjectID `bson:"_id"`
    Name        string             `bson:"name"`
    Country     string             `bson:"country,omitempty"`
    FoundedYear *int               `bson:"foundedYear,omitempty"`
    Website     string             `bson:"website,omitempty"`
    Bio         string             `bson:"bio,omitempty"`
    CreatedAt   time.Time          `bson:"createdAt"`
    UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d producerDoc) toProducer() catalog.Producer {
    return catalog.Producer{
        ID:          d.ID.Hex(),
        Name:        d.Name,
        Country:     d.Country,
        FoundedYear: d.FoundedYear,
        Website:     d.Website,
        Bio:         d.Bio,
        CreatedAt:   d.CreatedAt.UTC(),
        UpdatedAt:   d.UpdatedAt.UTC(),
    }
}

type ratingDoc struct {
    ID         primitive.ObjectID `bson:"_id"`
    MovieID    primitive.ObjectID `bson:"movieId"`
    Score      int                `bson:"score"`
    Comment    string             `bson:"comment,omitempty"`
    RatingDate time.Time          `bson:"ratingDate"`
    CreatedBy  string             `bson:"createdBy,omitempty"`
    CreatedAt  time.Time          `bson:"createdAt"`
}

func (d ratingDoc) toRating() catalog.Rating {
    return catalog.Rating{
        ID:         d.ID.Hex(),
        MovieID:    d.MovieID.Hex(),
        Score:      d.Score,
        Comment:    d.Comment,
        RatingDate: d.RatingDate.UTC(),
        CreatedBy:  d.CreatedBy,
        CreatedAt:  d.CreatedAt.UTC(),
    }
}
