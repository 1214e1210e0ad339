package mongodb

import (
    "context"
    "errors"
    "fmt"

    "go.mongodb.org/mongo-driver/bson"
    "go.mongodb.org/mongo-driver/mongo"
    "go.mongodb.org/mongo-driver/mongo/options"

    "github.com/tinoosan/moviecatalog/internal/catalog"
)

// codeNamespaceNotFound is the server error for a missing collection.
const codeNamespaceNotFound = 26

var intTypes = bson.A{"int", "long"}

func str(maxLen int) bson.M { return bson.M{"bsonType": "string", "maxLength": maxLen} }

func integer(lo, hi int) bson.M {
    m := bson.M{"bsonType": intTypes, "minimum": lo}
    if hi > 0 { m["maximum"] = hi }
    return m
}

// Year upper bounds move with the clock and are left to request validation.
var (
    movieSchema = bson.M{
        "bsonType": "object",
        "required": bson.A{"title", "releaseYear", "duration", "genre", "producerId", "createdAt", "updatedAt"},
        "properties": bson.M{
            "title":       bson.M{"bsonType": "string", "minLength": catalog.MinTitleLength, "maxLength": catalog.MaxTitleLength},
            "description": str(catalog.MaxUpdatedDescriptionLength),
            "releaseYear": integer(catalog.MinReleaseYear, 0),
            "duration":    integer(catalog.MinDuration, catalog.MaxDuration),
            "genre":       bson.M{"bsonType": "array", "items": bson.M{"bsonType": "string"}},
            "producerId":  bson.M{"bsonType": "objectId"},
            "createdAt":   bson.M{"bsonType": "date"},
            "updatedAt":   bson.M{"bsonType": "date"},
        },
    }
    producerSchema = bson.M{
        "bsonType": "object",
        "required": bson.A{"name", "createdAt", "updatedAt"},
        "properties": bson.M{
            "name":        bson.M{"bsonType": "string", "minLength": 1, "maxLength": catalog.MaxProducerNameLength},
            "country":     str(catalog.MaxCountryLength),
            "foundedYear": integer(catalog.MinFoundedYear, 0),
            "website":     bson.M{"bsonType": "string", "maxLength": catalog.MaxWebsiteLength, "pattern": "^https?://.+"},
            "bio":         str(catalog.MaxBioLength),
            "createdAt":   bson.M{"bsonType": "date"},
            "updatedAt":   bson.M{"bsonType": "date"},
        },
    }
    ratingSchema = bson.M{
        "bsonType": "object",
        "required": bson.A{"movieId", "score", "ratingDate", "createdAt"},
        "properties": bson.M{
            "movieId":    bson.M{"bsonType": "objectId"},
            "score":      integer(catalog.MinRatingScore, catalog.MaxRatingScore),
            "comment":    str(catalog.MaxCommentLength),
            "ratingDate": bson.M{"bsonType": "date"},
            "createdBy":  str(catalog.MaxCreatedByLength),
            "createdAt":  bson.M{"bsonType": "date"},
        },
    }
)

// ensureValidators attaches a $jsonSchema validator to every collection,
// creating collections that do not exist yet. Rejected writes surface as the
// driver's own WriteException.
func (s *Store) ensureValidators(ctx context.Context) error {
    for name, schema := range map[string]bson.M{
        moviesCollection:    movieSchema,
        producersCollection: producerSchema,
        ratingsCollection:   ratingSchema,
    } {
        validator := bson.M{"$jsonSchema": schema}
        err := s.db.RunCommand(ctx, bson.D{{Key: "collMod", Value: name}, {Key: "validator", Value: validator}}).Err()
        var ce mongo.CommandError
        if errors.As(err, &ce) && ce.HasErrorCode(codeNamespaceNotFound) {
            err = s.db.CreateCollection(ctx, name, options.CreateCollection().SetValidator(validator))
        }
        if err != nil { return fmt.Errorf("validator on %s: %w", name, err) }
    }
    return nil
}
