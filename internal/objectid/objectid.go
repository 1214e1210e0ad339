// Package objectid validates and generates entity identifiers in the
// document store's native shape: 24 lowercase hex characters.
package objectid

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var reObjectID = regexp.MustCompile(`^[0-9a-f]{24}$`)

// IsValid returns true if s matches ^[0-9a-f]{24}$
func IsValid(s string) bool {
	return reObjectID.MatchString(s)
}

// New returns a fresh identifier. Identifiers generated by one process sort
// in creation order.
func New() string {
	return primitive.NewObjectID().Hex()
}

// Invalid returns the ids from the list that are not well-formed, in order.
func Invalid(ids []string) []string {
	var out []string
	for _, id := range ids {
		if !IsValid(id) {
			out = append(out, id)
		}
	}
	return out
}
