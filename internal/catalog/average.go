package catalog

import (
	"fmt"

	"github.com/govalues/decimal"
)

// NewAverageRating computes the mean score rounded half-to-even to 2 decimal
// digits, matching the document store's $round. Zero ratings yield {0, 0}.
func NewAverageRating(sum, count int64) (AverageRating, error) {
	if count == 0 {
		return AverageRating{}, nil
	}
	s, err := decimal.New(sum, 0)
	if err != nil {
		return AverageRating{}, fmt.Errorf("average: %w", err)
	}
	c, err := decimal.New(count, 0)
	if err != nil {
		return AverageRating{}, fmt.Errorf("average: %w", err)
	}
	q, err := s.Quo(c)
	if err != nil {
		return AverageRating{}, fmt.Errorf("average: %w", err)
	}
	avg, ok := q.Round(2).Float64()
	if !ok {
		return AverageRating{}, fmt.Errorf("average: %s out of float range", q)
	}
	return AverageRating{Average: avg, Count: int(count)}, nil
}
