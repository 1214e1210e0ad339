package catalog

import (
	"testing"
	"time"
)

func TestNewAverageRating(t *testing.T) {
	cases := []struct {
		name  string
		sum   int64
		count int64
		want  AverageRating
	}{
		{"none", 0, 0, AverageRating{Average: 0, Count: 0}},
		{"8,9,7", 24, 3, AverageRating{Average: 8, Count: 3}},
		{"8,9,9", 26, 3, AverageRating{Average: 8.67, Count: 3}},
		{"single", 10, 1, AverageRating{Average: 10, Count: 1}},
		{"7,8", 15, 2, AverageRating{Average: 7.5, Count: 2}},
		{"1,1,2", 4, 3, AverageRating{Average: 1.33, Count: 3}},
	}
	for _, c := range cases {
		got, err := NewAverageRating(c.sum, c.count)
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if got != c.want {
			t.Fatalf("%s: got %+v, want %+v", c.name, got, c.want)
		}
	}
}

func TestMoviePatchApplyIsPartial(t *testing.T) {
	m := Movie{ID: "a", Title: "Old", ReleaseYear: 2000, Duration: 100, Genre: []string{"drama"}, ProducerID: "p"}
	title := "New"
	got := MoviePatch{Title: &title}.Apply(m)
	if got.Title != "New" || got.ReleaseYear != 2000 || got.Duration != 100 || got.ProducerID != "p" || len(got.Genre) != 1 {
		t.Fatalf("unexpected: %+v", got)
	}
	if m.Title != "Old" {
		t.Fatalf("apply must not mutate input")
	}
}

func TestProducerPatchApply(t *testing.T) {
	y := 1999
	p := Producer{Name: "A", Country: "US"}
	got := ProducerPatch{FoundedYear: &y}.Apply(p)
	if got.FoundedYear == nil || *got.FoundedYear != 1999 || got.Name != "A" || got.Country != "US" {
		t.Fatalf("unexpected: %+v", got)
	}
	y = 2005
	if *got.FoundedYear != 1999 {
		t.Fatalf("apply must copy the year")
	}
}

func TestYearBounds(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	if MaxReleaseYear(now) != 2031 {
		t.Fatalf("release max: %d", MaxReleaseYear(now))
	}
	if MaxFoundedYear(now) != 2026 {
		t.Fatalf("founded max: %d", MaxFoundedYear(now))
	}
}
