package mongodb

import (
	"github.com/tinoosan/moviecatalog/internal/service/movie"
	"github.com/tinoosan/moviecatalog/internal/service/producer"
	"github.com/tinoosan/moviecatalog/internal/service/rating"
)

var (
	_ producer.Repo   = (*Store)(nil)
	_ producer.Writer = (*Store)(nil)
	_ movie.Repo      = (*Store)(nil)
	_ movie.Writer    = (*Store)(nil)
	_ rating.Repo     = (*Store)(nil)
	_ rating.Writer   = (*Store)(nil)
)
