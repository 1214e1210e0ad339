package v1

import (
    "net/http"

    chi "github.com/go-chi/chi/v5"
)

func (s *Server) postRating(w http.ResponseWriter, r *http.Request) {
    id, err := s.ratings.Create(r.Context(), toRating(bodyValues(r)))
    if err != nil { s.writeError(w, r, err); return }
    toJSON(w, http.StatusCreated, idResponse{ID: id})
}

func (s *Server) listRatings(w http.ResponseWriter, r *http.Request) {
    rs, err := s.ratings.FindByMovie(r.Context(), toRatingQuery(queryValues(r)))
    if err != nil { s.writeError(w, r, err); return }
    toJSON(w, http.StatusOK, rs)
}

func (s *Server) countRatings(w http.ResponseWriter, r *http.Request) {
    ids, _ := bodyValues(r).Strings("movieIds")
    counts, err := s.ratings.CountByMovies(r.Context(), ids)
    if err != nil { s.writeError(w, r, err); return }
    toJSON(w, http.StatusOK, counts)
}

func (s *Server) averageRating(w http.ResponseWriter, r *http.Request) {
    avg, err := s.ratings.Average(r.Context(), chi.URLParam(r, "movieId"))
    if err != nil { s.writeError(w, r, err); return }
    toJSON(w, http.StatusOK, avg)
}
