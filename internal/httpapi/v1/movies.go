package v1

import (
    "net/http"

    chi "github.com/go-chi/chi/v5"
)

func (s *Server) postMovie(w http.ResponseWriter, r *http.Request) {
    id, err := s.movies.Create(r.Context(), toMovie(bodyValues(r)))
    if err != nil { s.writeError(w, r, err); return }
    toJSON(w, http.StatusCreated, idResponse{ID: id})
}

func (s *Server) getMovie(w http.ResponseWriter, r *http.Request) {
    m, err := s.movies.Get(r.Context(), chi.URLParam(r, "id"))
    if err != nil { s.writeError(w, r, err); return }
    toJSON(w, http.StatusOK, m)
}

func (s *Server) listMovies(w http.ResponseWriter, r *http.Request) {
    ms, err := s.movies.List(r.Context(), queryValues(r).Page("skip", "limit"))
    if err != nil { s.writeError(w, r, err); return }
    toJSON(w, http.StatusOK, ms)
}

func (s *Server) patchMovie(w http.ResponseWriter, r *http.Request) {
    if err := s.movies.Update(r.Context(), chi.URLParam(r, "id"), toMoviePatch(bodyValues(r))); err != nil {
        s.writeError(w, r, err)
        return
    }
    w.WriteHeader(http.StatusOK)
}

func (s *Server) deleteMovie(w http.ResponseWriter, r *http.Request) {
    if err := s.movies.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
        s.writeError(w, r, err)
        return
    }
    w.WriteHeader(http.StatusNoContent)
}
