package v1

import (
    "net/http"

    chi "github.com/go-chi/chi/v5"
)

func (s *Server) postProducer(w http.ResponseWriter, r *http.Request) {
    id, err := s.producers.Create(r.Context(), toProducer(bodyValues(r)))
    if err != nil { s.writeError(w, r, err); return }
    toJSON(w, http.StatusCreated, idResponse{ID: id})
}

func (s *Server) getProducer(w http.ResponseWriter, r *http.Request) {
    p, err := s.producers.Get(r.Context(), chi.URLParam(r, "id"))
    if err != nil { s.writeError(w, r, err); return }
    toJSON(w, http.StatusOK, p)
}

func (s *Server) getProducerInfo(w http.ResponseWriter, r *http.Request) {
    info, err := s.producers.GetInfo(r.Context(), chi.URLParam(r, "id"))
    if err != nil { s.writeError(w, r, err); return }
    toJSON(w, http.StatusOK, info)
}

func (s *Server) listProducers(w http.ResponseWriter, r *http.Request) {
    ps, err := s.producers.List(r.Context(), queryValues(r).Page("skip", "limit"))
    if err != nil { s.writeError(w, r, err); return }
    toJSON(w, http.StatusOK, ps)
}

func (s *Server) patchProducer(w http.ResponseWriter, r *http.Request) {
    if err := s.producers.Update(r.Context(), chi.URLParam(r, "id"), toProducerPatch(bodyValues(r))); err != nil {
        s.writeError(w, r, err)
        return
    }
    w.WriteHeader(http.StatusOK)
}

// deleteProducer refuses producers that still have movies (400).
func (s *Server) deleteProducer(w http.ResponseWriter, r *http.Request) {
    if err := s.producers.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
        s.writeError(w, r, err)
        return
    }
    w.WriteHeader(http.StatusNoContent)
}
