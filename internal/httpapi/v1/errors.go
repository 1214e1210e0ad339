package v1

import (
    "errors"
    "net/http"

    chimw "github.com/go-chi/chi/v5/middleware"

    "github.com/tinoosan/moviecatalog/internal/errs"
)

// errorResponse is the standard error payload for the API.
type errorResponse struct {
    Errors []string `json:"errors"`
}

func writeErr(w http.ResponseWriter, status int, msgs ...string) {
    toJSON(w, status, errorResponse{Errors: msgs})
}

// writeError is the single translation point from service errors to HTTP:
// validation failures are 400, missing records 404, anything else 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
    var ve *errs.ValidationError
    var nf *errs.NotFoundError
    switch {
    case errors.As(err, &ve) && len(ve.Messages) > 0:
        writeErr(w, http.StatusBadRequest, ve.Messages...)
    case errors.As(err, &nf):
        writeErr(w, http.StatusNotFound, nf.Message)
    case errors.Is(err, errs.ErrInvalid):
        writeErr(w, http.StatusBadRequest, "Validation failed")
    case errors.Is(err, errs.ErrNotFound):
        writeErr(w, http.StatusNotFound, "Resource not found")
    default:
        s.log.Error("request failed", "req_id", chimw.GetReqID(r.Context()), "method", r.Method, "path", r.URL.Path, "err", err)
        writeErr(w, http.StatusInternalServerError, "Internal server error")
    }
}
