package v1

import (
    "context"
    "encoding/json"
    "net/http"

    "github.com/tinoosan/moviecatalog/internal/errs"
    "github.com/tinoosan/moviecatalog/internal/schema"
)

type ctxKey string

const ctxKeyBody ctxKey = "validatedBody"
const ctxKeyQuery ctxKey = "validatedQuery"

// validateBody decodes the JSON object body, validates it against sc and
// stores the normalized values in the request context. Failures short-circuit
// with every violation message.
func (s *Server) validateBody(sc schema.Schema) func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            if !requireJSON(w, r) { return }
            var in map[string]any
            dec := json.NewDecoder(r.Body)
            dec.UseNumber()
            if err := dec.Decode(&in); err != nil || in == nil {
                s.writeError(w, r, errs.Invalid("request body must be a JSON object"))
                return
            }
            vals, err := sc.Validate(in, s.now())
            if err != nil { s.writeError(w, r, err); return }
            ctx := context.WithValue(r.Context(), ctxKeyBody, vals)
            next.ServeHTTP(w, r.WithContext(ctx))
        })
    }
}

// validateQuery validates query parameters against sc.
func (s *Server) validateQuery(sc schema.Schema) func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            vals, err := sc.Validate(sc.FromQuery(r.URL.Query()), s.now())
            if err != nil { s.writeError(w, r, err); return }
            ctx := context.WithValue(r.Context(), ctxKeyQuery, vals)
            next.ServeHTTP(w, r.WithContext(ctx))
        })
    }
}

func bodyValues(r *http.Request) schema.Values {
    v, _ := r.Context().Value(ctxKeyBody).(schema.Values)
    return v
}

func queryValues(r *http.Request) schema.Values {
    v, _ := r.Context().Value(ctxKeyQuery).(schema.Values)
    return v
}
