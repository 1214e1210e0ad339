package v1

import (
    "context"
    "net/http"

    chimw "github.com/go-chi/chi/v5/middleware"
    "github.com/google/uuid"
)

// requestID reuses an incoming X-Request-Id or mints a UUID, echoes it on the
// response and stores it where chimw.GetReqID finds it.
func requestID(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        id := r.Header.Get(chimw.RequestIDHeader)
        if id == "" { id = uuid.NewString() }
        w.Header().Set(chimw.RequestIDHeader, id)
        ctx := context.WithValue(r.Context(), chimw.RequestIDKey, id)
        next.ServeHTTP(w, r.WithContext(ctx))
    })
}
