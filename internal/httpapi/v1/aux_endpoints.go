package v1

import (
    "context"
    "net/http"
    "time"
)

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

func (s *Server) readyz(w http.ResponseWriter, r *http.Request) {
    // Stores implementing ReadyChecker are checked with a short timeout
    ctx, cancel := context.WithTimeout(r.Context(), 800*time.Millisecond)
    defer cancel()
    seen := make(map[ReadyChecker]bool, len(s.stores))
    for _, st := range s.stores {
        rc, ok := st.(ReadyChecker)
        if !ok || seen[rc] { continue }
        seen[rc] = true
        if err := rc.Ready(ctx); err != nil {
            s.log.Warn("store not ready", "err", err)
            w.WriteHeader(http.StatusServiceUnavailable)
            return
        }
    }
    w.WriteHeader(http.StatusOK)
}

// openapiSpec serves the local OpenAPI file.
func (s *Server) openapiSpec(w http.ResponseWriter, r *http.Request) {
    w.Header().Set("Content-Type", "application/yaml")
    http.ServeFile(w, r, "openapi/openapi.yaml")
}
