package endpoints

import (
	"bytes"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/vidzel/vidzel/pkg/server"
	"github.com/vidzel/vidzel/pkg/server/store"
)

// StatusResponse represents the response from /
type StatusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// HealthResponse represents the response from /health
type HealthResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

var statusTemplate = template.Must(template.New("status").Parse(`<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width">
    <title>Vidzel Status</title>
  </head>
  <body>
    <main>
      <h1>Status</h1>
      <p class="status-text">Your Vidzel server is running!</p>
      <dl>
        <dt>Details:</dt>
        <dd>Version {{.Version}}</dd>
      </dl>
    </main>
  </body>
</html>
`))

// RegisterStatusEndpoints registers the status, health and metrics endpoints
func RegisterStatusEndpoints(s *server.Server) {
	// GET / - Status page (no auth required)
	s.Router.HandleFunc("/", handleStatus(s.Version)).Methods("GET")

	// GET /health - Database connectivity (no auth required)
	s.Router.HandleFunc("/health", handleHealth(s.Stores.Health, s.Logger)).Methods("GET")

	if s.Config.MetricsEnabled {
		s.Router.Handle("/metrics", s.Metrics.Handler()).Methods("GET")
	}
}

func handleStatus(version string) http.HandlerFunc {
	if version == "" {
		version = "dev"
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if !acceptsHTML(r) && r.URL.Query().Get("format") != "html" {
			respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok", Version: version})
			return
		}

		var buf bytes.Buffer
		_ = statusTemplate.Execute(&buf, StatusResponse{Status: "ok", Version: version})
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = buf.WriteTo(w)
	}
}

func handleHealth(healthStore store.HealthStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := healthStore.CheckConnectivity(r.Context()); err != nil {
			logger.Warn("health check failed", zap.Error(err))
			respondWithJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status: "error",
				Error:  "database connectivity check failed",
			})
			return
		}
		respondWithJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}
