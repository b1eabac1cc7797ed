package service

import (
	"context"
	"net/http"

	"github.com/rs/cors"
)

// HealthzServer answers liveness probes. It reports unhealthy once the
// campaign has stopped making progress, so a supervisor restarts the run
// instead of scraping a wedged process forever.
type HealthzServer struct {
	status StatusFunc
	server *http.Server
}

func (h *HealthzServer) Start(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", h.handle)
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
	})
	h.server = &http.Server{
		Handler: c.Handler(mux),
		Addr:    addr,
	}
	return h.server.ListenAndServe()
}

func (h *HealthzServer) Shutdown(ctx context.Context) error {
	if h.server == nil {
		return nil
	}
	return h.server.Shutdown(ctx)
}

func (h *HealthzServer) handle(w http.ResponseWriter, r *http.Request) {
	if h.status != nil && !h.status() {
		http.Error(w, "campaign stalled", http.StatusServiceUnavailable)
		return
	}
	w.Write([]byte("OK")) //nolint:errcheck
}
