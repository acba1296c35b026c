package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/itchan-dev/kvboard/backend/internal/service"
	"github.com/itchan-dev/kvboard/shared/config"
	"github.com/itchan-dev/kvboard/shared/utils"
)

// AllowedMethods is what /api/threads and /api/replies answer to.
var AllowedMethods = []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}

// OperationalMethods is what /health, /ready and /metrics answer to.
var OperationalMethods = []string{http.MethodGet}

type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	thread service.ThreadService
	reply  service.ReplyService
	health HealthChecker
	cfg    *config.Config
}

func New(thread service.ThreadService, reply service.ReplyService, health HealthChecker, cfg *config.Config) *Handler {
	return &Handler{thread: thread, reply: reply, health: health, cfg: cfg}
}

// Options answers plain OPTIONS requests; browser preflights are handled by the CORS middleware.
func (h *Handler) Options(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// MethodNotAllowed answers 405 and lists allowed in the Allow header.
func MethodNotAllowed(allowed []string) http.HandlerFunc {
	allow := strings.Join(allowed, ", ")
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", allow)
		utils.WriteError(w, http.StatusMethodNotAllowed, fmt.Sprintf("Method %s Not Allowed", r.Method))
	}
}
