package rates

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cotacao-api/cotacao/internal/shared"
)

// Handler serves the token-gated quote endpoint.
type Handler struct {
	logger  *slog.Logger
	fetcher Fetcher
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, fetcher Fetcher) *Handler {
	return &Handler{logger: logger, fetcher: fetcher}
}

// MountRoutes registers quote routes. The caller mounts these behind the
// bearer-token middleware.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/consultar", h.handleConsultar)
}

func (h *Handler) handleConsultar(w http.ResponseWriter, r *http.Request) {
	value, err := h.fetcher.Dolar(r.Context())
	if err != nil {
		h.logger.Error("dollar quote fetch failed", slog.Any("error", err))
		shared.WriteError(w, http.StatusInternalServerError, shared.ErrUpstreamFetch)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]string{"Dolar agora": value})
}
