package admin_stats_get

import (
	"encoding/json"
	"net/http"

	"dorm-delivery/internal/handlers/rest/httperr"
	"dorm-delivery/internal/handlers/rest/presenter"
	"dorm-delivery/internal/handlers/rest/request"
	"dorm-delivery/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	actor, err := request.Actor(r)
	if err != nil {
		httperr.Respond(h.log, w, err, "read current user")
		return
	}

	stats, err := h.service.GetStats(r.Context(), actor)
	if err != nil {
		httperr.Respond(h.log, w, err, "get admin stats")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(presenter.Stats(stats))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
