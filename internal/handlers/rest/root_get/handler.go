package root_get

import (
	"encoding/json"
	"net/http"

	"dorm-delivery/internal/generated/dto"
	"dorm-delivery/pkg/logger"
)

const aliveMessage = "Dorm Delivery Backend is alive"

type Handler struct {
	log handlerLogger
}

func New(log handlerLogger) *Handler {
	handlerLog := log.With()

	return &Handler{
		log: handlerLog,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	res := dto.RootResponse{
		Msg: aliveMessage,
	}

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(res)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
