package auth_register_post

import (
	"encoding/json"
	"fmt"
	"net/http"

	"dorm-delivery/internal/entities"
	"dorm-delivery/internal/generated/dto"
	"dorm-delivery/internal/handlers/rest/httperr"
	"dorm-delivery/internal/handlers/rest/presenter"
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
	var req dto.RegisterRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		httperr.Respond(h.log, w, fmt.Errorf("%w: %w", httperr.ErrInvalidBody, err), "decode register request")
		return
	}

	created, err := h.service.Register(r.Context(), entities.UserRegistration{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     entities.Role(req.Role),
	})
	if err != nil {
		httperr.Respond(h.log, w, err, "register user")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(presenter.User(created))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
