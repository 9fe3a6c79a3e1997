package auth_login_post

import (
	"encoding/json"
	"fmt"
	"net/http"

	"dorm-delivery/internal/generated/dto"
	"dorm-delivery/internal/handlers/rest/httperr"
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
	var req dto.LoginRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		httperr.Respond(h.log, w, fmt.Errorf("%w: %w", httperr.ErrInvalidBody, err), "decode login request")
		return
	}

	token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httperr.Respond(h.log, w, err, "login")
		return
	}

	res := dto.TokenResponse{
		AccessToken: token.Token,
		TokenType:   token.TokenType,
	}

	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(res)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
