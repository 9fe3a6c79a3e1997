package delivery_pay_post

import (
	"encoding/json"
	"net/http"

	"dorm-delivery/internal/generated/dto"
	"dorm-delivery/internal/handlers/rest/httperr"
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

	id, err := request.DeliveryID(r)
	if err != nil {
		httperr.Respond(h.log, w, err, "parse delivery id")
		return
	}

	receipt, err := h.service.PayDelivery(r.Context(), actor, id)
	if err != nil {
		httperr.Respond(h.log, w, err, "pay delivery")
		return
	}

	res := dto.PaymentReceipt{
		Status:           receipt.Status.String(),
		PaymentReference: receipt.PaymentReference,
	}

	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(res)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
