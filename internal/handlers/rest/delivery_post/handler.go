package delivery_post

import (
	"encoding/json"
	"fmt"
	"net/http"

	"dorm-delivery/internal/entities"
	"dorm-delivery/internal/generated/dto"
	"dorm-delivery/internal/handlers/rest/httperr"
	"dorm-delivery/internal/handlers/rest/presenter"
	"dorm-delivery/internal/handlers/rest/request"
	"dorm-delivery/pkg/logger"
	"github.com/AlekSi/pointer"
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

	var req dto.DeliveryCreate
	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		httperr.Respond(h.log, w, fmt.Errorf("%w: %w", httperr.ErrInvalidBody, err), "decode delivery request")
		return
	}

	created, err := h.service.CreateDelivery(r.Context(), actor, toCreate(req))
	if err != nil {
		httperr.Respond(h.log, w, err, "create delivery")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(presenter.Delivery(created))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

// toCreate: parcel_type главнее устаревшего task_type, отсутствующая сумма - 0.
func toCreate(req dto.DeliveryCreate) entities.DeliveryCreate {
	create := entities.DeliveryCreate{
		Title:           req.Title,
		Description:     pointer.Get(req.Description),
		PickupLocation:  pointer.Get(req.PickupLocation),
		DropoffLocation: pointer.Get(req.DropoffLocation),
		Amount:          pointer.Get(req.Amount),
	}

	switch {
	case req.ParcelType != nil:
		create.ParcelType = entities.ParcelType(*req.ParcelType)
	case req.TaskType != nil:
		create.ParcelType = entities.ParcelType(*req.TaskType)
	}

	return create
}
