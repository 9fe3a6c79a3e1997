package delivery_status_post

import (
	"encoding/json"
	"net/http"

	"dorm-delivery/internal/handlers/rest/httperr"
	"dorm-delivery/internal/handlers/rest/presenter"
	"dorm-delivery/internal/handlers/rest/request"
	"dorm-delivery/internal/service/delivery"
	"dorm-delivery/pkg/logger"
	"github.com/gorilla/mux"
)

// Handler обслуживает /api/delivery/{id}/{action}: accept, start, mark-delivered, fail, confirm.
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

	action, ok := delivery.ParseAction(mux.Vars(r)["action"])
	if !ok {
		// неизвестное действие выглядит для клиента как несуществующий маршрут
		err = httperr.Write(w, http.StatusNotFound, "Not found")
		if err != nil {
			h.log.With(logger.NewField("error", err)).Error("encode JSON response")
		}
		return
	}

	id, err := request.DeliveryID(r)
	if err != nil {
		httperr.Respond(h.log, w, err, "parse delivery id")
		return
	}

	d, err := h.service.Transition(r.Context(), actor, id, action)
	if err != nil {
		httperr.Respond(h.log, w, err, "transition delivery")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(presenter.Delivery(d))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
