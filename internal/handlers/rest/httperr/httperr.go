// Package httperr переводит доменные ошибки в HTTP статус и тело {"detail": "..."}.
package httperr

import (
	"encoding/json"
	"errors"
	"net/http"

	"dorm-delivery/internal/generated/dto"
	"dorm-delivery/internal/service/admin"
	"dorm-delivery/internal/service/delivery"
	"dorm-delivery/internal/service/user"
	"dorm-delivery/pkg/logger"
)

const internalDetail = "Internal server error"

var (
	ErrInvalidBody      = errors.New("invalid request body")
	ErrInvalidPathParam = errors.New("invalid path parameter")
)

type rule struct {
	target error
	status int
	// detail пустой - берется err.Error() целевой ошибки
	detail string
}

// rules проверяются по порядку: сначала частные ошибки, потом их обертки.
var rules = []rule{
	{target: ErrInvalidBody, status: http.StatusBadRequest, detail: "Invalid request body"},
	{target: ErrInvalidPathParam, status: http.StatusBadRequest, detail: "Invalid path parameter"},

	{target: user.ErrEmailTaken, status: http.StatusBadRequest, detail: "Email already registered"},
	{target: user.ErrInvalidCredentials, status: http.StatusUnauthorized, detail: "Invalid credentials"},
	{target: user.ErrUnauthorized, status: http.StatusUnauthorized, detail: "Could not validate credentials"},
	{target: user.ErrInvalidUsername, status: http.StatusBadRequest},
	{target: user.ErrInvalidEmail, status: http.StatusBadRequest},
	{target: user.ErrInvalidPassword, status: http.StatusBadRequest},
	{target: user.ErrInvalidRole, status: http.StatusBadRequest},
	{target: user.ErrUserNotFound, status: http.StatusNotFound, detail: "Not found"},

	{target: delivery.ErrCustomersOnly, status: http.StatusForbidden, detail: "Only customers can create delivery requests"},
	{target: delivery.ErrDeliveryOnly, status: http.StatusForbidden, detail: "Only delivery users can view available tasks"},
	{target: delivery.ErrAcceptOnly, status: http.StatusForbidden, detail: "Only delivery users can accept tasks"},
	{target: delivery.ErrNotAssignee, status: http.StatusForbidden, detail: "Not assigned to you"},
	{target: delivery.ErrNotOwner, status: http.StatusForbidden, detail: "Not your delivery"},
	{target: delivery.ErrForbidden, status: http.StatusForbidden, detail: "Forbidden"},
	{target: delivery.ErrTaskNotAvailable, status: http.StatusBadRequest, detail: "Task not available"},
	{target: delivery.ErrNotDelivered, status: http.StatusBadRequest, detail: "Delivery not yet marked delivered"},
	{target: delivery.ErrReleaseTooEarly, status: http.StatusBadRequest, detail: "Driver hasn't marked delivered yet"},
	{target: delivery.ErrInvalidTransition, status: http.StatusBadRequest, detail: "Invalid status transition"},
	{target: delivery.ErrAlreadyPaid, status: http.StatusBadRequest, detail: "Already paid"},
	{target: delivery.ErrNoHeldFunds, status: http.StatusBadRequest, detail: "No held funds"},
	{target: delivery.ErrInvalidTitle, status: http.StatusBadRequest},
	{target: delivery.ErrInvalidAmount, status: http.StatusBadRequest},
	{target: delivery.ErrInvalidParcelType, status: http.StatusBadRequest},
	{target: delivery.ErrDeliveryNotFound, status: http.StatusNotFound, detail: "Not found"},
	{target: delivery.ErrCustomerNotFound, status: http.StatusNotFound, detail: "Not found"},

	{target: admin.ErrForbidden, status: http.StatusForbidden, detail: "Not authorized"},
}

// FromError возвращает статус и detail. Неизвестные ошибки - 500 без подробностей.
func FromError(err error) (int, string) {
	for _, r := range rules {
		if errors.Is(err, r.target) {
			if r.detail == "" {
				return r.status, r.target.Error()
			}
			return r.status, r.detail
		}
	}
	return http.StatusInternalServerError, internalDetail
}

// Write пишет ответ об ошибке и возвращает ошибку кодирования тела, если она была.
func Write(w http.ResponseWriter, status int, detail string) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(dto.ErrorResponse{Detail: detail})
}

// WriteError - FromError + Write. Возвращает выбранный статус.
func WriteError(w http.ResponseWriter, err error) (int, error) {
	status, detail := FromError(err)
	return status, Write(w, status, detail)
}

type errorLogger interface {
	With(fields ...logger.Field) logger.Logger
}

// Respond отвечает ошибкой. В лог попадают только 5xx: остальное - штатные ответы клиенту.
func Respond(log errorLogger, w http.ResponseWriter, err error, op string) {
	status, writeErr := WriteError(w, err)
	if status >= http.StatusInternalServerError {
		log.With(logger.NewField("error", err)).Error(op)
	}
	if writeErr != nil {
		log.With(logger.NewField("error", writeErr)).Error("encode JSON response")
	}
}
