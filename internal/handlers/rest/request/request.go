// Package request достает из запроса то, что нужно почти каждому защищенному handler'у.
package request

import (
	"fmt"
	"net/http"
	"strconv"

	"dorm-delivery/internal/entities"
	"dorm-delivery/internal/handlers/rest/httperr"
	"dorm-delivery/internal/pkg/middlewares/auth"
	"dorm-delivery/internal/service/user"
	"github.com/gorilla/mux"
)

// Actor - пользователь, положенный в контекст auth middleware.
func Actor(r *http.Request) (*entities.User, error) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok {
		return nil, user.ErrUnauthorized
	}
	return u, nil
}

func DeliveryID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id %q", httperr.ErrInvalidPathParam, raw)
	}
	return id, nil
}
