package auth

import (
	"context"
	"net/http"
	"strings"

	"dorm-delivery/internal/entities"
	"dorm-delivery/internal/handlers/rest/httperr"
	"dorm-delivery/pkg/logger"
)

type ctxKey struct{}

const bearerPrefix = "bearer "

// Middleware пропускает дальше только запросы с валидным bearer токеном
// и кладет пользователя в контекст.
func Middleware(log handlerLogger, authenticator Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				w.Header().Set("WWW-Authenticate", "Bearer")
				if err := httperr.Write(w, http.StatusUnauthorized, "Not authenticated"); err != nil {
					log.With(logger.NewField("error", err)).Error("encode JSON response")
				}
				return
			}

			u, err := authenticator.Authenticate(r.Context(), raw)
			if err != nil {
				w.Header().Set("WWW-Authenticate", "Bearer")
				status, writeErr := httperr.WriteError(w, err)
				if status >= http.StatusInternalServerError {
					log.With(logger.NewField("error", err)).Error("authenticate request")
				}
				if writeErr != nil {
					log.With(logger.NewField("error", writeErr)).Error("encode JSON response")
				}
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		})
	}
}

func WithUser(ctx context.Context, u *entities.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

func UserFromContext(ctx context.Context) (*entities.User, bool) {
	u, ok := ctx.Value(ctxKey{}).(*entities.User)
	return u, ok && u != nil
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	return token, token != ""
}
