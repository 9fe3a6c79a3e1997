package graceful_shutdown

import (
	"context"
	"net/http"
	"sync/atomic"

	"dorm-delivery/internal/handlers/rest/httperr"
)

// Middleware отклоняет новые запросы, когда сервер уже гасится и ongoingCtx отменен.
func Middleware(isShuttingDown *atomic.Bool, ongoingCtx context.Context) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-ongoingCtx.Done():
				if isShuttingDown.Load() {
					w.Header().Set("Connection", "close")
					_ = httperr.Write(w, http.StatusServiceUnavailable, "Service is shutting down")
					return
				}
			default:
			}
			next.ServeHTTP(w, r)
		})
	}
}
