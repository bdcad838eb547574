package middleware

import (
	"net/http"

	"movie-catalog/pkg/utils"

	"go.uber.org/zap"
)

// RequestIDHeader is set by the catalog client on every call.
const RequestIDHeader = "X-Request-ID"

// Recover turns a handler panic into a 500 JSON response. The request id the
// client sent is logged and echoed back so both sides can be matched up.
// http.ErrAbortHandler is re-raised for net/http to handle.
func Recover(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				requestID := r.Header.Get(RequestIDHeader)
				logger.Error("Handler panicked",
					zap.Any("panic", rec),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.String("request_id", requestID),
					zap.Stack("stack"),
				)
				if requestID != "" {
					w.Header().Set(RequestIDHeader, requestID)
				}
				utils.ResponseInternalError(w, "Internal server error")
			}()
			next.ServeHTTP(w, r)
		})
	}
}
