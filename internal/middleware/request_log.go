package middleware

import (
	"context"
	"net/http"
	"time"

	"pet-profiles/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestLog loguea cada request con el request id de chi.
func RequestLog(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			// AuthContext corre después y completa el usuario acá.
			user := &logUser{}
			next.ServeHTTP(ww, r.WithContext(context.WithValue(r.Context(), logUserKey, user)))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			fields := map[string]any{
				"request_id":  chimw.GetReqID(r.Context()),
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      status,
				"bytes":       ww.BytesWritten(),
				"duration_ms": time.Since(start).Milliseconds(),
			}
			if user.id != "" {
				fields["user_id"] = user.id
			}

			switch {
			case status >= 500:
				log.Error("http request", fields)
			case status >= 400:
				log.Warn("http request", fields)
			default:
				log.Info("http request", fields)
			}
		})
	}
}

const logUserKey ctxKey = "log_user"

type logUser struct {
	id string
}

func noteUser(ctx context.Context, userID string) {
	if u, ok := ctx.Value(logUserKey).(*logUser); ok {
		u.id = userID
	}
}
