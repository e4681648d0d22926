package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"armatupc/pkg/ctxutil"
)

// RequestID tags every request with an identifier for log correlation.
// An X-Request-Id supplied by the client is trusted and echoed back;
// otherwise a fresh UUID is generated.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r.WithContext(ctxutil.WithRequestID(r.Context(), id)))
	})
}
