package middleware

import (
	"context"
	"net/http"

	"armatupc/internal/domain"
	"armatupc/pkg/ctxutil"
)

// RequireSuperuser returns domain.ErrForbidden if the context user is not
// a superuser.
func RequireSuperuser(ctx context.Context) error {
	if !ctxutil.IsSuperuserCtx(ctx) {
		return domain.ErrForbidden
	}
	return nil
}

// RequireAdmin rejects requests whose context identity is not a
// superuser. Mount it on the admin route group, after Auth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := RequireSuperuser(r.Context()); err != nil {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
