package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/fekuna/storefront-service/internal/httpx"
	"github.com/fekuna/storefront-service/internal/model"
	"github.com/fekuna/storefront-service/pkg/logger"
)

type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Middleware rejects requests without a valid bearer token with 401 before
// the wrapped handler runs.
func Middleware(verifier TokenVerifier, log logger.ZapLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				httpx.HandleError(w, r, log, fmt.Errorf("%w: missing bearer token", model.ErrUnauthenticated))
				return
			}

			adminID, err := verifier.Verify(token)
			if err != nil {
				httpx.HandleError(w, r, log, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithAdminID(r.Context(), adminID)))
		})
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
