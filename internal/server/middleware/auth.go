package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/information-sharing-networks/pim-catalog/internal/apierr"
	"github.com/information-sharing-networks/pim-catalog/internal/logger"
)

// Messages returned with 401 responses.
const (
	MessageAuthenticationRequired = "Authentication is required"
	MessageInvalidToken           = "The access token provided is invalid."
)

// TokenVerifier checks a bearer token and returns its subject.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// BearerAuth rejects requests without a valid "Authorization: Bearer <token>" header.
//
// The token subject is added to the request log.
func BearerAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			scheme, token, found := strings.Cut(header, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				apierr.RespondWithError(w, r, apierr.NewUnauthorizedError(MessageAuthenticationRequired))
				return
			}

			subject, err := verifier.Verify(r.Context(), strings.TrimSpace(token))
			if err != nil {
				apierr.RespondWithError(w, r, apierr.WrapUnauthorizedError(err, MessageInvalidToken))
				return
			}

			logger.ContextWithLogAttrs(r.Context(),
				slog.String("subject", subject),
			)

			next.ServeHTTP(w, r)
		})
	}
}
