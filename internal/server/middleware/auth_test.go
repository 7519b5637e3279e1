package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/information-sharing-networks/pim-catalog/internal/auth"
)

func TestBearerAuth(t *testing.T) {
	pair, err := auth.GenerateKeyPair(auth.KeyTypeRSA, 2048, "test-key")
	if err != nil {
		t.Fatalf("failed to generate key pair: %v", err)
	}
	set, err := pair.PublicKeySet()
	if err != nil {
		t.Fatalf("failed to build key set: %v", err)
	}

	validToken, err := auth.IssueToken(pair.Private, "tester", time.Minute)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	expiredToken, err := auth.IssueToken(pair.Private, "tester", -time.Hour)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	router := chi.NewRouter()
	router.Use(BearerAuth(auth.NewVerifier(auth.NewStaticKeySet(set))))
	router.Get("/test", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name          string
		authorization string
		wantCode      int
		wantMessage   string
	}{
		{"valid token", "Bearer " + validToken, http.StatusOK, ""},
		{"lower case scheme", "bearer " + validToken, http.StatusOK, ""},
		{"missing header", "", http.StatusUnauthorized, MessageAuthenticationRequired},
		{"basic auth", "Basic dXNlcjpwYXNz", http.StatusUnauthorized, MessageAuthenticationRequired},
		{"empty token", "Bearer ", http.StatusUnauthorized, MessageAuthenticationRequired},
		{"expired token", "Bearer " + expiredToken, http.StatusUnauthorized, MessageInvalidToken},
		{"garbage token", "Bearer abc.def.ghi", http.StatusUnauthorized, MessageInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/test", nil)
			if tt.authorization != "" {
				req.Header.Set("Authorization", tt.authorization)
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			if rr.Code != tt.wantCode {
				t.Fatalf("got status %d, want %d (body: %s)", rr.Code, tt.wantCode, rr.Body.String())
			}
			if tt.wantMessage != "" && !strings.Contains(rr.Body.String(), tt.wantMessage) {
				t.Errorf("body %s does not contain %q", rr.Body.String(), tt.wantMessage)
			}
		})
	}
}

type failingVerifier struct{}

func (failingVerifier) Verify(context.Context, string) (string, error) {
	return "", context.DeadlineExceeded
}

func TestBearerAuthVerifierError(t *testing.T) {
	handler := BearerAuth(failingVerifier{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called")
	}))

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer token")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("got status %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}
