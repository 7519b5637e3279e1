package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lestrrat-go/httprc/v3"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"
)

// Issuer is the iss claim of tokens created by IssueToken.
const Issuer = "pim-catalog"

// IssueToken creates a signed JWT for subject, valid for ttl.
func IssueToken(signingKey jwk.Key, subject string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("subject is required")
	}
	alg, ok := signingKey.Algorithm()
	if !ok {
		return "", fmt.Errorf("signing key has no algorithm (alg)")
	}

	now := time.Now()
	token, err := jwt.NewBuilder().
		Issuer(Issuer).
		Subject(subject).
		IssuedAt(now).
		Expiration(now.Add(ttl)).
		Build()
	if err != nil {
		return "", fmt.Errorf("failed to build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(alg, signingKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return string(signed), nil
}

// KeySetProvider returns the JWK set used to verify tokens.
type KeySetProvider interface {
	KeySet(ctx context.Context) (jwk.Set, error)
}

// StaticKeySet is a KeySetProvider for a fixed set (tests and local keys).
type StaticKeySet struct {
	set jwk.Set
}

func NewStaticKeySet(set jwk.Set) *StaticKeySet {
	return &StaticKeySet{set: set}
}

func (s *StaticKeySet) KeySet(context.Context) (jwk.Set, error) {
	return s.set, nil
}

// CachedKeySet fetches a remote JWK set and refreshes it in the background.
type CachedKeySet struct {
	cache *jwk.Cache
	url   string
}

// NewCachedKeySet registers url with a jwx cache.
//
// The first fetch happens in the background so the server can start while the JWKS endpoint is
// unavailable; requests are rejected until the set has been fetched.
func NewCachedKeySet(ctx context.Context, url string, minRefresh, maxRefresh time.Duration, logger *slog.Logger) (*CachedKeySet, error) {
	cache, err := jwk.NewCache(ctx, httprc.NewClient())
	if err != nil {
		return nil, fmt.Errorf("failed to create JWK cache: %w", err)
	}

	err = cache.Register(ctx, url,
		jwk.WithMinInterval(minRefresh),
		jwk.WithMaxInterval(maxRefresh),
		jwk.WithWaitReady(false), // Don't block startup - fetch in background
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register JWK endpoint %s: %w", url, err)
	}

	logger.Info("registered JWK endpoint for background fetch",
		slog.String("jwks_url", url),
		slog.Duration("min_refresh", minRefresh),
		slog.Duration("max_refresh", maxRefresh),
	)

	return &CachedKeySet{cache: cache, url: url}, nil
}

func (c *CachedKeySet) KeySet(ctx context.Context) (jwk.Set, error) {
	set, err := c.cache.Lookup(ctx, c.url)
	if err != nil {
		return nil, fmt.Errorf("failed to lookup JWK set from cache: %w", err)
	}
	return set, nil
}

// Verifier checks bearer tokens.
type Verifier struct {
	keys KeySetProvider
}

func NewVerifier(keys KeySetProvider) *Verifier {
	return &Verifier{keys: keys}
}

// Verify checks the signature (the kid must be in the key set) and the exp, nbf and iat claims.
// It returns the subject of the token.
func (v *Verifier) Verify(ctx context.Context, tokenString string) (string, error) {
	set, err := v.keys.KeySet(ctx)
	if err != nil {
		return "", err
	}

	token, err := jwt.ParseString(tokenString,
		jwt.WithKeySet(set),
		jwt.WithValidate(true),
		jwt.WithAcceptableSkew(30*time.Second),
	)
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	subject, _ := token.Subject()
	return subject, nil
}
