package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKeyPair(t *testing.T) {
	tests := []struct {
		name    string
		keyType string
		bits    int
		wantErr bool
	}{
		{"rsa 2048", KeyTypeRSA, 2048, false},
		{"ed25519", KeyTypeEd25519, 0, false},
		{"rsa invalid size", KeyTypeRSA, 1024, true},
		{"unknown type", "dsa", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pair, err := GenerateKeyPair(tt.keyType, tt.bits, "")
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, pair.KeyID(), 16)

			privateKID, _ := pair.Private.KeyID()
			assert.Equal(t, pair.KeyID(), privateKID)
		})
	}
}

func TestIssueAndVerify(t *testing.T) {
	ctx := context.Background()

	for _, keyType := range []string{KeyTypeRSA, KeyTypeEd25519} {
		t.Run(keyType, func(t *testing.T) {
			pair, err := GenerateKeyPair(keyType, 2048, "test-key")
			require.NoError(t, err)
			set, err := pair.PublicKeySet()
			require.NoError(t, err)
			verifier := NewVerifier(NewStaticKeySet(set))

			token, err := IssueToken(pair.Private, "integration", time.Minute)
			require.NoError(t, err)

			subject, err := verifier.Verify(ctx, token)
			require.NoError(t, err)
			assert.Equal(t, "integration", subject)
		})
	}
}

func TestVerifyRejects(t *testing.T) {
	ctx := context.Background()

	trusted, err := GenerateKeyPair(KeyTypeEd25519, 0, "trusted")
	require.NoError(t, err)
	other, err := GenerateKeyPair(KeyTypeEd25519, 0, "other")
	require.NoError(t, err)

	set, err := trusted.PublicKeySet()
	require.NoError(t, err)
	verifier := NewVerifier(NewStaticKeySet(set))

	expired, err := IssueToken(trusted.Private, "ci", -time.Hour)
	require.NoError(t, err)
	unknownKey, err := IssueToken(other.Private, "ci", time.Minute)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired":     expired,
		"unknown key": unknownKey,
		"garbage":     "not-a-token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := verifier.Verify(ctx, token)
			assert.Error(t, err)
		})
	}
}

func TestSaveAndReadKeyPair(t *testing.T) {
	dir := t.TempDir()

	pair, err := GenerateKeyPair(KeyTypeEd25519, 0, "")
	require.NoError(t, err)
	require.NoError(t, pair.Save(dir, "pimctl"))

	signingKey, err := ReadSigningKey(dir, fmt.Sprintf(PrivateKeyFileNameFormat, "pimctl"))
	require.NoError(t, err)

	publicSet, err := ReadKeySetFile(dir, fmt.Sprintf(PublicKeyFileNameFormat, "pimctl"))
	require.NoError(t, err)

	token, err := IssueToken(signingKey, "operator", time.Minute)
	require.NoError(t, err)

	subject, err := NewVerifier(NewStaticKeySet(publicSet)).Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "operator", subject)
}

func TestIssueTokenRequiresSubject(t *testing.T) {
	pair, err := GenerateKeyPair(KeyTypeEd25519, 0, "k")
	require.NoError(t, err)

	_, err = IssueToken(pair.Private, "", time.Minute)
	assert.Error(t, err)
}
