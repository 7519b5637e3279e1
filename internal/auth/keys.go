// Package auth issues and verifies the bearer tokens accepted by the catalog API.
//
// Tokens are JWTs signed with an RSA (RS256) or Ed25519 (EdDSA) key. The server verifies them
// against a JWK set, either loaded once (StaticKeySet) or fetched from AUTH_JWKS_URL and refreshed
// in the background (CachedKeySet).
//
// Key pairs are stored as JWK set files: <name>.private.jwk holds the signing key and
// <name>.public.jwk the JWK set to publish at AUTH_JWKS_URL.
package auth

import (
	"crypto"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"os"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
)

// Key types accepted by GenerateKeyPair.
const (
	KeyTypeRSA     = "rsa"
	KeyTypeEd25519 = "ed25519"
)

// file naming convention - name.public.jwk and name.private.jwk
const (
	PublicKeyFileNameFormat  = "%s.public.jwk"
	PrivateKeyFileNameFormat = "%s.private.jwk"
)

// KeyPair is a signing key and its public counterpart, both in JWK form with kid and alg set.
type KeyPair struct {
	Private jwk.Key
	Public  jwk.Key
}

// GenerateKeyPair creates a new key pair.
//
// rsaBits is only used for RSA keys and must be 2048 or 4096.
// When keyID is empty it is derived from the SHA-256 thumbprint of the public key.
func GenerateKeyPair(keyType string, rsaBits int, keyID string) (*KeyPair, error) {
	var (
		privateRaw any
		publicRaw  any
		alg        jwa.SignatureAlgorithm
	)

	switch keyType {
	case KeyTypeRSA:
		if rsaBits != 2048 && rsaBits != 4096 {
			return nil, fmt.Errorf("invalid RSA key size: %d (must be 2048 or 4096)", rsaBits)
		}
		privateKey, err := rsa.GenerateKey(rand.Reader, rsaBits)
		if err != nil {
			return nil, fmt.Errorf("failed to generate RSA key: %w", err)
		}
		privateRaw, publicRaw, alg = privateKey, &privateKey.PublicKey, jwa.RS256()
	case KeyTypeEd25519:
		publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return nil, fmt.Errorf("failed to generate Ed25519 key: %w", err)
		}
		privateRaw, publicRaw, alg = privateKey, publicKey, jwa.EdDSA()
	default:
		return nil, fmt.Errorf("invalid key type: %s (must be 'rsa' or 'ed25519')", keyType)
	}

	publicKey, err := jwk.Import(publicRaw)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWK from public key: %w", err)
	}
	if keyID == "" {
		thumbprint, err := publicKey.Thumbprint(crypto.SHA256)
		if err != nil {
			return nil, fmt.Errorf("failed to generate thumbprint: %w", err)
		}
		keyID = fmt.Sprintf("%x", thumbprint)[:16]
	}

	privateKey, err := jwk.Import(privateRaw)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWK from private key: %w", err)
	}

	for _, key := range []jwk.Key{privateKey, publicKey} {
		if err := setKeyMetadata(key, keyID, alg); err != nil {
			return nil, err
		}
	}

	return &KeyPair{Private: privateKey, Public: publicKey}, nil
}

func setKeyMetadata(key jwk.Key, keyID string, alg jwa.SignatureAlgorithm) error {
	if err := key.Set(jwk.KeyIDKey, keyID); err != nil {
		return fmt.Errorf("failed to set key ID: %w", err)
	}
	if err := key.Set(jwk.AlgorithmKey, alg); err != nil {
		return fmt.Errorf("failed to set algorithm: %w", err)
	}
	if err := key.Set(jwk.KeyUsageKey, jwk.ForSignature); err != nil {
		return fmt.Errorf("failed to set key usage: %w", err)
	}
	return nil
}

// KeyID returns the kid of the pair.
func (p *KeyPair) KeyID() string {
	kid, _ := p.Public.KeyID()
	return kid
}

// PublicKeySet returns a JWK set containing the public key.
func (p *KeyPair) PublicKeySet() (jwk.Set, error) {
	set := jwk.NewSet()
	if err := set.AddKey(p.Public); err != nil {
		return nil, fmt.Errorf("failed to add key to set: %w", err)
	}
	return set, nil
}

// Save writes name.public.jwk and name.private.jwk to baseDir.
// The private key file is only readable by the owner.
func (p *KeyPair) Save(baseDir, name string) error {
	publicSet, err := p.PublicKeySet()
	if err != nil {
		return err
	}
	if err := writeKeySet(publicSet, baseDir, fmt.Sprintf(PublicKeyFileNameFormat, name), 0644); err != nil {
		return fmt.Errorf("failed to save public key: %w", err)
	}

	privateSet := jwk.NewSet()
	if err := privateSet.AddKey(p.Private); err != nil {
		return fmt.Errorf("failed to add key to set: %w", err)
	}
	if err := writeKeySet(privateSet, baseDir, fmt.Sprintf(PrivateKeyFileNameFormat, name), 0600); err != nil {
		return fmt.Errorf("failed to save private key: %w", err)
	}
	return nil
}

func writeKeySet(set jwk.Set, baseDir, filename string, perm os.FileMode) error {
	jsonBytes, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JWK set: %w", err)
	}

	root, err := os.OpenRoot(baseDir)
	if err != nil {
		return fmt.Errorf("failed to open root directory %s: %w", baseDir, err)
	}
	defer root.Close()

	if err := root.WriteFile(filename, jsonBytes, perm); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// ReadKeySetFile loads a JWK set file.
//
// Parameters:
//   - baseDir: The base directory to scope file access (e.g., "./keys")
//   - filename: The filename within the base directory (e.g., "pimctl.private.jwk")
func ReadKeySetFile(baseDir, filename string) (jwk.Set, error) {
	root, err := os.OpenRoot(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open root directory %s: %w", baseDir, err)
	}
	defer root.Close()

	jsonBytes, err := root.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	set, err := jwk.Parse(jsonBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse JWK set: %w", err)
	}
	if set.Len() == 0 {
		return nil, fmt.Errorf("JWK set is empty")
	}
	return set, nil
}

// ReadSigningKey loads the first key of a private JWK set file.
func ReadSigningKey(baseDir, filename string) (jwk.Key, error) {
	set, err := ReadKeySetFile(baseDir, filename)
	if err != nil {
		return nil, err
	}
	key, ok := set.Key(0)
	if !ok {
		return nil, fmt.Errorf("failed to get key from JWK set")
	}
	if _, ok := key.Algorithm(); !ok {
		return nil, fmt.Errorf("signing key has no algorithm (alg)")
	}
	return key, nil
}
