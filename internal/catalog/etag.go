package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/gowebpki/jcs"
)

// ETag returns a strong entity tag for the standard format of a group.
//
// The tag is the SHA-256 of the RFC 8785 canonical JSON, so it does not depend on map ordering.
func ETag(format StandardFormat) (string, error) {
	data, err := json.Marshal(format)
	if err != nil {
		return "", fmt.Errorf("failed to marshal attribute group: %w", err)
	}

	canonical, err := jcs.Transform(data)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize attribute group: %w", err)
	}

	sum := sha256.Sum256(canonical)
	return `"` + hex.EncodeToString(sum[:]) + `"`, nil
}
