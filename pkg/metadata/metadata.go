// Package metadata provides source fingerprinting for loaded catalog files.
package metadata

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
)

// ErrFingerprintMismatch is returned by Verify when file content changed.
var ErrFingerprintMismatch = errors.New("fingerprint mismatch")

// Source describes the file a dataset was loaded from.
type Source struct {
	Path        string `json:"path"`
	Fingerprint string `json:"fingerprint"`
	Size        int64  `json:"size"`
}

// CalculateHash computes the SHA-256 hash of content as a hex string.
func CalculateHash(content []byte) string {
	hash := sha256.Sum256(content)

	return hex.EncodeToString(hash[:])
}

// Describe builds the Source for content read from path.
func Describe(path string, content []byte) Source {
	return Source{
		Path:        path,
		Fingerprint: CalculateHash(content),
		Size:        int64(len(content)),
	}
}

// Verify re-reads the file at s.Path and checks it still matches the fingerprint.
func (s Source) Verify() (bool, error) {
	content, err := os.ReadFile(s.Path)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", s.Path, err)
	}

	calculated := CalculateHash(content)
	if calculated != s.Fingerprint {
		return false, fmt.Errorf("%w: expected %s, got %s", ErrFingerprintMismatch, s.Fingerprint, calculated)
	}

	return true, nil
}

// Short returns the first 12 characters of the fingerprint for logging.
func (s Source) Short() string {
	if len(s.Fingerprint) <= 12 {
		return s.Fingerprint
	}

	return s.Fingerprint[:12]
}
