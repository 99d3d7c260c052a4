// Package id generates Stripe-style public identifiers ("bp_0192...").
package id

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// GenerateWithPrefix returns prefix_<uuidv7 hex>. UUIDv7 keeps ids roughly
// time ordered.
func GenerateWithPrefix(prefix string) (string, error) {
	u, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate id: %w", err)
	}
	return prefix + "_" + strings.ReplaceAll(u.String(), "-", ""), nil
}

func MustGenerateWithPrefix(prefix string) string {
	sid, err := GenerateWithPrefix(prefix)
	if err != nil {
		panic(err)
	}
	return sid
}

// HasPrefix reports whether sid was generated for prefix.
func HasPrefix(sid, prefix string) bool {
	rest, ok := strings.CutPrefix(sid, prefix+"_")
	return ok && len(rest) == 32
}

// NewRequestID is a random id for request correlation.
func NewRequestID() string {
	return uuid.NewString()
}
