package store

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type IDStyle string

const (
	IDStyleShort IDStyle = "short"
	IDStyleUUID  IDStyle = "uuid"
)

func ParseIDStyle(s string) (IDStyle, error) {
	switch IDStyle(strings.ToLower(strings.TrimSpace(s))) {
	case "", IDStyleShort:
		return IDStyleShort, nil
	case IDStyleUUID:
		return IDStyleUUID, nil
	default:
		return "", fmt.Errorf("unknown id style: %s (want short|uuid)", s)
	}
}

// IDGenerator returns a task id generator for style. Ids come from crypto/rand,
// never from a clock, so two tasks created in the same tick still differ.
func IDGenerator(style IDStyle) func() (string, error) {
	if style == IDStyleUUID {
		return func() (string, error) {
			id, err := uuid.NewRandom()
			if err != nil {
				return "", err
			}
			return id.String(), nil
		}
	}
	return func() (string, error) { return newRandomID("task") }
}

// newRandomID returns prefix-<suffix> where suffix is 8 chars of base32 (lowercase, no padding).
// 8 chars base32 ~= 40 bits (~1 trillion) of space.
func newRandomID(prefix string) (string, error) {
	var b [5]byte // 40 bits -> 8 base32 chars
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	suffix := strings.ToLower(enc.EncodeToString(b[:]))
	return prefix + "-" + suffix, nil
}
