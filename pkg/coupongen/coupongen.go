package coupongen

import (
	"crypto/rand"
	"fmt"
)

// charset is upper-case alphanumeric so codes stay short and typeable.
const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// DefaultLength gives 36^8 (~2.8e12) possible codes, enough to make
// collisions negligible over a process lifetime.
const DefaultLength = 8

// Generate returns a random coupon code of the given length drawn from
// crypto/rand. Length must be positive.
func Generate(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("coupongen: invalid length %d", length)
	}

	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("coupongen: read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = charset[int(b)%len(charset)]
	}
	return string(buf), nil
}
