package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// GenerateMerchantID generates a random merchant reference in the format
// MP-XXXXXXXXXXXX for a simulated PayPal account link
func GenerateMerchantID() (string, error) {
	bytes := make([]byte, 6)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	return "MP-" + strings.ToUpper(hex.EncodeToString(bytes)), nil
}
