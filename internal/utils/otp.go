package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
)

var otpPattern = regexp.MustCompile(`^\d{6}$`)

// NewOTP returns a uniformly random 6-digit code in [100000, 999999].
func NewOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// IsValidOTPFormat reports whether s is exactly 6 decimal digits.
func IsValidOTPFormat(s string) bool {
	return otpPattern.MatchString(s)
}
