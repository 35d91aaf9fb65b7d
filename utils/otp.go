// utils/otp.go
package utils

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

// GenerateOTP generates a 6-digit verification code, uniform over
// [100000, 999999], from a cryptographically secure random source.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}
