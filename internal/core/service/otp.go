package service

import (
	"crypto/rand"
	"fmt"
	"time"
)

const otpLength = 6

// OTPGenerator produces a fixed-length numeric passcode. Injected into the
// account service so tests can pin the generated codes.
type OTPGenerator func(length int) string

// GenerateOTP returns a string of exactly length decimal digits. Codes do
// not repeat with high probability within a short window; collision is a
// UX inconvenience, not a security invariant.
func GenerateOTP(length int) string {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		// fallback: derive digits from the clock
		return fmt.Sprintf("%0*d", length, time.Now().UnixNano()%pow10(length))
	}
	digits := make([]byte, length)
	for i, v := range b {
		digits[i] = '0' + v%10
	}
	return string(digits)
}

func pow10(n int) int64 {
	p := int64(1)
	for i := 0; i < n; i++ {
		p *= 10
	}
	return p
}
