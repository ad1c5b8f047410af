package domain

import (
	"testing"
	"time"
)

func TestOTPExpiryBoundary(t *testing.T) {
	issued := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	reg := PendingRegistration{CreatedAt: issued}
	reset := PasswordReset{CreatedAt: issued}

	inside := issued.Add(OTPTTL)
	outside := issued.Add(OTPTTL + time.Second)

	if reg.Expired(inside) || reset.Expired(inside) {
		t.Fatal("codes at exactly the TTL boundary are still valid")
	}
	if !reg.Expired(outside) || !reset.Expired(outside) {
		t.Fatal("codes past the TTL must be expired")
	}
}
