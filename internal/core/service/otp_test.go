package service

import "testing"

func TestGenerateOTP_LengthAndDigits(t *testing.T) {
	for _, length := range []int{4, 6, 8} {
		code := GenerateOTP(length)
		if len(code) != length {
			t.Fatalf("expected %d characters, got %d (%q)", length, len(code), code)
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("expected only digits, got %q", code)
			}
		}
	}
}

func TestGenerateOTP_NotConstant(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		seen[GenerateOTP(6)] = true
	}
	if len(seen) < 2 {
		t.Fatal("expected varying codes across generations")
	}
}
