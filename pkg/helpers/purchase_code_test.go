package helpers

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var codePattern = regexp.MustCompile(`^TKT-[0-9A-F]{12}$`)

func TestGenPurchaseCodeFormat(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := GenPurchaseCode()
		assert.Regexp(t, codePattern, code)
		assert.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
	}
}

func TestGenOTPCodeIsSixDigits(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := GenOTPCode()
		assert.NoError(t, err)
		assert.Regexp(t, `^\d{6}$`, code)
	}
}
