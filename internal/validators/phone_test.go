package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPhoneValid(t *testing.T) {
	for _, ok := range []string{"+55 11 98765-4321", "(11) 5555-0000", "11987654321"} {
		assert.True(t, IsPhoneValid(ok), ok)
	}
	for _, bad := range []string{"", "123", "11 9876x4321", "55+11987654321", "+1234567890123456"} {
		assert.False(t, IsPhoneValid(bad), bad)
	}
}
