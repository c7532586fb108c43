package handlers

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidPrice(t *testing.T) {
	for _, ok := range []string{"0.01", "950.5", "950.50", "99999999.99"} {
		assert.True(t, validPrice(decimal.RequireFromString(ok)), ok)
	}
	for _, bad := range []string{"0", "-10", "10.999", "100000000"} {
		assert.False(t, validPrice(decimal.RequireFromString(bad)), bad)
	}
}

func TestMergeSorted(t *testing.T) {
	got := mergeSorted([]string{"Charleston", "Summerville"}, []string{"charleston", "Mount Pleasant"})
	assert.Equal(t, []string{"Charleston", "Mount Pleasant", "Summerville"}, got)
	assert.Equal(t, []string{}, mergeSorted(nil, nil))
}

func TestValidatePasswordStrength(t *testing.T) {
	assert.NoError(t, validatePasswordStrength("Passw0rd!"))
	for _, bad := range []string{"short1!", "alllowercase1!", "NoNumbers!", "NoSpecial123"} {
		assert.Error(t, validatePasswordStrength(bad), bad)
	}
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, dedupe([]string{"a", "b", "a"}))
}

func TestAllowTyping_Throttles(t *testing.T) {
	now := time.Now()
	assert.True(t, allowTyping("typing-user", now))
	assert.False(t, allowTyping("typing-user", now.Add(time.Second)))
	assert.True(t, allowTyping("typing-user", now.Add(typingThrottleDuration)))
	assert.True(t, allowTyping("someone-else", now))
}
