package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidPhone(t *testing.T) {
	valid := []string{"+14155550100", "+442071838750", "+911234567890"}
	for _, p := range valid {
		assert.True(t, IsValidPhone(p), p)
	}

	invalid := []string{"", "14155550100", "+0123456", "+1", "+1415555010012345678", "not-a-phone"}
	for _, p := range invalid {
		assert.False(t, IsValidPhone(p), p)
	}
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+14155550100", NormalizePhone("+1 (415) 555-0100"))
	assert.True(t, IsValidPhone(NormalizePhone("+1 415.555.0100")))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("admin@example.com"))
	assert.False(t, IsValidEmail("admin@"))
	assert.False(t, IsValidEmail(""))
}
