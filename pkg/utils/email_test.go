package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"a@b.com", true},
		{"first.last@sub.example.co.uk", true},
		{"user+tag@example.io", true},
		{"", false},
		{"a@b", false},
		{"not-an-email", false},
		{"a@@b.com", false},
		{"a@b@c.com", false},
		{"a\u00a0b@c.com", false},
		{"a@b.com\u2028", false},
		{"a@b .com", false},
		{"a@b.com ", false},
		{"a b@c.com", false},
		{"@b.com", false},
		{"a@.com", false},
		{"a@b.", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValidEmail(tt.email), "IsValidEmail(%q)", tt.email)
	}
}

func TestIsValidEmailLengthCap(t *testing.T) {
	suffix := "@example.com"
	atLimit := strings.Repeat("a", MaxEmailLength-len(suffix)) + suffix
	assert.True(t, IsValidEmail(atLimit))

	overLimit := strings.Repeat("a", MaxEmailLength+1-len(suffix)) + suffix
	assert.False(t, IsValidEmail(overLimit))

	assert.False(t, IsValidEmail(strings.Repeat("a", 255)))
}

func TestIsValidEmailCountsUTF16Units(t *testing.T) {
	// Each emoji is a surrogate pair, two units.
	assert.True(t, IsValidEmail(strings.Repeat("😀", 124)+"@b.com"))
	assert.False(t, IsValidEmail(strings.Repeat("😀", 125)+"@b.com"))
	assert.False(t, IsValidEmail(strings.Repeat("😀", 130)+"@b.com"))
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint("Jane@Example.com ")
	b := Fingerprint("jane@example.com")

	assert.Equal(t, a, b)
	assert.Len(t, a, 16)
	assert.NotEqual(t, a, Fingerprint("john@example.com"))
}
