package utils

import (
	"regexp"
	"unicode/utf16"
)

// MaxEmailLength is the longest address IsValidEmail accepts, counted in
// UTF-16 code units as the page script counts it.
const MaxEmailLength = 254

// The whitespace class mirrors the browser's: ASCII whitespace, vertical tab,
// Unicode separators and the BOM.
var emailPattern = regexp.MustCompile(
	`^[^\s\x0B\p{Z}\x{FEFF}@]+@[^\s\x0B\p{Z}\x{FEFF}@]+\.[^\s\x0B\p{Z}\x{FEFF}@]+$`,
)

// IsValidEmail reports whether email has the rough shape local@domain.tld.
// It is deliberately loose and matches the check the page script performs.
func IsValidEmail(email string) bool {
	return utf16Len(email) <= MaxEmailLength && emailPattern.MatchString(email)
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}
