package utils

import (
	"regexp"
	"strings"
	"unicode"
)

// MaxFieldLength is the maximum number of characters kept by Sanitize.
const MaxFieldLength = 1000

var (
	scriptSchemePattern = regexp.MustCompile(`(?i)javascript:`)
	eventHandlerPattern = regexp.MustCompile(`(?i)on\w+=`)
	angleBrackets       = strings.NewReplacer("<", "", ">", "")
)

// Sanitize cleans a single submitted form value so it is safe to log and echo.
// Anything that is not a string yields an empty string.
func Sanitize(value any) string {
	s, ok := value.(string)
	if !ok {
		return ""
	}

	// Removing one pattern can join the halves of another ("java<script:"),
	// so keep stripping until nothing changes.
	for {
		cleaned := angleBrackets.Replace(s)
		cleaned = scriptSchemePattern.ReplaceAllString(cleaned, "")
		cleaned = eventHandlerPattern.ReplaceAllString(cleaned, "")
		if cleaned == s {
			break
		}
		s = cleaned
	}

	s = strings.TrimFunc(s, isSpace)
	return strings.TrimRightFunc(truncate(s, MaxFieldLength), isSpace)
}

// truncate cuts s to at most n characters.
func truncate(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// isSpace matches the whitespace set browsers trim: unicode.IsSpace without
// NEL, plus the BOM.
func isSpace(r rune) bool {
	if r == '\u0085' {
		return false
	}
	return unicode.IsSpace(r) || r == '\uFEFF'
}
