package alert

import "strings"

// DefaultKeyword is matched when no keyword is configured.
const DefaultKeyword = "urgent"

// Keyword is a single case-insensitive substring trigger.
type Keyword string

// NewKeyword normalises a configured keyword, falling back to DefaultKeyword when blank.
func NewKeyword(s string) Keyword {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultKeyword
	}
	return Keyword(s)
}

// Normalize returns the form of text that keywords are matched against.
func Normalize(text string) string {
	return strings.ToLower(text)
}

// Match reports whether normalized text contains the keyword. No tokenisation is applied.
func (k Keyword) Match(normalized string) bool {
	return strings.Contains(normalized, string(k))
}
