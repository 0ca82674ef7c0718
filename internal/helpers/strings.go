package helpers

// String returns the dereferenced value of the input pointer if it's not nil, otherwise, it returns an empty string.
func String(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// TruncationMarker is appended to strings shortened by Truncate.
const TruncationMarker = "..."

// Truncate keeps the first n runes of s, appending TruncationMarker if truncation occurs.
// A non-positive n disables truncation.
func Truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + TruncationMarker
}

// Obfuscate keeps the leading n runes of an opaque identifier and masks the rest.
func Obfuscate(id string, n int) string {
	runes := []rune(id)
	if len(runes) <= n {
		return id
	}
	return string(runes[:n]) + "…"
}
