package textops

import "strings"

// Left returns the first n runes of s, or all of s when it is shorter.
func Left(s string, n int) string {
	r := []rune(s)
	if n >= len(r) {
		return s
	}
	return string(r[:max(n, 0)])
}

// Right returns the last n runes of s, or all of s when it is shorter.
func Right(s string, n int) string {
	r := []rune(s)
	if n >= len(r) {
		return s
	}
	return string(r[len(r)-max(n, 0):])
}

// Mid returns up to n runes of s starting at rune offset start. A start past
// the end gives "".
func Mid(s string, start, n int) string {
	r := []rune(s)
	start = max(start, 0)
	if start >= len(r) {
		return ""
	}
	end := min(start+max(n, 0), len(r))
	return string(r[start:end])
}

// Surround wraps the whole of s in prefix and suffix. Both accept backslash
// escapes.
func Surround(s, prefix, suffix string) string {
	return Unescape(prefix) + s + Unescape(suffix)
}

// RemoveAffixes strips prefix and suffix from s when present. Both accept
// backslash escapes.
func RemoveAffixes(s, prefix, suffix string) string {
	s = strings.TrimPrefix(s, Unescape(prefix))
	return strings.TrimSuffix(s, Unescape(suffix))
}
