package compose

import "strings"

// ReplaceTokens applies each pair in order to src. A token matches only at
// whole-token boundaries: neither neighboring byte may be an ASCII letter
// or digit. Underscore and other punctuation do not block a match.
func ReplaceTokens(src string, pairs []ReplacePair) string {
	for _, p := range pairs {
		src = replaceToken(src, p.Old, p.New)
	}
	return src
}

func replaceToken(s, old, new string) string {
	if old == "" {
		return s
	}
	var b strings.Builder
	pos := 0
	for {
		i := strings.Index(s[pos:], old)
		if i < 0 {
			break
		}
		i += pos
		if boundaryOK(s, i, i+len(old)) {
			b.WriteString(s[pos:i])
			b.WriteString(new)
			pos = i + len(old)
		} else {
			// Advance one byte so a later overlapping occurrence can match.
			b.WriteString(s[pos : i+1])
			pos = i + 1
		}
	}
	b.WriteString(s[pos:])
	return b.String()
}

func boundaryOK(s string, start, end int) bool {
	if start > 0 && isAlnum(s[start-1]) {
		return false
	}
	if end < len(s) && isAlnum(s[end]) {
		return false
	}
	return true
}

func isAlnum(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
