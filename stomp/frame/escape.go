package frame

import "strings"

// escapeValue applies the STOMP 1.2 header value escaping used by every
// frame except the connect family. It is a single pass over the runes,
// so no escape it writes is ever escaped a second time.
func escapeValue(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\r':
			b.WriteString(`\r`)
		case '\n':
			b.WriteString(`\n`)
		case ':':
			b.WriteString(`\c`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// unescapeValue reverses escapeValue. Any backslash not followed by one of
// r, n, c, or \ is a malformed escape and reported as a ParseError.
func unescapeValue(s string) (string, error) {
	var b strings.Builder
	b.Grow(len(s))

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '\\' {
			b.WriteRune(runes[i])
			continue
		}
		if i+1 >= len(runes) {
			return "", &ParseError{Reason: "trailing backslash in header value"}
		}
		switch runes[i+1] {
		case 'r':
			b.WriteByte('\r')
		case 'n':
			b.WriteByte('\n')
		case 'c':
			b.WriteByte(':')
		case '\\':
			b.WriteByte('\\')
		default:
			return "", &ParseError{Reason: "invalid escape sequence \\" + string(runes[i+1])}
		}
		i++
	}
	return b.String(), nil
}
