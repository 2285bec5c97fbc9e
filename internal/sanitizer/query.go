package sanitizer

import (
	"net/url"
	"strings"
)

type pair struct {
	key   string
	value string
}

// parsePairs splits a raw query the way application/x-www-form-urlencoded
// parsers do: '&' separates pairs, the first '=' separates key from value,
// '+' is a space and empty segments are skipped. Order is preserved.
func parsePairs(rawQuery string) []pair {
	if rawQuery == "" {
		return nil
	}

	var pairs []pair
	for _, segment := range strings.Split(rawQuery, "&") {
		if segment == "" {
			continue
		}
		k, v, _ := strings.Cut(segment, "=")
		pairs = append(pairs, pair{key: formUnescape(k), value: formUnescape(v)})
	}

	return pairs
}

// encodePairs is the inverse of parsePairs.
func encodePairs(pairs []pair) string {
	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.value))
	}

	return b.String()
}

// formUnescape decodes '+' and valid %XX escapes. Malformed escapes are kept
// literally instead of failing like url.QueryUnescape does.
func formUnescape(s string) string {
	if !strings.ContainsAny(s, "%+") {
		return s
	}

	buf := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '+':
			buf = append(buf, ' ')
		case s[i] == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			buf = append(buf, unhex(s[i+1])<<4|unhex(s[i+2]))
			i += 2
		default:
			buf = append(buf, s[i])
		}
	}

	return strings.ToValidUTF8(string(buf), "\uFFFD")
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
