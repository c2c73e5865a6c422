package quiz

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
)

// unescapeFragment undoes one level of backslash escaping, the shape a JSON fragment
// takes when it was serialized as a string value twice ({\"Question\": \"...\"}).
func unescapeFragment(s string) string {
	return unescape(s, true)
}

// decodeUnicodeEscapes only turns literal \uXXXX sequences into runes, leaving every
// other backslash untouched.
func decodeUnicodeEscapes(s string) string {
	if !strings.Contains(s, `\u`) {
		return s
	}
	return unescape(s, false)
}

func unescape(s string, all bool) string {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		next := s[i+1]
		if next == 'u' {
			if r, n, ok := readUnicodeEscape(s[i:]); ok {
				b.WriteRune(r)
				i += n - 1
				continue
			}
			b.WriteByte(c)
			continue
		}
		if !all {
			b.WriteByte(c)
			continue
		}
		switch next {
		case '"', '\\', '/', '\'':
			b.WriteByte(next)
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		default:
			b.WriteByte(c)
			b.WriteByte(next)
		}
		i++
	}
	return b.String()
}

// readUnicodeEscape decodes \uXXXX at the start of s, joining surrogate pairs, and
// returns the rune and the number of bytes consumed.
func readUnicodeEscape(s string) (rune, int, bool) {
	hi, ok := hex4(s)
	if !ok {
		return 0, 0, false
	}
	r := rune(hi)
	if !utf16.IsSurrogate(r) {
		return r, 6, true
	}
	if lo, ok := hex4(s[6:]); ok {
		if pair := utf16.DecodeRune(r, rune(lo)); pair != unicode.ReplacementChar {
			return pair, 12, true
		}
	}
	return unicode.ReplacementChar, 6, true
}

func hex4(s string) (uint64, bool) {
	if len(s) < 6 || s[0] != '\\' || s[1] != 'u' {
		return 0, false
	}
	v, err := strconv.ParseUint(s[2:6], 16, 32)
	if err != nil {
		return 0, false
	}
	return v, true
}
