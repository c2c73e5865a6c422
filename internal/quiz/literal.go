package quiz

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

var errNotStringList = errors.New("not a literal list of strings")

// decodeStringList reads the literal list notation the upstream model sometimes emits,
// e.g. ['{"Question": ...}', "..."]. Only quoted string elements are accepted and
// nothing is evaluated; any other token rejects the whole input.
func decodeStringList(src string) ([]string, error) {
	l := &literalLexer{src: strings.TrimSpace(src)}
	if !l.consume('[') {
		return nil, errNotStringList
	}

	var items []string
	for {
		l.skipSpace()
		if l.consume(']') {
			break
		}
		s, err := l.readString()
		if err != nil {
			return nil, errors.Wrapf(err, "element %d", len(items))
		}
		items = append(items, s)

		l.skipSpace()
		if l.consume(',') {
			continue
		}
		if l.consume(']') {
			break
		}
		return nil, errors.Wrapf(errNotStringList, "unexpected character at offset %d", l.pos)
	}

	l.skipSpace()
	if l.pos != len(l.src) {
		return nil, errors.Wrapf(errNotStringList, "trailing data at offset %d", l.pos)
	}
	return items, nil
}

type literalLexer struct {
	src string
	pos int
}

func (l *literalLexer) skipSpace() {
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case ' ', '\t', '\n', '\r':
			l.pos++
		default:
			return
		}
	}
}

func (l *literalLexer) consume(c byte) bool {
	if l.pos < len(l.src) && l.src[l.pos] == c {
		l.pos++
		return true
	}
	return false
}

func (l *literalLexer) readString() (string, error) {
	if l.pos < len(l.src) && (l.src[l.pos] == 'u' || l.src[l.pos] == 'U') {
		l.pos++
	}
	if l.pos >= len(l.src) || (l.src[l.pos] != '\'' && l.src[l.pos] != '"') {
		return "", errNotStringList
	}
	quote := l.src[l.pos]
	l.pos++

	var b strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == quote:
			l.pos++
			return b.String(), nil
		case c == '\n':
			return "", errors.New("newline inside quoted string")
		case c == '\\':
			if err := l.readEscape(&b); err != nil {
				return "", err
			}
		default:
			r, size := utf8.DecodeRuneInString(l.src[l.pos:])
			b.WriteRune(r)
			l.pos += size
		}
	}
	return "", errors.New("unterminated string")
}

func (l *literalLexer) readEscape(b *strings.Builder) error {
	if l.pos+1 >= len(l.src) {
		return errors.New("dangling backslash")
	}
	c := l.src[l.pos+1]
	l.pos += 2
	switch c {
	case '\\', '\'', '"':
		b.WriteByte(c)
	case 'n':
		b.WriteByte('\n')
	case 't':
		b.WriteByte('\t')
	case 'r':
		b.WriteByte('\r')
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'v':
		b.WriteByte('\v')
	case '0':
		b.WriteByte(0)
	case '\n':
		// line continuation
	case 'x':
		return l.readHex(b, 2)
	case 'u':
		return l.readHex(b, 4)
	case 'U':
		return l.readHex(b, 8)
	default:
		b.WriteByte('\\')
		b.WriteByte(c)
	}
	return nil
}

func (l *literalLexer) readHex(b *strings.Builder, digits int) error {
	if l.pos+digits > len(l.src) {
		return errors.New("short hex escape")
	}
	code, err := strconv.ParseUint(l.src[l.pos:l.pos+digits], 16, 32)
	if err != nil {
		return errors.Wrap(err, "bad hex escape")
	}
	l.pos += digits
	b.WriteRune(rune(code))
	return nil
}
