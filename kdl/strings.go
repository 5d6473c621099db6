package kdl

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// stringLiteral parses a quoted, raw, or multi-line string starting at the
// current position. The caller has already checked [parser.atStringStart].
func (p *parser) stringLiteral() (string, error) {
	if p.hasPrefix(`"`) {
		if p.dialect == DialectCanonical && p.hasPrefix(`"""`) {
			return p.multilineString(0)
		}

		return p.quotedString()
	}

	return p.rawString()
}

// quotedString parses a single-line (KDL 2) or possibly multi-line (KDL 1)
// double-quoted string with escapes.
func (p *parser) quotedString() (string, error) {
	start := p.off
	p.off++ // '"'

	bodyStart := p.off

	for {
		if p.eof() {
			return "", p.errorf(start, "unterminated string")
		}

		r := p.next()

		switch {
		case r == '"':
			return p.unescape(p.src[bodyStart:p.off-1], bodyStart)

		case r == '\\':
			if p.eof() {
				return "", p.errorf(start, "unterminated string")
			}

			p.next()

		case p.dialect == DialectCanonical && isNewlineRune(r):
			return "", p.errorf(p.off-utf8.RuneLen(r), "newline in single-line string; use a multi-line string")
		}
	}
}

// rawString parses r#"..."# (KDL 1) or #"..."# (KDL 2) strings, in which
// backslashes have no special meaning.
func (p *parser) rawString() (string, error) {
	start := p.off

	if p.dialect == DialectLegacy {
		p.off++ // 'r'
	}

	hashes := 0
	for p.hasPrefix("#") {
		hashes++
		p.off++
	}

	if p.dialect == DialectCanonical && p.hasPrefix(`"""`) {
		return p.multilineString(hashes)
	}

	p.off++ // '"'

	closing := `"` + strings.Repeat("#", hashes)

	end := strings.Index(p.src[p.off:], closing)
	if end < 0 {
		return "", p.errorf(start, "unterminated raw string")
	}

	body := p.src[p.off : p.off+end]
	if p.dialect == DialectCanonical && strings.ContainsFunc(body, isNewlineRune) {
		return "", p.errorf(start, "newline in single-line raw string; use a multi-line string")
	}

	p.off += end + len(closing)

	return body, nil
}

// multilineString parses a KDL 2 """ string. hashes is the number of '#'
// characters that opened a raw multi-line string, or 0 for an escaped one.
// The parser is positioned on the opening quotes.
func (p *parser) multilineString(hashes int) (string, error) {
	start := p.off
	if hashes > 0 {
		start -= hashes
	}

	p.off += 3 // `"""`

	nl := p.newlineLen()
	if nl == 0 {
		return "", p.errorf(start, "multi-line string must start with a newline")
	}

	p.off += nl
	bodyStart := p.off

	closing := `"""` + strings.Repeat("#", hashes)

	end := -1

	for i := p.off; i < len(p.src); {
		if hashes == 0 && p.src[i] == '\\' {
			_, size := utf8.DecodeRuneInString(p.src[i+1:])
			i += 1 + size

			continue
		}

		if strings.HasPrefix(p.src[i:], closing) {
			end = i
			break
		}

		_, size := utf8.DecodeRuneInString(p.src[i:])
		i += size
	}

	if end < 0 {
		return "", p.errorf(start, "unterminated multi-line string")
	}

	p.off = end + len(closing)

	lines := splitLines(p.src[bodyStart:end])
	indent := lines[len(lines)-1]

	if strings.TrimFunc(indent, isWhitespace) != "" {
		return "", p.errorf(start, "multi-line string closing quotes must be on their own line")
	}

	body := lines[:len(lines)-1]
	for i, line := range body {
		if strings.TrimFunc(line, isWhitespace) == "" {
			body[i] = ""
			continue
		}

		if !strings.HasPrefix(line, indent) {
			return "", p.errorf(start, "multi-line string line %d is not indented like the closing quotes", i+1)
		}

		body[i] = line[len(indent):]
	}

	text := strings.Join(body, "\n")
	if hashes > 0 {
		return text, nil
	}

	return p.unescape(text, bodyStart)
}

// unescape processes backslash escapes in s. off is the offset of s in the
// source, used for error positions.
func (p *parser) unescape(s string, off int) (string, error) {
	if !strings.Contains(s, `\`) {
		return s, nil
	}

	var sb strings.Builder

	sb.Grow(len(s))

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r != '\\' {
			sb.WriteRune(r)

			i += size

			continue
		}

		escStart := i
		i++

		if i >= len(s) {
			return "", p.errorf(off+escStart, "incomplete escape sequence")
		}

		r, size = utf8.DecodeRuneInString(s[i:])
		i += size

		switch r {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '\\':
			sb.WriteByte('\\')
		case '"':
			sb.WriteByte('"')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case '/':
			if p.dialect != DialectLegacy {
				return "", p.errorf(off+escStart, `invalid escape "\/"`)
			}

			sb.WriteByte('/')
		case 's':
			if p.dialect != DialectCanonical {
				return "", p.errorf(off+escStart, `invalid escape "\s"`)
			}

			sb.WriteByte(' ')
		case 'u':
			cp, n, ok := parseUnicodeEscape(s[i:])
			if !ok {
				return "", p.errorf(off+escStart, "invalid unicode escape")
			}

			sb.WriteRune(cp)

			i += n
		default:
			if p.dialect != DialectCanonical || !(isWhitespace(r) || isNewlineRune(r)) {
				return "", p.errorf(off+escStart, "invalid escape %q", `\`+string(r))
			}

			// Whitespace escape: drop all following whitespace.
			for i < len(s) {
				r, size = utf8.DecodeRuneInString(s[i:])
				if !isWhitespace(r) && !isNewlineRune(r) {
					break
				}

				i += size
			}
		}
	}

	return sb.String(), nil
}

// parseUnicodeEscape parses "{XXXX}" (1-6 hex digits) and returns the code
// point and the number of bytes consumed.
func parseUnicodeEscape(s string) (rune, int, bool) {
	if !strings.HasPrefix(s, "{") {
		return 0, 0, false
	}

	end := strings.IndexByte(s, '}')
	if end < 2 || end > 7 {
		return 0, 0, false
	}

	n, err := strconv.ParseUint(s[1:end], 16, 32)
	if err != nil || n > utf8.MaxRune || (n >= 0xd800 && n <= 0xdfff) {
		return 0, 0, false
	}

	return rune(n), end + 1, true
}

// splitLines splits s on any KDL newline sequence.
func splitLines(s string) []string {
	var lines []string

	start := 0

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])

		if !isNewlineRune(r) {
			i += size
			continue
		}

		lines = append(lines, s[start:i])

		if r == '\r' && strings.HasPrefix(s[i:], "\r\n") {
			size = 2
		}

		i += size
		start = i
	}

	return append(lines, s[start:])
}
