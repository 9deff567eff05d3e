package parsing

import "strings"

// HandlerFunc rewrites the body of one delimited token. It receives the text
// between the delimiters, escapes already undone, and returns the replacement
// spliced into the output.
type HandlerFunc func(content string) string

// TokenParser scans text for tokens wrapped in an open/close delimiter pair.
// A backslash escapes a delimiter: `\${` emits a literal opener and `\}`
// inside a token body keeps the scan going. An opener with no closer is kept
// verbatim.
type TokenParser struct {
	open    string
	close   string
	handler HandlerFunc
}

func NewTokenParser(open, close string, handler HandlerFunc) *TokenParser {
	return &TokenParser{open: open, close: close, handler: handler}
}

// Parse rewrites every well-formed token in text through the handler and
// returns the result. Text without delimiters passes through untouched.
func (p *TokenParser) Parse(text string) string {
	if text == "" {
		return ""
	}

	start := strings.Index(text, p.open)
	if start == -1 {
		return text
	}

	var (
		sb     strings.Builder
		expr   strings.Builder
		offset int
	)
	for start > -1 {
		if start > 0 && text[start-1] == '\\' {
			// escaped opener, drop the backslash and emit it literally
			sb.WriteString(text[offset : start-1])
			sb.WriteString(p.open)
			offset = start + len(p.open)
		} else {
			expr.Reset()
			sb.WriteString(text[offset:start])
			offset = start + len(p.open)

			end := indexFrom(text, p.close, offset)
			for end > -1 {
				if end <= offset || text[end-1] != '\\' {
					expr.WriteString(text[offset:end])
					break
				}
				// escaped closer, keep scanning for the real one
				expr.WriteString(text[offset : end-1])
				expr.WriteString(p.close)
				offset = end + len(p.close)
				end = indexFrom(text, p.close, offset)
			}

			if end == -1 {
				// unclosed token, keep the rest verbatim
				sb.WriteString(text[start:])
				offset = len(text)
			} else {
				sb.WriteString(p.handler(expr.String()))
				offset = end + len(p.close)
			}
		}

		start = indexFrom(text, p.open, offset)
	}
	sb.WriteString(text[offset:])

	return sb.String()
}

func indexFrom(s, substr string, from int) int {
	if from > len(s) {
		return -1
	}

	i := strings.Index(s[from:], substr)
	if i == -1 {
		return -1
	}

	return from + i
}
