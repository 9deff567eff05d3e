package parsing

import "strings"

const (
	openToken  = "${"
	closeToken = "}"

	defaultValueSeparator = ":"
)

type expandSettings struct {
	defaults  bool
	separator string
}

// ExpandOption customizes placeholder expansion.
type ExpandOption func(*expandSettings)

// WithDefaults enables ${name:fallback} syntax. Off by default: without it
// the whole token body, separator included, is the lookup key.
func WithDefaults(enabled bool) ExpandOption {
	return func(s *expandSettings) {
		s.defaults = enabled
	}
}

// WithSeparator overrides the key/fallback separator used when defaults are
// enabled. An empty separator keeps ":".
func WithSeparator(sep string) ExpandOption {
	return func(s *expandSettings) {
		if sep != "" {
			s.separator = sep
		}
	}
}

// Expand substitutes every ${name} placeholder in text with vars[name].
// Placeholders that resolve to no variable (and carry no fallback) are kept
// verbatim, delimiters included.
func Expand(text string, vars map[string]string, opts ...ExpandOption) string {
	settings := expandSettings{separator: defaultValueSeparator}
	for _, opt := range opts {
		opt(&settings)
	}

	h := variableHandler{vars: vars, settings: settings}

	return NewTokenParser(openToken, closeToken, h.resolve).Parse(text)
}

type variableHandler struct {
	vars     map[string]string
	settings expandSettings
}

func (h variableHandler) resolve(content string) string {
	if h.vars != nil {
		if h.settings.defaults {
			if i := strings.Index(content, h.settings.separator); i >= 0 {
				key := content[:i]
				fallback := content[i+len(h.settings.separator):]
				if v, ok := h.vars[key]; ok {
					return v
				}

				return fallback
			}
		}

		if v, ok := h.vars[content]; ok {
			return v
		}
	}

	return openToken + content + closeToken
}
