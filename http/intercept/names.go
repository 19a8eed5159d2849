package intercept

import (
	"fmt"
	"strings"
)

// absent is how a nil Context value reads in a template name.
const absent = "None"

// DefaultTemplateNames are the candidate templates when none are configured.
var DefaultTemplateNames = []string{"safespace/problem.html"}

// TemplateNames are the candidate templates for a Document response, in order of preference.
//
// A name may hold placeholders for Context values, like {code} or {exc_type}.
// Doubled braces, {{ and }}, stand for literal ones.
// A nil value, like the code of a failure without one, expands to "None".
type TemplateNames struct {
	names []templateName
}

type templateName struct {
	raw   string
	parts []namePart
}

// A namePart is either literal text or, when key is set, a placeholder.
type namePart struct {
	lit string
	key string
}

// CompileTemplateNames parses names into TemplateNames.
// With no names, DefaultTemplateNames are used.
//
// Placeholders naming a key not in Keys, and braces that do not balance,
// are reported with ErrBadTemplateName.
func CompileTemplateNames(names ...string) (TemplateNames, error) {
	if len(names) == 0 {
		names = DefaultTemplateNames
	}

	tn := TemplateNames{names: make([]templateName, 0, len(names))}
	for _, raw := range names {
		parts, err := parseTemplateName(raw)
		if err != nil {
			return TemplateNames{}, err
		}

		tn.names = append(tn.names, templateName{raw: raw, parts: parts})
	}

	return tn, nil
}

// Expand fills in the placeholders of every name from c.
func (tn TemplateNames) Expand(c Context) []string {
	out := make([]string, len(tn.names))
	for i, name := range tn.names {
		var b strings.Builder
		for _, part := range name.parts {
			if part.key == "" {
				b.WriteString(part.lit)
				continue
			}

			v, _ := c.Get(part.key)
			if v == nil {
				b.WriteString(absent)
				continue
			}

			fmt.Fprint(&b, v)
		}

		out[i] = b.String()
	}

	return out
}

// Raw lists the names as configured.
func (tn TemplateNames) Raw() []string {
	out := make([]string, len(tn.names))
	for i, name := range tn.names {
		out[i] = name.raw
	}

	return out
}

func parseTemplateName(raw string) ([]namePart, error) {
	if raw == "" {
		return nil, fmt.Errorf("%w: empty", ErrBadTemplateName)
	}

	var (
		parts []namePart
		lit   strings.Builder
	)

	for i := 0; i < len(raw); i++ {
		switch ch := raw[i]; {
		case ch == '{' && i+1 < len(raw) && raw[i+1] == '{':
			lit.WriteByte('{')
			i++

		case ch == '}' && i+1 < len(raw) && raw[i+1] == '}':
			lit.WriteByte('}')
			i++

		case ch == '{':
			end := strings.IndexByte(raw[i+1:], '}')
			if end < 0 {
				return nil, fmt.Errorf("%w: unclosed { in %q", ErrBadTemplateName, raw)
			}

			key := raw[i+1 : i+1+end]
			if _, ok := (Context{}).Get(key); !ok {
				return nil, fmt.Errorf("%w: unknown placeholder {%s} in %q", ErrBadTemplateName, key, raw)
			}

			if lit.Len() > 0 {
				parts = append(parts, namePart{lit: lit.String()})
				lit.Reset()
			}

			parts = append(parts, namePart{key: key})
			i += end + 1

		case ch == '}':
			return nil, fmt.Errorf("%w: unmatched } in %q", ErrBadTemplateName, raw)

		default:
			lit.WriteByte(ch)
		}
	}

	if lit.Len() > 0 {
		parts = append(parts, namePart{lit: lit.String()})
	}

	return parts, nil
}
