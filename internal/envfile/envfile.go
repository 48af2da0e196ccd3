package envfile

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

// ErrorKind classifies what went wrong on a line.
type ErrorKind int

const (
	// KindEncoding means the input contained bytes that are not valid UTF-8.
	KindEncoding ErrorKind = iota
	// KindMissingSeparator means a non-comment, non-blank line had no '='.
	KindMissingSeparator
)

// ParseError describes a structural problem in a .env file.
// Line is 1-based. The offending content is never included so that
// error messages cannot leak secret values.
type ParseError struct {
	Line int
	Kind ErrorKind
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case KindEncoding:
		return fmt.Sprintf("line %d: invalid UTF-8 encoding", e.Line)
	case KindMissingSeparator:
		return fmt.Sprintf("line %d: missing '=' separator", e.Line)
	default:
		return fmt.Sprintf("line %d: malformed line", e.Line)
	}
}

// Entry is a single KEY=VALUE pair, with an optional inline comment
// (text after a trailing "# ...", without the '#').
type Entry struct {
	Key     string
	Value   string
	Comment string
}

// Document is an ordered set of entries plus the standalone comment
// lines found in the source. A Document is built by Parse or FromMap
// and is not mutated afterwards; merging produces a new Document.
type Document struct {
	Entries  []Entry
	Comments []string
}

// Options configures parsing behavior.
type Options struct {
	// SkipInvalid continues past lines missing a '=' separator instead
	// of aborting on the first one. Encoding failures always abort.
	SkipInvalid bool
}

// Parse parses .env text with default options (abort on first error).
func Parse(text string) (*Document, error) {
	return ParseWith(text, Options{})
}

// ParseWith parses .env text according to opts.
func ParseWith(text string, opts Options) (*Document, error) {
	if !utf8.ValidString(text) {
		return nil, &ParseError{Line: invalidUTF8Line(text), Kind: KindEncoding}
	}

	doc := &Document{}
	index := make(map[string]int)

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lineNo := i + 1
		line = strings.TrimSuffix(line, "\r")
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, "#") {
			doc.Comments = append(doc.Comments, strings.TrimSpace(trimmed[1:]))
			continue
		}

		eq := strings.Index(trimmed, "=")
		if eq < 0 {
			if opts.SkipInvalid {
				continue
			}
			return nil, &ParseError{Line: lineNo, Kind: KindMissingSeparator}
		}

		key := strings.TrimSpace(trimmed[:eq])
		if key == "" {
			// Permissive policy: a line like "=value" is dropped, not an error.
			continue
		}

		value, comment := parseValue(strings.TrimSpace(trimmed[eq+1:]))

		if at, ok := index[key]; ok {
			// Last occurrence wins.
			doc.Entries[at].Value = value
			doc.Entries[at].Comment = comment
			continue
		}
		index[key] = len(doc.Entries)
		doc.Entries = append(doc.Entries, Entry{Key: key, Value: value, Comment: comment})
	}

	return doc, nil
}

// InvalidLines returns the 1-based line numbers of every line missing
// a '=' separator. Used by validation to report all problems in one
// pass instead of stopping at the first.
func InvalidLines(text string) []int {
	var lines []int
	for i, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if !strings.Contains(trimmed, "=") {
			lines = append(lines, i+1)
		}
	}
	return lines
}

// Load reads and parses the .env file at path with default options.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(data))
}

// SecretMap flattens the document into a key-value map, the common
// currency exchanged with the remote store.
func (d *Document) SecretMap() map[string]string {
	m := make(map[string]string, len(d.Entries))
	for _, e := range d.Entries {
		m[e.Key] = e.Value
	}
	return m
}

// Keys returns the document's keys in document order.
func (d *Document) Keys() []string {
	keys := make([]string, len(d.Entries))
	for i, e := range d.Entries {
		keys[i] = e.Key
	}
	return keys
}

// Len returns the number of entries.
func (d *Document) Len() int {
	return len(d.Entries)
}

// parseValue splits a raw right-hand side into value and inline comment,
// stripping surrounding quotes and decoding double-quote escapes.
func parseValue(raw string) (value, comment string) {
	if raw == "" {
		return "", ""
	}

	switch raw[0] {
	case '"':
		if v, rest, ok := scanDoubleQuoted(raw); ok && bareOrComment(rest) {
			return v, trailingComment(rest)
		}
	case '\'':
		if end := strings.IndexByte(raw[1:], '\''); end >= 0 && bareOrComment(raw[end+2:]) {
			return raw[1 : 1+end], trailingComment(raw[end+2:])
		}
	}

	// Unquoted: a '#' preceded by whitespace starts an inline comment.
	for i := 1; i < len(raw); i++ {
		if raw[i] == '#' && (raw[i-1] == ' ' || raw[i-1] == '\t') {
			return strings.TrimSpace(raw[:i]), strings.TrimSpace(raw[i+1:])
		}
	}
	return raw, ""
}

// scanDoubleQuoted consumes a leading double-quoted segment, decoding
// escapes. Returns ok=false when no closing quote exists, in which case
// the caller treats the raw text literally.
func scanDoubleQuoted(raw string) (value, rest string, ok bool) {
	var b strings.Builder
	i := 1
	for i < len(raw) {
		c := raw[i]
		if c == '\\' && i+1 < len(raw) {
			switch raw[i+1] {
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			default:
				b.WriteByte('\\')
				b.WriteByte(raw[i+1])
			}
			i += 2
			continue
		}
		if c == '"' {
			return b.String(), raw[i+1:], true
		}
		b.WriteByte(c)
		i++
	}
	return "", "", false
}

// bareOrComment reports whether the text after a closing quote is
// empty or an inline comment. Anything else means the quotes were not
// surrounding the whole value, so no stripping happens.
func bareOrComment(rest string) bool {
	rest = strings.TrimSpace(rest)
	return rest == "" || strings.HasPrefix(rest, "#")
}

func trailingComment(rest string) string {
	rest = strings.TrimSpace(rest)
	if strings.HasPrefix(rest, "#") {
		return strings.TrimSpace(rest[1:])
	}
	return ""
}

// invalidUTF8Line returns the 1-based line containing the first invalid
// byte sequence.
func invalidUTF8Line(text string) int {
	line := 1
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r == utf8.RuneError && size == 1 {
			return line
		}
		if r == '\n' {
			line++
		}
		i += size
	}
	return line
}
