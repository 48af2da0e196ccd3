package envfile

import (
	"sort"
	"strings"
)

// Serialize renders the document as .env text. Keys are written in
// lexicographic order so output is deterministic regardless of the
// order entries were parsed or added in. Standalone comments are
// emitted as a leading block.
func (d *Document) Serialize() string {
	entries := make([]Entry, len(d.Entries))
	copy(entries, d.Entries)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key < entries[j].Key
	})

	var b strings.Builder
	for _, c := range d.Comments {
		if c == "" {
			b.WriteString("#\n")
			continue
		}
		b.WriteString("# ")
		b.WriteString(c)
		b.WriteByte('\n')
	}

	for _, e := range entries {
		b.WriteString(e.Key)
		b.WriteByte('=')
		v := encodeValue(e.Value)
		if v == "" && e.Comment != "" {
			// An empty value ahead of an inline comment must be quoted,
			// or the comment text becomes the value on re-parse.
			v = `""`
		}
		b.WriteString(v)
		if e.Comment != "" {
			b.WriteString(" # ")
			b.WriteString(e.Comment)
		}
		b.WriteByte('\n')
	}

	return b.String()
}

// FromMap builds a document from a plain key-value map. Entries are
// stored sorted by key so the resulting document is deterministic.
func FromMap(m map[string]string) *Document {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	doc := &Document{Entries: make([]Entry, 0, len(keys))}
	for _, k := range keys {
		doc.Entries = append(doc.Entries, Entry{Key: k, Value: m[k]})
	}
	return doc
}

// encodeValue quotes values that would not survive a naive re-parse:
// embedded '=', '#', quotes, control characters, or leading/trailing
// whitespace.
func encodeValue(v string) string {
	if !needsQuoting(v) {
		return v
	}

	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(v); i++ {
		switch v[i] {
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		default:
			b.WriteByte(v[i])
		}
	}
	b.WriteByte('"')
	return b.String()
}

func needsQuoting(v string) bool {
	if v == "" {
		return false
	}
	if v != strings.TrimSpace(v) {
		return true
	}
	return strings.ContainsAny(v, "=#\"'\n\r\t\\")
}
