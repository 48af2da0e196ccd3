package envfile

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Basic(t *testing.T) {
	doc, err := Parse("A=1\nB=2\n# comment\n\nC=3\n")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"A": "1", "B": "2", "C": "3"}, doc.SecretMap())
	assert.Equal(t, []string{"comment"}, doc.Comments)
}

func TestParse_DuplicateKeyLastWins(t *testing.T) {
	doc, err := Parse("A=1\nA=2\n")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"A": "2"}, doc.SecretMap())
	assert.Equal(t, 1, doc.Len())
}

func TestParse_EmptyKeyIgnored(t *testing.T) {
	doc, err := Parse("=value\n  =other\nA=1\n")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"A": "1"}, doc.SecretMap())
}

func TestParse_MissingSeparator(t *testing.T) {
	_, err := Parse("A=1\nKEYVALUE\nB=2\n")
	require.Error(t, err)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 2, perr.Line)
	assert.Equal(t, KindMissingSeparator, perr.Kind)
}

func TestParse_SkipInvalid(t *testing.T) {
	doc, err := ParseWith("A=1\nKEYVALUE\nB=2\n", Options{SkipInvalid: true})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"A": "1", "B": "2"}, doc.SecretMap())
}

func TestParse_InvalidUTF8(t *testing.T) {
	_, err := Parse("A=1\nB=\xff\xfe\n")
	require.Error(t, err)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, KindEncoding, perr.Kind)
	assert.Equal(t, 2, perr.Line)

	// Encoding failures abort even in skip mode.
	_, err = ParseWith("A=\xff\n", Options{SkipInvalid: true})
	require.Error(t, err)
}

func TestParse_ValueWithEquals(t *testing.T) {
	doc, err := Parse("URL=postgres://u:p@host:5432/db?sslmode=require\n")
	require.NoError(t, err)

	assert.Equal(t, "postgres://u:p@host:5432/db?sslmode=require", doc.SecretMap()["URL"])
}

func TestParse_Quoting(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"double quotes stripped", `A="hello world"`, "hello world"},
		{"single quotes stripped", `A='hello world'`, "hello world"},
		{"empty double quotes", `A=""`, ""},
		{"lone quote kept", `A="`, `"`},
		{"mismatched quotes kept", `A="hello'`, `"hello'`},
		{"quotes not surrounding kept", `A="a"b`, `"a"b`},
		{"escaped newline", `A="line1\nline2"`, "line1\nline2"},
		{"escaped quote", `A="say \"hi\""`, `say "hi"`},
		{"escaped backslash", `A="c:\\temp"`, `c:\temp`},
		{"single quotes literal", `A='no\nescape'`, `no\nescape`},
		{"whitespace preserved inside quotes", `A="  padded  "`, "  padded  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, doc.SecretMap()["A"])
		})
	}
}

func TestParse_InlineComments(t *testing.T) {
	doc, err := Parse("A=1 # the first\nB=\"two\" # quoted\nC=no#comment\n")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"A": "1", "B": "two", "C": "no#comment"}, doc.SecretMap())
	assert.Equal(t, "the first", doc.Entries[0].Comment)
	assert.Equal(t, "quoted", doc.Entries[1].Comment)
	assert.Equal(t, "", doc.Entries[2].Comment)
}

func TestParse_WhitespaceTrimming(t *testing.T) {
	doc, err := Parse("  KEY  =  value  \n")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"KEY": "value"}, doc.SecretMap())
}

func TestParse_CRLF(t *testing.T) {
	doc, err := Parse("A=1\r\nB=2\r\n")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"A": "1", "B": "2"}, doc.SecretMap())
}

func TestSerialize_SortedKeys(t *testing.T) {
	doc, err := Parse("B=2\nC=3\nA=1\n")
	require.NoError(t, err)

	assert.Equal(t, "A=1\nB=2\nC=3\n", doc.Serialize())
}

func TestSerialize_Deterministic(t *testing.T) {
	doc := FromMap(map[string]string{"Z": "26", "A": "1", "M": "13"})

	first := doc.Serialize()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, doc.Serialize())
	}
	assert.Equal(t, "A=1\nM=13\nZ=26\n", first)
}

func TestSerialize_QuotesUnsafeValues(t *testing.T) {
	doc := FromMap(map[string]string{
		"EQ":    "a=b",
		"HASH":  "a#b",
		"PAD":   " padded ",
		"NL":    "line1\nline2",
		"PLAIN": "simple",
	})
	out := doc.Serialize()

	assert.Contains(t, out, `EQ="a=b"`)
	assert.Contains(t, out, `HASH="a#b"`)
	assert.Contains(t, out, `PAD=" padded "`)
	assert.Contains(t, out, `NL="line1\nline2"`)
	assert.Contains(t, out, "PLAIN=simple")
}

func TestSerialize_EmptyValueWithInlineComment(t *testing.T) {
	doc, err := Parse("K=\"\" # note\n")
	require.NoError(t, err)
	assert.Equal(t, "", doc.Entries[0].Value)
	assert.Equal(t, "note", doc.Entries[0].Comment)

	// The empty value must stay quoted so the comment doesn't become
	// the value when the output is parsed again.
	out := doc.Serialize()
	assert.Equal(t, "K=\"\" # note\n", out)

	reparsed, err := Parse(out)
	require.NoError(t, err)
	assert.Equal(t, "", reparsed.SecretMap()["K"])
	assert.Equal(t, "note", reparsed.Entries[0].Comment)
}

func TestSerialize_PreservesComments(t *testing.T) {
	doc, err := Parse("# header\nB=2\nA=1 # inline\n")
	require.NoError(t, err)

	assert.Equal(t, "# header\nA=1 # inline\nB=2\n", doc.Serialize())
}

func TestRoundTrip_Law(t *testing.T) {
	inputs := []string{
		"A=1\nB=2\n",
		"# comment\nKEY=value with spaces\n\nOTHER=\"quoted = value\"\n",
		"EMPTY=\nX=y # note\n",
		"K=\"\" # note\n",
		"URL=https://example.com?a=1&b=2\n",
	}

	for _, input := range inputs {
		doc, err := Parse(input)
		require.NoError(t, err)

		reparsed, err := Parse(doc.Serialize())
		require.NoError(t, err)

		assert.Equal(t, doc.SecretMap(), reparsed.SecretMap(), "input %q", input)
	}
}

func TestRoundTrip_FromMapRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	const keyChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_"
	const valChars = "abcdefghijklmnopqrstuvwxyz0123456789 =#\"'\\\n\t-_./:@$"

	randString := func(chars string, max int) string {
		n := rng.Intn(max)
		var b strings.Builder
		for i := 0; i < n; i++ {
			b.WriteByte(chars[rng.Intn(len(chars))])
		}
		return b.String()
	}

	for round := 0; round < 200; round++ {
		m := make(map[string]string)
		for i := 0; i < rng.Intn(20); i++ {
			key := "K" + randString(keyChars, 30)
			m[key] = randString(valChars, 60)
		}

		doc, err := Parse(FromMap(m).Serialize())
		require.NoError(t, err, "round %d map %#v", round, m)
		assert.Equal(t, m, doc.SecretMap(), "round %d", round)
	}
}

func TestParse_NeverPanicsOnRandomBytes(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for round := 0; round < 500; round++ {
		buf := make([]byte, rng.Intn(256))
		rng.Read(buf)

		// Both strict and permissive modes must return, never abort.
		_, _ = Parse(string(buf))
		_, _ = ParseWith(string(buf), Options{SkipInvalid: true})
	}
}

func TestIsEnvFile(t *testing.T) {
	assert.True(t, IsEnvFile(".env"))
	assert.True(t, IsEnvFile("config/.env.local"))
	assert.True(t, IsEnvFile("production.env"))
	assert.False(t, IsEnvFile("main.go"))
	assert.False(t, IsEnvFile("environment.txt"))
}
