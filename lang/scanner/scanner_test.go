package scanner_test

import (
	"testing"

	"github.com/mna/talus/lang/scanner"
	"github.com/mna/talus/lang/token"
	"github.com/stretchr/testify/require"
)

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func TestScanTokens(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []token.Kind
	}{
		{"empty", "", []token.Kind{token.EOF}},
		{"punct", "(){},.-+;*%/", []token.Kind{
			token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE, token.COMMA,
			token.DOT, token.MINUS, token.PLUS, token.SEMI, token.STAR,
			token.PERCENT, token.SLASH, token.EOF,
		}},
		{"two char ops", "! != = == < <= > >=", []token.Kind{
			token.BANG, token.BANG_EQ, token.EQ, token.EQ_EQ, token.LT, token.LT_EQ,
			token.GT, token.GT_EQ, token.EOF,
		}},
		{"comment skipped", "1 // comment\n2", []token.Kind{token.NUMBER, token.NUMBER, token.EOF}},
		{"keywords", "and class else false fun for if nil or print return super this true var while",
			[]token.Kind{
				token.AND, token.CLASS, token.ELSE, token.FALSE, token.FUN, token.FOR,
				token.IF, token.NIL, token.OR, token.PRINT, token.RETURN, token.SUPER,
				token.THIS, token.TRUE, token.VAR, token.WHILE, token.EOF,
			}},
		{"identifier not keyword", "orchid", []token.Kind{token.IDENT, token.EOF}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			toks, err := scanner.ScanTokens([]byte(c.src))
			require.NoError(t, err)
			require.Equal(t, c.want, kinds(toks))
		})
	}
}

func TestScanNumbers(t *testing.T) {
	toks, err := scanner.ScanTokens([]byte("123 1.5"))
	require.NoError(t, err)
	require.Equal(t, 123.0, toks[0].Literal)
	require.Equal(t, 1.5, toks[1].Literal)
}

func TestScanString(t *testing.T) {
	toks, err := scanner.ScanTokens([]byte(`"hello world"`))
	require.NoError(t, err)
	require.Equal(t, "hello world", toks[0].Literal)
}

func TestScanMultilineString(t *testing.T) {
	toks, err := scanner.ScanTokens([]byte("\"a\nb\"\n1"))
	require.NoError(t, err)
	require.Equal(t, "a\nb", toks[0].Literal)
	// the NUMBER token after the multi-line string is on line 3
	require.Equal(t, 3, toks[1].Line)
}

func TestScanUnterminatedString(t *testing.T) {
	_, err := scanner.ScanTokens([]byte("\"abc"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "Unterminated string starting at line [1].")
}

func TestScanUnexpectedCharacter(t *testing.T) {
	_, err := scanner.ScanTokens([]byte("1 @ 2"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "Unexpected character")
}

func TestScanAccumulatesAllErrors(t *testing.T) {
	_, err := scanner.ScanTokens([]byte("@ # $"))
	require.Error(t, err)
	el, ok := err.(*scanner.ErrorList)
	require.True(t, ok)
	require.Equal(t, 3, el.Len())
}
