package descriptor

import (
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	descriptorLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Digits", Pattern: `[0-9]+`},
		{Name: "Letters", Pattern: `[A-Za-z]+`},
		{Name: "Separator", Pattern: `[^0-9A-Za-z]+`},
	})

	digitsTokenType  = mustTokenType("Digits")
	lettersTokenType = mustTokenType("Letters")
)

func mustTokenType(name string) lexer.TokenType {
	tt, ok := descriptorLexer.Symbols()[name]
	if !ok {
		panic("descriptor lexer has no token type " + name)
	}
	return tt
}

// token is a lexed run of digits, letters or separator characters.
type token struct {
	kind  lexer.TokenType
	value string
}

func (t token) isDigits() bool  { return t.kind == digitsTokenType }
func (t token) isLetters() bool { return t.kind == lettersTokenType }

// tokenize splits a descriptor into maximal runs of digits, ASCII letters and
// everything else.
func tokenize(s string) ([]token, error) {
	lex, err := descriptorLexer.LexString("", s)
	if err != nil {
		return nil, err
	}
	raw, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, err
	}
	tokens := make([]token, 0, len(raw))
	for _, t := range raw {
		if t.EOF() {
			break
		}
		tokens = append(tokens, token{kind: t.Type, value: t.Value})
	}
	return tokens, nil
}
