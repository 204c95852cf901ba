package condition

import (
	"fmt"
	"strings"
)

type TokenType int

const (
	ILLEGAL TokenType = iota
	OPERAND           // attribute name or literal
	COMPARISON        // == != < <= > >=
	AND               // &
	OR                // |
)

var operators = map[string]TokenType{
	"==": COMPARISON,
	"!=": COMPARISON,
	"<":  COMPARISON,
	"<=": COMPARISON,
	">":  COMPARISON,
	">=": COMPARISON,
	"&":  AND,
	"|":  OR,
}

func (tt TokenType) String() string {
	switch tt {
	case OPERAND:
		return "OPERAND"
	case COMPARISON:
		return "COMPARISON"
	case AND:
		return "AND"
	case OR:
		return "OR"
	default:
		return "ILLEGAL"
	}
}

type Token struct {
	Type    TokenType
	Literal string
	Pos     int // 0-based token position in the condition
}

func (t Token) String() string {
	return fmt.Sprintf("Token(%s, %q)", t.Type, t.Literal)
}

// LookupOperator classifies a whitespace-delimited word
func LookupOperator(word string) TokenType {
	if tok, ok := operators[word]; ok {
		return tok
	}
	return OPERAND
}

// IsComparison reports whether word is a comparison operator
func IsComparison(word string) bool {
	return LookupOperator(word) == COMPARISON
}

// IsBoolean reports whether word is & or |
func IsBoolean(word string) bool {
	tt := LookupOperator(word)
	return tt == AND || tt == OR
}

// Tokenize splits a condition on whitespace. Quote characters are
// stripped from every word, so 'Star_Wars' and "Star_Wars" both
// become the operand Star_Wars.
func Tokenize(input string) []Token {
	words := strings.Fields(input)
	tokens := make([]Token, 0, len(words))
	for i, w := range words {
		w = quotes.Replace(w)
		tokens = append(tokens, Token{Type: LookupOperator(w), Literal: w, Pos: i})
	}
	return tokens
}

var quotes = strings.NewReplacer("'", "", `"`, "")
