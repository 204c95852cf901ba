package condition

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leengari/relalg/internal/domain/errors"
)

// Postfix is a condition in reverse-Polish order, e.g.
// "1979 < year & year < 1990" -> [1979 year < year 1990 < &].
// A nil Postfix is the empty condition and matches every tuple.
type Postfix []string

// Compile translates an infix condition into postfix.
// The accepted grammar has no parentheses:
//
//	operand CMP operand ( (&||) operand CMP operand )*
//
// Clauses are combined left to right with no precedence between & and |,
// so "a & b | c" means "(a & b) | c". A blank condition compiles to nil.
func Compile(condition string) (Postfix, error) {
	tokens := Tokenize(condition)
	if len(tokens) == 0 {
		return nil, nil
	}

	if err := validate(tokens); err != nil {
		return nil, &errors.ConditionError{Condition: condition, Reason: err.Error()}
	}

	postfix := make(Postfix, 0, len(tokens))
	postfix = append(postfix, tokens[0].Literal, tokens[2].Literal, tokens[1].Literal)
	for i := 3; i < len(tokens); i += 4 {
		boolOp, lhs, cmp, rhs := tokens[i], tokens[i+1], tokens[i+2], tokens[i+3]
		postfix = append(postfix, lhs.Literal, rhs.Literal, cmp.Literal, boolOp.Literal)
	}
	return postfix, nil
}

// validate checks the flat clause structure of the token stream
func validate(tokens []Token) error {
	if len(tokens)%4 != 3 {
		return fmt.Errorf("expected clauses of the form 'operand op operand' joined by & or |, got %d tokens", len(tokens))
	}
	for i, tok := range tokens {
		var want TokenType
		switch i % 4 {
		case 0, 2:
			want = OPERAND
		case 1:
			want = COMPARISON
		case 3:
			if tok.Type != AND && tok.Type != OR {
				return fmt.Errorf("token %d %q: expected & or |", tok.Pos, tok.Literal)
			}
			continue
		}
		if tok.Type != want {
			return fmt.Errorf("token %d %q: expected %s, got %s", tok.Pos, tok.Literal, want, tok.Type)
		}
	}
	return nil
}

// Operands returns the two operands of the first clause
func (p Postfix) Operands() (lhs, rhs string, ok bool) {
	if len(p) < 3 {
		return "", "", false
	}
	return p[0], p[1], true
}

// Unqualify rewrites qualified attribute references such as "s.name"
// into the "s_name" form used for disambiguated join attributes.
// Numeric literals keep their decimal point.
func (p Postfix) Unqualify() Postfix {
	if p == nil {
		return nil
	}
	out := make(Postfix, len(p))
	for i, tok := range p {
		out[i] = tok
		if LookupOperator(tok) != OPERAND || !strings.Contains(tok, ".") {
			continue
		}
		if _, err := strconv.ParseFloat(tok, 64); err == nil {
			continue
		}
		out[i] = strings.Replace(tok, ".", "_", 1)
	}
	return out
}

func (p Postfix) String() string {
	return strings.Join(p, " ")
}
