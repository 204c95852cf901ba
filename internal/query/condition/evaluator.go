package condition

import (
	"fmt"

	"github.com/leengari/relalg/internal/domain/data"
	"github.com/leengari/relalg/internal/domain/errors"
	"github.com/leengari/relalg/internal/domain/schema"
	"github.com/leengari/relalg/internal/domain/types"
)

// item is one stack slot: an operand word or a boolean result
type item struct {
	word   string
	result bool
	isBool bool
}

// Eval runs the postfix stream against tup, whose layout is described by s.
// The stream must reduce to exactly one boolean; anything else is reported
// as a ConditionError.
func (p Postfix) Eval(s *schema.Schema, tup data.Tuple) (bool, error) {
	if p == nil {
		return true, nil
	}

	stack := make([]item, 0, 4)
	pop := func() (item, error) {
		if len(stack) == 0 {
			return item{}, p.fail("stack underflow")
		}
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return top, nil
	}

	for _, tok := range p {
		switch LookupOperator(tok) {
		case COMPARISON:
			rhs, err := pop()
			if err != nil {
				return false, err
			}
			lhs, err := pop()
			if err != nil {
				return false, err
			}
			if lhs.isBool || rhs.isBool {
				return false, p.fail(fmt.Sprintf("%s applied to a boolean", tok))
			}

			a, b, err := p.resolve(s, tup, lhs.word, rhs.word)
			if err != nil {
				return false, err
			}
			ok, err := compare(a, tok, b)
			if err != nil {
				return false, p.fail(err.Error())
			}
			stack = append(stack, item{result: ok, isBool: true})

		case AND, OR:
			rhs, err := pop()
			if err != nil {
				return false, err
			}
			lhs, err := pop()
			if err != nil {
				return false, err
			}
			if !lhs.isBool || !rhs.isBool {
				return false, p.fail(fmt.Sprintf("%s applied to an operand", tok))
			}
			if tok == "&" {
				stack = append(stack, item{result: lhs.result && rhs.result, isBool: true})
			} else {
				stack = append(stack, item{result: lhs.result || rhs.result, isBool: true})
			}

		default:
			stack = append(stack, item{word: tok})
		}
	}

	if len(stack) != 1 || !stack[0].isBool {
		return false, p.fail(fmt.Sprintf("expected one boolean on the stack, found %d items", len(stack)))
	}
	return stack[0].result, nil
}

// resolve turns two operand words into comparable values. A word naming
// an attribute takes the tuple's value; a literal is parsed into the
// domain of the attribute on the other side. Char attributes compare
// through their text.
func (p Postfix) resolve(s *schema.Schema, tup data.Tuple, lhs, rhs string) (types.Value, types.Value, error) {
	lpos, lok := s.ColumnPos(lhs)
	rpos, rok := s.ColumnPos(rhs)

	switch {
	case lok && rok:
		return tup[lpos], tup[rpos], nil
	case rok:
		b := tup[rpos]
		a, err := p.literal(lhs, b)
		return a, b, err
	case lok:
		a := tup[lpos]
		b, err := p.literal(rhs, a)
		return a, b, err
	}
	return types.Value{}, types.Value{}, p.fail(fmt.Sprintf("neither %q nor %q names an attribute of %s", lhs, rhs, s.TableName))
}

func (p Postfix) literal(word string, against types.Value) (types.Value, error) {
	if against.Domain() == types.Char {
		return types.String(word), nil
	}
	v, err := types.Parse(against.Domain(), word)
	if err != nil {
		return types.Value{}, p.fail(err.Error())
	}
	return v, nil
}

// compare applies a comparison operator using the natural order of the values
func compare(a types.Value, op string, b types.Value) (bool, error) {
	c, err := types.Compare(a, b)
	if err != nil {
		return false, err
	}
	switch op {
	case "==":
		return c == 0, nil
	case "!=":
		return c != 0, nil
	case "<":
		return c < 0, nil
	case "<=":
		return c <= 0, nil
	case ">":
		return c > 0, nil
	case ">=":
		return c >= 0, nil
	}
	return false, fmt.Errorf("unexpected operator %q", op)
}

func (p Postfix) fail(reason string) error {
	return &errors.ConditionError{Condition: p.String(), Reason: reason}
}
