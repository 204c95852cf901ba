package data

import (
	"encoding/json"
	"strings"

	"github.com/leengari/relalg/internal/domain/types"
)

// Tuple is an ordered sequence of values matching a table's schema.
// Tuples are treated as immutable once inserted.
type Tuple []types.Value

// Copy creates a shallow copy of the tuple to prevent mutation
func (t Tuple) Copy() Tuple {
	c := make(Tuple, len(t))
	copy(c, t)
	return c
}

// Equal reports component-wise equality of two tuples
func (t Tuple) Equal(o Tuple) bool {
	if len(t) != len(o) {
		return false
	}
	for i := range t {
		if t[i].Domain() != o[i].Domain() || !t[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// Extract returns the values at the given column positions
func (t Tuple) Extract(cols []int) Tuple {
	out := make(Tuple, len(cols))
	for j, c := range cols {
		out[j] = t[c]
	}
	return out
}

// Concat joins two tuples into a new one
func Concat(left, right Tuple) Tuple {
	out := make(Tuple, 0, len(left)+len(right))
	out = append(out, left...)
	return append(out, right...)
}

// Fingerprint encodes the tuple so that tuples equal under Equal
// always produce the same bytes
func (t Tuple) Fingerprint() []byte {
	var b []byte
	for _, v := range t {
		b = append(b, byte(v.Domain()))
		switch v.Domain() {
		case types.Float32, types.Float64:
			if v.Float64() == 0 {
				b = append(b, '0')
				break
			}
			b = append(b, v.String()...)
		default:
			b = append(b, v.String()...)
		}
		b = append(b, 0x1f)
	}
	return b
}

// String returns a string representation for debugging
func (t Tuple) String() string {
	parts := make([]string, len(t))
	for i, v := range t {
		parts[i] = v.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// MarshalJSON implements json.Marshaler interface
// This allows a Tuple to be exported as a JSON array of scalars
func (t Tuple) MarshalJSON() ([]byte, error) {
	vals := make([]any, len(t))
	for i, v := range t {
		vals[i] = v.Any()
	}
	return json.Marshal(vals)
}
