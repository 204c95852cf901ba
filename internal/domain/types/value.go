package types

import (
	"cmp"
	"fmt"
	"strconv"
	"unicode/utf8"
)

// Value is a tagged scalar. The zero Value is an Int16 zero.
type Value struct {
	domain Domain
	i      int64
	f      float64
	s      string
}

func Short(v int16) Value   { return Value{domain: Int16, i: int64(v)} }
func Int(v int32) Value     { return Value{domain: Int32, i: int64(v)} }
func Long(v int64) Value    { return Value{domain: Int64, i: v} }
func Float(v float32) Value { return Value{domain: Float32, f: float64(v)} }
func Double(v float64) Value {
	return Value{domain: Float64, f: v}
}
func Character(v rune) Value { return Value{domain: Char, i: int64(v)} }
func String(v string) Value  { return Value{domain: Str, s: v} }

// Domain returns the runtime type tag of the value
func (v Value) Domain() Domain {
	return v.domain
}

func (v Value) Int16() int16     { return int16(v.i) }
func (v Value) Int32() int32     { return int32(v.i) }
func (v Value) Int64() int64     { return v.i }
func (v Value) Float32() float32 { return float32(v.f) }
func (v Value) Float64() float64 { return v.f }
func (v Value) Rune() rune       { return rune(v.i) }
func (v Value) Str() string      { return v.s }

// Any unwraps the value into the matching Go scalar
func (v Value) Any() any {
	switch v.domain {
	case Int16:
		return int16(v.i)
	case Int32:
		return int32(v.i)
	case Int64:
		return v.i
	case Float32:
		return float32(v.f)
	case Float64:
		return v.f
	case Char:
		return string(rune(v.i))
	default:
		return v.s
	}
}

// String renders the value the way it appears in conditions and printouts
func (v Value) String() string {
	switch v.domain {
	case Int16, Int32, Int64:
		return strconv.FormatInt(v.i, 10)
	case Float32:
		return strconv.FormatFloat(v.f, 'g', -1, 32)
	case Float64:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case Char:
		return string(rune(v.i))
	default:
		return v.s
	}
}

// Equal reports order-equality of two values
func (v Value) Equal(o Value) bool {
	c, err := Compare(v, o)
	return err == nil && c == 0
}

// Compare orders two values by their natural order.
// Values of the same domain always compare. Numeric values of different
// domains are promoted; Char and Str compare by their text.
func Compare(a, b Value) (int, error) {
	switch {
	case a.domain == b.domain:
		switch a.domain {
		case Int16, Int32, Int64, Char:
			return cmp.Compare(a.i, b.i), nil
		case Float32, Float64:
			return cmp.Compare(a.f, b.f), nil
		default:
			return cmp.Compare(a.s, b.s), nil
		}
	case a.domain.Numeric() && b.domain.Numeric():
		if isInteger(a.domain) && isInteger(b.domain) {
			return cmp.Compare(a.i, b.i), nil
		}
		return cmp.Compare(a.number(), b.number()), nil
	case isText(a.domain) && isText(b.domain):
		return cmp.Compare(a.String(), b.String()), nil
	}
	return 0, fmt.Errorf("cannot compare %s with %s", a.domain, b.domain)
}

// Parse converts a literal token into a value of domain d
func Parse(d Domain, literal string) (Value, error) {
	switch d {
	case Int16:
		n, err := strconv.ParseInt(literal, 10, 16)
		if err != nil {
			return Value{}, fmt.Errorf("parse %q as %s: %w", literal, d, err)
		}
		return Short(int16(n)), nil
	case Int32:
		n, err := strconv.ParseInt(literal, 10, 32)
		if err != nil {
			return Value{}, fmt.Errorf("parse %q as %s: %w", literal, d, err)
		}
		return Int(int32(n)), nil
	case Int64:
		n, err := strconv.ParseInt(literal, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("parse %q as %s: %w", literal, d, err)
		}
		return Long(n), nil
	case Float32:
		f, err := strconv.ParseFloat(literal, 32)
		if err != nil {
			return Value{}, fmt.Errorf("parse %q as %s: %w", literal, d, err)
		}
		return Float(float32(f)), nil
	case Float64:
		f, err := strconv.ParseFloat(literal, 64)
		if err != nil {
			return Value{}, fmt.Errorf("parse %q as %s: %w", literal, d, err)
		}
		return Double(f), nil
	case Char:
		r, size := utf8.DecodeRuneInString(literal)
		if size == 0 || size != len(literal) || r == utf8.RuneError {
			return Value{}, fmt.Errorf("parse %q as %s: want exactly one character", literal, d)
		}
		return Character(r), nil
	case Str:
		return String(literal), nil
	}
	return Value{}, fmt.Errorf("parse %q: unsupported domain %d", literal, int(d))
}

func (v Value) number() float64 {
	if isInteger(v.domain) {
		return float64(v.i)
	}
	return v.f
}

func isInteger(d Domain) bool {
	return d == Int16 || d == Int32 || d == Int64
}

func isText(d Domain) bool {
	return d == Char || d == Str
}
