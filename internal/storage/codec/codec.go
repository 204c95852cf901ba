package codec

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/leengari/relalg/internal/domain/data"
	"github.com/leengari/relalg/internal/domain/errors"
	"github.com/leengari/relalg/internal/domain/types"
	"github.com/leengari/relalg/internal/util/conversions"
)

// ===========================================================================
// RECORD FORMAT
// ===========================================================================
//
// A record is the concatenation of one fixed-width field per attribute,
// in schema order. Numbers are big-endian; every field is zero-padded to
// its domain width:
//
//   Int16   4 bytes  [2-byte value][2 zero bytes]
//   Int32   4 bytes
//   Float32 4 bytes  IEEE-754
//   Int64   8 bytes
//   Float64 8 bytes  IEEE-754
//   Char    2 bytes  UTF-8, zero padded
//   Str    64 bytes  raw UTF-8, zero padded, at most 63 bytes of text
//
// ===========================================================================

// RecordSize returns the packed size of a tuple over the given domains
func RecordSize(domains []types.Domain) int {
	s := 0
	for _, d := range domains {
		s += d.Width()
	}
	return s
}

// Pack encodes tup into a record of exactly RecordSize(domains) bytes
func Pack(domains []types.Domain, tup data.Tuple) ([]byte, error) {
	if len(tup) != len(domains) {
		return nil, &errors.PackError{
			Column: "tuple",
			Reason: fmt.Sprintf("expected %d values, got %d", len(domains), len(tup)),
		}
	}

	record := make([]byte, RecordSize(domains))
	pos := 0
	for j, d := range domains {
		v := tup[j]
		if v.Domain() != d {
			return nil, &errors.PackError{
				Column: fmt.Sprintf("#%d", j),
				Reason: fmt.Sprintf("value %v is %s, schema says %s", v, v.Domain(), d),
			}
		}

		b, err := encodeField(v)
		if err != nil {
			return nil, &errors.PackError{Column: fmt.Sprintf("#%d", j), Reason: err.Error()}
		}

		// remaining bytes of the field stay zero
		copy(record[pos:pos+d.Width()], b)
		pos += d.Width()
	}
	return record, nil
}

// Unpack decodes a record produced by Pack
func Unpack(domains []types.Domain, record []byte) (data.Tuple, error) {
	if len(record) != RecordSize(domains) {
		return nil, fmt.Errorf("unpack: record is %d bytes, expected %d", len(record), RecordSize(domains))
	}

	tup := make(data.Tuple, len(domains))
	pos := 0
	for j, d := range domains {
		field := record[pos : pos+d.Width()]
		pos += d.Width()

		switch d {
		case types.Int16:
			tup[j] = types.Short(conversions.Bytes2Short(field[:2]))
		case types.Int32:
			tup[j] = types.Int(conversions.Bytes2Int(field))
		case types.Int64:
			tup[j] = types.Long(conversions.Bytes2Long(field))
		case types.Float32:
			tup[j] = types.Float(conversions.Bytes2Float(field))
		case types.Float64:
			tup[j] = types.Double(conversions.Bytes2Double(field))
		case types.Char:
			text := bytes.TrimRight(field, "\x00")
			if len(text) == 0 {
				tup[j] = types.Character(0)
				continue
			}
			r, _ := utf8.DecodeRune(text)
			tup[j] = types.Character(r)
		case types.Str:
			n := bytes.IndexByte(field, 0)
			if n < 0 {
				n = len(field)
			}
			tup[j] = types.String(string(field[:n]))
		default:
			return nil, fmt.Errorf("unpack: unsupported domain %d at #%d", int(d), j)
		}
	}
	return tup, nil
}

func encodeField(v types.Value) ([]byte, error) {
	switch v.Domain() {
	case types.Int16:
		return conversions.Short2Bytes(v.Int16()), nil
	case types.Int32:
		return conversions.Int2Bytes(v.Int32()), nil
	case types.Int64:
		return conversions.Long2Bytes(v.Int64()), nil
	case types.Float32:
		return conversions.Float2Bytes(v.Float32()), nil
	case types.Float64:
		return conversions.Double2Bytes(v.Float64()), nil
	case types.Char:
		r := v.Rune()
		if r == 0 {
			return nil, nil
		}
		if utf8.RuneLen(r) < 0 || utf8.RuneLen(r) > types.Char.Width() {
			return nil, fmt.Errorf("character %q needs more than %d bytes", r, types.Char.Width())
		}
		return []byte(string(r)), nil
	case types.Str:
		b := []byte(v.Str())
		if len(b) > types.StrWidth-1 {
			return nil, fmt.Errorf("string is %d bytes, at most %d fit", len(b), types.StrWidth-1)
		}
		if bytes.IndexByte(b, 0) >= 0 {
			return nil, fmt.Errorf("string contains a zero byte")
		}
		return b, nil
	}
	return nil, fmt.Errorf("unsupported domain %d", int(v.Domain()))
}
