// Package conversions turns primitive numbers into fixed-width big-endian
// byte arrays (two's complement for integers, IEEE-754 for floats) and back.
package conversions

import (
	"encoding/binary"
	"math"
)

// ByteOrder is the byte order used for every encoded primitive
var ByteOrder = binary.BigEndian

func Short2Bytes(v int16) []byte {
	b := make([]byte, 2)
	ByteOrder.PutUint16(b, uint16(v))
	return b
}

func Int2Bytes(v int32) []byte {
	b := make([]byte, 4)
	ByteOrder.PutUint32(b, uint32(v))
	return b
}

func Long2Bytes(v int64) []byte {
	b := make([]byte, 8)
	ByteOrder.PutUint64(b, uint64(v))
	return b
}

func Float2Bytes(v float32) []byte {
	b := make([]byte, 4)
	ByteOrder.PutUint32(b, math.Float32bits(v))
	return b
}

func Double2Bytes(v float64) []byte {
	b := make([]byte, 8)
	ByteOrder.PutUint64(b, math.Float64bits(v))
	return b
}

func Bytes2Short(b []byte) int16   { return int16(ByteOrder.Uint16(b)) }
func Bytes2Int(b []byte) int32     { return int32(ByteOrder.Uint32(b)) }
func Bytes2Long(b []byte) int64    { return int64(ByteOrder.Uint64(b)) }
func Bytes2Float(b []byte) float32 { return math.Float32frombits(ByteOrder.Uint32(b)) }
func Bytes2Double(b []byte) float64 {
	return math.Float64frombits(ByteOrder.Uint64(b))
}
