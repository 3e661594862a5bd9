package wire

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

func (f Field) expect(t protowire.Type) error {
	if f.Type != t {
		return fmt.Errorf("%w: field %d: got wire type %d want %d", ErrFieldTypeMismatch, f.Num, f.Type, t)
	}
	return nil
}

// Uint32 returns the field value as uint32.
func (f Field) Uint32() (uint32, error) {
	if err := f.expect(protowire.VarintType); err != nil {
		return 0, err
	}
	return uint32(f.Varint), nil
}

// Int32 returns the field value as int32.
func (f Field) Int32() (int32, error) {
	if err := f.expect(protowire.VarintType); err != nil {
		return 0, err
	}
	return int32(f.Varint), nil
}

// Int64 returns the field value as int64.
func (f Field) Int64() (int64, error) {
	if err := f.expect(protowire.VarintType); err != nil {
		return 0, err
	}
	return int64(f.Varint), nil
}

// Enum returns the field value as an enum number.
func (f Field) Enum() (int32, error) {
	return f.Int32()
}

// Bool returns the field value as bool.
func (f Field) Bool() (bool, error) {
	if err := f.expect(protowire.VarintType); err != nil {
		return false, err
	}
	return protowire.DecodeBool(f.Varint), nil
}

// Double returns the field value as float64.
func (f Field) Double() (float64, error) {
	if err := f.expect(protowire.Fixed64Type); err != nil {
		return 0, err
	}
	return math.Float64frombits(f.Fixed64), nil
}

// String returns the field value as string.
func (f Field) String() (string, error) {
	if err := f.expect(protowire.BytesType); err != nil {
		return "", err
	}
	return string(f.Value), nil
}

// Bytes returns a copy of the field value.
func (f Field) Bytes() ([]byte, error) {
	if err := f.expect(protowire.BytesType); err != nil {
		return nil, err
	}
	buf := make([]byte, len(f.Value))
	copy(buf, f.Value)
	return buf, nil
}

// Varints returns the values of a repeated varint field occurrence, which
// may be packed (one length-delimited run) or unpacked (one varint).
func (f Field) Varints() ([]uint64, error) {
	switch f.Type {
	case protowire.VarintType:
		return []uint64{f.Varint}, nil
	case protowire.BytesType:
		out := make([]uint64, 0, len(f.Value))
		for b := f.Value; len(b) > 0; {
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, fmt.Errorf("%w: field %d: %v", ErrMalformed, f.Num, protowire.ParseError(n))
			}
			out = append(out, v)
			b = b[n:]
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: field %d: repeated varint in wire type %d", ErrFieldTypeMismatch, f.Num, f.Type)
	}
}
