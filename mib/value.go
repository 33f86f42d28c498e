package mib

import "math/big"

// IntWidth names the smallest signed integer width that holds a literal
// integer value. The Builder fits every INTEGER literal to the narrowest
// of byte/short/int/long before falling back to BigInteger.
type IntWidth int

const (
	WidthByte  IntWidth = iota // fits in 8 bits (7-bit magnitude + sign)
	WidthShort                 // fits in 16 bits
	WidthInt                   // fits in 32 bits
	WidthLong                  // fits in 64 bits
	WidthBig                   // does not fit in int64
)

func (w IntWidth) String() string {
	switch w {
	case WidthByte:
		return "byte"
	case WidthShort:
		return "short"
	case WidthInt:
		return "int"
	case WidthLong:
		return "long"
	case WidthBig:
		return "big-integer"
	default:
		return "unknown"
	}
}

// FitIntWidth returns the narrowest IntWidth that represents v.
func FitIntWidth(v int64) IntWidth {
	switch {
	case v >= -128 && v <= 127:
		return WidthByte
	case v >= -32768 && v <= 32767:
		return WidthShort
	case v >= -2147483648 && v <= 2147483647:
		return WidthInt
	default:
		return WidthLong
	}
}

// Value is the tagged union of terminal value forms a Builder can produce
// for a value assignment, a DEFVAL clause, or a macro attribute: an
// integer, a string, a boolean, an OID path, or a reference to another
// Symbol. Implementations are the exported types below, tagged by the
// unexported isValue method; callers type-switch on the concrete type.
type Value interface {
	isValue()
	String() string
}

// IntegerValue is an integer literal, fitted to its narrowest width. Small
// holds the value for every width except WidthBig, where Big is
// authoritative instead.
type IntegerValue struct {
	Width IntWidth
	Small int64
	Big   *big.Int
}

func (IntegerValue) isValue() {}

func (v IntegerValue) String() string {
	if v.Width == WidthBig && v.Big != nil {
		return v.Big.String()
	}
	return bigFromInt64(v.Small).String()
}

func bigFromInt64(v int64) *big.Int { return big.NewInt(v) }

// NewIntegerValue fits v to its narrowest width.
func NewIntegerValue(v int64) IntegerValue {
	return IntegerValue{Width: FitIntWidth(v), Small: v}
}

// NewBigIntegerValue wraps a value that overflows int64 (hex/binary strings
// longer than 64 bits, or decimal literals beyond int64 range).
func NewBigIntegerValue(v *big.Int) IntegerValue {
	if v.IsInt64() {
		return NewIntegerValue(v.Int64())
	}
	return IntegerValue{Width: WidthBig, Big: v}
}

// StringValue is a quoted-string literal as text. Hex and binary string
// literals become IntegerValue instead.
type StringValue string

func (StringValue) isValue()         {}
func (v StringValue) String() string { return string(v) }

// BooleanValue is TRUE/FALSE.
type BooleanValue bool

func (BooleanValue) isValue() {}
func (v BooleanValue) String() string {
	if v {
		return "TRUE"
	}
	return "FALSE"
}

// OidPathValue is an objectIdentifierValue literal, e.g. "{ 1 3 6 1 }".
type OidPathValue struct {
	Path OidPath
}

func (OidPathValue) isValue()         {}
func (v OidPathValue) String() string { return v.Path.String() }

// ReferenceValue names another symbol whose own value should be used in
// its place (a bare-identifier value reference, e.g. DEFVAL { someEnum }).
type ReferenceValue struct {
	Symbol Symbol
}

func (ReferenceValue) isValue()         {}
func (v ReferenceValue) String() string { return v.Symbol.String() }
