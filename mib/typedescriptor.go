package mib

// BaseKind enumerates the discriminant of a TypeDescriptor: the
// SMI primitive bases, the two structured forms (SEQUENCE, SEQUENCE OF),
// CHOICE (ASN.1 structure used by some macro attribute types), and
// REFERENCED for a not-yet-resolved type reference.
type BaseKind int

const (
	KindInteger BaseKind = iota
	KindOctetString
	KindBitString
	KindBits
	KindObjectIdentifier
	KindNull
	KindSequence
	KindSequenceOf
	KindChoice
	KindReferenced
)

func (k BaseKind) String() string {
	switch k {
	case KindInteger:
		return "INTEGER"
	case KindOctetString:
		return "OCTET STRING"
	case KindBitString:
		return "BIT STRING"
	case KindBits:
		return "BITS"
	case KindObjectIdentifier:
		return "OBJECT IDENTIFIER"
	case KindNull:
		return "NULL"
	case KindSequence:
		return "SEQUENCE"
	case KindSequenceOf:
		return "SEQUENCE OF"
	case KindChoice:
		return "CHOICE"
	case KindReferenced:
		return "REFERENCED"
	default:
		return "UNKNOWN"
	}
}

// NamedNumber pairs an enumeration value with its declared name, as in
// INTEGER { up(1), down(2) }.
type NamedNumber struct {
	Name   string
	Number int64
}

// NamedBit pairs a BITS position with its declared name.
type NamedBit struct {
	Name     string
	Position uint32
}

// Field is one named member of a SEQUENCE or CHOICE, in declaration order.
type Field struct {
	Name string
	Type *TypeDescriptor
}

// TypeDescriptor is a discriminated record describing an SMI type, built
// from the type productions in the grammar. Only the fields relevant to
// Base are meaningful; the rest are left at their zero value.
type TypeDescriptor struct {
	Base BaseKind

	// KindInteger (named-number enumeration).
	Names []NamedNumber

	// KindBits.
	Bits []NamedBit

	// Value-range or size constraint, valid for INTEGER, OCTET STRING,
	// BIT STRING, and SEQUENCE OF (applies to the outer length).
	Constraints *Constraint

	// KindSequenceOf: the element type.
	Inner *TypeDescriptor

	// KindSequence, KindChoice: ordered member list.
	Fields []Field

	// KindReferenced: the referenced type's Symbol, not yet inlined. A
	// REFERENCED TypeDescriptor is a placeholder; Store.ResolveType walks
	// the reference chain to the underlying primitive descriptor.
	Reference Symbol
}

// IsPrimitive reports whether Base is one of the SMI primitive kinds (as
// opposed to SEQUENCE, SEQUENCE OF, CHOICE, or REFERENCED).
func (t *TypeDescriptor) IsPrimitive() bool {
	switch t.Base {
	case KindInteger, KindOctetString, KindBitString, KindBits, KindObjectIdentifier, KindNull:
		return true
	default:
		return false
	}
}

// EnumName returns the declared name for n in a named-number enumeration,
// if Base is KindInteger and n matches one of Names.
func (t *TypeDescriptor) EnumName(n int64) (string, bool) {
	for _, nn := range t.Names {
		if nn.Number == n {
			return nn.Name, true
		}
	}
	return "", false
}

// BitPosition returns the declared bit position for name in a BITS type.
func (t *TypeDescriptor) BitPosition(name string) (uint32, bool) {
	for _, b := range t.Bits {
		if b.Name == name {
			return b.Position, true
		}
	}
	return 0, false
}
