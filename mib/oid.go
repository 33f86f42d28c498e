package mib

import (
	"fmt"
	"strconv"
	"strings"
)

// OidComponent is one element of an objectIdentifierValue: a bare
// integer, a bare Symbol, or a Symbol paired with an integer (the
// "name(n)" form). HasNumber distinguishes a bare symbol (false) from a
// numbered one; Name.IsZero distinguishes a bare number from a named one.
type OidComponent struct {
	Name      Symbol
	Number    uint32
	HasNumber bool
}

// NumberComponent builds a bare-integer OidComponent.
func NumberComponent(n uint32) OidComponent {
	return OidComponent{Number: n, HasNumber: true}
}

// NameComponent builds a bare-Symbol OidComponent.
func NameComponent(s Symbol) OidComponent {
	return OidComponent{Name: s}
}

// NamedNumberComponent builds a "name(n)" OidComponent.
func NamedNumberComponent(s Symbol, n uint32) OidComponent {
	return OidComponent{Name: s, Number: n, HasNumber: true}
}

// IsBareNumber reports whether this component carries only an integer.
func (c OidComponent) IsBareNumber() bool { return c.Name.IsZero() && c.HasNumber }

// IsBareName reports whether this component carries only a symbol.
func (c OidComponent) IsBareName() bool { return !c.Name.IsZero() && !c.HasNumber }

// IsNamedNumber reports whether this component carries both.
func (c OidComponent) IsNamedNumber() bool { return !c.Name.IsZero() && c.HasNumber }

func (c OidComponent) String() string {
	switch {
	case c.IsNamedNumber():
		return fmt.Sprintf("%s(%d)", c.Name.Name, c.Number)
	case c.IsBareName():
		return c.Name.Name
	default:
		return strconv.FormatUint(uint64(c.Number), 10)
	}
}

// OidPath is the declared (possibly symbolic) form of an objectIdentifierValue,
// as written in source. Store.NumericOid resolves it to a flat numeric OID.
type OidPath []OidComponent

func (p OidPath) String() string {
	parts := make([]string, len(p))
	for i, c := range p {
		parts[i] = c.String()
	}
	return "{ " + strings.Join(parts, " ") + " }"
}

// NumericOid is a fully-resolved, numeric object identifier.
type NumericOid []uint32

func (o NumericOid) String() string {
	parts := make([]string, len(o))
	for i, n := range o {
		parts[i] = strconv.FormatUint(uint64(n), 10)
	}
	return strings.Join(parts, ".")
}

// HasPrefix reports whether prefix's arcs are a leading subsequence of o.
func (o NumericOid) HasPrefix(prefix NumericOid) bool {
	if len(prefix) > len(o) {
		return false
	}
	for i := range prefix {
		if o[i] != prefix[i] {
			return false
		}
	}
	return true
}

// Suffix returns the arcs of o remaining after prefix, or nil if prefix is
// not a prefix of o.
func (o NumericOid) Suffix(prefix NumericOid) NumericOid {
	if !o.HasPrefix(prefix) {
		return nil
	}
	return o[len(prefix):]
}
