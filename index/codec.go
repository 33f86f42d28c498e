// Package index implements the index resolver: given a row Symbol's
// declared INDEX list and a raw numeric OID suffix, it walks the index in
// order, consulting the [mib.Store] for each member's syntax and the
// constraint engine ([mib.Constraint]) for how many sub-identifiers it
// occupies, and hands the extracted content to an external primitive-codec
// capability keyed by SMI base type name. The resolver knows nothing about
// how a primitive is actually represented; [Codec] is the entire contract.
package index

import "github.com/BabisK/snmpcodec/mib"

// Codec is the external primitive-codec capability contract the resolver
// depends on: decode a content fragment into a value, and optionally
// describe the implicit constraint governing how much of the OID that
// fragment should consume. The core ships no trusted implementation of
// this — see the sibling codec package for a reference one backed by
// gosnmp's wire-type tags.
type Codec interface {
	// Decode converts an already-extracted content fragment (the
	// sub-identifiers the constraint engine assigned to this index member)
	// into a value.
	Decode(content []int64) (mib.Value, error)

	// DescribeConstraint supplies a Constraint to govern extraction when
	// the declared type carries none of its own — e.g. a bare "OCTET
	// STRING" index with no SIZE clause still has the conventional
	// implicit length-prefixed encoding every SMI primitive of that shape
	// uses. Returns ok=false when the codec has no opinion and a single
	// trailing element should be consumed instead.
	DescribeConstraint() (c *mib.Constraint, ok bool)
}

// Registry maps an SMI base type name (INTEGER, Unsigned32, Counter32,
// Counter64, Gauge32, IpAddress, OctetString, BitString, ObjectIdentifier,
// Opaque, TimeTicks, Null) to the Codec that decodes it.
type Registry map[string]Codec

// Lookup returns the Codec registered for name, or ErrUnknownSMIType.
func (r Registry) Lookup(name string) (Codec, error) {
	if c, ok := r[name]; ok {
		return c, nil
	}
	return nil, &mib.CompileError{Err: mib.ErrUnknownSMIType, Detail: name}
}
