package index

import (
	"fmt"

	"github.com/BabisK/snmpcodec/mib"
)

// Value is one decoded member of an instance OID's index tuple, in the
// order declared by the row's INDEX clause.
type Value struct {
	// Symbol is the index member's own ObjectType symbol: an INDEX clause
	// is a list of Symbols, each pointing to another ObjectType.
	Symbol mib.Symbol
	// BaseType is the SMI base type name the codec registry was keyed by
	// to decode this member (e.g. "INTEGER", "IpAddress").
	BaseType string
	// Value is the decoded content.
	Value mib.Value
	// Name is the symbolic enumeration or BITS label for Value, when the
	// member's syntax declares named numbers or bit positions.
	Name string
	// Implied records whether the member was declared IMPLIED (the last
	// index of a variable-length type consuming the OID's remainder with
	// no runtime length octet).
	Implied bool
}

// Resolver walks a row's INDEX declaration against a Store and a codec
// Registry.
type Resolver struct {
	Store  *mib.Store
	Codecs Registry
}

// New builds a Resolver over store, decoding primitive content with codecs.
func New(store *mib.Store, codecs Registry) *Resolver {
	return &Resolver{Store: store, Codecs: codecs}
}

// Resolve decodes oid against row's declared INDEX list, returning the
// typed value for each member in declaration order. Every sub-identifier
// of oid must be consumed; leftover arcs after the last index member raise
// ErrTrailingIndex.
func (r *Resolver) Resolve(row mib.Symbol, oid mib.NumericOid) ([]Value, error) {
	entry, ok := r.Store.Resolve(row)
	if !ok || entry.Kind != mib.EntryObjectType {
		return nil, fmt.Errorf("%w: %s is not an OBJECT-TYPE row", mib.ErrUnknownSMIType, row)
	}
	items, ok := entry.ObjectType.Index()
	if !ok || len(items) == 0 {
		return nil, fmt.Errorf("%w: %s declares no INDEX", mib.ErrUnknownSMIType, row)
	}

	remaining := toInt64s(oid)
	out := make([]Value, 0, len(items))
	for i, item := range items {
		implied := item.Implied && i == len(items)-1
		val, rest, err := r.resolveOne(item.Symbol, remaining, implied)
		if err != nil {
			return nil, err
		}
		out = append(out, val)
		remaining = rest
	}
	if len(remaining) > 0 {
		return out, &mib.CompileError{
			Err:    mib.ErrTrailingIndex,
			Module: row.Module,
			Symbol: row.Name,
			Detail: fmt.Sprintf("%d unconsumed sub-identifier(s)", len(remaining)),
		}
	}
	return out, nil
}

func (r *Resolver) resolveOne(indexSym mib.Symbol, oid []int64, implied bool) (Value, []int64, error) {
	entry, ok := r.Store.Resolve(indexSym)
	if !ok || entry.Kind != mib.EntryObjectType {
		return Value{}, nil, fmt.Errorf("%w: %s is not an OBJECT-TYPE", mib.ErrUnknownSMIType, indexSym)
	}
	syntax, ok := entry.ObjectType.Syntax()
	if !ok {
		return Value{}, nil, fmt.Errorf("%w: %s has no SYNTAX", mib.ErrUnknownSMIType, indexSym)
	}

	chain, resolved, err := walkReferenceChain(r.Store, syntax)
	if err != nil {
		return Value{}, nil, err
	}

	codec, baseType, err := r.selectCodec(chain, resolved.Base)
	if err != nil {
		return Value{}, nil, err
	}

	constraint := syntax.Constraints
	if constraint == nil {
		constraint = resolved.Constraints
	}
	if constraint == nil {
		if c, ok := codec.DescribeConstraint(); ok {
			constraint = c
		}
	}

	var content, next []int64
	switch {
	case implied && constraint != nil && constraint.IsSize:
		content, next = oid, nil
	case constraint != nil:
		var ok bool
		content, next, ok = constraint.Extract(oid)
		if !ok {
			return Value{}, nil, &mib.CompileError{
				Err:    mib.ErrConstraintViolation,
				Module: indexSym.Module,
				Symbol: indexSym.Name,
			}
		}
	default:
		if len(oid) == 0 {
			return Value{}, nil, &mib.CompileError{
				Err:    mib.ErrConstraintViolation,
				Module: indexSym.Module,
				Symbol: indexSym.Name,
				Detail: "OID exhausted before this index",
			}
		}
		content, next = oid[:1], tail(oid, 1)
	}

	decoded, err := codec.Decode(content)
	if err != nil {
		return Value{}, nil, fmt.Errorf("%s: %w", indexSym, err)
	}

	name := symbolicName(resolved, content)
	return Value{Symbol: indexSym, BaseType: baseType, Value: decoded, Name: name, Implied: implied}, next, nil
}

// selectCodec tries each reference name in chain (most specific first,
// i.e. nearest to the declared syntax) before falling back to the fully
// resolved primitive's canonical SMI name.
func (r *Resolver) selectCodec(chain []string, base mib.BaseKind) (Codec, string, error) {
	for _, name := range chain {
		if c, ok := r.Codecs[name]; ok {
			return c, name, nil
		}
	}
	canonical := canonicalBaseName(base)
	c, err := r.Codecs.Lookup(canonical)
	if err != nil {
		return nil, "", err
	}
	return c, canonical, nil
}

// walkReferenceChain follows a TypeDescriptor's REFERENCED links one hop at
// a time (rather than [mib.Store.ResolveType]'s jump-to-primitive
// behavior), collecting every referenced Symbol's name along the way so
// the codec registry can be keyed by the most specific declared name
// (e.g. "Unsigned32"), not just the underlying ASN.1 base kind.
func walkReferenceChain(store *mib.Store, td *mib.TypeDescriptor) (chain []string, resolved *mib.TypeDescriptor, err error) {
	cur := td
	visited := map[mib.Symbol]bool{}
	for cur.Base == mib.KindReferenced {
		ref := cur.Reference
		if visited[ref] {
			return nil, nil, &mib.CompileError{Err: mib.ErrTypeCycle, Module: ref.Module, Symbol: ref.Name}
		}
		visited[ref] = true
		chain = append(chain, ref.Name)

		entry, ok := store.Resolve(ref)
		if !ok {
			return nil, nil, &mib.CompileError{Err: mib.ErrUnknownSMIType, Module: ref.Module, Symbol: ref.Name}
		}
		switch entry.Kind {
		case mib.EntryType:
			cur = entry.Type
		case mib.EntryTextualConvention:
			cur = entry.TC.Syntax
		default:
			return nil, nil, &mib.CompileError{Err: mib.ErrUnknownSMIType, Module: ref.Module, Symbol: ref.Name, Detail: "not a type"}
		}
	}
	return chain, cur, nil
}

// canonicalBaseName maps a resolved BaseKind to the codec registry key used
// for primitives that have no closer named-type match in the reference
// chain.
func canonicalBaseName(k mib.BaseKind) string {
	switch k {
	case mib.KindInteger:
		return "INTEGER"
	case mib.KindOctetString:
		return "OctetString"
	case mib.KindBitString:
		return "BitString"
	case mib.KindBits:
		return "BitString"
	case mib.KindObjectIdentifier:
		return "ObjectIdentifier"
	case mib.KindNull:
		return "Null"
	default:
		return k.String()
	}
}

// symbolicName resolves an enumerated INTEGER or BITS value to its
// declared name: if the syntax is named-number or BITS, the numeric code
// gets translated to its symbolic name.
func symbolicName(resolved *mib.TypeDescriptor, content []int64) string {
	switch resolved.Base {
	case mib.KindInteger:
		if len(content) != 1 {
			return ""
		}
		name, ok := resolved.EnumName(content[0])
		if !ok {
			return ""
		}
		return name
	case mib.KindBits:
		return bitsLabel(resolved, content)
	default:
		return ""
	}
}

// bitsLabel renders the set bit names for a BITS value whose octets are
// given one-per-element in content, most significant bit of byte 0 first.
// A BITS type is an ordered mapping from name to bit position.
func bitsLabel(resolved *mib.TypeDescriptor, content []int64) string {
	var names []string
	for _, nb := range resolved.Bits {
		byteIdx := int(nb.Position / 8)
		if byteIdx >= len(content) {
			continue
		}
		bitIdx := uint(7 - nb.Position%8)
		if content[byteIdx]&(1<<bitIdx) != 0 {
			names = append(names, nb.Name)
		}
	}
	if len(names) == 0 {
		return ""
	}
	out := names[0]
	for _, n := range names[1:] {
		out += "," + n
	}
	return out
}

func toInt64s(oid mib.NumericOid) []int64 {
	out := make([]int64, len(oid))
	for i, n := range oid {
		out[i] = int64(n)
	}
	return out
}

func tail(oid []int64, from int) []int64 {
	if from >= len(oid) {
		return nil
	}
	return oid[from:]
}
