// Package mib is the in-memory data model and Store for compiled SMI/SMIv2
// MIB modules: symbols, OID paths, type descriptors, constraints, textual
// conventions, object types, and the per-process symbol tables that link
// them together.
package mib

// Symbol is a (module-name, local-name) pair. Symbols are compared by
// value; two Symbols with the same Module and Name refer to the same
// declaration. All cross-module references resolve to a Symbol.
type Symbol struct {
	Module string
	Name   string
}

// NewSymbol builds a Symbol from its module and local name.
func NewSymbol(module, name string) Symbol {
	return Symbol{Module: module, Name: name}
}

// IsZero reports whether this is the zero Symbol (used as a "no symbol"
// sentinel in OidComponent and TypeDescriptor).
func (s Symbol) IsZero() bool {
	return s.Module == "" && s.Name == ""
}

// String renders "Module::Name", or just "Name" when Module is empty
// (used for pre-seeded well-known roots that have no owning module).
func (s Symbol) String() string {
	if s.Module == "" {
		return s.Name
	}
	return s.Module + "::" + s.Name
}
