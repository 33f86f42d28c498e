package mib

import (
	"fmt"
	"log/slog"

	"github.com/BabisK/snmpcodec/internal/types"
)

// EntryKind discriminates the table a resolved Symbol came from.
type EntryKind int

const (
	EntryType EntryKind = iota
	EntryValue
	EntryTextualConvention
	EntryObjectType
	EntryTrapType
	EntryMacroValue
)

func (k EntryKind) String() string {
	switch k {
	case EntryType:
		return "type"
	case EntryValue:
		return "value"
	case EntryTextualConvention:
		return "textual-convention"
	case EntryObjectType:
		return "object-type"
	case EntryTrapType:
		return "trap-type"
	case EntryMacroValue:
		return "macro-value"
	default:
		return "unknown"
	}
}

// Entry is the result of resolving a Symbol against the Store: exactly one
// of the typed fields matching Kind is non-nil.
type Entry struct {
	Kind       EntryKind
	Type       *TypeDescriptor
	Value      *ValueAssignment
	TC         *TextualConvention
	ObjectType *ObjectType
	TrapType   *TrapType
	MacroValue *MacroValue
}

// Store is the process-wide symbol table a Builder assembles a module
// into. Every table is keyed by Symbol; a Symbol appears in at most one
// table, enforced by addX below.
type Store struct {
	log types.Logger

	modules            map[string]*Module
	types              map[Symbol]*TypeDescriptor
	values             map[Symbol]*ValueAssignment
	textualConventions map[Symbol]*TextualConvention
	objectTypes        map[Symbol]*ObjectType
	trapTypes          map[Symbol]*TrapType
	macroValues        map[Symbol]*MacroValue

	oidCache map[Symbol]NumericOid
	oidAlias map[Symbol]NumericOid // names bound inline by a name(n) OID component
}

// NewStore creates an empty Store with the well-known ITU/ISO roots
// pre-seeded: ccitt=0, iso=1, joint-iso-ccitt=2.
func NewStore(log types.Logger) *Store {
	s := &Store{
		log:                log,
		modules:            map[string]*Module{},
		types:              map[Symbol]*TypeDescriptor{},
		values:             map[Symbol]*ValueAssignment{},
		textualConventions: map[Symbol]*TextualConvention{},
		objectTypes:        map[Symbol]*ObjectType{},
		trapTypes:          map[Symbol]*TrapType{},
		macroValues:        map[Symbol]*MacroValue{},
		oidCache:           map[Symbol]NumericOid{},
		oidAlias:           map[Symbol]NumericOid{},
	}
	for name, arc := range map[string]uint32{"ccitt": 0, "iso": 1, "joint-iso-ccitt": 2} {
		sym := NewSymbol("", name)
		s.oidCache[sym] = NumericOid{arc}
	}
	return s
}

// NewModule registers a module by name, returning ErrDuplicateModule if it
// was already registered.
func (s *Store) NewModule(name string) (*Module, error) {
	if _, exists := s.modules[name]; exists {
		return nil, newError(ErrDuplicateModule, name, "", "")
	}
	m := NewModule(name)
	s.modules[name] = m
	s.log.Trace("module registered", slog.String("module", name))
	return m, nil
}

// Module returns a previously registered module.
func (s *Store) Module(name string) (*Module, bool) {
	m, ok := s.modules[name]
	return m, ok
}

// ModuleNames returns every registered module's name, for CLI listing and
// diagnostics (not itself an invariant of the core model).
func (s *Store) ModuleNames() []string {
	names := make([]string, 0, len(s.modules))
	for name := range s.modules {
		names = append(names, name)
	}
	return names
}

func (s *Store) anyTableHas(sym Symbol) bool {
	if _, ok := s.types[sym]; ok {
		return true
	}
	if _, ok := s.values[sym]; ok {
		return true
	}
	if _, ok := s.textualConventions[sym]; ok {
		return true
	}
	if _, ok := s.objectTypes[sym]; ok {
		return true
	}
	if _, ok := s.trapTypes[sym]; ok {
		return true
	}
	if _, ok := s.macroValues[sym]; ok {
		return true
	}
	return false
}

func (s *Store) checkFresh(sym Symbol) error {
	if s.anyTableHas(sym) {
		return newError(ErrDuplicateSymbol, sym.Module, sym.Name, "")
	}
	return nil
}

// AddType registers a plain type assignment ("Foo ::= INTEGER (0..255)").
func (s *Store) AddType(sym Symbol, t *TypeDescriptor) error {
	if err := s.checkFresh(sym); err != nil {
		return err
	}
	s.types[sym] = t
	return nil
}

// AddValue registers a plain value assignment ("foo OBJECT IDENTIFIER ::= { 1 3 6 }").
func (s *Store) AddValue(va *ValueAssignment) error {
	if err := s.checkFresh(va.Symbol); err != nil {
		return err
	}
	s.values[va.Symbol] = va
	return nil
}

// AddTextualConvention registers a TEXTUAL-CONVENTION assignment.
func (s *Store) AddTextualConvention(tc *TextualConvention) error {
	if err := s.checkFresh(tc.Symbol); err != nil {
		return err
	}
	s.textualConventions[tc.Symbol] = tc
	return nil
}

// AddObjectType registers an OBJECT-TYPE assignment.
func (s *Store) AddObjectType(o *ObjectType) error {
	if err := s.checkFresh(o.Symbol); err != nil {
		return err
	}
	s.objectTypes[o.Symbol] = o
	return nil
}

// AddTrapType registers a TRAP-TYPE assignment.
func (s *Store) AddTrapType(t *TrapType) error {
	if err := s.checkFresh(t.Symbol); err != nil {
		return err
	}
	s.trapTypes[t.Symbol] = t
	return nil
}

// AddMacroValue registers a MODULE-IDENTITY/OBJECT-IDENTITY/OBJECT-GROUP/
// MODULE-COMPLIANCE/NOTIFICATION-TYPE/NOTIFICATION-GROUP/AGENT-CAPABILITIES
// assignment.
func (s *Store) AddMacroValue(m *MacroValue) error {
	if err := s.checkFresh(m.Symbol); err != nil {
		return err
	}
	s.macroValues[m.Symbol] = m
	return nil
}

// Resolve looks a Symbol up across every table.
func (s *Store) Resolve(sym Symbol) (Entry, bool) {
	if t, ok := s.types[sym]; ok {
		return Entry{Kind: EntryType, Type: t}, true
	}
	if v, ok := s.values[sym]; ok {
		return Entry{Kind: EntryValue, Value: v}, true
	}
	if tc, ok := s.textualConventions[sym]; ok {
		return Entry{Kind: EntryTextualConvention, TC: tc}, true
	}
	if o, ok := s.objectTypes[sym]; ok {
		return Entry{Kind: EntryObjectType, ObjectType: o}, true
	}
	if t, ok := s.trapTypes[sym]; ok {
		return Entry{Kind: EntryTrapType, TrapType: t}, true
	}
	if m, ok := s.macroValues[sym]; ok {
		return Entry{Kind: EntryMacroValue, MacroValue: m}, true
	}
	return Entry{}, false
}

// LookupName resolves a bare identifier seen while compiling module m to
// the Symbol it refers to: first m's own declarations, then its IMPORTS
// table, then the pre-seeded well-known roots. Returns ErrUnresolvedImport
// if nothing matches.
func (s *Store) LookupName(m *Module, name string) (Symbol, error) {
	local := NewSymbol(m.Name, name)
	if s.anyTableHas(local) {
		return local, nil
	}
	if from, ok := m.Imports[name]; ok {
		imported := NewSymbol(from, name)
		if s.anyTableHas(imported) {
			return imported, nil
		}
		return Symbol{}, newError(ErrUnresolvedImport, m.Name, name, fmt.Sprintf("declared from %q but not found there", from))
	}
	root := NewSymbol("", name)
	if _, ok := s.oidCache[root]; ok {
		return root, nil
	}
	return Symbol{}, newError(ErrUnresolvedImport, m.Name, name, "no matching declaration, import, or well-known root")
}

// ValidateImports confirms every registered module's IMPORTS entries
// resolve to an actual declaration in s, once every module reachable from a
// load has been merged in. It surfaces ErrUnresolvedImport for any import
// whose named module never declares the symbol.
func (s *Store) ValidateImports() []error {
	var errs []error
	for _, m := range s.modules {
		for name := range m.Imports {
			if _, err := s.LookupName(m, name); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errs
}

// ResolveType follows a REFERENCED TypeDescriptor's chain to the
// underlying primitive descriptor. Resolution must terminate; cycles are
// rejected at resolution time rather than looped forever.
func (s *Store) ResolveType(sym Symbol) (*TypeDescriptor, error) {
	return s.resolveTypeVisiting(sym, map[Symbol]bool{})
}

func (s *Store) resolveTypeVisiting(sym Symbol, visiting map[Symbol]bool) (*TypeDescriptor, error) {
	if visiting[sym] {
		return nil, newError(ErrTypeCycle, sym.Module, sym.Name, "")
	}
	visiting[sym] = true

	var t *TypeDescriptor
	switch {
	case s.types[sym] != nil:
		t = s.types[sym]
	case s.textualConventions[sym] != nil:
		t = s.textualConventions[sym].Syntax
	default:
		return nil, newError(ErrUnknownSMIType, sym.Module, sym.Name, "")
	}
	if t.Base != KindReferenced {
		return t, nil
	}
	return s.resolveTypeVisiting(t.Reference, visiting)
}

// NumericOid resolves sym's declared OidPath to a flat numeric OID,
// memoizing the result.
func (s *Store) NumericOid(sym Symbol) (NumericOid, error) {
	if cached, ok := s.oidCache[sym]; ok {
		return cached, nil
	}
	if cached, ok := s.oidAlias[sym]; ok {
		return cached, nil
	}
	path, err := s.definingOidPath(sym)
	if err != nil {
		return nil, err
	}
	result, err := s.resolveOidPath(path, map[Symbol]bool{sym: true})
	if err != nil {
		return nil, err
	}
	s.oidCache[sym] = result
	return result, nil
}

func (s *Store) definingOidPath(sym Symbol) (OidPath, error) {
	if o, ok := s.objectTypes[sym]; ok {
		return o.Oid, nil
	}
	if m, ok := s.macroValues[sym]; ok {
		return m.Oid, nil
	}
	if v, ok := s.values[sym]; ok {
		if p, ok := v.Value.(OidPathValue); ok {
			return p.Path, nil
		}
		if r, ok := v.Value.(ReferenceValue); ok {
			return OidPath{NameComponent(r.Symbol)}, nil
		}
	}
	return nil, newError(ErrUnknownSMIType, sym.Module, sym.Name, "has no OID-valued declaration")
}

// resolveOidPath walks an OidPath left to right. A bare name, at any
// position, is a reference to an independently-declared symbol
// (recursively resolved in full); a name(n) component is resolved that way
// only in first position, and otherwise contributes n as a positional arc
// relative to the running prefix built so far. A name(n)
// component registers its name as an alias for that running prefix, so a
// later bare reference to it resolves without re-walking this path (this
// is how "org(3)" and "dod(6)" inside "{ iso org(3) dod(6) 1 }" become
// independently resolvable names).
func (s *Store) resolveOidPath(path OidPath, visiting map[Symbol]bool) (NumericOid, error) {
	var result NumericOid
	for i, comp := range path {
		switch {
		case comp.IsBareNumber():
			result = append(result, comp.Number)
		case comp.IsBareName():
			resolved, err := s.numericOidVisiting(comp.Name, visiting)
			if err != nil {
				return nil, err
			}
			result = append(result, resolved...)
		default: // name(n)
			if i == 0 {
				if resolved, err := s.numericOidVisiting(comp.Name, visiting); err == nil {
					result = append(result, resolved...)
					continue
				}
			}
			result = append(result, comp.Number)
			alias := append(NumericOid{}, result...)
			s.oidAlias[comp.Name] = alias
			if comp.Name.Module != "" {
				// Arcs named inline ("org(3)", "dod(6)") behave like
				// well-known roots: later references resolve by bare name
				// too, not just through the declaring module.
				s.oidAlias[NewSymbol("", comp.Name.Name)] = alias
			}
		}
	}
	return result, nil
}

func (s *Store) numericOidVisiting(sym Symbol, visiting map[Symbol]bool) (NumericOid, error) {
	if cached, ok := s.oidCache[sym]; ok {
		return cached, nil
	}
	if cached, ok := s.oidAlias[sym]; ok {
		return cached, nil
	}
	if visiting[sym] {
		return nil, newError(ErrTypeCycle, sym.Module, sym.Name, "OID resolution cycle")
	}
	visiting[sym] = true
	path, err := s.definingOidPath(sym)
	if err != nil {
		return nil, err
	}
	result, err := s.resolveOidPath(path, visiting)
	if err != nil {
		return nil, err
	}
	s.oidCache[sym] = result
	return result, nil
}

// Merge absorbs another Store's modules and symbol tables into s, for the
// case where several modules were compiled into independent Stores on
// separate goroutines and must now be combined. Merge fails without
// mutating s if any module or symbol in other is already present.
func (s *Store) Merge(other *Store) error {
	for name := range other.modules {
		if _, exists := s.modules[name]; exists {
			return newError(ErrDuplicateModule, name, "", "merge conflict")
		}
	}
	for sym := range other.types {
		if s.anyTableHas(sym) {
			return newError(ErrDuplicateSymbol, sym.Module, sym.Name, "merge conflict")
		}
	}
	for sym := range other.values {
		if s.anyTableHas(sym) {
			return newError(ErrDuplicateSymbol, sym.Module, sym.Name, "merge conflict")
		}
	}
	for sym := range other.textualConventions {
		if s.anyTableHas(sym) {
			return newError(ErrDuplicateSymbol, sym.Module, sym.Name, "merge conflict")
		}
	}
	for sym := range other.objectTypes {
		if s.anyTableHas(sym) {
			return newError(ErrDuplicateSymbol, sym.Module, sym.Name, "merge conflict")
		}
	}
	for sym := range other.trapTypes {
		if s.anyTableHas(sym) {
			return newError(ErrDuplicateSymbol, sym.Module, sym.Name, "merge conflict")
		}
	}
	for sym := range other.macroValues {
		if s.anyTableHas(sym) {
			return newError(ErrDuplicateSymbol, sym.Module, sym.Name, "merge conflict")
		}
	}

	for name, m := range other.modules {
		s.modules[name] = m
	}
	for sym, t := range other.types {
		s.types[sym] = t
	}
	for sym, v := range other.values {
		s.values[sym] = v
	}
	for sym, tc := range other.textualConventions {
		s.textualConventions[sym] = tc
	}
	for sym, o := range other.objectTypes {
		s.objectTypes[sym] = o
	}
	for sym, tt := range other.trapTypes {
		s.trapTypes[sym] = tt
	}
	for sym, mv := range other.macroValues {
		s.macroValues[sym] = mv
	}
	// oidCache/oidAlias entries for well-known roots are identical across
	// every Store by construction; later module-specific entries are
	// recomputed lazily via NumericOid, so only the roots need copying.
	for sym, oid := range other.oidCache {
		if _, ok := s.oidCache[sym]; !ok {
			s.oidCache[sym] = oid
		}
	}
	s.log.Trace("store merged", slog.Int("modules", len(other.modules)))
	return nil
}

// FindByNumericOid performs the reverse lookup: the longest-registered
// name whose numeric OID is a prefix of oid, plus the unresolved tail.
// Callers that only need an exact match can compare len(tail) == 0.
func (s *Store) FindByNumericOid(oid NumericOid) (sym Symbol, tail NumericOid, ok bool) {
	// Memoize every OID-bearing symbol first, so names never passed to
	// NumericOid are candidates too; ones that fail to resolve are skipped.
	for candidate := range s.values {
		_, _ = s.NumericOid(candidate)
	}
	for candidate := range s.objectTypes {
		_, _ = s.NumericOid(candidate)
	}
	for candidate := range s.macroValues {
		_, _ = s.NumericOid(candidate)
	}
	bestLen := -1
	for candidate, numeric := range s.oidCache {
		if oid.HasPrefix(numeric) && len(numeric) > bestLen {
			bestLen = len(numeric)
			sym = candidate
		}
	}
	if bestLen < 0 {
		return Symbol{}, nil, false
	}
	return sym, oid.Suffix(s.oidCache[sym]), true
}
