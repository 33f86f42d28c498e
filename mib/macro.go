package mib

// MacroAttr is the tagged union of values a macro attribute (ACCESS,
// STATUS, SYNTAX, INDEX, DEFVAL, ...) can carry. The bag holding these is
// keyed by attribute name. Only attributes the parser recognizes reach the
// bag: an unrecognized attribute keyword ends the clause list and surfaces
// as a parse error, not as an entry here.
type MacroAttr interface {
	isMacroAttr()
}

// TextAttr is a free-text attribute (DESCRIPTION, REFERENCE, UNITS,
// ORGANIZATION, CONTACT-INFO, LAST-UPDATED, DISPLAY-HINT, a bare keyword
// like ACCESS/STATUS whose value is itself an identifier, ...).
type TextAttr string

func (TextAttr) isMacroAttr() {}

// SymbolAttr is an attribute whose value is a single symbol reference
// (ENTERPRISE).
type SymbolAttr Symbol

func (SymbolAttr) isMacroAttr() {}

// SymbolListAttr is an attribute whose value is an ordered, resolved symbol
// list (the GROUP, OBJECT, and VARIATION clause names of MODULE-COMPLIANCE
// and AGENT-CAPABILITIES bodies).
type SymbolListAttr []Symbol

func (SymbolListAttr) isMacroAttr() {}

// RawIdentListAttr is an ordered list of identifier attribute members kept
// exactly as written, with no attempt to resolve them against the current
// module or its imports (INCLUDES, MANDATORY-GROUPS, VARIABLES,
// NOTIFICATIONS). The names these carry may belong to a module not yet
// merged into the Store, so resolution is deferred to whoever reads them.
type RawIdentListAttr []string

func (RawIdentListAttr) isMacroAttr() {}

// ValueListAttr carries an OBJECTS clause's members as an ordered list of
// Values (each a ReferenceValue naming the object).
type ValueListAttr []Value

func (ValueListAttr) isMacroAttr() {}

// TypeAttr carries a SYNTAX or WRITE-SYNTAX clause's TypeDescriptor.
type TypeAttr struct{ Type *TypeDescriptor }

func (TypeAttr) isMacroAttr() {}

// ValueAttr carries a DEFVAL clause's Value.
type ValueAttr struct{ Value Value }

func (ValueAttr) isMacroAttr() {}

// IndexItem is one member of an INDEX clause: a resolved Symbol (naming
// another ObjectType) and whether it was marked IMPLIED.
type IndexItem struct {
	Symbol  Symbol
	Implied bool
}

// IndexAttr carries an OBJECT-TYPE's INDEX clause, in declared order.
type IndexAttr []IndexItem

func (IndexAttr) isMacroAttr() {}

// Revision is one MODULE-IDENTITY REVISION clause paired with its
// DESCRIPTION text; RevisionListAttr carries them in declaration order
// (newest first, as written).
type Revision struct {
	Date        string
	Description string
}

type RevisionListAttr []Revision

func (RevisionListAttr) isMacroAttr() {}

// MacroAttrBag is the attribute bag a macro assignment's body fills in.
// Keys are the attribute keyword spelling (e.g. "ACCESS", "INDEX"). A
// repeated single-valued attribute overwrites the earlier value; list-valued
// attributes (INDEX, OBJECTS, GROUP, INCLUDES, REVISION, ...) accumulate
// the members of every repeated clause instead.
type MacroAttrBag map[string]MacroAttr

func (b MacroAttrBag) text(key string) (string, bool) {
	if a, ok := b[key]; ok {
		if t, ok := a.(TextAttr); ok {
			return string(t), true
		}
	}
	return "", false
}

func (b MacroAttrBag) typ(key string) (*TypeDescriptor, bool) {
	if a, ok := b[key]; ok {
		if t, ok := a.(TypeAttr); ok {
			return t.Type, true
		}
	}
	return nil, false
}

func (b MacroAttrBag) symbol(key string) (Symbol, bool) {
	if a, ok := b[key]; ok {
		if s, ok := a.(SymbolAttr); ok {
			return Symbol(s), true
		}
	}
	return Symbol{}, false
}

func (b MacroAttrBag) symbolList(key string) (SymbolListAttr, bool) {
	if a, ok := b[key]; ok {
		if l, ok := a.(SymbolListAttr); ok {
			return l, true
		}
	}
	return nil, false
}

func (b MacroAttrBag) rawIdentList(key string) (RawIdentListAttr, bool) {
	if a, ok := b[key]; ok {
		if l, ok := a.(RawIdentListAttr); ok {
			return l, true
		}
	}
	return nil, false
}

func (b MacroAttrBag) valueList(key string) (ValueListAttr, bool) {
	if a, ok := b[key]; ok {
		if l, ok := a.(ValueListAttr); ok {
			return l, true
		}
	}
	return nil, false
}

// Module records one compiled module's name and its import table: a map
// from each imported name to the name of the module it actually came from.
type Module struct {
	Name    string
	Imports map[string]string // local name -> defining module name
}

// NewModule creates an empty Module record.
func NewModule(name string) *Module {
	return &Module{Name: name, Imports: map[string]string{}}
}

// ValueAssignment is a plain "name TYPE ::= value" assignment (not a
// macro).
type ValueAssignment struct {
	Symbol Symbol
	Type   *TypeDescriptor
	Value  Value
}

// TextualConvention is a TEXTUAL-CONVENTION macro assignment:
// DISPLAY-HINT, STATUS, DESCRIPTION, REFERENCE text attributes plus the
// SYNTAX TypeDescriptor it wraps.
type TextualConvention struct {
	Symbol Symbol
	Attrs  MacroAttrBag
	Syntax *TypeDescriptor
}

func (tc *TextualConvention) DisplayHint() (string, bool) { return tc.Attrs.text("DISPLAY-HINT") }
func (tc *TextualConvention) Status() (string, bool)       { return tc.Attrs.text("STATUS") }
func (tc *TextualConvention) Description() (string, bool)  { return tc.Attrs.text("DESCRIPTION") }

// ObjectType is an OBJECT-TYPE macro assignment: its attribute
// bag must contain SYNTAX, ACCESS/MAX-ACCESS, and STATUS, and its value is
// an OidPath naming its position in the tree. INDEX or AUGMENTS, if
// present, describe how instance identifiers are built.
type ObjectType struct {
	Symbol Symbol
	Attrs  MacroAttrBag
	Oid    OidPath
}

func (o *ObjectType) Syntax() (*TypeDescriptor, bool) { return o.Attrs.typ("SYNTAX") }
func (o *ObjectType) Access() (string, bool) {
	if v, ok := o.Attrs.text("MAX-ACCESS"); ok {
		return v, true
	}
	return o.Attrs.text("ACCESS")
}
func (o *ObjectType) Status() (string, bool) { return o.Attrs.text("STATUS") }
func (o *ObjectType) Index() (IndexAttr, bool) {
	if a, ok := o.Attrs["INDEX"]; ok {
		if idx, ok := a.(IndexAttr); ok {
			return idx, true
		}
	}
	return nil, false
}
// Augments returns the row named by an AUGMENTS clause, unresolved: the row
// may live in a module not yet merged into the Store.
func (o *ObjectType) Augments() (string, bool) { return o.Attrs.text("AUGMENTS") }
func (o *ObjectType) DefVal() (Value, bool) {
	if a, ok := o.Attrs["DEFVAL"]; ok {
		if v, ok := a.(ValueAttr); ok {
			return v.Value, true
		}
	}
	return nil, false
}

// TrapType is a TRAP-TYPE macro assignment: differs from
// ObjectType in that its terminal value is an integer (the trap number)
// qualified by an ENTERPRISE attribute naming the enterprise OID root,
// rather than a standalone OidPath.
type TrapType struct {
	Symbol     Symbol
	Attrs      MacroAttrBag
	Enterprise Symbol
	Number     int64
}

func (t *TrapType) Description() (string, bool) { return t.Attrs.text("DESCRIPTION") }

// Variables returns a TRAP-TYPE's VARIABLES list, unresolved: each name is
// kept as written rather than guessed against the current module.
func (t *TrapType) Variables() (RawIdentListAttr, bool) {
	return t.Attrs.rawIdentList("VARIABLES")
}

// MacroValue is a generic complex macro assignment: MODULE-IDENTITY,
// OBJECT-IDENTITY, OBJECT-GROUP, MODULE-COMPLIANCE, NOTIFICATION-TYPE,
// NOTIFICATION-GROUP, or AGENT-CAPABILITIES. These share the same shape
// (an attribute bag plus a terminal OidPath value) but differ in which
// attributes are meaningful, so MacroName records which macro built it.
type MacroValue struct {
	Symbol    Symbol
	MacroName string
	Attrs     MacroAttrBag
	Oid       OidPath
}

func (m *MacroValue) Description() (string, bool) { return m.Attrs.text("DESCRIPTION") }
func (m *MacroValue) Status() (string, bool)       { return m.Attrs.text("STATUS") }
func (m *MacroValue) Revisions() (RevisionListAttr, bool) {
	if a, ok := m.Attrs["REVISION"]; ok {
		if r, ok := a.(RevisionListAttr); ok {
			return r, true
		}
	}
	return nil, false
}

// Objects returns an OBJECT-GROUP's OBJECTS clause as resolved Values.
func (m *MacroValue) Objects() (ValueListAttr, bool) { return m.Attrs.valueList("OBJECTS") }

// Notifications returns a NOTIFICATION-GROUP's NOTIFICATIONS clause,
// unresolved.
func (m *MacroValue) Notifications() (RawIdentListAttr, bool) {
	return m.Attrs.rawIdentList("NOTIFICATIONS")
}

// Includes returns an AGENT-CAPABILITIES SUPPORTS clause's INCLUDES list,
// unresolved.
func (m *MacroValue) Includes() (RawIdentListAttr, bool) {
	return m.Attrs.rawIdentList("INCLUDES")
}

// MandatoryGroups returns a MODULE-COMPLIANCE MODULE clause's
// MANDATORY-GROUPS list, unresolved.
func (m *MacroValue) MandatoryGroups() (RawIdentListAttr, bool) {
	return m.Attrs.rawIdentList("MANDATORY-GROUPS")
}
