// Package parser walks SMI/SMIv2 MIB source (as tokenized by internal/lexer)
// and drives a Listener with a stream of semantic events. The parser does
// not build a concrete parse tree; it emits a stream of enter/exit events
// to a Listener interface, which the Builder consumes.
package parser

// Listener receives the parser's event stream. It has no dependency on any
// concrete parse-tree type; a Builder (mib.Builder) implements this
// interface as a pushdown stack machine.
type Listener interface {
	EnterModule(name string)
	ExitModule()

	// Import records that localName is brought in from fromModule's
	// exports.
	Import(localName, fromModule string)

	// BeginAssignment/EndAssignment bracket one top-level "name ::= ..."
	// production. kind is "TYPE", "VALUE", or a macro keyword spelling
	// (e.g. "OBJECT-TYPE", "TEXTUAL-CONVENTION").
	BeginAssignment(name string, kind string)
	EndAssignment()

	// BeginType/EndType bracket a type production. base is one of
	// "INTEGER", "OCTET STRING", "BIT STRING", "BITS", "OBJECT IDENTIFIER",
	// "NULL", "SEQUENCE", "SEQUENCE OF", "CHOICE", or "REFERENCED".
	BeginType(base string)
	EndType()
	// TypeReference supplies a REFERENCED type's target; module is empty
	// for an unqualified reference (resolved against imports later).
	TypeReference(module, name string)
	// NamedNumber is an INTEGER {...} enumeration member or a BITS member.
	NamedNumber(name string, value int64)
	// BeginField/EndField bracket one SEQUENCE or CHOICE member; the
	// member's type is reported via the normal BeginType/EndType pair
	// nested between them.
	BeginField(name string)
	EndField()

	// BeginConstraint/EndConstraint bracket a "(...)" constraint clause.
	BeginConstraint(isSize bool)
	EndConstraint()
	ConstraintSingleton(value int64)
	ConstraintRange(lo, hi int64)

	// Terminal value productions (DEFVAL bodies, plain value assignments).
	IntegerValue(value int64)
	BigIntegerValue(digits string, base int)
	StringValue(text string)
	BooleanValue(value bool)
	BeginOidPath()
	EndOidPath()
	OidNumberComponent(n uint32)
	OidNameComponent(name string)
	OidNamedNumberComponent(name string, n uint32)
	ReferenceValue(name string)

	// Macro attribute productions. Attribute brackets one clause whose
	// value follows via whichever of the callbacks above or below fits;
	// EndAttribute closes it. The simple single-token forms have direct
	// shortcuts so callers don't need to bracket every trivial clause.
	// AttributeSymbol/AttributeSymbolListItem resolve refName to a Symbol
	// (ENTERPRISE, MODULE, GROUP, OBJECT, VARIATION);
	// AttributeRawIdentListItem keeps refName exactly
	// as written (INCLUDES, MANDATORY-GROUPS, VARIABLES, NOTIFICATIONS);
	// AttributeValueListItem resolves refName into a ReferenceValue
	// (OBJECTS).
	Attribute(name string)
	EndAttribute()
	AttributeText(name, value string)
	AttributeSymbol(name, refName string)
	AttributeSymbolListItem(name, refName string)
	AttributeRawIdentListItem(name, refName string)
	AttributeValueListItem(name, refName string)
	IndexItem(refName string, implied bool)
	Revision(date, description string)

	// Error reports a problem found while parsing the current assignment.
	// The parser carries on from the current token; only a token that
	// cannot begin an assignment makes it skip ahead to the next top-level
	// assignment boundary.
	Error(err error)
}
