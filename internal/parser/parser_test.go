package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BabisK/snmpcodec/internal/lexer"
	"github.com/BabisK/snmpcodec/internal/types"
)

// recorder is a Listener that logs every call as a short string, so tests
// can assert on the event sequence without a concrete parse tree.
type recorder struct {
	events []string
	errs   []error
}

func (r *recorder) push(s string) { r.events = append(r.events, s) }

func (r *recorder) EnterModule(name string)               { r.push("EnterModule " + name) }
func (r *recorder) ExitModule()                            { r.push("ExitModule") }
func (r *recorder) Import(local, from string)              { r.push("Import " + local + " from " + from) }
func (r *recorder) BeginAssignment(name, kind string)      { r.push("BeginAssignment " + name + " " + kind) }
func (r *recorder) EndAssignment()                         { r.push("EndAssignment") }
func (r *recorder) BeginType(base string)                  { r.push("BeginType " + base) }
func (r *recorder) EndType()                               { r.push("EndType") }
func (r *recorder) TypeReference(module, name string)      { r.push("TypeReference " + module + "." + name) }
func (r *recorder) NamedNumber(name string, value int64)   { r.push("NamedNumber") }
func (r *recorder) BeginField(name string)                 { r.push("BeginField " + name) }
func (r *recorder) EndField()                              { r.push("EndField") }
func (r *recorder) BeginConstraint(isSize bool)             { r.push("BeginConstraint") }
func (r *recorder) EndConstraint()                          { r.push("EndConstraint") }
func (r *recorder) ConstraintSingleton(value int64)         { r.push("ConstraintSingleton") }
func (r *recorder) ConstraintRange(lo, hi int64)            { r.push("ConstraintRange") }
func (r *recorder) IntegerValue(value int64)                { r.push("IntegerValue") }
func (r *recorder) BigIntegerValue(digits string, base int) { r.push("BigIntegerValue") }
func (r *recorder) StringValue(text string)                  { r.push("StringValue") }
func (r *recorder) BooleanValue(value bool)                  { r.push("BooleanValue") }
func (r *recorder) BeginOidPath()                            { r.push("BeginOidPath") }
func (r *recorder) EndOidPath()                              { r.push("EndOidPath") }
func (r *recorder) OidNumberComponent(n uint32)              { r.push("OidNumberComponent") }
func (r *recorder) OidNameComponent(name string)             { r.push("OidNameComponent " + name) }
func (r *recorder) OidNamedNumberComponent(name string, n uint32) {
	r.push("OidNamedNumberComponent " + name)
}
func (r *recorder) ReferenceValue(name string)         { r.push("ReferenceValue " + name) }
func (r *recorder) Attribute(name string)              { r.push("Attribute " + name) }
func (r *recorder) EndAttribute()                      { r.push("EndAttribute") }
func (r *recorder) AttributeText(name, value string)   { r.push("AttributeText " + name) }
func (r *recorder) AttributeSymbol(name, ref string)   { r.push("AttributeSymbol " + name + " " + ref) }
func (r *recorder) AttributeSymbolListItem(name, ref string) {
	r.push("AttributeSymbolListItem " + name + " " + ref)
}
func (r *recorder) AttributeRawIdentListItem(name, ref string) {
	r.push("AttributeRawIdentListItem " + name + " " + ref)
}
func (r *recorder) AttributeValueListItem(name, ref string) {
	r.push("AttributeValueListItem " + name + " " + ref)
}
func (r *recorder) IndexItem(ref string, implied bool) { r.push("IndexItem " + ref) }
func (r *recorder) Revision(date, desc string)         { r.push("Revision") }
func (r *recorder) Error(err error)                    { r.errs = append(r.errs, err) }

func parse(t *testing.T, src string) *recorder {
	t.Helper()
	l := lexer.New([]byte(src), nil)
	toks, diags := l.Tokenize()
	require.Empty(t, diags)
	rec := &recorder{}
	New(toks, l, rec, types.Logger{}).Parse()
	return rec
}

func TestParse_SimpleValueAssignment(t *testing.T) {
	rec := parse(t, `FOO-MIB DEFINITIONS ::= BEGIN
foo OBJECT IDENTIFIER ::= { 1 3 6 }
END`)
	require.Empty(t, rec.errs)
	assert.Contains(t, rec.events, "EnterModule FOO-MIB")
	assert.Contains(t, rec.events, "BeginAssignment foo VALUE")
	assert.Contains(t, rec.events, "BeginOidPath")
	assert.Contains(t, rec.events, "EndOidPath")
	assert.Contains(t, rec.events, "ExitModule")
}

func TestParse_TypeAssignmentWithConstraint(t *testing.T) {
	rec := parse(t, `FOO-MIB DEFINITIONS ::= BEGIN
MyInt ::= INTEGER (0..255)
END`)
	require.Empty(t, rec.errs)
	assert.Contains(t, rec.events, "BeginAssignment MyInt TYPE")
	assert.Contains(t, rec.events, "BeginType INTEGER")
	assert.Contains(t, rec.events, "BeginConstraint")
	assert.Contains(t, rec.events, "ConstraintRange")
}

func TestParse_ObjectType(t *testing.T) {
	rec := parse(t, `FOO-MIB DEFINITIONS ::= BEGIN
fooCount OBJECT-TYPE
    SYNTAX INTEGER
    MAX-ACCESS read-only
    STATUS current
    DESCRIPTION "a counter"
    ::= { foo 1 }
END`)
	require.Empty(t, rec.errs)
	assert.Contains(t, rec.events, "BeginAssignment fooCount OBJECT-TYPE")
	assert.Contains(t, rec.events, "Attribute SYNTAX")
	assert.Contains(t, rec.events, "AttributeText MAX-ACCESS")
	assert.Contains(t, rec.events, "AttributeText STATUS")
	assert.Contains(t, rec.events, "AttributeText DESCRIPTION")
}

func TestParse_Sequence(t *testing.T) {
	rec := parse(t, `FOO-MIB DEFINITIONS ::= BEGIN
FooEntry ::= SEQUENCE {
    fooIndex INTEGER,
    fooName OCTET STRING
}
END`)
	require.Empty(t, rec.errs)
	assert.Contains(t, rec.events, "BeginType SEQUENCE")
	assert.Contains(t, rec.events, "BeginField fooIndex")
	assert.Contains(t, rec.events, "BeginField fooName")
}

func TestParse_SequenceOf(t *testing.T) {
	rec := parse(t, `FOO-MIB DEFINITIONS ::= BEGIN
FooTable ::= SEQUENCE OF FooEntry
END`)
	require.Empty(t, rec.errs)
	assert.Contains(t, rec.events, "BeginType SEQUENCE OF")
	assert.Contains(t, rec.events, "TypeReference .FooEntry")
}

func TestParse_TextualConvention(t *testing.T) {
	rec := parse(t, `FOO-MIB DEFINITIONS ::= BEGIN
DisplayString ::= TEXTUAL-CONVENTION
    DISPLAY-HINT "255a"
    STATUS current
    DESCRIPTION "text"
    SYNTAX OCTET STRING (SIZE (0..255))
END`)
	require.Empty(t, rec.errs)
	assert.Contains(t, rec.events, "BeginAssignment DisplayString TEXTUAL-CONVENTION")
	assert.Contains(t, rec.events, "Attribute SYNTAX")
	assert.Contains(t, rec.events, "BeginType OCTET STRING")
}

func TestParse_TrapType(t *testing.T) {
	rec := parse(t, `FOO-MIB DEFINITIONS ::= BEGIN
coldStart TRAP-TYPE
    ENTERPRISE foo
    DESCRIPTION "cold start"
    ::= 0
END`)
	require.Empty(t, rec.errs)
	assert.Contains(t, rec.events, "BeginAssignment coldStart TRAP-TYPE")
	assert.Contains(t, rec.events, "AttributeSymbol ENTERPRISE foo")
	assert.Contains(t, rec.events, "IntegerValue")
}

func TestParse_AugmentsAndVariablesStayUnresolved(t *testing.T) {
	rec := parse(t, `FOO-MIB DEFINITIONS ::= BEGIN
fooExtra OBJECT-TYPE
    SYNTAX INTEGER
    MAX-ACCESS read-only
    STATUS current
    DESCRIPTION "augmenting row"
    AUGMENTS { fooEntry }
    ::= { foo 1 }

fooTrap TRAP-TYPE
    ENTERPRISE foo
    VARIABLES { fooExtra, fooOther }
    DESCRIPTION "trap"
    ::= 1
END`)
	require.Empty(t, rec.errs)
	assert.Contains(t, rec.events, "AttributeText AUGMENTS")
	assert.Contains(t, rec.events, "AttributeRawIdentListItem VARIABLES fooExtra")
	assert.Contains(t, rec.events, "AttributeRawIdentListItem VARIABLES fooOther")
}

func TestParse_SequenceMissingComma(t *testing.T) {
	rec := parse(t, `FOO-MIB DEFINITIONS ::= BEGIN
FooEntry ::= SEQUENCE {
    fooIndex INTEGER
    fooName OCTET STRING
}
END`)
	require.Empty(t, rec.errs)
	assert.Contains(t, rec.events, "BeginField fooIndex")
	assert.Contains(t, rec.events, "BeginField fooName")
	assert.Contains(t, rec.events, "ExitModule")
}

func TestParse_ObjectsListTrailingComma(t *testing.T) {
	rec := parse(t, `FOO-MIB DEFINITIONS ::= BEGIN
fooGroup OBJECT-GROUP
    OBJECTS { fooIndex, fooName, }
    STATUS current
    DESCRIPTION "a group"
    ::= { foo 1 }
END`)
	require.Empty(t, rec.errs)
	assert.Contains(t, rec.events, "AttributeValueListItem OBJECTS fooIndex")
	assert.Contains(t, rec.events, "AttributeValueListItem OBJECTS fooName")
	assert.Contains(t, rec.events, "ExitModule")
}

func TestParse_MacroDefinitionSkipped(t *testing.T) {
	rec := parse(t, `FOO-MIB DEFINITIONS ::= BEGIN
OBJECT-TYPE MACRO ::= BEGIN
    TYPE NOTATION ::= "SYNTAX" type
END

foo OBJECT IDENTIFIER ::= { 1 3 6 }
END`)
	require.Empty(t, rec.errs)
	assert.Contains(t, rec.events, "BeginAssignment foo VALUE")
	assert.Contains(t, rec.events, "ExitModule")
}

func TestParse_ModuleComplianceBody(t *testing.T) {
	rec := parse(t, `FOO-MIB DEFINITIONS ::= BEGIN
fooCompliance MODULE-COMPLIANCE
    STATUS current
    DESCRIPTION "compliance"
    MODULE
        MANDATORY-GROUPS { fooGroup, barGroup }
        GROUP optGroup
        DESCRIPTION "optional"
        OBJECT fooIndex
        MIN-ACCESS read-only
        DESCRIPTION "narrowed"
    ::= { foo 1 }
END`)
	require.Empty(t, rec.errs)
	assert.Contains(t, rec.events, "AttributeRawIdentListItem MANDATORY-GROUPS fooGroup")
	assert.Contains(t, rec.events, "AttributeRawIdentListItem MANDATORY-GROUPS barGroup")
	assert.Contains(t, rec.events, "AttributeSymbolListItem GROUP optGroup")
	assert.Contains(t, rec.events, "AttributeSymbolListItem OBJECT fooIndex")
	assert.Contains(t, rec.events, "EndAssignment")
}

func TestParse_AgentCapabilitiesSupports(t *testing.T) {
	rec := parse(t, `FOO-MIB DEFINITIONS ::= BEGIN
fooAgent AGENT-CAPABILITIES
    PRODUCT-RELEASE "1.0"
    STATUS current
    DESCRIPTION "caps"
    SUPPORTS IF-MIB
    INCLUDES { ifGeneralGroup }
    VARIATION ifAdminStatus
    DESCRIPTION "limited"
    ::= { foo 2 }
END`)
	require.Empty(t, rec.errs)
	assert.Contains(t, rec.events, "AttributeText SUPPORTS")
	assert.Contains(t, rec.events, "AttributeRawIdentListItem INCLUDES ifGeneralGroup")
	assert.Contains(t, rec.events, "AttributeSymbolListItem VARIATION ifAdminStatus")
	assert.Contains(t, rec.events, "EndAssignment")
}

func TestParse_CreationRequires(t *testing.T) {
	rec := parse(t, `FOO-MIB DEFINITIONS ::= BEGIN
fooEntry OBJECT-TYPE
    SYNTAX FooEntry
    MAX-ACCESS not-accessible
    STATUS current
    DESCRIPTION "row"
    CREATION-REQUIRES { fooIndex, fooName }
    ::= { fooTable 1 }
END`)
	require.Empty(t, rec.errs)
	assert.Contains(t, rec.events, "AttributeValueListItem CREATION-REQUIRES fooIndex")
	assert.Contains(t, rec.events, "AttributeValueListItem CREATION-REQUIRES fooName")
	assert.Contains(t, rec.events, "EndAssignment")
	assert.Contains(t, rec.events, "ExitModule")
}

func TestParse_ImportsAndIndex(t *testing.T) {
	rec := parse(t, `FOO-MIB DEFINITIONS ::= BEGIN
IMPORTS
    OBJECT-TYPE FROM SNMPv2-SMI;

fooEntry OBJECT-TYPE
    SYNTAX FooEntry
    MAX-ACCESS not-accessible
    STATUS current
    DESCRIPTION "a row"
    INDEX { fooIndex }
    ::= { fooTable 1 }
END`)
	require.Empty(t, rec.errs)
	assert.Contains(t, rec.events, "Import OBJECT-TYPE from SNMPv2-SMI")
	assert.Contains(t, rec.events, "Attribute INDEX")
	assert.Contains(t, rec.events, "IndexItem fooIndex")
}
