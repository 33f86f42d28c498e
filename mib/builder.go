package mib

import (
	"log/slog"
	"math/big"

	"github.com/BabisK/snmpcodec/internal/parser"
	"github.com/BabisK/snmpcodec/internal/types"
)

var _ parser.Listener = (*Builder)(nil)

// Builder implements parser.Listener as a pushdown stack machine (spec
// §4.B): it has no notion of a concrete parse tree, only a handful of
// small stacks tracking whichever productions are currently open, plus a
// "sink" for each production that is waiting on the next nested value or
// type. Each Begin*/End* event pair from the parser pushes and pops
// exactly one stack frame; the builder never looks ahead.
type Builder struct {
	store *Store
	log   types.Logger

	moduleName string
	module     *Module

	curName string
	curKind string
	attrs   MacroAttrBag

	pendingType  *TypeDescriptor
	pendingValue Value

	openTypes []*TypeDescriptor
	typeSinks []func(*TypeDescriptor)

	valueSinks []func(Value)
	oidStack   []OidPath

	constraintStack []*openConstraint

	errs []error
}

type openConstraint struct {
	isSize bool
	elems  []Element
}

// NewBuilder creates a Builder that assembles declarations into store.
func NewBuilder(store *Store, log types.Logger) *Builder {
	return &Builder{store: store, log: log}
}

// Errors returns every error recorded while building, in emission order.
func (b *Builder) Errors() []error { return b.errs }

// ModuleName returns the name of the module most recently entered, or ""
// if EnterModule has not fired yet.
func (b *Builder) ModuleName() string { return b.moduleName }

// ModuleImports returns the local-name -> defining-module map recorded by
// IMPORTS clauses, or nil if no module has been entered.
func (b *Builder) ModuleImports() map[string]string {
	if b.module == nil {
		return nil
	}
	return b.module.Imports
}

func (b *Builder) recordErr(err error) {
	b.errs = append(b.errs, err)
	b.log.Trace("build error recorded", slog.String("err", err.Error()))
}

// resolveNameGuess maps a bare identifier seen mid-declaration to a Symbol
// using only information available at parse time: the current module's
// own IMPORTS table (already complete, since IMPORTS always precedes the
// assignment list) and the pre-seeded well-known roots. It does not
// require the referenced module to have been compiled yet: modules may be
// compiled independently and merged later, so a cross-module type or value
// reference is recorded optimistically and only validated when something
// actually resolves it (Store.ResolveType, Store.NumericOid).
func (b *Builder) resolveNameGuess(name string) Symbol {
	if b.module != nil {
		if from, ok := b.module.Imports[name]; ok {
			return NewSymbol(from, name)
		}
	}
	switch name {
	case "ccitt", "iso", "joint-iso-ccitt":
		return NewSymbol("", name)
	}
	return NewSymbol(b.moduleName, name)
}

func mapBaseKind(base string) BaseKind {
	switch base {
	case "INTEGER":
		return KindInteger
	case "OCTET STRING":
		return KindOctetString
	case "BIT STRING":
		return KindBitString
	case "BITS":
		return KindBits
	case "OBJECT IDENTIFIER":
		return KindObjectIdentifier
	case "NULL":
		return KindNull
	case "SEQUENCE":
		return KindSequence
	case "SEQUENCE OF":
		return KindSequenceOf
	case "CHOICE":
		return KindChoice
	default:
		return KindReferenced
	}
}

// --- module / import events -------------------------------------------------

func (b *Builder) EnterModule(name string) {
	b.moduleName = name
	m, err := b.store.NewModule(name)
	if err != nil {
		b.recordErr(err)
		m = NewModule(name)
	}
	b.module = m
}

func (b *Builder) ExitModule() {}

func (b *Builder) Import(localName, fromModule string) {
	b.module.Imports[localName] = fromModule
}

// --- assignment events -------------------------------------------------

func (b *Builder) BeginAssignment(name, kind string) {
	b.curName = name
	b.curKind = kind
	b.attrs = MacroAttrBag{}
	b.pendingType = nil
	b.pendingValue = nil

	if kind == "TYPE" || kind == "VALUE" {
		b.pushTypeSink(func(t *TypeDescriptor) { b.pendingType = t })
	}
	if kind != "TYPE" && kind != "TEXTUAL-CONVENTION" {
		b.pushValueSink(func(v Value) { b.pendingValue = v })
	}
}

func (b *Builder) EndAssignment() {
	sym := NewSymbol(b.moduleName, b.curName)
	switch b.curKind {
	case "TYPE":
		if b.pendingType != nil {
			if err := b.store.AddType(sym, b.pendingType); err != nil {
				b.recordErr(err)
			}
		}
	case "VALUE":
		if b.pendingType != nil {
			va := &ValueAssignment{Symbol: sym, Type: b.pendingType, Value: b.pendingValue}
			if err := b.store.AddValue(va); err != nil {
				b.recordErr(err)
			}
		}
	case "TEXTUAL-CONVENTION":
		syntax, _ := b.attrs.typ("SYNTAX")
		tc := &TextualConvention{Symbol: sym, Attrs: b.attrs, Syntax: syntax}
		if err := b.store.AddTextualConvention(tc); err != nil {
			b.recordErr(err)
		}
	case "TRAP-TYPE":
		iv, _ := b.pendingValue.(IntegerValue)
		ent, _ := b.attrs.symbol("ENTERPRISE")
		tt := &TrapType{Symbol: sym, Attrs: b.attrs, Enterprise: ent, Number: iv.Small}
		if err := b.store.AddTrapType(tt); err != nil {
			b.recordErr(err)
		}
	case "OBJECT-TYPE":
		path, _ := b.oidPathFromPendingValue()
		ot := &ObjectType{Symbol: sym, Attrs: b.attrs, Oid: path}
		if err := b.store.AddObjectType(ot); err != nil {
			b.recordErr(err)
		}
	default: // MODULE-IDENTITY, OBJECT-IDENTITY, OBJECT-GROUP,
		// MODULE-COMPLIANCE, NOTIFICATION-TYPE, NOTIFICATION-GROUP,
		// AGENT-CAPABILITIES
		path, _ := b.oidPathFromPendingValue()
		mv := &MacroValue{Symbol: sym, MacroName: b.curKind, Attrs: b.attrs, Oid: path}
		if err := b.store.AddMacroValue(mv); err != nil {
			b.recordErr(err)
		}
	}
	b.curName, b.curKind = "", ""
	b.pendingType, b.pendingValue, b.attrs = nil, nil, nil
}

func (b *Builder) oidPathFromPendingValue() (OidPath, bool) {
	if p, ok := b.pendingValue.(OidPathValue); ok {
		return p.Path, true
	}
	return nil, false
}

// --- type events -------------------------------------------------

func (b *Builder) BeginType(base string) {
	t := &TypeDescriptor{Base: mapBaseKind(base)}
	b.openTypes = append(b.openTypes, t)
	if t.Base == KindSequenceOf {
		seqOf := t
		b.pushTypeSink(func(inner *TypeDescriptor) { seqOf.Inner = inner })
	}
}

func (b *Builder) EndType() {
	n := len(b.openTypes)
	if n == 0 {
		return
	}
	t := b.openTypes[n-1]
	b.openTypes = b.openTypes[:n-1]
	b.popTypeSink()(t)
}

func (b *Builder) TypeReference(module, name string) {
	if len(b.openTypes) == 0 {
		return
	}
	t := b.openTypes[len(b.openTypes)-1]
	if module != "" {
		t.Reference = NewSymbol(module, name)
		return
	}
	t.Reference = b.resolveNameGuess(name)
}

func (b *Builder) NamedNumber(name string, value int64) {
	if len(b.openTypes) == 0 {
		return
	}
	t := b.openTypes[len(b.openTypes)-1]
	if t.Base == KindBits {
		t.Bits = append(t.Bits, NamedBit{Name: name, Position: uint32(value)})
		return
	}
	t.Names = append(t.Names, NamedNumber{Name: name, Number: value})
}

func (b *Builder) BeginField(name string) {
	if len(b.openTypes) == 0 {
		b.pushTypeSink(func(*TypeDescriptor) {})
		return
	}
	parent := b.openTypes[len(b.openTypes)-1]
	b.pushTypeSink(func(ft *TypeDescriptor) {
		parent.Fields = append(parent.Fields, Field{Name: name, Type: ft})
	})
}

func (b *Builder) EndField() {}

func (b *Builder) pushTypeSink(f func(*TypeDescriptor)) { b.typeSinks = append(b.typeSinks, f) }

func (b *Builder) popTypeSink() func(*TypeDescriptor) {
	n := len(b.typeSinks)
	if n == 0 {
		return func(*TypeDescriptor) {}
	}
	f := b.typeSinks[n-1]
	b.typeSinks = b.typeSinks[:n-1]
	return f
}

// --- constraint events -------------------------------------------------

func (b *Builder) BeginConstraint(isSize bool) {
	b.constraintStack = append(b.constraintStack, &openConstraint{isSize: isSize})
}

func (b *Builder) ConstraintSingleton(value int64) {
	if len(b.constraintStack) == 0 {
		return
	}
	c := b.constraintStack[len(b.constraintStack)-1]
	c.elems = append(c.elems, Element{Lo: value, Hi: value})
}

func (b *Builder) ConstraintRange(lo, hi int64) {
	if len(b.constraintStack) == 0 {
		return
	}
	c := b.constraintStack[len(b.constraintStack)-1]
	c.elems = append(c.elems, Element{Lo: lo, Hi: hi})
}

func (b *Builder) EndConstraint() {
	n := len(b.constraintStack)
	if n == 0 {
		return
	}
	c := b.constraintStack[n-1]
	b.constraintStack = b.constraintStack[:n-1]
	constraint := NewConstraint(c.isSize, c.elems)
	if len(b.openTypes) > 0 {
		b.openTypes[len(b.openTypes)-1].Constraints = constraint
	}
}

// --- value events -------------------------------------------------

func (b *Builder) pushValueSink(f func(Value)) { b.valueSinks = append(b.valueSinks, f) }

func (b *Builder) emitValue(v Value) {
	n := len(b.valueSinks)
	if n == 0 {
		return
	}
	f := b.valueSinks[n-1]
	b.valueSinks = b.valueSinks[:n-1]
	f(v)
}

func (b *Builder) IntegerValue(v int64) { b.emitValue(NewIntegerValue(v)) }

func (b *Builder) BigIntegerValue(digits string, base int) {
	bi := new(big.Int)
	if digits != "" {
		bi.SetString(digits, base)
	}
	b.emitValue(NewBigIntegerValue(bi))
}

func (b *Builder) StringValue(s string)    { b.emitValue(StringValue(s)) }
func (b *Builder) BooleanValue(v bool)     { b.emitValue(BooleanValue(v)) }
func (b *Builder) ReferenceValue(name string) {
	b.emitValue(ReferenceValue{Symbol: b.resolveNameGuess(name)})
}

func (b *Builder) BeginOidPath() {
	b.oidStack = append(b.oidStack, OidPath{})
}

func (b *Builder) OidNumberComponent(n uint32) {
	i := len(b.oidStack) - 1
	if i < 0 {
		return
	}
	b.oidStack[i] = append(b.oidStack[i], NumberComponent(n))
}

func (b *Builder) OidNameComponent(name string) {
	i := len(b.oidStack) - 1
	if i < 0 {
		return
	}
	b.oidStack[i] = append(b.oidStack[i], NameComponent(b.resolveNameGuess(name)))
}

func (b *Builder) OidNamedNumberComponent(name string, n uint32) {
	i := len(b.oidStack) - 1
	if i < 0 {
		return
	}
	b.oidStack[i] = append(b.oidStack[i], NamedNumberComponent(b.resolveNameGuess(name), n))
}

func (b *Builder) EndOidPath() {
	n := len(b.oidStack)
	if n == 0 {
		b.emitValue(OidPathValue{})
		return
	}
	path := b.oidStack[n-1]
	b.oidStack = b.oidStack[:n-1]
	b.emitValue(OidPathValue{Path: path})
}

// --- macro attribute events -------------------------------------------------

func (b *Builder) Attribute(name string) {
	switch name {
	case "SYNTAX", "WRITE-SYNTAX":
		b.pushTypeSink(func(t *TypeDescriptor) { b.attrs[name] = TypeAttr{Type: t} })
	case "DEFVAL":
		b.pushValueSink(func(v Value) { b.attrs["DEFVAL"] = ValueAttr{Value: v} })
	case "ENTERPRISE":
		// Brace form "ENTERPRISE { ... }"; the bare-identifier form goes
		// through AttributeSymbol directly and never calls this.
		b.pushValueSink(func(v Value) {
			if p, ok := v.(OidPathValue); ok && len(p.Path) > 0 {
				last := p.Path[len(p.Path)-1]
				if !last.Name.IsZero() {
					b.attrs["ENTERPRISE"] = SymbolAttr(last.Name)
				}
			}
		})
	case "INDEX":
		// INDEX's items arrive via IndexItem, not a type or value sink;
		// nothing to push here.
	}
}

func (b *Builder) EndAttribute() {}

func (b *Builder) AttributeText(name, value string) {
	b.attrs[name] = TextAttr(value)
}

func (b *Builder) AttributeSymbol(name, refName string) {
	b.attrs[name] = SymbolAttr(b.resolveNameGuess(refName))
}

func (b *Builder) AttributeSymbolListItem(name, refName string) {
	existing, _ := b.attrs[name].(SymbolListAttr)
	b.attrs[name] = append(existing, b.resolveNameGuess(refName))
}

func (b *Builder) AttributeRawIdentListItem(name, refName string) {
	existing, _ := b.attrs[name].(RawIdentListAttr)
	b.attrs[name] = append(existing, refName)
}

func (b *Builder) AttributeValueListItem(name, refName string) {
	existing, _ := b.attrs[name].(ValueListAttr)
	b.attrs[name] = append(existing, ReferenceValue{Symbol: b.resolveNameGuess(refName)})
}

func (b *Builder) IndexItem(refName string, implied bool) {
	existing, _ := b.attrs["INDEX"].(IndexAttr)
	b.attrs["INDEX"] = append(existing, IndexItem{Symbol: b.resolveNameGuess(refName), Implied: implied})
}

func (b *Builder) Revision(date, description string) {
	existing, _ := b.attrs["REVISION"].(RevisionListAttr)
	b.attrs["REVISION"] = append(existing, Revision{Date: date, Description: description})
}

// --- error events -------------------------------------------------

func (b *Builder) Error(err error) {
	b.recordErr(newError(ErrParse, b.moduleName, b.curName, err.Error()))
}
