package mib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BabisK/snmpcodec/internal/types"
)

func TestStore_WellKnownRootsPreseeded(t *testing.T) {
	s := NewStore(types.Logger{})
	oid, err := s.NumericOid(NewSymbol("", "iso"))
	require.NoError(t, err)
	assert.Equal(t, NumericOid{1}, oid)

	_, err = s.NumericOid(NewSymbol("", "ccitt"))
	require.NoError(t, err)
	_, err = s.NumericOid(NewSymbol("", "joint-iso-ccitt"))
	require.NoError(t, err)
}

func TestStore_NewModuleRejectsDuplicate(t *testing.T) {
	s := NewStore(types.Logger{})
	_, err := s.NewModule("FOO-MIB")
	require.NoError(t, err)

	_, err = s.NewModule("FOO-MIB")
	require.ErrorIs(t, err, ErrDuplicateModule)
}

func TestStore_CheckFreshAcrossTables(t *testing.T) {
	s := NewStore(types.Logger{})
	sym := NewSymbol("FOO-MIB", "Thing")

	require.NoError(t, s.AddType(sym, &TypeDescriptor{Base: KindInteger}))

	// The same Symbol registered under a different table is still a
	// duplicate: a name is unique across all assignment kinds.
	err := s.AddValue(&ValueAssignment{Symbol: sym})
	require.ErrorIs(t, err, ErrDuplicateSymbol)

	err = s.AddTextualConvention(&TextualConvention{Symbol: sym})
	require.ErrorIs(t, err, ErrDuplicateSymbol)
}

func TestStore_LookupName_LocalThenImportThenRoot(t *testing.T) {
	s := NewStore(types.Logger{})
	m, err := s.NewModule("FOO-MIB")
	require.NoError(t, err)
	m.Imports["Counter32"] = "SNMPv2-SMI"

	local := NewSymbol("FOO-MIB", "fooCount")
	require.NoError(t, s.AddValue(&ValueAssignment{Symbol: local}))

	sym, err := s.LookupName(m, "fooCount")
	require.NoError(t, err)
	assert.Equal(t, local, sym)

	sym, err = s.LookupName(m, "iso")
	require.NoError(t, err)
	assert.Equal(t, NewSymbol("", "iso"), sym)

	// Declared as imported from SNMPv2-SMI, but SNMPv2-SMI never actually
	// registered Counter32: resolution fails with ErrUnresolvedImport.
	_, err = s.LookupName(m, "Counter32")
	require.ErrorIs(t, err, ErrUnresolvedImport)

	_, err = s.LookupName(m, "NoSuchThing")
	require.ErrorIs(t, err, ErrUnresolvedImport)
}

func TestStore_LookupName_ImportSatisfied(t *testing.T) {
	s := NewStore(types.Logger{})
	smi, err := s.NewModule("SNMPv2-SMI")
	require.NoError(t, err)
	require.NoError(t, s.AddType(NewSymbol("SNMPv2-SMI", "Counter32"), &TypeDescriptor{Base: KindInteger}))

	m, err := s.NewModule("FOO-MIB")
	require.NoError(t, err)
	m.Imports["Counter32"] = smi.Name

	sym, err := s.LookupName(m, "Counter32")
	require.NoError(t, err)
	assert.Equal(t, NewSymbol("SNMPv2-SMI", "Counter32"), sym)
}

func TestStore_FindByNumericOid_LongestPrefix(t *testing.T) {
	s := NewStore(types.Logger{})
	require.NoError(t, s.AddValue(&ValueAssignment{
		Symbol: NewSymbol("FOO-MIB", "internet"),
		Value:  OidPathValue{Path: OidPath{NumberComponent(1), NumberComponent(3), NumberComponent(6), NumberComponent(1)}},
	}))
	require.NoError(t, s.AddValue(&ValueAssignment{
		Symbol: NewSymbol("FOO-MIB", "mgmt"),
		Value:  OidPathValue{Path: OidPath{NameComponent(NewSymbol("FOO-MIB", "internet")), NumberComponent(2)}},
	}))

	sym, tail, ok := s.FindByNumericOid(NumericOid{1, 3, 6, 1, 2, 1, 1})
	require.True(t, ok)
	assert.Equal(t, "mgmt", sym.Name)
	assert.Equal(t, NumericOid{1, 1}, tail)
}

func TestStore_FindByNumericOid_NoMatch(t *testing.T) {
	s := NewStore(types.Logger{})
	_, _, ok := s.FindByNumericOid(NumericOid{9, 9, 9})
	assert.False(t, ok)
}

func TestStore_Merge_CombinesDisjointStores(t *testing.T) {
	a := NewStore(types.Logger{})
	_, err := a.NewModule("FOO-MIB")
	require.NoError(t, err)
	require.NoError(t, a.AddType(NewSymbol("FOO-MIB", "FooThing"), &TypeDescriptor{Base: KindInteger}))

	b := NewStore(types.Logger{})
	_, err = b.NewModule("BAR-MIB")
	require.NoError(t, err)
	require.NoError(t, b.AddType(NewSymbol("BAR-MIB", "BarThing"), &TypeDescriptor{Base: KindOctetString}))

	require.NoError(t, a.Merge(b))
	_, ok := a.Resolve(NewSymbol("FOO-MIB", "FooThing"))
	assert.True(t, ok)
	_, ok = a.Resolve(NewSymbol("BAR-MIB", "BarThing"))
	assert.True(t, ok)
	_, ok = a.Module("BAR-MIB")
	assert.True(t, ok)
}

func TestStore_Merge_RejectsDuplicateModule(t *testing.T) {
	a := NewStore(types.Logger{})
	_, err := a.NewModule("FOO-MIB")
	require.NoError(t, err)

	b := NewStore(types.Logger{})
	_, err = b.NewModule("FOO-MIB")
	require.NoError(t, err)

	require.ErrorIs(t, a.Merge(b), ErrDuplicateModule)
}

func TestStore_Merge_RejectsDuplicateSymbol(t *testing.T) {
	sym := NewSymbol("FOO-MIB", "Thing")

	a := NewStore(types.Logger{})
	require.NoError(t, a.AddType(sym, &TypeDescriptor{Base: KindInteger}))

	b := NewStore(types.Logger{})
	require.NoError(t, b.AddValue(&ValueAssignment{Symbol: sym}))

	err := a.Merge(b)
	require.ErrorIs(t, err, ErrDuplicateSymbol)

	// The rejection must leave a untouched: the value table entry from b
	// is not half-applied.
	entry, ok := a.Resolve(sym)
	require.True(t, ok)
	assert.Equal(t, EntryType, entry.Kind)
}

func TestStore_ResolveType_UnknownSymbol(t *testing.T) {
	s := NewStore(types.Logger{})
	_, err := s.ResolveType(NewSymbol("FOO-MIB", "NoSuchType"))
	require.ErrorIs(t, err, ErrUnknownSMIType)
}

func TestStore_ValidateImports_ReportsEachUnresolvedImport(t *testing.T) {
	s := NewStore(types.Logger{})
	smi, err := s.NewModule("SNMPv2-SMI")
	require.NoError(t, err)
	require.NoError(t, s.AddType(NewSymbol("SNMPv2-SMI", "Counter32"), &TypeDescriptor{Base: KindInteger}))

	foo, err := s.NewModule("FOO-MIB")
	require.NoError(t, err)
	foo.Imports["Counter32"] = smi.Name
	foo.Imports["Gauge32"] = smi.Name // never registered by SNMPv2-SMI

	bar, err := s.NewModule("BAR-MIB")
	require.NoError(t, err)
	bar.Imports["NoSuchModuleThing"] = "NO-SUCH-MIB"

	errs := s.ValidateImports()
	require.Len(t, errs, 2)
	for _, e := range errs {
		assert.ErrorIs(t, e, ErrUnresolvedImport)
	}
}

func TestStore_ValidateImports_CleanWhenSatisfied(t *testing.T) {
	s := NewStore(types.Logger{})
	smi, err := s.NewModule("SNMPv2-SMI")
	require.NoError(t, err)
	require.NoError(t, s.AddType(NewSymbol("SNMPv2-SMI", "Counter32"), &TypeDescriptor{Base: KindInteger}))

	foo, err := s.NewModule("FOO-MIB")
	require.NoError(t, err)
	foo.Imports["Counter32"] = smi.Name

	assert.Empty(t, s.ValidateImports())
}
