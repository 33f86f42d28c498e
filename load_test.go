package snmpcodec

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BabisK/snmpcodec/internal/types"
	"github.com/BabisK/snmpcodec/mib"
)

func writeMIB(t *testing.T, dir, name, src string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".mib"), []byte(src), 0o644))
}

// TestLoad_UnresolvedImportSurfacesAfterMerge confirms that an IMPORTS
// entry naming a symbol its own module never declares is reported as
// ErrUnresolvedImport once every module reachable from Load has been
// merged, not silently accepted.
func TestLoad_UnresolvedImportSurfacesAfterMerge(t *testing.T) {
	dir := t.TempDir()
	writeMIB(t, dir, "SNMPv2-SMI", `SNMPv2-SMI DEFINITIONS ::= BEGIN
Counter32 ::= INTEGER (0..4294967295)
END`)
	writeMIB(t, dir, "FOO-MIB", `FOO-MIB DEFINITIONS ::= BEGIN
IMPORTS
    Counter32, Gauge32 FROM SNMPv2-SMI;

fooCount OBJECT-TYPE
    SYNTAX Counter32
    MAX-ACCESS read-only
    STATUS current
    DESCRIPTION "a counter"
    ::= { 1 3 6 1 }
END`)

	src, err := Dir(dir)
	require.NoError(t, err)
	store, err := Load(context.Background(), WithSource(src))
	require.Error(t, err)
	assert.ErrorIs(t, err, mib.ErrUnresolvedImport)
	require.NotNil(t, store)

	// Counter32 itself still resolves fine; only the bogus Gauge32 import
	// should have been flagged.
	_, ok := store.Resolve(mib.NewSymbol("SNMPv2-SMI", "Counter32"))
	assert.True(t, ok)
}

// TestLoad_SatisfiedImportsReportNoError confirms a clean IMPORTS graph
// loads without ErrUnresolvedImport.
func TestLoad_SatisfiedImportsReportNoError(t *testing.T) {
	dir := t.TempDir()
	writeMIB(t, dir, "SNMPv2-SMI", `SNMPv2-SMI DEFINITIONS ::= BEGIN
Counter32 ::= INTEGER (0..4294967295)
END`)
	writeMIB(t, dir, "FOO-MIB", `FOO-MIB DEFINITIONS ::= BEGIN
IMPORTS
    Counter32 FROM SNMPv2-SMI;

fooCount OBJECT-TYPE
    SYNTAX Counter32
    MAX-ACCESS read-only
    STATUS current
    DESCRIPTION "a counter"
    ::= { 1 3 6 1 }
END`)

	src, err := Dir(dir)
	require.NoError(t, err)
	store, err := Load(context.Background(), WithSource(src))
	require.NoError(t, err)
	require.NotNil(t, store)
}

// TestLoad_DiagnosticConfigGatesLexDiagnostics confirms the strictness
// policy decides whether a recoverable lexer slip (a stray character the
// lexer skips) stays a warning or fails the load: the default config
// tolerates it, a FailAt of SeverityError promotes it.
func TestLoad_DiagnosticConfigGatesLexDiagnostics(t *testing.T) {
	dir := t.TempDir()
	writeMIB(t, dir, "FOO-MIB", `FOO-MIB DEFINITIONS ::= BEGIN
foo OBJECT IDENTIFIER ::= { 1 3 6 } ~
END`)

	src, err := Dir(dir)
	require.NoError(t, err)

	store, err := Load(context.Background(), WithSource(src))
	require.NoError(t, err)
	_, ok := store.Resolve(mib.NewSymbol("FOO-MIB", "foo"))
	assert.True(t, ok)

	strict := types.DiagnosticConfig{Level: types.StrictnessStrict, FailAt: types.SeverityError}
	_, err = Load(context.Background(), WithSource(src), WithDiagnosticConfig(strict))
	require.Error(t, err)
	assert.ErrorIs(t, err, mib.ErrLex)
}

// TestLoad_SevereLexDiagnosticFailsByDefault confirms a malformed literal
// the lexer cannot see past (an unterminated string) fails the module even
// under the default strictness.
func TestLoad_SevereLexDiagnosticFailsByDefault(t *testing.T) {
	dir := t.TempDir()
	writeMIB(t, dir, "BAD-MIB", `BAD-MIB DEFINITIONS ::= BEGIN
bad OBJECT-TYPE
    SYNTAX INTEGER
    MAX-ACCESS read-only
    STATUS current
    DESCRIPTION "never closed
    ::= { foo 1 }
END`)

	src, err := Dir(dir)
	require.NoError(t, err)
	_, err = Load(context.Background(), WithSource(src))
	require.Error(t, err)
	assert.ErrorIs(t, err, mib.ErrLex)
}
