package snmpcodec

import (
	"github.com/BabisK/snmpcodec/internal/lexer"
	"github.com/BabisK/snmpcodec/internal/parser"
	"github.com/BabisK/snmpcodec/internal/types"
	"github.com/BabisK/snmpcodec/mib"
)

// CompileResult is the outcome of compiling a single module's source text:
// its own Store (holding only that module's declarations, plus the
// pre-seeded well-known roots), the module name the source declared, the
// diagnostics the config kept but did not promote to errors, and every
// error encountered.
type CompileResult struct {
	Store       *mib.Store
	ModuleName  string
	Diagnostics []types.Diagnostic
	Errors      []error
}

// CompileModule lexes, parses, and builds a single MIB module's source
// text into a fresh Store. diag decides the fate of each diagnostic the
// phases collect: ShouldFail promotes it to a hard error, ShouldReport
// keeps it in Diagnostics, anything else is dropped. Compiling is
// single-threaded and synchronous per module; a caller compiling several
// modules in parallel should call CompileModule once per module on its own
// goroutine and merge the resulting Stores with [mib.Store.Merge]. A
// freshly compiled module's own IMPORTS are not validated here —
// cross-module resolution can only be checked once every module it depends
// on has been merged in, which [Load] does after merging.
func CompileModule(source []byte, diag types.DiagnosticConfig, log types.Logger) CompileResult {
	l := lexer.New(source, log.L)
	toks, diags := l.Tokenize()

	var errs []error
	var reported []types.Diagnostic
	for _, d := range diags {
		switch {
		case diag.ShouldFail(d.Severity):
			errs = append(errs, &mib.CompileError{Err: mib.ErrLex, Detail: d.String()})
		case diag.ShouldReport(d.Code, d.Severity):
			reported = append(reported, d)
		}
	}

	store := mib.NewStore(log)
	b := mib.NewBuilder(store, log)
	parser.New(toks, l, b, log).Parse()
	errs = append(errs, b.Errors()...)

	return CompileResult{Store: store, ModuleName: b.ModuleName(), Diagnostics: reported, Errors: errs}
}
