package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BabisK/snmpcodec/mib"
)

const getUsage = `snmpcodec get - Look up a symbol or numeric OID

Usage:
  snmpcodec get [options] -m MODULE QUERY

Query formats:
  Name:            ifIndex
  Qualified:       IF-MIB::ifIndex
  Numeric OID:     1.3.6.1.2.1.2.2.1.1

Options:
  -m, --module MODULE   Module(s) to load (repeatable)
  -h, --help            Show help

Examples:
  snmpcodec get -m IF-MIB ifIndex
  snmpcodec get -m IF-MIB 1.3.6.1.2.1.2.2.1.1
`

func (c *cli) cmdGet(args []string) int {
	fs := flag.NewFlagSet("get", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, getUsage) }

	var modules moduleList
	fs.Var(&modules, "m", "module to load")
	fs.Var(&modules, "module", "module to load")
	help := fs.Bool("h", false, "show help")
	fs.BoolVar(help, "help", false, "show help")

	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if *help || c.helpFlag {
		_, _ = fmt.Fprint(os.Stdout, getUsage)
		return exitOK
	}

	remaining := fs.Args()
	if len(modules) == 0 || len(remaining) == 0 {
		printError("need -m MODULE and a query")
		fmt.Fprint(os.Stderr, getUsage)
		return exitError
	}
	query := remaining[len(remaining)-1]

	store, loadErr := c.load(modules)
	if store == nil {
		printError("failed to load: %v", loadErr)
		return exitError
	}

	if oid, ok := parseNumericOid(query); ok {
		sym, tail, ok := store.FindByNumericOid(oid)
		if !ok {
			printError("no symbol found for OID %s", oid)
			return exitError
		}
		fmt.Printf("%s = %s", sym, oid)
		if len(tail) > 0 {
			fmt.Printf(" (+%s)", tail)
		}
		fmt.Println()
		return exitOK
	}

	sym := symbolFromQuery(query, modules[0])
	entry, ok := store.Resolve(sym)
	if !ok {
		printError("symbol not found: %s", sym)
		return exitError
	}
	printEntry(store, sym, entry)
	return exitOK
}

func parseNumericOid(s string) (mib.NumericOid, bool) {
	s = strings.TrimPrefix(s, ".")
	parts := strings.Split(s, ".")
	if len(parts) == 0 {
		return nil, false
	}
	oid := make(mib.NumericOid, len(parts))
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return nil, false
		}
		oid[i] = uint32(n)
	}
	return oid, true
}

func symbolFromQuery(query, fallbackModule string) mib.Symbol {
	if mod, name, ok := strings.Cut(query, "::"); ok {
		return mib.NewSymbol(mod, name)
	}
	return mib.NewSymbol(fallbackModule, query)
}

func printEntry(store *mib.Store, sym mib.Symbol, entry mib.Entry) {
	fmt.Printf("%s (%s)\n", sym, entry.Kind)
	if oid, err := store.NumericOid(sym); err == nil {
		fmt.Printf("  OID: %s\n", oid)
	}
	switch entry.Kind {
	case mib.EntryObjectType:
		if syntax, ok := entry.ObjectType.Syntax(); ok {
			fmt.Printf("  Syntax: %s\n", syntax.Base)
		}
		if access, ok := entry.ObjectType.Access(); ok {
			fmt.Printf("  Access: %s\n", access)
		}
		if idx, ok := entry.ObjectType.Index(); ok {
			names := make([]string, len(idx))
			for i, item := range idx {
				names[i] = item.Symbol.Name
			}
			fmt.Printf("  Index: %s\n", strings.Join(names, ", "))
		}
	case mib.EntryType:
		fmt.Printf("  Base: %s\n", entry.Type.Base)
	case mib.EntryTextualConvention:
		fmt.Printf("  Syntax base: %s\n", entry.TC.Syntax.Base)
	}
}

type moduleList []string

func (m *moduleList) String() string { return strings.Join(*m, ",") }
func (m *moduleList) Set(value string) error {
	*m = append(*m, value)
	return nil
}
