package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/BabisK/snmpcodec/codec"
	"github.com/BabisK/snmpcodec/index"
)

const indexUsage = `snmpcodec index - Decode an instance OID against a table row's INDEX

Usage:
  snmpcodec index [options] -m MODULE ROW OID

ROW is the row's OBJECT-TYPE symbol (e.g. ifEntry); OID is the instance
suffix after the row's own OID (e.g. 5 for ifEntry.5, or a full tail for a
multi-column index).

Options:
  -m, --module MODULE   Module(s) to load (repeatable)
  -h, --help            Show help

Examples:
  snmpcodec index -m IF-MIB ifEntry 5
`

func (c *cli) cmdIndex(args []string) int {
	fs := flag.NewFlagSet("index", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, indexUsage) }

	var modules moduleList
	fs.Var(&modules, "m", "module to load")
	fs.Var(&modules, "module", "module to load")
	help := fs.Bool("h", false, "show help")
	fs.BoolVar(help, "help", false, "show help")

	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if *help || c.helpFlag {
		_, _ = fmt.Fprint(os.Stdout, indexUsage)
		return exitOK
	}

	remaining := fs.Args()
	if len(modules) == 0 || len(remaining) != 2 {
		printError("need -m MODULE, a row symbol, and an OID")
		fmt.Fprint(os.Stderr, indexUsage)
		return exitError
	}
	row, oidStr := remaining[0], remaining[1]

	store, loadErr := c.load(modules)
	if store == nil {
		printError("failed to load: %v", loadErr)
		return exitError
	}

	oid, ok := parseNumericOid(oidStr)
	if !ok {
		printError("invalid OID: %s", oidStr)
		return exitError
	}

	rowSym := symbolFromQuery(row, modules[0])
	codecs := codec.DefaultRegistry()
	for alias, target := range c.loadConfig().Codecs {
		if cd, ok := codecs[target]; ok {
			codecs[alias] = cd
		}
	}
	resolver := index.New(store, codecs)
	values, err := resolver.Resolve(rowSym, oid)
	if err != nil {
		printError("%v", err)
		return exitError
	}

	for _, v := range values {
		if v.Name != "" {
			fmt.Printf("%s (%s) = %s [%s]\n", v.Symbol.Name, v.BaseType, v.Value, v.Name)
		} else {
			fmt.Printf("%s (%s) = %s\n", v.Symbol.Name, v.BaseType, v.Value)
		}
	}
	return exitOK
}
