package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/BabisK/snmpcodec"
	"github.com/BabisK/snmpcodec/config"
	"github.com/BabisK/snmpcodec/mib"
)

const loadUsage = `snmpcodec load - Load and resolve MIB modules

Usage:
  snmpcodec load [options] MODULE...

Options:
  -h, --help   Show help

Examples:
  snmpcodec load IF-MIB
  snmpcodec load -v IF-MIB SNMPv2-MIB
`

func (c *cli) buildSources() ([]snmpcodec.Source, error) {
	paths := c.paths
	if len(paths) == 0 {
		paths = config.SearchPathsFromEnv(c.loadConfig().Paths.Search)
	}
	var sources []snmpcodec.Source
	for _, p := range paths {
		src, err := snmpcodec.DirTree(p)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: cannot access path %s: %v\n", p, err)
			continue
		}
		sources = append(sources, src)
	}
	if len(sources) == 0 {
		return nil, snmpcodec.ErrNoSources
	}
	return sources, nil
}

func (c *cli) load(modules []string) (*mib.Store, error) {
	sources, err := c.buildSources()
	if err != nil {
		return nil, err
	}
	var opts []snmpcodec.LoadOption
	opts = append(opts, snmpcodec.WithSource(sources...))
	opts = append(opts, snmpcodec.WithDiagnosticConfig(c.loadConfig().DiagnosticConfig()))
	if logger := c.setupLogger(); logger != nil {
		opts = append(opts, snmpcodec.WithLogger(logger))
	}
	if len(modules) > 0 {
		opts = append(opts, snmpcodec.WithModules(modules...))
	}
	return snmpcodec.Load(context.Background(), opts...)
}

func (c *cli) cmdLoad(args []string) int {
	fs := flag.NewFlagSet("load", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, loadUsage) }
	help := fs.Bool("h", false, "show help")
	fs.BoolVar(help, "help", false, "show help")

	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if *help || c.helpFlag {
		_, _ = fmt.Fprint(os.Stdout, loadUsage)
		return exitOK
	}

	modules := fs.Args()
	if len(modules) == 0 {
		printError("no modules specified")
		fmt.Fprint(os.Stderr, loadUsage)
		return exitError
	}

	store, loadErr := c.load(modules)
	if loadErr != nil && store == nil {
		printError("failed to load: %v", loadErr)
		return exitError
	}

	names := store.ModuleNames()
	fmt.Printf("Loaded %d module(s)\n", len(names))
	for _, name := range names {
		fmt.Printf("  %s\n", name)
	}

	if loadErr != nil {
		printError("%v", loadErr)
		return exitFail
	}
	return exitOK
}
