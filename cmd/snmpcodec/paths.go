package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/BabisK/snmpcodec/config"
)

const pathsUsage = `snmpcodec paths - Show configured MIB search paths

Usage:
  snmpcodec paths [options]

Shows the MIB search paths that would be used: -p flags if given, otherwise
the SNMPCODEC_MIB_PATH environment variable, otherwise the config file's
search paths.

Options:
  -h, --help   Show help

Examples:
  snmpcodec paths
  snmpcodec paths -p /usr/share/snmp/mibs
`

func (c *cli) cmdPaths(args []string) int {
	fs := flag.NewFlagSet("paths", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, pathsUsage) }
	help := fs.Bool("h", false, "show help")
	fs.BoolVar(help, "help", false, "show help")

	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if *help || c.helpFlag {
		_, _ = fmt.Fprint(os.Stdout, pathsUsage)
		return exitOK
	}

	paths := c.paths
	if len(paths) == 0 {
		paths = config.SearchPathsFromEnv(c.loadConfig().Paths.Search)
	}
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "no search paths found")
		return exitOK
	}
	for _, p := range paths {
		fmt.Println(p)
	}
	return exitOK
}
