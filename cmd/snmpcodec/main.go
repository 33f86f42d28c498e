// Command snmpcodec is a CLI tool for loading and querying SMI MIB modules.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"strings"

	"github.com/BabisK/snmpcodec/config"
	"github.com/BabisK/snmpcodec/internal/types"
)

// Exit codes.
const (
	exitOK    = 0 // success
	exitError = 1 // user error or load failure
	exitFail  = 2 // the load produced a Store but also reported errors
)

const usage = `snmpcodec - SMI MIB compiler and index codec tool

Usage:
  snmpcodec <command> [options] [arguments]

Commands:
  load     Load and resolve MIB modules
  get      Look up a symbol or numeric OID
  index    Decode an instance OID against a table row's INDEX
  paths    Show configured MIB search paths
  version  Show version

Common options:
  -p, --path PATH   Add MIB search path (repeatable)
  -v, --verbose     Enable debug logging
  -vv               Enable trace logging (implies -v)
  -h, --help        Show help

Examples:
  snmpcodec load IF-MIB
  snmpcodec get -m IF-MIB ifIndex
  snmpcodec index -m IF-MIB ifEntry 7
  snmpcodec paths
`

type cli struct {
	verbose  int
	paths    []string
	config   string
	helpFlag bool

	cfg     config.Config
	cfgOnce bool
}

// loadConfig reads the CLI's on-disk configuration once and caches it;
// --config names a file directly, otherwise the current directory is
// searched for snmpcodec.yaml/.yml.
func (c *cli) loadConfig() config.Config {
	if c.cfgOnce {
		return c.cfg
	}
	c.cfgOnce = true
	path := c.config
	if path == "" {
		path = config.FindConfigFile([]string{"."})
	}
	if path == "" {
		c.cfg = config.Default()
		return c.cfg
	}
	cfg, err := config.Load(path, c.setupLogger())
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		cfg = config.Default()
	}
	c.cfg = cfg
	return c.cfg
}

func main() {
	os.Exit(run())
}

func run() int {
	var c cli
	args := os.Args[1:]
	var cmdArgs []string
	var cmd string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-h" || arg == "--help":
			c.helpFlag = true
		case arg == "-v" || arg == "--verbose":
			if c.verbose < 1 {
				c.verbose = 1
			}
		case arg == "-vv":
			c.verbose = 2
		case arg == "-p" || arg == "--path":
			if i+1 < len(args) {
				i++
				c.paths = append(c.paths, args[i])
			}
		case strings.HasPrefix(arg, "-p"):
			c.paths = append(c.paths, arg[2:])
		case strings.HasPrefix(arg, "--path="):
			c.paths = append(c.paths, arg[7:])
		case arg == "--config":
			if i+1 < len(args) {
				i++
				c.config = args[i]
			}
		case strings.HasPrefix(arg, "--config="):
			c.config = arg[9:]
		case len(arg) > 0 && arg[0] == '-':
			cmdArgs = append(cmdArgs, arg)
		default:
			if cmd == "" {
				cmd = arg
			} else {
				cmdArgs = append(cmdArgs, arg)
			}
		}
	}

	if c.helpFlag && cmd == "" {
		_, _ = fmt.Fprint(os.Stdout, usage)
		return exitOK
	}
	if cmd == "" {
		_, _ = fmt.Fprint(os.Stderr, usage)
		return exitError
	}

	switch cmd {
	case "load":
		return c.cmdLoad(cmdArgs)
	case "get":
		return c.cmdGet(cmdArgs)
	case "index":
		return c.cmdIndex(cmdArgs)
	case "paths":
		return c.cmdPaths(cmdArgs)
	case "version":
		printVersion()
		return exitOK
	case "help":
		_, _ = fmt.Fprint(os.Stdout, usage)
		return exitOK
	default:
		_, _ = fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", cmd)
		_, _ = fmt.Fprint(os.Stderr, usage)
		return exitError
	}
}

func (c *cli) setupLogger() *slog.Logger {
	if c.verbose == 0 {
		return nil
	}
	level := slog.LevelDebug
	if c.verbose >= 2 {
		level = types.LevelTrace
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func printVersion() {
	version := "(devel)"
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		version = info.Main.Version
	}
	fmt.Printf("snmpcodec %s\n", version)
}

func printError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
