package snmpcodec

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"runtime"
	"sync"

	"github.com/BabisK/snmpcodec/internal/graph"
	"github.com/BabisK/snmpcodec/internal/types"
	"github.com/BabisK/snmpcodec/mib"
)

// ErrNoSources is returned when Load is called with no sources configured.
var ErrNoSources = errors.New("no MIB sources provided")

// ErrMissingModules is returned when a name passed to WithModules was not
// found in any configured source. The Store is still returned with
// whatever modules could be loaded.
var ErrMissingModules = errors.New("requested modules not found")

// LoadOption configures Load.
type LoadOption func(*loadConfig)

type loadConfig struct {
	logger     *slog.Logger
	sources    []Source
	modules    []string
	hasModules bool
	diag       types.DiagnosticConfig
}

// WithLogger sets the logger Load and every compiled module use for
// debug/trace output. Omit for zero-overhead silence.
func WithLogger(logger *slog.Logger) LoadOption {
	return func(c *loadConfig) { c.logger = logger }
}

// WithSource appends one or more MIB sources, searched in the order added.
func WithSource(src ...Source) LoadOption {
	return func(c *loadConfig) { c.sources = append(c.sources, src...) }
}

// WithDiagnosticConfig sets the strictness policy applied to every
// compiled module's diagnostics: ShouldFail promotes a diagnostic to a
// load error, ShouldReport keeps it (logged at warning level). Omit for
// [types.DefaultConfig].
func WithDiagnosticConfig(diag types.DiagnosticConfig) LoadOption {
	return func(c *loadConfig) { c.diag = diag }
}

// WithModules restricts loading to the named modules and their transitive
// IMPORTS. Omit to load every module discoverable from the configured
// sources.
func WithModules(names ...string) LoadOption {
	return func(c *loadConfig) {
		c.modules = append(c.modules, names...)
		c.hasModules = true
	}
}

// Load compiles every MIB module reachable from the configured sources:
// each module is compiled independently and concurrently, and the
// resulting per-module Stores are merged into one, in an order following
// each module's IMPORTS dependencies so a module merges after the modules
// it imports from (an [internal/graph] dependency-graph walk, not a
// correctness requirement of Store.Merge itself, which only rejects
// overlapping symbols regardless of order). Once every module is merged,
// each module's IMPORTS entries are validated against the merged Store;
// an import with no defining module anywhere in the load is reported as
// part of the returned error.
func Load(ctx context.Context, opts ...LoadOption) (*mib.Store, error) {
	cfg := loadConfig{diag: types.DefaultConfig()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if len(cfg.sources) == 0 {
		return nil, ErrNoSources
	}

	log := types.Logger{L: cfg.logger}

	var paths []string
	for _, src := range cfg.sources {
		files, err := src.ListFiles()
		if err != nil {
			return nil, err
		}
		paths = append(paths, files...)
	}

	type compiled struct {
		path   string
		result CompileResult
	}
	results := make(chan compiled, len(paths))
	sem := make(chan struct{}, max(1, runtime.NumCPU()))
	var wg sync.WaitGroup

	for _, path := range paths {
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			select {
			case <-ctx.Done():
				return
			case sem <- struct{}{}:
			}
			defer func() { <-sem }()

			content, err := readPath(cfg.sources, path)
			if err != nil {
				if log.Enabled(slog.LevelWarn) {
					log.Log(slog.LevelWarn, "module read error", slog.String("path", path), slog.String("error", err.Error()))
				}
				return
			}
			results <- compiled{path: path, result: CompileModule(content, cfg.diag, log)}
		}(path)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	byModule := make(map[string]CompileResult)
	var loadErrs []error
	for c := range results {
		if _, exists := byModule[c.result.ModuleName]; exists {
			continue // first compiled wins; compiles run concurrently, so this is not necessarily the earliest source's file
		}
		byModule[c.result.ModuleName] = c.result
		loadErrs = append(loadErrs, c.result.Errors...)
		for _, d := range c.result.Diagnostics {
			if log.Enabled(slog.LevelWarn) {
				log.Log(slog.LevelWarn, "diagnostic", slog.String("path", c.path), slog.String("detail", d.String()))
			}
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if cfg.hasModules {
		missing := filterRequested(byModule, cfg.modules)
		if len(missing) > 0 {
			loadErrs = append(loadErrs, fmt.Errorf("%w: %v", ErrMissingModules, missing))
		}
	}

	merged, cycles, mergeErrs := mergeInDependencyOrder(byModule, log)
	loadErrs = append(loadErrs, mergeErrs...)
	for _, cyc := range cycles {
		if log.Enabled(slog.LevelWarn) {
			log.Log(slog.LevelWarn, "import cycle detected", slog.Any("modules", cyc))
		}
	}

	loadErrs = append(loadErrs, merged.ValidateImports()...)

	return merged, errors.Join(loadErrs...)
}

// filterRequested removes from byModule every module not transitively
// reachable from names via IMPORTS, returning the names that were
// requested but never compiled at all.
func filterRequested(byModule map[string]CompileResult, names []string) []string {
	keep := map[string]bool{}
	var walk func(name string)
	walk = func(name string) {
		if keep[name] {
			return
		}
		r, ok := byModule[name]
		if !ok {
			return
		}
		keep[name] = true
		if m, ok := r.Store.Module(name); ok {
			for _, from := range m.Imports {
				walk(from)
			}
		}
	}
	var missing []string
	for _, name := range names {
		if _, ok := byModule[name]; !ok {
			missing = append(missing, name)
			continue
		}
		walk(name)
	}
	for name := range byModule {
		if !keep[name] {
			delete(byModule, name)
		}
	}
	return missing
}

// mergeInDependencyOrder merges every compiled module's Store into one
// aggregate Store, ordering the merge so a module's imports are merged
// before the module itself. Import cycles don't block the merge (Store's
// deferred-resolution design tolerates them); they're only reported back
// for the caller to log. A Merge rejection (an overlapping module or
// Symbol) skips that module's Store and is returned for the caller to
// fold into the load error.
func mergeInDependencyOrder(byModule map[string]CompileResult, log types.Logger) (*mib.Store, [][]string, []error) {
	g := graph.New()
	for name, r := range byModule {
		sym := mib.NewSymbol("", name)
		g.AddNode(sym, graph.NodeKindModule)
		if m, ok := r.Store.Module(name); ok {
			for _, from := range m.Imports {
				if from != name {
					g.AddEdge(sym, mib.NewSymbol("", from))
				}
			}
		}
	}

	order, _ := g.ResolutionOrder()
	merged := mib.NewStore(log)
	seen := map[string]bool{}
	var mergeErrs []error
	mergeOne := func(name string) {
		if seen[name] {
			return
		}
		seen[name] = true
		if r, ok := byModule[name]; ok {
			if err := merged.Merge(r.Store); err != nil {
				mergeErrs = append(mergeErrs, err)
			}
		}
	}
	for _, sym := range order {
		mergeOne(sym.Name)
	}
	for name := range byModule {
		mergeOne(name)
	}

	var cycles [][]string
	for _, scc := range g.FindCycles() {
		names := make([]string, len(scc))
		for i, sym := range scc {
			names[i] = sym.Name
		}
		cycles = append(cycles, names)
	}
	return merged, cycles, mergeErrs
}

func readPath(sources []Source, path string) ([]byte, error) {
	for _, src := range sources {
		files, err := src.ListFiles()
		if err != nil {
			continue
		}
		for _, f := range files {
			if f != path {
				continue
			}
			result, err := src.Find(moduleNameFromPath(path))
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					continue
				}
				return nil, err
			}
			defer result.Reader.Close()
			return io.ReadAll(result.Reader)
		}
	}
	return nil, fs.ErrNotExist
}
