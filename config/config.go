// Package config loads the on-disk YAML configuration for the snmpcodec
// CLI: default MIB search paths, diagnostic strictness preset, and which
// primitive codec names the index resolver should treat as aliases.
// Environment variables override the file, following the common envOr
// pattern for letting a deployment override search directories without
// touching the config file itself.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/BabisK/snmpcodec/internal/types"
)

// Paths holds the directories searched for MIB module source files.
type Paths struct {
	// Search lists directories scanned, in order, by the default Source
	// (see [SearchPathsFromEnv]'s SNMPCODEC_MIB_PATH handling).
	Search []string `yaml:"search"`
}

// SearchPathsFromEnv reads SNMPCODEC_MIB_PATH (a PATH-style, OS-separator
// delimited list) when set, falling back to def.
func SearchPathsFromEnv(def []string) []string {
	v := os.Getenv("SNMPCODEC_MIB_PATH")
	if v == "" {
		return def
	}
	return strings.Split(v, string(os.PathListSeparator))
}

// Config is the fully parsed on-disk configuration.
type Config struct {
	Paths Paths `yaml:"paths"`

	// Strictness selects one of types.StrictConfig / DefaultConfig /
	// PermissiveConfig by name: "strict", "normal", "permissive", "silent".
	Strictness string `yaml:"strictness"`

	// Codecs lists extra SMI base type name aliases to register against an
	// existing codec, e.g. {"Counter": "Unsigned32"} so a registry keyed
	// only by the v2 names still answers v1 lookups.
	Codecs map[string]string `yaml:"codecs"`
}

// Default returns the zero-value configuration: no search paths beyond the
// environment override, normal strictness, no extra codec aliases.
func Default() Config {
	return Config{Strictness: "normal"}
}

// DiagnosticConfig resolves c.Strictness to a types.DiagnosticConfig preset,
// defaulting to types.DefaultConfig for an empty or unrecognized value.
func (c Config) DiagnosticConfig() types.DiagnosticConfig {
	switch strings.ToLower(c.Strictness) {
	case "strict":
		return types.StrictConfig()
	case "permissive":
		return types.PermissiveConfig()
	case "silent":
		return types.DiagnosticConfig{Level: types.StrictnessSilent}
	default:
		return types.DefaultConfig()
	}
}

// Load reads path and overlays it onto Default(). A missing file is not an
// error — it returns Default() unchanged, since every field has a usable
// zero value, matching the stance that a missing config directory is a
// valid deployment, not a fatal condition.
func Load(path string, logger *slog.Logger) (Config, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(noopWriter{}, nil))
	}
	cfg := Default()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("config: no file, using defaults", "path", path)
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(false)
	if err := dec.Decode(&cfg); err != nil {
		return Default(), fmt.Errorf("config: decode %q: %w", path, err)
	}
	logger.Debug("config: loaded", "path", path, "search_paths", len(cfg.Paths.Search))
	return cfg, nil
}

// FindConfigFile searches the given directories in order for the first file
// named "snmpcodec.yaml" or "snmpcodec.yml", returning "" if none exist.
func FindConfigFile(dirs []string) string {
	for _, dir := range dirs {
		for _, name := range []string{"snmpcodec.yaml", "snmpcodec.yml"} {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate
			}
		}
	}
	return ""
}

type noopWriter struct{}

func (noopWriter) Write(p []byte) (int, error) { return len(p), nil }
