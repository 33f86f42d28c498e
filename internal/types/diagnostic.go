package types

import (
	"fmt"
	"slices"
	"strings"
)

// Severity ranks a Diagnostic. Lower values are more severe, mirroring the
// "fail loud, then taper off" ordering used throughout the diagnostic model.
type Severity int

const (
	SeverityFatal Severity = iota
	SeveritySevere
	SeverityError
	SeverityMinor
	SeverityWarning
	SeverityInfo
)

// AtLeast reports whether this severity is at least as severe as other
// (i.e. its numeric value is <= other's).
func (s Severity) AtLeast(other Severity) bool { return s <= other }

func (s Severity) String() string {
	switch s {
	case SeverityFatal:
		return "fatal"
	case SeveritySevere:
		return "severe"
	case SeverityError:
		return "error"
	case SeverityMinor:
		return "minor"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// StrictnessLevel selects a diagnostic reporting preset.
type StrictnessLevel int

const (
	StrictnessStrict StrictnessLevel = iota
	StrictnessNormal
	StrictnessPermissive
	StrictnessSilent
)

// Diagnostic codes. Centralizing these as constants prevents silent
// breakage from typos in string literals scattered across phases.
const (
	DiagLexError              = "lex-error"
	DiagParseError            = "parse-error"
	DiagInvalidAssignment     = "invalid-assignment"
	DiagDuplicateModule       = "duplicate-module"
	DiagDuplicateSymbol       = "duplicate-symbol"
	DiagUnresolvedImport      = "unresolved-import"
	DiagTypeCycle             = "type-cycle"
	DiagConstraintViolation   = "constraint-violation"
	DiagTrailingIndex         = "trailing-index"
	DiagUnknownSMIType        = "unknown-smi-type"
	DiagIdentifierUnderscore  = "identifier-underscore"
	DiagIdentifierLength      = "identifier-length"
	DiagUnknownMacroAttribute = "unknown-macro-attribute"
)

// Diagnostic is a single compile-time issue with source location.
type Diagnostic struct {
	Severity Severity
	Code     string
	Span     Span
	Module   string // source module name, set once known
	Line     int    // 1-based, 0 if not resolved
	Column   int    // 1-based, 0 if not resolved
	Message  string
}

// String renders "[severity] module:line:col: message (code)".
func (d Diagnostic) String() string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(d.Severity.String())
	b.WriteString("] ")
	if d.Module != "" {
		b.WriteString(d.Module)
		if d.Line > 0 {
			fmt.Fprintf(&b, ":%d", d.Line)
			if d.Column > 0 {
				fmt.Fprintf(&b, ":%d", d.Column)
			}
		}
		b.WriteString(": ")
	}
	b.WriteString(d.Message)
	if d.Code != "" {
		fmt.Fprintf(&b, " (%s)", d.Code)
	}
	return b.String()
}

// DiagnosticConfig controls strictness and per-code filtering, applied by
// each phase before a Diagnostic is recorded or before it is allowed to
// abort a load.
type DiagnosticConfig struct {
	Level     StrictnessLevel
	FailAt    Severity
	Overrides map[string]Severity
	Ignore    []string // glob patterns, "*" wildcard only
}

// DefaultConfig reports Minor and above, fails the load on Severe or worse.
func DefaultConfig() DiagnosticConfig {
	return DiagnosticConfig{Level: StrictnessNormal, FailAt: SeveritySevere}
}

// StrictConfig reports everything and fails on Severe or worse.
func StrictConfig() DiagnosticConfig {
	return DiagnosticConfig{Level: StrictnessStrict, FailAt: SeveritySevere}
}

// PermissiveConfig reports Warning and above, and ignores common vendor-MIB
// style violations (underscore/length) that would otherwise be noise.
func PermissiveConfig() DiagnosticConfig {
	return DiagnosticConfig{
		Level:  StrictnessPermissive,
		FailAt: SeverityFatal,
		Ignore: []string{DiagIdentifierUnderscore, DiagIdentifierLength},
	}
}

// ShouldReport decides whether a diagnostic at the given code/severity
// should be kept, after applying ignores and severity overrides.
func (c DiagnosticConfig) ShouldReport(code string, sev Severity) bool {
	if slices.ContainsFunc(c.Ignore, func(pattern string) bool { return matchGlob(pattern, code) }) {
		return false
	}
	if override, ok := c.Overrides[code]; ok {
		sev = override
	}
	switch {
	case c.Level >= StrictnessSilent:
		return false
	case c.Level == StrictnessStrict:
		return true
	default:
		return int(sev) <= int(c.Level)+2 // Normal reports Minor+, Permissive reports Warning+
	}
}

// ShouldFail reports whether a diagnostic at this severity should abort
// the current module's compilation.
func (c DiagnosticConfig) ShouldFail(sev Severity) bool {
	return sev <= c.FailAt
}

func matchGlob(pattern, s string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "*"); ok {
		return strings.HasPrefix(s, prefix)
	}
	if suffix, ok := strings.CutPrefix(pattern, "*"); ok {
		return strings.HasSuffix(s, suffix)
	}
	return pattern == s
}
