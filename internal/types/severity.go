package types

import (
	"fmt"
	"strings"
)

// Severity is the issue severity level.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

// severityOrder lists severities from worst to least for display grouping.
// Gating never compares against this order; it tests SeverityCritical exactly.
var severityOrder = []Severity{
	SeverityCritical,
	SeverityHigh,
	SeverityMedium,
	SeverityLow,
	SeverityInfo,
}

// SeverityOrder returns the display order, worst first.
func SeverityOrder() []Severity {
	out := make([]Severity, len(severityOrder))
	copy(out, severityOrder)
	return out
}

func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "critical"
	case SeverityHigh:
		return "high"
	case SeverityMedium:
		return "medium"
	case SeverityLow:
		return "low"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// ParseSeverity converts a severity tag to its Severity value.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "critical":
		return SeverityCritical, nil
	case "high":
		return SeverityHigh, nil
	case "medium":
		return SeverityMedium, nil
	case "low":
		return SeverityLow, nil
	case "info":
		return SeverityInfo, nil
	default:
		return SeverityInfo, fmt.Errorf("unknown severity %q", s)
	}
}

// MarshalText keeps the wire representation on the string tag, never the
// numeric value, both as a JSON value and as a map key.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(text []byte) error {
	v, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// IssueType classifies what kind of problem an issue reports. Types are
// descriptive only; they never affect gating.
type IssueType int

const (
	TypeSyntaxError IssueType = iota
	TypeLintingError
	TypeSecurityVulnerability
	TypeCodeSmell
	TypeDeprecatedUsage
	TypePerformanceIssue
	TypeStyleViolation
	TypeTypeError
	TypeUnusedCode
	TypeImportError
)

func (t IssueType) String() string {
	switch t {
	case TypeSyntaxError:
		return "syntax_error"
	case TypeLintingError:
		return "linting_error"
	case TypeSecurityVulnerability:
		return "security_vulnerability"
	case TypeCodeSmell:
		return "code_smell"
	case TypeDeprecatedUsage:
		return "deprecated_usage"
	case TypePerformanceIssue:
		return "performance_issue"
	case TypeStyleViolation:
		return "style_violation"
	case TypeTypeError:
		return "type_error"
	case TypeUnusedCode:
		return "unused_code"
	case TypeImportError:
		return "import_error"
	default:
		return "unknown"
	}
}

// ParseIssueType converts a type tag to its IssueType value.
func ParseIssueType(s string) (IssueType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "syntax_error":
		return TypeSyntaxError, nil
	case "linting_error":
		return TypeLintingError, nil
	case "security_vulnerability":
		return TypeSecurityVulnerability, nil
	case "code_smell":
		return TypeCodeSmell, nil
	case "deprecated_usage":
		return TypeDeprecatedUsage, nil
	case "performance_issue":
		return TypePerformanceIssue, nil
	case "style_violation":
		return TypeStyleViolation, nil
	case "type_error":
		return TypeTypeError, nil
	case "unused_code":
		return TypeUnusedCode, nil
	case "import_error":
		return TypeImportError, nil
	default:
		return TypeLintingError, fmt.Errorf("unknown issue type %q", s)
	}
}

func (t IssueType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *IssueType) UnmarshalText(text []byte) error {
	v, err := ParseIssueType(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
