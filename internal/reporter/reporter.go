package reporter

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/AbdulElahOthmanGwaith/auto-guardian-system/internal/types"
)

// Reporter renders a scan result. An empty outputFile means stdout.
type Reporter interface {
	Generate(result *types.ScanResult, outputFile string) error
}

// New returns the reporter for an output format name.
func New(format string) (Reporter, error) {
	switch strings.ToLower(format) {
	case "console", "text":
		return NewConsole(), nil
	case "json":
		return &JSONReporter{}, nil
	case "sarif":
		return &SARIFReporter{}, nil
	case "html":
		return &HTMLReporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// ConsoleReporter prints a human-readable run summary. Emoji markers are
// dropped when stdout is not a terminal so CI logs stay clean.
type ConsoleReporter struct {
	plain bool
}

func NewConsole() *ConsoleReporter {
	return &ConsoleReporter{
		plain: !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()),
	}
}

func (r *ConsoleReporter) Generate(result *types.ScanResult, outputFile string) error {
	var b strings.Builder

	b.WriteString(r.heading("🔍", "Auto-Guardian Scan Report") + "\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	b.WriteString(r.heading("📊", "Summary") + "\n")
	b.WriteString(strings.Repeat("-", 20) + "\n")
	fmt.Fprintf(&b, "Files scanned: %d\n", result.FilesScanned)
	fmt.Fprintf(&b, "Issues found: %d\n", result.IssuesFound)
	fmt.Fprintf(&b, "Critical issues: %d\n", len(result.CriticalIssues))
	fmt.Fprintf(&b, "Auto-fixable issues: %d\n\n", len(result.AutoFixableIssues))

	if result.IssuesFound > 0 {
		b.WriteString(r.heading("⚠️", "Issues by severity") + "\n")
		b.WriteString(strings.Repeat("-", 20) + "\n")
		for _, sev := range types.SeverityOrder() {
			if count := result.IssuesBySeverity[sev]; count > 0 {
				fmt.Fprintf(&b, "%s %s: %d\n", r.badge(sev), sev, count)
			}
		}
		b.WriteString("\n")

		b.WriteString(r.heading("📂", "Issues by type") + "\n")
		b.WriteString(strings.Repeat("-", 20) + "\n")
		for _, t := range sortedTypes(result.IssuesByType) {
			fmt.Fprintf(&b, "  %s: %d\n", t, result.IssuesByType[t])
		}
		b.WriteString("\n")

		r.writeIssueList(&b, result.Issues)
	} else {
		b.WriteString(r.heading("✅", "No issues found!") + "\n\n")
	}

	if result.IssuesFound > 0 {
		b.WriteString(r.heading("💡", "Recommendations") + "\n")
		b.WriteString(strings.Repeat("-", 20) + "\n")
		if result.IssuesBySeverity[types.SeverityCritical] > 0 {
			b.WriteString("Critical issues block the merge and need fixing now.\n")
		}
		if result.IssuesBySeverity[types.SeverityHigh] > 0 {
			b.WriteString("High issues should be fixed before release.\n")
		}
		if result.IssuesBySeverity[types.SeverityMedium] > 0 {
			b.WriteString("Medium issues can be cleaned up gradually.\n")
		}
	}

	if outputFile != "" {
		return os.WriteFile(outputFile, []byte(b.String()), 0o644)
	}
	fmt.Print(b.String())
	return nil
}

// writeIssueList groups issues by severity, worst first, capped at ten per
// group.
func (r *ConsoleReporter) writeIssueList(b *strings.Builder, issues []types.Issue) {
	b.WriteString(r.heading("🐛", "Issue list") + "\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	grouped := make(map[types.Severity][]types.Issue)
	for _, issue := range issues {
		grouped[issue.Severity] = append(grouped[issue.Severity], issue)
	}

	for _, sev := range types.SeverityOrder() {
		group := grouped[sev]
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(b, "%s %s issues (%d)\n", r.badge(sev), strings.ToUpper(sev.String()), len(group))
		b.WriteString(strings.Repeat("-", 30) + "\n")

		for i, issue := range group {
			if i >= 10 {
				fmt.Fprintf(b, "  ... and %d more\n", len(group)-i)
				break
			}
			fmt.Fprintf(b, "  %s:%d:%d\n", issue.File, issue.Line, issue.Column)
			if issue.RuleID != "" {
				fmt.Fprintf(b, "     [%s] %s\n", issue.RuleID, issue.Message)
			} else {
				fmt.Fprintf(b, "     %s\n", issue.Message)
			}
			if issue.Suggestion != "" {
				fmt.Fprintf(b, "     %s %s\n", r.mark("💡"), issue.Suggestion)
			}
			b.WriteString("\n")
		}
	}
}

func (r *ConsoleReporter) heading(emoji, text string) string {
	if r.plain {
		return text
	}
	return emoji + " " + text
}

func (r *ConsoleReporter) mark(emoji string) string {
	if r.plain {
		return ">"
	}
	return emoji
}

func (r *ConsoleReporter) badge(sev types.Severity) string {
	if r.plain {
		return "[" + strings.ToUpper(sev.String()) + "]"
	}
	switch sev {
	case types.SeverityCritical:
		return "🚨"
	case types.SeverityHigh:
		return "⚠️"
	case types.SeverityMedium:
		return "📝"
	case types.SeverityLow:
		return "💡"
	case types.SeverityInfo:
		return "ℹ️"
	default:
		return "❓"
	}
}

func sortedTypes(counts map[types.IssueType]int) []types.IssueType {
	keys := make([]types.IssueType, 0, len(counts))
	for t := range counts {
		keys = append(keys, t)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	return keys
}

// JSONReporter persists the full result document.
type JSONReporter struct{}

func (r *JSONReporter) Generate(result *types.ScanResult, outputFile string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	if outputFile != "" {
		return os.WriteFile(outputFile, data, 0o644)
	}
	fmt.Println(string(data))
	return nil
}

// WriteCriticalIssues saves the critical subset as its own document so CI
// steps can act on it without parsing the full result.
func WriteCriticalIssues(result *types.ScanResult, path string) error {
	data, err := json.MarshalIndent(result.CriticalIssues, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal critical issues: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
