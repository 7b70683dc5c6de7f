package reporter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbdulElahOthmanGwaith/auto-guardian-system/internal/types"
)

func sampleResult() *types.ScanResult {
	result := types.NewScanResult(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	result.FilesScanned = 3
	result.IssuesFound = 2
	result.IssuesBySeverity[types.SeverityCritical] = 1
	result.IssuesBySeverity[types.SeverityLow] = 1
	result.IssuesByType[types.TypeSecurityVulnerability] = 1
	result.IssuesByType[types.TypeCodeSmell] = 1

	critical := types.Issue{
		File: "/proj/src/app.py", Line: 3, Severity: types.SeverityCritical,
		Type: types.TypeSecurityVulnerability, Message: "Security: Unsafe eval() usage",
		Suggestion: "Move to .env file",
	}
	smell := types.Issue{
		File: "/proj/src/app.py", Line: 8, Column: 4, Severity: types.SeverityLow,
		Type: types.TypeCodeSmell, Message: "print() usage for debugging",
		Suggestion: "Use logger instead of print", Fixable: true,
	}
	result.Issues = []types.Issue{critical, smell}
	result.CriticalIssues = []types.Issue{critical}
	result.AutoFixableIssues = []types.Issue{smell}
	return result
}

func TestNew(t *testing.T) {
	for _, format := range []string{"console", "text", "json", "sarif", "html", "JSON"} {
		rep, err := New(format)
		require.NoError(t, err, "format %q", format)
		assert.NotNil(t, rep)
	}

	_, err := New("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestConsoleReporter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	rep := &ConsoleReporter{plain: true}

	require.NoError(t, rep.Generate(sampleResult(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "Auto-Guardian Scan Report")
	assert.Contains(t, out, "Files scanned: 3")
	assert.Contains(t, out, "Issues found: 2")
	assert.Contains(t, out, "Critical issues: 1")
	assert.Contains(t, out, "Auto-fixable issues: 1")
	assert.Contains(t, out, "[CRITICAL] critical: 1")
	assert.Contains(t, out, "[LOW] low: 1")
	assert.Contains(t, out, "code_smell: 1")
	assert.Contains(t, out, "/proj/src/app.py:3:0")
	assert.Contains(t, out, "Critical issues block the merge and need fixing now.")
	assert.NotContains(t, out, "🔍", "plain mode keeps emoji out of CI logs")
}

// Severity groups are capped at ten entries each.
func TestConsoleReporter_IssueListCap(t *testing.T) {
	result := types.NewScanResult(time.Now())
	for i := 0; i < 12; i++ {
		result.Issues = append(result.Issues, types.Issue{
			File: "big.js", Line: i + 1, Severity: types.SeverityMedium,
			Type: types.TypeCodeSmell, Message: "Use === instead of ==",
		})
	}
	result.IssuesFound = len(result.Issues)
	result.IssuesBySeverity[types.SeverityMedium] = 12
	result.IssuesByType[types.TypeCodeSmell] = 12

	path := filepath.Join(t.TempDir(), "report.txt")
	rep := &ConsoleReporter{plain: true}
	require.NoError(t, rep.Generate(result, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "[MEDIUM] MEDIUM issues (12)")
	assert.Contains(t, out, "... and 2 more")
	assert.Equal(t, 10, strings.Count(out, "big.js:"), "only ten entries listed")
}

func TestConsoleReporter_NoIssues(t *testing.T) {
	result := types.NewScanResult(time.Now())
	result.FilesScanned = 5

	path := filepath.Join(t.TempDir(), "report.txt")
	rep := &ConsoleReporter{plain: true}
	require.NoError(t, rep.Generate(result, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "No issues found!")
	assert.NotContains(t, out, "Recommendations")
	assert.NotContains(t, out, "Issue list")
}

func TestJSONReporter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan-results.json")

	rep := &JSONReporter{}
	require.NoError(t, rep.Generate(sampleResult(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var wire map[string]any
	require.NoError(t, json.Unmarshal(data, &wire))
	for _, key := range []string{"timestamp", "summary", "critical_issues", "auto_fixable_issues", "all_issues"} {
		assert.Contains(t, wire, key)
	}
}

func TestWriteCriticalIssues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "critical-issues.json")

	require.NoError(t, WriteCriticalIssues(sampleResult(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var issues []types.Issue
	require.NoError(t, json.Unmarshal(data, &issues))
	require.Len(t, issues, 1)
	assert.Equal(t, "Security: Unsafe eval() usage", issues[0].Message)
}

func TestSortedTypes(t *testing.T) {
	counts := map[types.IssueType]int{
		types.TypeUnusedCode:  1,
		types.TypeCodeSmell:   2,
		types.TypeSyntaxError: 3,
	}

	keys := sortedTypes(counts)
	require.Len(t, keys, 3)
	assert.Equal(t, types.TypeCodeSmell, keys[0])
	assert.Equal(t, types.TypeSyntaxError, keys[1])
	assert.Equal(t, types.TypeUnusedCode, keys[2])
}
