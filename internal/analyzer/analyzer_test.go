package analyzer

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbdulElahOthmanGwaith/auto-guardian-system/internal/config"
	"github.com/AbdulElahOthmanGwaith/auto-guardian-system/internal/types"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// fixtureProject writes one python and one javascript file, each tripping
// exactly one rule.
func fixtureProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "app.py", "print(\"debug\")\n")
	writeFile(t, dir, "site.js", "var counter = 0;\n")
	return dir
}

func TestNew_WiresEnabledSources(t *testing.T) {
	cfg := config.Default()
	a := New(cfg)
	assert.Len(t, a.detectors, 2)
	assert.Len(t, a.linters, 2)

	cfg = config.Default()
	cfg.Scan.Detectors = []string{"javascript"}
	cfg.Linters.Enabled = nil
	a = New(cfg)
	require.Len(t, a.detectors, 1)
	assert.Equal(t, "javascript", a.detectors[0].Name())
	assert.Empty(t, a.linters)
}

func TestAnalyze(t *testing.T) {
	t.Setenv("PATH", t.TempDir()) // external linters degrade to no findings
	dir := fixtureProject(t)

	result := New(config.Default()).Analyze(context.Background(), dir)

	assert.Equal(t, 2, result.FilesScanned)
	assert.Equal(t, 2, result.IssuesFound)
	require.Len(t, result.Issues, 2)

	// detector order is fixed: python first, then javascript
	assert.Equal(t, filepath.Join(dir, "app.py"), result.Issues[0].File)
	assert.Equal(t, filepath.Join(dir, "site.js"), result.Issues[1].File)

	assert.Empty(t, result.CriticalIssues)
	assert.Len(t, result.AutoFixableIssues, 2)
	assert.False(t, result.HasCriticalIssues())
}

// Derived counts always add up to the issue list they were computed from.
func TestAnalyze_CountInvariants(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	dir := t.TempDir()
	writeFile(t, dir, "app.py", "print(\"a\")\nx = eval(\"1\")\n")
	writeFile(t, dir, "site.js", "var a = 1;\nif (a == 1) {}\n")

	result := New(config.Default()).Analyze(context.Background(), dir)

	assert.Equal(t, len(result.Issues), result.IssuesFound)

	bySeverity := 0
	for _, n := range result.IssuesBySeverity {
		bySeverity += n
	}
	assert.Equal(t, result.IssuesFound, bySeverity)

	byType := 0
	for _, n := range result.IssuesByType {
		byType += n
	}
	assert.Equal(t, result.IssuesFound, byType)

	assert.Equal(t, len(result.CriticalIssues), result.IssuesBySeverity[types.SeverityCritical])
	assert.True(t, result.HasCriticalIssues(), "eval finding is critical")
}

// A repeat run over an unchanged tree reports the identical issue list.
func TestAnalyze_Deterministic(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	dir := fixtureProject(t)
	cfg := config.Default()

	first := New(cfg).Analyze(context.Background(), dir)
	second := New(cfg).Analyze(context.Background(), dir)

	assert.Equal(t, first.Issues, second.Issues)
	assert.Equal(t, first.FilesScanned, second.FilesScanned)
	assert.Equal(t, first.IssuesBySeverity, second.IssuesBySeverity)
	assert.Equal(t, first.IssuesByType, second.IssuesByType)
}

func TestTally_SubsetsKeepOrderAndOverlap(t *testing.T) {
	critical := types.Issue{File: "a.py", Line: 1, Severity: types.SeverityCritical, Type: types.TypeSecurityVulnerability, Fixable: true}
	low := types.Issue{File: "a.py", Line: 2, Severity: types.SeverityLow, Type: types.TypeCodeSmell, Fixable: true}
	info := types.Issue{File: "b.js", Line: 3, Severity: types.SeverityInfo, Type: types.TypeCodeSmell}

	result := types.NewScanResult(time.Now())
	tally(result, []types.Issue{critical, low, info})

	assert.Equal(t, 3, result.IssuesFound)
	require.Len(t, result.CriticalIssues, 1)
	assert.Equal(t, critical, result.CriticalIssues[0])
	// a critical fixable issue sits in both subsets
	require.Len(t, result.AutoFixableIssues, 2)
	assert.Equal(t, critical, result.AutoFixableIssues[0])
	assert.Equal(t, low, result.AutoFixableIssues[1])
	assert.Equal(t, 2, result.IssuesByType[types.TypeCodeSmell])
}

func TestTally_Reset(t *testing.T) {
	result := types.NewScanResult(time.Now())
	tally(result, []types.Issue{{Severity: types.SeverityCritical}})
	tally(result, nil)

	assert.Zero(t, result.IssuesFound)
	assert.Empty(t, result.CriticalIssues)
	assert.Empty(t, result.IssuesBySeverity)
}
