package analyzer

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/AbdulElahOthmanGwaith/auto-guardian-system/internal/config"
	"github.com/AbdulElahOthmanGwaith/auto-guardian-system/internal/linter"
	"github.com/AbdulElahOthmanGwaith/auto-guardian-system/internal/logging"
	"github.com/AbdulElahOthmanGwaith/auto-guardian-system/internal/rules"
	"github.com/AbdulElahOthmanGwaith/auto-guardian-system/internal/types"
)

// Analyzer folds every issue source into one scan result.
type Analyzer struct {
	cfg       *config.Config
	detectors []rules.Detector
	linters   []linter.Linter
}

// New wires the scan pipeline from the configuration. Source order is
// fixed: the python detector, the javascript detector, flake8, eslint.
// Disabled sources drop out without disturbing the order of the rest.
func New(cfg *config.Config) *Analyzer {
	a := &Analyzer{cfg: cfg}

	if cfg.DetectorEnabled("python") {
		a.detectors = append(a.detectors, rules.NewPythonDetector(cfg.Scan.ExcludeDirs))
	}
	if cfg.DetectorEnabled("javascript") {
		a.detectors = append(a.detectors, rules.NewJavaScriptDetector(cfg.Scan.ExcludeDirs))
	}
	if cfg.LinterEnabled("flake8") {
		a.linters = append(a.linters, linter.NewFlake8(cfg.Linters.Flake8MaxLineLen))
	}
	if cfg.LinterEnabled("eslint") {
		a.linters = append(a.linters, linter.NewESLint())
	}
	return a
}

// Analyze runs every source in order and aggregates their issues.
// Concatenation preserves each source's emission order; issues are never
// deduplicated, reordered, or dropped, so a repeat run over an unchanged
// tree produces an identical result.
func (a *Analyzer) Analyze(ctx context.Context, root string) *types.ScanResult {
	start := time.Now()
	runID := uuid.NewString()
	logging.Logger.Infow("starting analysis", "run_id", runID, "root", root)

	result := types.NewScanResult(start)

	var issues []types.Issue
	for _, d := range a.detectors {
		found, scanned := d.Scan(ctx, root)
		issues = append(issues, found...)
		result.FilesScanned += scanned
		logging.Logger.Debugw("detector finished",
			"run_id", runID, "detector", d.Name(),
			"files", scanned, "issues", len(found))
	}
	for _, l := range a.linters {
		found := l.Run(ctx, root)
		issues = append(issues, found...)
		logging.Logger.Debugw("linter finished",
			"run_id", runID, "linter", l.Name(), "issues", len(found))
	}

	tally(result, issues)

	logging.Logger.Infow("analysis complete",
		"run_id", runID,
		"files_scanned", result.FilesScanned,
		"issues_found", result.IssuesFound,
		"critical", len(result.CriticalIssues),
		"auto_fixable", len(result.AutoFixableIssues),
		"duration", time.Since(start))

	return result
}

// tally installs the issue list on the result and recomputes every derived
// count. The critical and auto-fixable subsets keep emission order; an issue
// can appear in both.
func tally(result *types.ScanResult, issues []types.Issue) {
	result.Issues = issues
	result.IssuesFound = len(issues)
	result.IssuesBySeverity = make(map[types.Severity]int)
	result.IssuesByType = make(map[types.IssueType]int)
	result.CriticalIssues = nil
	result.AutoFixableIssues = nil

	for _, issue := range issues {
		result.IssuesBySeverity[issue.Severity]++
		result.IssuesByType[issue.Type]++
		if issue.Severity == types.SeverityCritical {
			result.CriticalIssues = append(result.CriticalIssues, issue)
		}
		if issue.Fixable {
			result.AutoFixableIssues = append(result.AutoFixableIssues, issue)
		}
	}
}
