package rules

import (
	"context"
	"regexp"
	"strings"

	"github.com/AbdulElahOthmanGwaith/auto-guardian-system/internal/logging"
	"github.com/AbdulElahOthmanGwaith/auto-guardian-system/internal/parser"
	"github.com/AbdulElahOthmanGwaith/auto-guardian-system/internal/types"
)

var (
	jsLooseEqRe = regexp.MustCompile(`[^=!]==[^=]`)
	jsVarRe     = regexp.MustCompile(`\bvar\s+\w+`)
	jsConsoleRe = regexp.MustCompile(`console\.(log|debug|info)`)
)

// JavaScriptDetector scans *.js and *.ts files with the built-in rule set.
// TypeScript shares the JavaScript rules.
type JavaScriptDetector struct {
	excludeDirs []string
}

func NewJavaScriptDetector(excludeDirs []string) *JavaScriptDetector {
	return &JavaScriptDetector{excludeDirs: excludeDirs}
}

func (d *JavaScriptDetector) Name() string { return "javascript" }

func (d *JavaScriptDetector) Scan(ctx context.Context, root string) ([]types.Issue, int) {
	files := collectFiles(root, []string{".js", ".ts"}, d.excludeDirs)

	var issues []types.Issue
	for _, path := range files {
		src, err := parser.Load(path)
		if err != nil {
			logging.Logger.Warnw("read failed", "file", path, "error", err)
			continue
		}
		issues = append(issues, d.scanFile(src)...)
	}
	return issues, len(files)
}

func (d *JavaScriptDetector) scanFile(src *parser.SourceFile) []types.Issue {
	var issues []types.Issue

	for i, line := range src.Lines {
		lineNum := i + 1

		if jsLooseEqRe.MatchString(line) {
			issues = append(issues, types.Issue{
				File:       src.Path,
				Line:       lineNum,
				Column:     strings.Index(line, "=="),
				Severity:   types.SeverityMedium,
				Type:       types.TypeCodeSmell,
				Message:    "Use === instead of ==",
				Suggestion: "Use === for strict comparison",
				Fixable:    true,
			})
		}

		if jsVarRe.MatchString(line) {
			issues = append(issues, types.Issue{
				File:       src.Path,
				Line:       lineNum,
				Column:     strings.Index(line, "var"),
				Severity:   types.SeverityLow,
				Type:       types.TypeDeprecatedUsage,
				Message:    "Use let/const instead of var",
				Suggestion: "Use let or const",
				Fixable:    true,
			})
		}

		if jsConsoleRe.MatchString(line) {
			issues = append(issues, types.Issue{
				File:       src.Path,
				Line:       lineNum,
				Column:     strings.Index(line, "console"),
				Severity:   types.SeverityInfo,
				Type:       types.TypeCodeSmell,
				Message:    "Remaining console.log statement",
				Suggestion: "Remove or use logger",
				Fixable:    true,
			})
		}
	}

	return issues
}
