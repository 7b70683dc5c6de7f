package reporter

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/AbdulElahOthmanGwaith/auto-guardian-system/internal/types"
)

// severityLabel is the display label used in rendered reports.
func severityLabel(s types.Severity) string {
	switch s {
	case types.SeverityCritical:
		return "Critical"
	case types.SeverityHigh:
		return "High"
	case types.SeverityMedium:
		return "Medium"
	case types.SeverityLow:
		return "Low"
	default:
		return "Info"
	}
}

// PRComment renders the Markdown comment posted on pull requests: summary
// table, applied auto-fixes, outstanding critical issues, and the merge
// verdict.
func PRComment(result *types.ScanResult, now time.Time) string {
	var lines []string
	add := func(s string) { lines = append(lines, s) }

	add("## Quality Scan Report - Auto-Guardian")
	add("")
	add(fmt.Sprintf("**Scan Date:** %s", now.Format("2006-01-02 15:04:05")))
	add(fmt.Sprintf("**Files Scanned:** %d", result.FilesScanned))
	add(fmt.Sprintf("**Total Issues:** %d", result.IssuesFound))
	add("")

	add("### Issues Summary")
	add("")
	add("| Severity | Count |")
	add("|----------|-------|")
	for _, sev := range types.SeverityOrder() {
		if count, ok := result.IssuesBySeverity[sev]; ok {
			add(fmt.Sprintf("| %s | %d |", severityLabel(sev), count))
		}
	}
	add("")

	if len(result.AutoFixableIssues) > 0 {
		add("### Auto-Fixes Applied")
		add("")
		add(fmt.Sprintf("**%d** issues were fixed automatically:", len(result.AutoFixableIssues)))
		add("")
		for i, issue := range result.AutoFixableIssues {
			if i >= 10 {
				break
			}
			add(fmt.Sprintf("- Fixed `%s`:%d - %s", filepath.Base(issue.File), issue.Line, issue.Message))
		}
		if n := len(result.AutoFixableIssues); n > 10 {
			add(fmt.Sprintf("- ... and **%d** more fixes", n-10))
		}
		add("")
	}

	if len(result.CriticalIssues) > 0 {
		add("### Issues Requiring Human Intervention")
		add("")
		add("**This code cannot be merged until these issues are resolved:**")
		add("")
		for _, issue := range result.CriticalIssues {
			add(fmt.Sprintf("- **%s %s:%d**", severityLabel(issue.Severity), issue.File, issue.Line))
			add(fmt.Sprintf("  - Issue: %s", issue.Message))
			if issue.Suggestion != "" {
				add(fmt.Sprintf("  - Suggestion: %s", issue.Suggestion))
			}
			add("")
		}
		add("---")
		add("### Merge Status: Blocked")
		add("")
		add("**This Pull Request is blocked from merging due to critical issues.**")
		add("")
		add("Please resolve the issues above and try again.")
	} else {
		add("---")
		add("### Merge Status: Approved")
		add("")
		add("**This code passed all quality checks!**")
		add("")
		add("You can proceed with merging this Pull Request.")
	}

	add("")
	add("---")
	add("*Report generated automatically by Auto-Guardian Bot*")

	return strings.Join(lines, "\n")
}

// DailySummary is the compact digest published by scheduled runs.
type DailySummary struct {
	Date           string                  `json:"date"`
	TotalIssues    int                     `json:"total_issues"`
	CriticalIssues int                     `json:"critical_issues"`
	AutoFixed      int                     `json:"auto_fixed"`
	BySeverity     map[types.Severity]int  `json:"by_severity"`
	ByType         map[types.IssueType]int `json:"by_type"`
}

func NewDailySummary(result *types.ScanResult, now time.Time) DailySummary {
	bySeverity := result.IssuesBySeverity
	if bySeverity == nil {
		bySeverity = map[types.Severity]int{}
	}
	byType := result.IssuesByType
	if byType == nil {
		byType = map[types.IssueType]int{}
	}
	return DailySummary{
		Date:           now.Format(time.RFC3339),
		TotalIssues:    result.IssuesFound,
		CriticalIssues: len(result.CriticalIssues),
		AutoFixed:      len(result.AutoFixableIssues),
		BySeverity:     bySeverity,
		ByType:         byType,
	}
}

// SecurityAlert renders a plain-text alert covering security findings among
// the critical issues. ok is false when there are none.
func SecurityAlert(result *types.ScanResult) (string, bool) {
	var security []types.Issue
	for _, issue := range result.CriticalIssues {
		if strings.Contains(issue.Type.String(), "security") {
			security = append(security, issue)
		}
	}
	if len(security) == 0 {
		return "", false
	}

	lines := []string{
		"Security Alert - Auto-Guardian",
		"",
		"Security vulnerabilities detected in code:",
		"",
	}
	for _, issue := range security {
		lines = append(lines, fmt.Sprintf("- %s:%d", issue.File, issue.Line))
		lines = append(lines, fmt.Sprintf("  %s", issue.Message))
		if issue.Suggestion != "" {
			lines = append(lines, fmt.Sprintf("  Suggestion: %s", issue.Suggestion))
		}
	}
	return strings.Join(lines, "\n"), true
}
