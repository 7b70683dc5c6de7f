package rules

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/AbdulElahOthmanGwaith/auto-guardian-system/internal/logging"
	"github.com/AbdulElahOthmanGwaith/auto-guardian-system/internal/parser"
	"github.com/AbdulElahOthmanGwaith/auto-guardian-system/internal/types"
)

var (
	pyPrintRe  = regexp.MustCompile(`print\s*\([^)]*\)`)
	pyUnusedRe = regexp.MustCompile(`^\s*_+\w*$`)
)

// securityRule flags a dangerous pattern anywhere in a file. The issue is
// reported on the first line matching the pattern, or line 1 when only the
// whole-file search hit (a pattern spanning a line break).
type securityRule struct {
	re       *regexp.Regexp
	desc     string
	severity types.Severity
	fixable  bool
}

var pythonSecurityRules = []securityRule{
	{regexp.MustCompile(`os\.environ\[['"]\w+['"]\]`), "Direct environment variable access", types.SeverityHigh, true},
	{regexp.MustCompile(`eval\s*\(`), "Unsafe eval() usage", types.SeverityCritical, false},
	{regexp.MustCompile(`exec\s*\(`), "Unsafe exec() usage", types.SeverityCritical, false},
	{regexp.MustCompile(`pickle\.load`), "pickle.load may be unsafe", types.SeverityMedium, true},
	{regexp.MustCompile(`yaml\.load`), "yaml.load without SafeLoader", types.SeverityHigh, true},
	{regexp.MustCompile(`password\s*=`), "Password in code", types.SeverityHigh, false},
	{regexp.MustCompile(`secret\s*=`), "Secret key in code", types.SeverityHigh, false},
	{regexp.MustCompile(`api[_-]?key\s*=`), "API key in code", types.SeverityHigh, false},
}

// PythonDetector scans *.py files with the built-in rule set and validates
// each file with a tree-sitter parse.
type PythonDetector struct {
	excludeDirs []string
}

func NewPythonDetector(excludeDirs []string) *PythonDetector {
	return &PythonDetector{excludeDirs: excludeDirs}
}

func (d *PythonDetector) Name() string { return "python" }

func (d *PythonDetector) Scan(ctx context.Context, root string) ([]types.Issue, int) {
	files := collectFiles(root, []string{".py"}, d.excludeDirs)

	var issues []types.Issue
	for _, path := range files {
		src, err := parser.Load(path)
		if err != nil {
			logging.Logger.Warnw("read failed", "file", path, "error", err)
			continue
		}
		issues = append(issues, d.scanFile(ctx, src)...)
	}
	return issues, len(files)
}

// scanFile runs line rules, then the syntax check, then the security rules.
// Issues keep that emission order.
func (d *PythonDetector) scanFile(ctx context.Context, src *parser.SourceFile) []types.Issue {
	var issues []types.Issue

	for i, line := range src.Lines {
		lineNum := i + 1

		if pyPrintRe.MatchString(line) {
			issues = append(issues, types.Issue{
				File:       src.Path,
				Line:       lineNum,
				Column:     strings.Index(line, "print"),
				Severity:   types.SeverityLow,
				Type:       types.TypeCodeSmell,
				Message:    "print() usage for debugging",
				Suggestion: "Use logger instead of print",
				Fixable:    true,
			})
		}

		if pyUnusedRe.MatchString(strings.TrimSpace(line)) {
			issues = append(issues, types.Issue{
				File:     src.Path,
				Line:     lineNum,
				Column:   0,
				Severity: types.SeverityInfo,
				Type:     types.TypeUnusedCode,
				Message:  "Unused variable",
				Fixable:  true,
			})
		}
	}

	if syntax := d.checkSyntax(ctx, src); syntax != nil {
		issues = append(issues, *syntax)
	}

	content := string(src.Content)
	for _, rule := range pythonSecurityRules {
		if !rule.re.MatchString(content) {
			continue
		}
		issues = append(issues, types.Issue{
			File:       src.Path,
			Line:       findLine(src.Lines, rule.re),
			Column:     0,
			Severity:   rule.severity,
			Type:       types.TypeSecurityVulnerability,
			Message:    "Security: " + rule.desc,
			Suggestion: "Move to .env file",
			Fixable:    rule.fixable,
		})
	}

	return issues
}

// checkSyntax parses the file and reports at most one issue, located at the
// first ERROR or MISSING node of the tree.
func (d *PythonDetector) checkSyntax(ctx context.Context, src *parser.SourceFile) *types.Issue {
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())

	tree, err := p.ParseCtx(ctx, nil, src.Content)
	if err != nil {
		logging.Logger.Warnw("parse failed", "file", src.Path, "error", err)
		return nil
	}
	defer tree.Close()

	node := firstErrorNode(tree.RootNode(), 0)
	if node == nil {
		return nil
	}

	msg := "Syntax error: invalid syntax"
	if node.IsMissing() {
		msg = fmt.Sprintf("Syntax error: missing %s", node.Type())
	}
	start := node.StartPoint()
	return &types.Issue{
		File:       src.Path,
		Line:       int(start.Row) + 1,
		Column:     int(start.Column),
		Severity:   types.SeverityCritical,
		Type:       types.TypeSyntaxError,
		Message:    msg,
		Suggestion: "Review syntax on this line",
		Fixable:    false,
	}
}

// firstErrorNode walks the tree in document order and returns the first
// ERROR or MISSING node. Depth is capped to survive heavily malformed input.
func firstErrorNode(node *sitter.Node, depth int) *sitter.Node {
	if depth > 1000 {
		return nil
	}
	if node.IsError() || node.IsMissing() {
		return node
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		if found := firstErrorNode(node.Child(i), depth+1); found != nil {
			return found
		}
	}
	return nil
}

func findLine(lines []string, re *regexp.Regexp) int {
	for i, line := range lines {
		if re.MatchString(line) {
			return i + 1
		}
	}
	return 1
}
