package linter

import (
	"context"
	"encoding/json"
	"errors"
	"os/exec"
	"time"

	"github.com/AbdulElahOthmanGwaith/auto-guardian-system/internal/logging"
	"github.com/AbdulElahOthmanGwaith/auto-guardian-system/internal/types"
)

// eslintTimeout bounds the npx invocation, which may download eslint on
// first use.
const eslintTimeout = 60 * time.Second

type eslintFile struct {
	FilePath string          `json:"filePath"`
	Messages []eslintMessage `json:"messages"`
}

type eslintMessage struct {
	Line     int             `json:"line"`
	Column   int             `json:"column"`
	Severity int             `json:"severity"`
	Message  string          `json:"message"`
	RuleID   string          `json:"ruleId"`
	Fix      json.RawMessage `json:"fix"`
}

// ESLint runs eslint through npx over the project root.
type ESLint struct{}

func NewESLint() *ESLint { return &ESLint{} }

func (l *ESLint) Name() string { return "eslint" }

func (l *ESLint) Run(ctx context.Context, root string) []types.Issue {
	npx, ok := binaryPath("npx")
	if !ok {
		logging.Logger.Warnw("eslint not available: npx not on PATH")
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, eslintTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, npx, "eslint", ".", "--format=json")
	cmd.Dir = root

	stdout, err := cmd.Output()
	if err == nil {
		// clean exit means no findings
		return nil
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		logging.Logger.Warnw("eslint timed out", "timeout", eslintTimeout)
		return nil
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		logging.Logger.Warnw("eslint failed to run", "error", err)
		return nil
	}
	if len(stdout) == 0 {
		return nil
	}

	issues, perr := ParseESLint(stdout)
	if perr != nil {
		logging.Logger.Warnw("eslint output not parseable", "error", perr)
		return nil
	}
	return issues
}

// ParseESLint converts eslint JSON output into issues.
func ParseESLint(b []byte) ([]types.Issue, error) {
	var files []eslintFile
	if err := json.Unmarshal(b, &files); err != nil {
		return nil, err
	}

	var out []types.Issue
	for _, f := range files {
		for _, msg := range f.Messages {
			out = append(out, types.Issue{
				File:     f.FilePath,
				Line:     msg.Line,
				Column:   msg.Column,
				Severity: eslintSeverity(msg.Severity),
				Type:     types.TypeLintingError,
				Message:  msg.Message,
				RuleID:   msg.RuleID,
				Fixable:  hasFix(msg.Fix),
			})
		}
	}
	return out, nil
}

// eslintSeverity maps eslint's numeric levels: 2 is an error, 1 a warning.
func eslintSeverity(level int) types.Severity {
	switch level {
	case 2:
		return types.SeverityHigh
	case 1:
		return types.SeverityMedium
	}
	return types.SeverityLow
}

// hasFix reports whether the message carries a fix object. An explicit JSON
// null counts as no fix.
func hasFix(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}
