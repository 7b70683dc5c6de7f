package linter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"

	"github.com/AbdulElahOthmanGwaith/auto-guardian-system/internal/logging"
	"github.com/AbdulElahOthmanGwaith/auto-guardian-system/internal/types"
)

type flake8Finding struct {
	Filename     string `json:"filename"`
	LineNumber   int    `json:"line_number"`
	ColumnNumber int    `json:"column_number"`
	Type         string `json:"type"`
	Text         string `json:"text"`
	ID           string `json:"id"`
}

// Flake8 runs flake8 over the project root. Findings are read from stdout,
// which flake8 only populates together with a non-zero exit.
type Flake8 struct {
	MaxLineLength int
}

func NewFlake8(maxLineLength int) *Flake8 {
	return &Flake8{MaxLineLength: maxLineLength}
}

func (l *Flake8) Name() string { return "flake8" }

func (l *Flake8) Run(ctx context.Context, root string) []types.Issue {
	path, ok := binaryPath("flake8")
	if !ok {
		logging.Logger.Warnw("flake8 not available")
		return nil
	}

	cmd := exec.CommandContext(ctx, path, ".",
		"--format=json",
		fmt.Sprintf("--max-line-length=%d", l.MaxLineLength),
	)
	cmd.Dir = root

	stdout, err := cmd.Output()
	if err == nil {
		// clean exit means no findings
		return nil
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		logging.Logger.Warnw("flake8 failed to run", "error", err)
		return nil
	}
	if len(stdout) == 0 {
		return nil
	}

	issues, perr := ParseFlake8(stdout)
	if perr != nil {
		logging.Logger.Warnw("flake8 output not parseable", "error", perr)
		return nil
	}
	return issues
}

// ParseFlake8 converts flake8 JSON findings into issues.
func ParseFlake8(b []byte) ([]types.Issue, error) {
	var findings []flake8Finding
	if err := json.Unmarshal(b, &findings); err != nil {
		return nil, err
	}

	out := make([]types.Issue, 0, len(findings))
	for _, f := range findings {
		out = append(out, types.Issue{
			File:     f.Filename,
			Line:     f.LineNumber,
			Column:   f.ColumnNumber,
			Severity: flake8Severity(f.Type),
			Type:     types.TypeLintingError,
			Message:  f.Text,
			RuleID:   f.ID,
			Fixable:  true,
		})
	}
	return out, nil
}

// flake8Severity maps the leading character of a flake8 code class.
// E codes are pycodestyle errors, F codes are pyflakes failures, W codes
// are warnings.
func flake8Severity(code string) types.Severity {
	if code == "" {
		return types.SeverityLow
	}
	switch code[0] {
	case 'E':
		return types.SeverityHigh
	case 'F':
		return types.SeverityCritical
	case 'W':
		return types.SeverityLow
	}
	return types.SeverityMedium
}
