package linter

import (
	"context"
	"os/exec"

	"github.com/AbdulElahOthmanGwaith/auto-guardian-system/internal/types"
)

// Linter adapts an external linting tool.
//
// Run never fails: a missing tool, a timeout, or unparseable output is
// logged and yields zero issues so the scan always completes.
type Linter interface {
	Name() string
	Run(ctx context.Context, root string) []types.Issue
}

// binaryPath resolves a tool on the system PATH.
func binaryPath(name string) (string, bool) {
	path, err := exec.LookPath(name)
	return path, err == nil
}
