package rules

import (
	"context"

	"github.com/AbdulElahOthmanGwaith/auto-guardian-system/internal/types"
)

// Detector scans a project tree for issues in one source dialect.
//
// Scan never fails: unreadable files and parse problems are logged and
// skipped so a partial result is always produced. filesScanned counts the
// files matched by the detector's glob, read failures included.
type Detector interface {
	Name() string
	Scan(ctx context.Context, root string) (issues []types.Issue, filesScanned int)
}
