package analyzer

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/sourcegraph/go-diff/diff"

	"github.com/AbdulElahOthmanGwaith/auto-guardian-system/internal/types"
)

// ChangedFiles extracts the post-image file paths from a unified diff, with
// the conventional a/ and b/ prefixes stripped. Deleted files fall back to
// their pre-image path.
func ChangedFiles(r io.Reader) (map[string]bool, error) {
	fileDiffs, err := diff.NewMultiFileDiffReader(r).ReadAllFiles()
	if err != nil {
		return nil, fmt.Errorf("parse diff: %w", err)
	}

	files := make(map[string]bool, len(fileDiffs))
	for _, fd := range fileDiffs {
		name := fd.NewName
		if name == "" || name == "/dev/null" {
			name = fd.OrigName
		}
		name = strings.TrimPrefix(name, "a/")
		name = strings.TrimPrefix(name, "b/")
		if name != "" && name != "/dev/null" {
			files[filepath.Clean(name)] = true
		}
	}
	return files, nil
}

// ScopeToFiles keeps only issues located in the changed file set and
// recomputes every derived count. files_scanned stays as walked, because
// the detectors still visited the whole tree.
func ScopeToFiles(result *types.ScanResult, root string, changed map[string]bool) *types.ScanResult {
	scoped := types.NewScanResult(result.Timestamp)
	scoped.FilesScanned = result.FilesScanned

	var kept []types.Issue
	for _, issue := range result.Issues {
		if changed[relPath(root, issue.File)] {
			kept = append(kept, issue)
		}
	}
	tally(scoped, kept)
	return scoped
}

// relPath normalizes an issue path to be comparable with diff paths, which
// are relative to the project root.
func relPath(root, path string) string {
	path = filepath.Clean(path)
	if rel, err := filepath.Rel(root, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}
