package rules

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/AbdulElahOthmanGwaith/auto-guardian-system/internal/logging"
)

// collectFiles returns every file under root carrying one of the given
// extensions, in lexical walk order so repeat runs emit issues in the same
// sequence. Directories whose name appears in exclude are skipped at any
// depth.
func collectFiles(root string, exts []string, exclude []string) []string {
	skip := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		skip[name] = true
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logging.Logger.Warnw("walk error", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != root && skip[d.Name()] {
				return fs.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		for _, e := range exts {
			if ext == e {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		logging.Logger.Warnw("walk aborted", "root", root, "error", err)
	}
	return files
}
