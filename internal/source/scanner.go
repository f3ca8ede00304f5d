package source

import (
	"os"
	"path/filepath"
)

// Discover walks the log root and returns every .jsonl file path.
// A missing root yields no files, and unreadable subdirectories are skipped
// silently: discovery produces partial results, never an error.
func Discover(root string) []string {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil
	}

	var files []string
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // intentionally skip unreadable entries
		}
		if d.IsDir() || filepath.Ext(path) != ".jsonl" {
			return nil
		}
		files = append(files, path)
		return nil
	})

	return files
}
