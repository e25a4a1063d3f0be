package site

import (
	"fmt"
	"os"
	"path/filepath"
)

// Page is a directory in the built blog output that renders to a URL,
// marked by an index.html file directly inside it.
type Page struct {
	// RelPath is the directory's path relative to the source root in
	// forward-slash form. It is empty for the source root itself.
	RelPath string
}

// CheckRoot verifies that path exists and is a directory.
func CheckRoot(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("directory not found: %s", path)
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", path)
	}
	return nil
}

// ScanPages walks sourceRoot and returns one Page per directory that
// directly contains an index.html file. Directories without the marker are
// still descended into. The root itself is reported with an empty RelPath;
// deciding which pages receive a redirect is the planner's job.
func ScanPages(sourceRoot string) ([]Page, error) {
	var pages []Page

	err := filepath.WalkDir(sourceRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}

		info, err := os.Stat(filepath.Join(path, "index.html"))
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		// The marker must be a regular file; a directory named
		// index.html does not make its parent a page.
		if !info.Mode().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(sourceRoot, path)
		if err != nil {
			return err
		}
		pages = append(pages, Page{RelPath: NormalizeRel(rel)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking source directory: %w", err)
	}

	return pages, nil
}

// NormalizeRel converts a host-separator relative path to forward-slash
// form. The current-directory marker collapses to the empty string, which
// identifies the source root.
func NormalizeRel(rel string) string {
	if rel == "." || rel == "" {
		return ""
	}
	return filepath.ToSlash(rel)
}
