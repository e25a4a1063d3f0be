package site

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func writePage(t *testing.T, root string, rel string) {
	t.Helper()
	dir := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScanPages(t *testing.T) {
	dir := t.TempDir()
	// index.html at the root, under a/ and a/b/, but not under empty/
	writePage(t, dir, ".")
	writePage(t, dir, "a")
	writePage(t, dir, "a/b")
	if err := os.MkdirAll(filepath.Join(dir, "empty"), 0o755); err != nil {
		t.Fatal(err)
	}
	// A sibling file next to a marker changes nothing
	os.WriteFile(filepath.Join(dir, "a", "style.css"), []byte("body{}"), 0o644)

	pages, err := ScanPages(dir)
	if err != nil {
		t.Fatal(err)
	}

	var got []string
	for _, p := range pages {
		got = append(got, p.RelPath)
	}
	sort.Strings(got)

	want := []string{"", "a", "a/b"}
	if len(got) != len(want) {
		t.Fatalf("expected %d pages, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("page %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestScanPages_NoMarkers(t *testing.T) {
	dir := t.TempDir()
	os.MkdirAll(filepath.Join(dir, "a", "b"), 0o755)

	pages, err := ScanPages(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 0 {
		t.Errorf("expected 0 pages, got %d", len(pages))
	}
}

func TestScanPages_MarkerIsCaseSensitive(t *testing.T) {
	dir := t.TempDir()
	os.MkdirAll(filepath.Join(dir, "a"), 0o755)
	os.WriteFile(filepath.Join(dir, "a", "Index.html"), []byte("<html>"), 0o644)

	pages, err := ScanPages(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range pages {
		if p.RelPath == "a" {
			t.Error("Index.html should not qualify a page directory")
		}
	}
}

func TestScanPages_DirectoryMarkerDoesNotQualify(t *testing.T) {
	dir := t.TempDir()
	// a/index.html is a directory, not a page marker
	if err := os.MkdirAll(filepath.Join(dir, "a", "index.html"), 0o755); err != nil {
		t.Fatal(err)
	}

	pages, err := ScanPages(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range pages {
		if p.RelPath == "a" {
			t.Errorf("directory named index.html qualified its parent: %v", pages)
		}
	}

	// A real marker inside that directory still works
	writePage(t, dir, "a/index.html")
	pages, err = ScanPages(dir)
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, p := range pages {
		if p.RelPath == "a/index.html" {
			found = true
		}
		if p.RelPath == "a" {
			t.Errorf("directory named index.html qualified its parent: %v", pages)
		}
	}
	if !found {
		t.Errorf("expected a/index.html to qualify as a page, got %v", pages)
	}
}

func TestCheckRoot(t *testing.T) {
	dir := t.TempDir()
	if err := CheckRoot(dir); err != nil {
		t.Errorf("expected nil for existing directory, got %v", err)
	}

	if err := CheckRoot(filepath.Join(dir, "missing")); err == nil {
		t.Error("expected error for missing directory")
	}

	file := filepath.Join(dir, "f.txt")
	os.WriteFile(file, []byte("x"), 0o644)
	if err := CheckRoot(file); err == nil {
		t.Error("expected error for a plain file")
	}
}

func TestNormalizeRel(t *testing.T) {
	cases := map[string]string{
		".":                          "",
		"":                           "",
		"a":                          "a",
		filepath.Join("a", "b", "c"): "a/b/c",
	}
	for in, want := range cases {
		if got := NormalizeRel(in); got != want {
			t.Errorf("NormalizeRel(%q) = %q, want %q", in, got, want)
		}
	}
}
