package site

import (
	"testing"

	"github.com/redirgen/redirgen/internal/exclude"
)

func TestLint(t *testing.T) {
	pages := []Page{
		{RelPath: "2020/06/01/post"},
		{RelPath: "a b"},
		{RelPath: "q?x"},
		{RelPath: `say-"hi"`},
	}
	plan := BuildPlan(pages, "/dest", "/blog/", exclude.New())

	warnings := Lint(plan)
	flagged := map[string]bool{}
	for _, w := range warnings {
		flagged[w.RelPath] = true
	}

	if flagged["2020/06/01/post"] {
		t.Error("clean path should not be flagged")
	}
	for _, rel := range []string{"a b", "q?x", `say-"hi"`} {
		if !flagged[rel] {
			t.Errorf("expected warning for %q", rel)
		}
	}
}

func TestLint_Clean(t *testing.T) {
	plan := BuildPlan([]Page{{RelPath: "posts/hello-world"}}, "/dest", "/blog/", exclude.New())
	if warnings := Lint(plan); len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
}
