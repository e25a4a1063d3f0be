package site

import (
	"path/filepath"
	"strings"

	"github.com/redirgen/redirgen/internal/exclude"
)

// SkipReason says why a page was classified out of the plan.
type SkipReason int

const (
	// SkipRoot covers the source root itself: generating a stub for it
	// would redirect the destination's own root page.
	SkipRoot SkipReason = iota
	// SkipExcluded covers pages named in the operator's exclude set.
	SkipExcluded
)

// Redirect is one stub to be written: where the page used to live, where it
// lives now, and where the stub file goes.
type Redirect struct {
	RelPath   string // normalized forward-slash path relative to the source root
	TargetURL string
	OutPath   string // destination file path in host separators
}

// Skip is a page that was classified but gets no stub.
type Skip struct {
	RelPath string
	Reason  SkipReason
}

// Plan is the full classification of a scanned source tree.
type Plan struct {
	Redirects []Redirect
	Skips     []Skip
}

// NormalizeBase forces a base prefix to start and end with a slash, so
// "blog" and "/blog" and "blog/" all mean "/blog/".
func NormalizeBase(base string) string {
	if !strings.HasPrefix(base, "/") {
		base = "/" + base
	}
	if !strings.HasSuffix(base, "/") {
		base = base + "/"
	}
	return base
}

// Qualify partitions pages into those that get a redirect and those that are
// skipped. The source root (empty relative path) is always skipped; the
// exclude set is consulted after that.
func Qualify(pages []Page, excludes *exclude.Set) (rels []string, skips []Skip) {
	for _, p := range pages {
		if p.RelPath == "" {
			skips = append(skips, Skip{RelPath: p.RelPath, Reason: SkipRoot})
			continue
		}
		if excludes.Match(p.RelPath) {
			skips = append(skips, Skip{RelPath: p.RelPath, Reason: SkipExcluded})
			continue
		}
		rels = append(rels, p.RelPath)
	}
	return rels, skips
}

// BuildPlan classifies pages and computes, for each qualifying page, the
// target URL base+rel+"/" and the stub path destRoot/rel/index.html. The
// relative path goes into the URL verbatim; base must already be normalized.
func BuildPlan(pages []Page, destRoot, base string, excludes *exclude.Set) *Plan {
	rels, skips := Qualify(pages, excludes)

	plan := &Plan{Skips: skips}
	for _, rel := range rels {
		plan.Redirects = append(plan.Redirects, Redirect{
			RelPath:   rel,
			TargetURL: base + rel + "/",
			OutPath:   filepath.Join(destRoot, filepath.FromSlash(rel), "index.html"),
		})
	}
	return plan
}
