package emit

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/redirgen/redirgen/internal/site"
	"github.com/redirgen/redirgen/internal/stub"
)

// Counters tallies per-directory outcomes for a single run.
type Counters struct {
	Created     int
	Overwritten int
	Skipped     int
}

// Options controls how a plan is applied.
type Options struct {
	Overwrite bool
	DryRun    bool
	Log       io.Writer
}

// Apply writes one redirect stub per planned redirect, narrating every
// decision to opts.Log. Pages the planner skipped are counted and narrated
// first so the totals cover the whole run. Existing files are only replaced
// when Overwrite is set. With DryRun the same branches are taken and the
// same counts produced, but nothing touches the filesystem.
//
// Filesystem errors stop the run; whatever was already written stays.
func Apply(plan *site.Plan, opts Options) (Counters, error) {
	var c Counters

	for _, s := range plan.Skips {
		switch s.Reason {
		case site.SkipRoot:
			fmt.Fprintf(opts.Log, "Skipping source root (no destination root redirect)\n")
		case site.SkipExcluded:
			fmt.Fprintf(opts.Log, "Excluded: %s\n", s.RelPath)
		}
		c.Skipped++
	}

	for _, r := range plan.Redirects {
		exists, err := fileExists(r.OutPath)
		if err != nil {
			return c, err
		}

		if exists && !opts.Overwrite {
			fmt.Fprintf(opts.Log, "Skipping (exists): %s -> %s\n", r.OutPath, r.TargetURL)
			c.Skipped++
			continue
		}

		if !opts.DryRun {
			if err := writeStub(r); err != nil {
				return c, err
			}
		}

		if exists {
			fmt.Fprintf(opts.Log, "Overwritten: %s -> %s\n", r.OutPath, r.TargetURL)
			c.Overwritten++
		} else {
			fmt.Fprintf(opts.Log, "Created: %s -> %s\n", r.OutPath, r.TargetURL)
			c.Created++
		}
	}

	return c, nil
}

func writeStub(r site.Redirect) error {
	content, err := stub.Render(r.TargetURL)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(r.OutPath), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", r.OutPath, err)
	}
	if err := os.WriteFile(r.OutPath, content, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", r.OutPath, err)
	}
	return nil
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("stat %s: %w", path, err)
}
