package site

import (
	"fmt"
	"strings"
)

// unsafeChars are characters that pass verbatim into the stub's HTML
// attribute values and the target URL. The tool does not escape them, so
// their presence is worth a warning.
const unsafeChars = ` "'<>&?#`

// Warning flags a relative path whose characters would need escaping to be
// safe in HTML or URL context.
type Warning struct {
	RelPath string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.RelPath, w.Message)
}

// Lint inspects the planned redirects for paths that are not URL-safe.
// Warnings do not block anything; the stub is written verbatim either way.
func Lint(plan *Plan) []Warning {
	var warnings []Warning
	for _, r := range plan.Redirects {
		if i := strings.IndexAny(r.RelPath, unsafeChars); i >= 0 {
			warnings = append(warnings, Warning{
				RelPath: r.RelPath,
				Message: fmt.Sprintf("path contains %q, which is substituted into the redirect HTML unescaped", r.RelPath[i]),
			})
		}
	}
	return warnings
}
