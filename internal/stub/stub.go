package stub

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"
)

//go:embed redirect.html.tmpl
var redirectTmplSrc string

var redirectTmpl = template.Must(template.New("redirect").Parse(redirectTmplSrc))

// Render produces the redirect document for a target URL: a meta refresh, a
// canonical link, and a visible fallback hyperlink. The target is
// substituted verbatim; the operator is responsible for URL-safe paths.
func Render(target string) ([]byte, error) {
	var buf bytes.Buffer
	if err := redirectTmpl.Execute(&buf, struct{ Target string }{target}); err != nil {
		return nil, fmt.Errorf("rendering redirect stub: %w", err)
	}
	return buf.Bytes(), nil
}
