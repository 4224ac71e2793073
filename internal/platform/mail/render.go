// Package mail renders and delivers outbound account emails.
package mail

import (
	"fmt"
	"strings"
	"text/template"

	"studyhub_backend/internal/feature/account/usecase"
)

// linkTemplate is the shared body of the confirmation and login-link emails.
const linkTemplate = `Hi {{.Nickname}},

{{.Message}}

{{.LinkName}}: {{.Host}}{{.Link}}

If you did not request this email, you can ignore it.

Regards,

StudyHub
`

// Renderer renders link emails from the variables supplied by the account
// workflows.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer creates a Renderer with the built-in link template.
func NewRenderer() *Renderer {
	return &Renderer{tmpl: template.Must(template.New("link").Parse(linkTemplate))}
}

// RenderLink renders the body of a link email.
func (r *Renderer) RenderLink(vars usecase.LinkVars) (string, error) {
	var b strings.Builder
	if err := r.tmpl.Execute(&b, vars); err != nil {
		return "", fmt.Errorf("failed to render link email: %w", err)
	}
	return b.String(), nil
}
