package newsletter

import (
	"bytes"
	"fmt"

	"github.com/vanng822/go-premailer/premailer"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer converts final newsletter markdown into an email-ready HTML
// document: goldmark for the conversion, a template-styled shell, then CSS
// inlining for email-client compatibility.
type Renderer struct {
	md goldmark.Markdown
}

func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

func (r *Renderer) Run(markdown string, template *Template) (string, error) {
	if markdown == "" {
		return "", fmt.Errorf("markdown is empty")
	}

	var body bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &body); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}

	document := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<style>
%s
</style>
</head>
<body>
<div class="newsletter">
%s
</div>
</body>
</html>`, template.CSS, body.String())

	prem, err := premailer.NewPremailerFromString(document, premailer.NewOptions())
	if err != nil {
		return "", fmt.Errorf("failed to create CSS inliner: %w", err)
	}

	inlined, err := prem.Transform()
	if err != nil {
		return "", fmt.Errorf("failed to inline CSS: %w", err)
	}

	return inlined, nil
}
