package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"sync"
)

//go:embed templates/*.html
var templateFS embed.FS

const reviewRequestTemplate = "review_request.html"

// layout holds the fields the shared base.html frame renders.
type layout struct {
	Title      string
	Heading    string
	Subheading string
	CTALabel   string
	CTAURL     string
}

type reviewRequestView struct {
	layout
	ItemTitle string
	Priority  string
	Agent     string
}

var (
	parsedMu sync.Mutex
	parsed   = map[string]*template.Template{}
)

// lookupTemplate parses base.html together with the named content template
// once and reuses the result.
func lookupTemplate(name string) (*template.Template, error) {
	parsedMu.Lock()
	defer parsedMu.Unlock()

	if tmpl, ok := parsed[name]; ok {
		return tmpl, nil
	}
	tmpl, err := template.ParseFS(templateFS, "templates/base.html", "templates/"+name)
	if err != nil {
		return nil, fmt.Errorf("parse email template %s: %w", name, err)
	}
	parsed[name] = tmpl
	return tmpl, nil
}

func render(name string, view any) (string, error) {
	tmpl, err := lookupTemplate(name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", view); err != nil {
		return "", fmt.Errorf("render email template %s: %w", name, err)
	}
	return buf.String(), nil
}
