// Package prompts renders the system preamble sent ahead of every conversation.
package prompts

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"strings"
	"text/template"
)

//go:embed templates/*
var templatesFS embed.FS

const defaultPersona = "templates/persona.tmpl"

// Persona renders the system preamble for a category.
type Persona struct {
	tmpl *template.Template
}

type personaData struct {
	Category string
}

// LoadPersona parses the persona template at path, or the embedded default
// when path is empty.
func LoadPersona(path string) (*Persona, error) {
	var (
		tmpl *template.Template
		err  error
	)
	if path == "" {
		tmpl, err = template.ParseFS(templatesFS, defaultPersona)
	} else {
		var raw []byte
		raw, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read persona file: %w", err)
		}
		tmpl, err = template.New("persona").Parse(string(raw))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse persona template: %w", err)
	}

	p := &Persona{tmpl: tmpl}
	if _, err := p.Render(""); err != nil {
		return nil, err
	}
	return p, nil
}

// Render executes the template. A non-empty category always ends up in a
// "Current topic focus" line, even if the template leaves it out.
func (p *Persona) Render(category string) (string, error) {
	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, personaData{Category: category}); err != nil {
		return "", fmt.Errorf("failed to render persona: %w", err)
	}

	out := strings.TrimRight(buf.String(), "\n")
	if category != "" {
		focus := "Current topic focus: " + category
		if !strings.Contains(out, focus) {
			out += "\n\n" + focus
		}
	}
	return out, nil
}
