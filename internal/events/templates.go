package events

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// defaultTemplates reproduce the classic wording of the command-file tool.
var defaultTemplates = map[EventReason]string{
	ReasonComponentInstalling:       "Installing {{.Name}}",
	ReasonComponentAlreadyInstalled: "{{.Name}} is already installed",
	ReasonComponentRemoving:         "Removing {{.Name}}",
	ReasonComponentNotInstalled:     "{{.Name}} is not installed.",
	ReasonComponentStillNeeded:      "{{.Name}} is still needed.",
	ReasonComponentListed:           "{{.Name}}",
	ReasonCommandRejected:           "{{if .Line}}line {{.Line}}: {{end}}{{.Error}}",
}

// MessageTemplateEngine renders notification text for each event reason.
// Templates use text/template syntax with the sprig function map, so
// overrides like `{{.Name | upper}} removed` work.
type MessageTemplateEngine struct {
	templates map[EventReason]*template.Template
	sources   map[EventReason]string
}

// NewMessageTemplateEngine creates a new message template engine with default templates.
func NewMessageTemplateEngine() *MessageTemplateEngine {
	engine := &MessageTemplateEngine{
		templates: make(map[EventReason]*template.Template),
		sources:   make(map[EventReason]string),
	}
	engine.loadDefaultTemplates()
	return engine
}

func (e *MessageTemplateEngine) loadDefaultTemplates() {
	for reason, text := range defaultTemplates {
		// Defaults are constants; a parse failure is a programming error.
		if err := e.SetTemplate(reason, text); err != nil {
			panic(err)
		}
	}
}

// SetTemplate replaces the message template for a specific event reason.
// The template is parsed immediately so configuration errors surface at startup.
func (e *MessageTemplateEngine) SetTemplate(reason EventReason, text string) error {
	tmpl, err := template.New(string(reason)).
		Funcs(sprig.TxtFuncMap()).
		Option("missingkey=zero").
		Parse(text)
	if err != nil {
		return fmt.Errorf("invalid template for %s: %w", reason, err)
	}
	e.templates[reason] = tmpl
	e.sources[reason] = text
	return nil
}

// GetTemplate returns the template text for a specific event reason.
func (e *MessageTemplateEngine) GetTemplate(reason EventReason) (string, bool) {
	text, exists := e.sources[reason]
	return text, exists
}

// Render generates a message for the given event reason and data.
func (e *MessageTemplateEngine) Render(reason EventReason, data EventData) string {
	tmpl, exists := e.templates[reason]
	if !exists {
		return fmt.Sprintf("%s: %s", string(reason), data.Name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Sprintf("%s: %s (template error: %v)", string(reason), data.Name, err)
	}
	return buf.String()
}
