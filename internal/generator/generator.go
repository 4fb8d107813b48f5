// Package generator turns the schema section of an OpenAPI document
// into Go model types, one source file per schema.
package generator

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"text/template"

	"github.com/iancoleman/strcase"
)

type Generator struct {
	config *Config
}

func New(config *Config) *Generator {
	return &Generator{
		config: config,
	}
}

// Generate loads the service description, maps its schemas and writes
// one formatted Go source file per model and enum.
func (g *Generator) Generate() error {
	doc, err := parse(g.config.Input)

	if err != nil {
		return err
	}

	models, enums := newMapper(g.config).Map(doc)

	if len(models) == 0 && len(enums) == 0 {
		return fmt.Errorf("no object schemas found in %s", g.config.Input)
	}

	if err := os.MkdirAll(g.config.Output, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	for _, model := range models {
		data := modelData{
			Package: g.config.Package,
			Model:   model,
		}

		if err := g.render(modelTemplate, model.Name, data); err != nil {
			return err
		}
	}

	for _, enum := range enums {
		data := enumData{
			Package: g.config.Package,
			Enum:    enum,
		}

		if err := g.render(enumTemplate, enum.Name, data); err != nil {
			return err
		}
	}

	return nil
}

type modelData struct {
	Package string
	Model
}

type enumData struct {
	Package string
	Enum
}

func (g *Generator) render(text, name string, data any) error {
	tmpl, err := template.New(name).Parse(text)

	if err != nil {
		return err
	}

	var buffer bytes.Buffer

	if err := tmpl.Execute(&buffer, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}

	source, err := format.Source(buffer.Bytes())

	if err != nil {
		return fmt.Errorf("format %s: %w", name, err)
	}

	path := filepath.Join(g.config.Output, strcase.ToSnake(name)+g.config.FileSuffix)

	if err := os.WriteFile(path, source, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}

const modelTemplate = `// Code generated by modelgen. DO NOT EDIT.

package {{ .Package }}

{{ if .Description }}// {{ .Name }} - {{ .Description }}
{{ end }}type {{ .Name }} struct {
{{- range .Fields }}
	{{ if .Description }}// {{ .Description }}
	{{ end }}{{ .Name }} {{ .Type }} ` + "`json:\"{{ .Tag }}\"`" + `
{{- end }}
}
{{ if .RequiredFields }}
func (m *{{ .Name }}) Validate() error {
{{- range .RequiredFields }}
	if m.{{ .Name }} == "" {
		return &MissingFieldError{Type: "{{ $.Label }}", Field: "{{ .JSONName }}"}
	}
{{ end }}
	return nil
}
{{ end }}`

const enumTemplate = `// Code generated by modelgen. DO NOT EDIT.

package {{ .Package }}

{{ if .Description }}// {{ .Name }} - {{ .Description }}
{{ end }}type {{ .Name }} string

const (
{{- range .Values }}
	{{ .Name }} {{ $.Name }} = "{{ .Value }}"
{{- end }}
)
`
