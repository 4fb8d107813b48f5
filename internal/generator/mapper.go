package generator

import (
	"slices"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/iancoleman/strcase"
)

// Model is one generated struct type.
type Model struct {
	Name        string
	Label       string
	Description string

	Fields []Field
}

// RequiredFields returns the string-typed required fields, the ones a
// Validate method can check after decoding.
func (m Model) RequiredFields() []Field {
	var fields []Field

	for _, field := range m.Fields {
		if field.Required && field.Type == "string" {
			fields = append(fields, field)
		}
	}

	return fields
}

// Field is one generated struct field.
type Field struct {
	Name string
	Type string

	JSONName string
	Tag      string

	Description string

	Required bool
}

// Enum is one generated string constant set.
type Enum struct {
	Name        string
	Description string

	Values []EnumValue
}

type EnumValue struct {
	Name  string
	Value string
}

type mapper struct {
	skip   map[string]bool
	rename map[string]string

	models []Model
	enums  []Enum
}

func newMapper(config *Config) *mapper {
	m := &mapper{
		skip:   map[string]bool{},
		rename: map[string]string{},
	}

	for _, name := range config.Skip {
		m.skip[name] = true
	}

	for from, to := range config.Rename {
		m.rename[from] = to
	}

	return m
}

// Map walks the schema components and collects models and enums in
// name order, so repeated runs produce identical output.
func (m *mapper) Map(doc *openapi3.T) ([]Model, []Enum) {
	if doc.Components == nil {
		return nil, nil
	}

	names := make([]string, 0, len(doc.Components.Schemas))

	for name := range doc.Components.Schemas {
		names = append(names, name)
	}

	slices.Sort(names)

	for _, name := range names {
		if m.skip[name] {
			continue
		}

		schema := doc.Components.Schemas[name]

		if schema == nil || schema.Value == nil {
			continue
		}

		if schema.Value.Type.Is(openapi3.TypeString) && len(schema.Value.Enum) > 0 {
			m.mapEnum(name, schema.Value)

			continue
		}

		if schema.Value.Type.Is(openapi3.TypeObject) {
			m.mapModel(name, schema.Value)
		}
	}

	return m.models, m.enums
}

func (m *mapper) mapEnum(name string, schema *openapi3.Schema) {
	enum := Enum{
		Name:        m.goName(name),
		Description: describe(schema.Description),
	}

	for _, value := range schema.Enum {
		text, ok := value.(string)

		if !ok {
			continue
		}

		enum.Values = append(enum.Values, EnumValue{
			Name:  enum.Name + m.goName(text),
			Value: text,
		})
	}

	m.enums = append(m.enums, enum)
}

func (m *mapper) mapModel(name string, schema *openapi3.Schema) string {
	model := Model{
		Name:        m.goName(name),
		Label:       strcase.ToDelimited(name, ' '),
		Description: describe(schema.Description),
	}

	required := map[string]bool{}

	for _, field := range schema.Required {
		required[field] = true
	}

	properties := make([]string, 0, len(schema.Properties))

	for property := range schema.Properties {
		properties = append(properties, property)
	}

	slices.Sort(properties)

	for _, property := range properties {
		propertySchema := schema.Properties[property]

		field := Field{
			Name: m.goName(property),
			Type: m.goType(propertySchema, name+m.goName(property)),

			JSONName: property,
			Tag:      property,

			Required: required[property],
		}

		if propertySchema != nil && propertySchema.Value != nil {
			field.Description = describe(propertySchema.Value.Description)
		}

		if !field.Required {
			field.Tag += ",omitempty"
		}

		model.Fields = append(model.Fields, field)
	}

	m.models = append(m.models, model)

	return model.Name
}

func (m *mapper) goType(schema *openapi3.SchemaRef, hint string) string {
	if schema == nil || schema.Value == nil {
		return "any"
	}

	if schema.Ref != "" {
		parts := strings.Split(schema.Ref, "/")

		return m.goName(parts[len(parts)-1])
	}

	value := schema.Value

	switch {
	case value.Type.Is(openapi3.TypeString):
		if value.Format == "date-time" {
			return "*Time"
		}

		return "string"

	case value.Type.Is(openapi3.TypeInteger):
		if value.Format == "int64" {
			return "int64"
		}

		return "int"

	case value.Type.Is(openapi3.TypeNumber):
		return "float64"

	case value.Type.Is(openapi3.TypeBoolean):
		return "bool"

	case value.Type.Is(openapi3.TypeArray):
		return "[]" + m.goType(value.Items, hint+"Item")

	case value.Type.Is(openapi3.TypeObject):
		if len(value.Properties) > 0 {
			return m.mapModel(hint, value)
		}

		if value.AdditionalProperties.Schema != nil {
			return "map[string]" + m.goType(value.AdditionalProperties.Schema, hint+"Value")
		}

		return "map[string]any"
	}

	return "any"
}

var initialisms = []struct {
	from string
	to   string
}{
	{"Id", "ID"},
	{"Etag", "ETag"},
	{"Utc", "UTC"},
	{"Json", "JSON"},
	{"Sas", "SAS"},
	{"Url", "URL"},
}

func (m *mapper) goName(name string) string {
	if renamed, ok := m.rename[name]; ok {
		return renamed
	}

	result := strcase.ToCamel(name)

	for _, initialism := range initialisms {
		if strings.HasSuffix(result, initialism.from) {
			result = strings.TrimSuffix(result, initialism.from) + initialism.to
		}
	}

	return result
}

// describe collapses a schema description onto one line so it can be
// emitted as a Go comment.
func describe(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
