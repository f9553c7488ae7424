package config

import (
	"encoding/json"

	"github.com/grovetools/navcore/channels"
	"github.com/invopop/jsonschema"
)

// reflectSchema builds the JSON Schema of navcore.yml. Top-level keys other
// than the known ones are extensions and stay allowed; nested objects are
// closed.
func reflectSchema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		ExpandedStruct:            true,
		FieldNameTag:              "yaml",
	}

	schema := r.Reflect(&Config{})
	schema.Title = "navcore Configuration"
	schema.Description = "Schema for navcore.yml properties."
	schema.AdditionalProperties = jsonschema.TrueSchema

	if prop, ok := schema.Properties.Get("channels"); ok {
		names := make([]any, 0, len(channels.Categories()))
		for _, cat := range channels.Categories() {
			names = append(names, string(cat))
		}
		prop.PropertyNames = &jsonschema.Schema{Enum: names}
	}
	return schema
}

// GenerateSchema generates the JSON Schema for the navcore configuration.
func GenerateSchema() ([]byte, error) {
	return json.MarshalIndent(reflectSchema(), "", "  ")
}
