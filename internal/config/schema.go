package config

import "github.com/invopop/jsonschema"

// Schema describes the configuration file.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		// Use anonymous schemas to avoid ID conflicts
		Anonymous: true,
		// Expand the root struct instead of referencing it
		ExpandedStruct:            true,
		AllowAdditionalProperties: true,
	}

	schema := r.Reflect(&Config{})
	schema.Version = "https://json-schema.org/draft/2020-12/schema"
	schema.Title = "Anchor Configuration"
	schema.Description = "Configuration schema for the anchor terminal transcript"
	return schema
}
