package model

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const artifactSchemaJSON = `{
	"type": "object",
	"required": ["feature_names_in", "coef", "intercept"],
	"properties": {
		"feature_names_in": {
			"type": "array",
			"minItems": 1,
			"items": {"type": "string", "minLength": 1}
		},
		"coef": {
			"type": "array",
			"minItems": 1,
			"items": {"type": "number"}
		},
		"intercept": {"type": "number"},
		"classes": {
			"type": "array",
			"items": {"type": "integer"}
		},
		"version": {"type": "string"}
	}
}`

var artifactSchema = func() *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(artifactSchemaJSON))
	if err != nil {
		panic(fmt.Sprintf("artifact schema: %v", err))
	}
	return s
}()

// validateArtifact checks the raw artifact document's shape before decoding.
func validateArtifact(data []byte) error {
	result, err := artifactSchema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("artifact validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
