package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goflowd/flowd/pkg/models"
	"github.com/xeipuuv/gojsonschema"
)

// definitionSchema validates process definition documents before they are
// trusted by the registry. Invalid documents fail the whole load.
const definitionSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["key", "name", "tasks"],
	"properties": {
		"key": {"type": "string", "minLength": 1},
		"name": {"type": "string", "minLength": 1},
		"default_variables": {"type": "object"},
		"tasks": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["name"],
				"properties": {
					"name": {"type": "string", "minLength": 1},
					"initial": {"type": "boolean"},
					"successors": {"type": "array", "items": {"type": "string"}},
					"group": {
						"type": "object",
						"properties": {
							"literal": {"type": "string"},
							"from_variable": {"type": "string"}
						}
					},
					"stop_when": {
						"type": "object",
						"required": ["variable"],
						"properties": {
							"variable": {"type": "string"},
							"equals": {"type": "string"}
						}
					},
					"spawn": {
						"type": "object",
						"required": ["definition_key"],
						"properties": {
							"definition_key": {"type": "string"},
							"variables": {
								"type": "array",
								"items": {
									"type": "object",
									"required": ["from"],
									"properties": {
										"from": {"type": "string"},
										"as": {"type": "string"}
									}
								}
							}
						}
					}
				}
			}
		}
	}
}`

// ParseDefinition validates and decodes one definition document.
func ParseDefinition(document []byte) (*models.ProcessDefinition, error) {
	schemaLoader := gojsonschema.NewStringLoader(definitionSchema)
	dataLoader := gojsonschema.NewBytesLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, dataLoader)
	if err != nil {
		return nil, fmt.Errorf("failed to validate definition document: %w", err)
	}

	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, resultError := range result.Errors() {
			details = append(details, resultError.String())
		}

		return nil, fmt.Errorf("definition document is invalid: %s", strings.Join(details, "; "))
	}

	var definition models.ProcessDefinition
	if err := json.Unmarshal(document, &definition); err != nil {
		return nil, fmt.Errorf("failed to decode definition document: %w", err)
	}

	return &definition, nil
}

// LoadDir registers every *.json definition document found in dir.
func (r *Registry) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read definitions directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}

		path := filepath.Join(dir, entry.Name())

		document, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read definition file %s: %w", path, err)
		}

		definition, err := ParseDefinition(document)
		if err != nil {
			return fmt.Errorf("definition file %s: %w", path, err)
		}

		if err := r.Register(definition); err != nil {
			return err
		}
	}

	return nil
}
