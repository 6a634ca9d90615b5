package config

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const (
	configSchemaURL   = "https://ccm.dev/schema/config.json"
	profilesSchemaURL = "https://ccm.dev/schema/profiles.json"
)

const configSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "theme": {"enum": ["midnight", "aura", "minimal"]},
    "defaultProfileId": {"type": "string"},
    "directoryProfileMap": {
      "type": "object",
      "additionalProperties": {"type": "string"}
    },
    "backend": {"enum": ["", "auto", "security", "keyring"]}
  }
}`

const profilesSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "name"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "name": {"type": "string"},
      "company": {"type": "string"},
      "email": {"type": "string"},
      "color": {"type": "string"},
      "defaultProjectDir": {"type": "string"},
      "createdAt": {"type": "string"},
      "updatedAt": {"type": "string"},
      "lastUsedAt": {"type": "string"}
    }
  }
}`

var (
	schemasOnce sync.Once
	schemas     map[string]*jsonschema.Schema
	schemasErr  error
)

func compileSchemas() {
	c := jsonschema.NewCompiler()
	sources := map[string]string{
		configSchemaURL:   configSchema,
		profilesSchemaURL: profilesSchema,
	}
	for url, src := range sources {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(src))
		if err != nil {
			schemasErr = fmt.Errorf("failed to parse schema %s: %w", url, err)
			return
		}
		if err := c.AddResource(url, doc); err != nil {
			schemasErr = fmt.Errorf("failed to add schema %s: %w", url, err)
			return
		}
	}
	schemas = make(map[string]*jsonschema.Schema, len(sources))
	for url := range sources {
		sch, err := c.Compile(url)
		if err != nil {
			schemasErr = fmt.Errorf("failed to compile schema %s: %w", url, err)
			return
		}
		schemas[url] = sch
	}
}

func validateDocument(url, name string, data []byte) error {
	schemasOnce.Do(compileSchemas)
	if schemasErr != nil {
		return schemasErr
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	if err := schemas[url].Validate(inst); err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	return nil
}

// ValidateConfigJSON checks raw config.json content.
func ValidateConfigJSON(data []byte) error {
	return validateDocument(configSchemaURL, configFile, data)
}

// ValidateProfilesJSON checks raw profiles.json content.
func ValidateProfilesJSON(data []byte) error {
	return validateDocument(profilesSchemaURL, profilesFile, data)
}
