package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	// parse schema
	var schema map[string]interface{}
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	// convert config to JSON for validation
	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	var configMap map[string]interface{}
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	// check all config sections are known to the schema
	if err := checkSections(schema, configMap); err != nil {
		return fmt.Errorf("schema mismatch: %w", err)
	}

	// basic validation - check required fields match
	if err := validateRequiredFields(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return nil
}

// checkSections makes sure every top-level config key is defined in the schema
func checkSections(schema, configMap map[string]interface{}) error {
	props := schemaProperties(schema)
	if props == nil {
		return fmt.Errorf("no properties in schema")
	}
	var missing []string
	for k := range configMap {
		if _, ok := props[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("sections not in schema: %s", strings.Join(missing, ", "))
	}
	return nil
}

// schemaProperties finds properties of the root Config definition, reflected schemas
// keep it under $defs with a $ref on the root
func schemaProperties(schema map[string]interface{}) map[string]interface{} {
	if props, ok := schema["properties"].(map[string]interface{}); ok {
		return props
	}
	defs, ok := schema["$defs"].(map[string]interface{})
	if !ok {
		return nil
	}
	root, ok := defs["Config"].(map[string]interface{})
	if !ok {
		return nil
	}
	props, _ := root["properties"].(map[string]interface{})
	return props
}

// validateRequiredFields performs basic validation of required fields
func validateRequiredFields(cfg *Config) error {
	if cfg.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	if cfg.Server.Timeout == 0 {
		return fmt.Errorf("server.timeout is required")
	}
	if cfg.Backend.URL == "" {
		return fmt.Errorf("backend.url is required")
	}
	if cfg.Backend.FetchPath == "" {
		return fmt.Errorf("backend.fetch_path is required")
	}
	if !strings.HasPrefix(cfg.Backend.FetchPath, "/") {
		return fmt.Errorf("backend.fetch_path must start with /")
	}
	if cfg.Backend.HealthPath != "" && !strings.HasPrefix(cfg.Backend.HealthPath, "/") {
		return fmt.Errorf("backend.health_path must start with /")
	}
	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() *jsonschema.Schema {
	return jsonschema.Reflect(&Config{})
}
