package main

import (
	"encoding/json"
	"log"
	"os"

	"github.com/grovetools/agentstatus/config"
	"github.com/invopop/jsonschema"
)

const schemaFile = config.ExtensionName + ".schema.json"

func buildSchema(commentsDir string) *jsonschema.Schema {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: true,
		ExpandedStruct:            true,
		FieldNameTag:              "yaml",
	}
	// go:generate runs this from config/, so commentsDir is "." there and
	// field docs become descriptions.
	if err := r.AddGoComments("github.com/grovetools/agentstatus/config", commentsDir); err != nil {
		log.Printf("Skipping field descriptions: %v", err)
	}

	schema := r.Reflect(&config.Config{})
	schema.Title = "Grove Agent Status (agstatus) Configuration"
	schema.Description = "Settings for the '" + config.ExtensionName + "' extension in grove.yml, " +
		"or a standalone yaml/toml file passed with --config: where the openclaw root and roster live, " +
		"how long computed statuses are cached, the active and idle thresholds in minutes, " +
		"and per-model USD pricing (input/output per million tokens) for the usage report. " +
		"Unset fields use the built-in defaults."
	return schema
}

func main() {
	data, err := json.MarshalIndent(buildSchema("."), "", "  ")
	if err != nil {
		log.Fatalf("Error marshaling schema: %v", err)
	}

	if err := os.WriteFile(schemaFile, data, 0644); err != nil {
		log.Fatalf("Error writing schema file: %v", err)
	}

	log.Printf("Successfully generated agstatus schema at %s", schemaFile)
}
