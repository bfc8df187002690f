// internal/registry/seed.go
package registry

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed seed/activities.json seed/activities.schema.json
var seedFS embed.FS

// LoadSeed returns the embedded activity catalogue, validated against the
// embedded schema. A broken seed is a build problem, so the error should be
// treated as fatal at startup.
func LoadSeed() (*SeedDocument, error) {
	data, err := seedFS.ReadFile("seed/activities.json")
	if err != nil {
		return nil, fmt.Errorf("read embedded seed: %w", err)
	}
	return parseSeed(data)
}

// LoadSeedFile loads and validates a seed document from disk, for
// deployments that override the embedded catalogue.
func LoadSeedFile(path string) (*SeedDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file %s: %w", path, err)
	}
	return parseSeed(data)
}

func parseSeed(data []byte) (*SeedDocument, error) {
	if err := ValidateSeed(data); err != nil {
		return nil, err
	}

	var doc SeedDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal seed: %w", err)
	}

	// The schema cannot express per-activity capacity versus the seeded
	// participant count, so check it here.
	for name, act := range doc.Activities {
		if len(act.Participants) > act.MaxParticipants {
			return nil, fmt.Errorf("seed activity %q has %d participants but max_participants is %d",
				name, len(act.Participants), act.MaxParticipants)
		}
	}

	return &doc, nil
}

// ValidateSeed checks a raw seed document against the embedded JSON schema.
func ValidateSeed(data []byte) error {
	schemaBytes, err := seedFS.ReadFile("seed/activities.schema.json")
	if err != nil {
		return fmt.Errorf("read embedded schema: %w", err)
	}

	schemaLoader := gojsonschema.NewBytesLoader(schemaBytes)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("seed validation failed: %v", errs)
	}

	return nil
}
