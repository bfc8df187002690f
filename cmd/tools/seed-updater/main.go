// cmd/tools/seed-updater/main.go
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"mergington-activities/internal/registry"
)

var seedPath string

func main() {
	addCmd := flag.NewFlagSet("add", flag.ExitOnError)
	updateCmd := flag.NewFlagSet("update", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)

	// Add command flags
	nameAdd := addCmd.String("name", "", "Activity name (e.g., \"Chess Club\")")
	description := addCmd.String("description", "", "Description")
	schedule := addCmd.String("schedule", "", "Schedule (e.g., \"Fridays, 3:30 PM - 5:00 PM\")")
	maxParticipants := addCmd.Int("max", 0, "Maximum number of participants")
	addCmd.StringVar(&seedPath, "path", "configs/activities.json", "Path to seed file")

	// Update command flags
	nameUpdate := updateCmd.String("name", "", "Activity name to update")
	field := updateCmd.String("field", "", "Field to update (description, schedule, max)")
	value := updateCmd.String("value", "", "New value for the field")
	updateCmd.StringVar(&seedPath, "path", "configs/activities.json", "Path to seed file")

	// Validate command flags
	validateCmd.StringVar(&seedPath, "path", "configs/activities.json", "Path to seed file")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add":
		addCmd.Parse(os.Args[2:])
		if *nameAdd == "" || *description == "" || *schedule == "" || *maxParticipants <= 0 {
			fmt.Println("Error: name, description, schedule, and a positive max are required for add.")
			addCmd.Usage()
			os.Exit(1)
		}
		activity := registry.Activity{
			Description:     *description,
			Schedule:        *schedule,
			MaxParticipants: *maxParticipants,
			Participants:    []string{},
		}
		if err := addActivity(*nameAdd, activity); err != nil {
			fmt.Printf("Error adding activity: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Added activity: %s\n", *nameAdd)

	case "update":
		updateCmd.Parse(os.Args[2:])
		if *nameUpdate == "" || *field == "" || *value == "" {
			fmt.Println("Error: name, field, and value are required for update.")
			updateCmd.Usage()
			os.Exit(1)
		}
		if err := updateActivity(*nameUpdate, *field, *value); err != nil {
			fmt.Printf("Error updating activity: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Updated activity %s, field %s to %s\n", *nameUpdate, *field, *value)

	case "validate":
		validateCmd.Parse(os.Args[2:])
		if err := validateSeed(); err != nil {
			fmt.Printf("Seed validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Seed validation passed.")

	case "help":
		fallthrough
	default:
		help()
	}
}

func addActivity(name string, activity registry.Activity) error {
	doc, err := registry.LoadSeedFile(seedPath)
	if err != nil {
		// If file doesn't exist, start a fresh document
		if errors.Is(err, os.ErrNotExist) {
			doc = &registry.SeedDocument{
				Version:     "1.0.0",
				LastUpdated: time.Now().Format(time.RFC3339),
				Activities:  map[string]registry.Activity{},
			}
		} else {
			return fmt.Errorf("failed to load seed: %w", err)
		}
	}

	if _, exists := doc.Activities[name]; exists {
		return fmt.Errorf("activity %q already exists", name)
	}

	doc.Activities[name] = activity
	doc.LastUpdated = time.Now().Format(time.RFC3339)

	return saveSeed(doc, seedPath)
}

func updateActivity(name, field, value string) error {
	doc, err := registry.LoadSeedFile(seedPath)
	if err != nil {
		return fmt.Errorf("failed to load seed: %w", err)
	}

	activity, found := doc.Activities[name]
	if !found {
		return fmt.Errorf("activity %q not found", name)
	}

	switch field {
	case "description":
		activity.Description = value
	case "schedule":
		activity.Schedule = value
	case "max":
		max, err := strconv.Atoi(value)
		if err != nil || max <= 0 {
			return fmt.Errorf("invalid max value: %s", value)
		}
		if max < len(activity.Participants) {
			return fmt.Errorf("max %d is below current participant count %d", max, len(activity.Participants))
		}
		activity.MaxParticipants = max
	default:
		return fmt.Errorf("unknown field: %s", field)
	}

	doc.Activities[name] = activity
	doc.LastUpdated = time.Now().Format(time.RFC3339)
	return saveSeed(doc, seedPath)
}

func validateSeed() error {
	doc, err := registry.LoadSeedFile(seedPath)
	if err != nil {
		return err
	}
	fmt.Printf("Seed validation passed. Found %d activities.\n", len(doc.Activities))
	return nil
}

// saveSeed writes the document and re-validates the result round-trip.
func saveSeed(doc *registry.SeedDocument, path string) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal seed: %w", err)
	}

	if err := registry.ValidateSeed(data); err != nil {
		return fmt.Errorf("refusing to write invalid seed: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write seed file: %w", err)
	}

	return nil
}

func help() {
	fmt.Print(`
Usage: seed-updater <command> [flags]

Commands:
  add      Add a new activity to a seed file
  update   Update an existing activity's field
  validate Validate a seed file against the schema
  help     Show this help message

Examples:
  seed-updater add -name "Robotics Club" -description "Design and build competition robots" -schedule "Wednesdays, 3:30 PM - 5:30 PM" -max 16
  seed-updater update -name "Robotics Club" -field max -value 20
  seed-updater validate -path configs/activities.json

Use 'seed-updater <command> -h' for more information about a command.
`)
}
