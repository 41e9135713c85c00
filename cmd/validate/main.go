package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Helioguilhermediassilva/NarrativeVerse/pkg/npc"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <profile.json> [profile.json ...]\n", os.Args[0])
		os.Exit(1)
	}

	failed := false
	for _, filename := range os.Args[1:] {
		if err := validateFile(filename); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", filename, err)
			failed = true
			continue
		}
		fmt.Printf("%s: ok\n", filename)
	}
	if failed {
		os.Exit(1)
	}
}

var filenamePattern = regexp.MustCompile(`^[a-z0-9]+(_[a-z0-9]+)*$`)

func validateFile(filename string) error {
	baseName := filepath.Base(filename)
	if !strings.HasSuffix(baseName, ".json") {
		return fmt.Errorf("profile file must have .json extension")
	}
	id := strings.TrimSuffix(baseName, ".json")
	if !filenamePattern.MatchString(id) {
		return fmt.Errorf("filename %q must be lowercase snake_case (e.g. lyra_novastella.json)", baseName)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var p npc.Profile
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&p); err != nil {
		return fmt.Errorf("strict JSON unmarshaling failed: %w", err)
	}

	if err := p.Validate(); err != nil {
		return err
	}
	if p.ID != id {
		return fmt.Errorf("profile id %q must match filename %q", p.ID, id)
	}
	return nil
}
