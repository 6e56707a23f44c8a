package scraper

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadSelectors reads a selector set from a YAML file. An empty path
// means the built-in defaults.
func LoadSelectors(filePath string) (*Selectors, error) {
	if filePath == "" {
		return DefaultSelectors(), nil
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open selectors file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close selectors file: %v\n", closeErr)
		}
	}()

	var selectors Selectors
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&selectors); err != nil {
		return nil, fmt.Errorf("failed to parse selectors YAML: %w", err)
	}

	if err := selectors.Validate(); err != nil {
		return nil, err
	}

	return &selectors, nil
}

// Validate checks the minimal selector set
func (s *Selectors) Validate() error {
	if s.ListingLinks == "" {
		return fmt.Errorf("listing_links is required")
	}
	if s.ViewRefPattern == "" {
		return fmt.Errorf("view_ref_pattern is required")
	}
	if len(s.Title) == 0 {
		return fmt.Errorf("title is required")
	}
	if len(s.Period) == 0 {
		return fmt.Errorf("period is required")
	}
	if s.EligibilityItem == "" || s.EligibilityToken == "" {
		return fmt.Errorf("eligibility_item and eligibility_token are required")
	}
	if len(s.EligibilityText) == 0 {
		return fmt.Errorf("eligibility_text is required")
	}
	return nil
}
