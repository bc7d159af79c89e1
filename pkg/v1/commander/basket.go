package commander

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ParseBasket decodes YAML basket file into pull command and validates it.
func ParseBasket(data []byte) (PullCommand, error) {
	var cmd PullCommand
	if err := yaml.Unmarshal(data, &cmd); err != nil {
		return PullCommand{}, fmt.Errorf("can't decode basket: %w", err)
	}

	if err := Validate(cmd); err != nil {
		return PullCommand{}, err
	}

	return cmd, nil
}

// LoadBasket reads and parses YAML basket file at path.
func LoadBasket(path string) (PullCommand, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PullCommand{}, fmt.Errorf("can't read basket file: %w", err)
	}
	return ParseBasket(data)
}
