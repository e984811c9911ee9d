package commons

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// ReadYAMLFile parses a YAML configuration file into a nested key/value map.
func ReadYAMLFile(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	values := map[string]interface{}{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return values, nil
}
