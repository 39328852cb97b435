package mockapi

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/five82/todoterm/internal/todos"
)

// LoadSeed reads a YAML list of items:
//
//	- id: 1
//	  userId: 1
//	  title: Buy milk
//	  completed: false
func LoadSeed(path string) ([]todos.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}

	var items []todos.Item
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	return items, nil
}
