package notify

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

var errEmptyCatalog = errors.New("notification type catalog is empty")

type typeCatalog struct {
	Types []Type `yaml:"types"`
}

// LoadTypes parses a YAML notification type catalog:
//
//	types:
//	  - id: server-restart-required
//	    display_name: Server Restart Required
//	  - id: task-failed
//	    display_name: Scheduled Task Failed
//
// Ids must be non-empty and unique. The result feeds NewRegistry at
// process start.
func LoadTypes(r io.Reader) ([]Type, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read type catalog: %w", err)
	}

	var catalog typeCatalog
	if err := yaml.Unmarshal(raw, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse type catalog: %w", err)
	}
	if len(catalog.Types) == 0 {
		return nil, errEmptyCatalog
	}

	seen := make(map[string]struct{}, len(catalog.Types))
	for i, t := range catalog.Types {
		if t.ID == "" {
			return nil, fmt.Errorf("type catalog entry %d has an empty id", i)
		}
		if _, ok := seen[t.ID]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTypeID, t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	return catalog.Types, nil
}
