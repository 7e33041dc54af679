package notify

import "fmt"

// Request describes one logical notification to fan out. The dispatcher
// stamps the creation time itself; callers cannot supply it, which keeps
// clock skew between callers out of the stored records. A Level left at
// its zero value is treated as LevelNormal.
type Request struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	URL         string   `json:"url,omitempty"`
	Level       Level    `json:"level"`
	UserIDs     []string `json:"user_ids"`
}

// Validate checks the request before any side effect takes place.
func (r Request) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidRequest)
	}
	if len(r.UserIDs) == 0 {
		return fmt.Errorf("%w: at least one recipient is required", ErrInvalidRequest)
	}
	return nil
}

// recipients returns the deduplicated recipient set in first-seen order.
func (r Request) recipients() []string {
	seen := make(map[string]struct{}, len(r.UserIDs))
	out := make([]string, 0, len(r.UserIDs))
	for _, id := range r.UserIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
