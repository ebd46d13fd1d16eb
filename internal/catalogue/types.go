package catalogue

import "context"

// one assessment product; derived fields are filled by Normalize
type Item struct {
	ID              string   `json:"id"`
	URL             string   `json:"url"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Categories      []string `json:"test_type"`
	PrimaryCategory string   `json:"type"`
	DurationMinutes int      `json:"duration"`
	AdaptiveSupport string   `json:"adaptive_support"`
	RemoteSupport   string   `json:"remote_support"`
	Skills          string   `json:"skills,omitempty"`
	CombinedText    string   `json:"-"`
}

// the loaded, normalized item set; read-only once returned by Load
type Catalogue struct {
	Items    []Item
	Source   string
	Degraded bool
}

// anything that can produce raw catalogue rows (CSV file, Postgres table)
type Source interface {
	Name() string
	LoadItems(ctx context.Context) ([]Item, error)
}
