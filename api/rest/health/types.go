package health

type Response struct {
	Status        string `json:"status"`
	Service       string `json:"service"`
	Version       string `json:"version,omitempty"`
	CatalogueSize int    `json:"catalogue_size,omitempty"`
	Source        string `json:"catalogue_source,omitempty"`
	Degraded      bool   `json:"degraded,omitempty"`
}

type PingResponse struct {
	Message string `json:"message"`
}

// reports the loaded catalogue, nil-safe while initializing
type Status struct {
	Ready         bool
	CatalogueSize int
	Source        string
	Degraded      bool
}

// StatusFunc snapshots readiness for one health probe
type StatusFunc func() Status

const (
	serviceName = "talentmatch"
	version     = "1.0.0"

	statusHealthy      = "healthy"
	statusInitializing = "initializing"
)
