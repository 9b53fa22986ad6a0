package dto

// ServiceHealth describes one external dependency. Configured false means the
// backend has no credentials or address set, which is reported, not treated as
// an outage.
type ServiceHealth struct {
	Healthy    bool `json:"healthy"`
	Configured bool `json:"configured"`
}

// HealthResponse reports each backend plus two rollups: Overall is true only
// when both backends are healthy; Status stays "ok" for backends that are
// simply not configured.
type HealthResponse struct {
	Status   string                   `json:"status"`
	Overall  bool                     `json:"overall"`
	Services map[string]ServiceHealth `json:"services"`
}
