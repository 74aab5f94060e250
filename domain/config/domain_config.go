package config

// DomainConfig holds the configurable business rules of the graph
type DomainConfig struct {
	// Node constraints
	MinTitleLength int

	// Edge constraints
	AllowSelfConnections bool
}

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		MinTitleLength:       3,
		AllowSelfConnections: true,
	}
}
