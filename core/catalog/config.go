package catalog

// Config holds configuration for the order catalog.
type Config struct {
	// CacheTTLSeconds is how long a loaded snapshot stays fresh. Zero
	// disables caching.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"60"`
}
