package ledger

// Config holds configuration for the scan ledger.
type Config struct {
	// Driver selects the backend (gorm, file).
	Driver string `mapstructure:"driver" default:"gorm"`
	// Path is the log file location for the file backend.
	Path string `mapstructure:"path" default:"registros_leitura.csv"`
}

const (
	DriverGorm = "gorm"
	DriverFile = "file"
)

// IsValidDriver checks if the configured driver is valid.
func (c Config) IsValidDriver() bool {
	switch c.Driver {
	case DriverGorm, DriverFile:
		return true
	default:
		return false
	}
}
