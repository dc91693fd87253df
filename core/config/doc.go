// Package config provides configuration management for the OP tracker.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: ERP/ledger database connection details
//   - Ledger: scan ledger backend (gorm table or append-only file)
//   - Catalog: order snapshot cache TTL
//   - Reconcile: missing-barcode policy
//   - Storage: S3/MinIO credentials for ledger exports
//   - Log: logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
