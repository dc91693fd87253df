// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM to configure connections for the two
// databases this tool touches: the ERP database the order catalog is queried
// from (MySQL), and the local ledger database (MySQL or SQLite depending on
// deployment).
//
// # Connect
//
// The generic Connect function establishes a connection for the configured
// driver. Connecting is schema-agnostic; schema knowledge lives in the
// catalog and ledger packages.
//
// # Schema Inspection
//
// GetTableColumns retrieves column definitions for a table, and
// DetectLegacyLedgerTable uses it to recognize the old running-total ledger
// layout so startup can point the operator at the importlegacy migration.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
