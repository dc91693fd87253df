package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ColumnInfo matches the output of SHOW COLUMNS.
type ColumnInfo struct {
	Field   string
	Type    string
	Null    string
	Key     string
	Default *string // Pointer because NULL default is possible
	Extra   string
}

// GetTableColumns retrieves the column definitions for a given table.
func GetTableColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	var columns []ColumnInfo
	if db.Dialector.Name() == "sqlite" {
		// SQLite uses PRAGMA table_info
		type sqliteColumn struct {
			Cid        int
			Name       string
			Type       string
			Notnull    int
			DefaultVal *string
			Pk         int
		}
		var sqliteCols []sqliteColumn
		if err := db.Raw(fmt.Sprintf("PRAGMA table_info('%s')", tableName)).Scan(&sqliteCols).Error; err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
		}
		for _, col := range sqliteCols {
			columns = append(columns, ColumnInfo{
				Field: strings.ToLower(col.Name),
				Type:  strings.ToLower(col.Type),
			})
		}
		return columns, nil
	}

	err := db.Raw(fmt.Sprintf("SHOW COLUMNS FROM `%s`", tableName)).Scan(&columns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}
	for i := range columns {
		columns[i].Type = strings.ToLower(columns[i].Type)
		columns[i].Field = strings.ToLower(columns[i].Field)
	}
	return columns, nil
}

// DetectLegacyLedgerTable reports whether the database still carries the old
// LEITURA_PRODUTO running-total table: rows keyed by order code with an
// accumulated quantity and no per-event timestamp. Such data cannot feed the
// per-event ledger directly and must go through the importlegacy command.
func DetectLegacyLedgerTable(db *gorm.DB) (bool, error) {
	if !db.Migrator().HasTable("LEITURA_PRODUTO") {
		return false, nil
	}

	columns, err := GetTableColumns(db, "LEITURA_PRODUTO")
	if err != nil {
		return false, err
	}

	hasCode, hasQty, hasTimestamp := false, false, false
	for _, col := range columns {
		switch col.Field {
		case "cod_op", "codigo_op":
			hasCode = true
		case "qtd", "quantidade", "quantity":
			hasQty = true
		case "created_at", "timestamp", "data_leitura":
			hasTimestamp = true
		}
	}

	return hasCode && hasQty && !hasTimestamp, nil
}
