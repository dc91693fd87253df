package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTableColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE test_items (id INTEGER PRIMARY KEY, name TEXT, description TEXT)").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "test_items")
	assert.NoError(t, err)
	assert.Len(t, columns, 3)

	colMap := make(map[string]string)
	for _, col := range columns {
		colMap[col.Field] = col.Type
	}

	assert.Equal(t, "integer", colMap["id"])
	assert.Equal(t, "text", colMap["name"])
	assert.Equal(t, "text", colMap["description"])

	// PRAGMA table_info returns an empty result for a missing table.
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestDetectLegacyLedgerTable(t *testing.T) {
	t.Run("No table", func(t *testing.T) {
		db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
		require.NoError(t, err)

		legacy, err := DetectLegacyLedgerTable(db)
		assert.NoError(t, err)
		assert.False(t, legacy)
	})

	t.Run("Running-total layout", func(t *testing.T) {
		db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
		require.NoError(t, err)
		require.NoError(t, db.Exec("CREATE TABLE LEITURA_PRODUTO (COD_OP TEXT, QTD INTEGER, STATUS TEXT)").Error)

		legacy, err := DetectLegacyLedgerTable(db)
		assert.NoError(t, err)
		assert.True(t, legacy)
	})

	t.Run("Per-event layout is not legacy", func(t *testing.T) {
		db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
		require.NoError(t, err)
		require.NoError(t, db.Exec("CREATE TABLE LEITURA_PRODUTO (COD_OP TEXT, QTD INTEGER, CREATED_AT DATETIME)").Error)

		legacy, err := DetectLegacyLedgerTable(db)
		assert.NoError(t, err)
		assert.False(t, legacy)
	})
}
