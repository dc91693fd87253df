package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestLoader_LoadDay(t *testing.T) {
	db, mock := setupMockDB(t)
	loader := NewLoader(db)

	rows := sqlmock.NewRows([]string{"cod_op", "especie", "sub_especie", "id_produto", "nome_produto", "qtd_prevista", "codigo_barras"}).
		AddRow("168343", "PRODUTO ACABADO - CALCADOS", "SANDALIA", 42, "SANDALIA VERAO", 2, "7899600724613").
		AddRow("168344", "PRODUTO ACABADO - CALCADOS", "TENIS", 43, "TENIS CASUAL", 10, "7899600724620").
		AddRow("", "PRODUTO ACABADO - BOLSAS", "COURO", 44, "BOLSA", 5, "7899600724637")

	mock.ExpectQuery("SELECT .+ FROM os_producao_linha_prod opp").WillReturnRows(rows)

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	orders, err := loader.LoadDay(context.Background(), day)
	require.NoError(t, err)

	// The row without an order code is dropped.
	require.Len(t, orders, 2)
	assert.Equal(t, "168343", orders[0].OrderCode)
	assert.Equal(t, "CALCADOS", orders[0].Species)
	assert.Equal(t, 2, orders[0].ExpectedQuantity)
	assert.Equal(t, "7899600724613", orders[0].ExpectedBarcode)
}

func TestLoader_QueryFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	loader := NewLoader(db)

	mock.ExpectQuery("SELECT .+ FROM os_producao_linha_prod opp").WillReturnError(assert.AnError)

	_, err := loader.LoadDay(context.Background(), time.Now())
	assert.Error(t, err)
}

func TestCache_SharesSnapshotWithinTTL(t *testing.T) {
	db, mock := setupMockDB(t)
	cache := NewCache(NewLoader(db), time.Minute)

	rows := sqlmock.NewRows([]string{"cod_op", "especie", "sub_especie", "id_produto", "nome_produto", "qtd_prevista", "codigo_barras"}).
		AddRow("168343", "CALCADOS", "SANDALIA", 42, "SANDALIA VERAO", 2, "7899600724613")
	mock.ExpectQuery("SELECT .+ FROM os_producao_linha_prod opp").WillReturnRows(rows)

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	first, err := cache.SnapshotForDay(context.Background(), day)
	require.NoError(t, err)
	// Second call must not hit the database; sqlmock would fail on an
	// unexpected query.
	second, err := cache.SnapshotForDay(context.Background(), day)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_InvalidateForcesReload(t *testing.T) {
	db, mock := setupMockDB(t)
	cache := NewCache(NewLoader(db), time.Minute)

	for i := 0; i < 2; i++ {
		rows := sqlmock.NewRows([]string{"cod_op", "especie", "sub_especie", "id_produto", "nome_produto", "qtd_prevista", "codigo_barras"}).
			AddRow("168343", "CALCADOS", "SANDALIA", 42, "SANDALIA VERAO", 2, "7899600724613")
		mock.ExpectQuery("SELECT .+ FROM os_producao_linha_prod opp").WillReturnRows(rows)
	}

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	_, err := cache.SnapshotForDay(context.Background(), day)
	require.NoError(t, err)
	cache.Invalidate(day)
	_, err = cache.SnapshotForDay(context.Background(), day)
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
