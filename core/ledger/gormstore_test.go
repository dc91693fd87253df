package ledger

import (
	"context"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSQLiteStore(t *testing.T) *GormStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	store, err := NewGormStore(db)
	require.NoError(t, err)
	return store
}

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

func TestGormStore_AppendAndCount(t *testing.T) {
	store := setupSQLiteStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := store.Append(ctx, ScanEvent{OrderCode: "168343", Barcode: "7899600724613", ProductID: 42})
		assert.NoError(t, err)
	}
	err := store.Append(ctx, ScanEvent{OrderCode: "200001", Barcode: "1234567890123", ProductID: 7})
	assert.NoError(t, err)

	n, err := store.CountFor(ctx, "168343")
	assert.NoError(t, err)
	assert.Equal(t, int64(3), n)

	n, err = store.CountFor(ctx, "200001")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestGormStore_RoundTrip(t *testing.T) {
	store := setupSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, ScanEvent{OrderCode: "168343", Barcode: "7899600724613", ProductID: 42}))

	events, err := store.Events(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "168343", events[0].OrderCode)
	assert.Equal(t, "7899600724613", events[0].Barcode)
	assert.Equal(t, 42, events[0].ProductID)
	assert.Equal(t, 1, events[0].Quantity)
	assert.False(t, events[0].Timestamp.IsZero())
}

func TestGormStore_ForEachStopsOnCallbackError(t *testing.T) {
	store := setupSQLiteStore(t)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		require.NoError(t, store.Append(ctx, ScanEvent{OrderCode: "168343", Barcode: "7899600724613"}))
	}

	seen := 0
	stop := fmt.Errorf("stop")
	err := store.ForEach(ctx, func(ScanEvent) error {
		seen++
		if seen == 2 {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 2, seen)
}

func TestGormStore_AppendFailureIsStorageError(t *testing.T) {
	db, mock := setupMockDB(t)
	store := &GormStore{db: db}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `scan_events`").WillReturnError(fmt.Errorf("connection refused"))
	mock.ExpectRollback()

	err := store.Append(context.Background(), ScanEvent{OrderCode: "168343", Barcode: "7899600724613"})
	require.Error(t, err)

	var storageError *StorageError
	require.ErrorAs(t, err, &storageError)
	assert.Equal(t, "append", storageError.Op)
	assert.False(t, storageError.Timeout)
}

func TestGormStore_CountQuery(t *testing.T) {
	db, mock := setupMockDB(t)
	store := &GormStore{db: db}

	rows := sqlmock.NewRows([]string{"count(*)"}).AddRow(7)
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `scan_events` WHERE order_code = \\?").WillReturnRows(rows)

	n, err := store.CountFor(context.Background(), "168343")
	assert.NoError(t, err)
	assert.Equal(t, int64(7), n)
}
