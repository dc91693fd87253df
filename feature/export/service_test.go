package export

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"op-tracker/core/ledger"
	"op-tracker/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestLedger(t *testing.T) ledger.Ledger {
	t.Helper()
	led, err := ledger.NewFileLog(filepath.Join(t.TempDir(), "ledger.csv"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = led.Close() })
	return led
}

func TestExportLedger(t *testing.T) {
	led := newTestLedger(t)
	ctx := context.Background()
	require.NoError(t, led.Append(ctx, ledger.ScanEvent{OrderCode: "168343", Barcode: "7899600724613", ProductID: 42}))
	require.NoError(t, led.Append(ctx, ledger.ScanEvent{OrderCode: "168343", Barcode: "7899600724613", ProductID: 42}))

	var uploaded [][]string
	client := &mocks.Client{}
	client.On("BucketExists", mock.Anything, "op-ledger").Return(true, nil)
	client.On("PutObject", mock.Anything, "op-ledger", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			reader := args.Get(3).(io.Reader)
			records, err := csv.NewReader(reader).ReadAll()
			require.NoError(t, err)
			uploaded = records
		}).
		Return(minio.UploadInfo{}, nil)

	svc := NewService(led, client, "op-ledger", zap.NewNop())
	result, err := svc.ExportLedger(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Events)
	assert.Regexp(t, `^ledger/\d{4}-\d{2}-\d{2}-[0-9a-f-]+\.csv$`, result.Object)

	require.Len(t, uploaded, 3)
	assert.Equal(t, []string{"order_code", "barcode", "product_id", "quantity", "timestamp"}, uploaded[0])
	assert.Equal(t, "168343", uploaded[1][0])
	assert.Equal(t, "7899600724613", uploaded[1][1])
	assert.Equal(t, "42", uploaded[1][2])
	assert.Equal(t, "1", uploaded[1][3])
	client.AssertExpectations(t)
}

func TestExportLedger_CreatesBucket(t *testing.T) {
	led := newTestLedger(t)
	ctx := context.Background()

	client := &mocks.Client{}
	client.On("BucketExists", mock.Anything, "op-ledger").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "op-ledger", mock.Anything).Return(nil)
	client.On("PutObject", mock.Anything, "op-ledger", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	svc := NewService(led, client, "op-ledger", zap.NewNop())
	result, err := svc.ExportLedger(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Events)
	client.AssertExpectations(t)
}

func TestListArchives(t *testing.T) {
	led := newTestLedger(t)
	ctx := context.Background()

	modified := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	ch := make(chan minio.ObjectInfo, 2)
	ch <- minio.ObjectInfo{Key: "ledger/2026-08-31-abc.csv", Size: 120, LastModified: modified}
	ch <- minio.ObjectInfo{Key: "ledger/2026-09-01-def.csv", Size: 48, LastModified: modified.AddDate(0, 0, 1)}
	close(ch)

	client := &mocks.Client{}
	client.On("BucketExists", mock.Anything, "op-ledger").Return(true, nil)
	client.On("ListObjects", mock.Anything, "op-ledger", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

	svc := NewService(led, client, "op-ledger", zap.NewNop())
	archives, err := svc.ListArchives(ctx)
	require.NoError(t, err)
	require.Len(t, archives, 2)
	assert.Equal(t, "ledger/2026-08-31-abc.csv", archives[0].Object)
	assert.Equal(t, int64(120), archives[0].Size)
	client.AssertExpectations(t)
}

func TestListArchives_NoBucket(t *testing.T) {
	led := newTestLedger(t)

	client := &mocks.Client{}
	client.On("BucketExists", mock.Anything, "op-ledger").Return(false, nil)

	svc := NewService(led, client, "op-ledger", zap.NewNop())
	archives, err := svc.ListArchives(context.Background())
	require.NoError(t, err)
	assert.Empty(t, archives)
}

func TestOpenArchive(t *testing.T) {
	led := newTestLedger(t)

	client := &mocks.Client{}
	client.On("GetObject", mock.Anything, "op-ledger", "ledger/2026-08-31-abc.csv", mock.Anything).
		Return(io.NopCloser(strings.NewReader("order_code,barcode\n")), nil)

	svc := NewService(led, client, "op-ledger", zap.NewNop())
	reader, err := svc.OpenArchive(context.Background(), "ledger/2026-08-31-abc.csv")
	require.NoError(t, err)
	defer reader.Close()

	content, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Contains(t, string(content), "order_code")

	_, err = svc.OpenArchive(context.Background(), "../etc/passwd")
	assert.ErrorContains(t, err, "unknown archive")
}

func TestExportLedger_UploadFailure(t *testing.T) {
	led := newTestLedger(t)
	ctx := context.Background()

	client := &mocks.Client{}
	client.On("BucketExists", mock.Anything, "op-ledger").Return(true, nil)
	client.On("PutObject", mock.Anything, "op-ledger", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("connection refused"))

	svc := NewService(led, client, "op-ledger", zap.NewNop())
	_, err := svc.ExportLedger(ctx)
	assert.ErrorContains(t, err, "failed to upload export")
}
