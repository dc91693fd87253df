package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"op-tracker/core/ledger"
	"op-tracker/core/storage"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Result describes one completed export.
type Result struct {
	// Object is the uploaded object name inside the bucket.
	Object string `json:"object"`
	// Events is the number of exported scan events.
	Events int `json:"events"`
}

// Service exports ledger events to object storage.
type Service struct {
	led    ledger.Ledger
	client storage.Client
	bucket string
	logger *zap.Logger
}

// NewService creates a new export service.
func NewService(led ledger.Ledger, client storage.Client, bucket string, logger *zap.Logger) *Service {
	return &Service{led: led, client: client, bucket: bucket, logger: logger}
}

// ExportLedger streams all recorded events into a CSV object under
// ledger/<date>-<id>.csv and uploads it.
func (s *Service) ExportLedger(ctx context.Context) (*Result, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"order_code", "barcode", "product_id", "quantity", "timestamp"}); err != nil {
		return nil, fmt.Errorf("failed to write export header: %w", err)
	}

	count := 0
	err := s.led.ForEach(ctx, func(event ledger.ScanEvent) error {
		count++
		return w.Write([]string{
			event.OrderCode,
			event.Barcode,
			strconv.Itoa(event.ProductID),
			strconv.Itoa(event.Quantity),
			event.Timestamp.Format(time.RFC3339Nano),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger events: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}

	if err := s.ensureBucket(ctx); err != nil {
		return nil, err
	}

	object := fmt.Sprintf("ledger/%s-%s.csv", time.Now().Format("2006-01-02"), uuid.NewString())
	_, err = s.client.PutObject(ctx, s.bucket, object, bytes.NewReader(buf.Bytes()), int64(buf.Len()), minio.PutObjectOptions{
		ContentType: "text/csv",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload export: %w", err)
	}

	s.logger.Info("Ledger exported",
		zap.String("object", object),
		zap.Int("events", count),
	)
	return &Result{Object: object, Events: count}, nil
}

// ArchiveInfo describes one previously uploaded export.
type ArchiveInfo struct {
	Object       string    `json:"object"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// ListArchives lists the exports already uploaded to the bucket.
func (s *Service) ListArchives(ctx context.Context) ([]ArchiveInfo, error) {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		return []ArchiveInfo{}, nil
	}

	archives := []ArchiveInfo{}
	for info := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: "ledger/", Recursive: true}) {
		if info.Err != nil {
			return nil, fmt.Errorf("failed to list archives: %w", info.Err)
		}
		archives = append(archives, ArchiveInfo{
			Object:       info.Key,
			Size:         info.Size,
			LastModified: info.LastModified,
		})
	}
	return archives, nil
}

// OpenArchive streams a previously uploaded export. The caller closes the
// reader.
func (s *Service) OpenArchive(ctx context.Context, object string) (io.ReadCloser, error) {
	if !strings.HasPrefix(object, "ledger/") {
		return nil, fmt.Errorf("unknown archive %q", object)
	}
	reader, err := s.client.GetObject(ctx, s.bucket, object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	return reader, nil
}

func (s *Service) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}
