package ledger

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// scanEventRow is the canonical per-event schema of the scan_events table.
// One row per scan; running-total rows from the legacy tool are not supported
// here and must be expanded through the importlegacy command.
type scanEventRow struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	OrderCode string    `gorm:"column:order_code;size:32;index"`
	Barcode   string    `gorm:"column:barcode;size:64"`
	ProductID int       `gorm:"column:product_id"`
	Quantity  int       `gorm:"column:quantity"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

// TableName overrides the table name.
func (scanEventRow) TableName() string {
	return "scan_events"
}

func (r scanEventRow) toEvent() ScanEvent {
	return ScanEvent{
		OrderCode: r.OrderCode,
		Barcode:   r.Barcode,
		ProductID: r.ProductID,
		Quantity:  r.Quantity,
		Timestamp: r.CreatedAt,
	}
}

// GormStore persists scan events in a relational scan_events table. Insert
// atomicity comes from the database transaction, so concurrent appends from
// multiple processes are safe.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates the store and ensures the scan_events table exists.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&scanEventRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate scan_events: %w", err)
	}
	return &GormStore{db: db}, nil
}

// Append inserts one event row inside a transaction.
func (s *GormStore) Append(ctx context.Context, event ScanEvent) error {
	stamp(&event)
	row := scanEventRow{
		OrderCode: event.OrderCode,
		Barcode:   event.Barcode,
		ProductID: event.ProductID,
		Quantity:  event.Quantity,
		CreatedAt: event.Timestamp,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return storageErr("append", err)
	}
	return nil
}

// CountFor counts the event rows recorded for an order code.
func (s *GormStore) CountFor(ctx context.Context, orderCode string) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&scanEventRow{}).
		Where("order_code = ?", orderCode).
		Count(&n).Error
	if err != nil {
		return 0, storageErr("count", err)
	}
	return n, nil
}

// Events returns all events in append order.
func (s *GormStore) Events(ctx context.Context) ([]ScanEvent, error) {
	var rows []scanEventRow
	if err := s.db.WithContext(ctx).Order("id asc").Find(&rows).Error; err != nil {
		return nil, storageErr("events", err)
	}
	events := make([]ScanEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, row.toEvent())
	}
	return events, nil
}

// ForEach streams events in batches to avoid materializing the full table.
func (s *GormStore) ForEach(ctx context.Context, fn func(ScanEvent) error) error {
	var batch []scanEventRow
	var fnErr error
	result := s.db.WithContext(ctx).Order("id asc").FindInBatches(&batch, 500, func(tx *gorm.DB, _ int) error {
		for _, row := range batch {
			if err := fn(row.toEvent()); err != nil {
				fnErr = err
				return err
			}
		}
		return nil
	})
	if fnErr != nil {
		return fnErr
	}
	if result.Error != nil {
		return storageErr("events", result.Error)
	}
	return nil
}
