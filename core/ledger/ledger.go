package ledger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"
)

// ScanEvent is one recorded barcode reading against a production order.
// Quantity is fixed at 1: one scan counts one physical unit, and repeated
// identical scans legitimately accumulate.
type ScanEvent struct {
	// OrderCode references the production order the scan was registered against.
	OrderCode string `json:"order_code"`

	// Barcode is the normalized barcode as read.
	Barcode string `json:"barcode"`

	// ProductID is denormalized from the catalog at write time so reports can
	// aggregate without rejoining the ERP database.
	ProductID int `json:"product_id"`

	// Quantity is always 1.
	Quantity int `json:"quantity"`

	// Timestamp is assigned by the ledger on append, non-decreasing in append order.
	Timestamp time.Time `json:"timestamp"`
}

// Ledger is the append-only store of scan events.
type Ledger interface {
	// Append records one event. It is atomic with respect to concurrent
	// appends; a failure is reported to the caller and never retried
	// internally.
	Append(ctx context.Context, event ScanEvent) error

	// CountFor returns the number of events recorded for the order code. It
	// reflects all appends that completed before the call started.
	CountFor(ctx context.Context, orderCode string) (int64, error)

	// Events returns all recorded events in append order. Reporting only;
	// the scan decision path uses CountFor.
	Events(ctx context.Context) ([]ScanEvent, error)

	// ForEach streams all recorded events in append order without
	// materializing them. Iteration stops at the first error returned by fn.
	ForEach(ctx context.Context, fn func(ScanEvent) error) error
}

// StorageError reports a ledger I/O failure. When Timeout is set the outcome
// of the operation is unknown to the caller.
type StorageError struct {
	// Op names the failed operation ("append", "count", "events").
	Op string
	// Timeout indicates the caller's deadline expired before the operation
	// was acknowledged.
	Timeout bool
	// Err is the underlying cause.
	Err error
}

func (e *StorageError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("ledger %s timed out: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("ledger %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// storageErr wraps err into a *StorageError, detecting deadline expiry.
func storageErr(op string, err error) *StorageError {
	return &StorageError{
		Op:      op,
		Timeout: errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err),
		Err:     err,
	}
}

// stamp fills the ledger-owned fields of an event before it is written.
func stamp(event *ScanEvent) {
	event.Quantity = 1
	event.Timestamp = time.Now()
}
