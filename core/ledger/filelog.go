package ledger

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// fileHeader is the canonical per-event column set of the CSV log.
var fileHeader = []string{"order_code", "barcode", "product_id", "quantity", "timestamp"}

// ErrLegacySchema is returned when the log file carries the old running-total
// layout (one row per order with an accumulated quantity). That layout cannot
// express individual scans; run the importlegacy command to expand it.
var ErrLegacySchema = errors.New("ledger file uses the legacy running-total schema, run 'importlegacy' to migrate it")

// FileLog is an append-only CSV scan log. Each append writes and flushes
// exactly one record; prior bytes are never touched, so committed events
// survive a crash mid-append. A single mutex serializes writers within the
// process. The file is not safe for concurrent writers across processes; use
// the gorm backend for multi-host deployments.
type FileLog struct {
	mu     sync.Mutex
	path   string
	file   *os.File
	writer *csv.Writer

	// counts caches per-order event counts for read-your-writes CountFor
	// without rescanning the file on every call.
	counts map[string]int64
}

// NewFileLog opens (or creates) the log at path and replays it to rebuild the
// per-order counts. A torn trailing record from an earlier crash is skipped.
func NewFileLog(path string) (*FileLog, error) {
	counts := make(map[string]int64)
	if err := replayFile(path, func(event ScanEvent) error {
		counts[event.OrderCode]++
		return nil
	}); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	created := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		created = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger file: %w", err)
	}

	log := &FileLog{
		path:   path,
		file:   f,
		writer: csv.NewWriter(f),
		counts: counts,
	}

	if created {
		if err := log.writeRecord(fileHeader); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write ledger header: %w", err)
		}
	}

	return log, nil
}

// Close flushes and closes the underlying file.
func (l *FileLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.writer.Flush()
	return l.file.Close()
}

// Append writes one event record and flushes it to disk before returning.
func (l *FileLog) Append(ctx context.Context, event ScanEvent) error {
	if err := ctx.Err(); err != nil {
		return storageErr("append", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	stamp(&event)
	record := []string{
		event.OrderCode,
		event.Barcode,
		strconv.Itoa(event.ProductID),
		strconv.Itoa(event.Quantity),
		event.Timestamp.Format(time.RFC3339Nano),
	}
	if err := l.writeRecord(record); err != nil {
		return storageErr("append", err)
	}

	l.counts[event.OrderCode]++
	return nil
}

// writeRecord writes, flushes and syncs a single CSV record. Callers hold the
// mutex (or the log is not yet shared).
func (l *FileLog) writeRecord(record []string) error {
	if err := l.writer.Write(record); err != nil {
		return err
	}
	l.writer.Flush()
	if err := l.writer.Error(); err != nil {
		return err
	}
	return l.file.Sync()
}

// CountFor returns the cached per-order count.
func (l *FileLog) CountFor(ctx context.Context, orderCode string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, storageErr("count", err)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.counts[orderCode], nil
}

// Events reads the full log from disk in append order.
func (l *FileLog) Events(ctx context.Context) ([]ScanEvent, error) {
	var events []ScanEvent
	err := l.ForEach(ctx, func(event ScanEvent) error {
		events = append(events, event)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

// ForEach replays the log from a fresh read handle, so iteration is
// restartable and unaffected by concurrent appends past the opening offset.
func (l *FileLog) ForEach(ctx context.Context, fn func(ScanEvent) error) error {
	if err := ctx.Err(); err != nil {
		return storageErr("events", err)
	}
	if err := replayFile(l.path, fn); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		if errors.Is(err, ErrLegacySchema) {
			return err
		}
		return storageErr("events", err)
	}
	return nil
}

// replayFile streams every committed record of the log at path through fn.
// A malformed trailing record is treated as a torn write and skipped; a
// malformed record in the middle of the file is an error.
func replayFile(path string, fn func(ScanEvent) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	first := true
	var pendingErr error
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Remember the error; it only matters if more valid
			// records follow (i.e. it was not a torn tail).
			pendingErr = err
			continue
		}
		if pendingErr != nil {
			return fmt.Errorf("corrupt ledger record: %w", pendingErr)
		}

		if first {
			first = false
			if isLegacyHeader(record) {
				return ErrLegacySchema
			}
			if isHeader(record) {
				continue
			}
		}

		if len(record) < 5 {
			// Torn tail candidate, fatal only if followed by valid records.
			pendingErr = fmt.Errorf("short record with %d fields", len(record))
			continue
		}

		event, err := parseRecord(record)
		if err != nil {
			pendingErr = err
			continue
		}
		if err := fn(event); err != nil {
			return err
		}
	}

	// A trailing unparsable record is a torn write from a crash; committed
	// events before it are intact, so it is ignored.
	return nil
}

func parseRecord(record []string) (ScanEvent, error) {
	productID, err := strconv.Atoi(record[2])
	if err != nil {
		return ScanEvent{}, fmt.Errorf("bad product_id %q: %w", record[2], err)
	}
	quantity, err := strconv.Atoi(record[3])
	if err != nil {
		return ScanEvent{}, fmt.Errorf("bad quantity %q: %w", record[3], err)
	}
	ts, err := time.Parse(time.RFC3339Nano, record[4])
	if err != nil {
		return ScanEvent{}, fmt.Errorf("bad timestamp %q: %w", record[4], err)
	}
	return ScanEvent{
		OrderCode: record[0],
		Barcode:   record[1],
		ProductID: productID,
		Quantity:  quantity,
		Timestamp: ts,
	}, nil
}

func isHeader(record []string) bool {
	if len(record) != len(fileHeader) {
		return false
	}
	for i, col := range fileHeader {
		if !strings.EqualFold(strings.TrimSpace(record[i]), col) {
			return false
		}
	}
	return true
}

// isLegacyHeader matches the running-total header written by the old tool.
func isLegacyHeader(record []string) bool {
	if len(record) < 2 || len(record) > 3 {
		return false
	}
	first := strings.ToUpper(strings.TrimSpace(record[0]))
	second := strings.ToUpper(strings.TrimSpace(record[1]))
	return first == "COD_OP" && (second == "QTD" || second == "QUANTIDADE")
}
