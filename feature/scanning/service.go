package scanning

import (
	"context"
	"errors"
	"time"

	"op-tracker/core/catalog"
	"op-tracker/core/reconcile"

	"go.uber.org/zap"
)

// SnapshotProvider supplies the order snapshot for a calendar day.
type SnapshotProvider interface {
	SnapshotForDay(ctx context.Context, day time.Time) (*catalog.Snapshot, error)
}

// ErrConfirmationRequired signals that the order already reached its expected
// quantity and the caller did not confirm scanning past it. The scan was NOT
// appended; the accompanying status carries the current count.
var ErrConfirmationRequired = errors.New("order already at expected quantity, confirmation required")

// Service registers scans against orders resolved from the daily snapshot.
type Service struct {
	snapshots SnapshotProvider
	engine    *reconcile.Engine
	logger    *zap.Logger
}

// NewService creates a new scanning service.
func NewService(snapshots SnapshotProvider, engine *reconcile.Engine, logger *zap.Logger) *Service {
	return &Service{snapshots: snapshots, engine: engine, logger: logger}
}

// RegisterScan validates and appends one scan. When the order is already at
// or past its expected quantity and confirmOver is false, it returns
// ErrConfirmationRequired together with the current status so the caller can
// ask the operator; the ledger is untouched in that case.
func (s *Service) RegisterScan(ctx context.Context, day time.Time, orderCode, raw string, confirmOver bool) (*reconcile.Status, error) {
	snapshot, err := s.snapshots.SnapshotForDay(ctx, day)
	if err != nil {
		return nil, err
	}
	order, ok := snapshot.Resolve(orderCode)
	if !ok {
		return nil, reconcile.ErrUnknownOrder
	}

	if !confirmOver {
		// Reject cheap failures before consulting the ledger.
		if err := s.engine.Validate(order, raw); err != nil {
			return nil, err
		}
		status, err := s.engine.Status(ctx, order)
		if err != nil {
			return nil, err
		}
		if status.State != reconcile.StatePending {
			return status, ErrConfirmationRequired
		}
	}

	return s.engine.RegisterScan(ctx, order, raw)
}

// Status returns the current status of an order of a day.
func (s *Service) Status(ctx context.Context, day time.Time, orderCode string) (*reconcile.Status, error) {
	snapshot, err := s.snapshots.SnapshotForDay(ctx, day)
	if err != nil {
		return nil, err
	}
	order, ok := snapshot.Resolve(orderCode)
	if !ok {
		return nil, reconcile.ErrUnknownOrder
	}
	return s.engine.Status(ctx, order)
}

// NewSession starts an operator session over the snapshot of a day.
func (s *Service) NewSession(ctx context.Context, day time.Time) (*Session, error) {
	snapshot, err := s.snapshots.SnapshotForDay(ctx, day)
	if err != nil {
		return nil, err
	}
	return &Session{snapshot: snapshot, engine: s.engine}, nil
}
