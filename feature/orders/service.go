package orders

import (
	"context"
	"time"

	"op-tracker/core/catalog"
	"op-tracker/core/reconcile"

	"go.uber.org/zap"
)

// SnapshotProvider supplies the order snapshot for a calendar day.
type SnapshotProvider interface {
	SnapshotForDay(ctx context.Context, day time.Time) (*catalog.Snapshot, error)
}

// OrderStatus pairs an order with its current reconciliation status.
type OrderStatus struct {
	Order  catalog.ProductionOrder `json:"order"`
	Status reconcile.Status        `json:"status"`
}

// SpeciesSummary aggregates progress for one species.
type SpeciesSummary struct {
	Species    string  `json:"species"`
	Expected   int     `json:"expected"`
	Registered int64   `json:"registered"`
	Percent    float64 `json:"percent"`
}

// Summary is the dashboard aggregate for a date window.
type Summary struct {
	Date            string           `json:"date"`
	TotalExpected   int              `json:"total_expected"`
	TotalRegistered int64            `json:"total_registered"`
	Percent         float64          `json:"percent"`
	Species         []SpeciesSummary `json:"species"`
}

// Service reads order snapshots and derives statuses through the engine.
type Service struct {
	snapshots SnapshotProvider
	engine    *reconcile.Engine
	logger    *zap.Logger
}

// NewService creates a new orders service.
func NewService(snapshots SnapshotProvider, engine *reconcile.Engine, logger *zap.Logger) *Service {
	return &Service{snapshots: snapshots, engine: engine, logger: logger}
}

// ListOrders returns the orders of a day, optionally filtered by species and
// sub-species, each with its live status.
func (s *Service) ListOrders(ctx context.Context, day time.Time, species, subSpecies string) ([]OrderStatus, error) {
	snapshot, err := s.snapshots.SnapshotForDay(ctx, day)
	if err != nil {
		return nil, err
	}

	filtered := snapshot.Filter(species, subSpecies)
	result := make([]OrderStatus, 0, len(filtered))
	for i := range filtered {
		status, err := s.engine.Status(ctx, &filtered[i])
		if err != nil {
			return nil, err
		}
		result = append(result, OrderStatus{Order: filtered[i], Status: *status})
	}
	return result, nil
}

// OrderStatus returns the status of a single order of a day.
func (s *Service) OrderStatus(ctx context.Context, day time.Time, orderCode string) (*reconcile.Status, error) {
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

// Species lists the distinct species of a day, for filter dropdowns.
func (s *Service) Species(ctx context.Context, day time.Time) ([]string, error) {
	snapshot, err := s.snapshots.SnapshotForDay(ctx, day)
	if err != nil {
		return nil, err
	}
	return snapshot.Species(), nil
}

// SubSpecies lists the distinct sub-species of a day, optionally per species.
func (s *Service) SubSpecies(ctx context.Context, day time.Time, species string) ([]string, error) {
	snapshot, err := s.snapshots.SnapshotForDay(ctx, day)
	if err != nil {
		return nil, err
	}
	return snapshot.SubSpecies(species), nil
}

// Summarize builds the dashboard aggregate for a day: expected vs registered
// per species plus overall completion.
func (s *Service) Summarize(ctx context.Context, day time.Time, species, subSpecies string) (*Summary, error) {
	statuses, err := s.ListOrders(ctx, day, species, subSpecies)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Date: day.Format("2006-01-02")}
	perSpecies := make(map[string]*SpeciesSummary)
	var names []string

	for _, os := range statuses {
		summary.TotalExpected += os.Order.ExpectedQuantity
		summary.TotalRegistered += os.Status.RegisteredQuantity

		sp, ok := perSpecies[os.Order.Species]
		if !ok {
			sp = &SpeciesSummary{Species: os.Order.Species}
			perSpecies[os.Order.Species] = sp
			names = append(names, os.Order.Species)
		}
		sp.Expected += os.Order.ExpectedQuantity
		sp.Registered += os.Status.RegisteredQuantity
	}

	summary.Percent = reconcile.CompletionPercent(summary.TotalRegistered, summary.TotalExpected)
	for _, name := range names {
		sp := perSpecies[name]
		sp.Percent = reconcile.CompletionPercent(sp.Registered, sp.Expected)
		summary.Species = append(summary.Species, *sp)
	}
	return summary, nil
}
