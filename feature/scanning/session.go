package scanning

import (
	"context"

	"op-tracker/core/catalog"
	"op-tracker/core/reconcile"
)

// Session drives one operator's conference: select an order from the daily
// snapshot, then scan units against it. It holds no policy of its own; every
// accept/reject decision comes from the engine.
type Session struct {
	snapshot *catalog.Snapshot
	engine   *reconcile.Engine
	selected *catalog.ProductionOrder
}

// Orders lists the selectable orders, filtered by species and sub-species.
func (s *Session) Orders(species, subSpecies string) []catalog.ProductionOrder {
	return s.snapshot.Filter(species, subSpecies)
}

// Species lists the snapshot's distinct species.
func (s *Session) Species() []string {
	return s.snapshot.Species()
}

// SubSpecies lists the distinct sub-species of a species.
func (s *Session) SubSpecies(species string) []string {
	return s.snapshot.SubSpecies(species)
}

// Select picks the order to scan against.
func (s *Session) Select(orderCode string) error {
	order, ok := s.snapshot.Resolve(orderCode)
	if !ok {
		return reconcile.ErrUnknownOrder
	}
	s.selected = order
	return nil
}

// Selected returns the currently selected order, or nil.
func (s *Session) Selected() *catalog.ProductionOrder {
	return s.selected
}

// Status returns the selected order's current status.
func (s *Session) Status(ctx context.Context) (*reconcile.Status, error) {
	return s.engine.Status(ctx, s.selected)
}

// Scan registers one scan against the selected order.
func (s *Session) Scan(ctx context.Context, raw string) (*reconcile.Status, error) {
	return s.engine.RegisterScan(ctx, s.selected, raw)
}
