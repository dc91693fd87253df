package catalog

import "sort"

// Snapshot is an immutable, indexed set of production orders for one date
// window. Later orders with a duplicate code are dropped so Resolve is
// unambiguous.
type Snapshot struct {
	orders []ProductionOrder
	byCode map[string]*ProductionOrder
}

// NewSnapshot indexes a slice of orders by order code.
func NewSnapshot(orders []ProductionOrder) *Snapshot {
	s := &Snapshot{
		orders: make([]ProductionOrder, 0, len(orders)),
		byCode: make(map[string]*ProductionOrder, len(orders)),
	}
	for _, order := range orders {
		if _, exists := s.byCode[order.OrderCode]; exists {
			continue
		}
		s.orders = append(s.orders, order)
		s.byCode[order.OrderCode] = &s.orders[len(s.orders)-1]
	}
	return s
}

// Resolve looks up an order by code. The returned order is borrowed from the
// snapshot and must not be mutated.
func (s *Snapshot) Resolve(orderCode string) (*ProductionOrder, bool) {
	order, ok := s.byCode[orderCode]
	return order, ok
}

// Orders returns all orders in snapshot order.
func (s *Snapshot) Orders() []ProductionOrder {
	return s.orders
}

// Len returns the number of orders in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.orders)
}

// Filter returns the orders matching the species and sub-species filters.
// An empty filter value matches everything.
func (s *Snapshot) Filter(species, subSpecies string) []ProductionOrder {
	filtered := make([]ProductionOrder, 0, len(s.orders))
	for _, order := range s.orders {
		if species != "" && order.Species != species {
			continue
		}
		if subSpecies != "" && order.SubSpecies != subSpecies {
			continue
		}
		filtered = append(filtered, order)
	}
	return filtered
}

// Species returns the distinct species present in the snapshot, sorted.
func (s *Snapshot) Species() []string {
	return s.distinct(func(o ProductionOrder) string { return o.Species })
}

// SubSpecies returns the distinct sub-species for a species, sorted. An empty
// species returns sub-species across the whole snapshot.
func (s *Snapshot) SubSpecies(species string) []string {
	return s.distinct(func(o ProductionOrder) string {
		if species != "" && o.Species != species {
			return ""
		}
		return o.SubSpecies
	})
}

func (s *Snapshot) distinct(key func(ProductionOrder) string) []string {
	seen := make(map[string]struct{})
	var values []string
	for _, order := range s.orders {
		v := key(order)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
