package reconcile

// State is the derived reconciliation state of an order.
type State string

const (
	// StatePending means fewer units were registered than planned.
	StatePending State = "pending"
	// StateComplete means registered quantity equals the plan exactly.
	StateComplete State = "complete"
	// StateOver means more units were registered than planned.
	StateOver State = "over"
)

// Status is the reconciliation progress of one order, computed on demand.
type Status struct {
	OrderCode          string  `json:"order_code"`
	ExpectedQuantity   int     `json:"expected_quantity"`
	RegisteredQuantity int64   `json:"registered_quantity"`
	State              State   `json:"state"`
	Percent            float64 `json:"percent"`
}

// StateFor derives the state from registered and expected quantities. An
// order with zero expected quantity and zero scans is Complete, not Pending.
func StateFor(registered int64, expected int) State {
	switch {
	case registered < int64(expected):
		return StatePending
	case registered == int64(expected):
		return StateComplete
	default:
		return StateOver
	}
}

// CompletionPercent returns registered/expected as a percentage. A zero
// expected quantity reports 100 so dashboards never divide by zero.
func CompletionPercent(registered int64, expected int) float64 {
	if expected <= 0 {
		return 100
	}
	return float64(registered) / float64(expected) * 100
}

// statusFor assembles a Status for an order at a given registered count.
func statusFor(orderCode string, expected int, registered int64) *Status {
	return &Status{
		OrderCode:          orderCode,
		ExpectedQuantity:   expected,
		RegisteredQuantity: registered,
		State:              StateFor(registered, expected),
		Percent:            CompletionPercent(registered, expected),
	}
}
