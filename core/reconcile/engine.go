package reconcile

import (
	"context"
	"strings"

	"op-tracker/core/catalog"
	"op-tracker/core/ledger"
)

// MissingBarcodePolicy names the behavior for orders the catalog carries no
// expected barcode for. The legacy tool silently accepted such scans; here the
// choice is explicit configuration.
type MissingBarcodePolicy string

const (
	// PolicyPermissive accepts any scan with at least one digit against an
	// order without an expected barcode.
	PolicyPermissive MissingBarcodePolicy = "permissive"
	// PolicyStrict rejects every scan against an order without an expected
	// barcode.
	PolicyStrict MissingBarcodePolicy = "strict"
)

// Config holds configuration for the reconciliation engine.
type Config struct {
	// MissingBarcode selects the policy for orders without catalog barcode
	// data (permissive, strict).
	MissingBarcode string `mapstructure:"missing_barcode" default:"permissive"`
}

// Policy returns the configured policy, defaulting to permissive.
func (c Config) Policy() MissingBarcodePolicy {
	if MissingBarcodePolicy(c.MissingBarcode) == PolicyStrict {
		return PolicyStrict
	}
	return PolicyPermissive
}

// Engine validates scans against production orders and derives per-order
// reconciliation status from the ledger.
type Engine struct {
	ledger ledger.Ledger
	policy MissingBarcodePolicy
}

// NewEngine creates an engine over a ledger with the given missing-barcode
// policy.
func NewEngine(led ledger.Ledger, policy MissingBarcodePolicy) *Engine {
	return &Engine{ledger: led, policy: policy}
}

// NormalizeBarcode strips every non-digit rune from a scanned string,
// tolerating scanner prefixes, suffixes and surrounding whitespace.
func NormalizeBarcode(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Validate decides whether a raw scanned string is acceptable for an order.
// It is pure: no I/O, no blocking.
func (e *Engine) Validate(order *catalog.ProductionOrder, raw string) error {
	if order == nil {
		return ErrUnknownOrder
	}

	barcode := NormalizeBarcode(raw)
	if barcode == "" {
		return ErrInvalidBarcode
	}

	if order.ExpectedBarcode == "" {
		if e.policy == PolicyStrict {
			return ErrBarcodeMismatch
		}
		return nil
	}

	// Exact, length-sensitive equality. "0123" does not match "123".
	if barcode != order.ExpectedBarcode {
		return ErrBarcodeMismatch
	}
	return nil
}

// Status computes the current reconciliation status of an order from the
// ledger count.
func (e *Engine) Status(ctx context.Context, order *catalog.ProductionOrder) (*Status, error) {
	if order == nil {
		return nil, ErrUnknownOrder
	}
	registered, err := e.ledger.CountFor(ctx, order.OrderCode)
	if err != nil {
		return nil, err
	}
	return statusFor(order.OrderCode, order.ExpectedQuantity, registered), nil
}

// RegisterScan validates a scan, appends it to the ledger and returns the
// recomputed status. The ceiling is soft: scans at or beyond the expected
// quantity are appended and reported as Complete or Over, never blocked here.
// A ledger failure propagates unchanged and no status is returned, so a
// failed append can never masquerade as progress.
//
// RegisterScan is not idempotent: every accepted call appends one event.
func (e *Engine) RegisterScan(ctx context.Context, order *catalog.ProductionOrder, raw string) (*Status, error) {
	if err := e.Validate(order, raw); err != nil {
		return nil, err
	}

	registered, err := e.ledger.CountFor(ctx, order.OrderCode)
	if err != nil {
		return nil, err
	}

	event := ledger.ScanEvent{
		OrderCode: order.OrderCode,
		Barcode:   NormalizeBarcode(raw),
		ProductID: order.ProductID,
	}
	if err := e.ledger.Append(ctx, event); err != nil {
		return nil, err
	}

	return statusFor(order.OrderCode, order.ExpectedQuantity, registered+1), nil
}
