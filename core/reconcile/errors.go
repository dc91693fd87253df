package reconcile

import "errors"

// Rejection reasons. Every rejection is an expected, operator-recoverable
// outcome returned as a plain error value; only ledger failures represent
// infrastructure faults.
var (
	// ErrUnknownOrder means the order code does not resolve in the catalog
	// snapshot. Recoverable by re-selecting an order.
	ErrUnknownOrder = errors.New("order code not found in catalog")

	// ErrBarcodeMismatch means the normalized scanned barcode is not exactly
	// equal to the order's expected barcode. Recoverable, operator re-scans.
	ErrBarcodeMismatch = errors.New("scanned barcode does not match the order")

	// ErrInvalidBarcode means the scanned text contains no digits after
	// normalization. Recoverable.
	ErrInvalidBarcode = errors.New("scanned text contains no digits")
)

// ReasonOf maps a rejection error to its wire name, or "" for non-rejections.
func ReasonOf(err error) string {
	switch {
	case errors.Is(err, ErrUnknownOrder):
		return "unknown_order"
	case errors.Is(err, ErrBarcodeMismatch):
		return "barcode_mismatch"
	case errors.Is(err, ErrInvalidBarcode):
		return "invalid_barcode"
	default:
		return ""
	}
}

// IsRejection reports whether err is one of the operator-recoverable
// rejection reasons, as opposed to a storage fault.
func IsRejection(err error) bool {
	return ReasonOf(err) != ""
}
