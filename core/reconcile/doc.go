// Package reconcile decides whether a scan is acceptable for a production
// order and reports aggregate progress against the planned quantity.
//
// The engine owns validation policy and status derivation, nothing else: it
// borrows orders from a catalog snapshot per call and delegates persistence to
// the ledger. Status is always derived from the ledger count, never stored.
//
// # Ceiling Policy
//
// The engine enforces a soft ceiling. At or above the expected quantity it
// still appends and reports Complete or Over; whether to ask the operator for
// confirmation first is a caller concern (the CLI prompts, the HTTP handler
// requires a confirm flag). A hard ceiling inside the core would lose scans in
// exactly the cases where exceeding the plan is legitimate, such as a
// miscounted catalog or rework orders.
//
// # Idempotence
//
// RegisterScan is deliberately not idempotent. Scanning the same barcode twice
// records two events, because two reads mean two physical units were counted.
package reconcile
