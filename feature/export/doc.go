// Package export archives the scan ledger to object storage.
//
// Exports stream the ledger's events into a CSV file with the canonical
// per-event column set and upload it to the configured bucket. The export
// path only reads the ledger through its iteration interface; it never
// touches the scan decision path.
package export
