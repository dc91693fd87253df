// Package catalog provides the read-only view of scheduled production orders.
//
// Orders are loaded from the ERP database for a date window and indexed into an
// immutable Snapshot. The reconciliation core borrows orders from a snapshot
// per call and never writes back; the ERP schema stays authoritative.
//
// Snapshots are cached with a TTL and built under singleflight so concurrent
// sessions asking for the same date window share one query.
package catalog
