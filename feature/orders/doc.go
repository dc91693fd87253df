// Package orders exposes the production-order catalog and its reconciliation
// progress over HTTP: order listings with live status, per-order status, and
// the per-species dashboard summary.
package orders
