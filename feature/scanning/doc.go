// Package scanning registers operator scans against production orders.
//
// The HTTP handler serves stateless per-scan requests; the Session type
// drives a stateful single-operator conference (select order, scan loop) for
// the CLI. Both delegate every accept/reject decision to the reconciliation
// engine and never block on operator input themselves: the ceiling
// confirmation is expressed as a confirm flag (HTTP) or a prompt in the
// command layer (CLI).
package scanning
