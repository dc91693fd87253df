// Package ledger provides the durable, append-only store of scan events.
//
// Every scan an operator registers becomes one immutable ScanEvent. Events are
// never edited or deleted; corrections are new, compensating events appended
// later. Two backends implement the Ledger interface:
//
//   - GormStore: a scan_events table (MySQL or SQLite) with one row per event
//     and a transactional insert.
//   - FileLog: an append-only CSV log where each event is written and flushed
//     as a single record. Prior bytes are never rewritten, so a crash during
//     an append cannot corrupt events that were already committed.
//
// # Error Handling
//
// All failures surface as *StorageError. The Timeout flag is set when the
// caller's context deadline expired, in which case the outcome of the write is
// unknown: callers should re-query CountFor before retrying the same scan
// rather than retrying blindly, to avoid counting one physical unit twice.
//
// # Concurrency
//
// Append is atomic with respect to concurrent appends. CountFor reflects every
// append that completed before the call started (read-your-writes within a
// process).
package ledger
