// Package store provides SQLite-backed durable storage for the automation
// call journal.
//
// Every successful mutating call made through an automation.Recorder is
// appended as one row: session id, method, target and the positional
// argument list as JSON. Rows are never updated or deleted.
//
// # Ordering
//
// seq is an autoincrement logical clock. All reads ORDER BY seq ASC so a
// session reads back in the order its calls were made.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
package store
