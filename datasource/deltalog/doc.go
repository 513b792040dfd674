// Package deltalog provides a manifest provider which replays the JSON
// transaction log of a Delta-style table, tracking the current set of data
// file paths and the table version. The log is applied from version zero;
// checkpoint files are not replayed. The tree core never calls into this
// package - callers obtain paths here and rebuild trees on version changes.
package deltalog
