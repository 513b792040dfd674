// Package parquet provides row-level instrumentation over single parquet
// files: row counting and value lookup with row-group statistics pruning.
// It is consumed by the command line tool only, never by the tree core.
package parquet
