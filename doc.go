// Package deltatree converts the file manifest of a partitioned columnar
// table - a flat list of data file paths - into a compact partition tree
// grouped by partition key and value. This root package defines the data
// file descriptor, its canonical name codec, and the tree builder; the
// datasource packages supply manifests from a transaction log, and the stats
// package compares the memory footprint of both representations.
package deltatree
