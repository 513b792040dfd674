// Package stats estimates the memory footprint of a table manifest in its
// flat, tree and compressed representations. The figures are internally
// consistent rather than allocator-exact, which is all relative comparison
// needs.
package stats

import (
	"bytes"
	"io"
	"strings"
	"unsafe"

	"github.com/pierrec/lz4"

	"github.com/go-delta/deltatree"
)

// partitionNodeOverhead approximates the fixed bookkeeping cost of one
// partition node: a map entry plus the node header, independent of key and
// value lengths.
const partitionNodeOverhead = 48

// dataFileBytes is the in-memory footprint of a single DataFile descriptor
var dataFileBytes = int(unsafe.Sizeof(deltatree.DataFile{}))

// FlatBytes sums the byte lengths of every raw manifest path: the footprint
// of keeping the manifest as a plain list of strings.
func FlatBytes(paths []string) int {
	total := 0
	for _, path := range paths {
		total += len(path)
	}
	return total
}

// TreeBytes estimates the byte footprint of a partition tree: per partition
// node a fixed overhead plus its key and the value string of each child,
// per leaf the descriptor size times the file count.
func TreeBytes(t *deltatree.Tree) int {
	return nodeBytes(t.Root)
}

func nodeBytes(node deltatree.TreeNode) int {
	switch n := node.(type) {
	case *deltatree.FileListNode:
		return dataFileBytes * len(n.Files)
	case *deltatree.PartitionNode:
		total := partitionNodeOverhead + len(n.Key)
		for value, child := range n.Children {
			total += len(value) + nodeBytes(child)
		}
		return total
	default:
		return 0
	}
}

// CompressedFlatBytes reports the lz4-compressed size of the newline-joined
// flat manifest, a third comparison point alongside FlatBytes and TreeBytes.
func CompressedFlatBytes(paths []string) (int, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := io.WriteString(w, strings.Join(paths, "\n")); err != nil {
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, err
	}
	return buf.Len(), nil
}
