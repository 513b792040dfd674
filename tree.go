package deltatree

import (
	"sort"

	uuid "github.com/gofrs/uuid"

	"github.com/go-delta/deltatree/errors"
)

// A TreeNode is one level of a partition tree: either a PartitionNode,
// mapping the values of one partition column to subtrees, or a
// FileListNode holding the data files of a single leaf directory.
type TreeNode interface {
	// NumFiles returns the number of data files reachable from this node
	NumFiles() int
	// flattenInto appends the manifest path of every reachable file to acc
	flattenInto(prefix string, acc []string) []string
}

// A PartitionNode groups subtrees by the value of one partition column.
// Iteration order of Children is not meaningful.
type PartitionNode struct {
	Key      string              // the partition column name at this level
	Children map[string]TreeNode // partition value -> next level
}

// NumFiles returns the number of data files reachable from this node
func (p *PartitionNode) NumFiles() int {
	total := 0
	for _, child := range p.Children {
		total += child.NumFiles()
	}
	return total
}

func (p *PartitionNode) flattenInto(prefix string, acc []string) []string {
	values := make([]string, 0, len(p.Children))
	for value := range p.Children {
		values = append(values, value)
	}
	sort.Strings(values)
	for _, value := range values {
		acc = p.Children[value].flattenInto(prefix+p.Key+"="+value+"/", acc)
	}
	return acc
}

// A FileListNode holds the data files sharing one full path of partition
// values.
type FileListNode struct {
	Files []DataFile // sorted by DataFile.Compare
}

// NumFiles returns the number of data files held by this node
func (l *FileListNode) NumFiles() int {
	return len(l.Files)
}

func (l *FileListNode) flattenInto(prefix string, acc []string) []string {
	for _, file := range l.Files {
		acc = append(acc, prefix+file.Name())
	}
	return acc
}

// A Tree is the partition tree built from one manifest snapshot. It is
// never mutated after CreateTree returns, so it may be read from any number
// of goroutines without locking; a newer manifest means building a new Tree
// and replacing the reference wholesale.
type Tree struct {
	Root TreeNode
}

// TreeConf configures tree construction
type TreeConf struct {
	// VerifyUniqueContentIDs rejects manifests in which two data files share
	// a content UUID. Off by default, since repeated ids across partitions
	// do not break the tree itself.
	VerifyUniqueContentIDs bool
}

// CreateTree groups a table manifest - a flat list of partitioned data file
// paths - into a Tree keyed by partition column. All paths must share a
// uniform partition schema and depth. Any malformed path aborts the whole
// build; a bad entry signals an incompatible manifest which should not be
// partially represented.
func CreateTree(paths []string) (*Tree, error) {
	return CreateTreeWithConf(paths, &TreeConf{})
}

// CreateTreeWithConf builds a Tree with explicit configuration
func CreateTreeWithConf(paths []string, conf *TreeConf) (*Tree, error) {
	if len(paths) == 0 {
		return &Tree{Root: &FileListNode{}}, nil
	}
	entries := make([]pathEntry, len(paths))
	for i, path := range paths {
		entry, err := parseFilePath(path)
		if err != nil {
			return nil, err
		}
		entries[i] = entry
	}
	if conf.VerifyUniqueContentIDs {
		if err := verifyUniqueContentIDs(entries); err != nil {
			return nil, err
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].less(entries[j])
	})
	root, err := buildNode(entries, 0)
	if err != nil {
		return nil, err
	}
	return &Tree{Root: root}, nil
}

// Flatten reconstructs the manifest paths this Tree was built from,
// set-equal to the input of CreateTree. The output is deterministic:
// children are walked in sorted value order, files in stored order.
func (t *Tree) Flatten() []string {
	return t.Root.flattenInto("", nil)
}

// NumFiles returns the total number of data files held by this Tree
func (t *Tree) NumFiles() int {
	return t.Root.NumFiles()
}

// buildNode groups a sorted run of entries into a subtree. Sorting upstream
// guarantees entries sharing a partition value at this depth are contiguous,
// so a single linear scan finds every child run.
func buildNode(entries []pathEntry, depth int) (TreeNode, error) {
	first := entries[0]
	if depth >= len(first.segments) {
		files := make([]DataFile, len(entries))
		for i, entry := range entries {
			if len(entry.segments) != len(first.segments) {
				return nil, errors.PartitionDepthError{
					Expected: len(first.segments),
					Actual:   len(entry.segments),
					Path:     entry.path(),
				}
			}
			files[i] = entry.file
		}
		return &FileListNode{Files: files}, nil
	}
	name := first.segments[depth].Key
	children := make(map[string]TreeNode)
	runStart := 0
	runValue := first.segments[depth].Value
	for i, entry := range entries {
		if len(entry.segments) != len(first.segments) {
			return nil, errors.PartitionDepthError{
				Expected: len(first.segments),
				Actual:   len(entry.segments),
				Path:     entry.path(),
			}
		}
		segment := entry.segments[depth]
		if segment.Key != name {
			return nil, errors.SchemaMismatchError{
				Depth:    depth,
				Expected: name,
				Actual:   segment.Key,
				Path:     entry.path(),
			}
		}
		if segment.Value != runValue {
			child, err := buildNode(entries[runStart:i], depth+1)
			if err != nil {
				return nil, err
			}
			children[runValue] = child
			runStart = i
			runValue = segment.Value
		}
	}
	child, err := buildNode(entries[runStart:], depth+1)
	if err != nil {
		return nil, err
	}
	children[runValue] = child
	return &PartitionNode{Key: name, Children: children}, nil
}

func verifyUniqueContentIDs(entries []pathEntry) error {
	seen := make(map[uuid.UUID]string, len(entries))
	for _, entry := range entries {
		path := entry.path()
		if previous, ok := seen[entry.file.ContentID]; ok {
			return errors.DuplicateContentIDError{
				ContentID: entry.file.ContentID.String(),
				First:     previous,
				Second:    path,
			}
		}
		seen[entry.file.ContentID] = path
	}
	return nil
}
