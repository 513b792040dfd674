package deltatree

import (
	"strings"

	"github.com/go-delta/deltatree/errors"
)

// A PartitionSegment is one key=value directory level of a partitioned
// manifest path. Segments only live for the duration of a tree build.
type PartitionSegment struct {
	Key   string
	Value string
}

// ParsePartitionSegment splits one directory component into its partition
// key and value. Only the first '=' separates key from value, so values may
// themselves contain '=' characters. Components without any '=' fail with a
// FormatError.
func ParsePartitionSegment(component string) (PartitionSegment, error) {
	idx := strings.Index(component, "=")
	if idx < 0 {
		return PartitionSegment{}, errors.FormatError{Input: component}
	}
	return PartitionSegment{Key: component[:idx], Value: component[idx+1:]}, nil
}

// pathEntry pairs the ordered partition segments of one manifest path with
// its decoded file descriptor.
type pathEntry struct {
	segments []PartitionSegment
	file     DataFile
}

// parseFilePath splits a manifest path on '/', delegating the final
// component to the filename codec and every earlier component to the
// segment parser.
func parseFilePath(path string) (pathEntry, error) {
	components := strings.Split(path, "/")
	file, err := ParseDataFileName(components[len(components)-1])
	if err != nil {
		return pathEntry{}, err
	}
	segments := make([]PartitionSegment, 0, len(components)-1)
	for _, component := range components[:len(components)-1] {
		segment, err := ParsePartitionSegment(component)
		if err != nil {
			return pathEntry{}, err
		}
		segments = append(segments, segment)
	}
	return pathEntry{segments: segments, file: file}, nil
}

// path renders the original manifest path of this entry, for diagnostics
func (e pathEntry) path() string {
	var b strings.Builder
	for _, segment := range e.segments {
		b.WriteString(segment.Key)
		b.WriteByte('=')
		b.WriteString(segment.Value)
		b.WriteByte('/')
	}
	b.WriteString(e.file.Name())
	return b.String()
}

// less orders entries lexicographically by (segments, descriptor), which
// makes equal partition values contiguous after sorting.
func (e pathEntry) less(other pathEntry) bool {
	for i := 0; i < len(e.segments) && i < len(other.segments); i++ {
		a, b := e.segments[i], other.segments[i]
		if a.Key != b.Key {
			return a.Key < b.Key
		}
		if a.Value != b.Value {
			return a.Value < b.Value
		}
	}
	if len(e.segments) != len(other.segments) {
		return len(e.segments) < len(other.segments)
	}
	return e.file.Compare(other.file) < 0
}
