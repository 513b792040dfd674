package deltatree

import (
	"testing"

	"github.com/stretchr/testify/require"

	errors "github.com/go-delta/deltatree/errors"
)

func TestParsePartitionSegment(t *testing.T) {
	segment, err := ParsePartitionSegment("a=13")
	require.Nil(t, err)
	require.Equal(t, PartitionSegment{Key: "a", Value: "13"}, segment)
}

func TestParsePartitionSegmentSplitsOnFirstEquals(t *testing.T) {
	segment, err := ParsePartitionSegment("some-key=some-value-with-=-sign")
	require.Nil(t, err)
	require.Equal(t, PartitionSegment{Key: "some-key", Value: "some-value-with-=-sign"}, segment)
}

func TestParsePartitionSegmentRequiresEquals(t *testing.T) {
	_, err := ParsePartitionSegment("no-equals-here")
	require.NotNil(t, err)
	require.IsType(t, errors.FormatError{}, err)
}

func TestParseFilePath(t *testing.T) {
	entry, err := parseFilePath("a=1/b=2/part-00007-00000000-0000-0000-0000-000000000000.c000.snappy.parquet")
	require.Nil(t, err)
	require.Equal(t, []PartitionSegment{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}}, entry.segments)
	require.Equal(t, uint32(7), entry.file.Partition)
	require.Equal(t, "a=1/b=2/part-00007-00000000-0000-0000-0000-000000000000.c000.snappy.parquet", entry.path())
}

func TestParseFilePathRejectsBadSegment(t *testing.T) {
	_, err := parseFilePath("a=1/plain/part-00007-00000000-0000-0000-0000-000000000000.c000.snappy.parquet")
	require.NotNil(t, err)
	require.IsType(t, errors.FormatError{}, err)
}
