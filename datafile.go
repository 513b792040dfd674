package deltatree

import (
	"bytes"
	"fmt"
	"math"
	"regexp"
	"strconv"

	uuid "github.com/gofrs/uuid"

	"github.com/go-delta/deltatree/errors"
)

// CompressionType identifies the compression codec token embedded in a
// canonical data file name
type CompressionType uint8

const (
	// CompressionSnappy indicates snappy-compressed file contents
	CompressionSnappy CompressionType = iota
	// CompressionGzip indicates gzip-compressed file contents
	CompressionGzip
	// CompressionNone indicates uncompressed file contents
	CompressionNone
)

// String returns the lower-case name token for this CompressionType
func (c CompressionType) String() string {
	switch c {
	case CompressionGzip:
		return "gzip"
	case CompressionNone:
		return "none"
	default:
		return "snappy"
	}
}

// dataFileNamePattern matches the canonical data file name grammar,
// anchored at both ends. Compiled once at package init and never mutated,
// so it is safe to share across concurrent readers.
var dataFileNamePattern = regexp.MustCompile(
	`^part-(\d{5})-([0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12})\.c(\d{3})\.(snappy|gzip|none)\.parquet$`)

// A DataFile is the fixed-size descriptor of a single data file, decoded
// from its canonical name. It is a plain value and is never mutated.
type DataFile struct {
	Partition   uint32          // write-task index, zero-padded to 5 digits in the name
	ContentID   uuid.UUID       // the file's embedded 128-bit content UUID
	Cluster     uint8           // shuffle/write-cluster counter, zero-padded to 3 digits
	Compression CompressionType // compression codec token
}

// ParseDataFileName decodes a canonical data file name into a DataFile.
// Names which do not match the grammar fail with a FormatError carrying the
// offending input. If the partition field overflows uint32 it is clamped to
// the maximum representable value instead of failing the parse; this is a
// deliberate lenient mode, unreachable while the grammar caps the field at
// five digits.
func ParseDataFileName(name string) (DataFile, error) {
	m := dataFileNamePattern.FindStringSubmatch(name)
	if m == nil {
		return DataFile{}, errors.FormatError{Input: name}
	}
	partition, err := strconv.ParseUint(m[1], 10, 32)
	if err != nil {
		partition = math.MaxUint32
	}
	contentID, err := uuid.FromString(m[2])
	if err != nil {
		return DataFile{}, errors.FormatError{Input: name}
	}
	cluster, err := strconv.ParseUint(m[3], 10, 8)
	if err != nil {
		return DataFile{}, errors.FormatError{Input: name}
	}
	compression, err := compressionFromToken(m[4])
	if err != nil {
		return DataFile{}, errors.FormatError{Input: name}
	}
	return DataFile{
		Partition:   uint32(partition),
		ContentID:   contentID,
		Cluster:     uint8(cluster),
		Compression: compression,
	}, nil
}

// Name renders the canonical file name for this DataFile. It is the exact
// inverse of ParseDataFileName for canonical (lower-case hex) names.
func (f DataFile) Name() string {
	return fmt.Sprintf("part-%05d-%s.c%03d.%s.parquet", f.Partition, f.ContentID, f.Cluster, f.Compression)
}

// Compare defines a total order over DataFiles by (Partition, ContentID,
// Cluster, Compression). The order exists to make grouping deterministic;
// it carries no business meaning.
func (f DataFile) Compare(other DataFile) int {
	if f.Partition != other.Partition {
		if f.Partition < other.Partition {
			return -1
		}
		return 1
	}
	if c := bytes.Compare(f.ContentID.Bytes(), other.ContentID.Bytes()); c != 0 {
		return c
	}
	if f.Cluster != other.Cluster {
		if f.Cluster < other.Cluster {
			return -1
		}
		return 1
	}
	if f.Compression != other.Compression {
		if f.Compression < other.Compression {
			return -1
		}
		return 1
	}
	return 0
}

func compressionFromToken(token string) (CompressionType, error) {
	switch token {
	case "snappy":
		return CompressionSnappy, nil
	case "gzip":
		return CompressionGzip, nil
	case "none":
		return CompressionNone, nil
	default:
		return CompressionSnappy, errors.FormatError{Input: token}
	}
}
