package parquet

import (
	"encoding/binary"
	"io"
	"os"

	goparquet "github.com/fraugster/parquet-go"
	sparquet "github.com/fraugster/parquet-go/parquet"
)

// CountRows reports the number of rows in one parquet file
func CountRows(path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	fr, err := goparquet.NewFileReader(f)
	if err != nil {
		return 0, err
	}
	return fr.NumRows(), nil
}

// FindInt64 scans one parquet file for the first row whose column equals
// want. Row groups whose min/max column statistics exclude want are skipped
// without reading their rows.
func FindInt64(path string, column string, want int64) (map[string]interface{}, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false, err
	}
	defer f.Close()
	fr, err := goparquet.NewFileReader(f)
	if err != nil {
		return nil, false, err
	}
	for group := 0; group < fr.RowGroupCount(); group++ {
		// PreLoad advances the reader's cursor past skipped and exhausted
		// groups; without it CurrentRowGroup keeps returning the previous
		// group's statistics.
		if err := fr.PreLoad(); err != nil {
			return nil, false, err
		}
		if !groupMayContain(fr.CurrentRowGroup(), column, want) {
			fr.SkipRowGroup()
			continue
		}
		count, err := fr.RowGroupNumRows()
		if err != nil {
			return nil, false, err
		}
		for i := int64(0); i < count; i++ {
			row, err := fr.NextRow()
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, false, err
			}
			if value, ok := row[column].(int64); ok && value == want {
				return row, true, nil
			}
		}
	}
	return nil, false, nil
}

// groupMayContain checks the plain-encoded int64 min/max statistics of the
// named column for one row group. Groups without usable statistics are
// never skipped.
func groupMayContain(rg *sparquet.RowGroup, column string, want int64) bool {
	if rg == nil {
		return true
	}
	for _, chunk := range rg.GetColumns() {
		meta := chunk.GetMetaData()
		if meta == nil || len(meta.GetPathInSchema()) == 0 || meta.GetPathInSchema()[0] != column {
			continue
		}
		stats := meta.GetStatistics()
		if stats == nil {
			return true
		}
		minBytes := stats.GetMinValue()
		maxBytes := stats.GetMaxValue()
		if len(minBytes) != 8 || len(maxBytes) != 8 {
			return true
		}
		min := int64(binary.LittleEndian.Uint64(minBytes))
		max := int64(binary.LittleEndian.Uint64(maxBytes))
		return want >= min && want <= max
	}
	return true
}
