package parquet

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	goparquet "github.com/fraugster/parquet-go"
	sparquet "github.com/fraugster/parquet-go/parquet"
	"github.com/fraugster/parquet-go/parquetschema"
	"github.com/stretchr/testify/require"
)

// writeFixture produces a parquet file with the given number of row groups
// of sequential idx values, so statistics pruning has something to skip.
func writeFixture(t *testing.T, path string, rowsPerGroup, groups int64) {
	t.Helper()
	f, err := os.Create(path)
	require.Nil(t, err)
	sd, err := parquetschema.ParseSchemaDefinition(
		`message test { required int64 idx; required binary name (STRING); }`)
	require.Nil(t, err)
	fw := goparquet.NewFileWriter(f,
		goparquet.WithSchemaDefinition(sd),
		goparquet.WithCompressionCodec(sparquet.CompressionCodec_SNAPPY),
	)
	total := rowsPerGroup * groups
	for i := int64(0); i < total; i++ {
		err := fw.AddData(map[string]interface{}{
			"idx":  i,
			"name": []byte(fmt.Sprintf("row-%d", i)),
		})
		require.Nil(t, err)
		if (i+1)%rowsPerGroup == 0 && i+1 < total {
			require.Nil(t, fw.FlushRowGroup())
		}
	}
	require.Nil(t, fw.Close())
	require.Nil(t, f.Close())
}

func TestCountRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.parquet")
	writeFixture(t, path, 50, 2)
	rows, err := CountRows(path)
	require.Nil(t, err)
	require.Equal(t, int64(100), rows)
}

func TestFindInt64(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.parquet")
	writeFixture(t, path, 50, 2)

	// lives in the second row group, behind a skipped first group
	row, found, err := FindInt64(path, "idx", 75)
	require.Nil(t, err)
	require.True(t, found)
	require.Equal(t, int64(75), row["idx"])
	require.Equal(t, []byte("row-75"), row["name"])

	_, found, err = FindInt64(path, "idx", 1000)
	require.Nil(t, err)
	require.False(t, found)
}

func TestFindInt64ExaminesEveryRowGroup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.parquet")
	writeFixture(t, path, 50, 3)

	// each group's statistics must be consulted in turn: one skipped group
	// must not cause later groups to be skipped unexamined
	for _, want := range []int64{0, 49, 50, 99, 100, 149} {
		row, found, err := FindInt64(path, "idx", want)
		require.Nil(t, err)
		require.True(t, found, "expected idx=%d to be found", want)
		require.Equal(t, want, row["idx"])
	}

	_, found, err := FindInt64(path, "idx", 150)
	require.Nil(t, err)
	require.False(t, found)
}

func TestFindInt64MissingFile(t *testing.T) {
	_, _, err := FindInt64(filepath.Join(t.TempDir(), "absent.parquet"), "idx", 1)
	require.NotNil(t, err)
}
