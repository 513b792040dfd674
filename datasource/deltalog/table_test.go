package deltalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/go-delta/deltatree/errors"
)

const (
	p1 = "a=1/part-00000-00000000-0000-0000-0000-000000000000.c000.snappy.parquet"
	p2 = "a=2/part-00001-00000000-0000-0000-0000-000000000001.c000.snappy.parquet"
	p3 = "a=1/part-00002-00000000-0000-0000-0000-000000000002.c000.snappy.parquet"
)

func writeCommit(t *testing.T, dir string, version int64, lines ...string) {
	t.Helper()
	logDir := filepath.Join(dir, logDirName)
	require.Nil(t, os.MkdirAll(logDir, 0o755))
	var content string
	for _, line := range lines {
		content += line + "\n"
	}
	path := filepath.Join(logDir, fmt.Sprintf("%020d.json", version))
	require.Nil(t, os.WriteFile(path, []byte(content), 0o644))
}

func addAction(path string) string {
	return fmt.Sprintf(`{"add":{"path":%q,"size":1024,"dataChange":true}}`, path)
}

func removeAction(path string) string {
	return fmt.Sprintf(`{"remove":{"path":%q,"dataChange":true}}`, path)
}

func TestOpenTable(t *testing.T) {
	dir := t.TempDir()
	writeCommit(t, dir, 0,
		`{"protocol":{"minReaderVersion":1,"minWriterVersion":2}}`,
		`{"metaData":{"id":"11111111-2222-3333-4444-555555555555"}}`,
		addAction(p1),
		addAction(p2),
	)
	table, err := OpenTable(dir)
	require.Nil(t, err)
	require.Equal(t, int64(0), table.Version())
	require.Equal(t, []string{p1, p2}, table.Files())
	require.Equal(t, 2, table.NumFiles())
}

func TestOpenTableMissingLog(t *testing.T) {
	_, err := OpenTable(t.TempDir())
	require.NotNil(t, err)
	require.IsType(t, errors.MissingLogError{}, err)
}

func TestUpdate(t *testing.T) {
	dir := t.TempDir()
	writeCommit(t, dir, 0, addAction(p1), addAction(p2))
	table, err := OpenTable(dir)
	require.Nil(t, err)

	// nothing new yet
	changed, err := table.Update()
	require.Nil(t, err)
	require.False(t, changed)

	writeCommit(t, dir, 1,
		`{"commitInfo":{"operation":"WRITE"}}`,
		removeAction(p2),
		addAction(p3),
	)
	changed, err = table.Update()
	require.Nil(t, err)
	require.True(t, changed)
	require.Equal(t, int64(1), table.Version())
	require.Equal(t, []string{p1, p3}, table.Files())
}

func TestUpdateRejectsMalformedCommit(t *testing.T) {
	dir := t.TempDir()
	writeCommit(t, dir, 0, addAction(p1))
	table, err := OpenTable(dir)
	require.Nil(t, err)

	writeCommit(t, dir, 1, addAction(p2), `{"add":`)
	_, err = table.Update()
	require.NotNil(t, err)
	// the bad commit is rejected in full
	require.Equal(t, int64(0), table.Version())
	require.Equal(t, []string{p1}, table.Files())
}

func TestWatch(t *testing.T) {
	defer goleak.VerifyNone(t)
	dir := t.TempDir()
	writeCommit(t, dir, 0, addAction(p1))
	table, err := OpenTable(dir)
	require.Nil(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	versions := table.Watch(ctx, 10*time.Millisecond)

	writeCommit(t, dir, 1, addAction(p2))
	select {
	case version := <-versions:
		require.Equal(t, int64(1), version)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for version 1")
	}

	cancel()
	for range versions {
		// drain until the watcher closes the channel
	}
	require.Equal(t, []string{p1, p2}, table.Files())
}
