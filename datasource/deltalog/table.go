package deltalog

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	xxhash "github.com/cespare/xxhash/v2"
	multierror "github.com/hashicorp/go-multierror"
	"github.com/tidwall/gjson"

	"github.com/go-delta/deltatree/errors"
	"github.com/go-delta/deltatree/logging"
)

// logDirName is the transaction log directory inside a table directory
const logDirName = "_delta_log"

// maxActionBytes caps the size of a single action line in a commit file
const maxActionBytes = 4 * 1024 * 1024

// A Table tracks the manifest of one Delta-style table by replaying its
// transaction log. A Table is not safe for concurrent mutation; Watch
// serializes its own updates.
type Table struct {
	dir         string
	version     int64
	files       map[string]struct{}
	fingerprint uint64
	log         *logging.Logger
}

// OpenTable replays the transaction log under dir from version zero and
// returns a Table positioned at the newest version found. Fails with a
// MissingLogError when dir holds no commit files at all.
func OpenTable(dir string) (*Table, error) {
	t := &Table{
		dir:     dir,
		version: -1,
		files:   make(map[string]struct{}),
		log:     logging.CreateLogger(logging.InfoLevel),
	}
	if _, err := t.Update(); err != nil {
		return nil, err
	}
	if t.version < 0 {
		return nil, errors.MissingLogError{Dir: dir}
	}
	return t, nil
}

// Version returns the version of the last applied commit
func (t *Table) Version() int64 {
	return t.version
}

// NumFiles returns the number of data files in the current manifest
func (t *Table) NumFiles() int {
	return len(t.files)
}

// Files returns a sorted copy of the current manifest paths
func (t *Table) Files() []string {
	paths := make([]string, 0, len(t.files))
	for path := range t.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Update applies any commit files newer than the current version and
// reports whether the manifest changed.
func (t *Table) Update() (bool, error) {
	for {
		next := t.version + 1
		commitPath := filepath.Join(t.dir, logDirName, fmt.Sprintf("%020d.json", next))
		if _, err := os.Stat(commitPath); err != nil {
			if os.IsNotExist(err) {
				break
			}
			return false, err
		}
		if err := t.applyCommit(commitPath); err != nil {
			return false, err
		}
		t.version = next
	}
	previous := t.fingerprint
	t.fingerprint = t.manifestFingerprint()
	return t.fingerprint != previous, nil
}

// Watch polls the transaction log on the given interval, emitting the table
// version after each manifest change until ctx is cancelled. The returned
// channel is closed on cancellation.
func (t *Table) Watch(ctx context.Context, interval time.Duration) <-chan int64 {
	versions := make(chan int64)
	go func() {
		defer close(versions)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				changed, err := t.Update()
				if err != nil {
					t.log.Logf(logging.WarnLevel, "update of %s failed: %v", t.dir, err)
					continue
				}
				if !changed {
					continue
				}
				select {
				case versions <- t.version:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return versions
}

// applyCommit replays the add and remove actions of one commit file.
// Malformed lines are aggregated so a bad commit reports every problem at
// once; a commit with any malformed line is rejected in full, leaving the
// manifest at the previous version.
func (t *Table) applyCommit(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	var merr *multierror.Error
	var added, removed []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 4096), maxActionBytes)
	line := 0
	for scanner.Scan() {
		line++
		action := scanner.Text()
		if strings.TrimSpace(action) == "" {
			continue
		}
		if !gjson.Valid(action) {
			merr = multierror.Append(merr, fmt.Errorf("%s:%d: malformed action", path, line))
			continue
		}
		if add := gjson.Get(action, "add.path"); add.Exists() {
			added = append(added, add.String())
			continue
		}
		if remove := gjson.Get(action, "remove.path"); remove.Exists() {
			removed = append(removed, remove.String())
			continue
		}
		// metaData, protocol, commitInfo and txn actions carry no file paths
	}
	if err := scanner.Err(); err != nil {
		merr = multierror.Append(merr, err)
	}
	if err := merr.ErrorOrNil(); err != nil {
		return err
	}
	for _, p := range added {
		t.files[p] = struct{}{}
	}
	for _, p := range removed {
		delete(t.files, p)
	}
	return nil
}

// manifestFingerprint hashes the sorted manifest for cheap change detection
func (t *Table) manifestFingerprint() uint64 {
	digest := xxhash.New()
	for _, path := range t.Files() {
		_, _ = digest.WriteString(path)
		_, _ = digest.WriteString("\n")
	}
	return digest.Sum64()
}
