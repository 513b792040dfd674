package main

import (
	"fmt"
	"sync"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/go-delta/deltatree/datasource/parquet"
)

var (
	scanColumn string
	scanFind   int64
)

var scanCMD = &cobra.Command{
	Use:   "scan <file>...",
	Short: "Scan parquet files for a value, pruning row groups by statistics",
	Args:  cobra.MinimumNArgs(1),
	RunE:  scanFunc,
}

func init() {
	scanCMD.Flags().StringVar(&scanColumn, "column", "idx", "Column to filter on")
	scanCMD.Flags().Int64Var(&scanFind, "find", 0, "Value to search for")
}

func scanFunc(cmd *cobra.Command, args []string) error {
	var group errgroup.Group
	var mu sync.Mutex
	var merr *multierror.Error
	for _, path := range args {
		path := path
		group.Go(func() error {
			rows, row, found, err := scanFile(path)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				// keep scanning the remaining files, report at the end
				merr = multierror.Append(merr, fmt.Errorf("%s: %w", path, err))
				return nil
			}
			if found {
				cmd.Printf("%s: %d rows, %s=%d found: %v\n", path, rows, scanColumn, scanFind, row)
			} else {
				cmd.Printf("%s: %d rows, %s=%d not present\n", path, rows, scanColumn, scanFind)
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}
	return merr.ErrorOrNil()
}

func scanFile(path string) (int64, map[string]interface{}, bool, error) {
	rows, err := parquet.CountRows(path)
	if err != nil {
		return 0, nil, false, err
	}
	row, found, err := parquet.FindInt64(path, scanColumn, scanFind)
	if err != nil {
		return 0, nil, false, err
	}
	return rows, row, found, nil
}
