package main

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/go-delta/deltatree"
	"github.com/go-delta/deltatree/datasource/deltalog"
)

var followInterval time.Duration

var followCMD = &cobra.Command{
	Use:   "follow <table-dir>",
	Short: "Follow table versions, rebuilding the partition tree on each change",
	Args:  cobra.ExactArgs(1),
	RunE:  followFunc,
}

func init() {
	followCMD.Flags().DurationVar(&followInterval, "interval", 2*time.Second, "Transaction log polling interval")
}

func followFunc(cmd *cobra.Command, args []string) error {
	table, err := deltalog.OpenTable(args[0])
	if err != nil {
		return err
	}
	report := func() error {
		tree, err := deltatree.CreateTree(table.Files())
		if err != nil {
			return err
		}
		cmd.Printf("version %d: %d files\n", table.Version(), tree.NumFiles())
		return nil
	}
	if err := report(); err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	for range table.Watch(ctx, followInterval) {
		if err := report(); err != nil {
			return err
		}
	}
	return nil
}
