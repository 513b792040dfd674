package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/go-delta/deltatree"
	"github.com/go-delta/deltatree/datasource/deltalog"
	"github.com/go-delta/deltatree/stats"
)

var treeCMD = &cobra.Command{
	Use:   "tree <table-dir>",
	Short: "Compare flat manifest and partition tree memory footprints",
	Args:  cobra.ExactArgs(1),
	RunE:  treeFunc,
}

func treeFunc(cmd *cobra.Command, args []string) error {
	start := time.Now()
	table, err := deltalog.OpenTable(args[0])
	if err != nil {
		return err
	}
	paths := table.Files()
	flat := stats.FlatBytes(paths)
	cmd.Printf("manifest: %d files at version %d (load: %v)\n", len(paths), table.Version(), time.Since(start))
	cmd.Printf("flat list bytes: %d\n", flat)

	start = time.Now()
	tree, err := deltatree.CreateTree(paths)
	if err != nil {
		return err
	}
	treeBytes := stats.TreeBytes(tree)
	cmd.Printf("partition tree bytes: %d (build: %v)\n", treeBytes, time.Since(start))

	compressed, err := stats.CompressedFlatBytes(paths)
	if err != nil {
		return err
	}
	cmd.Printf("lz4 flat bytes: %d\n", compressed)
	if flat > 0 {
		cmd.Printf("relative tree size: %d%%\n", 100*treeBytes/flat)
	}
	return nil
}
