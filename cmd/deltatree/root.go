package main

import (
	"os"

	"github.com/spf13/cobra"
)

var command = &cobra.Command{
	Use:           "deltatree",
	Short:         "Delta table manifest inspection",
	Long:          `deltatree compares the memory footprint of a Delta-style table manifest against its partition-tree representation, follows table versions, and scans parquet files with row-group pruning.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Usage()
	},
}

func init() {
	// use stdout as default output for cmd.Print()
	command.SetOut(os.Stdout)
	command.AddCommand(treeCMD, followCMD, scanCMD)
}

func main() {
	if err := command.Execute(); err != nil {
		command.PrintErrln(err)
		os.Exit(1)
	}
}
