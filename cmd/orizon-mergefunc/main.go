// Command orizon-mergefunc drives the function-merging pass over one of its
// built-in sample modules, for manual inspection of what the pass does to a
// given shape of duplicate functions without needing a full compiler
// pipeline in front of it.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "orizon-mergefunc",
	Short: "Inspect the function-merging pass over sample IR modules",
	Long:  `orizon-mergefunc runs the mergefunc optimization pass over named sample modules and reports what it did.`,
}

func main() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(batchCmd)

	rootCmd.PersistentFlags().String("config", "", "path to a TOML config file overriding target/layout defaults")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
