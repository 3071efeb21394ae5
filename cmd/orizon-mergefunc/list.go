package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/orizon-lang/orizon/internal/mergefunc/fixtures"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available sample module scenarios",
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	names := scenarioNames()
	for _, n := range names {
		fmt.Println(n)
	}
	return nil
}

func scenarioNames() []string {
	all := fixtures.All()
	names := make([]string, 0, len(all))
	for n := range all {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
