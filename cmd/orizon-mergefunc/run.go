package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/orizon-lang/orizon/internal/ir"
	"github.com/orizon-lang/orizon/internal/mergefunc"
	"github.com/orizon-lang/orizon/internal/mergefunc/fixtures"
)

var runCmd = &cobra.Command{
	Use:   "run <scenario>",
	Short: "Run the merge pass over one named sample module and print the result",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func init() {
	registerTargetFlags(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	name := args[0]
	build, ok := fixtures.All()[name]
	if !ok {
		return fmt.Errorf("unknown scenario %q (see `orizon-mergefunc list`)", name)
	}

	target, layout, err := resolveTargetAndLayout(cmd)
	if err != nil {
		return err
	}

	mod := build()
	before := describeModule(mod)

	stats := mergefunc.Run(mod, layout, target)

	after := describeModule(mod)

	fmt.Printf("module %s\n", mod.Name)
	fmt.Println("before:")
	printDescription(before)
	fmt.Println("after:")
	printDescription(after)
	fmt.Println(stats.String())
	return nil
}

type moduleDescription struct {
	functions []string
	aliases   []string
}

func describeModule(m *ir.Module) moduleDescription {
	var d moduleDescription
	for _, fn := range m.Functions {
		d.functions = append(d.functions, fn.String())
	}
	for _, al := range m.Aliases {
		target := "<nil>"
		if al.Target != nil {
			target = al.Target.Name
			if target == "" {
				target = "<anonymous>"
			}
		}
		d.aliases = append(d.aliases, fmt.Sprintf("alias %s -> %s", al.Name, target))
	}
	return d
}

func printDescription(d moduleDescription) {
	for _, f := range d.functions {
		fmt.Printf("  %s\n", f)
	}
	for _, a := range d.aliases {
		fmt.Printf("  %s\n", a)
	}
}
