package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

func newFlagCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("config", "", "")
	registerTargetFlags(cmd)
	return cmd
}

func TestResolveTargetAndLayout_Defaults(t *testing.T) {
	cmd := newFlagCmd()
	target, layout, err := resolveTargetAndLayout(cmd)
	if err != nil {
		t.Fatalf("resolveTargetAndLayout: %v", err)
	}
	if target.ObjectFormat != "elf" {
		t.Errorf("default object format = %q, want elf", target.ObjectFormat)
	}
	if layout.PointerBits() != 64 {
		t.Errorf("default pointer width = %d, want 64", layout.PointerBits())
	}
}

func TestResolveTargetAndLayout_ConfigFileThenFlagOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mergefunc.toml")
	data := `[target]
object_format = "macho"

[layout]
pointer_bits = 32
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cmd := newFlagCmd()
	if err := cmd.Flags().Set("config", path); err != nil {
		t.Fatal(err)
	}

	target, _, err := resolveTargetAndLayout(cmd)
	if err != nil {
		t.Fatalf("resolveTargetAndLayout: %v", err)
	}
	if target.ObjectFormat != "macho" {
		t.Errorf("config file's object_format should apply when no --target flag is set, got %q", target.ObjectFormat)
	}

	cmd2 := newFlagCmd()
	if err := cmd2.Flags().Set("config", path); err != nil {
		t.Fatal(err)
	}
	if err := cmd2.Flags().Set("target", "elf"); err != nil {
		t.Fatal(err)
	}
	target2, _, err := resolveTargetAndLayout(cmd2)
	if err != nil {
		t.Fatalf("resolveTargetAndLayout: %v", err)
	}
	if target2.ObjectFormat != "elf" {
		t.Errorf("an explicit --target flag should win over the config file, got %q", target2.ObjectFormat)
	}
}

func TestResolveTargetAndLayout_InvalidTarget(t *testing.T) {
	cmd := newFlagCmd()
	if err := cmd.Flags().Set("target", "bogus"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := resolveTargetAndLayout(cmd); err == nil {
		t.Error("an unrecognized object format should be rejected")
	}
}

func TestScenarioNames_SortedAndNonEmpty(t *testing.T) {
	names := scenarioNames()
	if len(names) == 0 {
		t.Fatal("expected at least one registered scenario")
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("scenarioNames() not sorted: %q >= %q", names[i-1], names[i])
		}
	}
}
