package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/orizon-lang/orizon/internal/ir"
)

// runConfig is the optional TOML override file's shape, following
// surge.toml's pattern of a small typed struct decoded straight from disk
// rather than a generic map.
type runConfig struct {
	Target targetConfig `toml:"target"`
	Layout layoutConfig `toml:"layout"`
}

type targetConfig struct {
	ObjectFormat     string `toml:"object_format"`
	MinLinkerVersion string `toml:"min_linker_version"`
	LinkerVersion    string `toml:"linker_version"`
}

type layoutConfig struct {
	PointerBits int `toml:"pointer_bits"`
}

func loadConfig(path string) (*runConfig, error) {
	if path == "" {
		return &runConfig{}, nil
	}
	var cfg runConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	return &cfg, nil
}

// resolveTargetAndLayout builds the Target and DataLayout a run uses,
// layering the --config file (if any) under the --target/--pointer-bits
// flags, which always win when set explicitly.
func resolveTargetAndLayout(cmd *cobra.Command) (*ir.Target, ir.DataLayout, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}

	objfmt := cfg.Target.ObjectFormat
	if objfmt == "" {
		objfmt = "elf"
	}
	if v, _ := cmd.Flags().GetString("target"); v != "" {
		objfmt = v
	}
	switch objfmt {
	case "elf", "macho", "coff":
	default:
		return nil, nil, fmt.Errorf("invalid target: unknown object format %q (want elf, macho or coff)", objfmt)
	}

	minLinker := cfg.Target.MinLinkerVersion
	if v, _ := cmd.Flags().GetString("min-linker-version"); v != "" {
		minLinker = v
	}
	linkerVersion := cfg.Target.LinkerVersion
	if v, _ := cmd.Flags().GetString("linker-version"); v != "" {
		linkerVersion = v
	}

	target, err := ir.NewTarget(objfmt, minLinker, linkerVersion)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid target: %w", err)
	}

	ptrBits := cfg.Layout.PointerBits
	if ptrBits == 0 {
		ptrBits = 64
	}
	if v, _ := cmd.Flags().GetInt("pointer-bits"); v != 0 {
		ptrBits = v
	}

	return target, ir.NewDataLayout(ptrBits), nil
}

func registerTargetFlags(cmd *cobra.Command) {
	cmd.Flags().String("target", "", "object format (elf|macho|coff), default elf")
	cmd.Flags().String("min-linker-version", "", "minimum linker version constraint gating alias support, e.g. \">=1.2.0\"")
	cmd.Flags().String("linker-version", "", "linker version in use, e.g. \"1.5.0\"")
	cmd.Flags().Int("pointer-bits", 0, "pointer width in bits, default 64")
}
