package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

const configFileName = "cito.toml"

// fileConfig mirrors cito.toml. Every setting has a flag; a flag given on
// the command line wins.
type fileConfig struct {
	Output outputConfig `toml:"output"`
	Trace  traceConfig  `toml:"trace"`
}

type outputConfig struct {
	Color          string `toml:"color"`
	MaxDiagnostics *int   `toml:"max_diagnostics"`
}

type traceConfig struct {
	Level  string `toml:"level"`
	Mode   string `toml:"mode"`
	Output string `toml:"output"`
}

func findConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return fileConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fileConfig{}, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	if cfg.Output.MaxDiagnostics != nil && *cfg.Output.MaxDiagnostics < 0 {
		return fileConfig{}, fmt.Errorf("%s: [output].max_diagnostics must not be negative", path)
	}
	return cfg, nil
}

// applyConfig loads cito.toml, from --config or found upward from the
// working directory, and fills in the flags the user did not set.
func applyConfig(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	path, err := flags.GetString("config")
	if err != nil {
		return err
	}
	if path == "" {
		var ok bool
		if path, ok, err = findConfig("."); err != nil || !ok {
			return err
		}
	}
	cfg, err := loadConfig(path)
	if err != nil {
		return err
	}
	set := func(name, value string) error {
		if value == "" || flags.Changed(name) {
			return nil
		}
		return flags.Set(name, value)
	}
	if cfg.Output.MaxDiagnostics != nil {
		if err := set("max-diagnostics", strconv.Itoa(*cfg.Output.MaxDiagnostics)); err != nil {
			return err
		}
	}
	for _, kv := range [][2]string{
		{"color", cfg.Output.Color},
		{"trace-level", cfg.Trace.Level},
		{"trace-mode", cfg.Trace.Mode},
		{"trace", cfg.Trace.Output},
	} {
		if err := set(kv[0], kv[1]); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}
