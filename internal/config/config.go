// Package config loads the YAML document describing which target to
// compile for and which pipeline stages to dump, then lets CLI flags
// override it field by field (flags win), mirroring the precedence the
// teacher's own cobra command applies to its debug flags.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/statim-lang/statimc/internal/types"
)

// Stage names accepted in Dumps / -d<stage> flags.
const (
	StageAST     = "ast"
	StageSIIR    = "siir"
	StageMachine = "machine"
)

var validStages = map[string]bool{
	StageAST:     true,
	StageSIIR:    true,
	StageMachine: true,
}

// Config is the merged set of knobs the compile pipeline needs: which
// target to select and which stage dumps are enabled (spec §4.10).
type Config struct {
	Target string   `yaml:"target"`
	Dumps  []string `yaml:"dumps"`
}

// Default returns the config used when no file and no flags are given.
func Default() Config {
	return Config{Target: "x64-systemv-linux"}
}

// Load reads path as YAML into a Config. A missing file is not an
// error; it returns Default() so the CLI can run with built-in
// defaults until a config file is introduced.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects an unknown target name or dump stage before the
// pipeline runs, so a typo fails fast with a clear message rather than
// a panic deep in InstSelection.
func (c Config) Validate() error {
	if _, ok := ResolveTarget(c.Target); !ok {
		return fmt.Errorf("config: unknown target %q", c.Target)
	}
	for _, d := range c.Dumps {
		if !validStages[d] {
			return fmt.Errorf("config: unknown dump stage %q", d)
		}
	}
	return nil
}

// ResolveTarget maps a target name as it appears in a config file or
// -target flag to the types.Target it names. Only the one triple spec
// §6.4 defines is known.
func ResolveTarget(name string) (types.Target, bool) {
	switch name {
	case "x64-systemv-linux", "":
		return types.X64SystemVLinux(), true
	default:
		return types.Target{}, false
	}
}

// WantDump reports whether stage is among the enabled dumps.
func (c Config) WantDump(stage string) bool {
	for _, d := range c.Dumps {
		if d == stage {
			return true
		}
	}
	return false
}

// ApplyFlags overlays CLI-provided dump stages and target onto c, CLI
// flags winning over whatever the file said (teacher's own precedence:
// flags override file-configured defaults). An empty target leaves c's
// target untouched; a nil/empty dumps slice leaves c's dumps untouched.
func (c Config) ApplyFlags(target string, dumps []string) Config {
	if target != "" {
		c.Target = target
	}
	if len(dumps) > 0 {
		c.Dumps = dumps
	}
	return c
}
