package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/sortviz/internal/config"
	"github.com/roach88/sortviz/internal/engine"
	"github.com/roach88/sortviz/internal/ir"
	"github.com/roach88/sortviz/internal/source"
)

// ConfigFlags are the run configuration flags shared by every command that
// starts a run. Flags override the config file, which overrides defaults.
type ConfigFlags struct {
	ConfigFile string
	Algorithm  string
	Size       int
	DelayMS    int
	Seed       uint64
	Min        int
	Max        int
	Input      string

	// RunIDs overrides the run ID generator (for testing).
	// If nil, runs use engine.UUIDv7Generator.
	RunIDs engine.RunIDGenerator

	withDelay bool
}

// register adds the flags to cmd. withDelay adds --delay for commands
// that pace their frames.
func (f *ConfigFlags) register(cmd *cobra.Command, withDelay bool) {
	f.withDelay = withDelay

	flags := cmd.Flags()
	flags.StringVarP(&f.ConfigFile, "config", "c", "", "config file (.cue, .yaml or .yml)")
	flags.StringVarP(&f.Algorithm, "algorithm", "a", string(config.DefaultAlgorithm), "algorithm: "+ir.KindNames())
	flags.IntVarP(&f.Size, "size", "n", config.DefaultSize, "number of random values")
	flags.Uint64Var(&f.Seed, "seed", config.DefaultSeed, "random seed")
	flags.IntVar(&f.Min, "min", config.DefaultMin, "smallest random value")
	flags.IntVar(&f.Max, "max", config.DefaultMax, "largest random value")
	flags.StringVarP(&f.Input, "input", "i", "", `literal input, e.g. "5,3,4,1,2" (overrides --size)`)
	if withDelay {
		flags.IntVarP(&f.DelayMS, "delay", "d", config.DefaultDelayMS, "delay between frames in milliseconds")
	}
}

// resolve builds the validated configuration: defaults, then the config
// file, then every flag the user actually set.
// Errors are INVALID_CONFIGURATION wrapped in an ExitError.
func (f *ConfigFlags) resolve(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if f.ConfigFile != "" {
		loaded, err := config.Load(f.ConfigFile)
		if err != nil {
			return config.Config{}, WrapExitError(ExitCommandError, "failed to load config", err)
		}
		cfg = loaded
	}

	changed := cmd.Flags().Changed
	if changed("algorithm") {
		kind, err := ir.ParseKind(f.Algorithm)
		if err != nil {
			return config.Config{}, WrapExitError(ExitCommandError, "invalid flags", err)
		}
		cfg.Algorithm = kind
	}
	if changed("size") {
		cfg.Size = f.Size
		cfg.Input = nil
	}
	if changed("seed") {
		cfg.Seed = f.Seed
	}
	if changed("min") {
		cfg.Min = f.Min
	}
	if changed("max") {
		cfg.Max = f.Max
	}
	if f.withDelay && changed("delay") {
		cfg.DelayMS = f.DelayMS
	}
	if changed("input") {
		values, err := source.ParseList(f.Input)
		if err != nil {
			return config.Config{}, WrapExitError(ExitCommandError, "invalid flags", err)
		}
		cfg.Input = values
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, WrapExitError(ExitCommandError, "invalid configuration", err)
	}
	return cfg, nil
}

// engineOptions returns the engine options every command passes to Start.
// CLI runs always report their trace digest.
func (f *ConfigFlags) engineOptions(opts ...engine.Option) []engine.Option {
	opts = append(opts, engine.WithDigest())
	if f.RunIDs != nil {
		opts = append(opts, engine.WithRunIDGenerator(f.RunIDs))
	}
	return opts
}
