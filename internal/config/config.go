// Package config holds the run configuration shared by every command:
// which algorithm to run, on what data, and how fast to animate it.
//
// Configuration comes from three layers, later ones winning:
//
//	Default()  →  config file (.cue or .yaml)  →  command-line flags
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/roach88/sortviz/internal/ir"
	"github.com/roach88/sortviz/internal/source"
)

// Limits applied by Validate.
const (
	MinSize = 1
	MaxSize = 200
)

// Defaults used when neither a file nor a flag sets a value.
const (
	DefaultAlgorithm = ir.KindBubble
	DefaultSize      = 40
	DefaultDelayMS   = 50
	DefaultSeed      = 1
	DefaultMin       = 1
	DefaultMax       = 100
)

// Config is a fully resolved run configuration.
type Config struct {
	Algorithm ir.Kind `json:"algorithm"`
	Size      int     `json:"size"`
	DelayMS   int     `json:"delay_ms"`
	Seed      uint64  `json:"seed"`
	Min       int     `json:"min"`
	Max       int     `json:"max"`

	// Input, when non-nil, is used verbatim instead of random data and
	// Size is ignored.
	Input []int `json:"input,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Algorithm: DefaultAlgorithm,
		Size:      DefaultSize,
		DelayMS:   DefaultDelayMS,
		Seed:      DefaultSeed,
		Min:       DefaultMin,
		Max:       DefaultMax,
	}
}

// File mirrors a config file. Pointer fields distinguish "unset" from a
// zero value so that Apply only overrides what the file names.
type File struct {
	Algorithm *string `json:"algorithm,omitempty" yaml:"algorithm"`
	Size      *int    `json:"size,omitempty" yaml:"size"`
	DelayMS   *int    `json:"delay_ms,omitempty" yaml:"delay_ms"`
	Seed      *uint64 `json:"seed,omitempty" yaml:"seed"`
	Min       *int    `json:"min,omitempty" yaml:"min"`
	Max       *int    `json:"max,omitempty" yaml:"max"`
	Input     []int   `json:"input,omitempty" yaml:"input"`
}

// Apply overlays the fields set in f onto c.
// An unknown algorithm name is reported as INVALID_CONFIGURATION.
func (c Config) Apply(f File) (Config, error) {
	if f.Algorithm != nil {
		kind, err := ir.ParseKind(*f.Algorithm)
		if err != nil {
			return c, err
		}
		c.Algorithm = kind
	}
	if f.Size != nil {
		c.Size = *f.Size
	}
	if f.DelayMS != nil {
		c.DelayMS = *f.DelayMS
	}
	if f.Seed != nil {
		c.Seed = *f.Seed
	}
	if f.Min != nil {
		c.Min = *f.Min
	}
	if f.Max != nil {
		c.Max = *f.Max
	}
	if f.Input != nil {
		c.Input = append([]int{}, f.Input...)
	}
	return c, nil
}

// Validate reports every problem in c, joined into one error.
// Each joined error is an INVALID_CONFIGURATION *ir.Error naming its field.
// Returns nil if c is usable.
func (c Config) Validate() error {
	var errs []error

	if !c.Algorithm.Valid() {
		errs = append(errs, ir.NewInvalidConfiguration("algorithm",
			fmt.Sprintf("unknown algorithm %q: must be one of %s", c.Algorithm, ir.KindNames())))
	}

	n := c.Size
	field := "size"
	if c.Input != nil {
		n = len(c.Input)
		field = "input"
	}
	if n < MinSize || n > MaxSize {
		errs = append(errs, ir.NewInvalidConfiguration(field,
			fmt.Sprintf("array length must be in [%d, %d], got %d", MinSize, MaxSize, n)))
	}

	if c.DelayMS < 1 {
		errs = append(errs, ir.NewInvalidConfiguration("delay_ms",
			fmt.Sprintf("delay must be >= 1 ms, got %d", c.DelayMS)))
	}
	if c.Input == nil {
		if err := source.CheckRange(c.Min, c.Max); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Delay returns the per-frame delay.
func (c Config) Delay() time.Duration {
	return time.Duration(c.DelayMS) * time.Millisecond
}

// Values produces the initial array: Input if set, otherwise Size random
// values in [Min, Max] from Seed.
func (c Config) Values() ([]int, error) {
	if c.Input != nil {
		return append([]int{}, c.Input...), nil
	}
	return source.Random(c.Seed, c.Size, c.Min, c.Max)
}
