package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/roach88/sortviz/internal/ir"
)

//go:embed schema.cue
var schemaSource []byte

// Load reads a config file and overlays it onto Default().
//
// The format is chosen by extension: .cue files are unified with the
// embedded schema (unknown fields and out-of-range values are rejected by
// CUE itself); .yaml and .yml files are decoded strictly. The result is
// not validated; call Validate after applying flag overrides.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var f File
	switch ext := filepath.Ext(path); ext {
	case ".cue":
		f, err = decodeCUE(path, data)
	case ".yaml", ".yml":
		f, err = decodeYAML(data)
	default:
		err = ir.NewInvalidConfiguration("file",
			fmt.Sprintf("unsupported config format %q: use .cue, .yaml or .yml", ext))
	}
	if err != nil {
		return Config{}, err
	}

	return Default().Apply(f)
}

func decodeCUE(path string, data []byte) (File, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return File{}, fmt.Errorf("embedded schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))

	v := ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return File{}, cueConfigError(err)
	}

	if err := checkKnownFields(v); err != nil {
		return File{}, err
	}

	unified := def.Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return File{}, cueConfigError(err)
	}

	var f File
	if err := unified.Decode(&f); err != nil {
		return File{}, cueConfigError(err)
	}
	return f, nil
}

// knownFields lists the top-level labels a config file may set.
var knownFields = map[string]bool{
	"algorithm": true,
	"size":      true,
	"delay_ms":  true,
	"seed":      true,
	"min":       true,
	"max":       true,
	"input":     true,
}

// checkKnownFields rejects typos such as "dealy_ms" with the offending line.
func checkKnownFields(v cue.Value) error {
	it, err := v.Fields()
	if err != nil {
		return cueConfigError(err)
	}
	for it.Next() {
		label := it.Label()
		if knownFields[label] {
			continue
		}
		cfgErr := ir.NewInvalidConfiguration(label, fmt.Sprintf("field %q not allowed", label))
		if pos := it.Value().Pos(); pos.IsValid() {
			cfgErr.Details["line"] = strconv.Itoa(pos.Line())
		}
		return cfgErr
	}
	return nil
}

// cueConfigError converts the first CUE error into INVALID_CONFIGURATION,
// keeping its source line when CUE knows it.
func cueConfigError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return ir.NewInvalidConfiguration("cue", err.Error())
	}

	first := errs[0]
	cfgErr := ir.NewInvalidConfiguration("cue", first.Error())
	if positions := cueerrors.Positions(first); len(positions) > 0 && positions[0].IsValid() {
		cfgErr.Details["line"] = strconv.Itoa(positions[0].Line())
	}
	return cfgErr
}

func decodeYAML(data []byte) (File, error) {
	var f File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return File{}, ir.NewInvalidConfiguration("yaml", fmt.Sprintf("failed to parse YAML: %v", err))
	}
	return f, nil
}
