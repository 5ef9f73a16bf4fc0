package aoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config is the harness configuration. Flags given on the command line
// override values read from a config file.
type Config struct {
	// InputDir holds the <day>.input files.
	InputDir   string `yaml:"input_dir"`
	Workers    int    `yaml:"workers"`
	Verbose    int    `yaml:"verbose"`
	SkipSample bool   `yaml:"skip_sample"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		InputDir: ".",
		Workers:  runtime.NumCPU(),
	}
}

// LoadConfig reads a YAML config file on top of DefaultConfig. An empty
// path returns the defaults. Unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.InputDir == "" {
		cfg.InputDir = "."
	}
	if cfg.Workers < 1 {
		cfg.Workers = runtime.NumCPU()
	}
	return cfg, nil
}
