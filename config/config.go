// Package config handles intcode.toml run configuration.
//
//	program = "day9.ic"
//	width = 64
//	ascii = false
//	max-ticks = 1000000
//	input = [2]
//
//	[patch]
//	1 = 12
//	2 = 2
package config

import (
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config represents an intcode.toml run configuration.
type Config struct {
	Program  string           `toml:"program"`   // Program text, or assembly source if ending in .ica.
	Width    int              `toml:"width"`     // Word width in bits.
	Ascii    bool             `toml:"ascii"`     // Tape I/O is ASCII text.
	MaxTicks int              `toml:"max-ticks"` // Instruction limit, or zero.
	Verbose  bool             `toml:"verbose"`
	Input    []int64          `toml:"input"` // Words preloaded before the input tape.
	Patch    map[string]int64 `toml:"patch"` // Words written before running, by address.

	// Dir is the directory containing the configuration file (set at load time).
	Dir string `toml:"-"`
}

// Patch is a single direct write.
type Patch struct {
	Addr  int
	Value int64
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Width: 64,
	}
}

// Decode parses configuration text over the defaults.
func Decode(text string) (conf *Config, err error) {
	conf = Default()
	_, err = toml.Decode(text, conf)
	if err != nil {
		conf = nil
		return
	}

	err = conf.Validate()
	if err != nil {
		conf = nil
	}

	return
}

// Load parses a configuration file.
func Load(path string) (conf *Config, err error) {
	defer func() {
		if err != nil {
			conf = nil
			err = &ErrConfig{Path: path, Err: err}
		}
	}()

	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	conf, err = Decode(string(data))
	if err != nil {
		return
	}

	conf.Dir, err = filepath.Abs(filepath.Dir(path))
	return
}

// ProgramPath returns the program path, relative to the configuration
// file directory.
func (conf *Config) ProgramPath() string {
	if conf.Program == "" || filepath.IsAbs(conf.Program) {
		return conf.Program
	}

	return filepath.Join(conf.Dir, conf.Program)
}

// Validate checks the configuration values.
func (conf *Config) Validate() (err error) {
	if conf.Width != 32 && conf.Width != 64 {
		err = ErrWidth
		return
	}

	if conf.MaxTicks < 0 {
		err = ErrMaxTicks
		return
	}

	patches, err := conf.Patches()
	if err != nil {
		return
	}

	for _, patch := range patches {
		if !conf.fits(patch.Value) {
			err = &ErrConfig{Path: "patch." + strconv.Itoa(patch.Addr), Err: ErrRange}
			return
		}
	}

	for n, value := range conf.Input {
		if !conf.fits(value) {
			err = &ErrConfig{Path: "input." + strconv.Itoa(n), Err: ErrRange}
			return
		}
	}

	return
}

// fits returns true if value is representable in the configured width.
func (conf *Config) fits(value int64) bool {
	if conf.Width == 32 {
		return value >= math.MinInt32 && value <= math.MaxInt32
	}
	return true
}

// Patches returns the patch table, sorted by address.
func (conf *Config) Patches() (patches []Patch, err error) {
	for key, value := range conf.Patch {
		var addr int64
		addr, err = strconv.ParseInt(key, 0, 0)
		if err != nil || addr < 0 {
			err = &ErrConfig{Path: "patch." + key, Err: ErrPatch}
			patches = nil
			return
		}
		patches = append(patches, Patch{Addr: int(addr), Value: value})
	}

	slices.SortFunc(patches, func(a, b Patch) int {
		return a.Addr - b.Addr
	})

	return
}
