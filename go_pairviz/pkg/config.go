package pairviz

import (
	"errors"
	"fmt"
)

var ErrConfiguration = errors.New("invalid configuration")

const (
	DefaultWinSize int64 = 100000
	DefaultWinStep int64 = 10000
	DefaultDistance int64 = 5000000
)

// Everything that controls one aggregation run
type Config struct {
	WinSize int64
	WinStep int64
	// Mates at least this far apart are only counted as good reads
	Distance int64
	Chromosome bool
	// BED file of regions; replaces sliding windows when set
	Region string
	Fpkm bool
	// Required with Fpkm; carried into the report but not part of the formula
	GenomeLength int64
	Name string
	JsonOut bool
	Threads int
}

func DefaultConfig() Config {
	return Config{
		WinSize: DefaultWinSize,
		WinStep: DefaultWinStep,
		Distance: DefaultDistance,
		GenomeLength: -1,
		Threads: 1,
	}
}

func (c Config) Windowed() bool {
	return !c.Chromosome && c.Region == ""
}

// Validate is called before any input is read.
func (c Config) Validate() error {
	h := handle("Config.Validate: %w")
	bad := func(format string, args ...any) error {
		return h(fmt.Errorf(format + ": %w", append(args, ErrConfiguration)...))
	}

	if c.Chromosome && c.Region != "" {
		return bad("whole-chromosome mode and region file %q are exclusive", c.Region)
	}
	if c.Chromosome && c.JsonOut {
		return bad("JSON output is not available in whole-chromosome mode")
	}
	if c.Chromosome && c.Fpkm {
		return bad("FPKM output is not available in whole-chromosome mode")
	}
	if c.Fpkm && c.GenomeLength <= 0 {
		return bad("FPKM output needs a positive genome length, got %v", c.GenomeLength)
	}
	if c.Distance <= 0 {
		return bad("distance %v must be positive", c.Distance)
	}
	if !c.Windowed() {
		return nil
	}
	if c.WinSize <= 0 || c.WinStep <= 0 {
		return bad("window size %v and step %v must be positive", c.WinSize, c.WinStep)
	}
	if c.WinSize % c.WinStep != 0 {
		return bad("window size %v is not a multiple of window step %v", c.WinSize, c.WinStep)
	}
	return nil
}
