package pairviz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	tests := map[string]func(*Config){
		"chrom and region": func(c *Config) { c.Chromosome = true; c.Region = "r.bed" },
		"chrom and json": func(c *Config) { c.Chromosome = true; c.JsonOut = true },
		"chrom and fpkm": func(c *Config) { c.Chromosome = true; c.Fpkm = true; c.GenomeLength = 1000 },
		"fpkm without length": func(c *Config) { c.Fpkm = true },
		"zero distance": func(c *Config) { c.Distance = 0 },
		"zero step": func(c *Config) { c.WinStep = 0 },
		"negative size": func(c *Config) { c.WinSize = -10 },
		"indivisible": func(c *Config) { c.WinSize = 25; c.WinStep = 10 },
	}
	for name, f := range tests {
		t.Run(name, func(t *testing.T) {
			c := DefaultConfig()
			f(&c)
			assert.ErrorIs(t, c.Validate(), ErrConfiguration)
		})
	}
}

func TestConfigValidateNonWindowed(t *testing.T) {
	c := DefaultConfig()
	c.Chromosome = true
	c.WinSize = 25
	c.WinStep = 10
	assert.NoError(t, c.Validate())

	c = DefaultConfig()
	c.Fpkm = true
	c.GenomeLength = 1000
	assert.NoError(t, c.Validate())
}
