package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sarchlab/octopi/coherence"
)

// Environment variables that override the configuration.
const (
	EnvProtocol    = "OCTOPI_PROTOCOL"
	EnvNumCCDs     = "OCTOPI_NUM_CCDS"
	EnvRecordPath  = "OCTOPI_RECORD_PATH"
	EnvMonitorPort = "OCTOPI_MONITOR_PORT"
)

// LoadEnvFiles loads variables from .env files into the environment.
// Variables that are already set are kept. Missing files are skipped.
func LoadEnvFiles(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		err := godotenv.Load(f)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}

	return nil
}

// ApplyEnv overrides the configuration with the environment variables that
// are set.
func (c *Config) ApplyEnv() error {
	if v, ok := os.LookupEnv(EnvProtocol); ok {
		p, err := coherence.ParseProtocol(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvProtocol, err)
		}

		c.Protocol = p
	}

	if v, ok := os.LookupEnv(EnvNumCCDs); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidConfig, EnvNumCCDs, v)
		}

		c.Hierarchy.NumCoreComplexes = n
	}

	if v, ok := os.LookupEnv(EnvRecordPath); ok {
		c.Recording.Enabled = true
		c.Recording.Path = v
	}

	if v, ok := os.LookupEnv(EnvMonitorPort); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidConfig, EnvMonitorPort, v)
		}

		c.Monitoring.Enabled = true
		c.Monitoring.Port = port
	}

	return nil
}
