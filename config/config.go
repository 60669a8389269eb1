// Package config loads the description of a board and an Octopi hierarchy
// from YAML files and environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/octopi/board"
	"github.com/sarchlab/octopi/coherence"
	"github.com/sarchlab/octopi/mem"
	"github.com/sarchlab/octopi/octopi"
	"github.com/sarchlab/octopi/ruby"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a configuration cannot describe a board
// or a hierarchy.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the root of a configuration file. All sections are optional;
// missing values keep their defaults.
type Config struct {
	Protocol     coherence.Protocol `yaml:"protocol"`
	Board        BoardConfig        `yaml:"board"`
	Hierarchy    HierarchyConfig    `yaml:"hierarchy"`
	Interconnect InterconnectConfig `yaml:"interconnect"`
	Recording    RecordingConfig    `yaml:"recording"`
	Monitoring   MonitoringConfig   `yaml:"monitoring"`
}

// BoardConfig describes the machine.
type BoardConfig struct {
	NumCores      int          `yaml:"num_cores"`
	NumDMAPorts   int          `yaml:"num_dma_ports"`
	CacheLineSize int          `yaml:"cache_line_size"`
	Memory        MemoryConfig `yaml:"memory"`
}

// MemoryConfig describes the memory channels.
type MemoryConfig struct {
	Size         ByteSize `yaml:"size"`
	Channels     int      `yaml:"channels"`
	Interleaving ByteSize `yaml:"interleaving"`
}

// HierarchyConfig describes the core complexes and their caches.
type HierarchyConfig struct {
	NumCoreComplexes int         `yaml:"num_core_complexes"`
	L1I              CacheConfig `yaml:"l1i"`
	L1D              CacheConfig `yaml:"l1d"`
	L2               CacheConfig `yaml:"l2"`
	L3               CacheConfig `yaml:"l3"`
}

// CacheConfig describes one cache level.
type CacheConfig struct {
	Size              ByteSize `yaml:"size"`
	Assoc             int      `yaml:"assoc"`
	DataAccessLatency int      `yaml:"data_access_latency"`
}

// InterconnectConfig describes the routers and links.
type InterconnectConfig struct {
	LinkLatency     int `yaml:"link_latency"`
	BandwidthFactor int `yaml:"bandwidth_factor"`
	VCsPerVNet      int `yaml:"vcs_per_vnet"`
	RouterLatency   int `yaml:"router_latency"`
	BufferSize      int `yaml:"buffer_size"`
}

// RecordingConfig tells where to write the fabric description.
type RecordingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// MonitoringConfig configures the inspection server.
type MonitoringConfig struct {
	Enabled     bool `yaml:"enabled"`
	Port        int  `yaml:"port"`
	OpenBrowser bool `yaml:"open_browser"`
}

// Default returns an EPYC-like machine: 32 cores in 4 core complexes and two
// memory channels.
func Default() Config {
	sizing := octopi.DefaultThreeLevelSizing()
	link := ruby.DefaultLinkParams()

	return Config{
		Protocol: coherence.MESIThreeLevel,
		Board: BoardConfig{
			NumCores:      32,
			CacheLineSize: 64,
			Memory: MemoryConfig{
				Size:         ByteSize(16 * mem.GB),
				Channels:     2,
				Interleaving: 256,
			},
		},
		Hierarchy: HierarchyConfig{
			NumCoreComplexes: 4,
			L1I:              cacheConfigOf(sizing.L1I),
			L1D:              cacheConfigOf(sizing.L1D),
			L2:               cacheConfigOf(sizing.L2),
			L3:               cacheConfigOf(sizing.L3),
		},
		Interconnect: InterconnectConfig{
			LinkLatency:     link.Latency,
			BandwidthFactor: link.BandwidthFactor,
			VCsPerVNet:      link.VCsPerVNet,
			RouterLatency:   1,
		},
		Recording: RecordingConfig{Path: "octopi"},
	}
}

func cacheConfigOf(s octopi.CacheSpec) CacheConfig {
	return CacheConfig{
		Size:              ByteSize(s.Size),
		Assoc:             s.Assoc,
		DataAccessLatency: s.DataAccessLatency,
	}
}

// Load reads a configuration file on top of the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	return Parse(data)
}

// Parse decodes a configuration on top of the defaults. Unknown keys are
// rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Marshal renders the configuration as YAML.
func (c Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(c); err != nil {
		return nil, err
	}

	if err := encoder.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Validate checks the values that the builders do not check themselves.
func (c Config) Validate() error {
	switch {
	case c.Board.NumCores <= 0:
		return fmt.Errorf("%w: num_cores must be positive, got %d",
			ErrInvalidConfig, c.Board.NumCores)
	case c.Board.NumDMAPorts < 0:
		return fmt.Errorf("%w: num_dma_ports must not be negative, got %d",
			ErrInvalidConfig, c.Board.NumDMAPorts)
	case !mem.IsPowerOfTwo(uint64(c.Board.CacheLineSize)):
		return fmt.Errorf("%w: cache_line_size must be a power of two, got %d",
			ErrInvalidConfig, c.Board.CacheLineSize)
	case c.Board.Memory.Channels < 0:
		return fmt.Errorf("%w: memory channels must not be negative, got %d",
			ErrInvalidConfig, c.Board.Memory.Channels)
	case c.Monitoring.Port < 0 || c.Monitoring.Port > 65535:
		return fmt.Errorf("%w: monitoring port %d", ErrInvalidConfig,
			c.Monitoring.Port)
	}

	return nil
}

// BoardBuilder returns a builder for the configured board.
func (c Config) BoardBuilder() board.Builder {
	return board.MakeBuilder().
		WithNumCores(c.Board.NumCores).
		WithMemory(uint64(c.Board.Memory.Size), c.Board.Memory.Channels,
			uint64(c.Board.Memory.Interleaving)).
		WithNumDMAPorts(c.Board.NumDMAPorts).
		WithCacheLineSize(c.Board.CacheLineSize)
}

// HierarchyBuilder returns a builder for the configured hierarchy.
func (c Config) HierarchyBuilder() octopi.Builder {
	h := c.Hierarchy
	ic := c.Interconnect

	return octopi.MakeBuilder().
		WithActiveProtocol(c.Protocol).
		WithNumCoreComplexes(h.NumCoreComplexes).
		WithSizing(octopi.ThreeLevelSizing{
			L1I: h.L1I.spec(),
			L1D: h.L1D.spec(),
			L2:  h.L2.spec(),
			L3:  h.L3.spec(),
		}).
		WithInterconnect(octopi.RubyInterconnect{
			Link: ruby.LinkParams{
				Latency:         ic.LinkLatency,
				BandwidthFactor: ic.BandwidthFactor,
				VCsPerVNet:      ic.VCsPerVNet,
			},
			RouterLatency: ic.RouterLatency,
			BufferSize:    ic.BufferSize,
		})
}

func (c CacheConfig) spec() octopi.CacheSpec {
	return octopi.CacheSpec{
		Size:              uint64(c.Size),
		Assoc:             c.Assoc,
		DataAccessLatency: c.DataAccessLatency,
	}
}
