package octopi

import (
	"fmt"

	"github.com/sarchlab/octopi/mem"
	"github.com/sarchlab/octopi/ruby"
)

// CacheSpec describes one cache array.
type CacheSpec struct {
	Size              uint64
	Assoc             int
	DataAccessLatency int
}

// NumSets returns the number of sets of the cache.
func (s CacheSpec) NumSets(cacheLineSize int) int {
	return int(s.Size / uint64(cacheLineSize*s.Assoc))
}

func (s CacheSpec) mustBeFullSets(name string, cacheLineSize int) error {
	if s.Size == 0 || s.Assoc <= 0 {
		return fmt.Errorf("%w: %s needs a size and an associativity",
			ErrInvalidSizing, name)
	}

	setSize := uint64(cacheLineSize * s.Assoc)
	if s.Size%setSize != 0 {
		return fmt.Errorf("%w: %s of %s with %d ways and %d B lines does "+
			"not have an integer number of sets", ErrInvalidSizing, name,
			mem.FormatByteSize(s.Size), s.Assoc, cacheLineSize)
	}

	if s.DataAccessLatency < 0 {
		return fmt.Errorf("%w: %s has a negative latency", ErrInvalidSizing, name)
	}

	return nil
}

// ThreeLevelSizing is the sizing of a three-level hierarchy: split private
// L1s, a private L2 per core, and an L3 shared inside a core complex.
type ThreeLevelSizing struct {
	L1I CacheSpec
	L1D CacheSpec
	L2  CacheSpec
	L3  CacheSpec
}

// DefaultThreeLevelSizing returns an EPYC-like sizing.
func DefaultThreeLevelSizing() ThreeLevelSizing {
	return ThreeLevelSizing{
		L1I: CacheSpec{Size: 32 * mem.KB, Assoc: 8, DataAccessLatency: 1},
		L1D: CacheSpec{Size: 32 * mem.KB, Assoc: 8, DataAccessLatency: 5},
		L2:  CacheSpec{Size: 512 * mem.KB, Assoc: 8, DataAccessLatency: 12},
		L3:  CacheSpec{Size: 32 * mem.MB, Assoc: 16, DataAccessLatency: 46},
	}
}

// Validate checks that every level has an integer number of sets.
func (s ThreeLevelSizing) Validate(cacheLineSize int) error {
	if cacheLineSize <= 0 {
		return fmt.Errorf("%w: cache line size %d", ErrInvalidSizing,
			cacheLineSize)
	}

	levels := []struct {
		name string
		spec CacheSpec
	}{
		{"L1I", s.L1I},
		{"L1D", s.L1D},
		{"L2", s.L2},
		{"L3", s.L3},
	}

	for _, l := range levels {
		if err := l.spec.mustBeFullSets(l.name, cacheLineSize); err != nil {
			return err
		}
	}

	return nil
}

// RubyInterconnect describes how the routers and links of the fabric behave.
type RubyInterconnect struct {
	Link          ruby.LinkParams
	RouterLatency int
	BufferSize    int
}

// DefaultRubyInterconnect returns a simple-network interconnect with
// unlimited buffers.
func DefaultRubyInterconnect() RubyInterconnect {
	return RubyInterconnect{
		Link:          ruby.DefaultLinkParams(),
		RouterLatency: 1,
	}
}
