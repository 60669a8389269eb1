package octopi

import (
	"github.com/sarchlab/octopi/coherence"
	"github.com/sarchlab/octopi/ruby"
	"github.com/sarchlab/octopi/sim/naming"
)

// Builder can build Octopi hierarchies.
type Builder struct {
	numCoreComplexes int
	activeProtocol   coherence.Protocol
	sizing           ThreeLevelSizing
	interconnect     RubyInterconnect
}

// MakeBuilder creates a builder for a single core complex with the default
// sizing and interconnect.
func MakeBuilder() Builder {
	return Builder{
		numCoreComplexes: 1,
		activeProtocol:   RequiredProtocol,
		sizing:           DefaultThreeLevelSizing(),
		interconnect:     DefaultRubyInterconnect(),
	}
}

// WithNumCoreComplexes sets the number of core complexes the board's cores
// are split into.
func (b Builder) WithNumCoreComplexes(n int) Builder {
	b.numCoreComplexes = n
	return b
}

// WithActiveProtocol sets the protocol the simulator was compiled with.
func (b Builder) WithActiveProtocol(p coherence.Protocol) Builder {
	b.activeProtocol = p
	return b
}

// WithSizing sets the sizing of all the cache levels.
func (b Builder) WithSizing(s ThreeLevelSizing) Builder {
	b.sizing = s
	return b
}

// WithL1ICache sets the size and associativity of the L1 instruction cache.
func (b Builder) WithL1ICache(size uint64, assoc int) Builder {
	b.sizing.L1I.Size = size
	b.sizing.L1I.Assoc = assoc

	return b
}

// WithL1DCache sets the size and associativity of the L1 data cache.
func (b Builder) WithL1DCache(size uint64, assoc int) Builder {
	b.sizing.L1D.Size = size
	b.sizing.L1D.Assoc = assoc

	return b
}

// WithL2Cache sets the size and associativity of the L2 cache.
func (b Builder) WithL2Cache(size uint64, assoc int) Builder {
	b.sizing.L2.Size = size
	b.sizing.L2.Assoc = assoc

	return b
}

// WithL3Cache sets the size and associativity of the shared L3 cache.
func (b Builder) WithL3Cache(size uint64, assoc int) Builder {
	b.sizing.L3.Size = size
	b.sizing.L3.Assoc = assoc

	return b
}

// WithDataAccessLatencies sets the data access latency of the L1 data, L2,
// and L3 caches, in cycles.
func (b Builder) WithDataAccessLatencies(l1d, l2, l3 int) Builder {
	b.sizing.L1D.DataAccessLatency = l1d
	b.sizing.L2.DataAccessLatency = l2
	b.sizing.L3.DataAccessLatency = l3

	return b
}

// WithInterconnect sets the router and link parameters.
func (b Builder) WithInterconnect(ic RubyInterconnect) Builder {
	b.interconnect = ic
	return b
}

// WithLinkParams sets the parameters of every link.
func (b Builder) WithLinkParams(p ruby.LinkParams) Builder {
	b.interconnect.Link = p
	return b
}

// WithRouterLatency sets the latency of every router.
func (b Builder) WithRouterLatency(latency int) Builder {
	b.interconnect.RouterLatency = latency
	return b
}

// WithBufferSize sets the capacity of the message buffers. Zero means
// unlimited.
func (b Builder) WithBufferSize(size int) Builder {
	b.interconnect.BufferSize = size
	return b
}

// Build creates the hierarchy. Nothing is validated until a board is given
// to it.
func (b Builder) Build(name string) *Hierarchy {
	b.protocolMustBeGiven()

	return &Hierarchy{
		NamedBase:        naming.MakeNamedBase(name),
		RubyInterconnect: b.interconnect,
		ThreeLevelSizing: b.sizing,
		numCoreComplexes: b.numCoreComplexes,
		activeProtocol:   b.activeProtocol,
	}
}

func (b Builder) protocolMustBeGiven() {
	if b.activeProtocol == coherence.UnknownProtocol {
		panic("active protocol is not given")
	}
}
