package octopi

import (
	"fmt"

	"github.com/sarchlab/octopi/board"
	"github.com/sarchlab/octopi/ruby"
	"github.com/sarchlab/octopi/sim/naming"
)

// PartitionCores splits the cores into n contiguous groups of the same size.
// Group i holds cores [i*k, (i+1)*k), with k = len(cores)/n.
func PartitionCores(cores []board.Core, n int) ([][]board.Core, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrNoCoreComplexes, n)
	}

	if len(cores) == 0 {
		return nil, ErrNoCores
	}

	if len(cores)%n != 0 {
		return nil, fmt.Errorf("%w: %d cores into %d core complexes",
			ErrUnevenPartition, len(cores), n)
	}

	perComplex := len(cores) / n
	groups := make([][]board.Core, n)

	for i := range groups {
		groups[i] = cores[i*perComplex : (i+1)*perComplex]
	}

	return groups, nil
}

// CoreCluster is the private part of the hierarchy that serves one core.
type CoreCluster struct {
	Core board.Core
	L1   *L1Cache
	L2   *L2Cache
}

// CoreComplex is a group of cores that share an L3 cache and a router.
type CoreComplex struct {
	naming.NamedBase

	index       int
	homeMemPort int
	clusters    []CoreCluster
	l3          *L3Cache
	router      *ruby.Router
	network     *ruby.Network
}

// Index returns the position of the complex in the hierarchy.
func (c *CoreComplex) Index() int {
	return c.index
}

// HomeMemPort returns the index of the memory port the complex is aligned
// with.
func (c *CoreComplex) HomeMemPort() int {
	return c.homeMemPort
}

// Cores returns the cores of the complex, in board order.
func (c *CoreComplex) Cores() []board.Core {
	cores := make([]board.Core, len(c.clusters))
	for i, cl := range c.clusters {
		cores[i] = cl.Core
	}

	return cores
}

// Clusters returns the per-core private caches.
func (c *CoreComplex) Clusters() []CoreCluster {
	out := make([]CoreCluster, len(c.clusters))
	copy(out, c.clusters)

	return out
}

// L3 returns the shared cache of the complex.
func (c *CoreComplex) L3() *L3Cache {
	return c.l3
}

// Router returns the router that connects the complex to the hub.
func (c *CoreComplex) Router() *ruby.Router {
	return c.router
}

// Network returns the network the complex belongs to.
func (c *CoreComplex) Network() *ruby.Network {
	return c.network
}

// controllers lists the controllers that need an external link, L1 and L2
// of each core first, then the L3.
func (c *CoreComplex) controllers() []ruby.Controller {
	ctrls := make([]ruby.Controller, 0, 2*len(c.clusters)+1)
	for _, cl := range c.clusters {
		ctrls = append(ctrls, cl.L1, cl.L2)
	}

	return append(ctrls, c.l3)
}

// Sequencers returns the sequencers of the cores in the complex.
func (c *CoreComplex) Sequencers() []*ruby.Sequencer {
	seqs := make([]*ruby.Sequencer, len(c.clusters))
	for i, cl := range c.clusters {
		seqs[i] = cl.L1.Sequencer()
	}

	return seqs
}

type coreComplexBuilder struct {
	network       *ruby.Network
	sizing        ThreeLevelSizing
	routerLatency int
}

// build creates the caches of a complex. The first core of the complex has
// the global index firstCore, which is used as the cache and sequencer
// version.
func (b coreComplexBuilder) build(
	index int,
	cores []board.Core,
	firstCore int,
	homeMemPort int,
) (*CoreComplex, error) {
	name := naming.BuildNameWithIndex(b.network.Name(), "CoreComplex", index)

	cc := &CoreComplex{
		NamedBase:   naming.MakeNamedBase(name),
		index:       index,
		homeMemPort: homeMemPort,
		network:     b.network,
		router: ruby.NewRouter(naming.BuildName(name, "Router"),
			ruby.CoreComplexRouter, b.routerLatency),
	}

	for i, core := range cores {
		version := firstCore + i

		cluster, err := b.buildCluster(name, i, version, core)
		if err != nil {
			return nil, err
		}

		cc.clusters = append(cc.clusters, cluster)
	}

	l3, err := newL3Cache(b.network, naming.BuildName(name, "L3Cache"),
		index, b.sizing.L3)
	if err != nil {
		return nil, err
	}

	cc.l3 = l3

	return cc, nil
}

func (b coreComplexBuilder) buildCluster(
	complexName string,
	localIndex, version int,
	core board.Core,
) (CoreCluster, error) {
	l1, err := newL1Cache(b.network,
		naming.BuildNameWithIndex(complexName, "L1Cache", localIndex),
		version, b.sizing, core)
	if err != nil {
		return CoreCluster{}, err
	}

	l2, err := newL2Cache(b.network,
		naming.BuildNameWithIndex(complexName, "L2Cache", localIndex),
		version, b.sizing.L2)
	if err != nil {
		return CoreCluster{}, err
	}

	return CoreCluster{Core: core, L1: l1, L2: l2}, nil
}
