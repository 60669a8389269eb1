package octopi

import (
	"github.com/sarchlab/octopi/board"
	"github.com/sarchlab/octopi/ruby"
	"github.com/sarchlab/octopi/sim/naming"
)

// Controller types of the three-level hierarchy.
const (
	L1CacheType   = "L1Cache"
	L2CacheType   = "L2Cache"
	L3CacheType   = "L3Cache"
	DirectoryType = "Directory"
	DMAType       = "DMA"
)

type cacheController struct {
	naming.NamedBase

	ctrlType string
	version  int
	spec     CacheSpec
	ports    []MessagePort
}

// Type returns the controller type.
func (c *cacheController) Type() string {
	return c.ctrlType
}

// Version returns the controller version.
func (c *cacheController) Version() int {
	return c.version
}

// Spec returns the sizing of the cache array.
func (c *cacheController) Spec() CacheSpec {
	return c.spec
}

// MessagePorts returns the network-facing message queues.
func (c *cacheController) MessagePorts() []MessagePort {
	out := make([]MessagePort, len(c.ports))
	copy(out, c.ports)

	return out
}

// L1Cache is the private first-level cache of a core. It holds split
// instruction and data arrays and the sequencer of the core.
type L1Cache struct {
	cacheController

	icache    CacheSpec
	sequencer *ruby.Sequencer
}

// DCache returns the sizing of the data array.
func (c *L1Cache) DCache() CacheSpec {
	return c.spec
}

// ICache returns the sizing of the instruction array.
func (c *L1Cache) ICache() CacheSpec {
	return c.icache
}

// Sequencer returns the sequencer that issues the core's requests.
func (c *L1Cache) Sequencer() *ruby.Sequencer {
	return c.sequencer
}

// L2Cache is the private second-level cache of a core.
type L2Cache struct {
	cacheController
}

// L3Cache is the last-level cache shared by a core complex.
type L3Cache struct {
	cacheController
}

var l1MessagePorts = []messagePortSpec{
	{"RequestToL2", vnetRequest, ToNetwork},
	{"ResponseToL2", vnetResponse, ToNetwork},
	{"UnblockToL2", vnetUnblock, ToNetwork},
	{"RequestFromL2", vnetUnblock, FromNetwork},
	{"ResponseFromL2", vnetResponse, FromNetwork},
}

var l2MessagePorts = []messagePortSpec{
	{"RequestToL3", vnetRequest, ToNetwork},
	{"ResponseToL3", vnetResponse, ToNetwork},
	{"UnblockToL3", vnetUnblock, ToNetwork},
	{"RequestFromL3", vnetUnblock, FromNetwork},
	{"ResponseFromL3", vnetResponse, FromNetwork},
}

var l3MessagePorts = []messagePortSpec{
	{"DirRequestFromL3", vnetRequest, ToNetwork},
	{"L2RequestFromL3", vnetUnblock, ToNetwork},
	{"ResponseFromL3", vnetResponse, ToNetwork},
	{"UnblockToL3", vnetUnblock, FromNetwork},
	{"L2RequestToL3", vnetRequest, FromNetwork},
	{"ResponseToL3", vnetResponse, FromNetwork},
}

func newCacheController(
	network *ruby.Network,
	name, ctrlType string,
	version int,
	spec CacheSpec,
	portSpecs []messagePortSpec,
) (cacheController, error) {
	ports, err := buildMessagePorts(network, name, portSpecs)
	if err != nil {
		return cacheController{}, err
	}

	return cacheController{
		NamedBase: naming.MakeNamedBase(name),
		ctrlType:  ctrlType,
		version:   version,
		spec:      spec,
		ports:     ports,
	}, nil
}

func newL1Cache(
	network *ruby.Network,
	name string,
	version int,
	sizing ThreeLevelSizing,
	core board.Core,
) (*L1Cache, error) {
	ctrl, err := newCacheController(network, name, L1CacheType, version,
		sizing.L1D, l1MessagePorts)
	if err != nil {
		return nil, err
	}

	return &L1Cache{
		cacheController: ctrl,
		icache:          sizing.L1I,
		sequencer: ruby.NewSequencer(
			naming.BuildName(name, "Sequencer"), version, core),
	}, nil
}

func newL2Cache(
	network *ruby.Network,
	name string,
	version int,
	spec CacheSpec,
) (*L2Cache, error) {
	ctrl, err := newCacheController(network, name, L2CacheType, version,
		spec, l2MessagePorts)
	if err != nil {
		return nil, err
	}

	return &L2Cache{cacheController: ctrl}, nil
}

func newL3Cache(
	network *ruby.Network,
	name string,
	version int,
	spec CacheSpec,
) (*L3Cache, error) {
	ctrl, err := newCacheController(network, name, L3CacheType, version,
		spec, l3MessagePorts)
	if err != nil {
		return nil, err
	}

	return &L3Cache{cacheController: ctrl}, nil
}
