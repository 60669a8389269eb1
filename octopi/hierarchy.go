// Package octopi builds the Octopi cache hierarchy: core complexes with
// private L1 and L2 caches and a shared L3, one directory per memory port,
// and a star network that joins them through a cross-complex router.
package octopi

import (
	"fmt"

	"github.com/sarchlab/octopi/board"
	"github.com/sarchlab/octopi/coherence"
	"github.com/sarchlab/octopi/ruby"
	"github.com/sarchlab/octopi/sim/hooking"
	"github.com/sarchlab/octopi/sim/id"
	"github.com/sarchlab/octopi/sim/naming"
	"github.com/sirupsen/logrus"
)

// RequiredProtocol is the only coherence protocol the hierarchy implements.
const RequiredProtocol = coherence.MESIThreeLevel

// HookPosStageReached is triggered when a build reaches a stage. The item is
// the Stage and the detail is the board.
var HookPosStageReached = &hooking.HookPos{Name: "StageReached"}

// HookPosBuildAborted is triggered when a stage fails. The item is the error.
var HookPosBuildAborted = &hooking.HookPos{Name: "BuildAborted"}

// Hierarchy describes an Octopi cache hierarchy. It wires a fabric when a
// board is given to it.
type Hierarchy struct {
	naming.NamedBase
	hooking.HookableBase

	RubyInterconnect
	ThreeLevelSizing

	numCoreComplexes int
	activeProtocol   coherence.Protocol
}

// NumCoreComplexes returns the number of core complexes to build.
func (h *Hierarchy) NumCoreComplexes() int {
	return h.numCoreComplexes
}

// ActiveProtocol returns the protocol the simulator runs.
func (h *Hierarchy) ActiveProtocol() coherence.Protocol {
	return h.activeProtocol
}

// Begin starts a fabric build for the board. The protocol is checked before
// the board is queried, and the board is checked before anything is
// allocated.
func (h *Hierarchy) Begin(b board.Board) (NetworkCreatedStage, error) {
	if err := coherence.Requires(RequiredProtocol, h.activeProtocol); err != nil {
		return NetworkCreatedStage{}, err
	}

	if h.numCoreComplexes <= 0 {
		return NetworkCreatedStage{}, fmt.Errorf("%w: got %d",
			ErrNoCoreComplexes, h.numCoreComplexes)
	}

	memPorts := b.MemPorts()
	if len(memPorts) == 0 {
		return NetworkCreatedStage{}, ErrNoMemPorts
	}

	cacheLineSize := b.CacheLineSize()
	if err := h.ThreeLevelSizing.Validate(cacheLineSize); err != nil {
		return NetworkCreatedStage{}, err
	}

	network, err := newOctopiNetwork(h.Name(), RequiredProtocol,
		h.RubyInterconnect)
	if err != nil {
		return NetworkCreatedStage{}, err
	}

	bld := &build{
		hierarchy:     h,
		board:         b,
		memPorts:      memPorts,
		cacheLineSize: cacheLineSize,
		network:       network,
	}

	if err := bld.finish(NetworkCreated, nil); err != nil {
		return NetworkCreatedStage{}, err
	}

	return NetworkCreatedStage{b: bld}, nil
}

// IncorporateCache runs every stage of a build on the board.
func (h *Hierarchy) IncorporateCache(b board.Board) (*Fabric, error) {
	created, err := h.Begin(b)
	if err != nil {
		return nil, err
	}

	assigned, err := created.AssignCoreComplexes()
	if err != nil {
		return nil, err
	}

	dirsWired, err := assigned.WireDirectories()
	if err != nil {
		return nil, err
	}

	dmaWired, err := dirsWired.WireDMA()
	if err != nil {
		return nil, err
	}

	f, err := dmaWired.ConfigureBuffers()
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"hierarchy":     h.Name(),
		"coreComplexes": len(f.coreComplexes),
		"directories":   len(f.directories),
		"dma":           len(f.dmaControllers),
		"sequencers":    f.numSequencers,
	}).Info("cache hierarchy incorporated")

	return f, nil
}

func (b *build) assignCoreComplexes() error {
	h := b.hierarchy
	b.cores = b.board.Cores()

	groups, err := PartitionCores(b.cores, h.numCoreComplexes)
	if err != nil {
		return err
	}

	numMemPorts := len(b.memPorts)

	ccb := coreComplexBuilder{
		network:       b.network.Network,
		sizing:        h.ThreeLevelSizing,
		routerLatency: h.RouterLatency,
	}

	firstCore := 0
	for i, group := range groups {
		cc, err := ccb.build(i, group, firstCore, i%numMemPorts)
		if err != nil {
			return err
		}

		b.coreComplexes = append(b.coreComplexes, cc)
		firstCore += len(group)
	}

	return b.network.incorporateCoreComplexes(b.coreComplexes)
}

func (b *build) wireDirectories() error {
	dirs, err := createDirectories(b.network, b.memPorts,
		b.cacheLineSize)
	if err != nil {
		return err
	}

	err = createDirectoryRouters(b.network, dirs,
		b.hierarchy.RouterLatency)
	if err != nil {
		return err
	}

	if err := weaveDirectoryLinks(b.network, dirs); err != nil {
		return err
	}

	b.directories = dirs

	return nil
}

func (b *build) wireDMA() error {
	if !b.board.HasDMAPorts() {
		return nil
	}

	ctrls, err := attachDMAControllers(b.network, b.board.DMAPorts(),
		b.cacheLineSize, b.hierarchy.RouterLatency)
	if err != nil {
		return err
	}

	b.dmaControllers = ctrls

	return nil
}

func (b *build) configureBuffers() (*Fabric, error) {
	topology, err := b.network.SetupBuffers()
	if err != nil {
		return nil, err
	}

	proxy := ruby.NewPortProxy(naming.BuildName(b.hierarchy.Name(),
		"SysPortProxy"))
	if err := b.board.ConnectSystemPort(proxy.InPort()); err != nil {
		return nil, fmt.Errorf("connecting the system port: %w", err)
	}

	return &Fabric{
		id:             id.NewUniqueGenerator().Generate(),
		name:           b.hierarchy.Name(),
		protocol:       RequiredProtocol,
		sizing:         b.hierarchy.ThreeLevelSizing,
		cacheLineSize:  b.cacheLineSize,
		topology:       topology,
		coreComplexes:  b.coreComplexes,
		directories:    b.directories,
		dmaControllers: b.dmaControllers,
		numSequencers:  len(b.cores) + len(b.dmaControllers),
		sysPortProxy:   proxy,
		dirMapper:      newDirectoryMapper(b.directories),
	}, nil
}
