package ruby

import (
	"github.com/sarchlab/octopi/board"
	"github.com/sarchlab/octopi/sim/naming"
)

// Controller is a coherence controller attached to the network through an
// external link.
type Controller interface {
	naming.Named

	// Type returns the controller type, such as "Directory".
	Type() string

	// Version numbers the controllers of the same type from 0.
	Version() int
}

// Sequencer issues the coherence requests of a core.
type Sequencer struct {
	naming.NamedBase

	version int
	core    board.Core
}

// NewSequencer creates a sequencer for a core.
func NewSequencer(name string, version int, core board.Core) *Sequencer {
	return &Sequencer{
		NamedBase: naming.MakeNamedBase(name),
		version:   version,
		core:      core,
	}
}

// Version returns the sequencer number.
func (s *Sequencer) Version() int { return s.version }

// Core returns the core the sequencer serves.
func (s *Sequencer) Core() board.Core { return s.core }

// DMASequencer issues the coherence requests of a DMA port.
type DMASequencer struct {
	naming.NamedBase

	version int
	inPort  board.Port
}

// NewDMASequencer creates a sequencer attached to a DMA port.
func NewDMASequencer(name string, version int, inPort board.Port) *DMASequencer {
	return &DMASequencer{
		NamedBase: naming.MakeNamedBase(name),
		version:   version,
		inPort:    inPort,
	}
}

// Version returns the sequencer number.
func (s *DMASequencer) Version() int { return s.version }

// InPort returns the DMA port the sequencer serves.
func (s *DMASequencer) InPort() board.Port { return s.inPort }

// PortProxy serves functional-only accesses, such as loading binaries,
// without going through the timing model.
type PortProxy struct {
	naming.NamedBase

	inPort *board.SimplePort
}

// NewPortProxy creates a proxy and its in port.
func NewPortProxy(name string) *PortProxy {
	return &PortProxy{
		NamedBase: naming.MakeNamedBase(name),
		inPort:    board.NewSimplePort(naming.BuildName(name, "InPort")),
	}
}

// InPort returns the port the board's system port connects to.
func (p *PortProxy) InPort() board.Port { return p.inPort }
