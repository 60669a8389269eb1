// Package board describes what a cache hierarchy needs to know about the
// machine it is plugged into.
package board

import (
	"github.com/sarchlab/octopi/mem"
	"github.com/sarchlab/octopi/sim/naming"
)

// Port is a connection point on the board.
type Port interface {
	naming.Named
}

// Core is a processor core. The board owns its cores; cache hierarchies only
// hold references.
type Core interface {
	naming.Named
	CoreID() int
}

// MemPort is a memory port together with the address range it serves.
type MemPort struct {
	Range mem.AddrRange
	Port  Port
}

// Board is the machine a cache hierarchy is incorporated into.
type Board interface {
	// Cores returns all the cores of the processor, in order.
	Cores() []Core

	// MemPorts returns the memory ports and their address ranges.
	MemPorts() []MemPort

	// HasDMAPorts tells if any device needs coherent DMA access.
	HasDMAPorts() bool

	// DMAPorts returns the ports of the DMA-capable devices.
	DMAPorts() []Port

	// CacheLineSize returns the cache line size in bytes.
	CacheLineSize() int

	// ConnectSystemPort connects the board's system port to a port that
	// serves functional-only accesses.
	ConnectSystemPort(p Port) error
}
