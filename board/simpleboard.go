package board

import (
	"errors"
	"fmt"

	"github.com/sarchlab/octopi/sim/naming"
)

// ErrSystemPortConnected is returned when the system port is connected twice.
var ErrSystemPortConnected = errors.New("system port already connected")

// SimplePort is a named port.
type SimplePort struct {
	naming.NamedBase
}

// NewSimplePort creates a port.
func NewSimplePort(name string) *SimplePort {
	return &SimplePort{NamedBase: naming.MakeNamedBase(name)}
}

// SimpleCore is a core that only has a name and an ID.
type SimpleCore struct {
	naming.NamedBase
	id int
}

// CoreID returns the index of the core in the processor.
func (c *SimpleCore) CoreID() int {
	return c.id
}

// SimpleBoard is a board assembled by Builder.
type SimpleBoard struct {
	naming.NamedBase

	cores         []Core
	memPorts      []MemPort
	dmaPorts      []Port
	cacheLineSize int
	systemPort    Port
}

// Cores returns the cores in order.
func (b *SimpleBoard) Cores() []Core {
	return b.cores
}

// MemPorts returns the memory ports.
func (b *SimpleBoard) MemPorts() []MemPort {
	return b.memPorts
}

// HasDMAPorts tells if the board has DMA ports.
func (b *SimpleBoard) HasDMAPorts() bool {
	return len(b.dmaPorts) > 0
}

// DMAPorts returns the DMA ports.
func (b *SimpleBoard) DMAPorts() []Port {
	return b.dmaPorts
}

// CacheLineSize returns the cache line size.
func (b *SimpleBoard) CacheLineSize() int {
	return b.cacheLineSize
}

// ConnectSystemPort records the port connected to the system port.
func (b *SimpleBoard) ConnectSystemPort(p Port) error {
	if b.systemPort != nil {
		return fmt.Errorf("%w: %s, cannot connect %s",
			ErrSystemPortConnected, b.systemPort.Name(), p.Name())
	}

	b.systemPort = p

	return nil
}

// SystemPortPeer returns the port connected to the system port, or nil.
func (b *SimpleBoard) SystemPortPeer() Port {
	return b.systemPort
}
