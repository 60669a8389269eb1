package octopi

import (
	"fmt"

	"github.com/sarchlab/octopi/board"
	"github.com/sarchlab/octopi/mem"
	"github.com/sarchlab/octopi/ruby"
	"github.com/sarchlab/octopi/sim/naming"
)

// Directory is the home of the addresses served by one memory port.
type Directory struct {
	naming.NamedBase

	version       int
	addrRange     mem.AddrRange
	memPort       board.Port
	cacheLineSize int
	ports         []MessagePort
	router        *ruby.Router
}

// Type returns "Directory".
func (d *Directory) Type() string {
	return DirectoryType
}

// Version returns the position of the directory's memory port on the board.
func (d *Directory) Version() int {
	return d.version
}

// AddrRange returns the addresses the directory is home for.
func (d *Directory) AddrRange() mem.AddrRange {
	return d.addrRange
}

// MemPort returns the memory port the directory forwards to.
func (d *Directory) MemPort() board.Port {
	return d.memPort
}

// CacheLineSize returns the block size the directory tracks.
func (d *Directory) CacheLineSize() int {
	return d.cacheLineSize
}

// MessagePorts returns the network-facing message queues.
func (d *Directory) MessagePorts() []MessagePort {
	out := make([]MessagePort, len(d.ports))
	copy(out, d.ports)

	return out
}

// Router returns the router dedicated to the directory.
func (d *Directory) Router() *ruby.Router {
	return d.router
}

var directoryMessagePorts = []messagePortSpec{
	{"RequestToDir", vnetRequest, FromNetwork},
	{"ResponseToDir", vnetResponse, FromNetwork},
	{"ResponseFromDir", vnetResponse, ToNetwork},
}

func memPortsMustNotOverlap(memPorts []board.MemPort) error {
	for i := range memPorts {
		for j := i + 1; j < len(memPorts); j++ {
			if memPorts[i].Range.Overlaps(memPorts[j].Range) {
				return fmt.Errorf("%w: %s and %s", ErrOverlappingRanges,
					memPorts[i].Range, memPorts[j].Range)
			}
		}
	}

	return nil
}

// createDirectories makes one directory per memory port and registers them
// with the network.
func createDirectories(
	n *octopiNetwork,
	memPorts []board.MemPort,
	cacheLineSize int,
) ([]*Directory, error) {
	if len(memPorts) == 0 {
		return nil, ErrNoMemPorts
	}

	if err := memPortsMustNotOverlap(memPorts); err != nil {
		return nil, err
	}

	dirs := make([]*Directory, 0, len(memPorts))

	for i, mp := range memPorts {
		name := naming.BuildNameWithIndex(n.Name(), "Directory", i)

		ports, err := buildMessagePorts(n.Network, name, directoryMessagePorts)
		if err != nil {
			return nil, err
		}

		d := &Directory{
			NamedBase:     naming.MakeNamedBase(name),
			version:       i,
			addrRange:     mp.Range,
			memPort:       mp.Port,
			cacheLineSize: cacheLineSize,
			ports:         ports,
		}

		if err := n.RegisterController(d); err != nil {
			return nil, err
		}

		dirs = append(dirs, d)
	}

	return dirs, nil
}

// createDirectoryRouters makes one router per directory, in directory order.
func createDirectoryRouters(
	n *octopiNetwork,
	dirs []*Directory,
	latency int,
) error {
	for i, d := range dirs {
		r := ruby.NewRouter(
			naming.BuildNameWithIndex(n.Name(), "DirectoryRouter", i),
			ruby.DirectoryRouter, latency)

		if err := n.AddRouter(r); err != nil {
			return err
		}

		d.router = r
	}

	return nil
}

// weaveDirectoryLinks links each directory to its router and each router to
// the hub.
func weaveDirectoryLinks(n *octopiNetwork, dirs []*Directory) error {
	for _, d := range dirs {
		if _, err := n.AddExtLink(d, d.router); err != nil {
			return err
		}
	}

	for _, d := range dirs {
		if err := n.connectRouterToHub(d.router); err != nil {
			return err
		}
	}

	return nil
}
