package octopi

import (
	"fmt"

	"github.com/sarchlab/octopi/ruby"
	"github.com/sarchlab/octopi/sim/naming"
)

// Virtual networks of the three-level MESI protocol.
const (
	vnetRequest  = 0
	vnetResponse = 1
	vnetUnblock  = 2
)

// Direction tells if a message port sends into or receives from the network.
type Direction int

// Directions.
const (
	FromNetwork Direction = iota
	ToNetwork
)

// MessagePort is a controller's message queue on one virtual network.
type MessagePort struct {
	Name      string
	VNet      int
	Direction Direction
}

type messagePortSpec struct {
	elemName  string
	vnet      int
	direction Direction
}

func buildMessagePorts(
	network *ruby.Network,
	owner string,
	specs []messagePortSpec,
) ([]MessagePort, error) {
	ports := make([]MessagePort, len(specs))

	for i, s := range specs {
		if err := network.VirtualNetworkMustExist(s.vnet); err != nil {
			return nil, fmt.Errorf("%s: %w", owner, err)
		}

		ports[i] = MessagePort{
			Name:      naming.BuildName(owner, s.elemName),
			VNet:      s.vnet,
			Direction: s.direction,
		}
	}

	return ports, nil
}
