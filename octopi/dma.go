package octopi

import (
	"github.com/sarchlab/octopi/board"
	"github.com/sarchlab/octopi/ruby"
	"github.com/sarchlab/octopi/sim/naming"
)

// DMAController serves the requests of one DMA port of the board.
type DMAController struct {
	naming.NamedBase

	version       int
	cacheLineSize int
	sequencer     *ruby.DMASequencer
	ports         []MessagePort
	router        *ruby.Router
}

// Type returns "DMA".
func (c *DMAController) Type() string {
	return DMAType
}

// Version returns the order in which the controller was created.
func (c *DMAController) Version() int {
	return c.version
}

// CacheLineSize returns the line size, in bytes, that DMA requests are split
// into.
func (c *DMAController) CacheLineSize() int {
	return c.cacheLineSize
}

// Sequencer returns the DMA sequencer bound to the board's DMA port.
func (c *DMAController) Sequencer() *ruby.DMASequencer {
	return c.sequencer
}

// MessagePorts returns the network-facing message queues.
func (c *DMAController) MessagePorts() []MessagePort {
	out := make([]MessagePort, len(c.ports))
	copy(out, c.ports)

	return out
}

// Router returns the router dedicated to the controller.
func (c *DMAController) Router() *ruby.Router {
	return c.router
}

var dmaMessagePorts = []messagePortSpec{
	{"RequestToDir", vnetRequest, ToNetwork},
	{"ResponseFromDir", vnetResponse, FromNetwork},
}

// attachDMAControllers creates one controller per DMA port and hangs each of
// them off the hub through its own router.
func attachDMAControllers(
	n *octopiNetwork,
	dmaPorts []board.Port,
	cacheLineSize int,
	routerLatency int,
) ([]*DMAController, error) {
	ctrls := make([]*DMAController, 0, len(dmaPorts))

	for i, port := range dmaPorts {
		name := naming.BuildNameWithIndex(n.Name(), "DMAController", i)

		ports, err := buildMessagePorts(n.Network, name, dmaMessagePorts)
		if err != nil {
			return nil, err
		}

		seq := ruby.NewDMASequencer(naming.BuildName(name, "Sequencer"), i, port)
		router := ruby.NewRouter(
			naming.BuildNameWithIndex(n.Name(), "DMARouter", i),
			ruby.DMARouter, routerLatency)

		c := &DMAController{
			NamedBase:     naming.MakeNamedBase(name),
			version:       i,
			cacheLineSize: cacheLineSize,
			sequencer:     seq,
			ports:         ports,
			router:        router,
		}

		if err := n.attachRouter(c.router, c); err != nil {
			return nil, err
		}

		ctrls = append(ctrls, c)
	}

	return ctrls, nil
}
