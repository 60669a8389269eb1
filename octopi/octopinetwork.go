package octopi

import (
	"fmt"

	"github.com/sarchlab/octopi/coherence"
	"github.com/sarchlab/octopi/ruby"
	"github.com/sarchlab/octopi/sim/naming"
)

// octopiNetwork is a star network. Every router other than the
// cross-complex router hangs off the hub with one bidirectional pair.
type octopiNetwork struct {
	*ruby.Network

	hub *ruby.Router
}

func newOctopiNetwork(
	name string,
	protocol coherence.Protocol,
	interconnect RubyInterconnect,
) (*octopiNetwork, error) {
	network, err := ruby.NewNetwork(
		naming.BuildName(name, "Network"),
		protocol.NumVirtualNetworks(),
		interconnect.Link,
	)
	if err != nil {
		return nil, err
	}

	network.WithBufferSize(interconnect.BufferSize)

	hub := ruby.NewRouter(naming.BuildName(network.Name(), "CrossComplexRouter"),
		ruby.CrossComplexRouter, interconnect.RouterLatency)
	if err := network.AddRouter(hub); err != nil {
		return nil, err
	}

	return &octopiNetwork{Network: network, hub: hub}, nil
}

// attachRouter registers a router together with its controllers and links it
// to the hub.
func (n *octopiNetwork) attachRouter(
	r *ruby.Router,
	ctrls ...ruby.Controller,
) error {
	if err := n.AddRouter(r); err != nil {
		return err
	}

	for _, c := range ctrls {
		if err := n.RegisterController(c); err != nil {
			return err
		}

		if _, err := n.AddExtLink(c, r); err != nil {
			return err
		}
	}

	return n.connectRouterToHub(r)
}

func (n *octopiNetwork) connectRouterToHub(r *ruby.Router) error {
	if _, _, err := n.AddBidirectionalLinks(r, n.hub); err != nil {
		return fmt.Errorf("connecting %s to the hub: %w", r.Name(), err)
	}

	return nil
}

func (n *octopiNetwork) incorporateCoreComplexes(ccs []*CoreComplex) error {
	for _, cc := range ccs {
		if err := n.attachRouter(cc.router, cc.controllers()...); err != nil {
			return err
		}
	}

	return nil
}
