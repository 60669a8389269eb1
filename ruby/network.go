// Package ruby models the static structure of a coherence interconnect:
// routers, links, controllers, and the message buffers of every virtual
// network.
//
// A Network is mutable while the hierarchy wires it. SetupBuffers validates
// the graph, allocates the buffers, and freezes the network into a Topology.
package ruby

import (
	"fmt"

	"github.com/sarchlab/octopi/sim/naming"
	"github.com/sirupsen/logrus"
)

// Network collects the routers, links, and controllers of an interconnect
// until its buffers are configured.
type Network struct {
	naming.NamedBase

	numVNets   int
	params     LinkParams
	bufferSize int

	routers     []*Router
	hub         *Router
	extLinks    []*ExtLink
	intLinks    []*IntLink
	controllers []Controller
	ctrlIndex   map[string]int

	frozen bool
}

// NewNetwork creates a network with a fixed number of virtual networks.
func NewNetwork(
	name string,
	numVirtualNetworks int,
	params LinkParams,
) (*Network, error) {
	if numVirtualNetworks <= 0 {
		return nil, fmt.Errorf("%w: a network needs at least one, got %d",
			ErrInvalidVirtualNetworks, numVirtualNetworks)
	}

	if params.VCsPerVNet <= 0 {
		params.VCsPerVNet = 1
	}

	return &Network{
		NamedBase: naming.MakeNamedBase(name),
		numVNets:  numVirtualNetworks,
		params:    params,
		ctrlIndex: make(map[string]int),
	}, nil
}

// WithBufferSize sets the capacity of the message buffers. Zero means
// unlimited.
func (n *Network) WithBufferSize(size int) *Network {
	n.bufferSize = size
	return n
}

// NumVirtualNetworks returns the number of virtual networks.
func (n *Network) NumVirtualNetworks() int {
	return n.numVNets
}

// VirtualNetworkMustExist checks that a controller may use the virtual
// network.
func (n *Network) VirtualNetworkMustExist(vnet int) error {
	if vnet < 0 || vnet >= n.numVNets {
		return fmt.Errorf("%w: %d, network %s has %d",
			ErrInvalidVirtualNetworks, vnet, n.Name(), n.numVNets)
	}

	return nil
}

// LinkParams returns the parameters used for new links.
func (n *Network) LinkParams() LinkParams {
	return n.params
}

// Frozen tells if the buffers are configured.
func (n *Network) Frozen() bool {
	return n.frozen
}

// Hub returns the cross-complex router, or nil if none is registered.
func (n *Network) Hub() *Router {
	return n.hub
}

// NumRouters returns the number of registered routers.
func (n *Network) NumRouters() int {
	return len(n.routers)
}

// NumIntLinks returns the number of registered internal links.
func (n *Network) NumIntLinks() int {
	return len(n.intLinks)
}

// NumExtLinks returns the number of registered external links.
func (n *Network) NumExtLinks() int {
	return len(n.extLinks)
}

// AddRouter registers a router and assigns its ID.
func (n *Network) AddRouter(r *Router) error {
	if n.frozen {
		return fmt.Errorf("%w: cannot add router %s", ErrTopologyFrozen, r.Name())
	}

	if r.network != nil {
		return fmt.Errorf("%w: %s", ErrDuplicateRouter, r.Name())
	}

	if r.kind == CrossComplexRouter && n.hub != nil {
		return fmt.Errorf("%w: %s already is the cross-complex router, "+
			"cannot add %s", ErrDuplicateRouter, n.hub.Name(), r.Name())
	}

	r.id = len(n.routers)
	r.network = n
	n.routers = append(n.routers, r)

	if r.kind == CrossComplexRouter {
		n.hub = r
	}

	return nil
}

// RegisterController makes a controller part of the coherence state the
// network serves.
func (n *Network) RegisterController(c Controller) error {
	if n.frozen {
		return fmt.Errorf("%w: cannot register %s", ErrTopologyFrozen, c.Name())
	}

	if _, found := n.ctrlIndex[c.Name()]; found {
		return fmt.Errorf("%w: %s", ErrDuplicateController, c.Name())
	}

	n.ctrlIndex[c.Name()] = len(n.controllers)
	n.controllers = append(n.controllers, c)

	return nil
}

// AddExtLink connects a registered controller to a registered router.
func (n *Network) AddExtLink(c Controller, r *Router) (*ExtLink, error) {
	if n.frozen {
		return nil, fmt.Errorf("%w: cannot link %s", ErrTopologyFrozen, c.Name())
	}

	if _, found := n.ctrlIndex[c.Name()]; !found {
		return nil, fmt.Errorf("%w: %s", ErrUnknownController, c.Name())
	}

	if err := n.routerMustBeRegistered(r); err != nil {
		return nil, err
	}

	l := &ExtLink{
		id:     len(n.extLinks),
		ext:    c,
		router: r,
		params: n.params,
		numVCs: n.params.VCsPerVNet * n.numVNets,
	}
	n.extLinks = append(n.extLinks, l)

	return l, nil
}

// AddIntLink adds a unidirectional link between two registered routers.
func (n *Network) AddIntLink(src, dst *Router) (*IntLink, error) {
	if err := n.intLinkMustBeAllowed(src, dst); err != nil {
		return nil, err
	}

	l := n.newIntLink(src, dst)
	n.intLinks = append(n.intLinks, l)

	return l, nil
}

// AddBidirectionalLinks adds the links a→b and b→a. Either both are added or
// neither is.
func (n *Network) AddBidirectionalLinks(a, b *Router) (*IntLink, *IntLink, error) {
	if err := n.intLinkMustBeAllowed(a, b); err != nil {
		return nil, nil, err
	}

	forward := n.newIntLink(a, b)
	backward := n.newIntLink(b, a)
	backward.id++
	forward.reverse = backward
	backward.reverse = forward

	n.intLinks = append(n.intLinks, forward, backward)

	return forward, backward, nil
}

func (n *Network) newIntLink(src, dst *Router) *IntLink {
	return &IntLink{
		id:     len(n.intLinks),
		src:    src,
		dst:    dst,
		params: n.params,
		numVCs: n.params.VCsPerVNet * n.numVNets,
	}
}

func (n *Network) intLinkMustBeAllowed(src, dst *Router) error {
	if n.frozen {
		return fmt.Errorf("%w: cannot link %s and %s",
			ErrTopologyFrozen, src.Name(), dst.Name())
	}

	if err := n.routerMustBeRegistered(src); err != nil {
		return err
	}

	if err := n.routerMustBeRegistered(dst); err != nil {
		return err
	}

	if src == dst {
		return fmt.Errorf("%w: %s cannot link to itself",
			ErrIncompleteTopology, src.Name())
	}

	return nil
}

func (n *Network) routerMustBeRegistered(r *Router) error {
	if r == nil || r.network != n {
		name := "<nil>"
		if r != nil {
			name = r.Name()
		}

		return fmt.Errorf("%w: %s in network %s", ErrUnknownRouter, name, n.Name())
	}

	return nil
}

// SetupBuffers checks that the graph is complete, allocates the message
// buffers, and freezes the network. It can only succeed once.
func (n *Network) SetupBuffers() (*Topology, error) {
	if n.frozen {
		return nil, fmt.Errorf("%w: network %s", ErrBuffersAlreadyConfigured,
			n.Name())
	}

	if err := n.validate(); err != nil {
		return nil, err
	}

	buffers := n.allocateBuffers()
	n.frozen = true

	logrus.WithFields(logrus.Fields{
		"network":  n.Name(),
		"routers":  len(n.routers),
		"extLinks": len(n.extLinks),
		"intLinks": len(n.intLinks),
		"buffers":  len(buffers),
	}).Debug("buffers configured")

	return newTopology(n, buffers), nil
}

func (n *Network) validate() error {
	if n.hub == nil {
		return fmt.Errorf("%w: network %s has no cross-complex router",
			ErrIncompleteTopology, n.Name())
	}

	if err := n.controllersMustBeLinked(); err != nil {
		return err
	}

	if err := n.routersMustServeControllers(); err != nil {
		return err
	}

	return n.routersMustPairWithHub()
}

func (n *Network) controllersMustBeLinked() error {
	count := make(map[string]int, len(n.controllers))
	for _, l := range n.extLinks {
		count[l.ext.Name()]++
	}

	for _, c := range n.controllers {
		if count[c.Name()] != 1 {
			return fmt.Errorf("%w: controller %s has %d external links, want 1",
				ErrIncompleteTopology, c.Name(), count[c.Name()])
		}
	}

	return nil
}

func (n *Network) routersMustServeControllers() error {
	served := make(map[*Router]bool, len(n.routers))
	for _, l := range n.extLinks {
		served[l.router] = true
	}

	for _, r := range n.routers {
		if r != n.hub && !served[r] {
			return fmt.Errorf("%w: router %s has no controller",
				ErrIncompleteTopology, r.Name())
		}
	}

	return nil
}

func (n *Network) routersMustPairWithHub() error {
	toHub := make(map[*Router]int, len(n.routers))
	fromHub := make(map[*Router]int, len(n.routers))

	for _, l := range n.intLinks {
		switch {
		case l.dst == n.hub:
			toHub[l.src]++
		case l.src == n.hub:
			fromHub[l.dst]++
		}
	}

	for _, r := range n.routers {
		if r == n.hub {
			continue
		}

		up, down := toHub[r], fromHub[r]

		switch {
		case up == 1 && down == 1:
		case up == 0 && down == 0:
			return fmt.Errorf("%w: router %s is not linked with %s",
				ErrIncompleteTopology, r.Name(), n.hub.Name())
		case up != down:
			return fmt.Errorf("%w: router %s has %d links to and %d links "+
				"from %s", ErrPartialLinkPair, r.Name(), up, down, n.hub.Name())
		default:
			return fmt.Errorf("%w: router %s has %d link pairs with %s, want 1",
				ErrIncompleteTopology, r.Name(), up, n.hub.Name())
		}
	}

	return nil
}
