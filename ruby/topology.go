package ruby

// Topology is the frozen result of a network whose buffers are configured.
// It is what the simulation engine consumes.
type Topology struct {
	name        string
	numVNets    int
	hub         *Router
	routers     []*Router
	extLinks    []*ExtLink
	intLinks    []*IntLink
	controllers []Controller
	buffers     []*MessageBuffer
}

func newTopology(n *Network, buffers []*MessageBuffer) *Topology {
	return &Topology{
		name:        n.Name(),
		numVNets:    n.numVNets,
		hub:         n.hub,
		routers:     append([]*Router(nil), n.routers...),
		extLinks:    append([]*ExtLink(nil), n.extLinks...),
		intLinks:    append([]*IntLink(nil), n.intLinks...),
		controllers: append([]Controller(nil), n.controllers...),
		buffers:     buffers,
	}
}

// Name returns the name of the network.
func (t *Topology) Name() string {
	return t.name
}

// NumVirtualNetworks returns the number of virtual networks.
func (t *Topology) NumVirtualNetworks() int {
	return t.numVNets
}

// Hub returns the cross-complex router.
func (t *Topology) Hub() *Router {
	return t.hub
}

// Routers returns the routers ordered by ID.
func (t *Topology) Routers() []*Router {
	return append([]*Router(nil), t.routers...)
}

// RoutersOfKind returns the routers of a kind ordered by ID.
func (t *Topology) RoutersOfKind(kind RouterKind) []*Router {
	var routers []*Router

	for _, r := range t.routers {
		if r.kind == kind {
			routers = append(routers, r)
		}
	}

	return routers
}

// ExtLinks returns the external links ordered by ID.
func (t *Topology) ExtLinks() []*ExtLink {
	return append([]*ExtLink(nil), t.extLinks...)
}

// IntLinks returns the internal links ordered by ID.
func (t *Topology) IntLinks() []*IntLink {
	return append([]*IntLink(nil), t.intLinks...)
}

// IntLinksOf returns the internal links that start or end at the router.
func (t *Topology) IntLinksOf(r *Router) []*IntLink {
	var links []*IntLink

	for _, l := range t.intLinks {
		if l.src == r || l.dst == r {
			links = append(links, l)
		}
	}

	return links
}

// Controllers returns the controllers in registration order.
func (t *Topology) Controllers() []Controller {
	return append([]Controller(nil), t.controllers...)
}

// Buffers returns the message buffers.
func (t *Topology) Buffers() []*MessageBuffer {
	return append([]*MessageBuffer(nil), t.buffers...)
}

// FindRouter returns the router with the given name, or nil.
func (t *Topology) FindRouter(name string) *Router {
	for _, r := range t.routers {
		if r.Name() == name {
			return r
		}
	}

	return nil
}

// FindController returns the controller with the given name, or nil.
func (t *Topology) FindController(name string) Controller {
	for _, c := range t.controllers {
		if c.Name() == name {
			return c
		}
	}

	return nil
}
