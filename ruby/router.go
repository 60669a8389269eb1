package ruby

import (
	"fmt"

	"github.com/sarchlab/octopi/sim/naming"
)

// RouterKind tells what a router connects.
type RouterKind int

// Router kinds.
const (
	CoreComplexRouter RouterKind = iota
	DirectoryRouter
	CrossComplexRouter
	DMARouter
)

func (k RouterKind) String() string {
	switch k {
	case CoreComplexRouter:
		return "CoreComplexRouter"
	case DirectoryRouter:
		return "DirectoryRouter"
	case CrossComplexRouter:
		return "CrossComplexRouter"
	case DMARouter:
		return "DMARouter"
	default:
		return fmt.Sprintf("RouterKind(%d)", int(k))
	}
}

// Router is a node of the interconnect. It holds no protocol state.
type Router struct {
	naming.NamedBase

	id      int
	kind    RouterKind
	latency int
	network *Network
}

// NewRouter creates a router. The router gets its ID when it is added to a
// network.
func NewRouter(name string, kind RouterKind, latency int) *Router {
	return &Router{
		NamedBase: naming.MakeNamedBase(name),
		id:        -1,
		kind:      kind,
		latency:   latency,
	}
}

// ID returns the position of the router in its network, or -1 if the router
// is not registered.
func (r *Router) ID() int {
	return r.id
}

// Kind returns the kind of the router.
func (r *Router) Kind() RouterKind {
	return r.kind
}

// Latency returns the number of cycles a message spends in the router.
func (r *Router) Latency() int {
	return r.latency
}
