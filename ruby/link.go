package ruby

// LinkParams are the properties shared by the links of a network.
type LinkParams struct {
	Latency         int
	BandwidthFactor int
	VCsPerVNet      int
}

// DefaultLinkParams returns the link parameters of a simple network.
func DefaultLinkParams() LinkParams {
	return LinkParams{
		Latency:         1,
		BandwidthFactor: 16,
		VCsPerVNet:      4,
	}
}

// ExtLink connects a controller to a router.
type ExtLink struct {
	id     int
	ext    Controller
	router *Router
	params LinkParams
	numVCs int
}

// ID returns the position of the link among the external links.
func (l *ExtLink) ID() int { return l.id }

// ExtNode returns the controller side of the link.
func (l *ExtLink) ExtNode() Controller { return l.ext }

// IntNode returns the router side of the link.
func (l *ExtLink) IntNode() *Router { return l.router }

// Params returns the link parameters.
func (l *ExtLink) Params() LinkParams { return l.params }

// NumVirtualChannels returns the number of virtual channels of the link.
func (l *ExtLink) NumVirtualChannels() int { return l.numVCs }

// Directionality tells if an internal link is alone or half of a pair.
type Directionality int

// Directionalities.
const (
	Unidirectional Directionality = iota
	BidirectionalPair
)

func (d Directionality) String() string {
	if d == BidirectionalPair {
		return "BidirectionalPair"
	}

	return "Unidirectional"
}

// IntLink carries traffic from one router to another.
type IntLink struct {
	id      int
	src     *Router
	dst     *Router
	params  LinkParams
	numVCs  int
	reverse *IntLink
}

// ID returns the position of the link among the internal links.
func (l *IntLink) ID() int { return l.id }

// Src returns the router sending on the link.
func (l *IntLink) Src() *Router { return l.src }

// Dst returns the router receiving from the link.
func (l *IntLink) Dst() *Router { return l.dst }

// Params returns the link parameters.
func (l *IntLink) Params() LinkParams { return l.params }

// NumVirtualChannels returns the number of virtual channels of the link.
func (l *IntLink) NumVirtualChannels() int { return l.numVCs }

// Reverse returns the other half of a bidirectional pair, or nil.
func (l *IntLink) Reverse() *IntLink { return l.reverse }

// Directionality tells if the link is half of a bidirectional pair.
func (l *IntLink) Directionality() Directionality {
	if l.reverse != nil {
		return BidirectionalPair
	}

	return Unidirectional
}
