package ruby

import "errors"

var (
	// ErrInvalidVirtualNetworks is returned when a network is created with
	// no virtual network, or a controller uses one that does not exist.
	ErrInvalidVirtualNetworks = errors.New("invalid virtual network")

	// ErrTopologyFrozen is returned when the topology is changed after its
	// buffers are configured.
	ErrTopologyFrozen = errors.New("topology is frozen after buffer setup")

	// ErrBuffersAlreadyConfigured is returned by a second SetupBuffers call.
	ErrBuffersAlreadyConfigured = errors.New("buffers already configured")

	// ErrIncompleteTopology is returned by SetupBuffers when some element is
	// not connected yet.
	ErrIncompleteTopology = errors.New("incomplete topology")

	// ErrPartialLinkPair is returned by SetupBuffers when a router is linked
	// with the cross-complex router in one direction only.
	ErrPartialLinkPair = errors.New("partial bidirectional link pair")

	// ErrDuplicateRouter is returned when a router is registered twice, or
	// a second cross-complex router is added.
	ErrDuplicateRouter = errors.New("duplicate router")

	// ErrUnknownRouter is returned when a link uses a router that is not
	// part of the network.
	ErrUnknownRouter = errors.New("router not registered")

	// ErrDuplicateController is returned when two controllers share a name.
	ErrDuplicateController = errors.New("duplicate controller")

	// ErrUnknownController is returned when a link uses a controller that is
	// not registered with the network.
	ErrUnknownController = errors.New("controller not registered")
)
