package ruby

import "github.com/sarchlab/octopi/sim/naming"

// MessageBuffer queues the messages of one virtual network at a router input
// or output.
type MessageBuffer struct {
	naming.NamedBase

	Router   *Router
	VNet     int
	Capacity int
}

func (n *Network) allocateBuffers() []*MessageBuffer {
	buffers := make([]*MessageBuffer, 0,
		(len(n.intLinks)+2*len(n.extLinks))*n.numVNets)

	for _, l := range n.extLinks {
		buffers = append(buffers,
			n.linkBuffers(l.router, "ExtInBuffer", l.id)...)
		buffers = append(buffers,
			n.linkBuffers(l.router, "ExtOutBuffer", l.id)...)
	}

	for _, l := range n.intLinks {
		buffers = append(buffers, n.linkBuffers(l.dst, "IntInBuffer", l.id)...)
	}

	return buffers
}

func (n *Network) linkBuffers(
	r *Router,
	elemName string,
	linkID int,
) []*MessageBuffer {
	buffers := make([]*MessageBuffer, n.numVNets)

	for vnet := 0; vnet < n.numVNets; vnet++ {
		buffers[vnet] = &MessageBuffer{
			NamedBase: naming.MakeNamedBase(
				naming.BuildNameWithMultiDimensionalIndex(
					r.Name(), elemName, []int{linkID, vnet})),
			Router:   r,
			VNet:     vnet,
			Capacity: n.bufferSize,
		}
	}

	return buffers
}
