package ruby

import "github.com/sarchlab/octopi/datarecording"

type routerEntry struct {
	Topology string
	ID       int
	Name     string
	Kind     string
	Latency  int
}

type extLinkEntry struct {
	Topology   string
	ID         int
	Controller string
	Router     string
	Latency    int
	NumVCs     int
}

type intLinkEntry struct {
	Topology       string
	ID             int
	Src            string
	Dst            string
	Directionality string
	Latency        int
	NumVCs         int
}

type controllerEntry struct {
	Topology string
	Name     string
	Type     string
	Version  int
}

type bufferEntry struct {
	Topology string
	Name     string
	Router   string
	VNet     int
	Capacity int
}

// Record writes the routers, links, controllers, and buffers of the topology.
// Every row carries the name of the topology, so that several topologies can
// be recorded into the same tables.
func (t *Topology) Record(r datarecording.DataRecorder) {
	t.recordRouters(r)
	t.recordExtLinks(r)
	t.recordIntLinks(r)
	t.recordControllers(r)
	t.recordBuffers(r)

	r.Flush()
}

func (t *Topology) recordRouters(r datarecording.DataRecorder) {
	datarecording.EnsureTable(r, "routers", routerEntry{})

	for _, router := range t.routers {
		r.InsertData("routers", routerEntry{
			Topology: t.name,
			ID:       router.ID(),
			Name:     router.Name(),
			Kind:     router.Kind().String(),
			Latency:  router.Latency(),
		})
	}
}

func (t *Topology) recordExtLinks(r datarecording.DataRecorder) {
	datarecording.EnsureTable(r, "ext_links", extLinkEntry{})

	for _, l := range t.extLinks {
		r.InsertData("ext_links", extLinkEntry{
			Topology:   t.name,
			ID:         l.ID(),
			Controller: l.ExtNode().Name(),
			Router:     l.IntNode().Name(),
			Latency:    l.Params().Latency,
			NumVCs:     l.NumVirtualChannels(),
		})
	}
}

func (t *Topology) recordIntLinks(r datarecording.DataRecorder) {
	datarecording.EnsureTable(r, "int_links", intLinkEntry{})

	for _, l := range t.intLinks {
		r.InsertData("int_links", intLinkEntry{
			Topology:       t.name,
			ID:             l.ID(),
			Src:            l.Src().Name(),
			Dst:            l.Dst().Name(),
			Directionality: l.Directionality().String(),
			Latency:        l.Params().Latency,
			NumVCs:         l.NumVirtualChannels(),
		})
	}
}

func (t *Topology) recordControllers(r datarecording.DataRecorder) {
	datarecording.EnsureTable(r, "controllers", controllerEntry{})

	for _, c := range t.controllers {
		r.InsertData("controllers", controllerEntry{
			Topology: t.name,
			Name:     c.Name(),
			Type:     c.Type(),
			Version:  c.Version(),
		})
	}
}

func (t *Topology) recordBuffers(r datarecording.DataRecorder) {
	datarecording.EnsureTable(r, "buffers", bufferEntry{})

	for _, b := range t.buffers {
		r.InsertData("buffers", bufferEntry{
			Topology: t.name,
			Name:     b.Name(),
			Router:   b.Router.Name(),
			VNet:     b.VNet,
			Capacity: b.Capacity,
		})
	}
}
