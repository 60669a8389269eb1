package octopi

import (
	"github.com/sarchlab/octopi/coherence"
	"github.com/sarchlab/octopi/datarecording"
	"github.com/sarchlab/octopi/mem"
	"github.com/sarchlab/octopi/ruby"
)

// Fabric is a fully wired cache hierarchy. It does not change after it is
// built.
type Fabric struct {
	id            string
	name          string
	protocol      coherence.Protocol
	sizing        ThreeLevelSizing
	cacheLineSize int

	topology       *ruby.Topology
	coreComplexes  []*CoreComplex
	directories    []*Directory
	dmaControllers []*DMAController
	numSequencers  int
	sysPortProxy   *ruby.PortProxy

	dirMapper mem.AddressToOwnerMapper
}

// ID returns a unique ID of the fabric.
func (f *Fabric) ID() string { return f.id }

// Name returns the name of the hierarchy that built the fabric.
func (f *Fabric) Name() string { return f.name }

// Protocol returns the coherence protocol of the fabric.
func (f *Fabric) Protocol() coherence.Protocol { return f.protocol }

// Sizing returns the cache sizing of the fabric.
func (f *Fabric) Sizing() ThreeLevelSizing { return f.sizing }

// CacheLineSize returns the block size of the fabric.
func (f *Fabric) CacheLineSize() int { return f.cacheLineSize }

// Topology returns the frozen network.
func (f *Fabric) Topology() *ruby.Topology { return f.topology }

// Routers returns all the routers, the cross-complex router first.
func (f *Fabric) Routers() []*ruby.Router { return f.topology.Routers() }

// ExtLinks returns all the controller-to-router links.
func (f *Fabric) ExtLinks() []*ruby.ExtLink { return f.topology.ExtLinks() }

// IntLinks returns all the router-to-router links.
func (f *Fabric) IntLinks() []*ruby.IntLink { return f.topology.IntLinks() }

// NumVirtualNetworks returns the number of virtual networks.
func (f *Fabric) NumVirtualNetworks() int {
	return f.topology.NumVirtualNetworks()
}

// NumSequencers returns the number of core and DMA sequencers.
func (f *Fabric) NumSequencers() int { return f.numSequencers }

// CrossComplexRouter returns the hub of the star network.
func (f *Fabric) CrossComplexRouter() *ruby.Router { return f.topology.Hub() }

// SysPortProxy returns the proxy connected to the board's system port.
func (f *Fabric) SysPortProxy() *ruby.PortProxy { return f.sysPortProxy }

// CoreComplexes returns the core complexes in index order.
func (f *Fabric) CoreComplexes() []*CoreComplex {
	return append([]*CoreComplex(nil), f.coreComplexes...)
}

// Directories returns the directories in memory-port order.
func (f *Fabric) Directories() []*Directory {
	return append([]*Directory(nil), f.directories...)
}

// DMAControllers returns the DMA controllers in creation order.
func (f *Fabric) DMAControllers() []*DMAController {
	return append([]*DMAController(nil), f.dmaControllers...)
}

// DirectoryIntLinks returns the internal links that start or end at a
// directory router.
func (f *Fabric) DirectoryIntLinks() []*ruby.IntLink {
	var links []*ruby.IntLink

	for _, l := range f.topology.IntLinks() {
		if l.Src().Kind() == ruby.DirectoryRouter ||
			l.Dst().Kind() == ruby.DirectoryRouter {
			links = append(links, l)
		}
	}

	return links
}

// DirectoryFor returns the home directory of an address.
func (f *Fabric) DirectoryFor(addr uint64) (*Directory, bool) {
	i, found := f.dirMapper.Find(addr)
	if !found {
		return nil, false
	}

	return f.directories[i], true
}

func newDirectoryMapper(dirs []*Directory) *mem.RangeOwnerMapper {
	ranges := make([]mem.AddrRange, len(dirs))
	for i, d := range dirs {
		ranges[i] = d.addrRange
	}

	return mem.NewRangeOwnerMapper(ranges)
}

type fabricEntry struct {
	ID                 string
	Name               string
	Protocol           string
	NumVirtualNetworks int
	NumSequencers      int
	NumCoreComplexes   int
	NumDirectories     int
	NumDMAControllers  int
	CacheLineSize      int
}

type cacheEntry struct {
	Fabric            string
	Name              string
	Type              string
	Version           int
	CoreComplex       int
	Size              uint64
	Assoc             int
	NumSets           int
	DataAccessLatency int
}

type sequencerEntry struct {
	Fabric  string
	Name    string
	Version int
	Port    string
}

type addrRangeEntry struct {
	Fabric    string
	Directory string
	Range     string
	MemPort   string
}

// Record writes the fabric into the recorder. Rows of the fabric-level tables
// carry the fabric ID, so several fabrics can share a recorder.
func (f *Fabric) Record(r datarecording.DataRecorder) {
	f.topology.Record(r)

	datarecording.EnsureTable(r, "fabric", fabricEntry{})
	r.InsertData("fabric", fabricEntry{
		ID:                 f.id,
		Name:               f.name,
		Protocol:           f.protocol.String(),
		NumVirtualNetworks: f.NumVirtualNetworks(),
		NumSequencers:      f.numSequencers,
		NumCoreComplexes:   len(f.coreComplexes),
		NumDirectories:     len(f.directories),
		NumDMAControllers:  len(f.dmaControllers),
		CacheLineSize:      f.cacheLineSize,
	})

	f.recordCaches(r)
	f.recordSequencers(r)
	f.recordAddrRanges(r)

	r.Flush()
}

func (f *Fabric) recordCaches(r datarecording.DataRecorder) {
	datarecording.EnsureTable(r, "caches", cacheEntry{})

	insert := func(c *cacheController, ccIndex int) {
		r.InsertData("caches", cacheEntry{
			Fabric:            f.id,
			Name:              c.Name(),
			Type:              c.Type(),
			Version:           c.Version(),
			CoreComplex:       ccIndex,
			Size:              c.spec.Size,
			Assoc:             c.spec.Assoc,
			NumSets:           c.spec.NumSets(f.cacheLineSize),
			DataAccessLatency: c.spec.DataAccessLatency,
		})
	}

	for _, cc := range f.coreComplexes {
		for _, cl := range cc.clusters {
			insert(&cl.L1.cacheController, cc.index)
			insert(&cl.L2.cacheController, cc.index)
		}

		insert(&cc.l3.cacheController, cc.index)
	}
}

func (f *Fabric) recordSequencers(r datarecording.DataRecorder) {
	datarecording.EnsureTable(r, "sequencers", sequencerEntry{})

	for _, cc := range f.coreComplexes {
		for _, s := range cc.Sequencers() {
			r.InsertData("sequencers", sequencerEntry{
				Fabric:  f.id,
				Name:    s.Name(),
				Version: s.Version(),
				Port:    s.Core().Name(),
			})
		}
	}

	for _, c := range f.dmaControllers {
		r.InsertData("sequencers", sequencerEntry{
			Fabric:  f.id,
			Name:    c.sequencer.Name(),
			Version: c.sequencer.Version(),
			Port:    c.sequencer.InPort().Name(),
		})
	}
}

func (f *Fabric) recordAddrRanges(r datarecording.DataRecorder) {
	datarecording.EnsureTable(r, "addr_ranges", addrRangeEntry{})

	for _, d := range f.directories {
		r.InsertData("addr_ranges", addrRangeEntry{
			Fabric:    f.id,
			Directory: d.Name(),
			Range:     d.addrRange.String(),
			MemPort:   d.memPort.Name(),
		})
	}
}
