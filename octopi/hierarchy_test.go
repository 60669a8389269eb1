package octopi

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/octopi/board"
	"github.com/sarchlab/octopi/coherence"
	"github.com/sarchlab/octopi/mem"
	"github.com/sarchlab/octopi/ruby"
	"github.com/sarchlab/octopi/sim/hooking"
	"go.uber.org/mock/gomock"
)

func buildBoard(numCores, numChannels, numDMA int) *board.SimpleBoard {
	b, err := board.MakeBuilder().
		WithNumCores(numCores).
		WithMemory(16*mem.GB, numChannels, 256).
		WithNumDMAPorts(numDMA).
		Build("Board")
	Expect(err).NotTo(HaveOccurred())

	return b
}

var _ = Describe("Hierarchy", func() {
	var (
		mockCtrl *gomock.Controller
		h        *Hierarchy
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		h = MakeBuilder().
			WithNumCoreComplexes(4).
			Build("Octopi")
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should compose the interconnect and the sizing", func() {
		Expect(h.RouterLatency).To(Equal(1))
		Expect(h.Link.VCsPerVNet).To(Equal(4))
		Expect(h.L1D.DataAccessLatency).To(Equal(5))
		Expect(h.L2.DataAccessLatency).To(Equal(12))
		Expect(h.L3.DataAccessLatency).To(Equal(46))
		Expect(h.NumCoreComplexes()).To(Equal(4))
		Expect(h.ActiveProtocol()).To(Equal(coherence.MESIThreeLevel))
	})

	Context("with 32 cores, 4 core complexes, and 2 memory ports", func() {
		var (
			b *board.SimpleBoard
			f *Fabric
		)

		BeforeEach(func() {
			var err error
			b = buildBoard(32, 2, 0)

			f, err = h.IncorporateCache(b)

			Expect(err).NotTo(HaveOccurred())
		})

		It("should create one directory and one router per memory port", func() {
			Expect(f.Directories()).To(HaveLen(2))
			Expect(f.Topology().RoutersOfKind(ruby.DirectoryRouter)).
				To(HaveLen(2))

			for i, d := range f.Directories() {
				Expect(d.Version()).To(Equal(i))
				Expect(d.MemPort()).To(BeIdenticalTo(b.MemPorts()[i].Port))
				Expect(d.AddrRange()).To(Equal(b.MemPorts()[i].Range))
				Expect(d.Router().Kind()).To(Equal(ruby.DirectoryRouter))
				Expect(d.CacheLineSize()).To(Equal(64))
			}
		})

		It("should pair every directory router with the hub", func() {
			Expect(f.DirectoryIntLinks()).To(HaveLen(4))

			hub := f.CrossComplexRouter()
			for _, d := range f.Directories() {
				links := f.Topology().IntLinksOf(d.Router())
				Expect(links).To(HaveLen(2))
				Expect(links[0].Reverse()).To(BeIdenticalTo(links[1]))
				Expect([]*ruby.Router{links[0].Src(), links[0].Dst()}).
					To(ContainElement(hub))
			}
		})

		It("should give every directory exactly one external link", func() {
			for _, d := range f.Directories() {
				count := 0
				for _, l := range f.ExtLinks() {
					if l.ExtNode() == ruby.Controller(d) {
						count++
						Expect(l.IntNode()).To(BeIdenticalTo(d.Router()))
					}
				}
				Expect(count).To(Equal(1))
			}
		})

		It("should count sequencers and virtual networks", func() {
			Expect(f.NumSequencers()).To(Equal(32))
			Expect(f.NumVirtualNetworks()).To(Equal(3))
			Expect(f.Protocol()).To(Equal(coherence.MESIThreeLevel))
		})

		It("should build a star network", func() {
			Expect(f.Routers()).To(HaveLen(7))
			Expect(f.Routers()[0]).To(BeIdenticalTo(f.CrossComplexRouter()))
			Expect(f.CrossComplexRouter().Name()).
				To(Equal("Octopi.Network.CrossComplexRouter"))
			Expect(f.IntLinks()).To(HaveLen(12))
			Expect(f.ExtLinks()).To(HaveLen(70))

			for _, l := range f.IntLinks() {
				Expect(l.Src() == f.CrossComplexRouter() ||
					l.Dst() == f.CrossComplexRouter()).To(BeTrue())
				Expect(l.NumVirtualChannels()).To(Equal(12))
			}
		})

		It("should allocate buffers for every link and virtual network", func() {
			numBuffers := (len(f.IntLinks()) + 2*len(f.ExtLinks())) * 3

			Expect(f.Topology().Buffers()).To(HaveLen(numBuffers))
		})

		It("should split the cores into core complexes", func() {
			ccs := f.CoreComplexes()

			Expect(ccs).To(HaveLen(4))
			for i, cc := range ccs {
				Expect(cc.Index()).To(Equal(i))
				Expect(cc.HomeMemPort()).To(Equal(i % 2))
				Expect(cc.Cores()).To(Equal(b.Cores()[i*8 : (i+1)*8]))
				Expect(cc.Router().Kind()).To(Equal(ruby.CoreComplexRouter))
				Expect(cc.L3().Version()).To(Equal(i))
				Expect(cc.L3().Spec().DataAccessLatency).To(Equal(46))
				Expect(cc.Network().Frozen()).To(BeTrue())
			}
		})

		It("should number private caches and sequencers by core", func() {
			cluster := f.CoreComplexes()[1].Clusters()[2]

			Expect(cluster.Core.CoreID()).To(Equal(10))
			Expect(cluster.L1.Version()).To(Equal(10))
			Expect(cluster.L2.Version()).To(Equal(10))
			Expect(cluster.L1.Sequencer().Version()).To(Equal(10))
			Expect(cluster.L1.Sequencer().Core()).To(BeIdenticalTo(cluster.Core))
			Expect(cluster.L1.DCache().DataAccessLatency).To(Equal(5))
			Expect(cluster.L1.ICache().Size).To(Equal(32 * mem.KB))
			Expect(cluster.L2.Spec().DataAccessLatency).To(Equal(12))
			Expect(cluster.L1.Name()).
				To(Equal("Octopi.Network.CoreComplex[1].L1Cache[2]"))
		})

		It("should keep message ports within the virtual networks", func() {
			check := func(ports []MessagePort) {
				Expect(ports).NotTo(BeEmpty())
				for _, p := range ports {
					Expect(p.VNet).To(BeNumerically("<", f.NumVirtualNetworks()))
				}
			}

			for _, d := range f.Directories() {
				check(d.MessagePorts())
			}

			for _, cc := range f.CoreComplexes() {
				check(cc.L3().MessagePorts())
				for _, cl := range cc.Clusters() {
					check(cl.L1.MessagePorts())
					check(cl.L2.MessagePorts())
				}
			}
		})

		It("should connect the system port", func() {
			Expect(f.SysPortProxy()).NotTo(BeNil())
			Expect(b.SystemPortPeer()).
				To(BeIdenticalTo(f.SysPortProxy().InPort()))
		})

		It("should find the home directory of an address", func() {
			d, found := f.DirectoryFor(0)
			Expect(found).To(BeTrue())
			Expect(d).To(BeIdenticalTo(f.Directories()[0]))

			d, found = f.DirectoryFor(256)
			Expect(found).To(BeTrue())
			Expect(d).To(BeIdenticalTo(f.Directories()[1]))

			_, found = f.DirectoryFor(16 * mem.GB)
			Expect(found).To(BeFalse())
		})

		It("should not accept new elements", func() {
			r := ruby.NewRouter("Octopi.Extra", ruby.DMARouter, 1)

			Expect(f.CoreComplexes()[0].Network().AddRouter(r)).
				To(MatchError(ruby.ErrTopologyFrozen))
		})
	})

	It("should add one sequencer per DMA port", func() {
		b := buildBoard(32, 2, 1)

		f, err := h.IncorporateCache(b)

		Expect(err).NotTo(HaveOccurred())
		Expect(f.NumSequencers()).To(Equal(33))
		Expect(f.DMAControllers()).To(HaveLen(1))

		dma := f.DMAControllers()[0]
		Expect(dma.Version()).To(Equal(0))
		Expect(dma.Type()).To(Equal(DMAType))
		Expect(dma.CacheLineSize()).To(Equal(64))
		Expect(dma.CacheLineSize()).To(Equal(f.Directories()[0].CacheLineSize()))
		Expect(dma.Sequencer().Version()).To(Equal(0))
		Expect(dma.Sequencer().InPort()).To(BeIdenticalTo(b.DMAPorts()[0]))
		Expect(dma.Router().Kind()).To(Equal(ruby.DMARouter))
		Expect(f.Topology().IntLinksOf(dma.Router())).To(HaveLen(2))
		Expect(f.Routers()).To(HaveLen(8))
	})

	It("should reject cores that cannot be split evenly", func() {
		_, err := h.IncorporateCache(buildBoard(33, 2, 0))

		Expect(err).To(MatchError(ErrUnevenPartition))
	})

	It("should reject a board without memory ports", func() {
		_, err := h.IncorporateCache(buildBoard(32, 0, 0))

		Expect(err).To(MatchError(ErrNoMemPorts))
	})

	It("should reject a board without memory ports before building", func() {
		b := NewMockBoard(mockCtrl)
		b.EXPECT().MemPorts().Return(nil)
		tracer := hooking.NewPosCountTracer()
		h.AcceptHook(tracer)

		created, err := h.Begin(b)

		Expect(err).To(MatchError(ErrNoMemPorts))
		Expect(created.Stage()).To(Equal(Uninitialized))
		Expect(tracer.GetPosCount(HookPosStageReached.Name)).
			To(Equal(uint64(0)))
	})

	It("should reject an invalid sizing", func() {
		h = MakeBuilder().WithL2Cache(300000, 8).Build("Octopi")

		_, err := h.IncorporateCache(buildBoard(8, 2, 0))

		Expect(err).To(MatchError(ErrInvalidSizing))
	})

	It("should reject zero core complexes", func() {
		h = MakeBuilder().WithNumCoreComplexes(0).Build("Octopi")
		b := NewMockBoard(mockCtrl)

		_, err := h.Begin(b)

		Expect(err).To(MatchError(ErrNoCoreComplexes))
	})

	It("should panic if the protocol is not given", func() {
		Expect(func() {
			MakeBuilder().
				WithActiveProtocol(coherence.UnknownProtocol).
				Build("Octopi")
		}).To(Panic())
	})

	It("should check the protocol before touching the board", func() {
		h = MakeBuilder().
			WithActiveProtocol(coherence.CHI).
			Build("Octopi")
		b := NewMockBoard(mockCtrl)

		_, err := h.IncorporateCache(b)

		Expect(err).To(MatchError(coherence.ErrProtocolMismatch))
	})

	It("should reject overlapping memory ports", func() {
		b := NewMockBoard(mockCtrl)
		memPorts := []board.MemPort{
			{
				Range: mem.AddrRange{Start: 0, End: 4096},
				Port:  board.NewSimplePort("Board.MemCtrl[0].Port"),
			},
			{
				Range: mem.AddrRange{Start: 2048, End: 8192},
				Port:  board.NewSimplePort("Board.MemCtrl[1].Port"),
			},
		}
		b.EXPECT().CacheLineSize().Return(64).AnyTimes()
		b.EXPECT().Cores().Return(buildCores(4)).AnyTimes()
		b.EXPECT().MemPorts().Return(memPorts).AnyTimes()

		_, err := MakeBuilder().
			WithNumCoreComplexes(2).
			Build("Octopi").
			IncorporateCache(b)

		Expect(err).To(MatchError(ErrOverlappingRanges))
	})

	It("should report a system port that cannot be connected", func() {
		b := NewMockBoard(mockCtrl)
		sysPortErr := errors.New("system port busy")
		realBoard := buildBoard(4, 1, 0)
		b.EXPECT().CacheLineSize().Return(64).AnyTimes()
		b.EXPECT().Cores().Return(realBoard.Cores()).AnyTimes()
		b.EXPECT().MemPorts().Return(realBoard.MemPorts()).AnyTimes()
		b.EXPECT().HasDMAPorts().Return(false)
		b.EXPECT().ConnectSystemPort(gomock.Any()).Return(sysPortErr)

		_, err := MakeBuilder().Build("Octopi").IncorporateCache(b)

		Expect(err).To(MatchError(sysPortErr))
	})

	Context("when driven stage by stage", func() {
		var b *board.SimpleBoard

		BeforeEach(func() {
			b = buildBoard(8, 2, 1)
			h = MakeBuilder().WithNumCoreComplexes(2).Build("Octopi")
		})

		It("should report the stage of the build", func() {
			created, err := h.Begin(b)
			Expect(err).NotTo(HaveOccurred())
			Expect(created.Stage()).To(Equal(NetworkCreated))

			assigned, err := created.AssignCoreComplexes()
			Expect(err).NotTo(HaveOccurred())
			Expect(assigned.Stage()).To(Equal(CoreComplexesAssigned))

			dirsWired, err := assigned.WireDirectories()
			Expect(err).NotTo(HaveOccurred())
			Expect(dirsWired.Stage()).To(Equal(DirectoriesWired))

			dmaWired, err := dirsWired.WireDMA()
			Expect(err).NotTo(HaveOccurred())
			Expect(dmaWired.Stage()).To(Equal(DMAWired))

			f, err := dmaWired.ConfigureBuffers()
			Expect(err).NotTo(HaveOccurred())
			Expect(f.NumSequencers()).To(Equal(9))
			Expect(dmaWired.Stage()).To(Equal(BuffersConfigured))
			Expect(created.Stage()).To(Equal(BuffersConfigured))
		})

		It("should not configure buffers twice", func() {
			created, _ := h.Begin(b)
			assigned, _ := created.AssignCoreComplexes()
			dirsWired, _ := assigned.WireDirectories()
			dmaWired, _ := dirsWired.WireDMA()

			_, err := dmaWired.ConfigureBuffers()
			Expect(err).NotTo(HaveOccurred())

			_, err = dmaWired.ConfigureBuffers()
			Expect(err).To(MatchError(ErrStageConsumed))
		})

		It("should not run a stage twice", func() {
			created, _ := h.Begin(b)

			_, err := created.AssignCoreComplexes()
			Expect(err).NotTo(HaveOccurred())

			_, err = created.AssignCoreComplexes()
			Expect(err).To(MatchError(ErrStageConsumed))
		})

		It("should reject a stage that was not begun", func() {
			_, err := NetworkCreatedStage{}.AssignCoreComplexes()

			Expect(err).To(MatchError(ErrStageConsumed))
			Expect(DMAWiredStage{}.Stage()).To(Equal(Uninitialized))
		})

		It("should abort the build after a failure", func() {
			b = buildBoard(9, 2, 0)
			created, err := h.Begin(b)
			Expect(err).NotTo(HaveOccurred())

			_, err = created.AssignCoreComplexes()
			Expect(err).To(MatchError(ErrUnevenPartition))
			Expect(created.Stage()).To(Equal(Aborted))

			_, err = created.AssignCoreComplexes()
			Expect(err).To(MatchError(ErrBuildAborted))
		})

		It("should build independent fabrics from one hierarchy", func() {
			f1, err := h.IncorporateCache(buildBoard(8, 2, 0))
			Expect(err).NotTo(HaveOccurred())

			f2, err := h.IncorporateCache(buildBoard(8, 2, 0))
			Expect(err).NotTo(HaveOccurred())

			Expect(f1.ID()).NotTo(Equal(f2.ID()))
			Expect(f1.Topology()).NotTo(BeIdenticalTo(f2.Topology()))
		})
	})
})

var _ = DescribeTable("Fabric shape",
	func(numComplexes, numMemPorts, numDMA int) {
		const numCores = 16

		f, err := MakeBuilder().
			WithNumCoreComplexes(numComplexes).
			Build("Octopi").
			IncorporateCache(buildBoard(numCores, numMemPorts, numDMA))
		Expect(err).NotTo(HaveOccurred())

		Expect(f.Directories()).To(HaveLen(numMemPorts))
		Expect(f.Topology().RoutersOfKind(ruby.DirectoryRouter)).
			To(HaveLen(numMemPorts))
		Expect(f.DirectoryIntLinks()).To(HaveLen(2 * numMemPorts))
		Expect(f.DMAControllers()).To(HaveLen(numDMA))
		Expect(f.NumSequencers()).To(Equal(numCores + numDMA))
		Expect(f.NumVirtualNetworks()).To(Equal(3))
		Expect(f.CoreComplexes()).To(HaveLen(numComplexes))
		Expect(f.Routers()).To(HaveLen(1 + numComplexes + numMemPorts + numDMA))
		Expect(f.IntLinks()).
			To(HaveLen(2 * (numComplexes + numMemPorts + numDMA)))

		for i, cc := range f.CoreComplexes() {
			Expect(cc.HomeMemPort()).To(Equal(i % numMemPorts))
		}

		for _, d := range f.Directories() {
			Expect(f.Topology().IntLinksOf(d.Router())).To(HaveLen(2))
		}
	},
	Entry("one complex on one port", 1, 1, 0),
	Entry("two complexes on one port with DMA", 2, 1, 1),
	Entry("four complexes on four ports", 4, 4, 0),
	Entry("eight complexes on two ports", 8, 2, 3),
	Entry("one complex on four ports with DMA", 1, 4, 3),
	Entry("two complexes on two ports", 2, 2, 1),
)

var _ = Describe("Stage", func() {
	It("should print its name", func() {
		Expect(BuffersConfigured.String()).To(Equal("BuffersConfigured"))
		Expect(Stage(42).String()).To(Equal("Stage(42)"))
	})
})

var _ = Describe("Hierarchy hooks", func() {
	It("should report every stage reached", func() {
		h := MakeBuilder().WithNumCoreComplexes(2).Build("Octopi")
		tracer := hooking.NewPosCountTracer()
		h.AcceptHook(tracer)

		_, err := h.IncorporateCache(buildBoard(8, 2, 0))

		Expect(err).NotTo(HaveOccurred())
		Expect(tracer.GetPosCount(HookPosStageReached.Name)).
			To(Equal(uint64(5)))
		Expect(tracer.LastItem(HookPosStageReached.Name)).
			To(Equal(BuffersConfigured))
		Expect(tracer.GetPosCount(HookPosBuildAborted.Name)).
			To(Equal(uint64(0)))
	})

	It("should report an aborted build", func() {
		h := MakeBuilder().WithNumCoreComplexes(3).Build("Octopi")
		tracer := hooking.NewPosCountTracer()
		h.AcceptHook(tracer)

		_, err := h.IncorporateCache(buildBoard(8, 2, 0))

		Expect(err).To(MatchError(ErrUnevenPartition))
		Expect(tracer.GetPosCount(HookPosBuildAborted.Name)).
			To(Equal(uint64(1)))
		Expect(tracer.LastItem(HookPosBuildAborted.Name)).
			To(MatchError(ErrUnevenPartition))
	})
})
