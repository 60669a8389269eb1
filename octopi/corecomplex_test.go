package octopi

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/octopi/board"
)

func buildCores(n int) []board.Core {
	b, err := board.MakeBuilder().WithNumCores(n).Build("Board")
	Expect(err).NotTo(HaveOccurred())

	return b.Cores()
}

var _ = Describe("PartitionCores", func() {
	It("should split cores into contiguous groups", func() {
		cores := buildCores(32)

		groups, err := PartitionCores(cores, 4)

		Expect(err).NotTo(HaveOccurred())
		Expect(groups).To(HaveLen(4))
		for i, g := range groups {
			Expect(g).To(HaveLen(8))
			Expect(g[0].CoreID()).To(Equal(i * 8))
			Expect(g[7].CoreID()).To(Equal(i*8 + 7))
		}
	})

	It("should keep all cores in one complex", func() {
		groups, err := PartitionCores(buildCores(3), 1)

		Expect(err).NotTo(HaveOccurred())
		Expect(groups).To(HaveLen(1))
		Expect(groups[0]).To(HaveLen(3))
	})

	It("should reject an uneven split", func() {
		_, err := PartitionCores(buildCores(33), 4)

		Expect(err).To(MatchError(ErrUnevenPartition))
		Expect(err.Error()).To(ContainSubstring("33 cores into 4"))
	})

	It("should reject zero complexes", func() {
		_, err := PartitionCores(buildCores(8), 0)

		Expect(err).To(MatchError(ErrNoCoreComplexes))
	})

	It("should reject a board without cores", func() {
		_, err := PartitionCores(nil, 2)

		Expect(err).To(MatchError(ErrNoCores))
	})
})

var _ = Describe("ThreeLevelSizing", func() {
	It("should accept the default sizing", func() {
		Expect(DefaultThreeLevelSizing().Validate(64)).To(Succeed())
	})

	It("should count sets", func() {
		s := DefaultThreeLevelSizing()

		Expect(s.L1D.NumSets(64)).To(Equal(64))
		Expect(s.L2.NumSets(64)).To(Equal(1024))
		Expect(s.L3.NumSets(64)).To(Equal(32768))
	})

	DescribeTable("should reject caches without full sets",
		func(mutate func(s *ThreeLevelSizing), lineSize int) {
			s := DefaultThreeLevelSizing()
			mutate(&s)

			Expect(s.Validate(lineSize)).To(MatchError(ErrInvalidSizing))
		},
		Entry("partial set", func(s *ThreeLevelSizing) {
			s.L2.Size = 300000
		}, 64),
		Entry("zero ways", func(s *ThreeLevelSizing) {
			s.L1I.Assoc = 0
		}, 64),
		Entry("zero size", func(s *ThreeLevelSizing) {
			s.L3.Size = 0
		}, 64),
		Entry("negative latency", func(s *ThreeLevelSizing) {
			s.L1D.DataAccessLatency = -1
		}, 64),
		Entry("no cache line", func(s *ThreeLevelSizing) {}, 0),
	)
})
