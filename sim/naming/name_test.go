package naming

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Name", func() {
	It("should parse name", func() {
		name, err := Parse("Octopi.CoreComplex[0].L3Cache")

		Expect(err).NotTo(HaveOccurred())
		Expect(name.Tokens).To(HaveLen(3))
		Expect(name.Tokens[1].ElemName).To(Equal("CoreComplex"))
		Expect(name.Tokens[1].Index).To(Equal([]int{0}))
		Expect(name.Tokens[2].Index).To(BeEmpty())
	})

	It("should parse multi-dimensional index", func() {
		name, err := Parse("Mesh[0][1].Router[2][3]")

		Expect(err).NotTo(HaveOccurred())
		Expect(name.Tokens[0].Index).To(Equal([]int{0, 1}))
		Expect(name.Tokens[1].Index).To(Equal([]int{2, 3}))
		Expect(name.String()).To(Equal("Mesh[0][1].Router[2][3]"))
	})

	It("should find the parent", func() {
		name, _ := Parse("Octopi.DirectoryRouter[1]")

		Expect(name.Parent().String()).To(Equal("Octopi"))
		Expect(name.Parent().Parent().Tokens).To(BeEmpty())
	})

	DescribeTable("invalid names",
		func(s string) {
			Expect(Validate(s)).To(HaveOccurred())
			Expect(func() { NameMustBeValid(s) }).To(Panic())
		},
		Entry("empty", ""),
		Entry("underscore", "Dir_0"),
		Entry("dash", "Dir-0"),
		Entry("lower case", "dir"),
		Entry("open bracket", "Dir[0"),
		Entry("close bracket", "Dir0]"),
		Entry("empty element", "Octopi..Dir"),
		Entry("trailing dot", "Octopi.Dir."),
		Entry("non-integer index", "Dir[a]"),
	)

	It("should accept valid names", func() {
		Expect(Validate("Octopi.CoreComplex[3].Cluster[7].L1Cache")).
			To(Succeed())
	})

	It("should build names", func() {
		Expect(BuildName("", "Octopi")).To(Equal("Octopi"))
		Expect(BuildName("Octopi", "CrossComplexRouter")).
			To(Equal("Octopi.CrossComplexRouter"))
		Expect(BuildNameWithIndex("Octopi", "Directory", 2)).
			To(Equal("Octopi.Directory[2]"))
		Expect(BuildNameWithMultiDimensionalIndex("Net", "Buf", []int{1, 2})).
			To(Equal("Net.Buf[1][2]"))
	})

	It("should embed a valid name", func() {
		b := MakeNamedBase("Octopi.Directory[0]")

		Expect(b.Name()).To(Equal("Octopi.Directory[0]"))
		Expect(func() { MakeNamedBase("octopi") }).To(Panic())
	})
})
