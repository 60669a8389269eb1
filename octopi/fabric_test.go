package octopi

import (
	"database/sql"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/octopi/datarecording"
)

var _ = Describe("Fabric recording", func() {
	var (
		f  *Fabric
		db *sql.DB
	)

	BeforeEach(func() {
		var err error
		f, err = MakeBuilder().
			WithNumCoreComplexes(2).
			Build("Octopi").
			IncorporateCache(buildBoard(8, 2, 1))
		Expect(err).NotTo(HaveOccurred())

		db, err = sql.Open("sqlite3",
			filepath.Join(GinkgoT().TempDir(), "fabric.sqlite3"))
		Expect(err).NotTo(HaveOccurred())
	})

	count := func(table string) int {
		var n int
		err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n)
		Expect(err).NotTo(HaveOccurred())

		return n
	}

	It("should write the fabric and its elements", func() {
		recorder := datarecording.NewWithDB(db)

		f.Record(recorder)

		Expect(recorder.ListTables()).To(ContainElements(
			"routers", "ext_links", "int_links", "controllers", "buffers",
			"fabric", "caches", "sequencers", "addr_ranges"))
		Expect(count("fabric")).To(Equal(1))
		Expect(count("caches")).To(Equal(2 * (4*2 + 1)))
		Expect(count("sequencers")).To(Equal(9))
		Expect(count("addr_ranges")).To(Equal(2))
		Expect(count("routers")).To(Equal(len(f.Routers())))

		var protocol string
		var numSequencers int
		err := db.QueryRow("SELECT Protocol, NumSequencers FROM fabric").
			Scan(&protocol, &numSequencers)
		Expect(err).NotTo(HaveOccurred())
		Expect(protocol).To(Equal("MESI_Three_Level"))
		Expect(numSequencers).To(Equal(9))

		var numSets int
		err = db.QueryRow(
			"SELECT NumSets FROM caches WHERE Type = 'L3Cache' LIMIT 1").
			Scan(&numSets)
		Expect(err).NotTo(HaveOccurred())
		Expect(numSets).To(Equal(32768))

		Expect(recorder.Close()).To(Succeed())
	})

	It("should record several fabrics into one recorder", func() {
		other, err := MakeBuilder().
			WithNumCoreComplexes(1).
			Build("Other").
			IncorporateCache(buildBoard(4, 1, 0))
		Expect(err).NotTo(HaveOccurred())

		recorder := datarecording.NewWithDB(db)

		f.Record(recorder)
		Expect(func() { other.Record(recorder) }).NotTo(Panic())
		Expect(recorder.Close()).To(Succeed())

		Expect(count("fabric")).To(Equal(2))
		Expect(count("routers")).
			To(Equal(len(f.Routers()) + len(other.Routers())))
		Expect(count("sequencers")).To(Equal(9 + 4))
		Expect(count("addr_ranges")).To(Equal(2 + 1))

		var n int
		err = db.QueryRow("SELECT COUNT(*) FROM caches WHERE Fabric = ?",
			other.ID()).Scan(&n)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(2*4 + 1))

		err = db.QueryRow("SELECT COUNT(*) FROM routers WHERE Topology = ?",
			"Other.Network").Scan(&n)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(len(other.Routers())))
	})
})
