package mem

// AddressToOwnerMapper finds the index of the component that owns an
// address, for example the directory responsible for a cache line.
type AddressToOwnerMapper interface {
	Find(address uint64) (owner int, found bool)
}

// RangeOwnerMapper maps addresses by scanning a list of owned ranges.
type RangeOwnerMapper struct {
	Ranges []AddrRange
}

// NewRangeOwnerMapper creates a mapper where owner i owns ranges[i].
func NewRangeOwnerMapper(ranges []AddrRange) *RangeOwnerMapper {
	m := &RangeOwnerMapper{Ranges: make([]AddrRange, len(ranges))}
	copy(m.Ranges, ranges)

	return m
}

// Find returns the index of the first range containing the address.
func (m *RangeOwnerMapper) Find(address uint64) (int, bool) {
	for i, r := range m.Ranges {
		if r.Contains(address) {
			return i, true
		}
	}

	return 0, false
}
