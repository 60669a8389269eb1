package mem

import (
	"errors"
	"fmt"
)

// ErrInvalidRange is returned when an address range cannot be created.
var ErrInvalidRange = errors.New("invalid address range")

// AddrRange is the half-open range [Start, End). An interleaved range only
// covers the addresses whose interleave bits equal IntlvMatch.
type AddrRange struct {
	Start uint64
	End   uint64

	IntlvLowBit int
	IntlvBits   int
	IntlvMatch  uint64
}

// Interleaved tells if the range is interleaved with other ranges.
func (r AddrRange) Interleaved() bool {
	return r.IntlvBits > 0
}

// Size returns the number of bytes the range covers.
func (r AddrRange) Size() uint64 {
	return (r.End - r.Start) >> r.IntlvBits
}

// Contains tells if the address is part of the range.
func (r AddrRange) Contains(addr uint64) bool {
	if addr < r.Start || addr >= r.End {
		return false
	}

	if !r.Interleaved() {
		return true
	}

	mask := uint64(1)<<r.IntlvBits - 1

	return (addr>>r.IntlvLowBit)&mask == r.IntlvMatch
}

// Overlaps tells if any address can belong to both ranges. Two ranges that
// are interleaved the same way only overlap when they match the same slice.
func (r AddrRange) Overlaps(o AddrRange) bool {
	if r.Start >= o.End || o.Start >= r.End {
		return false
	}

	sameInterleaving := r.Interleaved() && o.Interleaved() &&
		r.IntlvBits == o.IntlvBits &&
		r.IntlvLowBit == o.IntlvLowBit

	if sameInterleaving {
		return r.IntlvMatch == o.IntlvMatch
	}

	return true
}

func (r AddrRange) String() string {
	if !r.Interleaved() {
		return fmt.Sprintf("[%#x, %#x)", r.Start, r.End)
	}

	return fmt.Sprintf("[%#x, %#x) intlv %d/%d@%d",
		r.Start, r.End, r.IntlvMatch, 1<<r.IntlvBits, r.IntlvLowBit)
}

// MakeInterleavedRanges splits [start, start+size) across numChannels
// channels that take turns every interleavingSize bytes.
func MakeInterleavedRanges(
	start, size uint64,
	numChannels int,
	interleavingSize uint64,
) ([]AddrRange, error) {
	if numChannels <= 0 || !IsPowerOfTwo(uint64(numChannels)) {
		return nil, fmt.Errorf("%w: %d channels is not a power of two",
			ErrInvalidRange, numChannels)
	}

	if size == 0 {
		return nil, fmt.Errorf("%w: size must not be zero", ErrInvalidRange)
	}

	if numChannels == 1 {
		return []AddrRange{{Start: start, End: start + size}}, nil
	}

	if !IsPowerOfTwo(interleavingSize) {
		return nil, fmt.Errorf("%w: interleaving size %d is not a power of two",
			ErrInvalidRange, interleavingSize)
	}

	stride := interleavingSize * uint64(numChannels)
	if size%stride != 0 {
		return nil, fmt.Errorf(
			"%w: size %d is not a multiple of %d channels x %d bytes",
			ErrInvalidRange, size, numChannels, interleavingSize)
	}

	ranges := make([]AddrRange, numChannels)
	for i := range ranges {
		ranges[i] = AddrRange{
			Start:       start,
			End:         start + size,
			IntlvLowBit: Log2(interleavingSize),
			IntlvBits:   Log2(uint64(numChannels)),
			IntlvMatch:  uint64(i),
		}
	}

	return ranges, nil
}
