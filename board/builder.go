package board

import (
	"github.com/sarchlab/octopi/mem"
	"github.com/sarchlab/octopi/sim/naming"
)

// Builder can build SimpleBoards.
type Builder struct {
	numCores         int
	memSize          uint64
	numMemChannels   int
	interleavingSize uint64
	numDMAPorts      int
	cacheLineSize    int
}

// MakeBuilder creates a builder with a 2-channel, 16GiB memory interleaved
// every 256 bytes.
func MakeBuilder() Builder {
	return Builder{
		numCores:         8,
		memSize:          16 * mem.GB,
		numMemChannels:   2,
		interleavingSize: 256,
		cacheLineSize:    64,
	}
}

// WithNumCores sets the number of cores.
func (b Builder) WithNumCores(n int) Builder {
	b.numCores = n
	return b
}

// WithMemory sets the memory size, the number of channels, and the
// interleaving size between channels.
func (b Builder) WithMemory(
	size uint64,
	numChannels int,
	interleavingSize uint64,
) Builder {
	b.memSize = size
	b.numMemChannels = numChannels
	b.interleavingSize = interleavingSize

	return b
}

// WithNumDMAPorts sets the number of DMA ports.
func (b Builder) WithNumDMAPorts(n int) Builder {
	b.numDMAPorts = n
	return b
}

// WithCacheLineSize sets the cache line size in bytes.
func (b Builder) WithCacheLineSize(size int) Builder {
	b.cacheLineSize = size
	return b
}

// Build creates the board. A board without memory channels can be built; it
// is up to the cache hierarchy to reject it.
func (b Builder) Build(name string) (*SimpleBoard, error) {
	b.cacheLineSizeMustBeValid()

	board := &SimpleBoard{
		NamedBase:     naming.MakeNamedBase(name),
		cacheLineSize: b.cacheLineSize,
	}

	for i := 0; i < b.numCores; i++ {
		board.cores = append(board.cores, &SimpleCore{
			NamedBase: naming.MakeNamedBase(
				naming.BuildNameWithIndex(name, "Core", i)),
			id: i,
		})
	}

	if b.numMemChannels > 0 {
		ranges, err := mem.MakeInterleavedRanges(
			0, b.memSize, b.numMemChannels, b.interleavingSize)
		if err != nil {
			return nil, err
		}

		for i, r := range ranges {
			board.memPorts = append(board.memPorts, MemPort{
				Range: r,
				Port: NewSimplePort(
					naming.BuildNameWithIndex(name, "MemCtrl", i) + ".Port"),
			})
		}
	}

	for i := 0; i < b.numDMAPorts; i++ {
		board.dmaPorts = append(board.dmaPorts, NewSimplePort(
			naming.BuildNameWithIndex(name, "DMA", i)+".Port"))
	}

	return board, nil
}

func (b Builder) cacheLineSizeMustBeValid() {
	if !mem.IsPowerOfTwo(uint64(b.cacheLineSize)) {
		panic("cache line size must be a power of two")
	}
}
