// Package mem describes the memory side of a board: byte sizes and the
// address ranges that memory ports and directories own.
package mem

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Byte size units.
const (
	KB uint64 = 1 << 10
	MB uint64 = 1 << 20
	GB uint64 = 1 << 30
)

// ParseByteSize parses sizes such as "32KiB", "1MiB", or "16GiB". SI
// suffixes ("32KB") follow their decimal meaning.
func ParseByteSize(s string) (uint64, error) {
	size, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid byte size %q: %w", s, err)
	}

	return size, nil
}

// FormatByteSize renders a size with binary suffixes.
func FormatByteSize(size uint64) string {
	return humanize.IBytes(size)
}

// IsPowerOfTwo tells if n is a power of two.
func IsPowerOfTwo(n uint64) bool {
	return n != 0 && n&(n-1) == 0
}

// Log2 returns the base-2 logarithm of a power of two.
func Log2(n uint64) int {
	l := 0
	for n > 1 {
		n >>= 1
		l++
	}

	return l
}
