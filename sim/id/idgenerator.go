// Package id generates identifiers for fabric elements.
package id

import (
	"strconv"
	"sync/atomic"

	"github.com/rs/xid"
)

// Generator generates IDs.
type Generator interface {
	Generate() string
}

// NewSequentialGenerator returns a generator that yields "1", "2", ... so
// that IDs are stable across runs with the same input.
func NewSequentialGenerator() Generator {
	return &sequentialGenerator{}
}

// NewUniqueGenerator returns a generator that yields globally unique IDs.
func NewUniqueGenerator() Generator {
	return uniqueGenerator{}
}

type sequentialGenerator struct {
	nextID uint64
}

func (g *sequentialGenerator) Generate() string {
	idNumber := atomic.AddUint64(&g.nextID, 1)

	return strconv.FormatUint(idNumber, 10)
}

type uniqueGenerator struct{}

func (uniqueGenerator) Generate() string {
	return xid.New().String()
}
