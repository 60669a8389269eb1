// Package coherence identifies cache-coherence protocols and what each of
// them asks from the interconnect.
package coherence

import (
	"errors"
	"fmt"
	"strings"
)

// Protocol is a coherence protocol that a simulator binary can be built with.
type Protocol int

// Known protocols.
const (
	UnknownProtocol Protocol = iota
	MESITwoLevel
	MESIThreeLevel
	MOESIHammer
	CHI
)

var protocolNames = map[Protocol]string{
	MESITwoLevel:   "MESI_Two_Level",
	MESIThreeLevel: "MESI_Three_Level",
	MOESIHammer:    "MOESI_hammer",
	CHI:            "CHI",
}

// Virtual networks each protocol needs to keep its message classes from
// blocking each other.
var protocolVirtualNetworks = map[Protocol]int{
	MESITwoLevel:   3,
	MESIThreeLevel: 3,
	MOESIHammer:    6,
	CHI:            4,
}

// ErrUnknownProtocol is returned when a protocol name is not recognized.
var ErrUnknownProtocol = errors.New("unknown coherence protocol")

func (p Protocol) String() string {
	if name, ok := protocolNames[p]; ok {
		return name
	}

	return fmt.Sprintf("Protocol(%d)", int(p))
}

// NumVirtualNetworks returns the number of virtual networks the protocol
// requires.
func (p Protocol) NumVirtualNetworks() int {
	return protocolVirtualNetworks[p]
}

// ParseProtocol finds a protocol by name. The match ignores case.
func ParseProtocol(name string) (Protocol, error) {
	for p, n := range protocolNames {
		if strings.EqualFold(n, name) {
			return p, nil
		}
	}

	return UnknownProtocol, fmt.Errorf("%w: %q", ErrUnknownProtocol, name)
}

// MarshalText implements encoding.TextMarshaler.
func (p Protocol) MarshalText() ([]byte, error) {
	if _, ok := protocolNames[p]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownProtocol, int(p))
	}

	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Protocol) UnmarshalText(text []byte) error {
	parsed, err := ParseProtocol(string(text))
	if err != nil {
		return err
	}

	*p = parsed

	return nil
}
