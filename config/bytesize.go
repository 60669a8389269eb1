package config

import (
	"github.com/sarchlab/octopi/mem"
	"gopkg.in/yaml.v3"
)

// ByteSize is a size that is written as "32KiB" or "16GiB" in configuration
// files. Plain integers are bytes.
type ByteSize uint64

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *ByteSize) UnmarshalYAML(value *yaml.Node) error {
	var text string
	if err := value.Decode(&text); err != nil {
		return err
	}

	size, err := mem.ParseByteSize(text)
	if err != nil {
		return err
	}

	*s = ByteSize(size)

	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (s ByteSize) MarshalYAML() (any, error) {
	return s.String(), nil
}

func (s ByteSize) String() string {
	return mem.FormatByteSize(uint64(s))
}
