package adjacency

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTopology indicates a topology name or value outside the supported set.
var ErrUnknownTopology = errors.New("adjacency: unknown topology")

// Topology selects the neighbor-inclusion rule.
type Topology int

const (
	// Adjacent4 uses 4-directional connectivity: N, W, E, S.
	Adjacent4 Topology = iota
	// Adjacent8 uses 8-directional connectivity: N, W, E, S, NW, NE, SW, SE.
	Adjacent8
)

// String returns the configuration name of the topology.
func (t Topology) String() string {
	switch t {
	case Adjacent4:
		return "4-directional"
	case Adjacent8:
		return "8-directional"
	default:
		return fmt.Sprintf("Topology(%d)", int(t))
	}
}

// Valid reports whether t is one of the defined topologies.
func (t Topology) Valid() bool {
	return t == Adjacent4 || t == Adjacent8
}

// ParseTopology converts a configuration string into a Topology.
// Accepted spellings (case-insensitive):
//
//	"4-directional", "4", "adjacent4"
//	"8-directional", "8", "adjacent8"
func ParseTopology(s string) (Topology, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "4-directional", "4", "adjacent4":
		return Adjacent4, nil
	case "8-directional", "8", "adjacent8":
		return Adjacent8, nil
	default:
		return Adjacent4, fmt.Errorf("%w: %q", ErrUnknownTopology, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Topology) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTopology, int(t))
	}

	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, so a Topology can be
// decoded directly from YAML or JSON configuration.
func (t *Topology) UnmarshalText(text []byte) error {
	parsed, err := ParseTopology(string(text))
	if err != nil {
		return err
	}
	*t = parsed

	return nil
}
