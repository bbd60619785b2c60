package config

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Hex is a 0xRRGGBB color written as "0x333355" or "#333355" in YAML.
// Plain integers are accepted as well.
type Hex uint32

// String formats h as 0xRRGGBB.
func (h Hex) String() string {
	return fmt.Sprintf("0x%06X", uint32(h))
}

// ParseHex parses "0xRRGGBB", "#RRGGBB" or a decimal integer.
func ParseHex(s string) (Hex, error) {
	s = strings.TrimSpace(s)
	base := 0
	if rest, ok := strings.CutPrefix(s, "#"); ok {
		s, base = rest, 16
	}
	v, err := strconv.ParseUint(s, base, 32)
	if err != nil {
		return 0, fmt.Errorf("parsing color %q: %w", s, err)
	}
	if v > 0xFFFFFF {
		return 0, fmt.Errorf("color %q: %w", s, ErrColorRange)
	}
	return Hex(v), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (h *Hex) UnmarshalYAML(value *yaml.Node) error {
	v, err := ParseHex(value.Value)
	if err != nil {
		return err
	}
	*h = v
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (h Hex) MarshalYAML() (interface{}, error) {
	return h.String(), nil
}
