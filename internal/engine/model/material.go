package model

import "fmt"

// Material tags the surface of a scene object. The fragment stage resolves it
// to a shading strategy once per object.
type Material uint8

// Materials used by the demo scenes.
const (
	MaterialHull  Material = iota // flat-lit spaceship hull
	MaterialRocky                 // lit rocky planet
	MaterialMoon                  // grey cratered moon
	MaterialSun                   // emissive star
	MaterialOcean                 // water world with land bands
	MaterialGas                   // banded gas giant
	MaterialIce                   // ice world with polar caps
	MaterialLava                  // glowing cracks on a dark crust
	MaterialRings                 // planetary ring
	MaterialCount
)

var materialNames = [...]string{
	MaterialHull:  "hull",
	MaterialRocky: "rocky",
	MaterialMoon:  "moon",
	MaterialSun:   "sun",
	MaterialOcean: "ocean",
	MaterialGas:   "gas",
	MaterialIce:   "ice",
	MaterialLava:  "lava",
	MaterialRings: "rings",
}

// String returns the material name.
func (m Material) String() string {
	if m < MaterialCount {
		return materialNames[m]
	}
	return fmt.Sprintf("Material(%d)", uint8(m))
}

// ParseMaterial looks a material up by name.
func ParseMaterial(name string) (Material, error) {
	for i, n := range materialNames {
		if n == name {
			return Material(i), nil
		}
	}
	return 0, fmt.Errorf("unknown material %q", name)
}

// MarshalText implements encoding.TextMarshaler for config files.
func (m Material) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for config files.
func (m *Material) UnmarshalText(b []byte) error {
	v, err := ParseMaterial(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
