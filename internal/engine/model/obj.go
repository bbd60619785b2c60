package model

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/g3n/engine/loader/obj"

	"github.com/Faultbox/softrast/internal/engine/color"
	"github.com/Faultbox/softrast/pkg/math"
)

// OBJ format errors.
var (
	ErrInvalidOBJ     = errors.New("invalid OBJ data")
	ErrOBJIndexRange  = errors.New("OBJ index out of range")
	ErrOBJNoTriangles = errors.New("OBJ contains no faces")
)

// LoadOBJ reads a Wavefront OBJ file into a triangulated mesh.
// A material library with the same base name (ship.obj, ship.mtl) is read
// when present and its diffuse colors become vertex colors.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening model: %w", err)
	}
	defer f.Close()

	var mtl io.Reader
	mtlPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".mtl"
	if mf, err := os.Open(mtlPath); err == nil {
		defer mf.Close()
		mtl = mf
	}

	m, err := ParseOBJWithMaterials(f, mtl)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	m.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return m, nil
}

// ParseOBJ parses OBJ text without a material library.
func ParseOBJ(r io.Reader) (*Mesh, error) {
	return ParseOBJWithMaterials(r, nil)
}

// ParseOBJWithMaterials parses OBJ text and an optional MTL library.
// Polygons are split into triangle fans, so the vertex order of every face is
// preserved. Faces without normals get the face normal. Faces whose usemtl
// names a material get its Kd color as the vertex color.
func ParseOBJWithMaterials(r, mtl io.Reader) (*Mesh, error) {
	colored := mtl != nil
	if mtl == nil {
		mtl = strings.NewReader("")
	}

	// Faces ahead of the first "o" line still need an object to land in.
	src := io.MultiReader(strings.NewReader("o mesh\n"), r)
	dec, err := obj.DecodeReader(src, mtl)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOBJ, err)
	}

	mesh, err := flattenOBJ(dec, colored)
	if err != nil {
		return nil, err
	}
	if len(mesh.Vertices) == 0 {
		return nil, ErrOBJNoTriangles
	}
	mesh.computeBounds()
	return mesh, nil
}

// flattenOBJ expands the decoder's indexed faces into a flat triangle list.
func flattenOBJ(dec *obj.Decoder, colored bool) (*Mesh, error) {
	nv := len(dec.Vertices) / 3
	nvt := len(dec.Uvs) / 2
	nvn := len(dec.Normals) / 3

	mesh := &Mesh{}
	for _, o := range dec.Objects {
		for fi, face := range o.Faces {
			if len(face.Vertices) < 3 {
				return nil, fmt.Errorf("object %q face %d: face needs 3 vertices: %w", o.Name, fi+1, ErrInvalidOBJ)
			}
			for _, vi := range face.Vertices {
				if vi < 0 || vi >= nv {
					return nil, fmt.Errorf("object %q face %d: vertex %d with %d vertices: %w",
						o.Name, fi+1, vi+1, nv, ErrOBJIndexRange)
				}
			}

			c, hasColor := color.White, false
			if colored && face.Material != "" {
				if mat, ok := dec.Materials[face.Material]; ok && mat != nil {
					c = color.Color{R: mat.Diffuse.R, G: mat.Diffuse.G, B: mat.Diffuse.B}
					hasColor = true
				}
			}

			for i := 1; i+1 < len(face.Vertices); i++ {
				corners := [3]int{0, i, i + 1}
				n := faceNormal(
					vec3At(dec.Vertices, face.Vertices[0]),
					vec3At(dec.Vertices, face.Vertices[i]),
					vec3At(dec.Vertices, face.Vertices[i+1]),
				)
				for _, k := range corners {
					v := Vertex{
						Position: vec3At(dec.Vertices, face.Vertices[k]),
						Normal:   n,
						Color:    c,
						HasColor: hasColor,
					}
					// Absent normal and uv references decode as negative indices.
					if k < len(face.Normals) {
						if j := face.Normals[k]; j >= 0 && j < nvn {
							v.Normal = vec3At(dec.Normals, j).Normalize()
						}
					}
					if k < len(face.Uvs) {
						if j := face.Uvs[k]; j >= 0 && j < nvt {
							v.TexCoord = math.Vec2{X: dec.Uvs[j*2], Y: dec.Uvs[j*2+1]}
						}
					}
					mesh.Vertices = append(mesh.Vertices, v)
				}
			}
		}
	}
	return mesh, nil
}

func vec3At(a []float32, i int) math.Vec3 {
	return math.Vec3{X: a[i*3], Y: a[i*3+1], Z: a[i*3+2]}
}
