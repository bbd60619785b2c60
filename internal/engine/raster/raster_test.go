package raster

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/softrast/internal/engine/color"
	"github.com/Faultbox/softrast/internal/engine/model"
	"github.com/Faultbox/softrast/pkg/math"
)

func vtx(x, y, z float32) Vertex {
	return Vertex{Position: math.Vec4{x, y, z, 1}}
}

func TestBarycentric(t *testing.T) {
	a := math.Vec2{X: 0, Y: 0}
	b := math.Vec2{X: 1, Y: 0}
	c := math.Vec2{X: 0, Y: 1}

	tests := []struct {
		name string
		p    math.Vec2
		want [3]float32
	}{
		{"vertex 0", a, [3]float32{1, 0, 0}},
		{"vertex 1", b, [3]float32{0, 1, 0}},
		{"vertex 2", c, [3]float32{0, 0, 1}},
		{"centroid", math.Vec2{X: 1.0 / 3, Y: 1.0 / 3}, [3]float32{1.0 / 3, 1.0 / 3, 1.0 / 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w0, w1, w2, ok := Barycentric(a, b, c, tt.p)
			if !ok {
				t.Fatal("Barycentric reported a degenerate triangle")
			}
			got := [3]float32{w0, w1, w2}
			for i := range got {
				if gomath.Abs(float64(got[i]-tt.want[i])) > 1e-5 {
					t.Errorf("Barycentric(%v) = %v, want %v", tt.p, got, tt.want)
					break
				}
			}
		})
	}

	t.Run("outside", func(t *testing.T) {
		w0, w1, w2, _ := Barycentric(a, b, c, math.Vec2{X: -1, Y: -1})
		if w0 >= 0 && w1 >= 0 && w2 >= 0 {
			t.Error("point outside triangle should have a negative weight")
		}
	})

	t.Run("degenerate", func(t *testing.T) {
		if _, _, _, ok := Barycentric(a, b, math.Vec2{X: 2}, c); ok {
			t.Error("collinear triangle should not be ok")
		}
	})
}

func TestRightTriangleScenario(t *testing.T) {
	tri := Triangle{vtx(1, 1, 0.5), vtx(8, 1, 0.5), vtx(1, 8, 0.5)}
	frags := Fragments(tri, 10, 10, model.MaterialRocky)

	covered := make(map[[2]int]bool)
	for _, f := range frags {
		if f.Depth != 0.5 {
			t.Errorf("fragment (%d,%d) depth = %v, want 0.5", f.X, f.Y, f.Depth)
		}
		if f.Material != model.MaterialRocky {
			t.Errorf("fragment material = %v, want rocky", f.Material)
		}
		covered[[2]int{f.X, f.Y}] = true
	}

	// A pixel center (x+0.5, y+0.5) is inside iff x >= 1, y >= 1, x+y <= 8.
	want := 0
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			inside := x >= 1 && y >= 1 && x+y <= 8
			if inside {
				want++
			}
			if covered[[2]int{x, y}] != inside {
				t.Errorf("pixel (%d,%d) covered = %v, want %v", x, y, covered[[2]int{x, y}], inside)
			}
		}
	}
	if len(frags) != want {
		t.Errorf("fragment count = %d, want %d", len(frags), want)
	}
}

func TestWindingIndependent(t *testing.T) {
	ccw := Triangle{vtx(1, 1, 0), vtx(8, 1, 0), vtx(1, 8, 0)}
	cw := Triangle{vtx(1, 1, 0), vtx(1, 8, 0), vtx(8, 1, 0)}

	a := Fragments(ccw, 10, 10, 0)
	b := Fragments(cw, 10, 10, 0)
	if len(a) == 0 || len(a) != len(b) {
		t.Fatalf("winding changed coverage: %d vs %d fragments", len(a), len(b))
	}
	for i := range a {
		if a[i].X != b[i].X || a[i].Y != b[i].Y {
			t.Fatalf("fragment %d differs: (%d,%d) vs (%d,%d)", i, a[i].X, a[i].Y, b[i].X, b[i].Y)
		}
	}
}

func TestDegenerateTriangles(t *testing.T) {
	tests := []struct {
		name string
		tri  Triangle
	}{
		{"collinear", Triangle{vtx(0, 0, 0), vtx(5, 5, 0), vtx(9, 9, 0)}},
		{"coincident", Triangle{vtx(3, 3, 0), vtx(3, 3, 0), vtx(3, 3, 0)}},
		{"two equal", Triangle{vtx(1, 1, 0), vtx(1, 1, 0), vtx(7, 2, 0)}},
		{"nan", Triangle{vtx(float32(gomath.NaN()), 0, 0), vtx(5, 0, 0), vtx(0, 5, 0)}},
		{"inf", Triangle{vtx(float32(gomath.Inf(1)), 0, 0), vtx(5, 0, 0), vtx(0, 5, 0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Rasterize(tt.tri, 10, 10, 0, func(Fragment) {
				t.Fatal("degenerate triangle emitted a fragment")
			})
			if n != 0 {
				t.Errorf("Rasterize() = %d, want 0", n)
			}
		})
	}
}

func TestCoverageMatchesArea(t *testing.T) {
	tri := Triangle{vtx(10.3, 12.7, 0.1), vtx(90.2, 30.1, 0.9), vtx(40.6, 85.4, 0.4)}
	frags := Fragments(tri, 100, 100, 0)

	area := gomath.Abs(float64((30.1-12.7)*(40.6-10.3)-(90.2-10.3)*(85.4-12.7))) / 2
	got := float64(len(frags))
	// Pixel-center sampling differs from the exact area by at most about
	// half the perimeter.
	if gomath.Abs(got-area) > 100 {
		t.Errorf("covered %v pixels, area %v", got, area)
	}

	for _, f := range frags {
		if f.Depth < 0.1 || f.Depth > 0.9 {
			t.Fatalf("fragment (%d,%d) depth %v outside [0.1, 0.9]", f.X, f.Y, f.Depth)
		}
	}
}

func TestClippedToViewport(t *testing.T) {
	tri := Triangle{vtx(-50, -50, 0), vtx(60, -50, 0), vtx(-50, 60, 0)}
	frags := Fragments(tri, 8, 6, 0)
	if len(frags) != 8*6 {
		t.Errorf("fragment count = %d, want %d", len(frags), 8*6)
	}
	for _, f := range frags {
		if f.X < 0 || f.X >= 8 || f.Y < 0 || f.Y >= 6 {
			t.Fatalf("fragment (%d,%d) outside 8x6", f.X, f.Y)
		}
	}

	off := Triangle{vtx(-30, -30, 0), vtx(-10, -30, 0), vtx(-30, -10, 0)}
	if n := Rasterize(off, 8, 6, 0, func(Fragment) {}); n != 0 {
		t.Errorf("off-screen triangle emitted %d fragments", n)
	}
}

func TestAttributeInterpolation(t *testing.T) {
	tri := Triangle{
		{Position: math.Vec4{0, 0, 0, 1}, Color: color.Red, TexCoord: math.Vec2{X: 0, Y: 0}},
		{Position: math.Vec4{64, 0, 0, 1}, Color: color.Green, TexCoord: math.Vec2{X: 1, Y: 0}},
		{Position: math.Vec4{0, 64, 0, 1}, Color: color.Blue, TexCoord: math.Vec2{X: 0, Y: 1}},
	}
	var sampled *Fragment
	Rasterize(tri, 64, 64, 0, func(f Fragment) {
		if f.X == 31 && f.Y == 0 {
			sampled = &f
		}
	})
	if sampled == nil {
		t.Fatal("pixel (31,0) not covered")
	}
	// Center (31.5, 0.5): weights (1-31.5/64-0.5/64, 31.5/64, 0.5/64).
	wantG := float32(31.5 / 64)
	if gomath.Abs(float64(sampled.Color.G-wantG)) > 1e-4 {
		t.Errorf("interpolated green = %v, want %v", sampled.Color.G, wantG)
	}
	if gomath.Abs(float64(sampled.TexCoord.X-wantG)) > 1e-4 {
		t.Errorf("interpolated u = %v, want %v", sampled.TexCoord.X, wantG)
	}
	sum := sampled.Color.R + sampled.Color.G + sampled.Color.B
	if gomath.Abs(float64(sum-1)) > 1e-4 {
		t.Errorf("weights sum to %v, want 1", sum)
	}
}

func TestDegenerate(t *testing.T) {
	if Degenerate(Triangle{vtx(0, 0, 0), vtx(4, 0, 0), vtx(0, 4, 0)}) {
		t.Error("proper triangle reported degenerate")
	}
	if !Degenerate(Triangle{vtx(0, 0, 0), vtx(2, 2, 0), vtx(4, 4, 0)}) {
		t.Error("collinear triangle not reported degenerate")
	}
}
