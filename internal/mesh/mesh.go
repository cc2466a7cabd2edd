// Package mesh builds the procedural geometry drawn by the demo scenes as
// flat arrays ready for vertex and index buffers.
package mesh

import (
	"github.com/chewxy/math32"
)

// Mesh holds per-vertex attributes and an optional index list.
type Mesh struct {
	Positions []float32 // 3 per vertex
	Normals   []float32 // 3 per vertex
	UVs       []float32 // 2 per vertex
	Indices   []uint32
}

// Vertices returns the vertex count.
func (m *Mesh) Vertices() int {
	return len(m.Positions) / 3
}

// cube faces as (normal, u axis, v axis); corners are built around them.
var cubeFaces = [6][3][3]float32{
	{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
	{{1, 0, 0}, {0, 0, -1}, {0, 1, 0}},
	{{0, 0, -1}, {-1, 0, 0}, {0, 1, 0}},
	{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
	{{0, 1, 0}, {1, 0, 0}, {0, 0, -1}},
	{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
}

// Cube returns a unit cube centred on the origin with four vertices per face
// so each face has its own normal. UVs span [0, uvScale] per face and
// triangles wind counter-clockwise seen from outside.
func Cube(uvScale float32) *Mesh {
	m := &Mesh{
		Positions: make([]float32, 0, 6*4*3),
		Normals:   make([]float32, 0, 6*4*3),
		UVs:       make([]float32, 0, 6*4*2),
		Indices:   make([]uint32, 0, 6*6),
	}
	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

	for f, face := range cubeFaces {
		n, u, v := face[0], face[1], face[2]
		for _, c := range corners {
			for i := range 3 {
				m.Positions = append(m.Positions, 0.5*(n[i]+c[0]*u[i]+c[1]*v[i]))
			}
			m.Normals = append(m.Normals, n[0], n[1], n[2])
			m.UVs = append(m.UVs, (c[0]+1)/2*uvScale, (c[1]+1)/2*uvScale)
		}
		base := uint32(f * 4)
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}

// Sphere returns n points spread evenly over a sphere of the given radius
// on a Fibonacci spiral. Normals point outward; there are no indices.
func Sphere(n int, radius float32) *Mesh {
	m := &Mesh{
		Positions: make([]float32, 0, n*3),
		Normals:   make([]float32, 0, n*3),
	}
	golden := math32.Pi * (3 - math32.Sqrt(5))
	for i := range n {
		y := float32(1)
		if n > 1 {
			y = 1 - 2*float32(i)/float32(n-1)
		}
		r := math32.Sqrt(math32.Max(0, 1-y*y))
		s, c := math32.Sincos(golden * float32(i))
		x, z := c*r, s*r
		m.Positions = append(m.Positions, x*radius, y*radius, z*radius)
		m.Normals = append(m.Normals, x, y, z)
	}
	return m
}

// Checkerboard returns size x size RGBA8 pixels of alternating cells of the
// given size in pixels.
func Checkerboard(size, cell int, a, b [4]byte) []byte {
	if cell < 1 {
		cell = 1
	}
	pix := make([]byte, 0, size*size*4)
	for y := range size {
		for x := range size {
			c := a
			if (x/cell+y/cell)%2 == 1 {
				c = b
			}
			pix = append(pix, c[:]...)
		}
	}
	return pix
}
