package game

import "math"

// geometry is an indexed triangle list with interleaved position+normal
// vertices (6 floats each).
type geometry struct {
	verts   []float32
	indices []uint32
}

const vertexStride = 6

func (g *geometry) vertex(px, py, pz, nx, ny, nz float64) uint32 {
	idx := uint32(len(g.verts) / vertexStride)
	g.verts = append(g.verts,
		float32(px), float32(py), float32(pz),
		float32(nx), float32(ny), float32(nz))
	return idx
}

func (g *geometry) tri(a, b, c uint32) {
	g.indices = append(g.indices, a, b, c)
}

func (g *geometry) vertexCount() int { return len(g.verts) / vertexStride }

// cylinderGeometry runs along +Y from 0 to height, capped at both ends.
func cylinderGeometry(base, top, height float64, slices int) geometry {
	if slices < 3 {
		slices = 3
	}
	var g geometry
	slope := (base - top) / height
	nl := math.Hypot(1, slope)
	for i := 0; i <= slices; i++ {
		a := 2 * math.Pi * float64(i) / float64(slices)
		c, s := math.Cos(a), math.Sin(a)
		g.vertex(c*base, 0, s*base, c/nl, slope/nl, s/nl)
		g.vertex(c*top, height, s*top, c/nl, slope/nl, s/nl)
	}
	for i := 0; i < slices; i++ {
		b0 := uint32(i * 2)
		t0, b1, t1 := b0+1, b0+2, b0+3
		g.tri(b0, t0, b1)
		g.tri(b1, t0, t1)
	}
	g.cap(base, 0, -1, slices)
	g.cap(top, height, 1, slices)
	return g
}

func (g *geometry) cap(radius, y, ny float64, slices int) {
	if radius <= 0 {
		return
	}
	centre := g.vertex(0, y, 0, 0, ny, 0)
	first := uint32(g.vertexCount())
	for i := 0; i <= slices; i++ {
		a := 2 * math.Pi * float64(i) / float64(slices)
		g.vertex(math.Cos(a)*radius, y, math.Sin(a)*radius, 0, ny, 0)
	}
	for i := uint32(0); i < uint32(slices); i++ {
		if ny > 0 {
			g.tri(centre, first+i+1, first+i)
		} else {
			g.tri(centre, first+i, first+i+1)
		}
	}
}

// sphereGeometry is centred on the origin. inverted flips normals so the
// inside is lit.
func sphereGeometry(radius float64, slices, stacks int, inverted bool) geometry {
	if slices < 3 {
		slices = 3
	}
	if stacks < 2 {
		stacks = 2
	}
	var g geometry
	sign := 1.0
	if inverted {
		sign = -1
	}
	for st := 0; st <= stacks; st++ {
		phi := math.Pi * float64(st) / float64(stacks)
		sp, cp := math.Sin(phi), math.Cos(phi)
		for sl := 0; sl <= slices; sl++ {
			th := 2 * math.Pi * float64(sl) / float64(slices)
			x, y, z := sp*math.Cos(th), cp, sp*math.Sin(th)
			g.vertex(x*radius, y*radius, z*radius, x*sign, y*sign, z*sign)
		}
	}
	row := uint32(slices + 1)
	for st := uint32(0); st < uint32(stacks); st++ {
		for sl := uint32(0); sl < uint32(slices); sl++ {
			a := st*row + sl
			b := a + row
			if inverted {
				g.tri(a, a+1, b)
				g.tri(a+1, b+1, b)
			} else {
				g.tri(a, b, a+1)
				g.tri(a+1, b, b+1)
			}
		}
	}
	return g
}

// pyramidGeometry stands on the XZ plane with its apex at +height.
func pyramidGeometry(baseRadius, height float64, sides int) geometry {
	if sides < 3 {
		sides = 3
	}
	var g geometry
	step := 2 * math.Pi / float64(sides)
	for i := 0; i < sides; i++ {
		a0, a1 := float64(i)*step, float64(i+1)*step
		mid := (a0 + a1) / 2
		// flat face normal: outward tilt grows as the pyramid gets flatter
		nx, ny, nz := math.Cos(mid)*height, baseRadius*math.Cos(step/2), math.Sin(mid)*height
		l := math.Sqrt(nx*nx + ny*ny + nz*nz)
		nx, ny, nz = nx/l, ny/l, nz/l
		p0 := g.vertex(math.Cos(a0)*baseRadius, 0, math.Sin(a0)*baseRadius, nx, ny, nz)
		p1 := g.vertex(math.Cos(a1)*baseRadius, 0, math.Sin(a1)*baseRadius, nx, ny, nz)
		apex := g.vertex(0, height, 0, nx, ny, nz)
		g.tri(p0, apex, p1)
	}
	g.cap(baseRadius, 0, -1, sides)
	return g
}

// boxGeometry is a unit cube centred on the origin.
func boxGeometry() geometry {
	var g geometry
	faces := [6][3]float64{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}}
	for _, n := range faces {
		// u, v span the face
		u := [3]float64{n[1], n[2], n[0]}
		v := [3]float64{n[1]*u[2] - n[2]*u[1], n[2]*u[0] - n[0]*u[2], n[0]*u[1] - n[1]*u[0]}
		var idx [4]uint32
		for k, c := range [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			idx[k] = g.vertex(
				0.5*(n[0]+c[0]*u[0]+c[1]*v[0]),
				0.5*(n[1]+c[0]*u[1]+c[1]*v[1]),
				0.5*(n[2]+c[0]*u[2]+c[1]*v[2]),
				n[0], n[1], n[2])
		}
		g.tri(idx[0], idx[1], idx[2])
		g.tri(idx[0], idx[2], idx[3])
	}
	return g
}
