package sim

import "math"

// sceneMeshes holds the static geometry shared by every draw.
type sceneMeshes struct {
	box       Mesh
	body      Mesh
	tailBoom  Mesh
	blade     Mesh
	tailBlade Mesh
	strut     Mesh
	skid      Mesh
	bucket    Mesh
	rope      Mesh
	droplet   Mesh
	light     Mesh
	lake      Mesh
	trunk     Mesh
	flame     Mesh
	foliage   Mesh
}

var (
	matGround   = Material{Color: [3]float32{0.45, 0.55, 0.35}, Alpha: 1, Shine: 10}
	matSign     = Material{Color: [3]float32{0.9, 0.9, 0.9}, Alpha: 1, Shine: 10}
	matWindow   = Material{Color: [3]float32{0.55, 0.7, 0.8}, Alpha: 1, Shine: 40}
	matPad      = Material{Color: [3]float32{0.25, 0.25, 0.27}, Alpha: 1, Shine: 10}
	matHeliBody = Material{Color: [3]float32{0.9, 0.2, 0.2}, Alpha: 1, Shine: 100}
	matRotor    = Material{Color: [3]float32{0.2, 0.2, 0.2}, Alpha: 1, Shine: 50}
	matGear     = Material{Color: [3]float32{0.3, 0.3, 0.3}, Alpha: 1, Shine: 20}
	matRope     = Material{Color: [3]float32{0.6, 0.5, 0.4}, Alpha: 1, Shine: 5}
	matBucket   = Material{Color: [3]float32{0.1, 0.1, 0.7}, Alpha: 1, Shine: 80}
	matWater    = Material{Color: [3]float32{0, 0.4, 0.8}, Alpha: 0.8, Shine: 20}
	matDroplet  = Material{Color: [3]float32{0.3, 0.6, 0.9}, Alpha: 0.8, Shine: 200}
	matLake     = Material{Color: [3]float32{0.1, 0.4, 0.7}, Alpha: 1, Shine: 100}
	matTrunk    = Material{Color: [3]float32{0.4, 0.25, 0.1}, Alpha: 1, Shine: 5}
	matFlame    = Material{Color: [3]float32{1.0, 0.5, 0.0}, Emissive: [3]float32{0.8, 0.3, 0}, Alpha: 0.9, Shine: 20}
)

// BuildMeshes creates the static geometry once. It must be called before
// Draw.
func (s *Scene) BuildMeshes(f MeshFactory) {
	s.meshes = &sceneMeshes{
		box:       f.Box(),
		body:      f.Sphere(BodyRadius, 20, 20, false),
		tailBoom:  f.Cylinder(TailRadius, TailRadius*0.7, TailLength, 10),
		blade:     f.Cylinder(0.05, 0.03, MainRotorLen, 8),
		tailBlade: f.Cylinder(0.04, 0.02, TailRotorLen, 8),
		strut:     f.Cylinder(0.03, 0.03, 0.5, 8),
		skid:      f.Cylinder(0.03, 0.03, 1.7, 8),
		bucket:    f.Cylinder(BucketRadius, BucketRadius, BucketHeight, 16),
		rope:      f.Cylinder(0.03, 0.03, BucketRopeLen, 8),
		droplet:   f.Sphere(0.08, 10, 10, false),
		light:     f.Sphere(0.15, 15, 15, false),
		lake:      f.Cylinder(s.Lake.Radius, s.Lake.Radius, 0.1, 32),
		trunk:     f.Cylinder(1, 0.8, 1, 20),
		flame:     f.Pyramid(0.5, 1, 3),
		foliage:   f.Pyramid(1, 1, 4),
	}
}

// Draw issues the whole scene to r. It only reads simulation state.
func (s *Scene) Draw(r Renderer) {
	if s.meshes == nil {
		return
	}
	st := newStack()

	st.push()
	st.translate(-25, -0.05, 0)
	st.scale(100, 0.1, 100)
	r.Draw(s.meshes.box, st.cur, matGround)
	st.pop()

	s.drawBuilding(r, st)
	s.drawLake(r, st)
	s.drawForest(r, st)
	s.drawFires(r, st)
	s.drawHeli(r, st)
	s.drawDroplets(r, st)
}

func (s *Scene) drawBuilding(r Renderer, st *stack) {
	b := s.Building
	m := s.meshes
	body := Material{Color: b.Color, Alpha: 1, Shine: 5}
	centerH := b.CentralHeight()
	sideH := float64(b.Floors) * b.FloorHeight
	baseY := centerH/2 - sideH/2
	sideOffX := b.ModuleWidth/2 + b.SideModuleWidth/2
	sideOffZ := (b.Depth - b.SideModuleDepth) / 2

	st.push()
	st.translate(b.Origin.X, b.Origin.Y, b.Origin.Z)

	module := func(x, y, z, w, h, d float64, floors int, ground bool) {
		st.push()
		st.translate(x, y+h/2, z)
		st.scale(w, h, d)
		r.Draw(m.box, st.cur, body)
		st.pop()
		s.drawWindows(r, st, x, y, z, w, d, floors, ground)
	}
	module(-sideOffX, baseY, sideOffZ, b.SideModuleWidth, sideH, b.SideModuleDepth, b.Floors, true)
	module(0, baseY, 0, b.ModuleWidth, centerH, b.Depth, b.CentralFloors, false)
	module(sideOffX, baseY, sideOffZ, b.SideModuleWidth, sideH, b.SideModuleDepth, b.Floors, true)

	// Sign above the door.
	st.push()
	st.translate(0, baseY+b.FloorHeight*1.5, b.Depth/2+0.02)
	st.scale(2, 0.6, 0.02)
	r.Draw(m.box, st.cur, matSign)
	st.pop()

	// Heliport pad, emissive while the direction marking shows.
	pad := matPad
	if blend := float32(b.Pad.Blend()); blend > 0 {
		if b.Pad.Marking() == MarkingDown {
			pad.Emissive = [3]float32{0.1 * blend, 0.3 * blend, 0.9 * blend}
		} else {
			pad.Emissive = [3]float32{0.1 * blend, 0.9 * blend, 0.2 * blend}
		}
	}
	st.push()
	st.translate(0, centerH+PadClearance, 0)
	st.scale(4, 0.08, 4)
	r.Draw(m.box, st.cur, pad)
	st.pop()

	const lightR = 1.8
	corners := [4][2]float64{{-lightR, -lightR}, {lightR, -lightR}, {-lightR, lightR}, {lightR, lightR}}
	for i, c := range corners {
		l := &b.Lights[i]
		col := l.Color()
		it := float32(l.Intensity())
		st.push()
		st.translate(c[0], centerH+0.84+0.05, c[1])
		r.Draw(m.light, st.cur, Material{Color: col, Emissive: [3]float32{col[0] * it, col[1] * it, col[2] * it}, Alpha: 1, Shine: 30})
		st.pop()
	}
	st.pop()
}

func (s *Scene) drawWindows(r Renderer, st *stack, x, y, z, w, d float64, floors int, ground bool) {
	b := s.Building
	if b.WindowsPerFloor <= 0 {
		return
	}
	const gap = 0.1
	spacing := w / float64(b.WindowsPerFloor+1)
	start := 0
	if !ground {
		start = 2
	}
	for fl := start; fl < floors; fl++ {
		for i := 0; i < b.WindowsPerFloor; i++ {
			xp := -w/2 + float64(i+1)*spacing
			switch i {
			case 0:
				xp += gap
			case b.WindowsPerFloor - 1:
				xp -= gap
			}
			st.push()
			st.translate(x+xp, y+float64(fl)*b.FloorHeight+b.FloorHeight/2, z+d/2+0.01)
			st.scale(0.8-2*gap, 0.8, 0.02)
			r.Draw(s.meshes.box, st.cur, matWindow)
			st.pop()
		}
	}
}

func (s *Scene) drawLake(r Renderer, st *stack) {
	st.push()
	st.translate(s.Lake.X, 0, s.Lake.Z)
	r.Draw(s.meshes.lake, st.cur, matLake)
	st.pop()
}

func (s *Scene) drawForest(r Renderer, st *stack) {
	f := s.Forest
	m := s.meshes
	st.push()
	st.translate(f.Origin.X, f.Origin.Y, f.Origin.Z)
	for _, t := range f.Trees {
		st.push()
		st.translate(t.X, 0, t.Z)
		tilt := t.TiltDeg * math.Pi / 180
		if t.Axis == TreeAxisX {
			st.rotate(tilt, 1, 0, 0)
		} else {
			st.rotate(tilt, 0, 0, 1)
		}

		st.push()
		st.scale(t.TrunkRadius, t.TrunkHeight(), t.TrunkRadius)
		r.Draw(m.trunk, st.cur, matTrunk)
		st.pop()

		layers := t.FoliageLayers()
		step := t.FoliageHeight() / float64(layers)
		base := t.TrunkRadius * 2.5
		leaf := Material{Color: [3]float32{0.1, float32(t.Green), 0.1}, Alpha: 1, Shine: 5}
		for i := 0; i < layers; i++ {
			rad := base * (1 - float64(i)/float64(layers))
			st.push()
			st.translate(0, t.TrunkHeight()+float64(i)*step*0.75, 0)
			st.scale(rad, step*1.5, rad)
			r.Draw(m.foliage, st.cur, leaf)
			st.pop()
		}
		st.pop()
	}
	st.pop()
}

func (s *Scene) drawFires(r Renderer, st *stack) {
	now := s.elapsed * 0.001
	for _, f := range s.Fires.Fires {
		if !f.Active {
			continue
		}
		st.push()
		st.translate(f.X, 0, f.Z)
		for i := 0; i < FlameCount; i++ {
			h := FlameHeight(i, now)
			st.push()
			st.rotate(2*math.Pi*float64(i)/FlameCount, 0, 1, 0)
			st.translate(0.35, 0, 0)
			st.scale(0.6, 2*h/3, 0.6*math.Max(f.Scale, 0.2))
			r.Draw(s.meshes.flame, st.cur, matFlame)
			st.pop()
		}
		st.pop()
	}
}

func (s *Scene) drawHeli(r Renderer, st *stack) {
	h := s.Heli
	m := s.meshes
	st.push()
	st.translate(h.Pos.X, h.Pos.Y, h.Pos.Z)
	st.rotate(h.Yaw, 0, 1, 0)
	st.rotate(h.Pitch, 0, 0, 1)

	st.push()
	st.scale(BodyLength/2/BodyRadius, 1, 1.2)
	r.Draw(m.body, st.cur, matHeliBody)
	st.pop()

	st.push()
	st.translate(-BodyLength/3.2, 0, 0)
	st.rotate(math.Pi/2, 0, 0, 1)
	r.Draw(m.tailBoom, st.cur, matHeliBody)
	st.pop()

	st.push()
	st.translate(-BodyLength/2-TailLength+0.9, 0, 0)
	st.rotate(-math.Pi/2, 0, 0, 1)
	st.scale(0.5/BodyRadius, 0.05/BodyRadius, 1/BodyRadius)
	r.Draw(m.body, st.cur, matHeliBody)
	st.pop()

	// Main rotor: four blades around the hub.
	st.push()
	st.translate(0, BodyRadius+0.05, 0)
	st.rotate(h.MainRotor, 0, 1, 0)
	for i := 0; i < 4; i++ {
		st.push()
		st.rotate(float64(i)*math.Pi/2, 0, 1, 0)
		st.rotate(math.Pi/2, 0, 0, 1)
		r.Draw(m.blade, st.cur, matRotor)
		st.pop()
	}
	st.pop()

	// Tail rotor: two blades.
	st.push()
	st.translate(-BodyLength/3-TailLength+0.2, 0, 0.3)
	st.rotate(h.TailRotor, 0, 0, 1)
	for i := 0; i < 2; i++ {
		st.push()
		st.rotate(float64(i)*math.Pi, 0, 0, 1)
		r.Draw(m.tailBlade, st.cur, matRotor)
		st.pop()
	}
	st.pop()

	if h.GearDeployed {
		skidY := -BodyRadius - 0.6
		for _, side := range []float64{-1, 1} {
			for _, x := range []float64{-0.5, 0.5} {
				st.push()
				st.translate(x, skidY+0.25, side*0.3)
				r.Draw(m.strut, st.cur, matGear)
				st.pop()
			}
			st.push()
			st.translate(0.85, skidY+0.25, side*0.3)
			st.rotate(math.Pi/2, 0, 0, 1)
			r.Draw(m.skid, st.cur, matGear)
			st.pop()
		}
	}

	if h.BucketDeployed {
		st.push()
		st.translate(0, -BodyRadius-BucketRopeLen, 0)
		r.Draw(m.rope, st.cur, matRope)
		st.pop()

		st.push()
		st.translate(0, -BodyRadius-BucketRopeLen-BucketHeight, 0)
		r.Draw(m.bucket, st.cur, matBucket)
		st.pop()

		if h.BucketFull {
			ws := 0.9 * (1 - h.DropProgress())
			st.push()
			st.translate(0, -BodyRadius-BucketRopeLen-BucketHeight*0.9, 0)
			st.scale(ws, 0.6, ws)
			r.Draw(m.bucket, st.cur, matWater)
			st.pop()
		}
	}
	st.pop()
}

func (s *Scene) drawDroplets(r Renderer, st *stack) {
	for _, d := range s.Heli.Droplets.P {
		sc := d.Scale * d.Life * 0.8
		st.push()
		st.translate(d.Pos.X, d.Pos.Y, d.Pos.Z)
		st.scale(sc, sc*1.2, sc)
		r.Draw(s.meshes.droplet, st.cur, matDroplet)
		st.pop()
	}
}
