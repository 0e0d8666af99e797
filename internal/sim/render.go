package sim

import "github.com/go-gl/mathgl/mgl32"

// Mesh is an opaque handle to static geometry owned by a MeshFactory.
type Mesh interface{}

// MeshFactory builds immutable geometry from a few numeric parameters.
type MeshFactory interface {
	Cylinder(baseRadius, topRadius, height float64, slices int) Mesh
	Sphere(radius float64, slices, stacks int, inverted bool) Mesh
	Pyramid(baseRadius, height float64, sides int) Mesh
	Box() Mesh // unit cube centred on the origin
}

// Material is a flat lit surface. Emissive adds unlit colour on top.
type Material struct {
	Color    [3]float32
	Emissive [3]float32
	Alpha    float32
	Shine    float32
}

// Renderer draws one mesh with a composed model transform.
type Renderer interface {
	Draw(m Mesh, model mgl32.Mat4, mat Material)
}

// Key names the keys the scene reacts to.
type Key int

const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeyP
	KeyL
	KeyR
	KeyO
)

// KeySource answers "is this key currently held" queries.
type KeySource interface {
	IsHeld(k Key) bool
}

// Clock supplies monotonically increasing time in milliseconds.
type Clock interface {
	Millis() float64
}

// stack is a push/pop model-matrix stack for the draw pass.
type stack struct {
	m   []mgl32.Mat4
	cur mgl32.Mat4
}

func newStack() *stack {
	return &stack{cur: mgl32.Ident4()}
}

func (s *stack) push() { s.m = append(s.m, s.cur) }

func (s *stack) pop() {
	n := len(s.m) - 1
	s.cur = s.m[n]
	s.m = s.m[:n]
}

func (s *stack) translate(x, y, z float64) {
	s.cur = s.cur.Mul4(mgl32.Translate3D(float32(x), float32(y), float32(z)))
}

func (s *stack) rotate(angle float64, x, y, z float32) {
	s.cur = s.cur.Mul4(mgl32.HomogRotate3D(float32(angle), mgl32.Vec3{x, y, z}))
}

func (s *stack) scale(x, y, z float64) {
	s.cur = s.cur.Mul4(mgl32.Scale3D(float32(x), float32(y), float32(z)))
}
