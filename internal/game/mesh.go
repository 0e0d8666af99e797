package game

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"firesim/internal/sim"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// glMesh is an uploaded indexed triangle list.
type glMesh struct {
	vao, vbo, ebo uint32
	count         int32
}

// MeshFactory uploads scene geometry and remembers it for Destroy.
type MeshFactory struct {
	meshes []*glMesh
}

var _ sim.MeshFactory = (*MeshFactory)(nil)

func (f *MeshFactory) Cylinder(base, top, height float64, slices int) sim.Mesh {
	return f.upload(cylinderGeometry(base, top, height, slices))
}

func (f *MeshFactory) Sphere(radius float64, slices, stacks int, inverted bool) sim.Mesh {
	return f.upload(sphereGeometry(radius, slices, stacks, inverted))
}

func (f *MeshFactory) Pyramid(baseRadius, height float64, sides int) sim.Mesh {
	return f.upload(pyramidGeometry(baseRadius, height, sides))
}

func (f *MeshFactory) Box() sim.Mesh {
	return f.upload(boxGeometry())
}

func (f *MeshFactory) upload(g geometry) *glMesh {
	m := &glMesh{count: int32(len(g.indices))}
	gl.GenVertexArrays(1, &m.vao)
	gl.GenBuffers(1, &m.vbo)
	gl.GenBuffers(1, &m.ebo)

	gl.BindVertexArray(m.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(g.verts)*4, gl.Ptr(g.verts), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(g.indices)*4, gl.Ptr(g.indices), gl.STATIC_DRAW)

	stride := int32(vertexStride * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, glOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, glOffset(3*4))
	gl.BindVertexArray(0)

	f.meshes = append(f.meshes, m)
	return m
}

func (f *MeshFactory) Destroy() {
	for _, m := range f.meshes {
		gl.DeleteBuffers(1, &m.vbo)
		gl.DeleteBuffers(1, &m.ebo)
		gl.DeleteVertexArrays(1, &m.vao)
	}
	f.meshes = nil
}
