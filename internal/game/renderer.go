package game

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"firesim/internal/sim"
)

var lightPos = mgl32.Vec3{15, 15, 15}

// Renderer draws sim meshes with one lit program. It satisfies
// sim.Renderer.
type Renderer struct {
	prog uint32

	uModel    int32
	uView     int32
	uProj     int32
	uLightPos int32
	uEye      int32
	uColor    int32
	uEmissive int32
	uAlpha    int32
	uShine    int32
}

var _ sim.Renderer = (*Renderer)(nil)

func NewRenderer() (*Renderer, error) {
	prog, err := linkProgram(meshVertSrc, meshFragSrc)
	if err != nil {
		return nil, fmt.Errorf("mesh program: %w", err)
	}
	r := &Renderer{prog: prog}
	r.uModel = gl.GetUniformLocation(prog, gl.Str("uModel\x00"))
	r.uView = gl.GetUniformLocation(prog, gl.Str("uView\x00"))
	r.uProj = gl.GetUniformLocation(prog, gl.Str("uProj\x00"))
	r.uLightPos = gl.GetUniformLocation(prog, gl.Str("uLightPos\x00"))
	r.uEye = gl.GetUniformLocation(prog, gl.Str("uEye\x00"))
	r.uColor = gl.GetUniformLocation(prog, gl.Str("uColor\x00"))
	r.uEmissive = gl.GetUniformLocation(prog, gl.Str("uEmissive\x00"))
	r.uAlpha = gl.GetUniformLocation(prog, gl.Str("uAlpha\x00"))
	r.uShine = gl.GetUniformLocation(prog, gl.Str("uShine\x00"))
	return r, nil
}

// BeginFrame clears the framebuffer and loads the camera uniforms.
func (r *Renderer) BeginFrame(cam Camera, fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.ClearColor(clearColor[0], clearColor[1], clearColor[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.UseProgram(r.prog)
	view := cam.View()
	proj := cam.Projection(fbW, fbH)
	gl.UniformMatrix4fv(r.uView, 1, false, &view[0])
	gl.UniformMatrix4fv(r.uProj, 1, false, &proj[0])
	gl.Uniform3f(r.uLightPos, lightPos.X(), lightPos.Y(), lightPos.Z())
	gl.Uniform3f(r.uEye, cam.Eye.X(), cam.Eye.Y(), cam.Eye.Z())
}

func (r *Renderer) Draw(m sim.Mesh, model mgl32.Mat4, mat sim.Material) {
	gm, ok := m.(*glMesh)
	if !ok || gm == nil {
		return
	}
	gl.UniformMatrix4fv(r.uModel, 1, false, &model[0])
	gl.Uniform3f(r.uColor, mat.Color[0], mat.Color[1], mat.Color[2])
	gl.Uniform3f(r.uEmissive, mat.Emissive[0], mat.Emissive[1], mat.Emissive[2])
	gl.Uniform1f(r.uAlpha, mat.Alpha)
	gl.Uniform1f(r.uShine, mat.Shine)

	gl.BindVertexArray(gm.vao)
	gl.DrawElements(gl.TRIANGLES, gm.count, gl.UNSIGNED_INT, nil)
}

func (r *Renderer) Destroy() {
	gl.BindVertexArray(0)
	gl.DeleteProgram(r.prog)
}
