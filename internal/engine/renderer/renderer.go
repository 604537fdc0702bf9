// Package renderer draws the scene's boxes with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/emoji-vend/internal/engine/shader"
	"github.com/Faultbox/emoji-vend/internal/logger"
	"github.com/Faultbox/emoji-vend/internal/scene"
	"github.com/Faultbox/emoji-vend/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Renderer draws unit cubes scaled and placed per draw item.
type Renderer struct {
	config Config
	log    *zap.Logger

	program *shader.Program

	cubeVAO   uint32
	cubeVBO   uint32
	cubeCount int32

	lightDir math.Vec3
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:   cfg,
		log:      logger.Named("renderer"),
		lightDir: math.V3(0.6, 0.8, 0.3).Normalize(),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.Enable(gl.MULTISAMPLE)
	gl.ClearColor(0.96, 0.93, 0.95, 1.0)

	var err error
	r.program, err = shader.New(vertexShader, fragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	r.createCube()
	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	if r.cubeVAO != 0 {
		gl.DeleteVertexArrays(1, &r.cubeVAO)
	}
	if r.cubeVBO != 0 {
		gl.DeleteBuffers(1, &r.cubeVBO)
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Aspect returns the viewport's width over height.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Draw renders items with the given view-projection matrix.
func (r *Renderer) Draw(viewProj math.Mat4, items []scene.DrawItem) {
	r.program.Use()
	r.program.SetMat4("uViewProj", viewProj)
	r.program.SetVec3("uLightDir", r.lightDir.Array())

	gl.BindVertexArray(r.cubeVAO)
	for _, it := range items {
		r.program.SetMat4("uModel", it.Model())
		r.program.SetVec3("uColor", it.Material.Color)
		r.program.SetVec3("uEmissive", it.Material.Emissive)
		r.program.SetFloat("uEmissiveIntensity", it.Material.EmissiveIntensity)
		gl.DrawArrays(gl.TRIANGLES, 0, r.cubeCount)
	}
	gl.BindVertexArray(0)
}

// createCube uploads the unit cube.
func (r *Renderer) createCube() {
	vertices := cubeVertices()
	r.cubeCount = int32(len(vertices) / 6)

	gl.GenVertexArrays(1, &r.cubeVAO)
	gl.BindVertexArray(r.cubeVAO)

	gl.GenBuffers(1, &r.cubeVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.cubeVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	// Position (location = 0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 6*4, nil)
	gl.EnableVertexAttribArray(0)

	// Normal (location = 1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 6*4, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	r.log.Debug("cube created",
		zap.Uint32("vao", r.cubeVAO),
		zap.Int32("vertices", r.cubeCount),
	)
}

// cubeVertices returns a unit cube centered on the origin as position and
// normal pairs, counter-clockwise from outside.
func cubeVertices() []float32 {
	faces := []struct {
		normal math.Vec3
		u, v   math.Vec3
	}{
		{math.V3(1, 0, 0), math.V3(0, 0, -1), math.V3(0, 1, 0)},
		{math.V3(-1, 0, 0), math.V3(0, 0, 1), math.V3(0, 1, 0)},
		{math.V3(0, 1, 0), math.V3(1, 0, 0), math.V3(0, 0, -1)},
		{math.V3(0, -1, 0), math.V3(1, 0, 0), math.V3(0, 0, 1)},
		{math.V3(0, 0, 1), math.V3(1, 0, 0), math.V3(0, 1, 0)},
		{math.V3(0, 0, -1), math.V3(-1, 0, 0), math.V3(0, 1, 0)},
	}

	out := make([]float32, 0, 6*6*6)
	for _, f := range faces {
		center := f.normal.Scale(0.5)
		corner := func(su, sv float32) math.Vec3 {
			return center.Add(f.u.Scale(su * 0.5)).Add(f.v.Scale(sv * 0.5))
		}
		quad := [6]math.Vec3{
			corner(-1, -1), corner(1, -1), corner(1, 1),
			corner(-1, -1), corner(1, 1), corner(-1, 1),
		}
		for _, p := range quad {
			out = append(out, p.X, p.Y, p.Z, f.normal.X, f.normal.Y, f.normal.Z)
		}
	}
	return out
}

const vertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;

uniform mat4 uViewProj;
uniform mat4 uModel;

out vec3 vNormal;

void main() {
	vNormal = aNormal;
	gl_Position = uViewProj * uModel * vec4(aPos, 1.0);
}
`

const fragmentShader = `
#version 410 core

in vec3 vNormal;
out vec4 FragColor;

uniform vec3 uColor;
uniform vec3 uLightDir;
uniform vec3 uEmissive;
uniform float uEmissiveIntensity;

void main() {
	float diffuse = max(dot(normalize(vNormal), uLightDir), 0.0);
	vec3 color = uColor * (0.45 + 0.55 * diffuse) + uEmissive * uEmissiveIntensity;
	FragColor = vec4(min(color, vec3(1.0)), 1.0);
}
`
