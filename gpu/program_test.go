// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"bytes"
	"io/fs"
	"log/slog"
	"testing"
	"testing/fstest"

	"cogentcore.org/glrender/gl"
	"cogentcore.org/glrender/gl/gltest"
	"cogentcore.org/glrender/math32"
	"cogentcore.org/glrender/resources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const triangleVert = `#version 330 core
layout (location = 0) in vec3 Position;
uniform mat4 Projection;
uniform mat4 View;
uniform mat3 Normal;
void main() {
	gl_Position = Projection * View * vec4(Position, 1.0);
}
`

const triangleFrag = `#version 330 core
uniform vec3 Tint;
uniform vec4 Fade;
uniform vec2 Scale;
uniform float Alpha;
out vec4 Color;
void main() {
	Color = vec4(Tint, Alpha);
}
`

func triangleResources() fstest.MapFS {
	return fstest.MapFS{
		"shaders/triangle.vert": {Data: []byte(triangleVert)},
		"shaders/triangle.frag": {Data: []byte(triangleFrag)},
	}
}

func newTriangle(t *testing.T, ctx *Context) *Program {
	t.Helper()
	p, err := ProgramFromResource(ctx, resources.New(triangleResources()), "shaders/triangle")
	require.NoError(t, err)
	return p
}

func TestCompileError(t *testing.T) {
	d, ctx := newTestContext(t)
	sh, err := FragmentShaderFromSource(ctx, "broken.frag", "#error unterminated comment\nvoid main() {}")
	assert.Nil(t, sh)
	var cerr *CompileError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, FragmentShader, cerr.Type)
	assert.Equal(t, "broken.frag", cerr.Name)
	assert.Contains(t, cerr.Log, "unterminated comment")
	assert.Zero(t, d.Live(gltest.Shader))
	assert.Zero(t, ctx.Owned())

	_, err = VertexShaderFromSource(ctx, "empty.vert", "")
	require.ErrorAs(t, err, &cerr)
	assert.NotEmpty(t, cerr.Log)
	ctx.EndFrame()
}

func TestLinkError(t *testing.T) {
	d, ctx := newTestContext(t)
	vs, err := VertexShaderFromSource(ctx, "only.vert", triangleVert)
	require.NoError(t, err)
	p, err := NewProgram(ctx, "only", vs)
	assert.Nil(t, p)
	var lerr *LinkError
	require.ErrorAs(t, err, &lerr)
	assert.Contains(t, lerr.Log, "fragment")
	assert.Zero(t, d.Live(gltest.Program))

	frag, err := FragmentShaderFromSource(ctx, "tint.frag", triangleFrag)
	require.NoError(t, err)
	p, err = NewProgram(ctx, "triangle", vs, frag)
	require.NoError(t, err)
	assert.Empty(t, d.Program(p.Handle()).Attached, "shaders are detached after linking")
	vs.Release()
	frag.Release()
	assert.Zero(t, d.Live(gltest.Shader))
	assert.True(t, p.SetFloat("Alpha", 1), "the program outlives its shaders")
	p.Detach()
	p.Release()
	assert.Zero(t, d.LiveTotal())
	ctx.EndFrame()
}

func TestShaderTypeForName(t *testing.T) {
	st, err := ShaderTypeForName("shaders/sky.geom")
	require.NoError(t, err)
	assert.Equal(t, GeometryShader, st)
	assert.Equal(t, uint32(gl.GeometryShader), st.GLType())
	assert.Equal(t, "geometry", st.String())

	_, err = ShaderTypeForName("shaders/sky.glsl")
	var serr *ShaderTypeError
	assert.ErrorAs(t, err, &serr)
}

func TestProgramFromResource(t *testing.T) {
	d, ctx := newTestContext(t)
	p := newTriangle(t, ctx)
	assert.Equal(t, "shaders/triangle", p.Name())
	assert.Zero(t, d.Live(gltest.Shader), "intermediate shaders are released")
	owner, ok := ctx.Owner(ProgramHandle, p.Handle())
	assert.True(t, ok)
	assert.Equal(t, "shaders/triangle", owner)

	res := resources.New(fstest.MapFS{"shaders/lonely.vert": {Data: []byte(triangleVert)}})
	_, err := ProgramFromResource(ctx, res, "shaders/lonely")
	var rerr *ResourceError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "shaders/lonely.frag", rerr.Name)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Equal(t, 1, d.Live(gltest.Program))
	assert.Zero(t, d.Live(gltest.Shader))
	ctx.EndFrame()
}

func TestUniforms(t *testing.T) {
	d, ctx := newTestContext(t)
	p := newTriangle(t, ctx)
	h := p.Handle()

	m := math32.Identity4()
	m[12] = 2
	assert.True(t, p.UploadMat4("View", m))
	assert.Equal(t, h, ctx.CurrentProgram())
	assert.Equal(t, int32(h), d.GetIntegerv(gl.CurrentProgram))
	assert.True(t, p.UploadMat3("Normal", math32.Identity3()))
	assert.True(t, p.UploadVec2("Scale", math32.Vec2(2, 3)))
	assert.True(t, p.UploadPoint3("Tint", 1, 0.5, 0))
	assert.True(t, p.UploadVec4("Fade", math32.Vec4(0, 0, 0, 1)))
	assert.True(t, p.SetFloat("Alpha", 0.25))

	value := func(name string) any {
		v, ok := d.UniformValue(h, name)
		require.True(t, ok, name)
		return v
	}
	assert.Equal(t, [16]float32(m), value("View"))
	assert.Equal(t, [9]float32(math32.Identity3()), value("Normal"))
	assert.Equal(t, [2]float32{2, 3}, value("Scale"))
	assert.Equal(t, [3]float32{1, 0.5, 0}, value("Tint"))
	assert.Equal(t, [4]float32{0, 0, 0, 1}, value("Fade"))
	assert.Equal(t, float32(0.25), value("Alpha"))

	p.Detach()
	assert.Zero(t, ctx.CurrentProgram())
	ctx.EndFrame()
}

func TestMissingUniform(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	d, ctx := newTestContext(t, WithLogger(logger))
	p := newTriangle(t, ctx)

	n := d.Mutations
	assert.False(t, p.UploadMat4("nonexistent_uniform", math32.Identity4()))
	assert.False(t, p.SetInt("nonexistent_uniform", 3))
	assert.Equal(t, n, d.Mutations)
	assert.Zero(t, d.GetIntegerv(gl.CurrentProgram), "the program is not made current")
	assert.Empty(t, buf.String(), "diagnostics are off by default")

	ctx.UniformDiagnostics = true
	assert.False(t, p.UploadVec3("Missing", math32.Vec3(1, 2, 3)))
	assert.Contains(t, buf.String(), "uniform not found")
	assert.Contains(t, buf.String(), "uniform=Missing")
	assert.Equal(t, n, d.Mutations)

	p.Release()
	assert.False(t, p.SetFloat("Alpha", 1), "released programs have no uniforms")
	ctx.EndFrame()
}

func TestReload(t *testing.T) {
	d, ctx := newTestContext(t)
	fsys := triangleResources()
	res := resources.New(fsys)
	p, err := ProgramFromResource(ctx, res, "shaders/triangle")
	require.NoError(t, err)
	events := make(chan string, 4)
	r := newReloader(res, events, []*Program{p})
	assert.ElementsMatch(t, []string{"shaders/triangle.vert", "shaders/triangle.frag"}, r.names())
	assert.Zero(t, r.Poll())

	old := p.Handle()
	p.Use()
	fsys["shaders/triangle.frag"] = &fstest.MapFile{Data: []byte("uniform float Glow;\nvoid main() {}")}
	events <- "shaders/triangle.frag"
	events <- "shaders/triangle.vert"
	events <- "shaders/unrelated.frag"
	assert.Equal(t, 1, r.Poll())
	assert.NotEqual(t, old, p.Handle())
	assert.Nil(t, d.Program(old))
	assert.Equal(t, p.Handle(), ctx.CurrentProgram(), "a current program stays current")
	assert.True(t, p.SetFloat("Glow", 1))
	assert.Equal(t, 1, d.Live(gltest.Program))

	cur := p.Handle()
	fsys["shaders/triangle.frag"] = &fstest.MapFile{Data: []byte("#error half saved\nvoid main() {}")}
	events <- "shaders/triangle.frag"
	assert.Zero(t, r.Poll())
	assert.Equal(t, cur, p.Handle(), "a failed reload keeps the old program")
	assert.Zero(t, d.Live(gltest.Shader))

	close(events)
	assert.Zero(t, r.Poll())
	assert.NoError(t, r.Close())
	p.Detach()
	ctx.EndFrame()
}

func TestReloadReleased(t *testing.T) {
	d, ctx := newTestContext(t)
	res := resources.New(triangleResources())
	p, err := ProgramFromResource(ctx, res, "shaders/triangle")
	require.NoError(t, err)
	p.Release()
	allocated := d.Allocated(gltest.Program)

	assert.ErrorIs(t, p.Reload(res), ErrReleased)
	assert.Zero(t, p.Handle(), "a released program stays released")
	assert.Equal(t, allocated, d.Allocated(gltest.Program))
	assert.Zero(t, ctx.Owned())

	events := make(chan string, 1)
	r := newReloader(res, events, []*Program{p})
	events <- "shaders/triangle.vert"
	assert.Zero(t, r.Poll())
	assert.Zero(t, d.LiveTotal())
	ctx.EndFrame()
}
