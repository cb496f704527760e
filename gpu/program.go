// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"

	"cogentcore.org/glrender/base/errors"
	"cogentcore.org/glrender/gl"
	"cogentcore.org/glrender/math32"
	"cogentcore.org/glrender/resources"
)

// ProgramExtensions are the extensions of the shader
// resources that a program resource name is built from.
var ProgramExtensions = []string{".vert", ".frag"}

// Program owns one linked driver program.
type Program struct {
	ctx  *Context
	h    handle
	name string
}

// NewProgram links the given shaders into a new program. The shaders are
// detached after linking and may be released as soon as this returns.
// A link failure returns a [*LinkError] with the driver log.
func NewProgram(ctx *Context, name string, shaders ...*Shader) (*Program, error) {
	id, err := link(ctx, name, shaders)
	if err != nil {
		return nil, err
	}
	p := &Program{ctx: ctx, name: name}
	p.h = adopt(ctx, p, ProgramHandle, id, name)
	return p, nil
}

// ProgramFromResource builds a program from the shader resources
// with the given name and each of the [ProgramExtensions], such as
// shaders/triangle.vert and shaders/triangle.frag.
func ProgramFromResource(ctx *Context, res *resources.Resources, name string) (*Program, error) {
	id, err := buildFromResource(ctx, res, name)
	if err != nil {
		return nil, err
	}
	p := &Program{ctx: ctx, name: name}
	p.h = adopt(ctx, p, ProgramHandle, id, name)
	return p, nil
}

func buildFromResource(ctx *Context, res *resources.Resources, name string) (uint32, error) {
	var shaders []*Shader
	defer func() {
		for _, sh := range shaders {
			sh.Release()
		}
	}()
	for _, ext := range ProgramExtensions {
		sh, err := ShaderFromResource(ctx, res, name+ext)
		if err != nil {
			return 0, err
		}
		shaders = append(shaders, sh)
	}
	return link(ctx, name, shaders)
}

// link returns the handle of a new program linked from the shaders.
func link(ctx *Context, name string, shaders []*Shader) (uint32, error) {
	d := ctx.Driver
	id := d.CreateProgram()
	if id == 0 {
		return 0, errors.Log(&AllocError{Kind: ProgramHandle, Name: name})
	}
	for _, sh := range shaders {
		d.AttachShader(id, sh.Handle())
	}
	d.LinkProgram(id)
	for _, sh := range shaders {
		d.DetachShader(id, sh.Handle())
	}
	if d.GetProgramiv(id, gl.LinkStatus) == gl.False {
		msg := d.GetProgramInfoLog(id)
		d.DeleteProgram(id)
		if msg == "" {
			msg = "no diagnostic from the driver"
		}
		return 0, errors.Log(&LinkError{Name: name, Log: msg})
	}
	return id, nil
}

// Reload rebuilds the program from its shader resources. If that
// fails, the error is returned and the current program is kept.
// A released program returns [ErrReleased].
func (p *Program) Reload(res *resources.Resources) error {
	if p.h.id() == 0 {
		return errors.Log(fmt.Errorf("gpu: program %s: %w", p.name, ErrReleased))
	}
	id, err := buildFromResource(p.ctx, res, p.name)
	if err != nil {
		return err
	}
	current := p.ctx.CurrentProgram() == p.h.id()
	p.h.release()
	p.h = adopt(p.ctx, p, ProgramHandle, id, p.name)
	if current {
		p.Use()
	}
	return nil
}

// Name returns the name of the program.
func (p *Program) Name() string { return p.name }

// Handle returns the driver handle, or 0 once released.
func (p *Program) Handle() uint32 { return p.h.id() }

// Use makes the program current for subsequent drawing and uniform
// uploads. It must be paired with [Program.Detach] before the frame ends.
func (p *Program) Use() {
	p.ctx.UseProgram(p.h.id())
}

// Detach resets the current program to none.
func (p *Program) Detach() {
	p.ctx.UseProgram(0)
}

// Release deletes the program. It is safe to call more than once.
func (p *Program) Release() {
	p.h.release()
}

////////  Uniforms

// location returns the location of the named uniform and makes the
// program current, or returns false without touching any driver
// state if the program has no such active uniform.
func (p *Program) location(name string) (int32, bool) {
	if p.h.id() == 0 {
		return -1, false
	}
	loc := p.ctx.Driver.GetUniformLocation(p.h.id(), name)
	if loc < 0 {
		if p.ctx.UniformDiagnostics {
			p.ctx.Logger.Debug("uniform not found", "program", p.name, "uniform", name)
		}
		return -1, false
	}
	p.Use()
	return loc, true
}

// SetInt sets the named int uniform. Like all uniform uploads, it makes
// the program current, and it does nothing and returns false if the
// program has no active uniform with that name, which is common for
// uniforms that the shader compiler optimized out.
func (p *Program) SetInt(name string, v int32) bool {
	loc, ok := p.location(name)
	if ok {
		p.ctx.Driver.Uniform1i(loc, v)
	}
	return ok
}

// SetFloat sets the named float uniform.
func (p *Program) SetFloat(name string, v float32) bool {
	loc, ok := p.location(name)
	if ok {
		p.ctx.Driver.Uniform1f(loc, v)
	}
	return ok
}

// UploadTextureSlot sets the named sampler uniform to the given
// texture unit, counted from 0.
func (p *Program) UploadTextureSlot(name string, slot int) bool {
	return p.SetInt(name, int32(slot))
}

// UploadVec2 sets the named vec2 uniform.
func (p *Program) UploadVec2(name string, v math32.Vector2) bool {
	loc, ok := p.location(name)
	if ok {
		p.ctx.Driver.Uniform2f(loc, v.X, v.Y)
	}
	return ok
}

// UploadVec3 sets the named vec3 uniform.
func (p *Program) UploadVec3(name string, v math32.Vector3) bool {
	loc, ok := p.location(name)
	if ok {
		p.ctx.Driver.Uniform3f(loc, v.X, v.Y, v.Z)
	}
	return ok
}

// UploadPoint3 sets the named vec3 uniform to the given position.
func (p *Program) UploadPoint3(name string, x, y, z float32) bool {
	return p.UploadVec3(name, math32.Vec3(x, y, z))
}

// UploadVec4 sets the named vec4 uniform.
func (p *Program) UploadVec4(name string, v math32.Vector4) bool {
	loc, ok := p.location(name)
	if ok {
		p.ctx.Driver.Uniform4f(loc, v.X, v.Y, v.Z, v.W)
	}
	return ok
}

// UploadMat3 sets the named mat3 uniform.
func (p *Program) UploadMat3(name string, m math32.Matrix3) bool {
	loc, ok := p.location(name)
	if ok {
		p.ctx.Driver.UniformMatrix3fv(loc, false, (*[9]float32)(&m))
	}
	return ok
}

// UploadMat4 sets the named mat4 uniform.
func (p *Program) UploadMat4(name string, m math32.Matrix4) bool {
	loc, ok := p.location(name)
	if ok {
		p.ctx.Driver.UniformMatrix4fv(loc, false, (*[16]float32)(&m))
	}
	return ok
}
