// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"path"

	"cogentcore.org/glrender/base/errors"
	"cogentcore.org/glrender/gl"
	"cogentcore.org/glrender/resources"
)

// ShaderTypes are the shader stages.
type ShaderTypes int32

const (
	VertexShader ShaderTypes = iota
	FragmentShader
	GeometryShader
)

var shaderTypeNames = [...]string{
	VertexShader:   "vertex",
	FragmentShader: "fragment",
	GeometryShader: "geometry",
}

func (st ShaderTypes) String() string {
	if st < 0 || int(st) >= len(shaderTypeNames) {
		return fmt.Sprintf("ShaderTypes(%d)", int32(st))
	}
	return shaderTypeNames[st]
}

// GLType returns the driver shader type of the stage.
func (st ShaderTypes) GLType() uint32 {
	return glShaders[st]
}

var glShaders = map[ShaderTypes]uint32{
	VertexShader:   gl.VertexShader,
	FragmentShader: gl.FragmentShader,
	GeometryShader: gl.GeometryShader,
}

// ShaderExtensions maps shader resource name extensions to stages.
var ShaderExtensions = map[string]ShaderTypes{
	".vert": VertexShader,
	".frag": FragmentShader,
	".geom": GeometryShader,
}

// ShaderTypeForName returns the stage of the shader resource
// with the given name, from its extension.
func ShaderTypeForName(name string) (ShaderTypes, error) {
	st, ok := ShaderExtensions[path.Ext(name)]
	if !ok {
		return 0, &ShaderTypeError{Name: name}
	}
	return st, nil
}

// Shader owns one compiled driver shader.
type Shader struct {
	ctx  *Context
	h    handle
	name string
	typ  ShaderTypes
}

// NewShader compiles the given source as a shader of the given stage.
// A compile failure returns a [*CompileError] with the driver log.
func NewShader(ctx *Context, name, src string, typ ShaderTypes) (*Shader, error) {
	d := ctx.Driver
	id := d.CreateShader(typ.GLType())
	if id == 0 {
		return nil, errors.Log(&AllocError{Kind: ShaderHandle, Name: name})
	}
	d.ShaderSource(id, src)
	d.CompileShader(id)
	if d.GetShaderiv(id, gl.CompileStatus) == gl.False {
		msg := d.GetShaderInfoLog(id)
		d.DeleteShader(id)
		if msg == "" {
			msg = "no diagnostic from the driver"
		}
		return nil, errors.Log(&CompileError{Name: name, Type: typ, Log: msg})
	}
	sh := &Shader{ctx: ctx, name: name, typ: typ}
	sh.h = adopt(ctx, sh, ShaderHandle, id, name)
	return sh, nil
}

// VertexShaderFromSource compiles the given vertex shader source.
func VertexShaderFromSource(ctx *Context, name, src string) (*Shader, error) {
	return NewShader(ctx, name, src, VertexShader)
}

// FragmentShaderFromSource compiles the given fragment shader source.
func FragmentShaderFromSource(ctx *Context, name, src string) (*Shader, error) {
	return NewShader(ctx, name, src, FragmentShader)
}

// ShaderFromResource compiles the named shader resource,
// with the stage given by its extension.
func ShaderFromResource(ctx *Context, res *resources.Resources, name string) (*Shader, error) {
	typ, err := ShaderTypeForName(name)
	if err != nil {
		return nil, errors.Log(err)
	}
	src, err := res.LoadString(name)
	if err != nil {
		return nil, errors.Log(&ResourceError{Name: name, Err: err})
	}
	return NewShader(ctx, name, src, typ)
}

// Name returns the name of the shader.
func (sh *Shader) Name() string { return sh.name }

// Type returns the stage of the shader.
func (sh *Shader) Type() ShaderTypes { return sh.typ }

// Handle returns the driver handle, or 0 once released.
func (sh *Shader) Handle() uint32 { return sh.h.id() }

// Release deletes the shader. Programs linked with it are unaffected.
// It is safe to call more than once.
func (sh *Shader) Release() {
	sh.h.release()
}
