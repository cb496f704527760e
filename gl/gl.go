// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gl defines the OpenGL driver as an explicit capability
// object. Everything that touches the GPU goes through a [Driver],
// so a fake (see package gltest) can stand in for the real driver
// in tests, and the shared "currently bound" state is never hidden
// behind package-level globals.
package gl

import "unsafe"

// Driver is the subset of OpenGL 3.3 core entry points used by the
// resource layer. Handle-generating calls allocate one handle at a
// time and return 0 on failure. All methods operate on the context
// that is current for the calling thread, and must be called from
// that thread only.
type Driver interface {
	// GetError returns and clears the oldest pending error code,
	// or [NoError] if there is none.
	GetError() uint32

	// GetString returns a driver description string such as [Version].
	GetString(name uint32) string

	// GetIntegerv returns an integer state value such as [CurrentProgram].
	GetIntegerv(pname uint32) int32

	// Buffer objects
	GenBuffer() uint32
	DeleteBuffer(buffer uint32)
	BindBuffer(target, buffer uint32)
	BufferData(target uint32, size int, data unsafe.Pointer, usage uint32)
	GetBufferParameteriv(target, pname uint32) int32

	// Vertex array objects
	GenVertexArray() uint32
	DeleteVertexArray(array uint32)
	BindVertexArray(array uint32)
	EnableVertexAttribArray(index uint32)
	// VertexAttribPointer sets a float attribute; integer data is
	// converted, and normalized to [0,1] or [-1,1] when normalized is set.
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr)
	// VertexAttribIPointer sets an integer attribute, passed through unconverted.
	VertexAttribIPointer(index uint32, size int32, xtype uint32, stride int32, offset uintptr)

	// Shaders
	CreateShader(xtype uint32) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	GetShaderiv(shader, pname uint32) int32
	GetShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	// Programs
	CreateProgram() uint32
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	LinkProgram(program uint32)
	GetProgramiv(program, pname uint32) int32
	GetProgramInfoLog(program uint32) string
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	// Uniforms. GetUniformLocation returns -1 for a name that
	// does not resolve to an active uniform.
	GetUniformLocation(program uint32, name string) int32
	Uniform1i(location, v0 int32)
	Uniform1f(location int32, v0 float32)
	Uniform2f(location int32, v0, v1 float32)
	Uniform3f(location int32, v0, v1, v2 float32)
	Uniform4f(location int32, v0, v1, v2, v3 float32)
	UniformMatrix3fv(location int32, transpose bool, value *[9]float32)
	UniformMatrix4fv(location int32, transpose bool, value *[16]float32)

	// Textures
	GenTexture() uint32
	DeleteTexture(texture uint32)
	ActiveTexture(unit uint32)
	BindTexture(target, texture uint32)
	TexParameteri(target, pname uint32, param int32)
	PixelStorei(pname uint32, param int32)
	// TexImage2D specifies a two-dimensional texture image.
	// The pixels pointer may be nil to allocate storage without uploading data.
	TexImage2D(target uint32, level, internalFormat, width, height int32, format, xtype uint32, pixels unsafe.Pointer)
	GenerateMipmap(target uint32)

	// Framebuffers and renderbuffers
	GenFramebuffer() uint32
	DeleteFramebuffer(framebuffer uint32)
	BindFramebuffer(target, framebuffer uint32)
	FramebufferTexture2D(target, attachment, texTarget, texture uint32, level int32)
	FramebufferRenderbuffer(target, attachment, rbTarget, renderbuffer uint32)
	CheckFramebufferStatus(target uint32) uint32
	GenRenderbuffer() uint32
	DeleteRenderbuffer(renderbuffer uint32)
	BindRenderbuffer(target, renderbuffer uint32)
	RenderbufferStorage(target, internalFormat uint32, width, height int32)

	// Rasterizer state and drawing
	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear(mask uint32)
	Enable(capability uint32)
	Disable(capability uint32)
	BlendFunc(sfactor, dfactor uint32)
	DrawArrays(mode uint32, first, count int32)
	DrawElements(mode uint32, count int32, xtype uint32, offset uintptr)
}
