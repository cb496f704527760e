// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gogl implements [gl.Driver] on the native OpenGL 3.3 core
// bindings from go-gl, and creates contexts for it with glfw.
package gogl

import (
	"strings"
	"unsafe"

	"cogentcore.org/glrender/gl"
	ogl "github.com/go-gl/gl/v3.3-core/gl"
)

// Driver is the native [gl.Driver]. The zero value is ready to use
// once a context is current and [ogl.Init] has succeeded, which
// [NewNoDisplayContext] and [NewWindowContext] take care of.
type Driver struct{}

var _ gl.Driver = Driver{}

func (Driver) GetError() uint32 { return ogl.GetError() }

func (Driver) GetString(name uint32) string {
	return ogl.GoStr(ogl.GetString(name))
}

func (Driver) GetIntegerv(pname uint32) int32 {
	var v int32
	ogl.GetIntegerv(pname, &v)
	return v
}

func (Driver) GenBuffer() uint32 {
	var h uint32
	ogl.GenBuffers(1, &h)
	return h
}

func (Driver) DeleteBuffer(buffer uint32)       { ogl.DeleteBuffers(1, &buffer) }
func (Driver) BindBuffer(target, buffer uint32) { ogl.BindBuffer(target, buffer) }

func (Driver) BufferData(target uint32, size int, data unsafe.Pointer, usage uint32) {
	ogl.BufferData(target, size, data, usage)
}

func (Driver) GetBufferParameteriv(target, pname uint32) int32 {
	var v int32
	ogl.GetBufferParameteriv(target, pname, &v)
	return v
}

func (Driver) GenVertexArray() uint32 {
	var h uint32
	ogl.GenVertexArrays(1, &h)
	return h
}

func (Driver) DeleteVertexArray(array uint32)       { ogl.DeleteVertexArrays(1, &array) }
func (Driver) BindVertexArray(array uint32)         { ogl.BindVertexArray(array) }
func (Driver) EnableVertexAttribArray(index uint32) { ogl.EnableVertexAttribArray(index) }

func (Driver) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr) {
	ogl.VertexAttribPointer(index, size, xtype, normalized, stride, ogl.PtrOffset(int(offset)))
}

func (Driver) VertexAttribIPointer(index uint32, size int32, xtype uint32, stride int32, offset uintptr) {
	ogl.VertexAttribIPointer(index, size, xtype, stride, ogl.PtrOffset(int(offset)))
}

func (Driver) CreateShader(xtype uint32) uint32 { return ogl.CreateShader(xtype) }

func (Driver) ShaderSource(shader uint32, source string) {
	csources, free := ogl.Strs(source + "\x00")
	ogl.ShaderSource(shader, 1, csources, nil)
	free()
}

func (Driver) CompileShader(shader uint32) { ogl.CompileShader(shader) }

func (Driver) GetShaderiv(shader, pname uint32) int32 {
	var v int32
	ogl.GetShaderiv(shader, pname, &v)
	return v
}

func (d Driver) GetShaderInfoLog(shader uint32) string {
	n := d.GetShaderiv(shader, ogl.INFO_LOG_LENGTH)
	if n <= 0 {
		return ""
	}
	msg := strings.Repeat("\x00", int(n+1))
	ogl.GetShaderInfoLog(shader, n, nil, ogl.Str(msg))
	return strings.TrimRight(msg, "\x00")
}

func (Driver) DeleteShader(shader uint32)          { ogl.DeleteShader(shader) }
func (Driver) CreateProgram() uint32               { return ogl.CreateProgram() }
func (Driver) AttachShader(program, shader uint32) { ogl.AttachShader(program, shader) }
func (Driver) DetachShader(program, shader uint32) { ogl.DetachShader(program, shader) }
func (Driver) LinkProgram(program uint32)          { ogl.LinkProgram(program) }

func (Driver) GetProgramiv(program, pname uint32) int32 {
	var v int32
	ogl.GetProgramiv(program, pname, &v)
	return v
}

func (d Driver) GetProgramInfoLog(program uint32) string {
	n := d.GetProgramiv(program, ogl.INFO_LOG_LENGTH)
	if n <= 0 {
		return ""
	}
	msg := strings.Repeat("\x00", int(n+1))
	ogl.GetProgramInfoLog(program, n, nil, ogl.Str(msg))
	return strings.TrimRight(msg, "\x00")
}

func (Driver) UseProgram(program uint32)    { ogl.UseProgram(program) }
func (Driver) DeleteProgram(program uint32) { ogl.DeleteProgram(program) }

func (Driver) GetUniformLocation(program uint32, name string) int32 {
	return ogl.GetUniformLocation(program, ogl.Str(name+"\x00"))
}

func (Driver) Uniform1i(location, v0 int32)             { ogl.Uniform1i(location, v0) }
func (Driver) Uniform1f(location int32, v0 float32)     { ogl.Uniform1f(location, v0) }
func (Driver) Uniform2f(location int32, v0, v1 float32) { ogl.Uniform2f(location, v0, v1) }
func (Driver) Uniform3f(location int32, v0, v1, v2 float32) {
	ogl.Uniform3f(location, v0, v1, v2)
}

func (Driver) Uniform4f(location int32, v0, v1, v2, v3 float32) {
	ogl.Uniform4f(location, v0, v1, v2, v3)
}

func (Driver) UniformMatrix3fv(location int32, transpose bool, value *[9]float32) {
	ogl.UniformMatrix3fv(location, 1, transpose, &value[0])
}

func (Driver) UniformMatrix4fv(location int32, transpose bool, value *[16]float32) {
	ogl.UniformMatrix4fv(location, 1, transpose, &value[0])
}

func (Driver) GenTexture() uint32 {
	var h uint32
	ogl.GenTextures(1, &h)
	return h
}

func (Driver) DeleteTexture(texture uint32)                    { ogl.DeleteTextures(1, &texture) }
func (Driver) ActiveTexture(unit uint32)                       { ogl.ActiveTexture(unit) }
func (Driver) BindTexture(target, texture uint32)              { ogl.BindTexture(target, texture) }
func (Driver) TexParameteri(target, pname uint32, param int32) { ogl.TexParameteri(target, pname, param) }
func (Driver) PixelStorei(pname uint32, param int32)           { ogl.PixelStorei(pname, param) }

func (Driver) TexImage2D(target uint32, level, internalFormat, width, height int32, format, xtype uint32, pixels unsafe.Pointer) {
	ogl.TexImage2D(target, level, internalFormat, width, height, 0, format, xtype, pixels)
}

func (Driver) GenerateMipmap(target uint32) { ogl.GenerateMipmap(target) }

func (Driver) GenFramebuffer() uint32 {
	var h uint32
	ogl.GenFramebuffers(1, &h)
	return h
}

func (Driver) DeleteFramebuffer(framebuffer uint32)       { ogl.DeleteFramebuffers(1, &framebuffer) }
func (Driver) BindFramebuffer(target, framebuffer uint32) { ogl.BindFramebuffer(target, framebuffer) }

func (Driver) FramebufferTexture2D(target, attachment, texTarget, texture uint32, level int32) {
	ogl.FramebufferTexture2D(target, attachment, texTarget, texture, level)
}

func (Driver) FramebufferRenderbuffer(target, attachment, rbTarget, renderbuffer uint32) {
	ogl.FramebufferRenderbuffer(target, attachment, rbTarget, renderbuffer)
}

func (Driver) CheckFramebufferStatus(target uint32) uint32 {
	return ogl.CheckFramebufferStatus(target)
}

func (Driver) GenRenderbuffer() uint32 {
	var h uint32
	ogl.GenRenderbuffers(1, &h)
	return h
}

func (Driver) DeleteRenderbuffer(renderbuffer uint32)       { ogl.DeleteRenderbuffers(1, &renderbuffer) }
func (Driver) BindRenderbuffer(target, renderbuffer uint32) { ogl.BindRenderbuffer(target, renderbuffer) }

func (Driver) RenderbufferStorage(target, internalFormat uint32, width, height int32) {
	ogl.RenderbufferStorage(target, internalFormat, width, height)
}

func (Driver) Viewport(x, y, width, height int32)         { ogl.Viewport(x, y, width, height) }
func (Driver) ClearColor(r, g, b, a float32)              { ogl.ClearColor(r, g, b, a) }
func (Driver) Clear(mask uint32)                          { ogl.Clear(mask) }
func (Driver) Enable(capability uint32)                   { ogl.Enable(capability) }
func (Driver) Disable(capability uint32)                  { ogl.Disable(capability) }
func (Driver) BlendFunc(sfactor, dfactor uint32)          { ogl.BlendFunc(sfactor, dfactor) }
func (Driver) DrawArrays(mode uint32, first, count int32) { ogl.DrawArrays(mode, first, count) }

func (Driver) DrawElements(mode uint32, count int32, xtype uint32, offset uintptr) {
	ogl.DrawElements(mode, count, xtype, ogl.PtrOffset(int(offset)))
}
