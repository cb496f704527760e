// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gltest provides an in-memory [gl.Driver] that emulates the
// OpenGL object model closely enough to test resource management
// without a GPU: handle allocation and release, bindings, buffer
// storage, shader compilation, program linking with uniform discovery,
// texture uploads, framebuffer completeness, and the error register.
package gltest

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"
	"unsafe"

	"cogentcore.org/glrender/gl"
)

// Kinds are the kinds of driver objects tracked by [Driver].
type Kinds int32

const (
	Buffer Kinds = iota
	VertexArray
	Shader
	Program
	Texture
	Framebuffer
	Renderbuffer
	kindsN
)

var kindNames = [...]string{"buffer", "vertex array", "shader", "program", "texture", "framebuffer", "renderbuffer"}

func (k Kinds) String() string {
	if k < 0 || k >= kindsN {
		return fmt.Sprintf("Kinds(%d)", int32(k))
	}
	return kindNames[k]
}

// BufferState is the driver-side state of a buffer object.
type BufferState struct {
	Data  []byte
	Usage uint32
}

// Attrib is the driver-side state of one vertex attribute.
type Attrib struct {
	Enabled    bool
	Size       int32
	Type       uint32
	Normalized bool
	Integer    bool
	Stride     int32
	Offset     uintptr
	Buffer     uint32
}

// VertexArrayState is the driver-side state of a vertex array object.
type VertexArrayState struct {
	Attribs      map[uint32]*Attrib
	ElementArray uint32
}

// ShaderState is the driver-side state of a shader object.
type ShaderState struct {
	Type     uint32
	Source   string
	Compiled bool
	Log      string
	deleted  bool
	attached int
}

// ProgramState is the driver-side state of a program object.
type ProgramState struct {
	Attached []uint32
	Linked   bool
	Log      string

	// Uniforms maps active uniform names to their locations.
	Uniforms map[string]int32

	// Values holds the last value written to each location:
	// int32, float32, or a [N]float32 array.
	Values map[int32]any
}

// TextureState is the driver-side state of a texture object.
type TextureState struct {
	Width, Height  int32
	InternalFormat int32
	Format         uint32
	Pixels         []byte
	Params         map[uint32]int32
	Mipmaps        bool
}

// FramebufferState is the driver-side state of a framebuffer object.
type FramebufferState struct {
	Color uint32
	Depth uint32
}

// RenderbufferState is the driver-side state of a renderbuffer object.
type RenderbufferState struct {
	InternalFormat uint32
	Width, Height  int32
}

// DrawCall records one draw call and the state it was issued with.
type DrawCall struct {
	Mode        uint32
	Count       int32
	Indexed     bool
	Program     uint32
	VertexArray uint32
	Framebuffer uint32
}

// Driver is an in-memory [gl.Driver].
type Driver struct {

	// VersionString is returned for the [gl.Version] string.
	VersionString string

	// Mutations counts every call that changes driver state.
	// Queries do not count.
	Mutations int

	// Draws records all draw calls in order.
	Draws []DrawCall

	// ViewportRect is the current viewport as x, y, width, height.
	ViewportRect [4]int32

	// ClearRGBA is the current clear color.
	ClearRGBA [4]float32

	// Clears records the masks passed to Clear.
	Clears []uint32

	// Enabled is the set of enabled capabilities.
	Enabled map[uint32]bool

	// ForceIncomplete makes every framebuffer fail its completeness check.
	ForceIncomplete bool

	errs      []uint32
	next      [kindsN]uint32
	allocated [kindsN]int
	released  [kindsN]int
	failAlloc [kindsN]int

	buffers       map[uint32]*BufferState
	vertexArrays  map[uint32]*VertexArrayState
	shaders       map[uint32]*ShaderState
	programs      map[uint32]*ProgramState
	textures      map[uint32]*TextureState
	framebuffers  map[uint32]*FramebufferState
	renderbuffers map[uint32]*RenderbufferState

	bufferBindings map[uint32]uint32
	textureUnits   map[uint32]uint32
	activeUnit     uint32
	vertexArray    uint32
	program        uint32
	framebuffer    uint32
	renderbuffer   uint32
	unpackAlign    int32
}

var _ gl.Driver = (*Driver)(nil)

// New returns a new [Driver] emulating an OpenGL 3.3 core context.
func New() *Driver {
	return &Driver{
		VersionString:  "3.3.0 gltest",
		Enabled:        map[uint32]bool{},
		buffers:        map[uint32]*BufferState{},
		vertexArrays:   map[uint32]*VertexArrayState{},
		shaders:        map[uint32]*ShaderState{},
		programs:       map[uint32]*ProgramState{},
		textures:       map[uint32]*TextureState{},
		framebuffers:   map[uint32]*FramebufferState{},
		renderbuffers:  map[uint32]*RenderbufferState{},
		bufferBindings: map[uint32]uint32{},
		textureUnits:   map[uint32]uint32{},
		activeUnit:     gl.Texture0,
		unpackAlign:    4,
	}
}

// InjectError queues the given code on the error register.
func (d *Driver) InjectError(code uint32) {
	d.errs = append(d.errs, code)
}

// FailAlloc makes the next n handle allocations of the given kind return 0.
func (d *Driver) FailAlloc(k Kinds, n int) {
	d.failAlloc[k] = n
}

// Allocated returns the number of handles of the given kind allocated so far.
func (d *Driver) Allocated(k Kinds) int { return d.allocated[k] }

// Released returns the number of handles of the given kind released so far.
func (d *Driver) Released(k Kinds) int { return d.released[k] }

// Live returns the number of handles of the given kind currently allocated.
func (d *Driver) Live(k Kinds) int { return d.allocated[k] - d.released[k] }

// LiveTotal returns the number of handles of all kinds currently allocated.
func (d *Driver) LiveTotal() int {
	n := 0
	for k := range kindsN {
		n += d.Live(k)
	}
	return n
}

// Buffer returns the state of the given buffer, or nil.
func (d *Driver) Buffer(h uint32) *BufferState { return d.buffers[h] }

// VertexArray returns the state of the given vertex array, or nil.
func (d *Driver) VertexArray(h uint32) *VertexArrayState { return d.vertexArrays[h] }

// Shader returns the state of the given shader, or nil.
func (d *Driver) Shader(h uint32) *ShaderState { return d.shaders[h] }

// Program returns the state of the given program, or nil.
func (d *Driver) Program(h uint32) *ProgramState { return d.programs[h] }

// Texture returns the state of the given texture, or nil.
func (d *Driver) Texture(h uint32) *TextureState { return d.textures[h] }

// Framebuffer returns the state of the given framebuffer, or nil.
func (d *Driver) Framebuffer(h uint32) *FramebufferState { return d.framebuffers[h] }

// Renderbuffer returns the state of the given renderbuffer, or nil.
func (d *Driver) Renderbuffer(h uint32) *RenderbufferState { return d.renderbuffers[h] }

// UniformValue returns the last value written to the named uniform
// of the given program.
func (d *Driver) UniformValue(program uint32, name string) (any, bool) {
	p := d.programs[program]
	if p == nil {
		return nil, false
	}
	loc, ok := p.Uniforms[name]
	if !ok {
		return nil, false
	}
	v, ok := p.Values[loc]
	return v, ok
}

func (d *Driver) fail(code uint32) {
	d.errs = append(d.errs, code)
}

func (d *Driver) gen(k Kinds) uint32 {
	if d.failAlloc[k] > 0 {
		d.failAlloc[k]--
		return 0
	}
	d.Mutations++
	d.next[k]++
	d.allocated[k]++
	return d.next[k]
}

func (d *Driver) GetError() uint32 {
	if len(d.errs) == 0 {
		return gl.NoError
	}
	code := d.errs[0]
	d.errs = d.errs[1:]
	return code
}

func (d *Driver) GetString(name uint32) string {
	switch name {
	case gl.Vendor:
		return "Cogent Core"
	case gl.Renderer:
		return "gltest"
	case gl.Version:
		return d.VersionString
	case gl.ShadingLanguageVersion:
		return "3.30"
	}
	d.fail(gl.InvalidEnum)
	return ""
}

func (d *Driver) GetIntegerv(pname uint32) int32 {
	switch pname {
	case gl.ArrayBufferBinding:
		return int32(d.bufferBindings[gl.ArrayBuffer])
	case gl.ElementArrayBufferBinding:
		return int32(d.bufferBindings[gl.ElementArrayBuffer])
	case gl.VertexArrayBinding:
		return int32(d.vertexArray)
	case gl.CurrentProgram:
		return int32(d.program)
	case gl.TextureBinding2D:
		return int32(d.textureUnits[d.activeUnit])
	case gl.FramebufferBinding:
		return int32(d.framebuffer)
	case gl.RenderbufferBinding:
		return int32(d.renderbuffer)
	case gl.ActiveTexture:
		return int32(d.activeUnit)
	case gl.UnpackAlignment:
		return d.unpackAlign
	case gl.MajorVersion, gl.MinorVersion:
		var major, minor int32
		fmt.Sscanf(d.VersionString, "%d.%d", &major, &minor)
		if pname == gl.MajorVersion {
			return major
		}
		return minor
	}
	d.fail(gl.InvalidEnum)
	return 0
}

////////  Buffers

func validBufferTarget(target uint32) bool {
	return target == gl.ArrayBuffer || target == gl.ElementArrayBuffer
}

func (d *Driver) GenBuffer() uint32 {
	h := d.gen(Buffer)
	if h != 0 {
		d.buffers[h] = &BufferState{}
	}
	return h
}

func (d *Driver) DeleteBuffer(buffer uint32) {
	if _, ok := d.buffers[buffer]; !ok {
		return
	}
	d.Mutations++
	delete(d.buffers, buffer)
	d.released[Buffer]++
	for t, b := range d.bufferBindings {
		if b == buffer {
			d.bufferBindings[t] = 0
		}
	}
}

func (d *Driver) BindBuffer(target, buffer uint32) {
	if !validBufferTarget(target) {
		d.fail(gl.InvalidEnum)
		return
	}
	if _, ok := d.buffers[buffer]; buffer != 0 && !ok {
		d.fail(gl.InvalidOperation)
		return
	}
	d.Mutations++
	d.bufferBindings[target] = buffer
	if target == gl.ElementArrayBuffer && d.vertexArray != 0 {
		d.vertexArrays[d.vertexArray].ElementArray = buffer
	}
}

func (d *Driver) BufferData(target uint32, size int, data unsafe.Pointer, usage uint32) {
	if !validBufferTarget(target) || (usage != gl.StaticDraw && usage != gl.DynamicDraw) {
		d.fail(gl.InvalidEnum)
		return
	}
	if size < 0 {
		d.fail(gl.InvalidValue)
		return
	}
	b := d.buffers[d.bufferBindings[target]]
	if b == nil {
		d.fail(gl.InvalidOperation)
		return
	}
	d.Mutations++
	b.Usage = usage
	b.Data = make([]byte, size)
	if data != nil && size > 0 {
		copy(b.Data, unsafe.Slice((*byte)(data), size))
	}
}

func (d *Driver) GetBufferParameteriv(target, pname uint32) int32 {
	if !validBufferTarget(target) || pname != gl.BufferSize {
		d.fail(gl.InvalidEnum)
		return 0
	}
	b := d.buffers[d.bufferBindings[target]]
	if b == nil {
		d.fail(gl.InvalidOperation)
		return 0
	}
	return int32(len(b.Data))
}

////////  Vertex arrays

func (d *Driver) GenVertexArray() uint32 {
	h := d.gen(VertexArray)
	if h != 0 {
		d.vertexArrays[h] = &VertexArrayState{Attribs: map[uint32]*Attrib{}}
	}
	return h
}

func (d *Driver) DeleteVertexArray(array uint32) {
	if _, ok := d.vertexArrays[array]; !ok {
		return
	}
	d.Mutations++
	delete(d.vertexArrays, array)
	d.released[VertexArray]++
	if d.vertexArray == array {
		d.vertexArray = 0
	}
}

func (d *Driver) BindVertexArray(array uint32) {
	va, ok := d.vertexArrays[array]
	if array != 0 && !ok {
		d.fail(gl.InvalidOperation)
		return
	}
	d.Mutations++
	d.vertexArray = array
	if va != nil {
		d.bufferBindings[gl.ElementArrayBuffer] = va.ElementArray
	} else {
		d.bufferBindings[gl.ElementArrayBuffer] = 0
	}
}

// maxVertexAttribs is the number of attribute locations the driver reports.
const maxVertexAttribs = 16

func (d *Driver) attrib(index uint32) *Attrib {
	if d.vertexArray == 0 {
		d.fail(gl.InvalidOperation)
		return nil
	}
	if index >= maxVertexAttribs {
		d.fail(gl.InvalidValue)
		return nil
	}
	va := d.vertexArrays[d.vertexArray]
	a := va.Attribs[index]
	if a == nil {
		a = &Attrib{}
		va.Attribs[index] = a
	}
	return a
}

func (d *Driver) EnableVertexAttribArray(index uint32) {
	a := d.attrib(index)
	if a == nil {
		return
	}
	d.Mutations++
	a.Enabled = true
}

func validAttribType(xtype uint32, integer bool) bool {
	switch xtype {
	case gl.Byte, gl.UnsignedByte, gl.Short, gl.UnsignedShort, gl.Int, gl.UnsignedInt:
		return true
	case gl.Float, gl.UnsignedInt2101010Rev, gl.Int2101010Rev:
		return !integer
	}
	return false
}

func (d *Driver) setAttrib(index uint32, size int32, xtype uint32, normalized, integer bool, stride int32, offset uintptr) {
	if !validAttribType(xtype, integer) {
		d.fail(gl.InvalidEnum)
		return
	}
	if size < 1 || size > 4 || stride < 0 {
		d.fail(gl.InvalidValue)
		return
	}
	if (xtype == gl.UnsignedInt2101010Rev || xtype == gl.Int2101010Rev) && size != 4 {
		d.fail(gl.InvalidOperation)
		return
	}
	buf := d.bufferBindings[gl.ArrayBuffer]
	if buf == 0 && offset != 0 {
		d.fail(gl.InvalidOperation)
		return
	}
	a := d.attrib(index)
	if a == nil {
		return
	}
	d.Mutations++
	a.Size, a.Type, a.Normalized, a.Integer = size, xtype, normalized, integer
	a.Stride, a.Offset, a.Buffer = stride, offset, buf
}

func (d *Driver) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr) {
	d.setAttrib(index, size, xtype, normalized, false, stride, offset)
}

func (d *Driver) VertexAttribIPointer(index uint32, size int32, xtype uint32, stride int32, offset uintptr) {
	d.setAttrib(index, size, xtype, false, true, stride, offset)
}

////////  Shaders

func (d *Driver) CreateShader(xtype uint32) uint32 {
	switch xtype {
	case gl.VertexShader, gl.FragmentShader, gl.GeometryShader:
	default:
		d.fail(gl.InvalidEnum)
		return 0
	}
	h := d.gen(Shader)
	if h != 0 {
		d.shaders[h] = &ShaderState{Type: xtype}
	}
	return h
}

func (d *Driver) ShaderSource(shader uint32, source string) {
	s := d.shaders[shader]
	if s == nil {
		d.fail(gl.InvalidValue)
		return
	}
	d.Mutations++
	s.Source = source
}

var errorDirective = regexp.MustCompile(`(?m)^\s*#error\s*(.*)$`)

// CompileShader compiles the source with a few checks standing in for
// a real compiler: the source must not be empty, must define main, and
// must not contain an #error directive.
func (d *Driver) CompileShader(shader uint32) {
	s := d.shaders[shader]
	if s == nil {
		d.fail(gl.InvalidValue)
		return
	}
	d.Mutations++
	s.Compiled = false
	switch {
	case strings.TrimSpace(s.Source) == "":
		s.Log = "0:0(0): error: empty shader source"
	case errorDirective.MatchString(s.Source):
		m := errorDirective.FindStringSubmatch(s.Source)
		s.Log = "0:0(0): error: #error " + strings.TrimSpace(m[1])
	case !strings.Contains(s.Source, "void main"):
		s.Log = "0:0(0): error: function `main' is not defined"
	default:
		s.Log = ""
		s.Compiled = true
	}
}

func (d *Driver) GetShaderiv(shader, pname uint32) int32 {
	s := d.shaders[shader]
	if s == nil {
		d.fail(gl.InvalidValue)
		return 0
	}
	switch pname {
	case gl.CompileStatus:
		if s.Compiled {
			return gl.True
		}
		return gl.False
	case gl.InfoLogLength:
		if s.Log == "" {
			return 0
		}
		return int32(len(s.Log) + 1)
	}
	d.fail(gl.InvalidEnum)
	return 0
}

func (d *Driver) GetShaderInfoLog(shader uint32) string {
	s := d.shaders[shader]
	if s == nil {
		d.fail(gl.InvalidValue)
		return ""
	}
	return s.Log
}

func (d *Driver) DeleteShader(shader uint32) {
	s := d.shaders[shader]
	if s == nil || s.deleted {
		return
	}
	d.Mutations++
	s.deleted = true
	d.released[Shader]++
	if s.attached == 0 {
		delete(d.shaders, shader)
	}
}

////////  Programs

func (d *Driver) CreateProgram() uint32 {
	h := d.gen(Program)
	if h != 0 {
		d.programs[h] = &ProgramState{Uniforms: map[string]int32{}, Values: map[int32]any{}}
	}
	return h
}

func (d *Driver) AttachShader(program, shader uint32) {
	p, s := d.programs[program], d.shaders[shader]
	if p == nil || s == nil {
		d.fail(gl.InvalidValue)
		return
	}
	if slices.Contains(p.Attached, shader) {
		d.fail(gl.InvalidOperation)
		return
	}
	d.Mutations++
	p.Attached = append(p.Attached, shader)
	s.attached++
}

func (d *Driver) DetachShader(program, shader uint32) {
	p, s := d.programs[program], d.shaders[shader]
	if p == nil || s == nil {
		d.fail(gl.InvalidValue)
		return
	}
	i := slices.Index(p.Attached, shader)
	if i < 0 {
		d.fail(gl.InvalidOperation)
		return
	}
	d.Mutations++
	p.Attached = slices.Delete(p.Attached, i, i+1)
	s.attached--
	if s.deleted && s.attached == 0 {
		delete(d.shaders, shader)
	}
}

var uniformDecl = regexp.MustCompile(`(?m)^\s*uniform\s+(?:(?:lowp|mediump|highp)\s+)?\w+\s+(\w+)\s*(?:\[\s*\d+\s*\])?\s*;`)

// LinkProgram links the attached shaders. It requires one compiled
// vertex and one compiled fragment shader, and assigns locations to
// the uniforms declared in their sources in order of appearance.
func (d *Driver) LinkProgram(program uint32) {
	p := d.programs[program]
	if p == nil {
		d.fail(gl.InvalidValue)
		return
	}
	d.Mutations++
	p.Linked = false
	p.Uniforms = map[string]int32{}
	p.Values = map[int32]any{}
	stages := map[uint32]bool{}
	var srcs []string
	for _, h := range p.Attached {
		s := d.shaders[h]
		if !s.Compiled {
			p.Log = fmt.Sprintf("error: linking with uncompiled shader %d", h)
			return
		}
		stages[s.Type] = true
		srcs = append(srcs, s.Source)
	}
	switch {
	case !stages[gl.VertexShader]:
		p.Log = "error: no vertex shader attached"
		return
	case !stages[gl.FragmentShader]:
		p.Log = "error: no fragment shader attached"
		return
	}
	for _, src := range srcs {
		for _, m := range uniformDecl.FindAllStringSubmatch(src, -1) {
			if _, ok := p.Uniforms[m[1]]; !ok {
				p.Uniforms[m[1]] = int32(len(p.Uniforms))
			}
		}
	}
	p.Log = ""
	p.Linked = true
}

func (d *Driver) GetProgramiv(program, pname uint32) int32 {
	p := d.programs[program]
	if p == nil {
		d.fail(gl.InvalidValue)
		return 0
	}
	switch pname {
	case gl.LinkStatus:
		if p.Linked {
			return gl.True
		}
		return gl.False
	case gl.InfoLogLength:
		if p.Log == "" {
			return 0
		}
		return int32(len(p.Log) + 1)
	}
	d.fail(gl.InvalidEnum)
	return 0
}

func (d *Driver) GetProgramInfoLog(program uint32) string {
	p := d.programs[program]
	if p == nil {
		d.fail(gl.InvalidValue)
		return ""
	}
	return p.Log
}

func (d *Driver) UseProgram(program uint32) {
	if program != 0 {
		p := d.programs[program]
		if p == nil {
			d.fail(gl.InvalidValue)
			return
		}
		if !p.Linked {
			d.fail(gl.InvalidOperation)
			return
		}
	}
	d.Mutations++
	d.program = program
}

func (d *Driver) DeleteProgram(program uint32) {
	p := d.programs[program]
	if p == nil {
		return
	}
	d.Mutations++
	for _, h := range p.Attached {
		if s := d.shaders[h]; s != nil {
			s.attached--
			if s.deleted && s.attached == 0 {
				delete(d.shaders, h)
			}
		}
	}
	delete(d.programs, program)
	d.released[Program]++
	if d.program == program {
		d.program = 0
	}
}

////////  Uniforms

func (d *Driver) GetUniformLocation(program uint32, name string) int32 {
	p := d.programs[program]
	if p == nil {
		d.fail(gl.InvalidValue)
		return -1
	}
	if !p.Linked {
		d.fail(gl.InvalidOperation)
		return -1
	}
	if loc, ok := p.Uniforms[name]; ok {
		return loc
	}
	return -1
}

// setUniform stores v at the location in the current program.
// Location -1 is silently ignored, as the driver contract specifies.
func (d *Driver) setUniform(location int32, v any) {
	if location == -1 {
		return
	}
	p := d.programs[d.program]
	if p == nil {
		d.fail(gl.InvalidOperation)
		return
	}
	if !slices.Contains(slices.Collect(maps.Values(p.Uniforms)), location) {
		d.fail(gl.InvalidOperation)
		return
	}
	d.Mutations++
	p.Values[location] = v
}

func (d *Driver) Uniform1i(location, v0 int32) { d.setUniform(location, v0) }

func (d *Driver) Uniform1f(location int32, v0 float32) { d.setUniform(location, v0) }

func (d *Driver) Uniform2f(location int32, v0, v1 float32) {
	d.setUniform(location, [2]float32{v0, v1})
}

func (d *Driver) Uniform3f(location int32, v0, v1, v2 float32) {
	d.setUniform(location, [3]float32{v0, v1, v2})
}

func (d *Driver) Uniform4f(location int32, v0, v1, v2, v3 float32) {
	d.setUniform(location, [4]float32{v0, v1, v2, v3})
}

func (d *Driver) UniformMatrix3fv(location int32, transpose bool, value *[9]float32) {
	d.setUniform(location, *value)
}

func (d *Driver) UniformMatrix4fv(location int32, transpose bool, value *[16]float32) {
	d.setUniform(location, *value)
}
