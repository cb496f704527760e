// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gpu owns the driver handles of an OpenGL renderer: buffers,
// vertex arrays, shaders, programs, textures, and framebuffers. Each
// wrapper exclusively owns its handles and releases them exactly once.
//
// All driver state that is shared across wrappers, such as the current
// program or framebuffer, is held by a [Context] that every wrapper is
// constructed with, so that the bind and use discipline is visible at
// call sites and can be tested with a fake driver.
package gpu

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"cogentcore.org/glrender/gl"
)

// HandleKinds are the kinds of driver handles.
type HandleKinds int32

const (
	BufferHandle HandleKinds = iota
	VertexArrayHandle
	ShaderHandle
	ProgramHandle
	TextureHandle
	RenderbufferHandle
	FramebufferHandle
)

var handleKindNames = [...]string{
	BufferHandle:       "buffer",
	VertexArrayHandle:  "vertex array",
	ShaderHandle:       "shader",
	ProgramHandle:      "program",
	TextureHandle:      "texture",
	RenderbufferHandle: "renderbuffer",
	FramebufferHandle:  "framebuffer",
}

func (k HandleKinds) String() string {
	if k < 0 || int(k) >= len(handleKindNames) {
		return fmt.Sprintf("HandleKinds(%d)", int32(k))
	}
	return handleKindNames[k]
}

// handleKey identifies one driver handle.
type handleKey struct {
	kind HandleKinds
	id   uint32
}

// Context is the driver capability that every wrapper is constructed
// with. It records which wrapper owns each live handle, and shadows the
// driver binding state that it changes. It must only be used from the
// thread the driver context is current on.
type Context struct {

	// Driver is the driver that all calls go through.
	Driver gl.Driver

	// Logger receives diagnostics, including leaked handles.
	Logger *slog.Logger

	// UniformDiagnostics logs uniform uploads to names that the
	// current program does not have, at the debug level.
	UniformDiagnostics bool

	owners map[handleKey]string

	// leaked is appended to by cleanups, on the garbage collector's goroutine.
	leakMu sync.Mutex
	leaked []handleKey

	program      uint32
	vertexArray  uint32
	buffers      map[uint32]uint32
	elements     map[uint32]uint32 // vertex array -> element array buffer
	framebuffer  uint32
	renderbuffer uint32
	textures     map[uint32]uint32 // unit -> texture
	activeUnit   uint32
}

// ContextOption is an option for [NewContext].
type ContextOption func(c *Context)

// WithLogger sets the logger of the context. It defaults to [slog.Default].
func WithLogger(l *slog.Logger) ContextOption {
	return func(c *Context) { c.Logger = l }
}

// WithUniformDiagnostics sets [Context.UniformDiagnostics].
func WithUniformDiagnostics(on bool) ContextOption {
	return func(c *Context) { c.UniformDiagnostics = on }
}

// NewContext returns a new context for the given driver.
// The driver must be in its initial binding state.
func NewContext(d gl.Driver, opts ...ContextOption) *Context {
	c := &Context{
		Driver:   d,
		Logger:   slog.Default(),
		owners:   map[handleKey]string{},
		buffers:  map[uint32]uint32{},
		elements: map[uint32]uint32{},
		textures: map[uint32]uint32{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckError consults the driver error register, and panics with a
// [*gl.DriverError] if an error is pending.
func (c *Context) CheckError(op string) {
	gl.Check(c.Driver, op)
}

// EndFrame checks for driver errors raised during the frame, and
// releases the handles of wrappers that were dropped without being
// released. It must be called once per frame.
func (c *Context) EndFrame() {
	c.CheckError("frame")
	c.Collect()
}

// Owned returns the number of live handles owned by wrappers.
func (c *Context) Owned() int { return len(c.owners) }

// Owner returns the name of the wrapper owning the given handle, if any.
func (c *Context) Owner(kind HandleKinds, id uint32) (string, bool) {
	name, ok := c.owners[handleKey{kind, id}]
	return name, ok
}

// Collect releases the handles of wrappers that have become
// unreachable without being released, and returns how many there were.
func (c *Context) Collect() int {
	c.leakMu.Lock()
	leaked := c.leaked
	c.leaked = nil
	c.leakMu.Unlock()
	for _, key := range leaked {
		name, ok := c.owners[key]
		if !ok {
			continue
		}
		c.Logger.Warn("releasing leaked handle", "kind", key.kind, "handle", key.id, "owner", name)
		c.deleteHandle(key)
	}
	return len(leaked)
}

func (c *Context) leak(key handleKey) {
	c.leakMu.Lock()
	c.leaked = append(c.leaked, key)
	c.leakMu.Unlock()
}

// handle is one owned driver handle. The zero value owns nothing.
type handle struct {
	ctx     *Context
	key     handleKey
	cleanup runtime.Cleanup
}

// adopt records that obj owns the given handle, and queues the
// handle for collection if obj becomes unreachable while it is live.
// It panics if the handle is already owned.
func adopt[T any](c *Context, obj *T, kind HandleKinds, id uint32, name string) handle {
	key := handleKey{kind, id}
	if prev, ok := c.owners[key]; ok {
		panic(fmt.Sprintf("gpu: %s handle %d of %s is already owned by %s", kind, id, name, prev))
	}
	c.owners[key] = name
	return handle{ctx: c, key: key, cleanup: runtime.AddCleanup(obj, c.leak, key)}
}

func (h *handle) id() uint32 { return h.key.id }

// release deletes the handle if it is live. It is idempotent.
func (h *handle) release() {
	if h.key.id == 0 {
		return
	}
	h.cleanup.Stop()
	h.ctx.deleteHandle(h.key)
	h.key.id = 0
}

// deleteHandle deletes the given handle and forgets its bindings,
// as the driver does.
func (c *Context) deleteHandle(key handleKey) {
	d := c.Driver
	switch key.kind {
	case BufferHandle:
		d.DeleteBuffer(key.id)
		for target, b := range c.buffers {
			if b == key.id {
				c.buffers[target] = 0
			}
		}
		for va, b := range c.elements {
			if b == key.id {
				c.elements[va] = 0
			}
		}
	case VertexArrayHandle:
		d.DeleteVertexArray(key.id)
		delete(c.elements, key.id)
		if c.vertexArray == key.id {
			c.vertexArray = 0
			c.buffers[gl.ElementArrayBuffer] = 0
		}
	case ShaderHandle:
		d.DeleteShader(key.id)
	case ProgramHandle:
		d.DeleteProgram(key.id)
		if c.program == key.id {
			c.program = 0
		}
	case TextureHandle:
		d.DeleteTexture(key.id)
		for unit, t := range c.textures {
			if t == key.id {
				c.textures[unit] = 0
			}
		}
	case RenderbufferHandle:
		d.DeleteRenderbuffer(key.id)
		if c.renderbuffer == key.id {
			c.renderbuffer = 0
		}
	case FramebufferHandle:
		d.DeleteFramebuffer(key.id)
		if c.framebuffer == key.id {
			c.framebuffer = 0
		}
	}
	delete(c.owners, key)
}

////////  Bindings

// BindBuffer binds the buffer to the given target.
func (c *Context) BindBuffer(target, id uint32) {
	c.Driver.BindBuffer(target, id)
	c.buffers[target] = id
	if target == gl.ElementArrayBuffer && c.vertexArray != 0 {
		c.elements[c.vertexArray] = id
	}
}

// BindVertexArray binds the vertex array. This also
// binds the element array buffer recorded in it.
func (c *Context) BindVertexArray(id uint32) {
	c.Driver.BindVertexArray(id)
	c.vertexArray = id
	c.buffers[gl.ElementArrayBuffer] = c.elements[id]
}

// UseProgram makes the program current.
func (c *Context) UseProgram(id uint32) {
	c.Driver.UseProgram(id)
	c.program = id
}

// BindFramebuffer binds the framebuffer as the draw and read target.
func (c *Context) BindFramebuffer(id uint32) {
	c.Driver.BindFramebuffer(gl.Framebuffer, id)
	c.framebuffer = id
}

// BindRenderbuffer binds the renderbuffer.
func (c *Context) BindRenderbuffer(id uint32) {
	c.Driver.BindRenderbuffer(gl.Renderbuffer, id)
	c.renderbuffer = id
}

// BindTexture binds the 2D texture to the given texture unit,
// counted from 0, and leaves that unit active.
func (c *Context) BindTexture(unit int, id uint32) {
	u := gl.Texture0 + uint32(unit)
	if u != c.activeUnit {
		c.Driver.ActiveTexture(u)
		c.activeUnit = u
	}
	c.Driver.BindTexture(gl.Texture2D, id)
	c.textures[u] = id
}

// CurrentProgram returns the current program.
func (c *Context) CurrentProgram() uint32 { return c.program }

// CurrentVertexArray returns the bound vertex array.
func (c *Context) CurrentVertexArray() uint32 { return c.vertexArray }

// CurrentBuffer returns the buffer bound to the given target.
func (c *Context) CurrentBuffer(target uint32) uint32 { return c.buffers[target] }

// CurrentFramebuffer returns the bound framebuffer.
func (c *Context) CurrentFramebuffer() uint32 { return c.framebuffer }

// CurrentRenderbuffer returns the bound renderbuffer.
func (c *Context) CurrentRenderbuffer() uint32 { return c.renderbuffer }

// CurrentTexture returns the texture bound to the given unit, counted from 0.
func (c *Context) CurrentTexture(unit int) uint32 {
	return c.textures[gl.Texture0+uint32(unit)]
}
