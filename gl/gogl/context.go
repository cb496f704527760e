// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gogl

import (
	"fmt"
	"image"
	"runtime"

	"cogentcore.org/glrender/base/errors"
	ogl "github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// note: this file contains the glfw dependencies. Contexts must be
// created, used, and destroyed on the main initial thread.

// Context is a current OpenGL context together with the
// glfw window that owns it.
type Context struct {
	Driver

	// Window is the glfw window owning the context.
	// It is hidden for a no-display context.
	Window *glfw.Window
}

// Init initializes glfw. It locks the calling goroutine to its
// OS thread, since the context is bound to the thread that makes
// it current.
// IMPORTANT: must be called on the main initial thread!
func Init() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return errors.Log(fmt.Errorf("gogl: initializing glfw: %w", err))
	}
	return nil
}

// Terminate shuts down glfw: call as last thing before quitting.
// IMPORTANT: must be called on the main initial thread!
func Terminate() {
	glfw.Terminate()
}

func setHints(visible bool) {
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	if visible {
		glfw.WindowHint(glfw.Visible, glfw.True)
	} else {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}
}

func newContext(size image.Point, title string, visible, vsync bool) (*Context, error) {
	if err := Init(); err != nil {
		return nil, err
	}
	setHints(visible)
	win, err := glfw.CreateWindow(size.X, size.Y, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, errors.Log(fmt.Errorf("gogl: creating window: %w", err))
	}
	win.MakeContextCurrent()
	if vsync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	if err := ogl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, errors.Log(fmt.Errorf("gogl: loading OpenGL entry points: %w", err))
	}
	return &Context{Window: win}, nil
}

// NewNoDisplayContext returns a context on a hidden window of the
// given size, for offscreen rendering and checks without a display.
func NewNoDisplayContext(size image.Point) (*Context, error) {
	return newContext(size, "", false, false)
}

// NewWindowContext returns a context on a new visible window.
func NewWindowContext(size image.Point, title string, vsync bool) (*Context, error) {
	return newContext(size, title, true, vsync)
}

// FramebufferSize returns the size of the window's default framebuffer
// in pixels, which differs from the window size on high-DPI displays.
func (c *Context) FramebufferSize() image.Point {
	w, h := c.Window.GetFramebufferSize()
	return image.Pt(w, h)
}

// Release destroys the window and its context, and terminates glfw.
func (c *Context) Release() {
	if c.Window == nil {
		return
	}
	c.Window.Destroy()
	c.Window = nil
	Terminate()
}
