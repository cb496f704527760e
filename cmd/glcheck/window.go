// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"image"
	"log/slog"

	"cogentcore.org/glrender/config"
	"cogentcore.org/glrender/frame"
	"cogentcore.org/glrender/gl/gogl"
	"cogentcore.org/glrender/gpu"
	"cogentcore.org/glrender/math32"
	"cogentcore.org/glrender/resources"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// runWindow renders frames through an offscreen framebuffer into a
// window until it is closed or escape is pressed. The offscreen
// shaders are reloaded when they change in the configured resources,
// if they are there.
func runWindow(c *config.Config) error {
	glctx, err := gogl.NewWindowContext(image.Pt(c.Window.Width, c.Window.Height), c.Window.Title, c.Window.VSync)
	if err != nil {
		return err
	}
	defer glctx.Release()
	if _, err := gogl.CheckVersion(glctx.Driver, c.MinVersion); err != nil {
		return err
	}
	ctx := gpu.NewContext(glctx.Driver, c.ContextOptions(slog.Default())...)

	var res *resources.Resources
	if r, err := c.OpenResources(); err == nil {
		if _, err := r.LoadBytes(gpu.OffscreenProgram + ".vert"); err == nil {
			res = r
		}
	}
	size := glctx.FramebufferSize()
	o, err := gpu.NewOffscreen(ctx, res, size.X, size.Y)
	if err != nil {
		return err
	}
	defer o.Release()
	var rl *gpu.Reloader
	if res != nil {
		if rl, err = gpu.NewReloader(res, o.Program()); err != nil {
			return err
		}
		defer rl.Close()
	}

	clock := frame.NewClock(nil)
	in := frame.NewInput(clock)
	in.Attach(glctx.Window)
	clear := c.Clear()
	vp := gpu.ViewportForWindow(size.X, size.Y)
	for !glctx.Window.ShouldClose() && !in.Key(glfw.KeyEscape) {
		glfw.PollEvents()
		clock.Update()
		if sz := glctx.FramebufferSize(); sz != size {
			size = sz
			vp.UpdateSize(size.X, size.Y)
			if err := o.Resize(size.X, size.Y); err != nil {
				return err
			}
		}
		if dx, dy := in.FetchMotion(); dx != 0 || dy != 0 {
			r, g, b := clear.Color.X, clear.Color.Y, clear.Color.Z
			clear.UpdateColor(math32.Vec3(wrap01(r+float32(dx)/1000), wrap01(g+float32(dy)/1000), b))
		}
		if in.KeyWithCooldown(glfw.KeyF, 1) {
			slog.Info("frame time", "delta", clock.Delta(), "elapsed", clock.Elapsed())
		}

		o.Bind()
		clear.Clear(ctx)
		o.Detach()
		vp.Refresh(ctx)
		o.RenderOutput()
		ctx.EndFrame()
		glctx.Window.SwapBuffers()
		if rl != nil {
			rl.Poll()
		}
	}
	return nil
}

// wrap01 wraps v into [0, 1).
func wrap01(v float32) float32 {
	return v - math32.Floor(v)
}
