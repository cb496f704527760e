// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"

	"cogentcore.org/glrender/config"
	"cogentcore.org/glrender/gl"
	"cogentcore.org/glrender/gl/gogl"
	"cogentcore.org/glrender/gpu"
	"cogentcore.org/glrender/math32"
	"github.com/muesli/termenv"
)

// check is one named check of the resource layer.
type check struct {
	name string
	run  func(ctx *gpu.Context) error
}

var checks = []check{
	{"framebuffer", checkFramebuffer},
	{"shader errors", checkShaderErrors},
	{"missing uniform", checkMissingUniform},
	{"offscreen output", checkOffscreen},
}

// result is the outcome of a check.
type result struct {
	name string
	err  error
}

// runChecks runs all checks on the context, ending a frame after each
// one so that driver errors are attributed to the check that caused them.
func runChecks(ctx *gpu.Context) []result {
	res := make([]result, 0, len(checks))
	for _, c := range checks {
		res = append(res, result{c.name, runOne(ctx, c)})
	}
	return res
}

func runOne(ctx *gpu.Context, c check) (err error) {
	defer func() {
		if r := recover(); r != nil {
			derr, ok := r.(*gl.DriverError)
			if !ok {
				panic(r)
			}
			err = derr
		}
	}()
	if err := c.run(ctx); err != nil {
		return err
	}
	ctx.EndFrame()
	return nil
}

func checkFramebuffer(ctx *gpu.Context) error {
	fb, err := gpu.NewFramebuffer(ctx, 800, 600)
	if err != nil {
		return err
	}
	defer fb.Release()
	if st := fb.Status(); st != gl.FramebufferComplete {
		return fmt.Errorf("status 0x%04X after creation", st)
	}
	if err := fb.Resize(400, 300); err != nil {
		return err
	}
	if st := fb.Status(); st != gl.FramebufferComplete {
		return fmt.Errorf("status 0x%04X after resize", st)
	}
	return nil
}

func checkShaderErrors(ctx *gpu.Context) error {
	sh, err := gpu.FragmentShaderFromSource(ctx, "invalid.frag", "#version 330 core\n#error intentionally invalid\nvoid main() {}\n")
	var cerr *gpu.CompileError
	if !errors.As(err, &cerr) {
		if sh != nil {
			sh.Release()
		}
		return fmt.Errorf("an invalid shader compiled: %v", err)
	}
	if cerr.Log == "" {
		return errors.New("the compile error has no log")
	}
	return nil
}

func checkMissingUniform(ctx *gpu.Context) error {
	o, err := gpu.NewOffscreen(ctx, nil, 4, 4)
	if err != nil {
		return err
	}
	defer o.Release()
	p := o.Program()
	if p.UploadMat4("nonexistent_uniform", math32.Identity4()) {
		return errors.New("upload to a missing uniform succeeded")
	}
	if cur := ctx.Driver.GetIntegerv(gl.CurrentProgram); cur != 0 {
		return fmt.Errorf("program %d was made current", cur)
	}
	return nil
}

func checkOffscreen(ctx *gpu.Context) error {
	o, err := gpu.NewOffscreen(ctx, nil, 64, 64)
	if err != nil {
		return err
	}
	defer o.Release()
	o.Bind()
	gpu.ColorBufferFromColor(math32.Vec3(1, 0, 0)).Clear(ctx)
	o.Detach()
	o.RenderOutput()
	return nil
}

// runCheck creates a no-display context and reports
// the driver version and the results of all checks.
func runCheck(w io.Writer, c *config.Config) error {
	glctx, err := gogl.NewNoDisplayContext(image.Pt(c.Window.Width, c.Window.Height))
	if err != nil {
		return err
	}
	defer glctx.Release()
	return report(w, glctx.Driver, c, termenv.NewOutput(w))
}

// report runs the checks on the driver and writes the results.
func report(w io.Writer, d gl.Driver, c *config.Config, out *termenv.Output) error {
	pass := out.String("PASS").Foreground(out.Color("2")).Bold()
	fail := out.String("FAIL").Foreground(out.Color("1")).Bold()

	v, err := gogl.CheckVersion(d, c.MinVersion)
	if v != nil {
		fmt.Fprintf(w, "OpenGL %s (%s)\n", v, d.GetString(gl.Version))
	}
	if err != nil {
		fmt.Fprintf(w, "%s version: %v\n", fail, err)
		return err
	}
	ctx := gpu.NewContext(d, c.ContextOptions(slog.Default())...)
	var failed int
	for _, r := range runChecks(ctx) {
		if r.err != nil {
			failed++
			fmt.Fprintf(w, "%s %s: %v\n", fail, r.name, r.err)
			continue
		}
		fmt.Fprintf(w, "%s %s\n", pass, r.name)
	}
	if n := ctx.Owned(); n != 0 {
		failed++
		fmt.Fprintf(w, "%s %d handles still owned after the checks\n", fail, n)
	}
	if failed > 0 {
		return fmt.Errorf("%d checks failed", failed)
	}
	return nil
}
