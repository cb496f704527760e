// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"runtime"
	"testing"
	"time"

	"cogentcore.org/glrender/gl"
	"cogentcore.org/glrender/gl/gltest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T, opts ...ContextOption) (*gltest.Driver, *Context) {
	t.Helper()
	d := gltest.New()
	return d, NewContext(d, opts...)
}

// driverPanic calls f, which must panic with a [*gl.DriverError].
func driverPanic(t *testing.T, f func()) (derr *gl.DriverError) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a driver error panic")
		var ok bool
		derr, ok = r.(*gl.DriverError)
		require.True(t, ok, "panic value %v is not a driver error", r)
	}()
	f()
	return nil
}

func TestEndFrame(t *testing.T) {
	d, ctx := newTestContext(t)
	ctx.EndFrame()

	d.InjectError(gl.InvalidEnum)
	d.InjectError(gl.InvalidValue)
	derr := driverPanic(t, ctx.EndFrame)
	assert.Equal(t, gl.KindInvalidEnum, derr.Kind)
	assert.Equal(t, uint32(gl.InvalidEnum), derr.Code)
	assert.Equal(t, "gl: frame: invalid enum (0x0500)", derr.Error())
	assert.Equal(t, uint32(gl.NoError), d.GetError(), "pending errors are drained")

	d.BindBuffer(gl.ArrayBuffer, 42)
	derr = driverPanic(t, func() { ctx.CheckError("bind") })
	assert.Equal(t, gl.KindInvalidOperation, derr.Kind)
}

func TestOwnership(t *testing.T) {
	_, ctx := newTestContext(t)
	b, err := NewArrayBuffer(ctx)
	require.NoError(t, err)
	owner, ok := ctx.Owner(BufferHandle, b.Handle())
	assert.True(t, ok)
	assert.Equal(t, "array buffer", owner)
	assert.Equal(t, 1, ctx.Owned())

	var other Buffer[ArrayKind]
	assert.Panics(t, func() { adopt(ctx, &other, BufferHandle, b.Handle(), "copy") })
	_, ok = ctx.Owner(TextureHandle, b.Handle())
	assert.False(t, ok, "handles of different kinds are distinct")

	id := b.Handle()
	b.Release()
	assert.Zero(t, ctx.Owned())
	assert.NotPanics(t, func() { other.h = adopt(ctx, &other, BufferHandle, id, "reused") })
	other.h.cleanup.Stop()
}

func TestCollectLeaked(t *testing.T) {
	d, ctx := newTestContext(t)
	func() {
		_, err := NewArrayBuffer(ctx)
		require.NoError(t, err)
	}()
	kept, err := NewElementArrayBuffer(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, d.Live(gltest.Buffer))

	assert.Eventually(t, func() bool {
		runtime.GC()
		return ctx.Collect() > 0
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, d.Live(gltest.Buffer))
	assert.Equal(t, 1, ctx.Owned())
	assert.NotZero(t, kept.Handle())
	kept.Release()
	assert.Zero(t, d.LiveTotal())
}

func TestHandleKinds(t *testing.T) {
	assert.Equal(t, "renderbuffer", RenderbufferHandle.String())
	assert.Equal(t, "HandleKinds(9)", HandleKinds(9).String())
}
