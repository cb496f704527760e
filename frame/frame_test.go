// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frame

import (
	"testing"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

// fakeTime is a manually advanced time source.
type fakeTime struct {
	t time.Time
}

func (f *fakeTime) now() time.Time { return f.t }

func (f *fakeTime) advance(d time.Duration) { f.t = f.t.Add(d) }

func newFakeClock() (*fakeTime, *Clock) {
	ft := &fakeTime{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	return ft, NewClock(ft.now)
}

func TestClock(t *testing.T) {
	ft, c := newFakeClock()
	assert.Zero(t, c.Now())
	assert.Zero(t, c.Delta())

	ft.advance(500 * time.Millisecond)
	c.Update()
	assert.Equal(t, float32(0.5), c.Delta())
	assert.Equal(t, float32(0.5), c.Now())

	ft.advance(250 * time.Millisecond)
	assert.Equal(t, float32(0.5), c.Delta(), "delta changes only on update")
	c.Update()
	assert.Equal(t, float32(0.25), c.Delta())
	assert.Equal(t, 750*time.Millisecond, c.Elapsed())

	c.Update()
	assert.Zero(t, c.Delta())
}

func TestClockDefault(t *testing.T) {
	c := NewClock(nil)
	time.Sleep(time.Millisecond)
	c.Update()
	assert.Positive(t, c.Delta())
}

func TestKeys(t *testing.T) {
	_, c := newFakeClock()
	in := NewInput(c)
	assert.False(t, in.Key(glfw.KeyW))

	in.KeyCallback(nil, glfw.KeyW, 0, glfw.Press, 0)
	assert.True(t, in.Key(glfw.KeyW))
	in.KeyCallback(nil, glfw.KeyW, 0, glfw.Repeat, 0)
	assert.True(t, in.Key(glfw.KeyW))
	in.KeyCallback(nil, glfw.KeyW, 0, glfw.Release, glfw.ModShift)
	assert.False(t, in.Key(glfw.KeyW))
}

func TestKeyWithCooldown(t *testing.T) {
	ft, c := newFakeClock()
	in := NewInput(c)
	assert.False(t, in.KeyWithCooldown(glfw.KeySpace, 0.5), "key is up")

	in.SetKey(glfw.KeySpace, true)
	assert.True(t, in.KeyWithCooldown(glfw.KeySpace, 0.5), "first press")
	assert.False(t, in.KeyWithCooldown(glfw.KeySpace, 0.5))
	ft.advance(500 * time.Millisecond)
	assert.False(t, in.KeyWithCooldown(glfw.KeySpace, 0.5), "cooldown must be exceeded")
	ft.advance(time.Millisecond)
	assert.True(t, in.KeyWithCooldown(glfw.KeySpace, 0.5))
	assert.False(t, in.KeyWithCooldown(glfw.KeySpace, 0.5))

	in.SetKey(glfw.KeySpace, false)
	ft.advance(time.Second)
	assert.False(t, in.KeyWithCooldown(glfw.KeySpace, 0.5))
}

func TestMotion(t *testing.T) {
	_, c := newFakeClock()
	in := NewInput(c)
	in.CursorPosCallback(nil, 100, 100)
	dx, dy := in.FetchMotion()
	assert.Zero(t, dx)
	assert.Zero(t, dy)

	in.CursorPosCallback(nil, 110, 90)
	in.CursorPosCallback(nil, 115, 95)
	dx, dy = in.FetchMotion()
	assert.Equal(t, 15.0, dx)
	assert.Equal(t, 5.0, dy, "upward is positive")

	dx, dy = in.FetchMotion()
	assert.Zero(t, dx)
	assert.Zero(t, dy)

	in.AddMotion(-2, 3)
	dx, dy = in.FetchMotion()
	assert.Equal(t, -2.0, dx)
	assert.Equal(t, 3.0, dy)
}
