// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frame

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Input is the state of the keyboard and the mouse, updated from
// window events and read by the render loop.
type Input struct {
	clock *Clock

	// keys records which keys are down.
	keys map[glfw.Key]bool

	// lastFired is the clock time at which each key
	// last passed [Input.KeyWithCooldown].
	lastFired map[glfw.Key]float32

	dx, dy float64

	// cursor position of the last cursor event
	cx, cy float64
	cursor bool
}

// NewInput returns a new [Input] that measures key
// cooldowns with the given clock.
func NewInput(clock *Clock) *Input {
	return &Input{clock: clock, keys: map[glfw.Key]bool{}, lastFired: map[glfw.Key]float32{}}
}

// Attach sets the key and cursor callbacks of the window to update in.
func (in *Input) Attach(w *glfw.Window) {
	w.SetKeyCallback(in.KeyCallback)
	w.SetCursorPosCallback(in.CursorPosCallback)
}

// KeyCallback is a [glfw.KeyCallback] that records key presses and releases.
func (in *Input) KeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	switch action {
	case glfw.Press:
		in.SetKey(key, true)
	case glfw.Release:
		in.SetKey(key, false)
	}
}

// CursorPosCallback is a [glfw.CursorPosCallback] that accumulates the
// relative motion of the cursor. The first event only sets the origin.
func (in *Input) CursorPosCallback(w *glfw.Window, x, y float64) {
	if in.cursor {
		// window y grows downward
		in.AddMotion(x-in.cx, in.cy-y)
	}
	in.cx, in.cy, in.cursor = x, y, true
}

// SetKey records whether the key is down.
func (in *Input) SetKey(key glfw.Key, down bool) {
	in.keys[key] = down
}

// Key returns whether the key is down.
func (in *Input) Key(key glfw.Key) bool {
	return in.keys[key]
}

// KeyWithCooldown returns whether the key is down, but at most once per
// cooldown seconds while it is held: it returns true the first time the
// key is seen down, and then again only after more than cooldown
// seconds have passed since it last returned true.
func (in *Input) KeyWithCooldown(key glfw.Key, cooldown float32) bool {
	if !in.keys[key] {
		return false
	}
	now := in.clock.Now()
	last, ok := in.lastFired[key]
	if ok && now-last <= cooldown {
		return false
	}
	in.lastFired[key] = now
	return true
}

// AddMotion adds relative mouse motion, with y growing upward.
func (in *Input) AddMotion(dx, dy float64) {
	in.dx += dx
	in.dy += dy
}

// FetchMotion returns the mouse motion accumulated since
// the last call, and resets it.
func (in *Input) FetchMotion() (dx, dy float64) {
	dx, dy = in.dx, in.dy
	in.dx, in.dy = 0, 0
	return
}
