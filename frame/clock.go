// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package frame provides the per-frame state of a render loop: a
// [Clock] measuring frame times, and the [Input] state of the keys
// and the mouse. Both are plain values owned by the loop, and must
// only be used from the rendering thread.
package frame

import "time"

// Clock measures the time since it was created and the
// time between consecutive frames.
type Clock struct {
	now   func() time.Time
	start time.Time
	prev  time.Duration
	delta time.Duration
}

// NewClock returns a new [Clock] started at the current time of the
// given time source, which defaults to [time.Now] if nil.
func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now, start: now()}
}

// Update marks the start of a new frame, measuring the delta
// since the previous call, or since the clock started.
func (c *Clock) Update() {
	el := c.elapsed()
	c.delta = el - c.prev
	c.prev = el
}

func (c *Clock) elapsed() time.Duration { return c.now().Sub(c.start) }

// Now returns the seconds since the clock started.
func (c *Clock) Now() float32 { return float32(c.elapsed().Seconds()) }

// Delta returns the seconds between the last two calls to [Clock.Update].
func (c *Clock) Delta() float32 { return float32(c.delta.Seconds()) }

// Elapsed returns the time since the clock started.
func (c *Clock) Elapsed() time.Duration { return c.elapsed() }
