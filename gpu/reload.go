// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"cogentcore.org/glrender/base/errors"
	"cogentcore.org/glrender/resources"
)

// Reloader rebuilds programs when their shader resources change on disk.
type Reloader struct {
	res      *resources.Resources
	watcher  *resources.Watcher
	events   <-chan string
	programs map[string][]*Program // by shader resource name
}

// NewReloader returns a new [Reloader] for the given programs, which
// must have been built with [ProgramFromResource] from res.
func NewReloader(res *resources.Resources, programs ...*Program) (*Reloader, error) {
	r := newReloader(res, nil, programs)
	w, err := res.Watch(r.names()...)
	if err != nil {
		return nil, errors.Log(err)
	}
	r.watcher = w
	r.events = w.Events
	return r, nil
}

func newReloader(res *resources.Resources, events <-chan string, programs []*Program) *Reloader {
	r := &Reloader{res: res, events: events, programs: map[string][]*Program{}}
	for _, p := range programs {
		for _, ext := range ProgramExtensions {
			name := p.Name() + ext
			r.programs[name] = append(r.programs[name], p)
		}
	}
	return r
}

func (r *Reloader) names() []string {
	names := make([]string, 0, len(r.programs))
	for name := range r.programs {
		names = append(names, name)
	}
	return names
}

// Poll rebuilds the programs whose shaders have changed since the last
// call, and returns how many were rebuilt. Programs that fail to build
// keep running the old version, and the error is logged. It must be
// called from the rendering thread, typically once per frame.
func (r *Reloader) Poll() int {
	changed := map[*Program]bool{}
	var order []*Program
loop:
	for {
		select {
		case name, ok := <-r.events:
			if !ok {
				break loop
			}
			for _, p := range r.programs[name] {
				if !changed[p] {
					changed[p] = true
					order = append(order, p)
				}
			}
		default:
			break loop
		}
	}
	n := 0
	for _, p := range order {
		// build failures are logged where they occur
		if p.Reload(r.res) == nil {
			p.ctx.Logger.Info("reloaded program", "program", p.Name())
			n++
		}
	}
	return n
}

// Close stops watching for changes.
func (r *Reloader) Close() error {
	if r.watcher == nil {
		return nil
	}
	return r.watcher.Close()
}
