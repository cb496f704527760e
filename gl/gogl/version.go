// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gogl

import (
	"fmt"
	"regexp"

	"cogentcore.org/glrender/gl"
	"github.com/Masterminds/semver/v3"
)

// versionPrefix matches the leading version number of a GL version
// string, such as "4.6" in "4.6 (Core Profile) Mesa 23.0.4".
var versionPrefix = regexp.MustCompile(`^\s*(\d+)\.(\d+)(?:\.(\d+))?`)

// ParseVersion returns the version number at the start of the given
// [gl.Version] string.
func ParseVersion(s string) (*semver.Version, error) {
	m := versionPrefix.FindStringSubmatch(s)
	if m == nil {
		return nil, fmt.Errorf("gogl: no version number in %q", s)
	}
	patch := m[3]
	if patch == "" {
		patch = "0"
	}
	return semver.NewVersion(m[1] + "." + m[2] + "." + patch)
}

// CheckVersion returns the version of the driver and an error if it
// is older than the given minimum version, such as "3.3".
func CheckVersion(d gl.Driver, minimum string) (*semver.Version, error) {
	v, err := ParseVersion(d.GetString(gl.Version))
	if err != nil {
		return nil, err
	}
	c, err := semver.NewConstraint(">= " + minimum)
	if err != nil {
		return v, fmt.Errorf("gogl: invalid minimum version %q: %w", minimum, err)
	}
	if !c.Check(v) {
		return v, fmt.Errorf("gogl: OpenGL %s is older than the required %s", v, minimum)
	}
	return v, nil
}
