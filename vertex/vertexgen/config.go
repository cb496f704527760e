// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vertexgen

// Config contains the configuration information
// used by vertexgen
type Config struct {

	// the source directory to run vertexgen on (can be set to multiple through paths like ./...)
	Dir string `default:"."`

	// the output file location relative to the package on which vertexgen is being called
	Output string `default:"vertexgen.go"`
}
