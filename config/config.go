// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration of a renderer program,
// which is read from a TOML or YAML file on top of the defaults
// given in the `default:` struct tags.
package config

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"cogentcore.org/glrender/base/errors"
	"cogentcore.org/glrender/gpu"
	"cogentcore.org/glrender/math32"
	"cogentcore.org/glrender/resources"
	"github.com/Masterminds/semver/v3"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config is the configuration of a renderer program.
type Config struct {

	// Resources is the root directory of the shader and texture
	// resources. A relative path is relative to the directory of the
	// executable, and a leading ~ is the home directory.
	Resources string `toml:"resources" yaml:"resources" default:"assets"`

	// MinVersion is the oldest OpenGL version the program runs on.
	MinVersion string `toml:"min_version" yaml:"min_version" default:"3.3"`

	// Window is the configuration of the main window.
	Window Window `toml:"window" yaml:"window"`

	// ClearColor is the RGB color that frames are cleared to.
	ClearColor [3]float32 `toml:"clear_color" yaml:"clear_color" default:"0.3 0.3 0.5"`

	// UniformDiagnostics logs uploads to uniforms
	// that the programs do not have, at the debug level.
	UniformDiagnostics bool `toml:"uniform_diagnostics" yaml:"uniform_diagnostics"`

	// LogLevel is the minimum level of the log messages shown.
	LogLevel slog.Level `toml:"log_level" yaml:"log_level" default:"INFO"`
}

// Window is the configuration of a window.
type Window struct {

	// Title is the window title.
	Title string `toml:"title" yaml:"title" default:"glrender"`

	// Width is the width of the window in screen coordinates.
	Width int `toml:"width" yaml:"width" default:"900"`

	// Height is the height of the window in screen coordinates.
	Height int `toml:"height" yaml:"height" default:"700"`

	// VSync synchronizes buffer swaps with the display refresh.
	VSync bool `toml:"vsync" yaml:"vsync" default:"true"`

	// Samples is the number of multisampling samples, or 0 for none.
	Samples int `toml:"samples" yaml:"samples"`
}

// New returns a new [Config] with the default values.
func New() *Config {
	c := &Config{}
	errors.Must(SetFromDefaults(c))
	return c
}

// Open returns the configuration in the given TOML or YAML file,
// with the format given by the extension, on top of the defaults.
func Open(filename string) (*Config, error) {
	filename, err := homedir.Expand(filename)
	if err != nil {
		return nil, errors.Log(err)
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Log(err)
	}
	return Read(data, filepath.Ext(filename))
}

// OpenFS is like [Open], but reads the file from the given filesystem.
func OpenFS(fsys fs.FS, filename string) (*Config, error) {
	data, err := fs.ReadFile(fsys, filename)
	if err != nil {
		return nil, errors.Log(err)
	}
	return Read(data, filepath.Ext(filename))
}

// Read returns the configuration in the given data, in the format of
// the given file extension, on top of the defaults. It is validated.
func Read(data []byte, ext string) (*Config, error) {
	c := New()
	var err error
	switch strings.ToLower(ext) {
	case ".toml":
		err = toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(c)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err = dec.Decode(c); errors.Is(err, io.EOF) {
			err = nil
		}
	default:
		err = fmt.Errorf("unknown config file format %q", ext)
	}
	if err != nil {
		return nil, errors.Log(fmt.Errorf("config: %w", err))
	}
	if err := c.Validate(); err != nil {
		return nil, errors.Log(err)
	}
	return c, nil
}

// Save writes the configuration to the given file as TOML.
func (c *Config) Save(filename string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return errors.Log(err)
	}
	return errors.Log(os.WriteFile(filename, data, 0666))
}

// Validate returns an error if a value is out of range.
func (c *Config) Validate() error {
	var errs []error
	if _, err := semver.NewVersion(c.MinVersion); err != nil {
		errs = append(errs, fmt.Errorf("config: min_version %q: %w", c.MinVersion, err))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("config: invalid window size %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Window.Samples < 0 {
		errs = append(errs, fmt.Errorf("config: negative samples %d", c.Window.Samples))
	}
	for _, v := range c.ClearColor {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("config: clear_color %v is outside [0, 1]", c.ClearColor))
			break
		}
	}
	return errors.Join(errs...)
}

// OpenResources returns the resources in the [Config.Resources] directory.
func (c *Config) OpenResources() (*resources.Resources, error) {
	dir, err := homedir.Expand(c.Resources)
	if err != nil {
		return nil, errors.Log(err)
	}
	if filepath.IsAbs(dir) {
		return resources.FromDir(dir)
	}
	return resources.FromExePath(dir)
}

// Clear returns the color buffer for [Config.ClearColor].
func (c *Config) Clear() gpu.ColorBuffer {
	return gpu.ColorBufferFromColor(math32.Vec3(c.ClearColor[0], c.ClearColor[1], c.ClearColor[2]))
}

// ContextOptions returns the options for a [gpu.Context]
// that uses the given logger.
func (c *Config) ContextOptions(logger *slog.Logger) []gpu.ContextOption {
	return []gpu.ContextOption{gpu.WithLogger(logger), gpu.WithUniformDiagnostics(c.UniformDiagnostics)}
}
