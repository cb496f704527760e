// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command glcheck checks that the OpenGL driver of this machine
// supports the resource layer, and can show a test render loop.
package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"cogentcore.org/glrender/config"
	"cogentcore.org/glrender/logx"
	"github.com/spf13/cobra"
)

// flags are the command line flags shared by all commands.
type flags struct {
	config             string
	vv, verbose, quiet bool
}

// load returns the configuration file named by the flags, or the
// defaults if no file was named and the default file does not exist.
func (f *flags) load() (*config.Config, error) {
	c, err := config.Open(f.config)
	if errors.Is(err, fs.ErrNotExist) && f.config == defaultConfig {
		c, err = config.New(), nil
	}
	if err != nil {
		return nil, err
	}
	logx.UserLevel = c.LogLevel
	if f.vv || f.verbose || f.quiet {
		logx.UserLevel = logx.LevelFromFlags(f.vv, f.verbose, f.quiet)
	}
	return c, nil
}

const defaultConfig = "glrender.toml"

func newRootCmd() *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:   "glcheck",
		Short: "Glcheck checks the OpenGL resource layer on this machine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := f.load()
			if err != nil {
				return err
			}
			return runCheck(cmd.OutOrStdout(), c)
		},
		SilenceUsage: true,
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&f.config, "config", "c", defaultConfig, "the TOML or YAML configuration file")
	pf.BoolVar(&f.vv, "vv", false, "show debug log messages")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "show info log messages")
	pf.BoolVarP(&f.quiet, "quiet", "q", false, "only show error log messages")

	root.AddCommand(&cobra.Command{
		Use:   "window",
		Short: "Open a window that renders through an offscreen framebuffer until escape is pressed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := f.load()
			if err != nil {
				return err
			}
			return runWindow(c)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "config [file]",
		Short: "Write the default configuration to a file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := defaultConfig
			if len(args) == 1 {
				file = args[0]
			}
			if err := config.New().Save(file); err != nil {
				return err
			}
			slog.Info("wrote default configuration", "file", file)
			return nil
		},
	})
	return root
}

func main() {
	logx.SetDefaultLogger()
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
