// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command vertexgen generates static vertex layouts for the
// vertex record types marked with //gpu:vertex.
package main

import (
	"os"

	"cogentcore.org/glrender/logx"
	"cogentcore.org/glrender/vertex/vertexgen"
	"github.com/spf13/cobra"
)

func main() {
	logx.SetDefaultLogger()
	cfg := &vertexgen.Config{}
	cmd := &cobra.Command{
		Use:   "vertexgen",
		Short: "Vertexgen generates static vertex layouts for Go vertex record types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return vertexgen.Generate(cfg)
		},
		SilenceUsage: true,
	}
	cmd.Flags().StringVar(&cfg.Dir, "dir", ".", "the source directory to run vertexgen on (can be set to multiple through paths like ./...)")
	cmd.Flags().StringVar(&cfg.Output, "output", "vertexgen.go", "the output file location relative to the package on which vertexgen is being called")
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
