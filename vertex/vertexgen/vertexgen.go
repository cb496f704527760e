// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vertexgen generates static vertex layouts for vertex record
// types marked with a //gpu:vertex comment directive. It checks the
// records with the same rules as [vertex.DescribeType], using the
// compiler's type sizes, so a record that cannot be bound exactly
// fails generation instead of a running program.
package vertexgen

import (
	"fmt"

	"golang.org/x/tools/go/packages"
)

// ParsePackages parses the package(s) located in the configuration source directory.
func ParsePackages(cfg *Config) ([]*packages.Package, error) {
	pcfg := &packages.Config{
		Mode:  PackageModes(),
		Tests: false,
	}
	pkgs, err := packages.Load(pcfg, cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("vertexgen: Generate: error parsing package: %w", err)
	}
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, fmt.Errorf("vertexgen: Generate: error loading package %q: %v", pkg.PkgPath, pkg.Errors[0])
		}
	}
	return pkgs, nil
}

// Generate generates vertex layouts, using the configuration
// information, loading the packages from the configuration source
// directory, and writing the result to the configuration output file.
//
// It is a simple entry point to vertexgen that does all
// of the steps; for more specific functionality, create
// a new [Generator] with [NewGenerator] and call methods on it.
func Generate(cfg *Config) error {
	pkgs, err := ParsePackages(cfg)
	if err != nil {
		return err
	}
	return GeneratePkgs(cfg, pkgs)
}

// GeneratePkgs generates vertex layouts using the given configuration
// object and packages parsed from the configuration source directory,
// and writes the result to the config output file.
func GeneratePkgs(cfg *Config, pkgs []*packages.Package) error {
	g := NewGenerator(cfg, pkgs)
	for _, pkg := range g.Pkgs {
		g.Pkg = pkg
		g.Buf.Reset()
		err := g.Find()
		if err != nil {
			return fmt.Errorf("vertexgen: Generate: error finding vertex records for package %q: %w", pkg.Name, err)
		}
		has, err := g.Generate()
		if err != nil {
			return fmt.Errorf("vertexgen: Generate: error generating code for package %q: %w", pkg.Name, err)
		}
		if !has {
			continue
		}
		err = g.Write()
		if err != nil {
			return fmt.Errorf("vertexgen: Generate: error writing code for package %q: %w", pkg.Name, err)
		}
	}
	return nil
}
