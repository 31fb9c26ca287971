// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package shdc generates sokol-nim shader binding modules from annotated
// WGSL files.
//
// The pipeline is:
//  1. Read the input file and its snippets, programs and tags
//  2. Compile every vertex and fragment snippet with naga and reflect it
//  3. Translate the snippets to each enabled backend
//  4. Load optional precompiled bytecode
//  5. Emit one Nim module with slot constants, uniform structs, embedded
//     shader code and ShaderDesc procs
//
// Example usage:
//
//	err := shdc.Generate(shdc.Args{
//	    Input:    "shd.wgsl",
//	    Output:   "shd.nim",
//	    Backends: refl.GLSL410.Bit() | refl.HLSL5.Bit() | refl.MetalMacOS.Bit(),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
package shdc

import (
	"fmt"

	"github.com/gogpu/shdc/frontend"
	"github.com/gogpu/shdc/nim"
	"github.com/gogpu/shdc/refl"
)

// Version is the generator version written into generated headers.
const Version = "1"

// Args configures one generator run.
type Args struct {
	// Input is the annotated WGSL file.
	Input string

	// Output is the generated Nim file.
	Output string

	// Backends selects the emitted backends.
	Backends refl.BackendSet

	// BytecodeDir holds optional precompiled blobs named
	// <snippet>_<backend>.bin. Empty disables bytecode.
	BytecodeDir string

	// GenVersion is written into the header. Defaults to Version.
	GenVersion string

	// Cmdline is echoed in the header.
	Cmdline string
}

// Validate checks the arguments before any file is read.
func (a *Args) Validate() error {
	if a.Input == "" {
		return fmt.Errorf("no input file")
	}
	if a.Output == "" {
		return fmt.Errorf("no output file")
	}
	return nil
}

// Generate runs the whole pipeline. Errors tied to an input location are
// *refl.Error values; use errors.As to recover them.
func Generate(args Args) error {
	if err := args.Validate(); err != nil {
		return err
	}
	log := Logger()
	if args.GenVersion == "" {
		args.GenVersion = Version
	}

	inp, err := frontend.ReadInput(args.Input)
	if err != nil {
		return err
	}
	log.Debug("shdc: read input", "path", args.Input,
		"snippets", len(inp.Snippets), "programs", len(inp.Programs))

	compiler, err := frontend.NewCompiler(inp, log)
	if err != nil {
		return err
	}
	refls, err := compiler.ReflectAll(args.Backends)
	if err != nil {
		return err
	}
	code, err := frontend.LoadBytecode(inp, args.BytecodeDir, args.Backends)
	if err != nil {
		return err
	}

	opts := nim.Options{
		Output:     args.Output,
		Backends:   args.Backends,
		GenVersion: args.GenVersion,
		Cmdline:    args.Cmdline,
		Check:      refl.Validate,
		Logger:     log,
	}
	return nim.Generate(opts, inp, refls, code)
}
