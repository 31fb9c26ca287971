// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package nim generates sokol-nim shader binding modules from reflection data.
//
// One call to Generate produces a single Nim source file containing:
//
//   - a comment header with an overview of every program's resources
//   - bind-slot constants for vertex attributes, images, samplers and
//     uniform blocks
//   - {.packed.} object definitions matching each uniform block's std140
//     layout byte for byte
//   - per-backend byte-array literals with the shader sources or binaries
//   - one proc per program returning an sg.ShaderDesc for a runtime backend
//
// # Usage
//
//	opts := nim.Options{
//	    Output:   "shd.nim",
//	    Backends: refl.GLSL410.Bit() | refl.HLSL5.Bit(),
//	}
//	if err := nim.Generate(opts, inp, reflections, bytecode); err != nil {
//	    log.Fatal(err)
//	}
//
// # Atomic output
//
// The whole module is rendered into memory first. The output file is only
// created after every enabled backend passed its check, so a failing run
// never leaves a partial file behind.
//
// # Uniform layout
//
// Uniform blocks are emitted as packed objects. Gaps between members become
// explicit pad_<offset> byte arrays, the first member is aligned to 16 bytes
// and the object is padded to a multiple of 16 bytes.
package nim
