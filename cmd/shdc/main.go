// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Command shdc generates sokol-nim shader bindings from annotated WGSL.
//
// Usage:
//
//	shdc [options] -i <input.wgsl> -o <output.nim>
//
// Examples:
//
//	shdc -i shd.wgsl -o shd.nim                           # All backends
//	shdc -i shd.wgsl -o shd.nim -slang glsl410:hlsl5      # Selected backends
//	shdc -i shd.wgsl -o shd.nim -bytecode build/shaders   # Embed precompiled blobs
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/gogpu/shdc"
	"github.com/gogpu/shdc/refl"
)

var (
	input    = flag.String("i", "", "input file (annotated WGSL)")
	output   = flag.String("o", "", "output file (Nim module)")
	slang    = flag.String("slang", "", "colon-separated backends (default: all)")
	bytecode = flag.String("bytecode", "", "directory with precompiled <snippet>_<backend>.bin blobs")
	errfmt   = flag.String("errfmt", "gcc", "error message format: gcc or msvc")
	genver   = flag.String("genver", shdc.Version, "generator version written into the header")
	verbose  = flag.Bool("v", false, "verbose logging to stderr")
	version  = flag.Bool("version", false, "print version")
)

const (
	errorColor   = "\x1b[31m"
	defaultColor = "\x1b[0m"
)

func main() {
	flag.Usage = usage
	flag.Parse()

	if *version {
		fmt.Printf("shdc version %s\n", shdc.Version)
		return
	}
	os.Exit(run(os.Stderr))
}

func run(stderr *os.File) int {
	format, err := refl.ParseErrFormat(*errfmt)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	backends := refl.AllBackendsSet()
	if *slang != "" {
		backends, err = refl.ParseBackendSet(*slang)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}

	if *verbose {
		shdc.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	args := shdc.Args{
		Input:       *input,
		Output:      *output,
		Backends:    backends,
		BytecodeDir: *bytecode,
		GenVersion:  *genver,
		Cmdline:     strings.Join(os.Args, " "),
	}
	if err := args.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		usage()
		return 1
	}

	if err := shdc.Generate(args); err != nil {
		printError(stderr, term.IsTerminal(int(stderr.Fd())), err, format)
		return 1
	}
	return 0
}

// printError writes located errors in the selected compiler format so IDEs
// can jump to the offending line.
func printError(w io.Writer, color bool, err error, format refl.ErrFormat) {
	msg := err.Error()
	var rerr *refl.Error
	if errors.As(err, &rerr) {
		msg = rerr.Format(format)
	}
	if color {
		msg = errorColor + msg + defaultColor
	}
	fmt.Fprintln(w, msg)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: shdc [options] -i <input.wgsl> -o <output.nim>\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nBackends: %s\n", refl.AllBackendsSet())
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  shdc -i shd.wgsl -o shd.nim                       All backends\n")
	fmt.Fprintf(os.Stderr, "  shdc -i shd.wgsl -o shd.nim -slang glsl410:hlsl5  Selected backends\n")
	fmt.Fprintf(os.Stderr, "  shdc -i shd.wgsl -o shd.nim -errfmt msvc          MSVC error format\n")
}
