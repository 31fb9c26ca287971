// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package nim

import (
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/gogpu/shdc/internal/logging"
	"github.com/gogpu/shdc/refl"
)

// CheckFunc validates the reflection of one backend before it is emitted.
type CheckFunc func(inp *refl.Input, r *refl.Reflection, b refl.Backend) error

// Options configures Nim code generation.
type Options struct {
	// Output is the path of the generated file.
	Output string

	// Backends is the set of backends to emit.
	// An empty set produces a module without declarations.
	Backends refl.BackendSet

	// GenVersion is written into the header to detect stale files.
	GenVersion string

	// Cmdline is the command line echoed in the header.
	Cmdline string

	// Check is invoked once per enabled backend before anything of that
	// backend is written. Defaults to refl.Validate.
	Check CheckFunc

	// Logger receives debug output. Nil disables logging.
	Logger *slog.Logger
}

// DefaultOptions returns options emitting every backend.
func DefaultOptions() Options {
	return Options{
		Backends: refl.AllBackendsSet(),
		Check:    refl.Validate,
	}
}

// Render generates the Nim module in memory.
//
// refls and code are indexed by backend; entries of disabled backends are
// ignored and code entries may be nil. The first error returned by
// Options.Check aborts generation and is wrapped with the backend name.
func Render(opts Options, inp *refl.Input, refls [refl.NumBackends]*refl.Reflection, code [refl.NumBackends]*refl.Bytecode) (string, error) {
	if opts.Check == nil {
		opts.Check = refl.Validate
	}
	w := newWriter(inp, &opts)
	branches := dispatchBackends(opts.Backends)

	for _, b := range opts.Backends.Backends() {
		r := refls[b]
		if err := opts.Check(inp, r, b); err != nil {
			return "", fmt.Errorf("%s: %w", b, err)
		}
		if r == nil {
			return "", fmt.Errorf("%s: no reflection data", b)
		}
		w.log.Debug("nim: emitting backend", "backend", b.String(), "sources", len(r.Sources))

		if !w.headerWritten {
			w.writeHeader(r)
		}
		if !w.declsWritten {
			w.declsWritten = true
			w.writeSlots(r)
			w.writeUniformBlocks(r)
		}
		if !slices.Contains(branches, b) {
			w.log.Debug("nim: skipping literals of shadowed backend",
				"backend", b.String(), "sokol", b.SokolBackend())
			continue
		}
		w.writeLiterals(r, code[b], b)
	}
	if !w.headerWritten {
		w.writeHeader(nil)
	}

	w.writeShaderDescs(branches, &refls, &code)
	return w.String(), nil
}

// Generate renders the Nim module and writes it to opts.Output. The file is
// written once, after every backend rendered successfully.
func Generate(opts Options, inp *refl.Input, refls [refl.NumBackends]*refl.Reflection, code [refl.NumBackends]*refl.Bytecode) error {
	out, err := Render(opts, inp, refls, code)
	if err != nil {
		return err
	}
	if err := os.WriteFile(opts.Output, []byte(out), 0o644); err != nil {
		return refl.Errorf(refl.ErrOutput, inp.BasePath, 0, "failed to open output file '%s': %v", opts.Output, err)
	}
	logging.OrNop(opts.Logger).Info("nim: wrote module", "path", opts.Output, "bytes", len(out))
	return nil
}
