// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package nim

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/gogpu/shdc/internal/logging"
	"github.com/gogpu/shdc/refl"
)

// Writer accumulates the generated Nim module.
type Writer struct {
	inp     *refl.Input
	options *Options
	log     *slog.Logger

	// Output buffer
	out strings.Builder

	// Line prefix for writeLine
	indent string

	headerWritten bool
	declsWritten  bool
}

// newWriter creates a new Nim writer.
func newWriter(inp *refl.Input, options *Options) *Writer {
	return &Writer{
		inp:     inp,
		options: options,
		log:     logging.OrNop(options.Logger),
	}
}

// String returns the generated Nim source code.
func (w *Writer) String() string {
	return w.out.String()
}

// writeLine writes a formatted line with the current indentation.
func (w *Writer) writeLine(format string, args ...any) {
	w.out.WriteString(w.indent)
	if len(args) == 0 {
		w.out.WriteString(format)
	} else {
		fmt.Fprintf(&w.out, format, args...)
	}
	w.out.WriteByte('\n')
}

// write writes formatted text without indentation or newline.
func (w *Writer) write(format string, args ...any) {
	if len(args) == 0 {
		w.out.WriteString(format)
		return
	}
	fmt.Fprintf(&w.out, format, args...)
}
