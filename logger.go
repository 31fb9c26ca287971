// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package shdc

import (
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/shdc/internal/logging"
)

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with Generate.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(logging.Nop())
}

// SetLogger configures the logger used by Generate and passed on to the
// frontend and the Nim emitter. By default shdc produces no log output.
// Pass nil to restore the silent default.
//
// Log levels used by shdc:
//   - [slog.LevelDebug]: per-snippet reflection and per-backend progress
//   - [slog.LevelInfo]: the written output file
func SetLogger(l *slog.Logger) {
	loggerPtr.Store(logging.OrNop(l))
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
