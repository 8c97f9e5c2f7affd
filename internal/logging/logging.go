// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Params configures the console logger.
type Params struct {
	Debug bool
	// Writer defaults to stderr.
	Writer io.Writer
	// Prefix is prepended to every line.
	Prefix string
}

// New creates a console logger with timestamps. Debug lowers the level to
// DEBUG.
func New(params Params) *log.Logger {
	w := params.Writer
	if w == nil {
		w = os.Stderr
	}
	level := log.InfoLevel
	if params.Debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          params.Prefix,
	})
}
