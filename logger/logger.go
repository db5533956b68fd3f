// Copyright (C) 2025 The pimctl Authors
//
// This file is part of pimctl.
//
// pimctl is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// pimctl is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/pimctl/pimctl/config"
)

type Options struct {
	// Verbosity is the highest logr V-level written; -1 writes errors only
	Verbosity int
	Json      bool
	NoColor   bool
}

// GetLogger builds the process logger from the loaded configuration
func GetLogger() (*logr.Logger, error) {
	var (
		options = Options{
			Verbosity: config.Verbosity.Int(),
			Json:      config.JsonLogs.Bool(),
			NoColor:   config.NoColor.Bool() || !term.IsTerminal(int(os.Stderr.Fd())),
		}
		out io.Writer = os.Stderr
	)

	if options.Verbosity < -1 || options.Verbosity > 2 {
		return nil, fmt.Errorf("verbosity %d is out of range [-1, 2]", options.Verbosity)
	}

	if path := config.LogFile.String(); path != "" {
		if file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600); err != nil {
			return nil, fmt.Errorf("unable to open log file: %w", err)
		} else {
			out = zerolog.MultiLevelWriter(writer(os.Stderr, options), file)
			options.Json = true
		}
	}

	logger := NewLogger(out, options)
	return &logger, nil
}

// NewLogger returns a logr.Logger that writes through zerolog
func NewLogger(out io.Writer, options Options) logr.Logger {
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	var (
		base = zerolog.New(writer(out, options)).With().Timestamp().Logger().Level(zerolog.TraceLevel)
		sink = &logSink{logger: base, verbosity: options.Verbosity}
	)
	return logr.New(sink)
}

func writer(out io.Writer, options Options) io.Writer {
	if options.Json {
		return out
	}
	return zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    options.NoColor,
		TimeFormat: time.RFC3339,
	}
}
