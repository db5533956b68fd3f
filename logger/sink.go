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
	"github.com/go-logr/logr"
	"github.com/rs/zerolog"
)

type logSink struct {
	logger    zerolog.Logger
	verbosity int
	name      string
}

var _ logr.LogSink = &logSink{}

func (s *logSink) Init(logr.RuntimeInfo) {}

func (s *logSink) Enabled(level int) bool {
	return level <= s.verbosity
}

func (s *logSink) Info(level int, msg string, keysAndValues ...interface{}) {
	var event *zerolog.Event
	switch level {
	case 0:
		event = s.logger.Info()
	case 1:
		event = s.logger.Debug()
	default:
		event = s.logger.Trace()
	}
	s.write(event, msg, keysAndValues)
}

func (s *logSink) Error(err error, msg string, keysAndValues ...interface{}) {
	s.write(s.logger.Error().Err(err), msg, keysAndValues)
}

func (s *logSink) WithValues(keysAndValues ...interface{}) logr.LogSink {
	clone := *s
	clone.logger = s.logger.With().Fields(fields(keysAndValues)).Logger()
	return &clone
}

func (s *logSink) WithName(name string) logr.LogSink {
	clone := *s
	if clone.name == "" {
		clone.name = name
	} else {
		clone.name = clone.name + "/" + name
	}
	clone.logger = s.logger.With().Str("logger", clone.name).Logger()
	return &clone
}

func (s *logSink) write(event *zerolog.Event, msg string, keysAndValues []interface{}) {
	event.Fields(fields(keysAndValues)).Msg(msg)
}

// fields pairs up logr key/value arguments; a dangling key is logged with a nil value
func fields(keysAndValues []interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(keysAndValues)/2)
	for i := 0; i < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		if i+1 < len(keysAndValues) {
			result[key] = keysAndValues[i+1]
		} else {
			result[key] = nil
		}
	}
	return result
}
