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
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, out *bytes.Buffer) []map[string]interface{} {
	var lines []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		lines = append(lines, entry)
	}
	return lines
}

func TestNewLogger_Verbosity(t *testing.T) {
	var out bytes.Buffer
	log := NewLogger(&out, Options{Verbosity: 1, Json: true})

	log.Info("shown", "count", 3)
	log.V(1).Info("debug")
	log.V(2).Info("hidden")
	log.Error(errors.New("boom"), "failed", "approvalId", "a1")

	lines := decodeLines(t, &out)
	require.Len(t, lines, 3)

	assert.Equal(t, "info", lines[0]["level"])
	assert.Equal(t, "shown", lines[0]["message"])
	assert.EqualValues(t, 3, lines[0]["count"])

	assert.Equal(t, "debug", lines[1]["level"])

	assert.Equal(t, "error", lines[2]["level"])
	assert.Equal(t, "boom", lines[2]["error"])
	assert.Equal(t, "a1", lines[2]["approvalId"])
}

func TestNewLogger_ErrorsOnly(t *testing.T) {
	var out bytes.Buffer
	log := NewLogger(&out, Options{Verbosity: -1, Json: true})

	log.Info("hidden")
	log.Error(errors.New("boom"), "failed")

	lines := decodeLines(t, &out)
	require.Len(t, lines, 1)
	assert.Equal(t, "error", lines[0]["level"])
}

func TestNewLogger_WithValuesAndName(t *testing.T) {
	var out bytes.Buffer
	log := NewLogger(&out, Options{Json: true}).WithName("catalog").WithName("list").WithValues("tenant", "contoso")

	log.Info("listed", "dangling")

	lines := decodeLines(t, &out)
	require.Len(t, lines, 1)
	assert.Equal(t, "catalog/list", lines[0]["logger"])
	assert.Equal(t, "contoso", lines[0]["tenant"])
	assert.Contains(t, lines[0], "dangling")
}

func TestNewLogger_Console(t *testing.T) {
	var out bytes.Buffer
	log := NewLogger(&out, Options{NoColor: true})

	log.Info("hello", "role", "Owner")
	assert.Contains(t, out.String(), "hello")
	assert.Contains(t, out.String(), "role=Owner")
}
