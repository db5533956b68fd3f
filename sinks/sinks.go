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

package sinks

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pimctl/pimctl/pipeline"
)

// WriteTo writes every line of the stream to w, one per line
func WriteTo(ctx context.Context, w io.Writer, stream <-chan string) error {
	writer := bufio.NewWriter(w)
	for line := range pipeline.OrDone(ctx.Done(), stream) {
		if _, err := fmt.Fprintln(writer, line); err != nil {
			return err
		}
	}
	return writer.Flush()
}

func WriteToFile(ctx context.Context, path string, stream <-chan string) error {
	if file, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600); err != nil {
		return fmt.Errorf("unable to open %s: %w", path, err)
	} else if err := WriteTo(ctx, file, stream); err != nil {
		file.Close()
		return fmt.Errorf("unable to write %s: %w", path, err)
	} else {
		return file.Close()
	}
}

func WriteToConsole(ctx context.Context, stream <-chan string) error {
	return WriteTo(ctx, os.Stdout, stream)
}
