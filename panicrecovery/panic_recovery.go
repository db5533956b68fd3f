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

package panicrecovery

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/go-logr/logr"
)

var panicChan = make(chan error, 1)

// PanicRecovery recovers a panicking goroutine and bubbles the panic up to HandleBubbledPanic
func PanicRecovery() {
	if recovery := recover(); recovery != nil {
		err := fmt.Errorf("[panic recovery] %v - [stack trace] %s", recovery, debug.Stack())
		select {
		case panicChan <- err:
		default:
		}
	}
}

// HandleBubbledPanic logs a recovered panic and stops the context it was raised under
func HandleBubbledPanic(ctx context.Context, stop context.CancelFunc, log logr.Logger) {
	go func() {
		select {
		case err := <-panicChan:
			log.Error(err, "recovered from a panic; shutting down")
			stop()
		case <-ctx.Done():
		}
	}()
}
