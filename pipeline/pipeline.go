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

package pipeline

import (
	"encoding/json"

	"github.com/pimctl/pimctl/panicrecovery"
)

// OrDone provides an explicit cancellation mechanism to ensure the encapsulated and downstream goroutines are cleaned
// up. This frees the caller from depending on the input channel to close in order to free the goroutine, thus
// preventing possible leaks.
func OrDone[D, T any](done <-chan D, in <-chan T) <-chan T {
	out := make(chan T)

	go func() {
		defer panicrecovery.PanicRecovery()
		defer close(out)
		for {
			select {
			case <-done:
				return
			case val, ok := <-in:
				if !ok {
					return
				} else {
					select {
					case out <- val:
					case <-done:
					}
				}
			}
		}
	}()

	return out
}

// Send sends a value to a channel while monitoring the done channel for cancellation
func Send[D, T any](done <-chan D, tgt chan<- T, val T) bool {
	select {
	case tgt <- val:
		return true
	case <-done:
		return false
	}
}

// SendAny sends a value to an any channel while monitoring the done channel for cancellation
func SendAny[T any](done <-chan T, tgt chan<- any, val any) bool {
	return Send(done, tgt, val)
}

// FormatJson marshals every value of the stream into a JSON line
func FormatJson[D, T any](done <-chan D, in <-chan T) <-chan string {
	out := make(chan string)

	go func() {
		defer panicrecovery.PanicRecovery()
		defer close(out)

		for item := range OrDone(done, in) {
			if bytes, err := json.Marshal(item); err != nil {
				panic(err)
			} else if ok := Send(done, out, string(bytes)); !ok {
				return
			}
		}
	}()

	return out
}
