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

package workflow

import (
	"context"
	"errors"

	"github.com/pimctl/pimctl/models"
)

// Prompter reads the reviewer's input. Implementations return ErrExit when the reviewer aborts a prompt.
type Prompter interface {
	Selection(items []models.PendingApproval) (string, error)
	Decision(item models.PendingApproval) (Choice, error)
	Justification(choice Choice) (string, error)
}

type Renderer interface {
	Listing(items []models.PendingApproval)
	Detail(item models.PendingApproval)
	NothingPending()
	Warning(err error)
	Failure(err error)
	Outcome(item models.PendingApproval, state State)
}

// Run drives the workflow until the queue is empty, the listing fails, or the reviewer exits
func Run(ctx context.Context, workflow *Workflow, prompter Prompter, renderer Renderer) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		listing := workflow.Refresh(ctx)
		if listing.Failed() {
			renderer.Warning(listing.Err)
			return nil
		} else if listing.Empty() {
			renderer.NothingPending()
			return nil
		}
		renderer.Listing(listing.Items)

		var selectionErr *SelectionError
		if input, err := prompter.Selection(listing.Items); errors.Is(err, ErrExit) {
			return nil
		} else if err != nil {
			return err
		} else if item, err := workflow.Select(input); errors.Is(err, ErrExit) {
			return nil
		} else if errors.As(err, &selectionErr) {
			renderer.Failure(err)
			continue
		} else if err != nil {
			return err
		} else if err := review(ctx, workflow, prompter, renderer, item); err != nil {
			return err
		}
	}
}

func review(ctx context.Context, workflow *Workflow, prompter Prompter, renderer Renderer, item models.PendingApproval) error {
	renderer.Detail(item)

	choice, err := prompter.Decision(item)
	if errors.Is(err, ErrExit) {
		choice = ChoiceCancel
	} else if err != nil {
		return err
	}

	var justification string
	if choice != ChoiceCancel {
		if justification, err = prompter.Justification(choice); errors.Is(err, ErrExit) {
			choice = ChoiceCancel
		} else if err != nil {
			return err
		}
	}

	if outcome, err := workflow.Decide(ctx, choice, justification); err != nil {
		renderer.Failure(err)
	} else {
		renderer.Outcome(item, outcome)
	}
	return nil
}
