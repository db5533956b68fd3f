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
	"fmt"
	"strconv"
	"strings"

	"github.com/go-logr/logr"

	"github.com/pimctl/pimctl/catalog"
	"github.com/pimctl/pimctl/constants"
	"github.com/pimctl/pimctl/enums"
	"github.com/pimctl/pimctl/models"
)

type State int

const (
	StateListing State = iota
	StateAwaitingSelection
	StateInspecting
	StateDeciding
	StateApproved
	StateDenied
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateListing:
		return "Listing"
	case StateAwaitingSelection:
		return "AwaitingSelection"
	case StateInspecting:
		return "Inspecting"
	case StateDeciding:
		return "Deciding"
	case StateApproved:
		return "Approved"
	case StateDenied:
		return "Denied"
	case StateCancelled:
		return "Cancelled"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Choice is the reviewer's verdict on the approval being inspected
type Choice int

const (
	ChoiceApprove Choice = iota
	ChoiceDeny
	ChoiceCancel
)

func (s Choice) String() string {
	switch s {
	case ChoiceApprove:
		return "Approve"
	case ChoiceDeny:
		return "Deny"
	case ChoiceCancel:
		return "Cancel"
	default:
		return fmt.Sprintf("Choice(%d)", int(s))
	}
}

var (
	// ErrExit is returned when the reviewer leaves the workflow at the selection prompt
	ErrExit = errors.New("reviewer exited the approval workflow")

	ErrNoSelection = errors.New("no pending approval is selected")
	ErrNoListing   = errors.New("no listing to select from; refresh first")
)

// SelectionError is returned for non-numeric or out of range selections. The listing it was made against is discarded.
type SelectionError struct {
	Input string
	Count int
}

func (s *SelectionError) Error() string {
	return fmt.Sprintf("invalid selection %q: enter a number between 1 and %d", s.Input, s.Count)
}

type Lister interface {
	ListPending(ctx context.Context) catalog.Listing
}

type DecisionSubmitter interface {
	SubmitDecision(ctx context.Context, approvalId string, decision models.Decision) error
}

// Workflow walks a reviewer through a single approval at a time. It holds no terminal state of its own.
type Workflow struct {
	lister    Lister
	submitter DecisionSubmitter
	log       logr.Logger

	state    State
	items    []models.PendingApproval
	selected *models.PendingApproval
}

func New(lister Lister, submitter DecisionSubmitter, log logr.Logger) *Workflow {
	return &Workflow{
		lister:    lister,
		submitter: submitter,
		log:       log,
		state:     StateListing,
	}
}

func (s *Workflow) State() State {
	return s.state
}

// Items returns the listing awaiting selection, if any
func (s *Workflow) Items() []models.PendingApproval {
	return s.items
}

func (s *Workflow) Selected() (models.PendingApproval, bool) {
	if s.selected == nil {
		return models.PendingApproval{}, false
	}
	return *s.selected, true
}

// Refresh always fetches a new listing. Only a non-empty listing moves the workflow on to selection.
func (s *Workflow) Refresh(ctx context.Context) catalog.Listing {
	s.reset()

	listing := s.lister.ListPending(ctx)
	if len(listing.Items) > 0 {
		s.items = listing.Items
		s.state = StateAwaitingSelection
	}

	s.log.V(2).Info("refreshed pending approvals", "count", len(listing.Items), "failed", listing.Failed(), "state", s.state)
	return listing
}

// Select takes the 1-based index of a listed approval, or "c"/"cancel" to leave the workflow
func (s *Workflow) Select(input string) (models.PendingApproval, error) {
	if s.state != StateAwaitingSelection {
		return models.PendingApproval{}, ErrNoListing
	}

	input = strings.TrimSpace(input)
	switch strings.ToLower(input) {
	case "c", "cancel":
		s.reset()
		return models.PendingApproval{}, ErrExit
	}

	count := len(s.items)
	if index, err := strconv.Atoi(input); err != nil || index < 1 || index > count {
		s.reset()
		return models.PendingApproval{}, &SelectionError{Input: input, Count: count}
	} else {
		selected := s.items[index-1]
		s.selected = &selected
		s.state = StateInspecting
		return selected, nil
	}
}

// Decide submits the reviewer's verdict on the selected approval exactly once. A blank justification is replaced
// with a default. Cancel and every failure return the workflow to listing.
func (s *Workflow) Decide(ctx context.Context, choice Choice, justification string) (State, error) {
	if s.state != StateInspecting || s.selected == nil {
		return s.state, ErrNoSelection
	}

	var (
		approval = *s.selected
		decision = models.Decision{Justification: strings.TrimSpace(justification)}
		outcome  State
	)

	switch choice {
	case ChoiceCancel:
		s.reset()
		return StateCancelled, nil
	case ChoiceApprove:
		decision.ReviewResult, outcome = enums.ReviewApprove, StateApproved
	case ChoiceDeny:
		decision.ReviewResult, outcome = enums.ReviewDeny, StateDenied
	default:
		return s.state, fmt.Errorf("unsupported choice %v", choice)
	}

	if decision.Justification == "" {
		decision.Justification = constants.DefaultJustification
	}

	s.state = StateDeciding
	if err := s.submitter.SubmitDecision(ctx, approval.ApprovalId, decision); err != nil {
		s.reset()
		return StateListing, fmt.Errorf("unable to %s %s for %s: %w", strings.ToLower(choice.String()), approval.RoleDisplayName, approval.RequestorDisplayName, err)
	}

	s.log.Info("decision submitted", "approvalId", approval.ApprovalId, "reviewResult", decision.ReviewResult)
	s.items = nil
	s.state = outcome
	return outcome, nil
}

func (s *Workflow) reset() {
	s.state = StateListing
	s.items = nil
	s.selected = nil
}
