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

package workflow_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pimctl/pimctl/catalog"
	"github.com/pimctl/pimctl/constants"
	"github.com/pimctl/pimctl/enums"
	"github.com/pimctl/pimctl/models"
	"github.com/pimctl/pimctl/workflow"
)

type fakeLister struct {
	listings []catalog.Listing
	calls    int
}

func (s *fakeLister) ListPending(context.Context) catalog.Listing {
	s.calls++
	if s.calls > len(s.listings) {
		return catalog.Listing{}
	}
	return s.listings[s.calls-1]
}

type submission struct {
	approvalId string
	decision   models.Decision
}

type fakeSubmitter struct {
	submissions []submission
	err         error
}

func (s *fakeSubmitter) SubmitDecision(_ context.Context, approvalId string, decision models.Decision) error {
	s.submissions = append(s.submissions, submission{approvalId: approvalId, decision: decision})
	return s.err
}

func approvals(ids ...string) []models.PendingApproval {
	items := make([]models.PendingApproval, 0, len(ids))
	for _, id := range ids {
		items = append(items, models.PendingApproval{ApprovalId: id, RoleDisplayName: "Owner", RequestorDisplayName: "Ada"})
	}
	return items
}

func TestSelect(t *testing.T) {
	ctx := context.Background()

	for _, input := range []string{"0", "4", "two", ""} {
		t.Run("rejects "+input, func(t *testing.T) {
			lister := &fakeLister{listings: []catalog.Listing{{Items: approvals("a", "b", "c")}, {Items: approvals("d")}}}
			wf := workflow.New(lister, &fakeSubmitter{}, logr.Discard())

			wf.Refresh(ctx)
			_, err := wf.Select(input)

			var selectionErr *workflow.SelectionError
			require.ErrorAs(t, err, &selectionErr)
			assert.Equal(t, 3, selectionErr.Count)
			assert.Equal(t, workflow.StateListing, wf.State())
			assert.Empty(t, wf.Items())

			_, err = wf.Select("1")
			assert.ErrorIs(t, err, workflow.ErrNoListing)

			wf.Refresh(ctx)
			assert.Equal(t, 2, lister.calls)
			item, err := wf.Select("1")
			require.NoError(t, err)
			assert.Equal(t, "d", item.ApprovalId)
		})
	}

	t.Run("cancel exits", func(t *testing.T) {
		wf := workflow.New(&fakeLister{listings: []catalog.Listing{{Items: approvals("a")}}}, &fakeSubmitter{}, logr.Discard())
		wf.Refresh(ctx)

		_, err := wf.Select(" Cancel ")
		assert.ErrorIs(t, err, workflow.ErrExit)
		assert.Equal(t, workflow.StateListing, wf.State())
	})

	t.Run("valid index", func(t *testing.T) {
		wf := workflow.New(&fakeLister{listings: []catalog.Listing{{Items: approvals("a", "b", "c")}}}, &fakeSubmitter{}, logr.Discard())
		wf.Refresh(ctx)

		item, err := wf.Select("3")
		require.NoError(t, err)
		assert.Equal(t, "c", item.ApprovalId)
		assert.Equal(t, workflow.StateInspecting, wf.State())

		selected, ok := wf.Selected()
		require.True(t, ok)
		assert.Equal(t, item, selected)
	})
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("empty stays in listing", func(t *testing.T) {
		wf := workflow.New(&fakeLister{}, &fakeSubmitter{}, logr.Discard())
		listing := wf.Refresh(ctx)
		assert.True(t, listing.Empty())
		assert.Equal(t, workflow.StateListing, wf.State())
	})

	t.Run("failure stays in listing", func(t *testing.T) {
		wf := workflow.New(&fakeLister{listings: []catalog.Listing{{Err: errors.New("throttled")}}}, &fakeSubmitter{}, logr.Discard())
		listing := wf.Refresh(ctx)
		assert.True(t, listing.Failed())
		assert.Equal(t, workflow.StateListing, wf.State())
	})
}

func TestDecide(t *testing.T) {
	ctx := context.Background()

	inspecting := func(t *testing.T, submitter *fakeSubmitter) *workflow.Workflow {
		wf := workflow.New(&fakeLister{listings: []catalog.Listing{{Items: approvals("a", "b")}}}, submitter, logr.Discard())
		wf.Refresh(ctx)
		_, err := wf.Select("2")
		require.NoError(t, err)
		return wf
	}

	t.Run("deny with blank justification uses the default", func(t *testing.T) {
		submitter := &fakeSubmitter{}
		wf := inspecting(t, submitter)

		state, err := wf.Decide(ctx, workflow.ChoiceDeny, "   ")
		require.NoError(t, err)
		assert.Equal(t, workflow.StateDenied, state)
		require.Len(t, submitter.submissions, 1)
		assert.Equal(t, "b", submitter.submissions[0].approvalId)
		assert.Equal(t, models.Decision{ReviewResult: enums.ReviewDeny, Justification: constants.DefaultJustification}, submitter.submissions[0].decision)
		assert.NotEmpty(t, constants.DefaultJustification)
	})

	t.Run("approve", func(t *testing.T) {
		submitter := &fakeSubmitter{}
		wf := inspecting(t, submitter)

		state, err := wf.Decide(ctx, workflow.ChoiceApprove, "ok")
		require.NoError(t, err)
		assert.Equal(t, workflow.StateApproved, state)
		assert.Equal(t, workflow.StateApproved, wf.State())
		assert.Equal(t, models.Decision{ReviewResult: enums.ReviewApprove, Justification: "ok"}, submitter.submissions[0].decision)
	})

	t.Run("cancel submits nothing", func(t *testing.T) {
		submitter := &fakeSubmitter{}
		wf := inspecting(t, submitter)

		state, err := wf.Decide(ctx, workflow.ChoiceCancel, "")
		require.NoError(t, err)
		assert.Equal(t, workflow.StateCancelled, state)
		assert.Equal(t, workflow.StateListing, wf.State())
		assert.Empty(t, submitter.submissions)
	})

	t.Run("failure returns to listing without retry", func(t *testing.T) {
		submitter := &fakeSubmitter{err: errors.New("already reviewed")}
		wf := inspecting(t, submitter)

		state, err := wf.Decide(ctx, workflow.ChoiceApprove, "ok")
		require.ErrorContains(t, err, "already reviewed")
		assert.Equal(t, workflow.StateListing, state)
		assert.Equal(t, workflow.StateListing, wf.State())
		assert.Len(t, submitter.submissions, 1)

		_, err = wf.Decide(ctx, workflow.ChoiceApprove, "ok")
		assert.ErrorIs(t, err, workflow.ErrNoSelection)
	})

	t.Run("nothing selected", func(t *testing.T) {
		wf := workflow.New(&fakeLister{}, &fakeSubmitter{}, logr.Discard())
		_, err := wf.Decide(ctx, workflow.ChoiceApprove, "ok")
		assert.ErrorIs(t, err, workflow.ErrNoSelection)
	})
}

type scriptedPrompter struct {
	selections     []string
	choices        []workflow.Choice
	justifications []string
}

func (s *scriptedPrompter) Selection([]models.PendingApproval) (string, error) {
	if len(s.selections) == 0 {
		return "", workflow.ErrExit
	}
	next := s.selections[0]
	s.selections = s.selections[1:]
	return next, nil
}

func (s *scriptedPrompter) Decision(models.PendingApproval) (workflow.Choice, error) {
	if len(s.choices) == 0 {
		return workflow.ChoiceCancel, workflow.ErrExit
	}
	next := s.choices[0]
	s.choices = s.choices[1:]
	return next, nil
}

func (s *scriptedPrompter) Justification(workflow.Choice) (string, error) {
	if len(s.justifications) == 0 {
		return "", nil
	}
	next := s.justifications[0]
	s.justifications = s.justifications[1:]
	return next, nil
}

type recordingRenderer struct {
	events []string
}

func (s *recordingRenderer) Listing(items []models.PendingApproval) {
	s.events = append(s.events, "listing")
}
func (s *recordingRenderer) Detail(models.PendingApproval) { s.events = append(s.events, "detail") }
func (s *recordingRenderer) NothingPending()               { s.events = append(s.events, "nothing") }
func (s *recordingRenderer) Warning(error)                 { s.events = append(s.events, "warning") }
func (s *recordingRenderer) Failure(error)                 { s.events = append(s.events, "failure") }
func (s *recordingRenderer) Outcome(_ models.PendingApproval, state workflow.State) {
	s.events = append(s.events, state.String())
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("approve the only pending request", func(t *testing.T) {
		var (
			lister    = &fakeLister{listings: []catalog.Listing{{Items: approvals("only")}}}
			submitter = &fakeSubmitter{}
			prompter  = &scriptedPrompter{selections: []string{"1"}, choices: []workflow.Choice{workflow.ChoiceApprove}, justifications: []string{"ok"}}
			renderer  = &recordingRenderer{}
		)

		require.NoError(t, workflow.Run(ctx, workflow.New(lister, submitter, logr.Discard()), prompter, renderer))
		require.Len(t, submitter.submissions, 1)
		assert.Equal(t, submission{approvalId: "only", decision: models.Decision{ReviewResult: enums.ReviewApprove, Justification: "ok"}}, submitter.submissions[0])
		assert.Equal(t, []string{"listing", "detail", "Approved", "nothing"}, renderer.events)
	})

	t.Run("bad selection re-fetches", func(t *testing.T) {
		var (
			lister   = &fakeLister{listings: []catalog.Listing{{Items: approvals("a", "b", "c")}, {Items: approvals("a", "b")}}}
			prompter = &scriptedPrompter{selections: []string{"4", "c"}}
			renderer = &recordingRenderer{}
		)

		require.NoError(t, workflow.Run(ctx, workflow.New(lister, &fakeSubmitter{}, logr.Discard()), prompter, renderer))
		assert.Equal(t, 2, lister.calls)
		assert.Equal(t, []string{"listing", "failure", "listing"}, renderer.events)
	})

	t.Run("listing failure is a warning", func(t *testing.T) {
		lister := &fakeLister{listings: []catalog.Listing{{Err: errors.New("unreachable")}}}
		renderer := &recordingRenderer{}

		require.NoError(t, workflow.Run(ctx, workflow.New(lister, &fakeSubmitter{}, logr.Discard()), &scriptedPrompter{}, renderer))
		assert.Equal(t, []string{"warning"}, renderer.events)
	})

	t.Run("rejected decision keeps the session alive", func(t *testing.T) {
		var (
			lister    = &fakeLister{listings: []catalog.Listing{{Items: approvals("a")}, {Items: approvals("a")}}}
			submitter = &fakeSubmitter{err: errors.New("stage already reviewed")}
			prompter  = &scriptedPrompter{selections: []string{"1"}, choices: []workflow.Choice{workflow.ChoiceDeny}}
			renderer  = &recordingRenderer{}
		)

		require.NoError(t, workflow.Run(ctx, workflow.New(lister, submitter, logr.Discard()), prompter, renderer))
		assert.Equal(t, []string{"listing", "detail", "failure", "listing"}, renderer.events)
		assert.Equal(t, constants.DefaultJustification, submitter.submissions[0].decision.Justification)
	})

	t.Run("cancelled context stops the loop", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		err := workflow.Run(cancelled, workflow.New(&fakeLister{}, &fakeSubmitter{}, logr.Discard()), &scriptedPrompter{}, &recordingRenderer{})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestTableRenderer(t *testing.T) {
	var (
		out      bytes.Buffer
		start    = time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)
		renderer = workflow.NewTableRenderer(&out, true)
		item     = models.PendingApproval{
			ApprovalId:           "a",
			RequestorDisplayName: "Ada",
			RoleDisplayName:      "Owner",
			ResourceDisplayName:  "prod",
			ResourceType:         "subscription",
			Justification:        "incident 42",
			TicketNumber:         "INC42",
			TicketSystem:         "ServiceNow",
			ScheduleStart:        &start,
			ScheduleDuration:     "PT8H",
		}
	)

	renderer.Listing([]models.PendingApproval{
		item,
		{ApprovalId: "b", RoleDisplayName: "Reader", ScheduleDuration: "P1DT2H30M"},
	})
	assert.Contains(t, out.String(), "Owner")
	assert.Contains(t, out.String(), "immediately")
	assert.Contains(t, out.String(), "1d 2h 30m")
	assert.NotContains(t, out.String(), "PT8H")

	out.Reset()
	renderer.Detail(item)
	assert.Contains(t, out.String(), "INC42 (ServiceNow)")
	assert.Contains(t, out.String(), "prod (subscription)")
	assert.Contains(t, out.String(), "8h")
	assert.NotContains(t, out.String(), "PT8H")

	out.Reset()
	renderer.Outcome(item, workflow.StateApproved)
	assert.Equal(t, "Approved Owner for Ada\n", out.String())
}
