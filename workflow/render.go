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
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/table"
	"github.com/sosodev/duration"

	"github.com/pimctl/pimctl/models"
)

const timeLayout = "2006-01-02 15:04 MST"

// TableRenderer writes listings and details as tables
type TableRenderer struct {
	out io.Writer

	warn    *color.Color
	fail    *color.Color
	success *color.Color
	deny    *color.Color
}

func NewTableRenderer(out io.Writer, noColor bool) *TableRenderer {
	renderer := &TableRenderer{
		out:     out,
		warn:    color.New(color.FgYellow),
		fail:    color.New(color.FgRed, color.Bold),
		success: color.New(color.FgGreen, color.Bold),
		deny:    color.New(color.FgMagenta, color.Bold),
	}

	if noColor {
		for _, c := range []*color.Color{renderer.warn, renderer.fail, renderer.success, renderer.deny} {
			c.DisableColor()
		}
	}

	return renderer
}

func (s *TableRenderer) Listing(items []models.PendingApproval) {
	writer := table.NewWriter()
	writer.SetStyle(table.StyleLight)
	writer.AppendHeader(table.Row{"#", "Requestor", "Role", "Resource", "Start", "Duration", "Justification"})
	for i, item := range items {
		writer.AppendRow(table.Row{i + 1, item.RequestorDisplayName, item.RoleDisplayName, item.ResourceDisplayName, formatStart(item.ScheduleStart), formatDuration(item.ScheduleDuration), item.Justification})
	}
	fmt.Fprintln(s.out, writer.Render())
}

func (s *TableRenderer) Detail(item models.PendingApproval) {
	writer := table.NewWriter()
	writer.SetStyle(table.StyleLight)
	writer.AppendRows([]table.Row{
		{"Role", item.RoleDisplayName},
		{"Requestor", item.RequestorDisplayName},
		{"Resource", fmt.Sprintf("%s (%s)", item.ResourceDisplayName, item.ResourceType)},
		{"Requested", item.CreatedOn.Local().Format(timeLayout)},
		{"Start", formatStart(item.ScheduleStart)},
		{"Duration", formatDuration(item.ScheduleDuration)},
		{"Ticket", formatTicket(item)},
		{"Justification", item.Justification},
		{"Status", item.Status},
	})
	fmt.Fprintln(s.out, writer.Render())
}

func (s *TableRenderer) NothingPending() {
	fmt.Fprintln(s.out, "No approvals are waiting for your review.")
}

func (s *TableRenderer) Warning(err error) {
	s.warn.Fprintf(s.out, "Pending approvals could not be listed: %v\n", err)
}

func (s *TableRenderer) Failure(err error) {
	s.fail.Fprintf(s.out, "%v\n", err)
}

func (s *TableRenderer) Outcome(item models.PendingApproval, state State) {
	switch state {
	case StateApproved:
		s.success.Fprintf(s.out, "Approved %s for %s\n", item.RoleDisplayName, item.RequestorDisplayName)
	case StateDenied:
		s.deny.Fprintf(s.out, "Denied %s for %s\n", item.RoleDisplayName, item.RequestorDisplayName)
	default:
		fmt.Fprintln(s.out, "No decision was submitted.")
	}
}

func formatStart(start *time.Time) string {
	if start == nil {
		return "immediately"
	}
	return start.Local().Format(timeLayout)
}

// formatDuration renders an ISO-8601 duration as days, hours and minutes; unparseable values are shown as given
func formatDuration(value string) string {
	if value == "" {
		return "-"
	}

	parsed, err := duration.Parse(value)
	if err != nil {
		return value
	}

	var (
		remaining = parsed.ToTimeDuration()
		parts     []string
	)
	if days := remaining / (24 * time.Hour); days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
		remaining -= days * 24 * time.Hour
	}
	if hours := remaining / time.Hour; hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
		remaining -= hours * time.Hour
	}
	if minutes := remaining / time.Minute; minutes > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	return strings.Join(parts, " ")
}

func formatTicket(item models.PendingApproval) string {
	switch {
	case item.TicketNumber == "" && item.TicketSystem == "":
		return "-"
	case item.TicketSystem == "":
		return item.TicketNumber
	default:
		return fmt.Sprintf("%s (%s)", item.TicketNumber, item.TicketSystem)
	}
}
