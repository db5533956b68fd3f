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

package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/pimctl/pimctl/models"
	"github.com/pimctl/pimctl/workflow"
)

// terminalPrompter reads reviewer input with promptui
type terminalPrompter struct{}

func (s terminalPrompter) MenuChoice() (menuAction, error) {
	prompt := promptui.Prompt{
		Label: menuLabel(),
		Validate: func(input string) error {
			_, err := parseMenuChoice(input)
			return err
		},
	}

	if input, err := prompt.Run(); err != nil {
		return menuExit, promptError(err)
	} else {
		return parseMenuChoice(input)
	}
}

func (s terminalPrompter) Selection(items []models.PendingApproval) (string, error) {
	prompt := promptui.Prompt{
		Label: fmt.Sprintf("Select a request [1-%d] or c to cancel", len(items)),
	}

	input, err := prompt.Run()
	return input, promptError(err)
}

func (s terminalPrompter) Decision(item models.PendingApproval) (workflow.Choice, error) {
	choices := []workflow.Choice{workflow.ChoiceApprove, workflow.ChoiceDeny, workflow.ChoiceCancel}
	prompt := promptui.Select{
		Label: fmt.Sprintf("Decision on %s for %s", item.RoleDisplayName, item.RequestorDisplayName),
		Items: choices,
	}

	if index, _, err := prompt.Run(); err != nil {
		return workflow.ChoiceCancel, promptError(err)
	} else {
		return choices[index], nil
	}
}

func (s terminalPrompter) Justification(choice workflow.Choice) (string, error) {
	prompt := promptui.Prompt{
		Label: fmt.Sprintf("Justification to %s (leave blank for the default)", strings.ToLower(choice.String())),
	}

	input, err := prompt.Run()
	return input, promptError(err)
}

// promptError maps ctrl+c and ctrl+d to leaving the current prompt
func promptError(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, promptui.ErrAbort) {
		return workflow.ErrExit
	}
	return err
}

type menuAction int

const (
	menuApprove menuAction = iota + 1
	menuRequestActivation
	menuActiveRoles
	menuDisconnect
	menuExit
)

var menuItems = []struct {
	action menuAction
	label  string
}{
	{menuApprove, "List and approve pending requests"},
	{menuRequestActivation, "Request role activation"},
	{menuActiveRoles, "View active roles"},
	{menuDisconnect, "Disconnect"},
	{menuExit, "Exit"},
}

func menuLabel() string {
	var label strings.Builder
	for _, item := range menuItems {
		fmt.Fprintf(&label, "%d) %s\n", item.action, item.label)
	}
	label.WriteString("Choose an option")
	return label.String()
}

func parseMenuChoice(input string) (menuAction, error) {
	if value, err := strconv.Atoi(strings.TrimSpace(input)); err != nil || value < int(menuApprove) || value > int(menuExit) {
		return 0, fmt.Errorf("enter a number between %d and %d", menuApprove, menuExit)
	} else {
		return menuAction(value), nil
	}
}
