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
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/pimctl/pimctl/catalog"
	"github.com/pimctl/pimctl/config"
	"github.com/pimctl/pimctl/models"
	"github.com/pimctl/pimctl/panicrecovery"
	"github.com/pimctl/pimctl/workflow"
)

func init() {
	rootCmd.AddCommand(menuCmd)
}

var menuCmd = &cobra.Command{
	Use:          "menu",
	Short:        "Open the interactive menu",
	Run:          menuCmdImpl,
	SilenceUsage: true,
}

type menuSession interface {
	Connected() bool
	Disconnect()
}

type menuPrompter interface {
	workflow.Prompter
	MenuChoice() (menuAction, error)
}

func menuCmdImpl(cmd *cobra.Command, args []string) {
	if !isInteractive() {
		exit(errors.New("the menu requires an interactive terminal; run a subcommand instead"))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, os.Kill)
	defer gracefulShutdown(stop)

	azClient := connectAndCreateClient()
	defer azClient.CloseIdleConnections()
	panicrecovery.HandleBubbledPanic(ctx, stop, log)

	var (
		prompter = terminalPrompter{}
		renderer = workflow.NewTableRenderer(os.Stdout, config.NoColor.Bool())
		approve  = func(ctx context.Context) error {
			return reviewApprovals(ctx, azClient, prompter, renderer)
		}
	)

	if err := runMenu(ctx, prompter, os.Stdout, approve, azClient.Session()); err != nil {
		exit(err)
	}
}

// runMenu dispatches menu choices until the reviewer exits
func runMenu(ctx context.Context, prompter menuPrompter, out io.Writer, approve func(context.Context) error, session menuSession) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		action, err := prompter.MenuChoice()
		if errors.Is(err, workflow.ErrExit) {
			return nil
		} else if err != nil {
			return err
		}

		switch action {
		case menuApprove:
			if err := approve(ctx); err != nil {
				return err
			}
		case menuRequestActivation, menuActiveRoles:
			fmt.Fprintln(out, "This option is not available yet.")
		case menuDisconnect:
			if session.Connected() {
				session.Disconnect()
				fmt.Fprintln(out, "Disconnected. The next request signs in again.")
			} else {
				fmt.Fprintln(out, "Not signed in; nothing to disconnect.")
			}
		case menuExit:
			return nil
		}
	}
}

type approvalClient interface {
	catalog.PendingLister
	SubmitDecision(ctx context.Context, approvalId string, decision models.Decision) error
}

func reviewApprovals(ctx context.Context, azClient approvalClient, prompter workflow.Prompter, renderer workflow.Renderer) error {
	wf := workflow.New(catalog.New(azClient, log), azClient, log)
	return workflow.Run(ctx, wf, prompter, renderer)
}
