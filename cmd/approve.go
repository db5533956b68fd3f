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
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/pimctl/pimctl/config"
	"github.com/pimctl/pimctl/panicrecovery"
	"github.com/pimctl/pimctl/workflow"
)

func init() {
	rootCmd.AddCommand(approveCmd)
}

var approveCmd = &cobra.Command{
	Use:          "approve",
	Short:        "Review the role activation requests waiting for your approval",
	Run:          approveCmdImpl,
	SilenceUsage: true,
}

func approveCmdImpl(cmd *cobra.Command, args []string) {
	if !isInteractive() {
		exit(errors.New("approve requires an interactive terminal; use 'list pending-approvals' to list requests"))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, os.Kill)
	defer gracefulShutdown(stop)

	azClient := connectAndCreateClient()
	defer azClient.CloseIdleConnections()
	panicrecovery.HandleBubbledPanic(ctx, stop, log)

	renderer := workflow.NewTableRenderer(os.Stdout, config.NoColor.Bool())
	if err := reviewApprovals(ctx, azClient, terminalPrompter{}, renderer); err != nil {
		exit(err)
	}
}
