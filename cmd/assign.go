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
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/pimctl/pimctl/config"
	"github.com/pimctl/pimctl/enums"
	"github.com/pimctl/pimctl/models"
	"github.com/pimctl/pimctl/panicrecovery"
)

func init() {
	config.Init(assignCmd, config.AssignmentConfig)
	rootCmd.AddCommand(assignCmd)
}

var assignCmd = &cobra.Command{
	Use:          "assign",
	Short:        "Creates an eligible or active role assignment",
	Run:          assignCmdImpl,
	SilenceUsage: true,
}

func assignCmdImpl(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, os.Kill)
	defer gracefulShutdown(stop)

	request := newAssignmentRequest()
	if err := models.Validate(request); err != nil {
		exit(err)
	}

	azClient := connectAndCreateClient()
	defer azClient.CloseIdleConnections()
	panicrecovery.HandleBubbledPanic(ctx, stop, log)

	if response, err := azClient.CreateAssignmentRequest(ctx, request); err != nil {
		exit(err)
	} else {
		log.Info("assignment requested", "id", response.Id, "status", response.Properties.Status)
		out := make(chan any, 1)
		out <- NewAzureWrapper(enums.KindAssignmentRequest, response)
		close(out)
		outputStream(ctx, out)
	}
}

func newAssignmentRequest() models.AssignmentRequest {
	return models.AssignmentRequest{
		PrincipalId:      config.AssignPrincipalId.String(),
		RoleDefinitionId: config.AssignRoleDefinitionId.String(),
		ScopeId:          config.AssignScope.String(),
		AssignmentType:   enums.AssignmentType(config.AssignType.String()),
		Justification:    config.AssignJustification.String(),
		DurationDays:     config.AssignDurationDays.Int(),
	}
}
