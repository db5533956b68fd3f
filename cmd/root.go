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
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/pimctl/pimctl/config"
	"github.com/pimctl/pimctl/constants"
)

var log logr.Logger = logr.Discard()

var rootCmd = &cobra.Command{
	Use:               constants.Name,
	Short:             constants.Description,
	Version:           constants.Version,
	Long:              fmt.Sprintf("%s\n%s\n\n%s", constants.DisplayName, constants.AuthorRef, constants.Description),
	PersistentPreRunE: persistentPreRunE,
	Run:               menuCmdImpl,
	SilenceUsage:      true,
}

func init() {
	config.Init(rootCmd, append(config.Options(), config.OutputFile))
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
