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

package constants

import (
	"fmt"
	"runtime"
)

// Set at build time with -ldflags
var Version string = "v0.0.0"

const (
	Name        string = "pimctl"
	DisplayName string = "PIM Control"
	Description string = "Privileged role activation policies and approval reviews for Microsoft Entra ID and Azure"
	AuthorRef   string = "Created by the pimctl authors"
)

// Azure API versions
const (
	GraphApiVersion           string = "v1.0"
	ScheduleRequestApiVersion string = "2020-10-01"
	ApprovalStageApiVersion   string = "2021-01-01-preview"
)

// Azure endpoint defaults
const (
	AzAuthUrl  string = "https://login.microsoftonline.com"
	AzGraphUrl string = "https://graph.microsoft.com"
	AzMgmtUrl  string = "https://management.azure.com"
)

// DefaultJustification is sent with a decision when the reviewer leaves the justification blank.
const DefaultJustification string = "Reviewed via " + Name

// ActivationRuleSuffix marks the policy rules that govern end-user activation.
const ActivationRuleSuffix string = "_EndUser_Assignment"

func UserAgent() string {
	return fmt.Sprintf("%s/%s (%s %s)", Name, Version, runtime.GOOS, runtime.GOARCH)
}
