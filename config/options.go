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

package config

var (
	// Global Configurations
	ConfigFile = Config{
		Name:       "config",
		Shorthand:  "c",
		Usage:      "pimctl configuration file (default: " + DefaultConfigDir() + "/config.yaml)",
		Persistent: true,
		Default:    "",
	}
	Verbosity = Config{
		Name:       "verbosity",
		Shorthand:  "v",
		Usage:      "pimctl verbosity level (defaults to 0) [Min: -1, Max: 2]",
		Persistent: true,
		Default:    0,
	}
	JsonLogs = Config{
		Name:       "json",
		Usage:      "Output logs as json",
		Persistent: true,
		Default:    false,
	}
	LogFile = Config{
		Name:       "log-file",
		Usage:      "Output logs to this file",
		Persistent: true,
		Default:    "",
	}
	NoColor = Config{
		Name:       "no-color",
		Usage:      "Disable colored output",
		Persistent: true,
		Default:    false,
	}
	Proxy = Config{
		Name:       "proxy",
		Usage:      "Sets the proxy URL for the pimctl service",
		Persistent: true,
		Default:    "",
	}

	// Azure Configurations
	AzTenant = Config{
		Name:       "tenant",
		Shorthand:  "t",
		Usage:      "The directory (tenant) ID or name of the Azure tenant",
		Persistent: true,
		Required:   true,
		Default:    "",
	}
	AzAppId = Config{
		Name:       "app",
		Shorthand:  "a",
		Usage:      "The Application Id that pimctl authenticates as",
		Persistent: true,
		Default:    "",
	}
	AzSecret = Config{
		Name:       "secret",
		Shorthand:  "s",
		Usage:      "The Application Secret of the Application Id",
		Persistent: true,
		Default:    "",
	}
	AzCert = Config{
		Name:       "cert",
		Usage:      "The path to the certificate uploaded to the Application Id",
		Persistent: true,
		Default:    "",
	}
	AzKey = Config{
		Name:       "key",
		Shorthand:  "k",
		Usage:      "The path to the key file of the certificate",
		Persistent: true,
		Default:    "",
	}
	AzKeyPass = Config{
		Name:       "keypass",
		Usage:      "The passphrase of the key file",
		Persistent: true,
		Default:    "",
	}
	AzUsername = Config{
		Name:       "username",
		Shorthand:  "u",
		Usage:      "The user principal name to sign in as",
		Persistent: true,
		Default:    "",
	}
	AzPassword = Config{
		Name:       "password",
		Shorthand:  "p",
		Usage:      "The password of the user principal",
		Persistent: true,
		Default:    "",
	}
	RefreshToken = Config{
		Name:       "refresh-token",
		Shorthand:  "r",
		Usage:      "A refresh token issued to the Application Id",
		Persistent: true,
		Default:    "",
	}
	JWT = Config{
		Name:       "jwt",
		Shorthand:  "j",
		Usage:      "An access token to use as is; it must be issued for the resource being called",
		Persistent: true,
		Default:    "",
	}
	AzAuthUrl = Config{
		Name:       "auth",
		Usage:      "The Azure authority URL",
		Persistent: true,
		Default:    "",
	}
	AzGraphUrl = Config{
		Name:       "graph",
		Usage:      "The Microsoft Graph URL",
		Persistent: true,
		Default:    "",
	}
	AzMgmtUrl = Config{
		Name:       "mgmt",
		Usage:      "The Azure Resource Manager URL",
		Persistent: true,
		Default:    "",
	}

	// Command Configurations
	OutputFile = Config{
		Name:       "output",
		Shorthand:  "o",
		Usage:      "The output file to write to; defaults to stdout",
		Persistent: true,
		Default:    "",
	}
	DefaultApproverGroup = Config{
		Name:    "default-approver-group",
		Usage:   "Display name of the group that approves activations for roles that require approval but name no approver",
		Default: "",
	}
	DryRun = Config{
		Name:    "dry-run",
		Usage:   "Print the rules that would be applied without changing any policy",
		Default: false,
	}
	RoleName = Config{
		Name:    "role",
		Usage:   "Display name of the role",
		Default: "",
	}

	// Assignment Configurations
	AssignRoleDefinitionId = Config{
		Name:    "role-definition-id",
		Usage:   "Resource ID of the role definition, e.g. /subscriptions/{id}/providers/Microsoft.Authorization/roleDefinitions/{id}",
		Default: "",
	}
	AssignPrincipalId = Config{
		Name:    "principal",
		Usage:   "Object ID of the principal to assign the role to",
		Default: "",
	}
	AssignScope = Config{
		Name:    "scope",
		Usage:   "Scope of the assignment, e.g. /subscriptions/{id}",
		Default: "",
	}
	AssignType = Config{
		Name:    "type",
		Usage:   "Eligible or Active",
		Default: "Eligible",
	}
	AssignDurationDays = Config{
		Name:    "duration-days",
		Usage:   "Number of days the assignment lasts",
		Default: 365,
	}
	AssignJustification = Config{
		Name:    "justification",
		Usage:   "Reason for the assignment",
		Default: "",
	}

	GlobalConfig = []Config{
		ConfigFile,
		Verbosity,
		JsonLogs,
		LogFile,
		NoColor,
		Proxy,
	}

	AssignmentConfig = []Config{
		AssignRoleDefinitionId,
		AssignPrincipalId,
		AssignScope,
		AssignType,
		AssignDurationDays,
		AssignJustification,
	}

	AzureConfig = []Config{
		AzTenant,
		AzAppId,
		AzSecret,
		AzCert,
		AzKey,
		AzKeyPass,
		AzUsername,
		AzPassword,
		RefreshToken,
		JWT,
		AzAuthUrl,
		AzGraphUrl,
		AzMgmtUrl,
	}
)

// Options returns every option a command may be loaded with
func Options() []Config {
	return append(GlobalConfig, AzureConfig...)
}
