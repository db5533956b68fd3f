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

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/pimctl/pimctl/policy"
)

// RoleDescriptor is one entry of the roles list in the config file
//
//	roles:
//	  - name: Global Administrator
//	    approverGroup: Tier 0 Approvers
//	    requireApproval: true
//	    requireMfa: true
//	    maxActivationHours: 4
type RoleDescriptor struct {
	Name string `mapstructure:"name"`
	// ApproverGroup is a group display name, resolved to ApproverGroupId before the policy is built
	ApproverGroup string `mapstructure:"approverGroup"`

	policy.Settings `mapstructure:",squash"`
}

// Roles decodes the roles list of the config file
func Roles() ([]RoleDescriptor, error) {
	var roles []RoleDescriptor
	if err := viper.UnmarshalKey("roles", &roles); err != nil {
		return nil, fmt.Errorf("malformed roles list: %w", err)
	}

	for i, role := range roles {
		if role.Name == "" {
			return nil, fmt.Errorf("role %d of the roles list has no name", i+1)
		}
	}

	return roles, nil
}
