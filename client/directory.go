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

package client

import (
	"context"
	"fmt"

	"github.com/pimctl/pimctl/client/query"
	"github.com/pimctl/pimctl/constants"
	"github.com/pimctl/pimctl/models"
	"github.com/pimctl/pimctl/models/azure"
)

// AzureDirectoryClient resolves directory objects by display name
type AzureDirectoryClient interface {
	ListRoleDefinitions(ctx context.Context, params query.GraphParams) <-chan AzureResult[azure.UnifiedRoleDefinition]
	ListGroups(ctx context.Context, params query.GraphParams) <-chan AzureResult[azure.Group]
	ResolveRole(ctx context.Context, name string) (models.RoleDefinition, error)
	ResolveGroup(ctx context.Context, name string) (models.GroupRef, error)
}

// ListRoleDefinitions https://learn.microsoft.com/en-us/graph/api/rbacapplication-list-roledefinitions?view=graph-rest-1.0
func (s *azureClient) ListRoleDefinitions(ctx context.Context, params query.GraphParams) <-chan AzureResult[azure.UnifiedRoleDefinition] {
	var (
		out  = make(chan AzureResult[azure.UnifiedRoleDefinition])
		path = fmt.Sprintf("/%s/roleManagement/directory/roleDefinitions", constants.GraphApiVersion)
	)

	go getAzureObjectList[azure.UnifiedRoleDefinition](s.msgraph, ctx, path, params, out)

	return out
}

// ListGroups https://learn.microsoft.com/en-us/graph/api/group-list?view=graph-rest-1.0
func (s *azureClient) ListGroups(ctx context.Context, params query.GraphParams) <-chan AzureResult[azure.Group] {
	var (
		out  = make(chan AzureResult[azure.Group])
		path = fmt.Sprintf("/%s/groups", constants.GraphApiVersion)
	)

	go getAzureObjectList[azure.Group](s.msgraph, ctx, path, params, out)

	return out
}

// ResolveRole finds the directory role whose display name is exactly name
func (s *azureClient) ResolveRole(ctx context.Context, name string) (models.RoleDefinition, error) {
	roles, err := collect(s.ListRoleDefinitions(ctx, query.GraphParams{
		Filter: "displayName eq " + query.Quote(name),
		Select: []string{"id", "displayName"},
	}))
	if err != nil {
		return models.RoleDefinition{}, fmt.Errorf("unable to resolve role %q: %w", name, err)
	}

	ids := make([]string, 0, len(roles))
	for _, role := range roles {
		ids = append(ids, role.Id)
	}
	if err := requireSingle("role", name, ids); err != nil {
		return models.RoleDefinition{}, err
	}

	s.log.V(1).Info("resolved role", "name", name, "id", roles[0].Id)
	return models.RoleDefinition{Id: roles[0].Id, DisplayName: roles[0].DisplayName}, nil
}

// ResolveGroup finds the group whose display name is exactly name
func (s *azureClient) ResolveGroup(ctx context.Context, name string) (models.GroupRef, error) {
	groups, err := collect(s.ListGroups(ctx, query.GraphParams{
		Filter: "displayName eq " + query.Quote(name),
		Select: []string{"id", "displayName"},
	}))
	if err != nil {
		return models.GroupRef{}, fmt.Errorf("unable to resolve group %q: %w", name, err)
	}

	ids := make([]string, 0, len(groups))
	for _, group := range groups {
		ids = append(ids, group.Id)
	}
	if err := requireSingle("group", name, ids); err != nil {
		return models.GroupRef{}, err
	}

	s.log.V(1).Info("resolved group", "name", name, "id", groups[0].Id)
	return models.GroupRef{Id: groups[0].Id, DisplayName: groups[0].DisplayName}, nil
}

// Display names are not unique in the directory; more than one match fails rather than guessing
func requireSingle(kind string, name string, ids []string) error {
	switch len(ids) {
	case 0:
		return &NotFoundError{Kind: kind, Name: name}
	case 1:
		return nil
	default:
		return &AmbiguousNameError{Kind: kind, Name: name, Matches: ids}
	}
}
