// Copyright (C) 2022 The pimctl Authors
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
	"net/http"

	"github.com/go-logr/logr"

	"github.com/pimctl/pimctl/client/config"
	"github.com/pimctl/pimctl/client/query"
	"github.com/pimctl/pimctl/client/rest"
	"github.com/pimctl/pimctl/models/azure"
	"github.com/pimctl/pimctl/panicrecovery"
	"github.com/pimctl/pimctl/pipeline"
)

func NewClient(session *rest.Session, config config.Config, log logr.Logger) (AzureClient, error) {
	if msgraph, err := rest.NewRestClient(config.GraphUrl(), session, log); err != nil {
		return nil, err
	} else if resourceManager, err := rest.NewRestClient(config.ResourceManagerUrl(), session, log); err != nil {
		return nil, err
	} else {
		return initClient(msgraph, resourceManager, session, log), nil
	}
}

func initClient(msgraph, resourceManager rest.RestClient, session *rest.Session, log logr.Logger) AzureClient {
	return &azureClient{
		msgraph:         msgraph,
		resourceManager: resourceManager,
		session:         session,
		log:             log,
	}
}

type azureClient struct {
	msgraph         rest.RestClient
	resourceManager rest.RestClient
	session         *rest.Session
	log             logr.Logger
}

type AzureResult[T any] struct {
	Error error
	Ok    T
}

type AzureClient interface {
	AzureDirectoryClient
	AzureRoleManagementClient
	AzureApprovalClient
	AzureAssignmentClient

	Session() *rest.Session
	CloseIdleConnections()
}

func (s *azureClient) Session() *rest.Session {
	return s.session
}

func (s *azureClient) CloseIdleConnections() {
	s.msgraph.CloseIdleConnections()
	s.resourceManager.CloseIdleConnections()
}

// getAzureObjectList follows next links until the collection is exhausted, sending every item to out
func getAzureObjectList[T any](client rest.RestClient, ctx context.Context, path string, params query.Params, out chan AzureResult[T]) {
	defer panicrecovery.PanicRecovery()
	defer close(out)

	var (
		errResult AzureResult[T]
		nextLink  string
	)

	for {
		var (
			list azure.Response[T]
			res  *http.Response
			err  error
		)

		if nextLink != "" {
			res, err = client.Get(ctx, nextLink, nil, nil)
		} else {
			res, err = client.Get(ctx, path, params, nil)
		}

		if err != nil {
			errResult.Error = err
			_ = pipeline.Send(ctx.Done(), out, errResult)
			return
		} else if err := rest.Decode(res.Body, &list); err != nil {
			errResult.Error = fmt.Errorf("malformed response from %s: %w", path, err)
			_ = pipeline.Send(ctx.Done(), out, errResult)
			return
		}

		for _, u := range list.Value {
			if ok := pipeline.Send(ctx.Done(), out, AzureResult[T]{Ok: u}); !ok {
				return
			}
		}

		if nextLink = list.NextLink(); nextLink == "" {
			return
		}
	}
}

// collect drains a listing, stopping at the first error
func collect[T any](in <-chan AzureResult[T]) ([]T, error) {
	var items []T
	for item := range in {
		if item.Error != nil {
			return nil, item.Error
		}
		items = append(items, item.Ok)
	}
	return items, nil
}
