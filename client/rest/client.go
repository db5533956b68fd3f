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

package rest

//go:generate go run go.uber.org/mock/mockgen -destination=./mocks/client.go -package=mocks . RestClient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-logr/logr"

	"github.com/pimctl/pimctl/client/query"
)

type RestClient interface {
	Get(ctx context.Context, path string, params query.Params, headers map[string]string) (*http.Response, error)
	Patch(ctx context.Context, path string, body interface{}, params query.Params, headers map[string]string) (*http.Response, error)
	Post(ctx context.Context, path string, body interface{}, params query.Params, headers map[string]string) (*http.Response, error)
	Put(ctx context.Context, path string, body interface{}, params query.Params, headers map[string]string) (*http.Response, error)
	Send(req *http.Request) (*http.Response, error)
	// Url returns the base address requests are resolved against
	Url() url.URL
	CloseIdleConnections()
}

// NewRestClient creates a client for apiUrl that authenticates every request through the given session
func NewRestClient(apiUrl string, session *Session, log logr.Logger) (RestClient, error) {
	if api, err := url.Parse(apiUrl); err != nil {
		return nil, err
	} else if http, err := NewHTTPClient(session.ProxyUrl()); err != nil {
		return nil, err
	} else {
		client := &restClient{
			api:        *api,
			http:       http,
			session:    session,
			scope:      strings.TrimSuffix(api.String(), "/") + "/.default",
			log:        log,
			maxRetries: 3,
			backoff:    ExponentialBackoff,
		}
		return client, nil
	}
}

type restClient struct {
	api        url.URL
	http       *http.Client
	session    *Session
	scope      string
	log        logr.Logger
	maxRetries int
	backoff    func(retry int)
}

func (s *restClient) Url() url.URL {
	return s.api
}

func (s *restClient) endpoint(path string) *url.URL {
	// next links and resource ids returned by the api are used as-is
	if parsed, err := url.Parse(path); err == nil && parsed.IsAbs() {
		return parsed
	}
	return s.api.ResolveReference(&url.URL{Path: path})
}

func (s *restClient) Get(ctx context.Context, path string, params query.Params, headers map[string]string) (*http.Response, error) {
	endpoint := s.endpoint(path)
	paramsMap := make(map[string]string)

	if params != nil {
		paramsMap = params.AsMap()
		if params.NeedsEventualConsistencyHeaderFlag() {
			if headers == nil {
				headers = make(map[string]string)
			}
			headers["ConsistencyLevel"] = "eventual"
		}
	}

	if req, err := NewRequest(ctx, http.MethodGet, endpoint, nil, paramsMap, headers); err != nil {
		return nil, err
	} else {
		return s.Send(req)
	}
}

func (s *restClient) Patch(ctx context.Context, path string, body interface{}, params query.Params, headers map[string]string) (*http.Response, error) {
	return s.sendWithBody(ctx, http.MethodPatch, path, body, params, headers)
}

func (s *restClient) Post(ctx context.Context, path string, body interface{}, params query.Params, headers map[string]string) (*http.Response, error) {
	return s.sendWithBody(ctx, http.MethodPost, path, body, params, headers)
}

func (s *restClient) Put(ctx context.Context, path string, body interface{}, params query.Params, headers map[string]string) (*http.Response, error) {
	return s.sendWithBody(ctx, http.MethodPut, path, body, params, headers)
}

func (s *restClient) sendWithBody(ctx context.Context, method string, path string, body interface{}, params query.Params, headers map[string]string) (*http.Response, error) {
	endpoint := s.endpoint(path)
	paramsMap := make(map[string]string)
	if params != nil {
		paramsMap = params.AsMap()
	}
	if req, err := NewRequest(ctx, method, endpoint, body, paramsMap, headers); err != nil {
		return nil, err
	} else {
		return s.Send(req)
	}
}

func (s *restClient) Send(req *http.Request) (*http.Response, error) {
	if token, err := s.session.Token(req.Context(), s.scope); err != nil {
		return nil, &TransportError{Method: req.Method, Url: req.URL.String(), Err: fmt.Errorf("unable to acquire access token: %w", err)}
	} else {
		req.Header.Set("Authorization", "Bearer "+token)
		return s.send(req)
	}
}

func (s *restClient) send(req *http.Request) (*http.Response, error) {
	// Writes are sent exactly once; replaying a decision or a policy update could act on state that has since moved on
	attempts := 1
	if req.Method == http.MethodGet {
		attempts = s.maxRetries
	}

	// copy the bytes in case we need to retry the request
	if body, err := CopyBody(req); err != nil {
		return nil, err
	} else {
		var (
			res *http.Response
			err error
		)
		for retry := 0; retry < attempts; retry++ {

			// Reusing http.Request requires rewinding the request body
			// back to a working state
			if body != nil && retry > 0 {
				req.Body = io.NopCloser(bytes.NewBuffer(body))
			}

			s.log.V(2).Info("sending request", "method", req.Method, "url", req.URL.String(), "attempt", retry+1)

			if res, err = s.http.Do(req); err != nil {
				if IsClosedConnectionErr(err) || IsGoAwayErr(err) {
					s.log.V(1).Info("connection closed by remote host; trying again", "url", req.URL.String(), "attempt", retry+1, "maxAttempts", attempts)
					s.backoff(retry)
					continue
				}
				return nil, &TransportError{Method: req.Method, Url: req.URL.String(), Err: err}
			} else if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusBadRequest {
				// See official Retry guidance (https://learn.microsoft.com/en-us/azure/architecture/best-practices/retry-service-specific#retry-usage-guidance)
				transportErr := newStatusError(req, res)
				if retry+1 >= attempts {
					return nil, transportErr
				} else if res.StatusCode == http.StatusTooManyRequests {
					retryAfterHeader := res.Header.Get("Retry-After")
					if retryAfter, err := strconv.ParseInt(retryAfterHeader, 10, 64); err != nil {
						return nil, fmt.Errorf("attempting to handle 429 but unable to parse retry-after header: %w", err)
					} else {
						time.Sleep(time.Second * time.Duration(retryAfter))
						continue
					}
				} else if res.StatusCode >= http.StatusInternalServerError {
					s.backoff(retry)
					continue
				} else {
					return nil, transportErr
				}
			} else {
				return res, nil
			}
		}
		return nil, &TransportError{Method: req.Method, Url: req.URL.String(), Err: fmt.Errorf("unable to complete the request after %d attempts: %w", attempts, err)}
	}
}

func (s *restClient) CloseIdleConnections() {
	s.http.CloseIdleConnections()
}
