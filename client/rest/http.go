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

package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pimctl/pimctl/constants"
)

func NewHTTPClient(proxyUrl string) (*http.Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxConnsPerHost = 20
	transport.MaxIdleConnsPerHost = 20
	transport.IdleConnTimeout = 90 * time.Second

	if proxyUrl != "" {
		if url, err := url.Parse(proxyUrl); err != nil {
			return nil, fmt.Errorf("invalid proxy url: %w", err)
		} else {
			transport.Proxy = http.ProxyURL(url)
		}
	}

	return &http.Client{Transport: transport}, nil
}

func NewRequest(
	ctx context.Context,
	verb string,
	endpoint *url.URL,
	body interface{},
	params map[string]string,
	headers map[string]string,
) (*http.Request, error) {
	// set query params
	if len(params) > 0 {
		q := endpoint.Query()
		for key, value := range params {
			q.Set(key, value)
		}
		endpoint.RawQuery = q.Encode()
	}

	// set body
	var reader io.Reader
	if body != nil {
		if buf, err := json.Marshal(body); err != nil {
			return nil, err
		} else {
			reader = bytes.NewReader(buf)
		}
	}

	if req, err := http.NewRequestWithContext(ctx, verb, endpoint.String(), reader); err != nil {
		return nil, err
	} else {
		req.Header.Set("User-Agent", constants.UserAgent())
		req.Header.Set("Accept", "application/json")

		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		for key, value := range headers {
			req.Header.Set(key, value)
		}

		return req, nil
	}
}
