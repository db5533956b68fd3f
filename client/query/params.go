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

package query

import (
	"fmt"
	"strings"
)

type Params interface {
	AsMap() map[string]string
	NeedsEventualConsistencyHeaderFlag() bool
}

// GraphParams are the OData query options understood by Microsoft Graph
type GraphParams struct {
	Count   bool
	Expand  string
	Filter  string
	OrderBy string
	Search  string
	Select  []string
	Top     int32
}

func (s GraphParams) AsMap() map[string]string {
	params := map[string]string{}

	if s.Count {
		params["$count"] = "true"
	}

	if s.Expand != "" {
		params["$expand"] = s.Expand
	}

	if s.Filter != "" {
		params["$filter"] = s.Filter
	}

	if s.OrderBy != "" {
		params["$orderby"] = s.OrderBy
	}

	if s.Search != "" {
		params["$search"] = s.Search
	}

	if len(s.Select) > 0 {
		params["$select"] = strings.Join(s.Select, ",")
	}

	if s.Top > 0 {
		params["$top"] = fmt.Sprint(s.Top)
	}

	return params
}

// Graph requires the eventual consistency header for $count and $search
func (s GraphParams) NeedsEventualConsistencyHeaderFlag() bool {
	return s.Count || s.Search != ""
}

// RMParams are the query options understood by Azure Resource Manager
type RMParams struct {
	ApiVersion string
	Expand     string
	Filter     string
	Top        int32
}

func (s RMParams) AsMap() map[string]string {
	params := map[string]string{}

	if s.ApiVersion != "" {
		params["api-version"] = s.ApiVersion
	}

	if s.Expand != "" {
		params["$expand"] = s.Expand
	}

	if s.Filter != "" {
		params["$filter"] = s.Filter
	}

	if s.Top > 0 {
		params["$top"] = fmt.Sprint(s.Top)
	}

	return params
}

func (s RMParams) NeedsEventualConsistencyHeaderFlag() bool {
	return false
}

// Quote escapes a value for use inside a single-quoted OData literal
func Quote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}
