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
	"strings"
)

// Config carries everything needed to open a session against Entra ID, Microsoft Graph and Azure Resource Manager
type Config struct {
	ApplicationId string
	Authority     string
	ClientSecret  string
	ClientCert    string
	ClientKey     string
	ClientKeyPass string
	Graph         string
	JWT           string
	Management    string
	Password      string
	ProxyUrl      string
	RefreshToken  string
	Tenant        string
	Username      string
}

func (s Config) AuthorityUrl() string {
	return strings.TrimSuffix(s.Authority, "/")
}

func (s Config) GraphUrl() string {
	return strings.TrimSuffix(s.Graph, "/")
}

func (s Config) ResourceManagerUrl() string {
	return strings.TrimSuffix(s.Management, "/")
}

// TokenUrl is the v2 token endpoint of the configured tenant
func (s Config) TokenUrl() string {
	return fmt.Sprintf("%s/%s/oauth2/v2.0/token", s.AuthorityUrl(), s.Tenant)
}
