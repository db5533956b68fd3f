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

	"github.com/spf13/cobra"
	"golang.org/x/net/proxy"
	"golang.org/x/term"

	"github.com/pimctl/pimctl/client"
	client_config "github.com/pimctl/pimctl/client/config"
	"github.com/pimctl/pimctl/client/rest"
	"github.com/pimctl/pimctl/config"
	"github.com/pimctl/pimctl/enums"
	"github.com/pimctl/pimctl/logger"
	"github.com/pimctl/pimctl/pipeline"
	"github.com/pimctl/pimctl/sinks"
)

func init() {
	proxy.RegisterDialerType("http", rest.NewProxyDialer)
	proxy.RegisterDialerType("https", rest.NewProxyDialer)
}

func exit(err error) {
	log.Error(err, "encountered unrecoverable error")
	os.Exit(1)
}

func persistentPreRunE(cmd *cobra.Command, args []string) error {
	// need to set config flag value explicitly
	if cmd != nil {
		if configFlag := cmd.Flag(config.ConfigFile.Name); configFlag != nil && configFlag.Value.String() != "" {
			config.ConfigFile.Set(configFlag.Value.String())
		}
	}

	if err := config.LoadValues(cmd, config.Options()); err != nil {
		return err
	}
	config.SetAzureDefaults()

	if logr, err := logger.GetLogger(); err != nil {
		return err
	} else {
		log = *logr

		if config.ConfigFileUsed() != "" {
			log.V(1).Info(fmt.Sprintf("Config File: %v", config.ConfigFileUsed()))
		}

		if config.LogFile.String() != "" {
			log.V(1).Info(fmt.Sprintf("Log File: %v", config.LogFile.String()))
		}

		return nil
	}
}

func gracefulShutdown(stop context.CancelFunc) {
	stop()
	fmt.Fprintln(os.Stderr, "\nshutting down gracefully, press ctrl+c again to force")
}

func testConnections() error {
	proxyUrl := config.Proxy.String()
	for _, endpoint := range []string{config.AzAuthUrl.String(), config.AzGraphUrl.String(), config.AzMgmtUrl.String()} {
		if _, err := rest.Dial(log, proxyUrl, endpoint); err != nil {
			return fmt.Errorf("unable to connect to %s: %w", endpoint, err)
		}
	}
	return nil
}

func readOptionalFile(path string, description string) (string, error) {
	if path == "" {
		return "", nil
	} else if content, err := os.ReadFile(path); err != nil {
		return "", fmt.Errorf("unable to read provided %s: %w", description, err)
	} else {
		return string(content), nil
	}
}

func newClientConfig() (client_config.Config, error) {
	if clientCert, err := readOptionalFile(config.AzCert.String(), "certificate"); err != nil {
		return client_config.Config{}, err
	} else if clientKey, err := readOptionalFile(config.AzKey.String(), "key file"); err != nil {
		return client_config.Config{}, err
	} else {
		return client_config.Config{
			ApplicationId: config.AzAppId.String(),
			Authority:     config.AzAuthUrl.String(),
			ClientSecret:  config.AzSecret.String(),
			ClientCert:    clientCert,
			ClientKey:     clientKey,
			ClientKeyPass: config.AzKeyPass.String(),
			Graph:         config.AzGraphUrl.String(),
			JWT:           config.JWT.String(),
			Management:    config.AzMgmtUrl.String(),
			Password:      config.AzPassword.String(),
			ProxyUrl:      config.Proxy.String(),
			RefreshToken:  config.RefreshToken.String(),
			Tenant:        config.AzTenant.String(),
			Username:      config.AzUsername.String(),
		}, nil
	}
}

func newAzureClient() (client.AzureClient, error) {
	if clientConfig, err := newClientConfig(); err != nil {
		return nil, err
	} else if session, err := rest.NewSession(clientConfig, log); err != nil {
		return nil, fmt.Errorf("unable to create session: %w", err)
	} else {
		return client.NewClient(session, clientConfig, log)
	}
}

func connectAndCreateClient() client.AzureClient {
	log.V(1).Info("testing connections")
	if err := testConnections(); err != nil {
		exit(fmt.Errorf("failed to test connections: %w", err))
	} else if azClient, err := newAzureClient(); err != nil {
		exit(fmt.Errorf("failed to create new Azure client: %w", err))
	} else {
		return azClient
	}

	panic("unexpectedly failed to create azClient without error")
}

func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

type azureWrapper[T any] struct {
	Kind enums.Kind `json:"kind"`
	Data T          `json:"data"`
}

func NewAzureWrapper[T any](kind enums.Kind, data T) azureWrapper[T] {
	return azureWrapper[T]{
		Kind: kind,
		Data: data,
	}
}

func outputStream[T any](ctx context.Context, stream <-chan T) {
	formatted := pipeline.FormatJson(ctx.Done(), stream)
	if path := config.OutputFile.String(); path != "" {
		if err := sinks.WriteToFile(ctx, path, formatted); err != nil {
			exit(fmt.Errorf("failed to write stream to file: %w", err))
		}
	} else if err := sinks.WriteToConsole(ctx, formatted); err != nil {
		exit(fmt.Errorf("failed to write stream to console: %w", err))
	}
}
