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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pimctl/pimctl/constants"
)

const EnvPrefix = "PIMCTL"

// Config describes one option that may be set by flag, environment variable or config file, in that precedence
type Config struct {
	Name       string
	Shorthand  string
	Usage      string
	Required   bool
	Persistent bool
	Default    interface{}
}

func (s Config) Value() interface{} {
	return viper.Get(s.Name)
}

func (s Config) Set(value interface{}) {
	viper.Set(s.Name, value)
}

func (s Config) String() string {
	return viper.GetString(s.Name)
}

func (s Config) Bool() bool {
	return viper.GetBool(s.Name)
}

func (s Config) Int() int {
	return viper.GetInt(s.Name)
}

// Env is the environment variable that sets this option
func (s Config) Env() string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(s.Name, "-", "_"))
}

// Init registers the options as flags of cmd and binds them to viper
func Init(cmd *cobra.Command, configs []Config) {
	for _, config := range configs {
		var flags *pflag.FlagSet
		if config.Persistent {
			flags = cmd.PersistentFlags()
		} else {
			flags = cmd.Flags()
		}

		usage := fmt.Sprintf("%s [env: %s]", config.Usage, config.Env())
		switch value := config.Default.(type) {
		case bool:
			flags.BoolP(config.Name, config.Shorthand, value, usage)
		case int:
			flags.IntP(config.Name, config.Shorthand, value, usage)
		case []string:
			flags.StringSliceP(config.Name, config.Shorthand, value, usage)
		case string:
			flags.StringP(config.Name, config.Shorthand, value, usage)
		default:
			panic(fmt.Sprintf("unsupported default %T for option %s", value, config.Name))
		}

		viper.BindPFlag(config.Name, flags.Lookup(config.Name))
		viper.BindEnv(config.Name, config.Env())
		viper.SetDefault(config.Name, config.Default)
	}
}

// LoadValues reads the config file, if any, and reports options that are required but unset
func LoadValues(cmd *cobra.Command, configs []Config) error {
	if file := ConfigFile.String(); file != "" {
		viper.SetConfigFile(file)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(DefaultConfigDir())
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("unable to read config file: %w", err)
		}
	}

	var missing []string
	for _, config := range configs {
		if config.Required && viper.GetString(config.Name) == "" {
			missing = append(missing, "--"+config.Name)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("required options are not set: %s", strings.Join(missing, ", "))
	}

	return nil
}

func ConfigFileUsed() string {
	return viper.ConfigFileUsed()
}

func DefaultConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, constants.Name)
	}
	return "."
}

// SetAzureDefaults fills endpoint options left blank with the public cloud endpoints
func SetAzureDefaults() {
	if AzAuthUrl.String() == "" {
		AzAuthUrl.Set(constants.AzAuthUrl)
	}
	if AzGraphUrl.String() == "" {
		AzGraphUrl.Set(constants.AzGraphUrl)
	}
	if AzMgmtUrl.String() == "" {
		AzMgmtUrl.Set(constants.AzMgmtUrl)
	}
}
