/*
 *    Copyright 2025 blockarchitech
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *        http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

package main

import (
	"context"
	"fmt"

	remindernodes "blockarchitech.com/remindernodes/internal"
	"blockarchitech.com/remindernodes/internal/config"
	"blockarchitech.com/remindernodes/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagBaseURL  string
	flagToken    string
	flagInsecure bool
	flagLogLevel string
	verbose      bool
)

// shared per-invocation state (set in PersistentPreRunE)
var (
	cfg *config.Config
	log *zap.Logger
	app *remindernodes.App
)

var rootCmd = &cobra.Command{
	Use:           "remindernodes",
	Short:         "Apple Reminders workflow nodes over HTTP, MCP and the command line",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}

		var err error
		cfg, err = config.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		applyFlags(cmd, cfg)
		if cfg.Version == "dev" {
			cfg.Version = version
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		// Only serve logs to stdout; the other commands print results there.
		output := "stderr"
		if cmd.Name() == "serve" {
			output = "stdout"
		}
		log = logger.New(logger.Config{Level: cfg.LogLevel, Encoding: cfg.LogEncoding, Output: output})

		app, err = remindernodes.NewApp(cmd.Context(), cfg, log)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if app != nil {
			app.Close(context.Background())
		}
		if log != nil {
			_ = log.Sync()
		}
	},
}

// applyFlags lets explicitly set flags override the environment.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.Credentials.BaseURL = flagBaseURL
	}
	if flags.Changed("token") {
		cfg.Credentials.APIToken = flagToken
	}
	if flags.Changed("insecure") {
		cfg.Credentials.AllowUnauthorizedCerts = flagInsecure
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagBaseURL, "base-url", "", "Reminders API base URL (REMINDERS_BASE_URL)")
	pf.StringVar(&flagToken, "token", "", "Reminders API bearer token (REMINDERS_API_TOKEN)")
	pf.BoolVar(&flagInsecure, "insecure", false, "Accept self-signed TLS certificates")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level (LOG_LEVEL)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Debug logging")

	rootCmd.AddCommand(
		serveCmd,
		mcpCmd,
		execCmd,
		listsCmd,
		versionCmd,
	)
}
