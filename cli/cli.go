/*
* GoCsInfo, a directory of TLS cipher suites, RFCs and the cryptographic algorithms they are built from.
*
* Copyright (c) Siemens AG, 2016-2024.
*
* This work is licensed under the terms of the MIT license. For a copy, see the LICENSE file in the top-level
* directory or visit <https://opensource.org/licenses/MIT>.
*
 */

// Package cli implements the csinfo command line. Every command loads the configuration, opens the configured
// store and works on a catalog over it.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/siemens/GoCsInfo/config"
	"github.com/siemens/GoCsInfo/directory"
	"github.com/siemens/GoCsInfo/telemetry"
	"github.com/siemens/GoCsInfo/utils"
)

var version = "v1.0.0"

type rootOptions struct {
	configPath string
	debug      bool
}

// Execute runs the command line and returns the process exit code
func Execute() int {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "csinfo",
		Short:         "Directory of TLS cipher suites and the algorithms they are built from",
		SilenceErrors: false,
		SilenceUsage:  true,
		Version:       version,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to TOML config file (default: built-in defaults)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Log debug messages")

	cmd.AddCommand(
		newDecomposeCmd(opts),
		newImportIanaCmd(opts),
		newImportRfcsCmd(opts),
		newImportVulnsCmd(opts),
		newParseCipherListCmd(opts),
		newRefreshCmd(opts),
		newShowCmd(opts),
		newAssessCmd(opts),
		newServeCmd(opts),
		newExportGraphCmd(opts),
	)

	return cmd
}

// env bundles what commands work with
type env struct {
	conf    *config.Config
	logger  utils.Logger
	catalog *directory.Catalog
	close   func() error
}

// loadConfig reads the configuration. The debug flag overrides the configured value.
func loadConfig(opts *rootOptions) (*config.Config, error) {
	conf, errLoad := config.Load(opts.configPath)
	if errLoad != nil {
		return nil, errLoad
	}
	if opts.debug {
		conf.Debug = true
	}
	return conf, nil
}

// openEnv loads the configuration and opens the catalog. Callers must close the returned env.
func openEnv(cmd *cobra.Command, opts *rootOptions) (*env, error) {
	conf, errConf := loadConfig(opts)
	if errConf != nil {
		return nil, errConf
	}
	logger := utils.NewStdLogger(cmd.ErrOrStderr(), conf.Debug)

	store, closeStore, errOpen := conf.Storage.OpenStore(logger)
	if errOpen != nil {
		return nil, fmt.Errorf("could not open store: %w", errOpen)
	}
	logger.Debugf("Opened '%s' store.", conf.Storage.Backend)

	return &env{
		conf:    conf,
		logger:  logger,
		catalog: directory.NewCatalog(logger, store, telemetry.NewObserver(), conf.Catalog.Workers),
		close:   closeStore,
	}, nil
}

// withEnv runs fn on an opened env and closes it afterwards
func withEnv(cmd *cobra.Command, opts *rootOptions, fn func(ctx context.Context, e *env) error) (err error) {
	e, errOpen := openEnv(cmd, opts)
	if errOpen != nil {
		return errOpen
	}
	defer func() {
		if errClose := e.close(); errClose != nil && err == nil {
			err = errClose
		}
	}()
	return fn(cmd.Context(), e)
}

func writeJson(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
