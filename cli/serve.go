/*
* GoCsInfo, a directory of TLS cipher suites, RFCs and the cryptographic algorithms they are built from.
*
* Copyright (c) Siemens AG, 2016-2024.
*
* This work is licensed under the terms of the MIT license. For a copy, see the LICENSE file in the top-level
* directory or visit <https://opensource.org/licenses/MIT>.
*
 */

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/siemens/GoCsInfo/api"
	"github.com/siemens/GoCsInfo/storage/graph"
	"github.com/siemens/GoCsInfo/utils"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var listen string
	var registryFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API and Prometheus metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			cmd.SetContext(ctx)

			return withEnv(cmd, root, func(ctx context.Context, e *env) error {

				// The memory backend starts empty, it can be seeded from a local registry copy
				if registryFile != "" {
					entries, errEntries := readOrFetch(ctx, e, registryFile, "")
					if errEntries != nil {
						return errEntries
					}
					if res := e.catalog.RegisterBatch(ctx, entries); res.Status == utils.StatusFailed {
						return fmt.Errorf("could not seed catalog from '%s'", registryFile)
					}
					if _, errRefresh := e.catalog.RefreshRatings(ctx); errRefresh != nil {
						return errRefresh
					}
				}

				server, errServer := api.NewServer(e.logger, e.catalog, e.conf.Api.Timeout.Duration)
				if errServer != nil {
					return errServer
				}
				if listen == "" {
					listen = e.conf.Api.Listen
				}
				return server.ListenAndServe(ctx, listen)
			})
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "Listen address (default: from config)")
	cmd.Flags().StringVar(&registryFile, "registry", "", "Register the cipher suites of a local registry copy before serving")
	return cmd
}

func newExportGraphCmd(root *rootOptions) *cobra.Command {
	var affected string

	cmd := &cobra.Command{
		Use:   "export-graph",
		Short: "Mirror the catalog into neo4j",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, root, func(ctx context.Context, e *env) (err error) {
				conf := e.conf.Neo4j
				if conf.Uri == "" {
					return fmt.Errorf("neo4j uri not configured")
				}
				exporter, errExporter := graph.NewExporter(ctx, e.logger, conf.Uri, conf.User, conf.Password, conf.Database)
				if errExporter != nil {
					return errExporter
				}
				defer func() {
					if errClose := exporter.Close(ctx); errClose != nil && err == nil {
						err = errClose
					}
				}()

				res, errExport := exporter.Export(ctx, e.catalog.Store())
				if errExport != nil {
					return errExport
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "Exported %d cipher suites, %d algorithms, %d vulnerabilities.\n",
					res.CipherSuites, res.Algorithms, res.Vulnerabilities)

				if affected != "" {
					names, errAffected := exporter.AffectedSuites(ctx, affected)
					if errAffected != nil {
						return errAffected
					}
					for _, name := range names {
						_, _ = fmt.Fprintln(w, name)
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&affected, "affected", "", "List the cipher suites affected by this vulnerability after exporting")
	return cmd
}
