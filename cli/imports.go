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

	"github.com/spf13/cobra"

	"github.com/siemens/GoCsInfo/directory"
	"github.com/siemens/GoCsInfo/feeds"
	"github.com/siemens/GoCsInfo/utils"
)

// readOrFetch reads a local file, or downloads the url if no file is given
func readOrFetch(ctx context.Context, e *env, path string, url string) ([]directory.Entry, error) {
	if path != "" {
		data, errRead := utils.ReadInputFile(path)
		if errRead != nil {
			return nil, errRead
		}
		return feeds.ParseRegistry(data)
	}
	requester, errRequester := e.conf.Feeds.Requester()
	if errRequester != nil {
		return nil, errRequester
	}
	return feeds.FetchRegistry(ctx, e.logger, requester, url)
}

// logProblems reports skipped lines of an input file
func logProblems(logger utils.Logger, path string, problems []error) {
	for _, problem := range problems {
		logger.Warningf("Skipped input of '%s': %s", path, problem)
	}
}

func newImportIanaCmd(root *rootOptions) *cobra.Command {
	var file string
	var url string

	cmd := &cobra.Command{
		Use:   "import-iana",
		Short: "Register the cipher suites of the IANA TLS parameters registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, root, func(ctx context.Context, e *env) error {
				if url == "" {
					url = e.conf.Feeds.IanaUrl
				}
				entries, errEntries := readOrFetch(ctx, e, file, url)
				if errEntries != nil {
					return errEntries
				}
				res := e.catalog.RegisterBatch(ctx, entries)
				_, _ = fmt.Fprintf(
					cmd.OutOrStdout(),
					"Registered %d cipher suites, %d already existing, %d failed (%s).\n",
					res.Registered, res.Skipped, res.Failed, res.Status,
				)
				if res.Status == utils.StatusFailed {
					return fmt.Errorf("registration failed")
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Local copy of the registry (CSV or XHTML) instead of downloading it")
	cmd.Flags().StringVar(&url, "url", "", "Registry url (default: from config)")
	return cmd
}

func newImportRfcsCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-rfcs",
		Short: "Download title, status and year of RFCs referenced by cipher suites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, root, func(ctx context.Context, e *env) error {
				requester, errRequester := e.conf.Feeds.Requester()
				if errRequester != nil {
					return errRequester
				}
				completed, failed, errComplete := feeds.CompleteRfcs(ctx, e.logger, requester, e.catalog.Store())
				if errComplete != nil {
					return errComplete
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Completed %d RFCs, %d failed.\n", completed, failed)
				return nil
			})
		},
	}
	return cmd
}

func newImportVulnsCmd(root *rootOptions) *cobra.Command {
	var linksFile string
	var noDefaultLinks bool

	cmd := &cobra.Command{
		Use:   "import-vulns <vulnerabilities file>",
		Short: "Import vulnerabilities and link them to algorithms",
		Long: "Import vulnerabilities from a file with lines 'name;severity;description'. Links are read from " +
			"a file with lines 'category;short name;vulnerability', in addition to the built-in links.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, root, func(ctx context.Context, e *env) error {
				data, errRead := utils.ReadInputFile(args[0])
				if errRead != nil {
					return errRead
				}
				vulns, problems := feeds.ParseVulnerabilities(data)
				logProblems(e.logger, args[0], problems)

				links := make([]feeds.Link, 0)
				if !noDefaultLinks {
					links = append(links, feeds.DefaultLinks()...)
				}
				if linksFile != "" {
					linkData, errLinks := utils.ReadInputFile(linksFile)
					if errLinks != nil {
						return errLinks
					}
					parsed, linkProblems := feeds.ParseLinks(linkData)
					logProblems(e.logger, linksFile, linkProblems)
					links = append(links, parsed...)
				}

				res, errImport := feeds.ImportVulnerabilities(ctx, e.logger, e.catalog, vulns, links)
				if errImport != nil {
					return errImport
				}
				_, _ = fmt.Fprintf(
					cmd.OutOrStdout(),
					"Saved %d vulnerabilities, linked %d, skipped %d links, invalidated %d ratings.\n",
					res.Saved, res.Linked, res.Skipped, res.Invalidated,
				)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&linksFile, "links", "", "File with additional algorithm links")
	cmd.Flags().BoolVar(&noDefaultLinks, "no-default-links", false, "Do not apply the built-in links")
	return cmd
}

func newParseCipherListCmd(root *rootOptions) *cobra.Command {
	var softwareName string

	cmd := &cobra.Command{
		Use:   "parse-cipherlist <file>",
		Short: "Add library names from 'openssl ciphers -V' or 'gnutls-cli -l' output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			software, errSoftware := directory.ParseSoftware(softwareName)
			if errSoftware != nil {
				return errSoftware
			}
			return withEnv(cmd, root, func(ctx context.Context, e *env) error {
				data, errRead := utils.ReadInputFile(args[0])
				if errRead != nil {
					return errRead
				}
				ciphers, problems := feeds.ParseCipherList(software, data)
				logProblems(e.logger, args[0], problems)

				updated, errApply := e.catalog.ApplyLibraryNames(ctx, software, ciphers)
				if errApply != nil {
					return errApply
				}
				_, _ = fmt.Fprintf(
					cmd.OutOrStdout(), "Parsed %d %s ciphers, updated %d cipher suites.\n", len(ciphers), software, updated,
				)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&softwareName, "software", string(directory.SoftwareOpenssl), "Library the list was produced by, openssl or gnutls")
	return cmd
}
