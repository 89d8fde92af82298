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
)

// suiteDetails is a cipher suite together with its rating explanation and linked vulnerabilities
type suiteDetails struct {
	*directory.CipherSuite
	Reason          string                     `json:"reason"`
	Vulnerabilities []*directory.Vulnerability `json:"vulnerabilities"`
}

func newRefreshCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Recompute the security tier of all cipher suites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, root, func(ctx context.Context, e *env) error {
				res, errRefresh := e.catalog.RefreshRatings(ctx)
				if errRefresh != nil {
					return errRefresh
				}
				w := cmd.OutOrStdout()
				for _, tier := range directory.Tiers() {
					_, _ = fmt.Fprintf(w, "%-12s %d\n", tier, res.Counts[tier])
				}
				_, _ = fmt.Fprintf(w, "Updated %d ratings in %s.\n", res.Updated, res.Duration)
				return nil
			})
		},
	}
	return cmd
}

func newShowCmd(root *rootOptions) *cobra.Command {
	var tierName string
	var versionName string
	var softwareName string
	var search string

	cmd := &cobra.Command{
		Use:   "show [iana name]",
		Short: "Show a cipher suite, or list the cipher suites matching the filter flags",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, errFilter := buildFilter(tierName, versionName, softwareName, search)
			if errFilter != nil {
				return errFilter
			}
			return withEnv(cmd, root, func(ctx context.Context, e *env) error {
				if len(args) == 1 {
					return showSuite(ctx, cmd, e, args[0])
				}
				suites, errSuites := e.catalog.Suites(ctx, f)
				if errSuites != nil {
					return errSuites
				}
				for _, cs := range suites {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s %s\n", cs.Tier, cs.CodePoint(), cs.Name)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&tierName, "security", "", "Only cipher suites of this tier, e.g. weak")
	cmd.Flags().StringVar(&versionName, "tls", "", "Only cipher suites negotiable with this version, e.g. TLSv1.3")
	cmd.Flags().StringVar(&softwareName, "software", "", "Only cipher suites known to this library, openssl or gnutls")
	cmd.Flags().StringVar(&search, "search", "", "Free text search over names, algorithms and vulnerabilities")
	return cmd
}

func buildFilter(tierName string, versionName string, softwareName string, search string) (directory.Filter, error) {
	f := directory.Filter{Search: search}
	if tierName != "" {
		tier, errTier := directory.ParseTier(tierName)
		if errTier != nil {
			return f, errTier
		}
		f.Tiers = []directory.Tier{tier}
	}
	if versionName != "" {
		version, errVersion := directory.ParseTlsVersion(versionName)
		if errVersion != nil {
			return f, errVersion
		}
		f.TlsVersion = version
	}
	if softwareName != "" {
		software, errSoftware := directory.ParseSoftware(softwareName)
		if errSoftware != nil {
			return f, errSoftware
		}
		f.Software = software
	}
	return f, nil
}

func showSuite(ctx context.Context, cmd *cobra.Command, e *env, name string) error {
	_, reason, errRate := e.catalog.Rate(ctx, name)
	if errRate != nil {
		return errRate
	}
	cs, errGet := e.catalog.Store().GetCipherSuite(ctx, name)
	if errGet != nil {
		return errGet
	}
	vulnerabilities, errVulns := e.catalog.SuiteVulnerabilities(ctx, name)
	if errVulns != nil {
		return errVulns
	}
	return writeJson(cmd.OutOrStdout(), suiteDetails{
		CipherSuite:     cs,
		Reason:          reason,
		Vulnerabilities: vulnerabilities,
	})
}
