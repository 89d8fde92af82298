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
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/siemens/GoCsInfo/directory"
)

// decomposition is the printable form of a decomposed cipher suite name
type decomposition struct {
	Name           string                 `json:"name"`
	Family         directory.Family       `json:"family"`
	Protocol       string                 `json:"protocol"`
	KeyExchange    string                 `json:"kex"`
	Authentication string                 `json:"auth"`
	Encryption     string                 `json:"enc"`
	Hash           string                 `json:"hash"`
	Aead           bool                   `json:"aead"`
	Pfs            bool                   `json:"pfs"`
	Export         bool                   `json:"export"`
	TlsVersions    []directory.TlsVersion `json:"tls_versions"`
}

func newDecomposeCmd(_ *rootOptions) *cobra.Command {
	var asJson bool

	cmd := &cobra.Command{
		Use:   "decompose <iana name> <hex byte 1> <hex byte 2>",
		Short: "Split a cipher suite name into its algorithms without touching the store",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			hex1, hex2 := directory.NormalizeHex(args[1]), directory.NormalizeHex(args[2])
			d := directory.Decompose(name, hex1, hex2)
			out := decomposition{
				Name:           name,
				Family:         d.Family,
				Protocol:       d.Protocol,
				KeyExchange:    d.KeyExchange,
				Authentication: d.Authentication,
				Encryption:     d.Encryption,
				Hash:           d.Hash,
				Aead:           d.Aead,
				Pfs:            d.Pfs,
				Export:         d.Export,
				TlsVersions:    directory.DeriveTlsVersions(name, d),
			}
			if asJson {
				return writeJson(cmd.OutOrStdout(), out)
			}
			printDecomposition(cmd, out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJson, "json", false, "Print as JSON")
	return cmd
}

func printDecomposition(cmd *cobra.Command, d decomposition) {
	versions := make([]string, 0, len(d.TlsVersions))
	for _, v := range d.TlsVersions {
		versions = append(versions, v.String())
	}
	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "Name:           %s\n", d.Name)
	_, _ = fmt.Fprintf(w, "Grammar:        %s\n", d.Family)
	_, _ = fmt.Fprintf(w, "Protocol:       %s\n", d.Protocol)
	_, _ = fmt.Fprintf(w, "Key exchange:   %s\n", d.KeyExchange)
	_, _ = fmt.Fprintf(w, "Authentication: %s\n", d.Authentication)
	_, _ = fmt.Fprintf(w, "Encryption:     %s\n", d.Encryption)
	_, _ = fmt.Fprintf(w, "Hash:           %s\n", d.Hash)
	_, _ = fmt.Fprintf(w, "AEAD:           %t\n", d.Aead)
	_, _ = fmt.Fprintf(w, "PFS:            %t\n", d.Pfs)
	_, _ = fmt.Fprintf(w, "TLS versions:   %s\n", strings.Join(versions, ", "))
}
