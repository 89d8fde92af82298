/*
* GoCsInfo, a directory of TLS cipher suites, RFCs and the cryptographic algorithms they are built from.
*
* Copyright (c) Siemens AG, 2016-2024.
*
* This work is licensed under the terms of the MIT license. For a copy, see the LICENSE file in the top-level
* directory or visit <https://opensource.org/licenses/MIT>.
*
 */

// Package feeds reads the external data sources the catalog is built from: the IANA cipher suite registry, RFC
// pages, vulnerability lists and the cipher lists of TLS libraries.
package feeds

import (
	"context"
	"fmt"
	"strings"

	"github.com/siemens/GoCsInfo/utils"
)

const (
	IanaCsvUrl   = "https://www.iana.org/assignments/tls-parameters/tls-parameters-4.csv"
	IanaXhtmlUrl = "https://www.iana.org/assignments/tls-parameters/tls-parameters.xhtml"
)

// Getter downloads a resource. It is satisfied by utils.Requester.
type Getter interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// LineError describes a malformed line of an input file, which got skipped
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d ('%s'): %s", e.Line, e.Text, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// fetch downloads a feed and logs its fingerprint
func fetch(ctx context.Context, logger utils.Logger, getter Getter, url string) ([]byte, error) {
	data, errGet := getter.Get(ctx, url)
	if errGet != nil {
		return nil, fmt.Errorf("could not download '%s': %w", url, errGet)
	}
	logger.Debugf("Downloaded %d bytes from '%s' (SHA-256 %s).", len(data), url, utils.HashSha256(data, ""))
	return data, nil
}

// splitLines splits text content into lines, tolerating Windows line breaks
func splitLines(data []byte) []string {
	return strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
}
