/*
* GoCsInfo, a directory of TLS cipher suites, RFCs and the cryptographic algorithms they are built from.
*
* Copyright (c) Siemens AG, 2016-2024.
*
* This work is licensed under the terms of the MIT license. For a copy, see the LICENSE file in the top-level
* directory or visit <https://opensource.org/licenses/MIT>.
*
 */

package directory

import (
	"fmt"
	"strings"
)

// Software library whose cipher suite names are tracked besides the IANA name
type Software string

const (
	SoftwareOpenssl Software = "openssl"
	SoftwareGnutls  Software = "gnutls"
)

func ParseSoftware(s string) (Software, error) {
	switch Software(strings.ToLower(strings.TrimSpace(s))) {
	case SoftwareOpenssl:
		return SoftwareOpenssl, nil
	case SoftwareGnutls:
		return SoftwareGnutls, nil
	default:
		return "", fmt.Errorf("invalid software '%s'", s)
	}
}

// LibraryCipher is a cipher suite as listed by a software library
type LibraryCipher struct {
	Name          string
	HexByte1      string
	HexByte2      string
	MinTlsVersion string // Lowest protocol version as labeled by the catalog, e.g. TLS1.2 or SSL3
}

// CodePoint returns the normalized code point, e.g. "0xC0,0x2F"
func (l LibraryCipher) CodePoint() string {
	return NormalizeHex(l.HexByte1) + "," + NormalizeHex(l.HexByte2)
}
