/*
* GoCsInfo, a directory of TLS cipher suites, RFCs and the cryptographic algorithms they are built from.
*
* Copyright (c) Siemens AG, 2016-2024.
*
* This work is licensed under the terms of the MIT license. For a copy, see the LICENSE file in the top-level
* directory or visit <https://opensource.org/licenses/MIT>.
*
 */

package feeds

import (
	"fmt"
	"strings"

	"github.com/siemens/GoCsInfo/directory"
)

// opensslVersionLabels maps the protocol column of 'openssl ciphers -V' to catalog labels
var opensslVersionLabels = map[string]string{
	"TLSv1.3": "TLS1.3",
	"TLSv1.2": "TLS1.2",
	"TLSv1.1": "TLS1.1",
	"TLSv1":   "TLS1.0",
	"SSLv3":   "SSL3",
}

// ParseCipherList parses the cipher listing of the given TLS library
func ParseCipherList(software directory.Software, data []byte) ([]directory.LibraryCipher, []error) {
	switch software {
	case directory.SoftwareOpenssl:
		return ParseOpensslCiphers(data)
	case directory.SoftwareGnutls:
		return ParseGnutlsCiphers(data)
	default:
		return nil, []error{fmt.Errorf("invalid software '%s'", software)}
	}
}

// ParseOpensslCiphers parses the output of 'openssl ciphers -V', e.g.
// "0xC0,0x2F - ECDHE-RSA-AES128-GCM-SHA256 TLSv1.2 Kx=ECDH Au=RSA Enc=AESGCM(128) Mac=AEAD"
func ParseOpensslCiphers(data []byte) ([]directory.LibraryCipher, []error) {
	ciphers := make([]directory.LibraryCipher, 0)
	problems := make([]error, 0)
	for i, line := range splitLines(data) {
		items := strings.Fields(line)
		if len(items) == 0 {
			continue
		}
		if len(items) < 4 {
			problems = append(problems, &LineError{Line: i + 1, Text: line, Err: fmt.Errorf("expected at least 4 columns")})
			continue
		}
		hex := strings.Split(items[0], ",")
		if len(hex) != 2 {
			problems = append(problems, &LineError{Line: i + 1, Text: line, Err: fmt.Errorf("invalid code point")})
			continue
		}
		version, ok := opensslVersionLabels[items[3]]
		if !ok {
			problems = append(problems, &LineError{Line: i + 1, Text: line, Err: fmt.Errorf("unknown protocol '%s'", items[3])})
			continue
		}
		ciphers = append(ciphers, directory.LibraryCipher{
			Name:          items[2],
			HexByte1:      directory.NormalizeHex(hex[0]),
			HexByte2:      directory.NormalizeHex(hex[1]),
			MinTlsVersion: version,
		})
	}
	return ciphers, problems
}

// ParseGnutlsCiphers parses the cipher suite section of 'gnutls-cli -l', e.g.
// "TLS_ECDHE_RSA_AES_128_GCM_SHA256 0xc0, 0x2f TLS1.2". Lines not starting with "TLS" are ignored.
func ParseGnutlsCiphers(data []byte) ([]directory.LibraryCipher, []error) {
	ciphers := make([]directory.LibraryCipher, 0)
	problems := make([]error, 0)
	for i, line := range splitLines(data) {
		if !strings.HasPrefix(line, "TLS") {
			continue
		}
		items := strings.Fields(line)
		if len(items) < 4 {
			problems = append(problems, &LineError{Line: i + 1, Text: line, Err: fmt.Errorf("expected 4 columns")})
			continue
		}
		ciphers = append(ciphers, directory.LibraryCipher{
			Name:          items[0],
			HexByte1:      directory.NormalizeHex(strings.TrimSuffix(items[1], ",")),
			HexByte2:      directory.NormalizeHex(items[2]),
			MinTlsVersion: items[3],
		})
	}
	return ciphers, problems
}
