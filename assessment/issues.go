/*
* GoCsInfo, a directory of TLS cipher suites, RFCs and the cryptographic algorithms they are built from.
*
* Copyright (c) Siemens AG, 2016-2024.
*
* This work is licensed under the terms of the MIT license. For a copy, see the LICENSE file in the top-level
* directory or visit <https://opensource.org/licenses/MIT>.
*
 */

package assessment

import (
	"strings"

	"github.com/siemens/GoCsInfo/directory"
)

// Issues of a TLS endpoint, derived from the accepted cipher suites and protocol versions
type Issues struct {
	NoPerfectForwardSecrecy bool `json:"no_pfs"`
	ExportSuite             bool `json:"export_suite"`
	Sslv2Enabled            bool `json:"sslv2_enabled"`
	Sslv3Enabled            bool `json:"sslv3_enabled"`
	Rc4Enabled              bool `json:"rc4_enabled"`
	Md5Enabled              bool `json:"md5_enabled"`
	Sha1Enabled             bool `json:"sha1_enabled"`
	Poodle                  bool `json:"poodle"`
	Beast                   bool `json:"beast"`
	Lucky13                 bool `json:"lucky13"`
	Sweet32                 bool `json:"sweet32"`
	Drown                   bool `json:"drown"`
}

// addIssues flags the issues introduced by accepting a cipher suite with the given protocol version
func addIssues(issues *Issues, cs *directory.CipherSuite, version directory.TlsVersion) {

	d := directory.Decompose(cs.Name, cs.HexByte1, cs.HexByte2)
	cbc := strings.Contains(cs.Encryption, "CBC")

	if !d.Pfs {
		issues.NoPerfectForwardSecrecy = true
	}
	if d.Export {
		issues.ExportSuite = true
	}
	if strings.HasPrefix(cs.Encryption, "RC4") {
		issues.Rc4Enabled = true
	}
	if cs.Hash == "MD5" {
		issues.Md5Enabled = true
	}
	if cs.Hash == "SHA" {
		issues.Sha1Enabled = true
	}

	switch version {
	case directory.Sslv2:
		issues.Sslv2Enabled = true

		// Export RSA on SSLv2 allows decrypting other connections using the same key
		if d.Export && cs.KeyExchange == "RSA" {
			issues.Drown = true
		}
	case directory.Sslv3:
		issues.Sslv3Enabled = true

		// Affects all block ciphers in SSLv3
		if cbc {
			issues.Poodle = true
		}
	}

	// BEAST targets CBC in SSLv3 and TLS 1.0, Lucky13 every CBC implementation up to TLS 1.2
	if cbc && (version == directory.Sslv3 || version == directory.Tlsv1_0) {
		issues.Beast = true
	}
	if cbc && version >= directory.Sslv3 && version <= directory.Tlsv1_2 {
		issues.Lucky13 = true
	}

	// 64 bit block size is prone to birthday attacks
	if strings.Contains(cs.Encryption, "3DES") && cbc {
		issues.Sweet32 = true
	}
}
