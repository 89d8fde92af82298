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

// Security tier of a cipher suite. The zero value marks a rating that was never computed or got invalidated.
type Tier uint8

const (
	TierUnrated     Tier = iota // Unrated
	TierRecommended             // Recommended
	TierSecure                  // Secure
	TierWeak                    // Weak
	TierInsecure                // Insecure
)

func IsValidTier(t Tier) bool {
	return t <= TierInsecure
}

// Tiers returns the rated tiers from best to worst
func Tiers() []Tier {
	return []Tier{TierRecommended, TierSecure, TierWeak, TierInsecure}
}

func ParseTier(s string) (Tier, error) {
	for _, t := range append(Tiers(), TierUnrated) {
		if strings.EqualFold(strings.TrimSpace(s), t.String()) {
			return t, nil
		}
	}
	return TierUnrated, fmt.Errorf("invalid security tier '%s'", s)
}

func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

type TlsVersion uint8

const (
	TlsUnknown TlsVersion = iota //
	Sslv2                        // SSLv2
	Sslv3                        // SSLv3
	Tlsv1_0                      // TLSv1.0
	Tlsv1_1                      // TLSv1.1
	Tlsv1_2                      // TLSv1.2
	Tlsv1_3                      // TLSv1.3
)

func IsValidTlsVersion(v TlsVersion) bool {
	return v > 0 && v <= Tlsv1_3
}

// ParseTlsVersion accepts "TLSv1.2", "TLS1.2", "tls12" and the bare major/minor short form "12". SSL versions are
// accepted as "SSLv3", "SSL3" or "SSLv2".
func ParseTlsVersion(s string) (TlsVersion, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("v", "", ".", "", "_", "", " ", "").Replace(norm)
	switch norm {
	case "ssl2", "02":
		return Sslv2, nil
	case "ssl3", "03":
		return Sslv3, nil
	case "tls10", "10":
		return Tlsv1_0, nil
	case "tls11", "11":
		return Tlsv1_1, nil
	case "tls12", "12":
		return Tlsv1_2, nil
	case "tls13", "13":
		return Tlsv1_3, nil
	default:
		return TlsUnknown, fmt.Errorf("invalid TLS version '%s'", s)
	}
}

func (v TlsVersion) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// CipherSuite as stored in the catalog. The name and the code point (HexByte1, HexByte2) are unique, code point
// octets are normalized like 0xC0. The five algorithm fields hold the short names of the shared algorithms.
type CipherSuite struct {
	Name            string       `json:"name"`
	HexByte1        string       `json:"hex_byte_1"`
	HexByte2        string       `json:"hex_byte_2"`
	Protocol        string       `json:"protocol"`
	KeyExchange     string       `json:"kex"`
	Authentication  string       `json:"auth"`
	Encryption      string       `json:"enc"`
	Hash            string       `json:"hash"`
	OpensslName     string       `json:"openssl_name"`
	GnutlsName      string       `json:"gnutls_name"`
	TlsVersions     []TlsVersion `json:"tls_versions"`
	DtlsOk          bool         `json:"dtls_ok"`
	IanaRecommended bool         `json:"iana_recommended"`
	Rfcs            []int        `json:"rfcs"`
	Tier            Tier         `json:"security"`
}

// CodePoint returns the code point in the notation of the IANA registry, e.g. "0xC0,0x2F"
func (cs *CipherSuite) CodePoint() string {
	return cs.HexByte1 + "," + cs.HexByte2
}

// AlgorithmKeys returns the keys of the five referenced algorithms in name order
func (cs *CipherSuite) AlgorithmKeys() []AlgorithmKey {
	return []AlgorithmKey{
		{CategoryProtocol, cs.Protocol},
		{CategoryKeyExchange, cs.KeyExchange},
		{CategoryAuthentication, cs.Authentication},
		{CategoryEncryption, cs.Encryption},
		{CategoryHash, cs.Hash},
	}
}

// ShortName returns the short name of the referenced algorithm of the given category
func (cs *CipherSuite) ShortName(c Category) string {
	switch c {
	case CategoryProtocol:
		return cs.Protocol
	case CategoryKeyExchange:
		return cs.KeyExchange
	case CategoryAuthentication:
		return cs.Authentication
	case CategoryEncryption:
		return cs.Encryption
	case CategoryHash:
		return cs.Hash
	default:
		return ""
	}
}

func (cs *CipherSuite) SupportsTlsVersion(v TlsVersion) bool {
	for _, supported := range cs.TlsVersions {
		if supported == v {
			return true
		}
	}
	return false
}

// Clone returns a deep copy, stores hand out copies only.
func (cs *CipherSuite) Clone() *CipherSuite {
	c := *cs
	c.TlsVersions = append([]TlsVersion(nil), cs.TlsVersions...)
	c.Rfcs = append([]int(nil), cs.Rfcs...)
	return &c
}

// NormalizeHex converts a code point octet into the notation 0xHH. "c0", "0xc0" and "0XC0" all yield "0xC0".
// Values that are not a single hex octet are returned trimmed but otherwise unchanged, so they fail to match.
func NormalizeHex(s string) string {
	s = strings.TrimSpace(s)
	digits := s
	if len(digits) > 1 && (digits[:2] == "0x" || digits[:2] == "0X") {
		digits = digits[2:]
	}
	if len(digits) == 1 {
		digits = "0" + digits
	}
	if len(digits) != 2 {
		return s
	}
	for _, r := range digits {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return s
		}
	}
	return "0x" + strings.ToUpper(digits)
}
