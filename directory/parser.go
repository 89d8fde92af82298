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
	"strings"
	"unicode"

	"github.com/siemens/GoCsInfo/utils"
)

// Family names the naming grammar a cipher suite name was decomposed with
type Family string

const (
	FamilyGost          Family = "GOST"
	FamilyTls13AuthOnly Family = "TLS1.3 integrity-only"
	FamilyTls13         Family = "TLS1.3"
	FamilyGeneral       Family = "general"
)

// Placeholder for algorithms a cipher suite name does not define, e.g. the key exchange of TLS 1.3 suites
const NotApplicable = "-"

// Decomposition holds the algorithm short names derived from a cipher suite name. Fields are best-effort and may be
// empty for names that do not follow the naming grammar.
type Decomposition struct {
	Protocol       string
	KeyExchange    string
	Authentication string
	Encryption     string
	Hash           string
	Aead           bool
	Pfs            bool
	Export         bool   // Name carried an EXPORT token, the protocol got it as suffix
	Tls13Only      bool   // Suite can only be negotiated with TLS 1.3
	Family         Family // Grammar the name matched
}

// matcher is one naming grammar. Matchers are evaluated in order, the first one matching a code point wins.
type matcher struct {
	family Family
	match  func(hex1 string, hex2 string) bool
	parse  func(name string) Decomposition
}

var matchers = []matcher{
	{FamilyGost, isGost, parseGost},
	{FamilyTls13AuthOnly, isTls13AuthOnly, parseTls13AuthOnly},
	{FamilyTls13, isTls13, parseTls13},
	{FamilyGeneral, func(string, string) bool { return true }, parseGeneral},
}

// Decompose derives the five algorithm short names of a cipher suite from its IANA name and code point. It never
// fails, names that do not fit any grammar yield a partial result. A name without any separator ends up entirely
// in the protocol field.
func Decompose(name string, hex1 string, hex2 string) Decomposition {
	hex1, hex2 = NormalizeHex(hex1), NormalizeHex(hex2)
	name = strings.TrimSpace(name)

	for _, m := range matchers {
		if !m.match(hex1, hex2) {
			continue
		}
		d := m.parse(name)
		d.Family = m.family
		return finish(d)
	}
	return finish(parseGeneral(name)) // Not reached, the general grammar matches everything
}

// finish canonicalizes the short names and computes the flags
func finish(d Decomposition) Decomposition {
	d.Protocol = CanonicalShortName(d.Protocol)
	d.KeyExchange = CanonicalShortName(d.KeyExchange)
	d.Authentication = CanonicalShortName(d.Authentication)
	d.Encryption = CanonicalShortName(d.Encryption)
	d.Hash = CanonicalShortName(d.Hash)

	// Key exchange authenticates itself if no separate algorithm is named, e.g. PSK
	if d.Authentication == "" {
		d.Authentication = d.KeyExchange
	}

	// DHE covers ECDHE
	d.Pfs = d.Tls13Only || utils.ContainsAnyFold(d.KeyExchange, "DHE")
	d.Aead = utils.ContainsAnyFold(d.Encryption, "GCM", "POLY1305", "CCM", "MGM")
	return d
}

// GOST suites of RFC 9189 and RFC 9367
func isGost(hex1 string, hex2 string) bool {
	if hex1 != "0xC1" {
		return false
	}
	switch hex2 {
	case "0x00", "0x01", "0x02", "0x03", "0x04", "0x05", "0x06":
		return true
	}
	return false
}

func parseGost(name string) Decomposition {
	_, enc := partition(spaced(name), "WITH")
	d := Decomposition{
		Protocol:       "TLS",
		KeyExchange:    "VKO GOSTR341012",
		Authentication: "GOSTR341012",
		Encryption:     enc,
		Hash:           "GOSTR341112",
	}

	// MGM suites are the TLS 1.3 flavour, relying on the TLS 1.3 handshake
	for _, token := range strings.Fields(enc) {
		if token == "MGM" {
			d.KeyExchange = "ECDHE"
			d.Authentication = NotApplicable
			d.Hash = NotApplicable
			d.Tls13Only = true
			break
		}
	}
	return d
}

// TLS_SHA256_SHA256 and TLS_SHA384_SHA384 of RFC 9150
func isTls13AuthOnly(hex1 string, hex2 string) bool {
	return hex1 == "0xC0" && (hex2 == "0xB4" || hex2 == "0xB5")
}

func parseTls13AuthOnly(name string) Decomposition {
	prt, rest := partition(spaced(name), " ")
	auth, hash := rpartition(rest, " ")
	return Decomposition{
		Protocol:       prt,
		KeyExchange:    NotApplicable,
		Authentication: auth,
		Encryption:     "NULL",
		Hash:           hash,
		Tls13Only:      true,
	}
}

// TLS 1.3 suites of RFC 8446 and the SM4 suites of RFC 8998
func isTls13(hex1 string, hex2 string) bool {
	return hex1 == "0x13" || (hex1 == "0x00" && (hex2 == "0xC6" || hex2 == "0xC7"))
}

func parseTls13(name string) Decomposition {
	prt, rest := partition(spaced(name), " ")
	enc, hash := rpartition(rest, " ")
	return Decomposition{
		Protocol:       prt,
		KeyExchange:    NotApplicable,
		Authentication: NotApplicable,
		Encryption:     enc,
		Hash:           hash,
		Tls13Only:      true,
	}
}

// parseGeneral handles PROTOCOL_KEYEXCHANGE[_AUTH]_WITH_ENCRYPTION_HASH names
func parseGeneral(name string) Decomposition {
	d := Decomposition{}

	// EXPORT tokens do not name an algorithm, they annotate the protocol instead, e.g. 'TLS EXPORT1024'
	tokens := strings.Split(name, "_")
	kept := make([]string, 0, len(tokens))
	export := ""
	for _, token := range tokens {
		if strings.HasPrefix(token, "EXPORT") {
			d.Export = true
			export = token
			continue
		}
		kept = append(kept, token)
	}

	prt, rest := partition(strings.Join(kept, " "), " ")
	kexAuth, encHash := partition(rest, "WITH")
	if d.Export {
		prt += " " + export
	}

	kex, auth := partition(strings.TrimSpace(kexAuth), " ")
	enc, hash := rpartition(strings.TrimSpace(encHash), " ")

	// A trailing number or a bare CCM is the cipher mode, CCM suites come with SHA256
	hash = strings.TrimSpace(hash)
	if isNumeric(hash) || hash == "CCM" {
		enc = strings.TrimSpace(enc) + " " + hash
		hash = "SHA256"
	}

	// Some PSK suites name the key exchange second
	if strings.TrimSpace(kex) == "PSK" && strings.TrimSpace(auth) == "DHE" {
		kex, auth = "DHE", "PSK"
	}

	d.Protocol = prt
	d.KeyExchange = kex
	d.Authentication = auth
	d.Encryption = enc
	d.Hash = hash
	return d
}

func spaced(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}

// partition splits at the first separator. Without separator the whole string is returned as head.
func partition(s string, sep string) (string, string) {
	head, tail, found := strings.Cut(s, sep)
	if !found {
		return s, ""
	}
	return head, tail
}

// rpartition splits at the last separator. Without separator the whole string is returned as tail.
func rpartition(s string, sep string) (string, string) {
	i := strings.LastIndex(s, sep)
	if i < 0 {
		return "", s
	}
	return s[:i], s[i+len(sep):]
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
