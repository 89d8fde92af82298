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

import "strings"

// TLS 1.2 suites that cannot be told apart by a single algorithm
var tls12Only = map[string]struct{}{
	"TLS_RSA_WITH_NULL_SHA256":                     {},
	"TLS_RSA_WITH_AES_128_CBC_SHA256":              {},
	"TLS_RSA_WITH_AES_256_CBC_SHA256":              {},
	"TLS_DH_RSA_WITH_AES_128_CBC_SHA256":           {},
	"TLS_DH_RSA_WITH_AES_256_CBC_SHA256":           {},
	"TLS_DH_DSS_WITH_AES_128_CBC_SHA256":           {},
	"TLS_DH_DSS_WITH_AES_256_CBC_SHA256":           {},
	"TLS_DHE_RSA_WITH_AES_128_CBC_SHA256":          {},
	"TLS_DHE_RSA_WITH_AES_256_CBC_SHA256":          {},
	"TLS_DHE_DSS_WITH_AES_128_CBC_SHA256":          {},
	"TLS_DHE_DSS_WITH_AES_256_CBC_SHA256":          {},
	"TLS_ECDH_RSA_WITH_AES_128_CBC_SHA256":         {},
	"TLS_ECDH_RSA_WITH_AES_256_CBC_SHA384":         {},
	"TLS_ECDH_ECDSA_WITH_AES_128_CBC_SHA256":       {},
	"TLS_ECDH_ECDSA_WITH_AES_256_CBC_SHA384":       {},
	"TLS_ECDHE_RSA_WITH_AES_128_CBC_SHA256":        {},
	"TLS_ECDHE_RSA_WITH_AES_256_CBC_SHA384":        {},
	"TLS_ECDHE_ECDSA_WITH_AES_128_CBC_SHA256":      {},
	"TLS_ECDHE_ECDSA_WITH_AES_256_CBC_SHA384":      {},
	"TLS_DH_anon_WITH_AES_128_CBC_SHA256":          {},
	"TLS_DH_anon_WITH_AES_256_CBC_SHA256":          {},
	"TLS_ECDHE_ECDSA_WITH_CAMELLIA_128_CBC_SHA256": {},
	"TLS_ECDHE_ECDSA_WITH_CAMELLIA_256_CBC_SHA384": {},
	"TLS_ECDH_ECDSA_WITH_CAMELLIA_128_CBC_SHA256":  {},
	"TLS_ECDH_ECDSA_WITH_CAMELLIA_256_CBC_SHA384":  {},
	"TLS_ECDHE_RSA_WITH_CAMELLIA_128_CBC_SHA256":   {},
	"TLS_ECDHE_RSA_WITH_CAMELLIA_256_CBC_SHA384":   {},
	"TLS_ECDH_RSA_WITH_CAMELLIA_128_CBC_SHA256":    {},
	"TLS_ECDH_RSA_WITH_CAMELLIA_256_CBC_SHA384":    {},
}

// DeriveTlsVersions returns the TLS versions a cipher suite can be negotiated with. IDEA and DES suites were removed
// with TLS 1.2, AEAD suites were introduced with it.
func DeriveTlsVersions(name string, d Decomposition) []TlsVersion {
	switch {
	case d.Tls13Only:
		return []TlsVersion{Tlsv1_3}
	case strings.Contains(name, "IDEA") || strings.Contains(name, "DES"):
		return []TlsVersion{Tlsv1_0, Tlsv1_1}
	case strings.Contains(name, "POLY1305") || strings.Contains(name, "GCM") || strings.Contains(name, "CCM"):
		return []TlsVersion{Tlsv1_2}
	}
	if _, ok := tls12Only[name]; ok {
		return []TlsVersion{Tlsv1_2}
	}
	return []TlsVersion{Tlsv1_0, Tlsv1_1, Tlsv1_2}
}
