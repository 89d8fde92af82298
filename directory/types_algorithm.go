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

// Category of an algorithm, corresponding to the five building blocks of a cipher suite name.
type Category uint8

const (
	CategoryProtocol       Category = iota + 1 // Protocol
	CategoryKeyExchange                        // KeyExchange
	CategoryAuthentication                     // Authentication
	CategoryEncryption                         // Encryption
	CategoryHash                               // Hash
)

func IsValidCategory(c Category) bool {
	return c > 0 && c <= CategoryHash
}

// Categories returns all categories in cipher suite name order.
func Categories() []Category {
	return []Category{
		CategoryProtocol,
		CategoryKeyExchange,
		CategoryAuthentication,
		CategoryEncryption,
		CategoryHash,
	}
}

// ParseCategory accepts the category names as well as the short forms used by the API routes and vulnerability
// link lists (prot, kex/keyx, auth, enc/encr, hash).
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "protocol", "prot", "prt":
		return CategoryProtocol, nil
	case "keyexchange", "kex", "keyx":
		return CategoryKeyExchange, nil
	case "authentication", "auth":
		return CategoryAuthentication, nil
	case "encryption", "enc", "encr":
		return CategoryEncryption, nil
	case "hash", "hsh", "mac":
		return CategoryHash, nil
	default:
		return 0, fmt.Errorf("%w: '%s'", ErrInvalidCategory, s)
	}
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// AlgorithmKey identifies a shared algorithm. Short names are unique per category only, "SHA" may be an
// authentication as well as a hash algorithm.
type AlgorithmKey struct {
	Category  Category
	ShortName string
}

func (k AlgorithmKey) String() string {
	return k.Category.String() + "|" + k.ShortName
}

// Algorithm is one building block shared by all cipher suites referencing its short name.
type Algorithm struct {
	Category        Category `json:"category"`
	ShortName       string   `json:"short_name"`
	LongName        string   `json:"long_name"`
	Pfs             bool     `json:"pfs"`             // Only meaningful for key exchange algorithms
	Aead            bool     `json:"aead"`            // Only meaningful for encryption algorithms
	Vulnerabilities []string `json:"vulnerabilities"` // Names of linked vulnerabilities
}

func (a *Algorithm) Key() AlgorithmKey {
	return AlgorithmKey{Category: a.Category, ShortName: a.ShortName}
}

// Clone returns a deep copy, stores hand out copies only.
func (a *Algorithm) Clone() *Algorithm {
	c := *a
	c.Vulnerabilities = append([]string(nil), a.Vulnerabilities...)
	return &c
}

// AlgorithmRef describes a get-or-create of a shared algorithm. Flags that are set overwrite the stored value of an
// existing algorithm, the last write wins.
type AlgorithmRef struct {
	Category  Category
	ShortName string
	Pfs       *bool
	Aead      *bool
}

// CanonicalShortName trims surrounding whitespace. Case is preserved, "anon" and "ANON" are different algorithms.
func CanonicalShortName(s string) string {
	return strings.TrimSpace(s)
}
