/*
* GoCsInfo, a directory of TLS cipher suites, RFCs and the cryptographic algorithms they are built from.
*
* Copyright (c) Siemens AG, 2016-2024.
*
* This work is licensed under the terms of the MIT license. For a copy, see the LICENSE file in the top-level
* directory or visit <https://opensource.org/licenses/MIT>.
*
 */

package utils

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// HashSha256 returns the upper case hex SHA-256 of a byte sequence, octets joined by the given separator. It is
// used to fingerprint downloaded feeds, so that unchanged feeds can be recognized in the logs.
func HashSha256(data []byte, separator string) string {

	// Calculate SHA-256
	hash := sha256.Sum256(data)

	// Convert representation
	hexified := make([]string, len(hash))
	for i, octet := range hash {
		hexified[i] = fmt.Sprintf("%02X", octet)
	}

	// Return separator-formatted hash
	return strings.Join(hexified, separator)
}
