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
	"strings"
)

// ValidOrEmptyCredentials checks whether credentials are either completely unset or at least carry a user and a
// password. A domain without user and password is invalid. Surrounding whitespace does not count as a value.
func ValidOrEmptyCredentials(domain string, user string, password string) bool {
	domain = strings.TrimSpace(domain)
	user = strings.TrimSpace(user)
	if domain == "" && user == "" && password == "" {
		return true
	}
	return user != "" && password != ""
}
