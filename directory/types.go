/*
* GoCsInfo, a directory of TLS cipher suites, RFCs and the cryptographic algorithms they are built from.
*
* Copyright (c) Siemens AG, 2016-2024.
*
* This work is licensed under the terms of the MIT license. For a copy, see the LICENSE file in the top-level
* directory or visit <https://opensource.org/licenses/MIT>.
*
 */

// Package directory holds the catalog of TLS cipher suites and the algorithms they are built from. Its core are
// two pure functions: Decompose derives the algorithm short names from a cipher suite's IANA name and Classify
// rates a cipher suite by the vulnerabilities of its algorithms. The Catalog wires both into a Store.
package directory

import "errors"

//go:generate stringer -linecomment -output=types_string.go -type=Category,Severity,Tier,TlsVersion,RfcStatus ./

// DON'T ALTER THE COMMENTS of the enum constants! The stringer uses them as string representation, which is also
// the representation returned by the API and stored in exports.

var (
	ErrNotFound        = errors.New("not found")
	ErrDuplicate       = errors.New("already existing")
	ErrInvalidCategory = errors.New("invalid algorithm category")
)
