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
	"fmt"
	"runtime/debug"
	"strings"
)

// StacktraceIndented takes the current stacktrace and formats it in a nicely indented way (starting with newline):
//
//	Stacktrace:
//		| goroutine 12 [running]:
//		| github.com/siemens/GoCsInfo/directory.(*Catalog).register(...)
//		| 	/src/GoCsInfo/directory/catalog.go:120 +0x2ac
func StacktraceIndented(indent string) string {

	// Get stacktrace
	trace := strings.Trim(string(debug.Stack()), "\n")

	// Return stacktrace formatted with indents
	return fmt.Sprintf(
		"\n%sStacktrace:\n%s\t| %s",
		indent,
		indent,
		strings.ReplaceAll(trace, "\n", "\n"+indent+"\t| "),
	)
}
