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

// Final states of an import or refresh run. They are logged and reported back to the caller.
const (
	StatusCompleted = "Completed"               // Run went through without any rejected entries
	StatusPartial   = "Completed With Failures" // Some entries were rejected, the rest got stored
	StatusDeadline  = "Completed With Deadline" // Deadline reached before all entries were processed
	StatusFailed    = "Failed"                  // Run aborted, nothing or only parts got stored
)

// RunStatus derives the final state of a run from the number of handled and rejected entries.
func RunStatus(handled int, rejected int, deadlineReached bool) string {
	switch {
	case deadlineReached:
		return StatusDeadline
	case handled == 0 && rejected > 0:
		return StatusFailed
	case rejected > 0:
		return StatusPartial
	default:
		return StatusCompleted
	}
}
