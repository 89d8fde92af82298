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

// Publication status of an RFC
type RfcStatus uint8

const (
	RfcUndefined           RfcStatus = iota // Undefined
	RfcInternetStandard                     // Internet Standard
	RfcProposedStandard                     // Proposed Standard
	RfcDraftStandard                        // Draft Standard
	RfcBestCurrentPractise                  // Best Current Practise
	RfcInformational                        // Informational
	RfcExperimental                         // Experimental
	RfcHistoric                             // Historic
)

var rfcStatusCodes = map[RfcStatus]string{
	RfcUndefined:           "UND",
	RfcInternetStandard:    "IST",
	RfcProposedStandard:    "PST",
	RfcDraftStandard:       "DST",
	RfcBestCurrentPractise: "BCP",
	RfcInformational:       "INF",
	RfcExperimental:        "EXP",
	RfcHistoric:            "HST",
}

// Code returns the three letter storage code
func (s RfcStatus) Code() string {
	return rfcStatusCodes[s]
}

// ParseRfcStatus accepts storage codes and full names, case-insensitively
func ParseRfcStatus(s string) (RfcStatus, error) {
	s = strings.TrimSpace(s)
	for status, code := range rfcStatusCodes {
		if strings.EqualFold(s, code) || strings.EqualFold(s, status.String()) {
			return status, nil
		}
	}
	return RfcUndefined, fmt.Errorf("invalid RFC status '%s'", s)
}

func (s RfcStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type Rfc struct {
	Number  int       `json:"number"`
	Title   string    `json:"title"`
	Status  RfcStatus `json:"status"`
	Year    int       `json:"year"`
	Url     string    `json:"url"`
	IsDraft bool      `json:"is_draft"`
}

func (r *Rfc) String() string {
	if r.IsDraft {
		return fmt.Sprintf("DRAFT RFC %d", r.Number)
	}
	return fmt.Sprintf("RFC %d", r.Number)
}
