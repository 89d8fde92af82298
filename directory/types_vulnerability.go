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

type Severity uint8

const (
	SeverityLow    Severity = iota + 1 // Low
	SeverityMedium                     // Medium
	SeverityHigh                       // High
)

func IsValidSeverity(s Severity) bool {
	return s > 0 && s <= SeverityHigh
}

// ParseSeverity accepts the storage codes LOW, MED and HIG as well as the full names, case-insensitively
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return SeverityLow, nil
	case "med", "medium":
		return SeverityMedium, nil
	case "hig", "high":
		return SeverityHigh, nil
	default:
		return 0, fmt.Errorf("invalid severity '%s'", s)
	}
}

// Code returns the three letter storage code
func (s Severity) Code() string {
	switch s {
	case SeverityLow:
		return "LOW"
	case SeverityMedium:
		return "MED"
	case SeverityHigh:
		return "HIG"
	default:
		return ""
	}
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type Vulnerability struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}
