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

// UniqueStrings returns a copy of the given slice without duplicates, keeping the order of first occurrence.
func UniqueStrings(elements []string) []string {
	seen := make(map[string]struct{}, len(elements))
	result := make([]string, 0, len(elements))
	for _, element := range elements {
		if _, ok := seen[element]; ok {
			continue
		}
		seen[element] = struct{}{}
		result = append(result, element)
	}
	return result
}

// AppendUnique appends elements to the slice, skipping those already contained.
func AppendUnique(slice []string, elements ...string) []string {
	for _, element := range elements {
		if !StrContained(element, slice) {
			slice = append(slice, element)
		}
	}
	return slice
}

// Equals checks whether two slices contain the same elements in the same order. A nil slice equals an empty one.
func Equals(s1 []string, s2 []string) bool {
	if len(s1) != len(s2) {
		return false
	}
	for i := range s1 {
		if s1[i] != s2[i] {
			return false
		}
	}
	return true
}

// StrContained checks whether the candidate is an element of any of the given slices
func StrContained(candidate string, slices ...[]string) bool {
	for _, slice := range slices {
		for _, s := range slice {
			if s == candidate {
				return true
			}
		}
	}
	return false
}

// ContainsFold reports whether substr is within s, ignoring case. An empty substr is always contained.
func ContainsFold(s string, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// ContainsAnyFold reports whether any of the given substrings is within s, ignoring case.
func ContainsAnyFold(s string, substrings ...string) bool {
	lower := strings.ToLower(s)
	for _, substr := range substrings {
		if strings.Contains(lower, strings.ToLower(substr)) {
			return true
		}
	}
	return false
}
