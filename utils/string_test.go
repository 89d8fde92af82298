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
	"reflect"
	"testing"
)

func TestUniqueStrings(t *testing.T) {

	// Prepare and run test cases
	tests := []struct {
		name     string
		elements []string
		want     []string
	}{
		{"duplicates1", []string{"a", "b", "a", "a", "c"}, []string{"a", "b", "c"}},
		{"duplicates2", []string{"a", "a"}, []string{"a"}},
		{"duplicates3", []string{"a", "  ", "  ", "c"}, []string{"a", "  ", "c"}},
		{"no-duplicates1", []string{"a", "b", "c"}, []string{"a", "b", "c"}},
		{"no-duplicates2", []string{"a", "A", "aA"}, []string{"a", "A", "aA"}},
		{"empty", []string{}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UniqueStrings(tt.elements); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("UniqueStrings() = '%v', want = '%v'", got, tt.want)
			}
		})
	}
}

func TestAppendUnique(t *testing.T) {
	tests := []struct {
		name     string
		slice    []string
		elements []string
		want     []string
	}{
		{"new", []string{"TLS1.0"}, []string{"TLS1.2"}, []string{"TLS1.0", "TLS1.2"}},
		{"known", []string{"TLS1.0", "TLS1.2"}, []string{"TLS1.2"}, []string{"TLS1.0", "TLS1.2"}},
		{"mixed", []string{"a"}, []string{"a", "b", "b"}, []string{"a", "b"}},
		{"nil-slice", nil, []string{"a"}, []string{"a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AppendUnique(tt.slice, tt.elements...); !Equals(got, tt.want) {
				t.Errorf("AppendUnique() = '%v', want = '%v'", got, tt.want)
			}
		})
	}
}

func TestEquals(t *testing.T) {
	tests := []struct {
		name string
		s1   []string
		s2   []string
		want bool
	}{
		{"equal", []string{"a", "b"}, []string{"a", "b"}, true},
		{"order", []string{"a", "b"}, []string{"b", "a"}, false},
		{"length", []string{"a"}, []string{"a", "a"}, false},
		{"nil-empty", nil, []string{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equals(tt.s1, tt.s2); got != tt.want {
				t.Errorf("Equals() = '%v', want = '%v'", got, tt.want)
			}
		})
	}
}

func TestContainsAnyFold(t *testing.T) {
	tests := []struct {
		name       string
		s          string
		substrings []string
		want       bool
	}{
		{"gcm", "AES 128 GCM", []string{"GCM", "POLY1305"}, true},
		{"lower", "chacha20 poly1305", []string{"GCM", "POLY1305"}, true},
		{"none", "AES 128 CBC", []string{"GCM", "POLY1305", "CCM", "MGM"}, false},
		{"empty", "", []string{"GCM"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContainsAnyFold(tt.s, tt.substrings...); got != tt.want {
				t.Errorf("ContainsAnyFold() = '%v', want = '%v'", got, tt.want)
			}
		})
	}
}
