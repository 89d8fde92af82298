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
	"context"
	"errors"
	"testing"
)

func TestMemoryStore_ResolveAlgorithm(t *testing.T) {

	// Prepare test variables
	ctx := context.Background()
	store := NewMemoryStore()
	yes, no := true, false

	// Create
	a, err := store.ResolveAlgorithm(ctx, AlgorithmRef{Category: CategoryKeyExchange, ShortName: " ECDHE ", Pfs: &yes})
	if err != nil {
		t.Fatalf("ResolveAlgorithm() error = '%v'", err)
	}
	if a.ShortName != "ECDHE" || !a.Pfs {
		t.Errorf("ResolveAlgorithm() = %+v", a)
	}

	// Get existing without flag keeps the flag
	a, _ = store.ResolveAlgorithm(ctx, AlgorithmRef{Category: CategoryKeyExchange, ShortName: "ECDHE"})
	if !a.Pfs {
		t.Errorf("ResolveAlgorithm() without flag changed the stored flag")
	}

	// Last write wins
	_, _ = store.ResolveAlgorithm(ctx, AlgorithmRef{Category: CategoryKeyExchange, ShortName: "ECDHE", Pfs: &no})
	a, _ = store.GetAlgorithm(ctx, AlgorithmKey{CategoryKeyExchange, "ECDHE"})
	if a.Pfs {
		t.Errorf("GetAlgorithm() flag = '%v', want = '%v'", a.Pfs, false)
	}

	// Same short name in another category is another algorithm
	_, _ = store.ResolveAlgorithm(ctx, AlgorithmRef{Category: CategoryAuthentication, ShortName: "ECDHE"})
	algorithms, _ := store.ListAlgorithms(ctx)
	if len(algorithms) != 2 {
		t.Errorf("ListAlgorithms() = %d algorithms, want = %d", len(algorithms), 2)
	}

	// Returned values are copies
	a.LongName = "changed"
	stored, _ := store.GetAlgorithm(ctx, a.Key())
	if stored.LongName != "" {
		t.Errorf("GetAlgorithm() returned a reference to the stored value")
	}

	// Case is preserved
	_, _ = store.ResolveAlgorithm(ctx, AlgorithmRef{Category: CategoryAuthentication, ShortName: "ecdhe"})
	algorithms, _ = store.ListAlgorithms(ctx)
	if len(algorithms) != 3 {
		t.Errorf("ListAlgorithms() = %d algorithms, want = %d", len(algorithms), 3)
	}

	// Invalid category
	if _, err = store.ResolveAlgorithm(ctx, AlgorithmRef{Category: 0, ShortName: "X"}); !errors.Is(err, ErrInvalidCategory) {
		t.Errorf("ResolveAlgorithm() error = '%v', want = '%v'", err, ErrInvalidCategory)
	}
}

func TestMemoryStore_CipherSuites(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	cs := &CipherSuite{Name: "TLS_RSA_WITH_NULL_MD5", HexByte1: "0x00", HexByte2: "0x01", Rfcs: []int{5246}}
	if err := store.CreateCipherSuite(ctx, cs); err != nil {
		t.Fatalf("CreateCipherSuite() error = '%v'", err)
	}
	cs.Rfcs[0] = 1
	got, _ := store.GetCipherSuite(ctx, cs.Name)
	if got.Rfcs[0] != 5246 {
		t.Errorf("CreateCipherSuite() stored a reference to the input")
	}

	// Lookup by code point
	byCodePoint, err := store.GetCipherSuiteByCodePoint(ctx, "0x00", "0x01")
	if err != nil || byCodePoint.Name != cs.Name {
		t.Errorf("GetCipherSuiteByCodePoint() = '%v', '%v', want = '%s'", byCodePoint, err, cs.Name)
	}
	if _, err = store.GetCipherSuiteByCodePoint(ctx, "0x00", "0x02"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetCipherSuiteByCodePoint() error = '%v', want = '%v'", err, ErrNotFound)
	}

	// Code point is immutable
	got.HexByte2 = "0x02"
	if err := store.SaveCipherSuite(ctx, got); err == nil {
		t.Errorf("SaveCipherSuite() with changed code point should fail")
	}
	if err := store.SaveCipherSuite(ctx, &CipherSuite{Name: "TLS_UNKNOWN"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("SaveCipherSuite() error = '%v', want = '%v'", err, ErrNotFound)
	}

	// Vulnerability upsert returns the previous record
	previous, _ := store.SaveVulnerability(ctx, &Vulnerability{Name: "Logjam", Severity: SeverityMedium})
	if previous != nil {
		t.Errorf("SaveVulnerability() previous = '%v', want nil", previous)
	}
	previous, _ = store.SaveVulnerability(ctx, &Vulnerability{Name: "Logjam", Severity: SeverityHigh})
	if previous == nil || previous.Severity != SeverityMedium {
		t.Errorf("SaveVulnerability() previous = '%v', want medium severity", previous)
	}
}
