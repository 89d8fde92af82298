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
	"fmt"
	"sort"
	"strings"

	"github.com/siemens/GoCsInfo/utils"
)

// Filter selects cipher suites. Zero values do not filter.
type Filter struct {
	Tiers      []Tier     // Any of these tiers
	TlsVersion TlsVersion // Negotiable with this version
	Software   Software   // Known to this library
	Category   Category   // Category of Term
	Term       string     // Substring of the short name of the algorithm of Category, case-insensitive
	Search     string     // Free text, matched against names, algorithms and vulnerabilities
	Descending bool       // Sort by name descending instead of ascending
}

// Suites returns the cipher suites matching the filter, sorted by name
func (c *Catalog) Suites(ctx context.Context, f Filter) ([]*CipherSuite, error) {
	suites, errSuites := c.store.ListCipherSuites(ctx)
	if errSuites != nil {
		return nil, errSuites
	}

	// Snapshot only needed for the free text search
	var snapshot *Snapshot
	if strings.TrimSpace(f.Search) != "" {
		var errSnapshot error
		snapshot, errSnapshot = TakeSnapshot(ctx, c.store)
		if errSnapshot != nil {
			return nil, errSnapshot
		}
	}

	matches := make([]*CipherSuite, 0, len(suites))
	for _, cs := range suites {
		if f.matches(cs, snapshot) {
			matches = append(matches, cs)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if f.Descending {
			return matches[i].Name > matches[j].Name
		}
		return matches[i].Name < matches[j].Name
	})
	return matches, nil
}

func (f Filter) matches(cs *CipherSuite, snapshot *Snapshot) bool {
	if len(f.Tiers) > 0 {
		found := false
		for _, t := range f.Tiers {
			if cs.Tier == t {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.TlsVersion != TlsUnknown && !cs.SupportsTlsVersion(f.TlsVersion) {
		return false
	}
	switch f.Software {
	case SoftwareOpenssl:
		if cs.OpensslName == "" {
			return false
		}
	case SoftwareGnutls:
		if cs.GnutlsName == "" {
			return false
		}
	}
	if f.Term != "" && IsValidCategory(f.Category) {
		if !utils.ContainsFold(cs.ShortName(f.Category), f.Term) {
			return false
		}
	}
	if search := strings.TrimSpace(f.Search); search != "" && snapshot != nil {
		if !matchesSearch(cs, snapshot, search) {
			return false
		}
	}
	return true
}

// matchesSearch requires every search word to appear in the cipher suite's names, its algorithms' short or long
// names or the names of the vulnerabilities linked to them
func matchesSearch(cs *CipherSuite, snapshot *Snapshot, search string) bool {
	haystack := []string{cs.Name, cs.OpensslName, cs.GnutlsName}
	for _, key := range cs.AlgorithmKeys() {
		haystack = append(haystack, key.ShortName)
		if a := snapshot.Algorithm(key); a != nil && a.LongName != "" {
			haystack = append(haystack, a.LongName)
		}
	}
	haystack = append(haystack, snapshot.Vulnerabilities(cs)...)

	for _, word := range strings.Fields(search) {
		found := false
		for _, s := range haystack {
			if utils.ContainsFold(s, word) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Algorithms returns the stored algorithms, optionally restricted to one category
func (c *Catalog) Algorithms(ctx context.Context, category Category) ([]*Algorithm, error) {
	algorithms, errList := c.store.ListAlgorithms(ctx)
	if errList != nil {
		return nil, errList
	}
	if category == 0 {
		return algorithms, nil
	}
	filtered := make([]*Algorithm, 0, len(algorithms))
	for _, a := range algorithms {
		if a.Category == category {
			filtered = append(filtered, a)
		}
	}
	return filtered, nil
}

// Vulnerabilities returns the stored vulnerabilities, optionally restricted to one severity
func (c *Catalog) Vulnerabilities(ctx context.Context, severity Severity) ([]*Vulnerability, error) {
	vulnerabilities, errList := c.store.ListVulnerabilities(ctx)
	if errList != nil {
		return nil, errList
	}
	if severity == 0 {
		return vulnerabilities, nil
	}
	filtered := make([]*Vulnerability, 0, len(vulnerabilities))
	for _, v := range vulnerabilities {
		if v.Severity == severity {
			filtered = append(filtered, v)
		}
	}
	return filtered, nil
}

// SuiteVulnerabilities returns the vulnerabilities linked to any algorithm of a cipher suite
func (c *Catalog) SuiteVulnerabilities(ctx context.Context, name string) ([]*Vulnerability, error) {
	cs, errGet := c.store.GetCipherSuite(ctx, name)
	if errGet != nil {
		return nil, errGet
	}
	snapshot, errSnapshot := TakeSnapshot(ctx, c.store)
	if errSnapshot != nil {
		return nil, errSnapshot
	}
	vulnerabilities := make([]*Vulnerability, 0)
	for _, vulnName := range snapshot.Vulnerabilities(cs) {
		v, errVuln := c.store.GetVulnerability(ctx, vulnName)
		if errors.Is(errVuln, ErrNotFound) {
			continue
		}
		if errVuln != nil {
			return nil, errVuln
		}
		vulnerabilities = append(vulnerabilities, v)
	}
	sort.Slice(vulnerabilities, func(i, j int) bool {
		return vulnerabilities[i].Name < vulnerabilities[j].Name
	})
	return vulnerabilities, nil
}

// AlgorithmsBySeverity returns the algorithms linked to at least one vulnerability of the given severity
func (c *Catalog) AlgorithmsBySeverity(ctx context.Context, severity Severity) ([]*Algorithm, error) {
	vulnerabilities, errVulns := c.Vulnerabilities(ctx, severity)
	if errVulns != nil {
		return nil, errVulns
	}
	names := make([]string, 0, len(vulnerabilities))
	for _, v := range vulnerabilities {
		names = append(names, v.Name)
	}
	algorithms, errList := c.store.ListAlgorithms(ctx)
	if errList != nil {
		return nil, errList
	}
	filtered := make([]*Algorithm, 0)
	for _, a := range algorithms {
		for _, linked := range a.Vulnerabilities {
			if utils.StrContained(linked, names) {
				filtered = append(filtered, a)
				break
			}
		}
	}
	return filtered, nil
}

// Rfcs returns the stored RFCs sorted by number
func (c *Catalog) Rfcs(ctx context.Context) ([]*Rfc, error) {
	rfcs, errList := c.store.ListRfcs(ctx)
	if errList != nil {
		return nil, errList
	}
	sort.Slice(rfcs, func(i, j int) bool {
		return rfcs[i].Number < rfcs[j].Number
	})
	return rfcs, nil
}

// SaveRfc stores the metadata of an RFC, replacing an existing record with the same number
func (c *Catalog) SaveRfc(ctx context.Context, rfc *Rfc) error {
	if rfc == nil || rfc.Number <= 0 {
		return fmt.Errorf("invalid RFC")
	}
	return c.store.SaveRfc(ctx, rfc)
}

// RfcSuites returns the names of the cipher suites defined by an RFC, sorted by name
func (c *Catalog) RfcSuites(ctx context.Context, number int) ([]string, error) {
	if _, errGet := c.store.GetRfc(ctx, number); errGet != nil {
		return nil, errGet
	}
	suites, errSuites := c.store.ListCipherSuites(ctx)
	if errSuites != nil {
		return nil, errSuites
	}
	names := make([]string, 0)
	for _, cs := range suites {
		for _, defined := range cs.Rfcs {
			if defined == number {
				names = append(names, cs.Name)
				break
			}
		}
	}
	sort.Strings(names)
	return names, nil
}
