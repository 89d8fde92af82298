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

import "strings"

// RatedAlgorithm is one of the five algorithms of a cipher suite together with the severities of its linked
// vulnerabilities. An algorithm without vulnerabilities counts as verified safe.
type RatedAlgorithm struct {
	Category   Category
	ShortName  string
	Severities []Severity
}

// RatedSuite is the input of the classifier, a cipher suite with its resolved algorithms
type RatedSuite struct {
	Name       string
	Algorithms []RatedAlgorithm
}

func (s RatedSuite) shortName(c Category) string {
	for _, a := range s.Algorithms {
		if a.Category == c {
			return a.ShortName
		}
	}
	return ""
}

func (s RatedSuite) maxSeverity() Severity {
	var highest Severity
	for _, a := range s.Algorithms {
		for _, severity := range a.Severities {
			if severity > highest {
				highest = severity
			}
		}
	}
	return highest
}

// Names of the classification rules, reported alongside the tier
const (
	RuleHighSeverity       = "high severity vulnerability"
	RuleMediumSeverity     = "medium severity vulnerability"
	RuleForwardSecureAead  = "forward secrecy without CBC or CCM"
	RuleNoCriticalFindings = "no medium or high severity vulnerability"
)

// rule is a guard of the decision table. Rules are evaluated in order, the first guard matching wins.
type rule struct {
	name  string
	tier  Tier
	guard func(s RatedSuite, highest Severity) bool
}

var rules = []rule{
	{RuleHighSeverity, TierInsecure, func(_ RatedSuite, highest Severity) bool {
		return highest >= SeverityHigh
	}},
	{RuleMediumSeverity, TierWeak, func(_ RatedSuite, highest Severity) bool {
		return highest == SeverityMedium
	}},
	{RuleForwardSecureAead, TierRecommended, func(s RatedSuite, _ Severity) bool {
		kex := s.shortName(CategoryKeyExchange)
		enc := s.shortName(CategoryEncryption)
		hash := s.shortName(CategoryHash)
		return strings.Contains(kex, "DHE") &&
			!strings.Contains(enc, "CBC") &&
			!strings.Contains(enc, "CCM") &&
			!strings.Contains(hash, "CCM")
	}},
	{RuleNoCriticalFindings, TierSecure, func(RatedSuite, Severity) bool {
		return true
	}},
}

// Classify returns the security tier of a cipher suite
func Classify(s RatedSuite) Tier {
	tier, _ := ClassifyExplained(s)
	return tier
}

// ClassifyExplained returns the security tier together with the name of the rule that decided it
func ClassifyExplained(s RatedSuite) (Tier, string) {
	highest := s.maxSeverity()
	for _, r := range rules {
		if r.guard(s, highest) {
			return r.tier, r.name
		}
	}
	return TierSecure, RuleNoCriticalFindings
}
