/*
* GoCsInfo, a directory of TLS cipher suites, RFCs and the cryptographic algorithms they are built from.
*
* Copyright (c) Siemens AG, 2016-2024.
*
* This work is licensed under the terms of the MIT license. For a copy, see the LICENSE file in the top-level
* directory or visit <https://opensource.org/licenses/MIT>.
*
 */

package feeds

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/siemens/GoCsInfo/directory"
	"github.com/siemens/GoCsInfo/utils"
)

// Link associates a vulnerability with an algorithm
type Link struct {
	Key           directory.AlgorithmKey
	Vulnerability string
}

// DefaultLinks are applied after every vulnerability import
func DefaultLinks() []Link {
	return []Link{
		{directory.AlgorithmKey{Category: directory.CategoryProtocol, ShortName: "TLS EXPORT"}, "Export-grade cipher"},
		{directory.AlgorithmKey{Category: directory.CategoryProtocol, ShortName: "TLS EXPORT1024"}, "Export-grade cipher"},
		{directory.AlgorithmKey{Category: directory.CategoryAuthentication, ShortName: "anon"}, "Anonymous key exchange"},
		{directory.AlgorithmKey{Category: directory.CategoryAuthentication, ShortName: "SHA"}, "Secure Hash Algorithm 1"},
		{directory.AlgorithmKey{Category: directory.CategoryHash, ShortName: "MD5"}, "Message Digest 5"},
		{directory.AlgorithmKey{Category: directory.CategoryHash, ShortName: "SHA"}, "Secure Hash Algorithm 1"},
	}
}

// ImportResult summarizes a vulnerability import
type ImportResult struct {
	Saved       int // Vulnerabilities created or updated
	Linked      int // Links applied
	Skipped     int // Links referring to unknown algorithms or vulnerabilities
	Invalidated int // Cipher suite ratings reset
}

// ParseVulnerabilities parses lines formatted 'name;severity;description'. Blank lines and lines starting with '#'
// are ignored, malformed lines are returned as errors and skipped.
func ParseVulnerabilities(data []byte) ([]*directory.Vulnerability, []error) {
	vulns := make([]*directory.Vulnerability, 0)
	problems := make([]error, 0)
	for i, line := range splitLines(data) {
		fields, ok := splitFields(line, 3)
		if !ok {
			if !isIgnorable(line) {
				problems = append(problems, &LineError{Line: i + 1, Text: line, Err: fmt.Errorf("expected 3 fields")})
			}
			continue
		}
		severity, errSeverity := directory.ParseSeverity(fields[1])
		if errSeverity != nil {
			problems = append(problems, &LineError{Line: i + 1, Text: line, Err: errSeverity})
			continue
		}
		if fields[0] == "" {
			problems = append(problems, &LineError{Line: i + 1, Text: line, Err: fmt.Errorf("empty name")})
			continue
		}
		vulns = append(vulns, &directory.Vulnerability{
			Name:        fields[0],
			Severity:    severity,
			Description: fields[2],
		})
	}
	return vulns, problems
}

// ParseLinks parses lines formatted 'category;short name;vulnerability'
func ParseLinks(data []byte) ([]Link, []error) {
	links := make([]Link, 0)
	problems := make([]error, 0)
	for i, line := range splitLines(data) {
		fields, ok := splitFields(line, 3)
		if !ok {
			if !isIgnorable(line) {
				problems = append(problems, &LineError{Line: i + 1, Text: line, Err: fmt.Errorf("expected 3 fields")})
			}
			continue
		}
		category, errCategory := directory.ParseCategory(fields[0])
		if errCategory != nil {
			problems = append(problems, &LineError{Line: i + 1, Text: line, Err: errCategory})
			continue
		}
		links = append(links, Link{
			Key:           directory.AlgorithmKey{Category: category, ShortName: fields[1]},
			Vulnerability: fields[2],
		})
	}
	return links, problems
}

// ImportVulnerabilities saves the vulnerabilities and applies the links. Links to algorithms not used by any cipher
// suite yet are skipped.
func ImportVulnerabilities(
	ctx context.Context,
	logger utils.Logger,
	catalog *directory.Catalog,
	vulns []*directory.Vulnerability,
	links []Link,
) (*ImportResult, error) {
	res := &ImportResult{}
	for _, v := range vulns {
		invalidated, errSave := catalog.SaveVulnerability(ctx, v)
		if errSave != nil {
			return res, fmt.Errorf("could not save vulnerability '%s': %w", v.Name, errSave)
		}
		res.Saved++
		res.Invalidated += invalidated
	}
	for _, l := range links {
		invalidated, errLink := catalog.LinkVulnerability(ctx, l.Key, l.Vulnerability)
		if errors.Is(errLink, directory.ErrNotFound) {
			logger.Debugf("Skipping link of '%s' to '%s': %s", l.Key, l.Vulnerability, errLink)
			res.Skipped++
			continue
		}
		if errLink != nil {
			return res, fmt.Errorf("could not link '%s' to '%s': %w", l.Key, l.Vulnerability, errLink)
		}
		res.Linked++
		res.Invalidated += invalidated
	}
	logger.Infof("Saved %d vulnerabilities, applied %d links, skipped %d, invalidated %d ratings.",
		res.Saved, res.Linked, res.Skipped, res.Invalidated)
	return res, nil
}

// splitFields splits a semicolon separated line into n trimmed fields. The last field takes the remainder.
func splitFields(line string, n int) ([]string, bool) {
	if isIgnorable(line) {
		return nil, false
	}
	fields := strings.SplitN(line, ";", n)
	if len(fields) != n {
		return nil, false
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields, true
}

func isIgnorable(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" || strings.HasPrefix(trimmed, "#")
}
