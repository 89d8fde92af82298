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
	"fmt"

	"github.com/siemens/GoCsInfo/utils"
)

// Snapshot is a read-consistent copy of the algorithms and vulnerability severities. Classifications of one batch
// are computed against the same snapshot.
type Snapshot struct {
	algorithms map[AlgorithmKey]*Algorithm
	severities map[string]Severity
}

// SnapshotReader is implemented by stores that can list algorithms and vulnerabilities within one consistent read
type SnapshotReader interface {
	ReadSnapshot(ctx context.Context) ([]*Algorithm, []*Vulnerability, error)
}

// TakeSnapshot copies the current algorithm and vulnerability state of a store. Stores without SnapshotReader are
// read with two separate calls, a vulnerability linked in between is then rated as unknown.
func TakeSnapshot(ctx context.Context, store Store) (*Snapshot, error) {
	algorithms, vulnerabilities, errRead := readSnapshot(ctx, store)
	if errRead != nil {
		return nil, errRead
	}

	s := &Snapshot{
		algorithms: make(map[AlgorithmKey]*Algorithm, len(algorithms)),
		severities: make(map[string]Severity, len(vulnerabilities)),
	}
	for _, a := range algorithms {
		s.algorithms[a.Key()] = a
	}
	for _, v := range vulnerabilities {
		s.severities[v.Name] = v.Severity
	}
	return s, nil
}

func readSnapshot(ctx context.Context, store Store) ([]*Algorithm, []*Vulnerability, error) {
	if reader, ok := store.(SnapshotReader); ok {
		algorithms, vulnerabilities, err := reader.ReadSnapshot(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("could not read snapshot: %w", err)
		}
		return algorithms, vulnerabilities, nil
	}
	algorithms, errAlgorithms := store.ListAlgorithms(ctx)
	if errAlgorithms != nil {
		return nil, nil, fmt.Errorf("could not list algorithms: %w", errAlgorithms)
	}
	vulnerabilities, errVulnerabilities := store.ListVulnerabilities(ctx)
	if errVulnerabilities != nil {
		return nil, nil, fmt.Errorf("could not list vulnerabilities: %w", errVulnerabilities)
	}
	return algorithms, vulnerabilities, nil
}

// Algorithm returns the algorithm of the snapshot or nil
func (s *Snapshot) Algorithm(key AlgorithmKey) *Algorithm {
	return s.algorithms[key]
}

// Vulnerabilities returns the names of the vulnerabilities linked to any of the cipher suite's algorithms, each once
func (s *Snapshot) Vulnerabilities(cs *CipherSuite) []string {
	var names []string
	for _, key := range cs.AlgorithmKeys() {
		if a, ok := s.algorithms[key]; ok {
			names = append(names, a.Vulnerabilities...)
		}
	}
	return utils.UniqueStrings(names)
}

// RatedSuite builds the classifier input of a cipher suite. Links to unknown vulnerabilities are ignored.
func (s *Snapshot) RatedSuite(cs *CipherSuite) RatedSuite {
	rated := RatedSuite{Name: cs.Name, Algorithms: make([]RatedAlgorithm, 0, 5)}
	for _, key := range cs.AlgorithmKeys() {
		ra := RatedAlgorithm{Category: key.Category, ShortName: key.ShortName}
		if a, ok := s.algorithms[key]; ok {
			for _, name := range a.Vulnerabilities {
				if severity, known := s.severities[name]; known {
					ra.Severities = append(ra.Severities, severity)
				}
			}
		}
		rated.Algorithms = append(rated.Algorithms, ra)
	}
	return rated
}
