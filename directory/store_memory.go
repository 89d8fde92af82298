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
	"sort"
	"sync"

	"github.com/siemens/GoCsInfo/utils"
)

// MemoryStore is the in-memory Store, guarding its maps with a single lock. Get-or-create of algorithms happens
// under the write lock and is thereby atomic per key.
type MemoryStore struct {
	mu              sync.RWMutex
	algorithms      map[AlgorithmKey]*Algorithm
	cipherSuites    map[string]*CipherSuite
	codePoints      map[string]string // Code point -> cipher suite name
	vulnerabilities map[string]*Vulnerability
	rfcs            map[int]*Rfc
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		algorithms:      make(map[AlgorithmKey]*Algorithm),
		cipherSuites:    make(map[string]*CipherSuite),
		codePoints:      make(map[string]string),
		vulnerabilities: make(map[string]*Vulnerability),
		rfcs:            make(map[int]*Rfc),
	}
}

func (m *MemoryStore) ResolveAlgorithm(ctx context.Context, ref AlgorithmRef) (*Algorithm, error) {
	if !IsValidCategory(ref.Category) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCategory, ref.Category)
	}
	key := AlgorithmKey{Category: ref.Category, ShortName: CanonicalShortName(ref.ShortName)}

	m.mu.Lock()
	defer m.mu.Unlock()

	algorithm, ok := m.algorithms[key]
	if !ok {
		algorithm = &Algorithm{Category: key.Category, ShortName: key.ShortName}
		m.algorithms[key] = algorithm
	}
	if ref.Pfs != nil {
		algorithm.Pfs = *ref.Pfs
	}
	if ref.Aead != nil {
		algorithm.Aead = *ref.Aead
	}
	return algorithm.Clone(), nil
}

func (m *MemoryStore) GetAlgorithm(ctx context.Context, key AlgorithmKey) (*Algorithm, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	algorithm, ok := m.algorithms[key]
	if !ok {
		return nil, fmt.Errorf("algorithm '%s': %w", key, ErrNotFound)
	}
	return algorithm.Clone(), nil
}

func (m *MemoryStore) ListAlgorithms(ctx context.Context) ([]*Algorithm, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listAlgorithms(), nil
}

// ReadSnapshot lists algorithms and vulnerabilities under one read lock
func (m *MemoryStore) ReadSnapshot(ctx context.Context) ([]*Algorithm, []*Vulnerability, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listAlgorithms(), m.listVulnerabilities(), nil
}

func (m *MemoryStore) listAlgorithms() []*Algorithm {
	algorithms := make([]*Algorithm, 0, len(m.algorithms))
	for _, algorithm := range m.algorithms {
		algorithms = append(algorithms, algorithm.Clone())
	}
	sort.Slice(algorithms, func(i, j int) bool {
		if algorithms[i].Category != algorithms[j].Category {
			return algorithms[i].Category < algorithms[j].Category
		}
		return algorithms[i].ShortName < algorithms[j].ShortName
	})
	return algorithms
}

// SaveAlgorithm updates the descriptive fields of an existing algorithm. Vulnerability links are managed by
// LinkVulnerability only.
func (m *MemoryStore) SaveAlgorithm(ctx context.Context, algorithm *Algorithm) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.algorithms[algorithm.Key()]
	if !ok {
		return fmt.Errorf("algorithm '%s': %w", algorithm.Key(), ErrNotFound)
	}
	existing.LongName = algorithm.LongName
	existing.Pfs = algorithm.Pfs
	existing.Aead = algorithm.Aead
	return nil
}

func (m *MemoryStore) CreateCipherSuite(ctx context.Context, cs *CipherSuite) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.cipherSuites[cs.Name]; ok {
		return fmt.Errorf("cipher suite '%s': %w", cs.Name, ErrDuplicate)
	}
	if other, ok := m.codePoints[cs.CodePoint()]; ok {
		return fmt.Errorf("code point %s of '%s' taken by '%s': %w", cs.CodePoint(), cs.Name, other, ErrDuplicate)
	}
	m.cipherSuites[cs.Name] = cs.Clone()
	m.codePoints[cs.CodePoint()] = cs.Name
	return nil
}

func (m *MemoryStore) GetCipherSuite(ctx context.Context, name string) (*CipherSuite, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cs, ok := m.cipherSuites[name]
	if !ok {
		return nil, fmt.Errorf("cipher suite '%s': %w", name, ErrNotFound)
	}
	return cs.Clone(), nil
}

func (m *MemoryStore) GetCipherSuiteByCodePoint(ctx context.Context, hex1 string, hex2 string) (*CipherSuite, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	codePoint := (&CipherSuite{HexByte1: hex1, HexByte2: hex2}).CodePoint()
	name, ok := m.codePoints[codePoint]
	if !ok {
		return nil, fmt.Errorf("code point %s: %w", codePoint, ErrNotFound)
	}
	return m.cipherSuites[name].Clone(), nil
}

func (m *MemoryStore) ListCipherSuites(ctx context.Context) ([]*CipherSuite, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cipherSuites := make([]*CipherSuite, 0, len(m.cipherSuites))
	for _, cs := range m.cipherSuites {
		cipherSuites = append(cipherSuites, cs.Clone())
	}
	sort.Slice(cipherSuites, func(i, j int) bool { return cipherSuites[i].Name < cipherSuites[j].Name })
	return cipherSuites, nil
}

// SaveCipherSuite updates an existing cipher suite. Name and code point are immutable.
func (m *MemoryStore) SaveCipherSuite(ctx context.Context, cs *CipherSuite) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.cipherSuites[cs.Name]
	if !ok {
		return fmt.Errorf("cipher suite '%s': %w", cs.Name, ErrNotFound)
	}
	if existing.CodePoint() != cs.CodePoint() {
		return fmt.Errorf("code point of cipher suite '%s' is immutable", cs.Name)
	}
	m.cipherSuites[cs.Name] = cs.Clone()
	return nil
}

func (m *MemoryStore) SaveVulnerability(ctx context.Context, v *Vulnerability) (*Vulnerability, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var previous *Vulnerability
	if existing, ok := m.vulnerabilities[v.Name]; ok {
		p := *existing
		previous = &p
	}
	stored := *v
	m.vulnerabilities[v.Name] = &stored
	return previous, nil
}

func (m *MemoryStore) GetVulnerability(ctx context.Context, name string) (*Vulnerability, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.vulnerabilities[name]
	if !ok {
		return nil, fmt.Errorf("vulnerability '%s': %w", name, ErrNotFound)
	}
	c := *v
	return &c, nil
}

func (m *MemoryStore) ListVulnerabilities(ctx context.Context) ([]*Vulnerability, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listVulnerabilities(), nil
}

func (m *MemoryStore) listVulnerabilities() []*Vulnerability {
	vulnerabilities := make([]*Vulnerability, 0, len(m.vulnerabilities))
	for _, v := range m.vulnerabilities {
		c := *v
		vulnerabilities = append(vulnerabilities, &c)
	}
	sort.Slice(vulnerabilities, func(i, j int) bool { return vulnerabilities[i].Name < vulnerabilities[j].Name })
	return vulnerabilities
}

func (m *MemoryStore) LinkVulnerability(ctx context.Context, key AlgorithmKey, vulnerability string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	algorithm, ok := m.algorithms[key]
	if !ok {
		return fmt.Errorf("algorithm '%s': %w", key, ErrNotFound)
	}
	if _, ok = m.vulnerabilities[vulnerability]; !ok {
		return fmt.Errorf("vulnerability '%s': %w", vulnerability, ErrNotFound)
	}
	algorithm.Vulnerabilities = utils.AppendUnique(algorithm.Vulnerabilities, vulnerability)
	return nil
}

func (m *MemoryStore) SaveRfc(ctx context.Context, rfc *Rfc) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := *rfc
	m.rfcs[rfc.Number] = &c
	return nil
}

func (m *MemoryStore) GetRfc(ctx context.Context, number int) (*Rfc, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rfc, ok := m.rfcs[number]
	if !ok {
		return nil, fmt.Errorf("RFC %d: %w", number, ErrNotFound)
	}
	c := *rfc
	return &c, nil
}

func (m *MemoryStore) ListRfcs(ctx context.Context) ([]*Rfc, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rfcs := make([]*Rfc, 0, len(m.rfcs))
	for _, rfc := range m.rfcs {
		c := *rfc
		rfcs = append(rfcs, &c)
	}
	sort.Slice(rfcs, func(i, j int) bool { return rfcs[i].Number < rfcs[j].Number })
	return rfcs, nil
}
