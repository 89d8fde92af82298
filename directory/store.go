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

import "context"

// Store is the persistence the catalog works on. Implementations return copies, mutating a returned value does not
// change the stored one. Lookups of missing records return ErrNotFound, creations of existing ones ErrDuplicate.
type Store interface {
	AlgorithmResolver

	GetAlgorithm(ctx context.Context, key AlgorithmKey) (*Algorithm, error)
	ListAlgorithms(ctx context.Context) ([]*Algorithm, error)
	SaveAlgorithm(ctx context.Context, algorithm *Algorithm) error

	// CreateCipherSuite fails with ErrDuplicate if the name or the code point is already taken
	CreateCipherSuite(ctx context.Context, cs *CipherSuite) error
	GetCipherSuite(ctx context.Context, name string) (*CipherSuite, error)
	GetCipherSuiteByCodePoint(ctx context.Context, hex1 string, hex2 string) (*CipherSuite, error)
	ListCipherSuites(ctx context.Context) ([]*CipherSuite, error)
	SaveCipherSuite(ctx context.Context, cs *CipherSuite) error

	// SaveVulnerability upserts a vulnerability by name and returns the previous record, which is nil on creation
	SaveVulnerability(ctx context.Context, v *Vulnerability) (*Vulnerability, error)
	GetVulnerability(ctx context.Context, name string) (*Vulnerability, error)
	ListVulnerabilities(ctx context.Context) ([]*Vulnerability, error)
	LinkVulnerability(ctx context.Context, key AlgorithmKey, vulnerability string) error

	SaveRfc(ctx context.Context, rfc *Rfc) error
	GetRfc(ctx context.Context, number int) (*Rfc, error)
	ListRfcs(ctx context.Context) ([]*Rfc, error)
}
