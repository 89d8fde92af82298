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
)

// AlgorithmResolver does the atomic get-or-create of shared algorithms. Implementations must never create two
// algorithms with the same category and short name, even if called concurrently.
type AlgorithmResolver interface {
	ResolveAlgorithm(ctx context.Context, ref AlgorithmRef) (*Algorithm, error)
}

// Resolution holds the shared algorithms a decomposition resolved to
type Resolution struct {
	Protocol       *Algorithm
	KeyExchange    *Algorithm
	Authentication *Algorithm
	Encryption     *Algorithm
	Hash           *Algorithm
}

// Refs returns the get-or-create requests of a decomposition. The PFS flag overwrites the stored flag of the key
// exchange, the AEAD flag the one of the encryption algorithm.
func (d Decomposition) Refs() []AlgorithmRef {
	pfs, aead := d.Pfs, d.Aead
	return []AlgorithmRef{
		{Category: CategoryProtocol, ShortName: CanonicalShortName(d.Protocol)},
		{Category: CategoryKeyExchange, ShortName: CanonicalShortName(d.KeyExchange), Pfs: &pfs},
		{Category: CategoryAuthentication, ShortName: CanonicalShortName(d.Authentication)},
		{Category: CategoryEncryption, ShortName: CanonicalShortName(d.Encryption), Aead: &aead},
		{Category: CategoryHash, ShortName: CanonicalShortName(d.Hash)},
	}
}

// Resolve resolves the five short names of a decomposition against the given resolver
func Resolve(ctx context.Context, resolver AlgorithmResolver, d Decomposition) (*Resolution, error) {
	resolved := make([]*Algorithm, 0, 5)
	for _, ref := range d.Refs() {
		algorithm, errResolve := resolver.ResolveAlgorithm(ctx, ref)
		if errResolve != nil {
			return nil, fmt.Errorf("could not resolve %s '%s': %w", ref.Category, ref.ShortName, errResolve)
		}
		resolved = append(resolved, algorithm)
	}
	return &Resolution{
		Protocol:       resolved[0],
		KeyExchange:    resolved[1],
		Authentication: resolved[2],
		Encryption:     resolved[3],
		Hash:           resolved[4],
	}, nil
}
