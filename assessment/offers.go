/*
* GoCsInfo, a directory of TLS cipher suites, RFCs and the cryptographic algorithms they are built from.
*
* Copyright (c) Siemens AG, 2016-2024.
*
* This work is licensed under the terms of the MIT license. For a copy, see the LICENSE file in the top-level
* directory or visit <https://opensource.org/licenses/MIT>.
*
 */

package assessment

import (
	"fmt"

	"github.com/noneymous/GoSslyze"

	"github.com/siemens/GoCsInfo/directory"
	"github.com/siemens/GoCsInfo/utils"
)

// Offer is a cipher suite accepted by a TLS endpoint for a specific protocol version
type Offer struct {
	Version     directory.TlsVersion
	OpensslName string
	KeySize     int
	Preferred   bool // Preferred by the server, or any cipher if the client decides
}

// collectOffers extracts the accepted cipher suites of all protocol versions from an SSLyze result
func collectOffers(logger utils.Logger, cr *gosslyze.CommandResults) ([]Offer, error) {

	offers := make([]Offer, 0)

	if cr == nil {
		return offers, fmt.Errorf("provided SSLyze result is nil")
	}

	// SSLv2
	if cr.SslV2 != nil {
		for _, acceptedCipher := range cr.SslV2.AcceptedCiphers {
			offers = append(offers, toOffer(&acceptedCipher, directory.Sslv2, cr.SslV2.PreferredCipher))
		}
	}

	// SSLv3
	if cr.SslV3 != nil {
		for _, acceptedCipher := range cr.SslV3.AcceptedCiphers {
			offers = append(offers, toOffer(&acceptedCipher, directory.Sslv3, cr.SslV3.PreferredCipher))
		}
	}

	// TLSv1.0
	if cr.TlsV1_0 != nil {
		for _, acceptedCipher := range cr.TlsV1_0.AcceptedCiphers {
			offers = append(offers, toOffer(&acceptedCipher, directory.Tlsv1_0, cr.TlsV1_0.PreferredCipher))
		}
	}

	// TLSv1.1
	if cr.TlsV1_1 != nil {
		for _, acceptedCipher := range cr.TlsV1_1.AcceptedCiphers {
			offers = append(offers, toOffer(&acceptedCipher, directory.Tlsv1_1, cr.TlsV1_1.PreferredCipher))
		}
	}

	// TLSv1.2
	if cr.TlsV1_2 != nil {
		for _, acceptedCipher := range cr.TlsV1_2.AcceptedCiphers {
			offers = append(offers, toOffer(&acceptedCipher, directory.Tlsv1_2, cr.TlsV1_2.PreferredCipher))
		}
	}

	// TLSv1.3
	if cr.TlsV1_3 != nil {
		for _, acceptedCipher := range cr.TlsV1_3.AcceptedCiphers {
			offers = append(offers, toOffer(&acceptedCipher, directory.Tlsv1_3, cr.TlsV1_3.PreferredCipher))
		}
	}

	logger.Debugf("Collected %d accepted cipher suites.", len(offers))
	return offers, nil
}

func toOffer(acceptedCipher *gosslyze.AcceptedCipher, version directory.TlsVersion, preferredCipher *gosslyze.AcceptedCipher) Offer {
	offer := Offer{
		Version:     version,
		OpensslName: acceptedCipher.Cipher.OpensslName,
		KeySize:     int(acceptedCipher.Cipher.KeySize),
	}

	// Without server preference the client chooses, so any accepted cipher may be used
	if preferredCipher == nil || preferredCipher.Cipher.OpensslName == offer.OpensslName {
		offer.Preferred = true
	}
	return offer
}
