/*
* GoCsInfo, a directory of TLS cipher suites, RFCs and the cryptographic algorithms they are built from.
*
* Copyright (c) Siemens AG, 2016-2024.
*
* This work is licensed under the terms of the MIT license. For a copy, see the LICENSE file in the top-level
* directory or visit <https://opensource.org/licenses/MIT>.
*
 */

package sqlite

import (
	"encoding/json"
	"fmt"

	"github.com/siemens/GoCsInfo/directory"
)

type algorithmModel struct {
	ID        uint   `gorm:"primaryKey"`
	Category  uint8  `gorm:"uniqueIndex:idx_algorithm_key"`
	ShortName string `gorm:"uniqueIndex:idx_algorithm_key"`
	LongName  string
	Pfs       bool
	Aead      bool
}

func (algorithmModel) TableName() string { return "algorithms" }

type linkModel struct {
	AlgorithmID       uint   `gorm:"primaryKey;autoIncrement:false"`
	VulnerabilityName string `gorm:"primaryKey"`
}

func (linkModel) TableName() string { return "algorithm_vulnerabilities" }

type cipherSuiteModel struct {
	Name            string `gorm:"primaryKey"`
	HexByte1        string `gorm:"uniqueIndex:idx_code_point"`
	HexByte2        string `gorm:"uniqueIndex:idx_code_point"`
	Protocol        string
	KeyExchange     string
	Authentication  string
	Encryption      string
	Hash            string
	OpensslName     string `gorm:"index"`
	GnutlsName      string
	TlsVersions     string // JSON encoded []int
	DtlsOk          bool
	IanaRecommended bool
	Rfcs            string // JSON encoded []int
	Tier            uint8  `gorm:"index"`
}

func (cipherSuiteModel) TableName() string { return "cipher_suites" }

type vulnerabilityModel struct {
	Name        string `gorm:"primaryKey"`
	Description string
	Severity    uint8
}

func (vulnerabilityModel) TableName() string { return "vulnerabilities" }

type rfcModel struct {
	Number  int `gorm:"primaryKey;autoIncrement:false"`
	Title   string
	Status  uint8
	Year    int
	Url     string
	IsDraft bool
}

func (rfcModel) TableName() string { return "rfcs" }

func toCipherSuiteModel(cs *directory.CipherSuite) cipherSuiteModel {
	versions := make([]int, 0, len(cs.TlsVersions))
	for _, v := range cs.TlsVersions {
		versions = append(versions, int(v))
	}
	versionsJson, _ := json.Marshal(versions)
	rfcs := cs.Rfcs
	if rfcs == nil {
		rfcs = []int{}
	}
	rfcsJson, _ := json.Marshal(rfcs)

	return cipherSuiteModel{
		Name:            cs.Name,
		HexByte1:        cs.HexByte1,
		HexByte2:        cs.HexByte2,
		Protocol:        cs.Protocol,
		KeyExchange:     cs.KeyExchange,
		Authentication:  cs.Authentication,
		Encryption:      cs.Encryption,
		Hash:            cs.Hash,
		OpensslName:     cs.OpensslName,
		GnutlsName:      cs.GnutlsName,
		TlsVersions:     string(versionsJson),
		DtlsOk:          cs.DtlsOk,
		IanaRecommended: cs.IanaRecommended,
		Rfcs:            string(rfcsJson),
		Tier:            uint8(cs.Tier),
	}
}

func toCipherSuite(m cipherSuiteModel) (*directory.CipherSuite, error) {
	var versions []int
	if err := unmarshalList(m.TlsVersions, &versions); err != nil {
		return nil, fmt.Errorf("invalid TLS versions of cipher suite '%s': %w", m.Name, err)
	}
	var rfcs []int
	if err := unmarshalList(m.Rfcs, &rfcs); err != nil {
		return nil, fmt.Errorf("invalid RFCs of cipher suite '%s': %w", m.Name, err)
	}

	cs := &directory.CipherSuite{
		Name:            m.Name,
		HexByte1:        m.HexByte1,
		HexByte2:        m.HexByte2,
		Protocol:        m.Protocol,
		KeyExchange:     m.KeyExchange,
		Authentication:  m.Authentication,
		Encryption:      m.Encryption,
		Hash:            m.Hash,
		OpensslName:     m.OpensslName,
		GnutlsName:      m.GnutlsName,
		DtlsOk:          m.DtlsOk,
		IanaRecommended: m.IanaRecommended,
		Rfcs:            rfcs,
		Tier:            directory.Tier(m.Tier),
	}
	for _, v := range versions {
		cs.TlsVersions = append(cs.TlsVersions, directory.TlsVersion(v))
	}
	return cs, nil
}

// unmarshalList decodes a JSON list column, an empty column is an empty list
func unmarshalList(column string, v interface{}) error {
	if column == "" {
		return nil
	}
	return json.Unmarshal([]byte(column), v)
}

func toAlgorithm(m algorithmModel, vulnerabilities []string) *directory.Algorithm {
	return &directory.Algorithm{
		Category:        directory.Category(m.Category),
		ShortName:       m.ShortName,
		LongName:        m.LongName,
		Pfs:             m.Pfs,
		Aead:            m.Aead,
		Vulnerabilities: vulnerabilities,
	}
}

func toRfc(m rfcModel) *directory.Rfc {
	return &directory.Rfc{
		Number:  m.Number,
		Title:   m.Title,
		Status:  directory.RfcStatus(m.Status),
		Year:    m.Year,
		Url:     m.Url,
		IsDraft: m.IsDraft,
	}
}
