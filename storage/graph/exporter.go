/*
* GoCsInfo, a directory of TLS cipher suites, RFCs and the cryptographic algorithms they are built from.
*
* Copyright (c) Siemens AG, 2016-2024.
*
* This work is licensed under the terms of the MIT license. For a copy, see the LICENSE file in the top-level
* directory or visit <https://opensource.org/licenses/MIT>.
*
 */

// Package graph mirrors the catalog into neo4j, where cipher suites, algorithms and vulnerabilities become nodes
// connected by USES and AFFECTED_BY relationships. The mirror is one-way, the catalog store stays authoritative.
package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/siemens/GoCsInfo/directory"
	"github.com/siemens/GoCsInfo/utils"
)

const (
	queryConstraintSuite = "CREATE CONSTRAINT cipher_suite_name IF NOT EXISTS FOR (c:CipherSuite) REQUIRE c.name IS UNIQUE"
	queryConstraintVuln  = "CREATE CONSTRAINT vulnerability_name IF NOT EXISTS FOR (v:Vulnerability) REQUIRE v.name IS UNIQUE"
	queryClear           = "MATCH (n) WHERE n:CipherSuite OR n:Algorithm OR n:Vulnerability DETACH DELETE n"

	queryVulnerabilities = `
UNWIND $rows AS row
MERGE (v:Vulnerability {name: row.name})
SET v.description = row.description, v.severity = row.severity`

	queryAlgorithms = `
UNWIND $rows AS row
MERGE (a:Algorithm {category: row.category, short_name: row.short_name})
SET a.long_name = row.long_name, a.pfs = row.pfs, a.aead = row.aead
WITH a, row
UNWIND row.vulnerabilities AS vulnerability
MATCH (v:Vulnerability {name: vulnerability})
MERGE (a)-[:AFFECTED_BY]->(v)`

	querySuites = `
UNWIND $rows AS row
MERGE (c:CipherSuite {name: row.name})
SET c.code_point = row.code_point, c.tier = row.tier, c.openssl_name = row.openssl_name,
    c.gnutls_name = row.gnutls_name, c.iana_recommended = row.iana_recommended
WITH c, row
UNWIND row.algorithms AS ref
MATCH (a:Algorithm {category: ref.category, short_name: ref.short_name})
MERGE (c)-[:USES {category: ref.category}]->(a)`

	queryAffected = `
MATCH (c:CipherSuite)-[:USES]->(:Algorithm)-[:AFFECTED_BY]->(v:Vulnerability {name: $name})
RETURN DISTINCT c.name AS name ORDER BY name`
)

// Exporter writes the catalog into a neo4j database
type Exporter struct {
	logger   utils.Logger
	driver   neo4j.DriverWithContext
	database string
}

// ExportResult counts the exported nodes
type ExportResult struct {
	CipherSuites    int
	Algorithms      int
	Vulnerabilities int
}

// NewExporter connects to neo4j and verifies the connection. An empty database name selects the default database.
func NewExporter(ctx context.Context, logger utils.Logger, uri string, user string, password string, database string) (*Exporter, error) {
	driver, errDriver := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if errDriver != nil {
		return nil, fmt.Errorf("could not create neo4j driver: %w", errDriver)
	}
	if errVerify := driver.VerifyConnectivity(ctx); errVerify != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("could not connect to neo4j at '%s': %w", uri, errVerify)
	}
	return &Exporter{logger: logger, driver: driver, database: database}, nil
}

func (e *Exporter) Close(ctx context.Context) error {
	return e.driver.Close(ctx)
}

func (e *Exporter) session(ctx context.Context, mode neo4j.AccessMode) neo4j.SessionWithContext {
	return e.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: mode, DatabaseName: e.database})
}

// Export replaces the mirrored graph with the current content of the store
func (e *Exporter) Export(ctx context.Context, store directory.Store) (*ExportResult, error) {

	// Read catalog
	vulnerabilities, errVulns := store.ListVulnerabilities(ctx)
	if errVulns != nil {
		return nil, errVulns
	}
	algorithms, errAlgorithms := store.ListAlgorithms(ctx)
	if errAlgorithms != nil {
		return nil, errAlgorithms
	}
	suites, errSuites := store.ListCipherSuites(ctx)
	if errSuites != nil {
		return nil, errSuites
	}

	// Prepare parameters
	vulnRows := make([]any, 0, len(vulnerabilities))
	for _, v := range vulnerabilities {
		vulnRows = append(vulnRows, vulnerabilityRow(v))
	}
	algorithmRows := make([]any, 0, len(algorithms))
	for _, a := range algorithms {
		algorithmRows = append(algorithmRows, algorithmRow(a))
	}
	suiteRows := make([]any, 0, len(suites))
	for _, cs := range suites {
		suiteRows = append(suiteRows, suiteRow(cs))
	}

	// Write graph
	session := e.session(ctx, neo4j.AccessModeWrite)
	defer func() { _ = session.Close(ctx) }()

	for _, constraint := range []string{queryConstraintSuite, queryConstraintVuln} {
		if _, errRun := session.Run(ctx, constraint, nil); errRun != nil {
			return nil, fmt.Errorf("could not create constraint: %w", errRun)
		}
	}
	_, errWrite := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		for _, step := range []struct {
			query string
			rows  []any
		}{
			{queryClear, nil},
			{queryVulnerabilities, vulnRows},
			{queryAlgorithms, algorithmRows},
			{querySuites, suiteRows},
		} {
			res, errRun := tx.Run(ctx, step.query, map[string]any{"rows": step.rows})
			if errRun != nil {
				return nil, errRun
			}
			if _, errConsume := res.Consume(ctx); errConsume != nil {
				return nil, errConsume
			}
		}
		return nil, nil
	})
	if errWrite != nil {
		return nil, fmt.Errorf("could not export graph: %w", errWrite)
	}

	res := &ExportResult{
		CipherSuites:    len(suiteRows),
		Algorithms:      len(algorithmRows),
		Vulnerabilities: len(vulnRows),
	}
	e.logger.Infof("Exported %d cipher suites, %d algorithms and %d vulnerabilities to neo4j.",
		res.CipherSuites, res.Algorithms, res.Vulnerabilities)
	return res, nil
}

// AffectedSuites returns the names of the mirrored cipher suites using an algorithm affected by the vulnerability
func (e *Exporter) AffectedSuites(ctx context.Context, vulnerability string) ([]string, error) {
	session := e.session(ctx, neo4j.AccessModeRead)
	defer func() { _ = session.Close(ctx) }()

	names, errRead := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, errRun := tx.Run(ctx, queryAffected, map[string]any{"name": vulnerability})
		if errRun != nil {
			return nil, errRun
		}
		records, errCollect := res.Collect(ctx)
		if errCollect != nil {
			return nil, errCollect
		}
		names := make([]string, 0, len(records))
		for _, record := range records {
			if name, ok := record.Get("name"); ok {
				if s, isString := name.(string); isString {
					names = append(names, s)
				}
			}
		}
		return names, nil
	})
	if errRead != nil {
		return nil, fmt.Errorf("could not query affected cipher suites: %w", errRead)
	}
	return names.([]string), nil
}

func vulnerabilityRow(v *directory.Vulnerability) map[string]any {
	return map[string]any{
		"name":        v.Name,
		"description": v.Description,
		"severity":    v.Severity.String(),
	}
}

func algorithmRow(a *directory.Algorithm) map[string]any {
	vulnerabilities := a.Vulnerabilities
	if vulnerabilities == nil {
		vulnerabilities = []string{}
	}
	return map[string]any{
		"category":        a.Category.String(),
		"short_name":      a.ShortName,
		"long_name":       a.LongName,
		"pfs":             a.Pfs,
		"aead":            a.Aead,
		"vulnerabilities": vulnerabilities,
	}
}

func suiteRow(cs *directory.CipherSuite) map[string]any {
	refs := make([]any, 0, 5)
	for _, key := range cs.AlgorithmKeys() {
		refs = append(refs, map[string]any{
			"category":   key.Category.String(),
			"short_name": key.ShortName,
		})
	}
	return map[string]any{
		"name":             cs.Name,
		"code_point":       cs.CodePoint(),
		"tier":             cs.Tier.String(),
		"openssl_name":     cs.OpensslName,
		"gnutls_name":      cs.GnutlsName,
		"iana_recommended": cs.IanaRecommended,
		"algorithms":       refs,
	}
}
