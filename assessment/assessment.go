/*
* GoCsInfo, a directory of TLS cipher suites, RFCs and the cryptographic algorithms they are built from.
*
* Copyright (c) Siemens AG, 2016-2024.
*
* This work is licensed under the terms of the MIT license. For a copy, see the LICENSE file in the top-level
* directory or visit <https://opensource.org/licenses/MIT>.
*
 */

// Package assessment rates the cipher suites a TLS endpoint accepted during an SSLyze scan against the catalog
package assessment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/noneymous/GoSslyze"

	"github.com/siemens/GoCsInfo/directory"
	"github.com/siemens/GoCsInfo/utils"
)

const label = "Assessment"

// Lookup resolves the cipher suites reported by SSLyze. It is satisfied by *directory.Catalog.
type Lookup interface {
	SuiteByOpensslName(ctx context.Context, name string) (*directory.CipherSuite, error)
	Rate(ctx context.Context, name string) (directory.Tier, string, error)
}

// Finding is an accepted cipher suite known to the catalog
type Finding struct {
	Version     directory.TlsVersion `json:"tls_version"`
	OpensslName string               `json:"openssl_name"`
	Name        string               `json:"name"` // IANA name
	KeySize     int                  `json:"key_size"`
	Preferred   bool                 `json:"preferred"`
	Tier        directory.Tier       `json:"security"`
	Reason      string               `json:"reason,omitempty"`
}

type Result struct {
	Target   string     `json:"target"`
	Findings []*Finding `json:"findings"`

	// Accepted cipher suites not known to the catalog, formatted 'version|openssl name'
	Unknown []string `json:"unknown"`

	Worst  directory.Tier `json:"worst"`
	Issues *Issues        `json:"issues"`

	// Final assessment status (success or graceful error)
	Status string `json:"status"`

	// Indicates if something went wrong badly and results shall be discarded. Logging an error message always
	// precedes setting this flag!
	Exception bool `json:"exception"`
}

type Assessor struct {
	Label    string
	Started  time.Time
	Finished time.Time
	logger   utils.Logger
	lookup   Lookup
	target   string    // Name of the assessed endpoint, for logging and reporting
	deadline time.Time // Time when the assessment has to abort
}

func NewAssessor(
	logger utils.Logger, // Can be any logger implementing our minimalistic interface
	lookup Lookup,
	target string,
) (*Assessor, error) {

	// Check input
	if lookup == nil {
		return nil, fmt.Errorf("cipher suite lookup is nil")
	}
	target = strings.TrimSpace(target)
	if target == "" {
		return nil, fmt.Errorf("target name is empty")
	}

	return &Assessor{
		Label:  label,
		logger: utils.NewTaggedLogger(logger, target),
		lookup: lookup,
		target: target,
	}, nil
}

// Run assesses an SSLyze scan result. Panics are recovered and reported as exception.
func (a *Assessor) Run(ctx context.Context, hostResult *gosslyze.HostResult, timeout time.Duration) *Result {
	return a.run(timeout, func() *Result {
		return a.execute(ctx, hostResult)
	})
}

// RunOffers assesses cipher suites collected by other means than SSLyze, e.g. submitted via the API
func (a *Assessor) RunOffers(ctx context.Context, offers []Offer, timeout time.Duration) *Result {
	return a.run(timeout, func() *Result {
		return a.evaluate(ctx, offers)
	})
}

func (a *Assessor) run(timeout time.Duration, assess func() *Result) (res *Result) {

	// Recover potential panics to gracefully shut down the assessment
	defer func() {
		if r := recover(); r != nil {

			// Log exception with stacktrace
			a.logger.Errorf("Unexpected error: %s", r)

			// Build error status from error message and formatted stacktrace
			errMsg := fmt.Sprintf("%s%s", r, utils.StacktraceIndented("\t"))

			// Return result set indicating exception
			res = &Result{
				Target:    a.target,
				Status:    errMsg,
				Exception: true,
			}
		}
	}()

	// Set started flag and calculate deadline
	a.Started = time.Now()
	a.deadline = utils.DeadlineFromTimeout(timeout)
	a.logger.Infof("Started  assessment of %s.", a.target)

	// Execute assessment logic
	res = assess()

	// Log completion message
	a.Finished = time.Now()
	a.logger.Infof("Finished assessment of %s in %s.", a.target, a.Finished.Sub(a.Started))

	return res
}

func (a *Assessor) execute(ctx context.Context, hostResult *gosslyze.HostResult) *Result {

	// Check for nil pointer exceptions
	if hostResult == nil {
		a.logger.Warningf("Provided SSLyze result is nil.")
		return a.newResult(utils.StatusCompleted)
	}

	// Check whether SSLyze has any results
	if len(hostResult.Targets) == 0 {
		a.logger.Debugf("Did not get any results.")
		return a.newResult(utils.StatusCompleted)
	}

	// A separate SSLyze scan is expected for every target
	if len(hostResult.Targets) > 1 {
		a.logger.Warningf("Found multiple targets, only assessing first one.")
	}
	offers, errOffers := collectOffers(a.logger, &hostResult.Targets[0].ScanResult)
	if errOffers != nil {
		a.logger.Warningf("Could not collect accepted cipher suites: %s", errOffers)
		return a.newResult(utils.StatusFailed)
	}

	return a.evaluate(ctx, offers)
}

// evaluate looks up and rates the offered cipher suites
func (a *Assessor) evaluate(ctx context.Context, offers []Offer) *Result {
	res := a.newResult(utils.StatusCompleted)

	rated := 0
	for _, offer := range offers {

		// Check whether deadline is reached
		if utils.DeadlineReached(a.deadline) || ctx.Err() != nil {
			a.logger.Debugf("Assessment ran into timeout.")
			res.Status = utils.StatusDeadline
			break
		}

		// Look up cipher suite
		cs, errLookup := a.lookup.SuiteByOpensslName(ctx, offer.OpensslName)
		if errors.Is(errLookup, directory.ErrNotFound) {
			a.logger.Debugf("Unknown cipher suite '%s' accepted with %s.", offer.OpensslName, offer.Version)
			res.Unknown = utils.AppendUnique(res.Unknown, offer.Version.String()+"|"+offer.OpensslName)
			continue
		}
		if errLookup != nil {
			a.logger.Warningf("Could not look up cipher suite '%s': %s", offer.OpensslName, errLookup)
			res.Status = utils.StatusFailed
			continue
		}

		// Rate cipher suites without valid rating on demand
		finding := &Finding{
			Version:     offer.Version,
			OpensslName: offer.OpensslName,
			Name:        cs.Name,
			KeySize:     offer.KeySize,
			Preferred:   offer.Preferred,
			Tier:        cs.Tier,
		}
		if finding.Tier == directory.TierUnrated {
			tier, reason, errRate := a.lookup.Rate(ctx, cs.Name)
			if errRate != nil {
				a.logger.Warningf("Could not rate cipher suite '%s': %s", cs.Name, errRate)
			} else {
				finding.Tier, finding.Reason = tier, reason
			}
		}

		addIssues(res.Issues, cs, offer.Version)
		res.Findings = append(res.Findings, finding)
		res.Worst = worse(res.Worst, finding.Tier)
		rated++
	}

	a.logger.Debugf("Rated %d accepted cipher suites, %d unknown, worst '%s'.", rated, len(res.Unknown), res.Worst)
	return res
}

func (a *Assessor) newResult(status string) *Result {
	return &Result{
		Target:   a.target,
		Findings: make([]*Finding, 0),
		Unknown:  make([]string, 0),
		Worst:    directory.TierUnrated,
		Issues:   new(Issues),
		Status:   status,
	}
}

// worse returns the worse of two tiers. Unrated counts as Secure, so an unrated cipher suite never looks better
// than a rated one. The current tier is unrated only as long as there are no findings.
func worse(current directory.Tier, candidate directory.Tier) directory.Tier {
	if candidate == directory.TierUnrated {
		candidate = directory.TierSecure
	}
	if current == directory.TierUnrated || candidate > current {
		return candidate
	}
	return current
}

// Assess is a shortcut running an assessment without timeout
func Assess(ctx context.Context, logger utils.Logger, lookup Lookup, target string, hostResult *gosslyze.HostResult) (*Result, error) {
	assessor, errNew := NewAssessor(logger, lookup, target)
	if errNew != nil {
		return nil, errNew
	}
	return assessor.Run(ctx, hostResult, 0), nil
}
