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
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/siemens/GoCsInfo/utils"
)

const defaultWorkers = 4

// Observer gets notified about catalog activity, e.g. to update metrics
type Observer interface {
	SuiteRegistered(family Family)
	RegistrationFailed()
	RatingsRefreshed(counts map[Tier]int, duration time.Duration)
}

// Entry is a cipher suite as published by the IANA registry
type Entry struct {
	Name            string
	HexByte1        string
	HexByte2        string
	DtlsOk          bool
	IanaRecommended bool
	Rfcs            []int
	DraftRfcs       []int
}

// BatchResult summarizes a batch registration
type BatchResult struct {
	Registered int
	Skipped    int // Already existing
	Failed     int
	Status     string
}

// RefreshResult summarizes a rating refresh
type RefreshResult struct {
	RunId    string
	Counts   map[Tier]int // Number of cipher suites per tier
	Updated  int          // Number of cipher suites whose tier changed
	Duration time.Duration
}

// Catalog registers cipher suites and keeps their algorithm references and ratings consistent with the store
type Catalog struct {
	logger   utils.Logger
	store    Store
	observer Observer
	workers  int

	libraryMu    sync.RWMutex
	libraryNames map[Software]map[string]string // Software -> code point -> library name
}

// NewCatalog returns a catalog working on the given store. Workers limits the parallel classifications of a rating
// refresh, values below one fall back to a default. The observer may be nil.
func NewCatalog(logger utils.Logger, store Store, observer Observer, workers int) *Catalog {
	if workers < 1 {
		workers = defaultWorkers
	}
	return &Catalog{
		logger:   logger,
		store:    store,
		observer: observer,
		workers:  workers,
		libraryNames: map[Software]map[string]string{
			SoftwareOpenssl: {},
			SoftwareGnutls:  {},
		},
	}
}

func (c *Catalog) Store() Store {
	return c.store
}

// Register decomposes a new cipher suite name, resolves its algorithms and stores it
func (c *Catalog) Register(ctx context.Context, name string, hex1 string, hex2 string) (*CipherSuite, error) {
	return c.RegisterEntry(ctx, Entry{Name: name, HexByte1: hex1, HexByte2: hex2})
}

// RegisterEntry stores a new cipher suite together with its registry metadata. Names or code points that are already
// taken fail with ErrDuplicate.
func (c *Catalog) RegisterEntry(ctx context.Context, e Entry) (*CipherSuite, error) {

	// Validate input
	name := strings.TrimSpace(e.Name)
	if name == "" {
		return nil, fmt.Errorf("cipher suite name is empty")
	}
	hex1, hex2 := NormalizeHex(e.HexByte1), NormalizeHex(e.HexByte2)
	if !isHexOctet(hex1) || !isHexOctet(hex2) {
		return nil, fmt.Errorf("invalid code point '%s,%s' of '%s'", e.HexByte1, e.HexByte2, name)
	}

	// Reject taken names and code points before any algorithm gets created
	if errAvailable := c.checkAvailable(ctx, name, hex1, hex2); errAvailable != nil {
		return nil, errAvailable
	}

	// Derive and resolve algorithms
	d := Decompose(name, hex1, hex2)
	if _, errResolve := Resolve(ctx, c.store, d); errResolve != nil {
		return nil, errResolve
	}

	// Build cipher suite
	cs := &CipherSuite{
		Name:            name,
		HexByte1:        hex1,
		HexByte2:        hex2,
		TlsVersions:     DeriveTlsVersions(name, d),
		DtlsOk:          e.DtlsOk,
		IanaRecommended: e.IanaRecommended,
		Rfcs:            append(append([]int(nil), e.Rfcs...), e.DraftRfcs...),
	}
	applyDecomposition(cs, d)
	c.completeLibraryNames(cs)

	// Store cipher suite
	errCreate := c.store.CreateCipherSuite(ctx, cs)
	if errCreate != nil {
		return nil, errCreate
	}

	// Create RFC stubs to be completed later
	c.ensureRfcs(ctx, e.Rfcs, false)
	c.ensureRfcs(ctx, e.DraftRfcs, true)

	if c.observer != nil {
		c.observer.SuiteRegistered(d.Family)
	}
	c.logger.Debugf("Registered cipher suite '%s' (%s) as '%s'/'%s'/'%s'/'%s'/'%s'.",
		cs.Name, cs.CodePoint(), cs.Protocol, cs.KeyExchange, cs.Authentication, cs.Encryption, cs.Hash)
	return cs, nil
}

// checkAvailable fails with ErrDuplicate if the name or the code point is used already. CreateCipherSuite still
// decides concurrent registrations of the same suite.
func (c *Catalog) checkAvailable(ctx context.Context, name string, hex1 string, hex2 string) error {
	_, errName := c.store.GetCipherSuite(ctx, name)
	if errName == nil {
		return fmt.Errorf("cipher suite '%s': %w", name, ErrDuplicate)
	} else if !errors.Is(errName, ErrNotFound) {
		return errName
	}
	other, errCodePoint := c.store.GetCipherSuiteByCodePoint(ctx, hex1, hex2)
	if errCodePoint == nil {
		return fmt.Errorf("code point %s of '%s' taken by '%s': %w", other.CodePoint(), name, other.Name, ErrDuplicate)
	} else if !errors.Is(errCodePoint, ErrNotFound) {
		return errCodePoint
	}
	return nil
}

// RegisterBatch registers all entries. Failing entries are logged and counted, they never abort the batch. Only a
// cancelled context stops the batch early.
func (c *Catalog) RegisterBatch(ctx context.Context, entries []Entry) *BatchResult {
	res := &BatchResult{}
	for _, e := range entries {
		if ctx.Err() != nil {
			c.logger.Warningf("Registration aborted after %d of %d entries: %s",
				res.Registered+res.Skipped+res.Failed, len(entries), ctx.Err())
			break
		}
		errRegister := c.registerSafe(ctx, e)
		switch {
		case errRegister == nil:
			res.Registered++
		case errors.Is(errRegister, ErrDuplicate):
			res.Skipped++
		default:
			res.Failed++
			if c.observer != nil {
				c.observer.RegistrationFailed()
			}
			c.logger.Warningf("Could not register cipher suite '%s': %s", e.Name, errRegister)
		}
	}
	res.Status = utils.RunStatus(res.Registered+res.Skipped, res.Failed, errors.Is(ctx.Err(), context.DeadlineExceeded))
	c.logger.Infof("Registered %d cipher suites, skipped %d existing, %d failed.", res.Registered, res.Skipped, res.Failed)
	return res
}

// registerSafe converts a panic of a single registration into an error
func (c *Catalog) registerSafe(ctx context.Context, e Entry) (err error) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Errorf("Unexpected error registering '%s': %s%s", e.Name, r, utils.StacktraceIndented("\t"))
			err = fmt.Errorf("unexpected error: %v", r)
		}
	}()
	_, err = c.RegisterEntry(ctx, e)
	return err
}

// Rederive decomposes the name of an existing cipher suite again and updates its algorithm references. The tier is
// invalidated, as the referenced algorithms may have changed.
func (c *Catalog) Rederive(ctx context.Context, name string) (*CipherSuite, error) {
	cs, errGet := c.store.GetCipherSuite(ctx, name)
	if errGet != nil {
		return nil, errGet
	}
	d := Decompose(cs.Name, cs.HexByte1, cs.HexByte2)
	if _, errResolve := Resolve(ctx, c.store, d); errResolve != nil {
		return nil, errResolve
	}
	applyDecomposition(cs, d)
	cs.TlsVersions = DeriveTlsVersions(cs.Name, d)
	cs.Tier = TierUnrated
	if errSave := c.store.SaveCipherSuite(ctx, cs); errSave != nil {
		return nil, errSave
	}
	return cs, nil
}

// SaveVulnerability creates or updates a vulnerability. If the severity of an existing vulnerability changes, the
// tiers of all affected cipher suites are invalidated. Returns the number of invalidated cipher suites.
func (c *Catalog) SaveVulnerability(ctx context.Context, v *Vulnerability) (int, error) {
	v.Name = strings.TrimSpace(v.Name)
	if v.Name == "" {
		return 0, fmt.Errorf("vulnerability name is empty")
	}
	if !IsValidSeverity(v.Severity) {
		return 0, fmt.Errorf("invalid severity %d of vulnerability '%s'", v.Severity, v.Name)
	}
	previous, errSave := c.store.SaveVulnerability(ctx, v)
	if errSave != nil {
		return 0, errSave
	}
	if previous == nil || previous.Severity == v.Severity {
		return 0, nil
	}
	c.logger.Infof("Severity of '%s' changed from %s to %s.", v.Name, previous.Severity, v.Severity)
	return c.invalidate(ctx, v.Name)
}

// LinkVulnerability associates a vulnerability with an algorithm and invalidates the tiers of the cipher suites
// using that algorithm. Returns the number of invalidated cipher suites.
func (c *Catalog) LinkVulnerability(ctx context.Context, key AlgorithmKey, vulnerability string) (int, error) {
	key.ShortName = CanonicalShortName(key.ShortName)
	if errLink := c.store.LinkVulnerability(ctx, key, vulnerability); errLink != nil {
		return 0, errLink
	}
	return c.invalidate(ctx, vulnerability)
}

// invalidate resets the tier of every cipher suite referencing an algorithm linked to the vulnerability
func (c *Catalog) invalidate(ctx context.Context, vulnerability string) (int, error) {
	algorithms, errList := c.store.ListAlgorithms(ctx)
	if errList != nil {
		return 0, errList
	}
	affected := make(map[AlgorithmKey]struct{})
	for _, a := range algorithms {
		if utils.StrContained(vulnerability, a.Vulnerabilities) {
			affected[a.Key()] = struct{}{}
		}
	}
	if len(affected) == 0 {
		return 0, nil
	}

	suites, errSuites := c.store.ListCipherSuites(ctx)
	if errSuites != nil {
		return 0, errSuites
	}
	invalidated := 0
	for _, cs := range suites {
		if cs.Tier == TierUnrated || !referencesAny(cs, affected) {
			continue
		}
		cs.Tier = TierUnrated
		if errSave := c.store.SaveCipherSuite(ctx, cs); errSave != nil {
			return invalidated, errSave
		}
		invalidated++
	}
	c.logger.Debugf("Invalidated %d cipher suite ratings affected by '%s'.", invalidated, vulnerability)
	return invalidated, nil
}

// Rate classifies a single cipher suite on demand and stores the tier
func (c *Catalog) Rate(ctx context.Context, name string) (Tier, string, error) {
	cs, errGet := c.store.GetCipherSuite(ctx, name)
	if errGet != nil {
		return TierUnrated, "", errGet
	}
	snapshot, errSnapshot := TakeSnapshot(ctx, c.store)
	if errSnapshot != nil {
		return TierUnrated, "", errSnapshot
	}
	tier, reason := ClassifyExplained(snapshot.RatedSuite(cs))
	if cs.Tier != tier {
		cs.Tier = tier
		if errSave := c.store.SaveCipherSuite(ctx, cs); errSave != nil {
			return TierUnrated, "", errSave
		}
	}
	return tier, reason, nil
}

// RefreshRatings classifies all cipher suites against one snapshot of the vulnerability graph. Classification runs
// in parallel, the changed tiers are written sequentially afterwards.
func (c *Catalog) RefreshRatings(ctx context.Context) (*RefreshResult, error) {
	runId := uuid.New().String()
	logger := utils.NewTaggedLogger(c.logger, "refresh-"+runId[:8])
	started := time.Now()
	logger.Infof("Started  rating refresh.")

	// Take snapshot
	snapshot, errSnapshot := TakeSnapshot(ctx, c.store)
	if errSnapshot != nil {
		return nil, errSnapshot
	}
	suites, errSuites := c.store.ListCipherSuites(ctx)
	if errSuites != nil {
		return nil, fmt.Errorf("could not list cipher suites: %w", errSuites)
	}

	// Classify in parallel
	tiers := make([]Tier, len(suites))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, cs := range suites {
		g.Go(func() error {
			if errCtx := gctx.Err(); errCtx != nil {
				return errCtx
			}
			tiers[i] = Classify(snapshot.RatedSuite(cs))
			return nil
		})
	}
	if errWait := g.Wait(); errWait != nil {
		return nil, fmt.Errorf("rating refresh aborted: %w", errWait)
	}

	// Write changed tiers
	res := &RefreshResult{RunId: runId, Counts: make(map[Tier]int, 4)}
	for i, cs := range suites {
		res.Counts[tiers[i]]++
		if cs.Tier == tiers[i] {
			continue
		}
		cs.Tier = tiers[i]
		if errSave := c.store.SaveCipherSuite(ctx, cs); errSave != nil {
			return nil, fmt.Errorf("could not store tier of '%s': %w", cs.Name, errSave)
		}
		res.Updated++
	}
	res.Duration = time.Since(started)

	if c.observer != nil {
		c.observer.RatingsRefreshed(res.Counts, res.Duration)
	}
	logger.Infof("Finished rating refresh of %d cipher suites in %s, %d changed.", len(suites), res.Duration, res.Updated)
	for _, t := range Tiers() {
		logger.Infof("  - %d rated '%s'", res.Counts[t], t)
	}
	return res, nil
}

// ApplyLibraryNames sets the library specific names of all stored cipher suites with a matching code point. The
// names are remembered for cipher suites registered later. Returns the number of updated cipher suites.
func (c *Catalog) ApplyLibraryNames(ctx context.Context, software Software, ciphers []LibraryCipher) (int, error) {
	c.libraryMu.Lock()
	names, ok := c.libraryNames[software]
	if !ok {
		c.libraryMu.Unlock()
		return 0, fmt.Errorf("invalid software '%s'", software)
	}
	for _, lc := range ciphers {
		names[lc.CodePoint()] = lc.Name
	}
	c.libraryMu.Unlock()

	suites, errSuites := c.store.ListCipherSuites(ctx)
	if errSuites != nil {
		return 0, errSuites
	}
	updated := 0
	for _, cs := range suites {
		before := cs.OpensslName + "|" + cs.GnutlsName
		c.completeLibraryNames(cs)
		if before == cs.OpensslName+"|"+cs.GnutlsName {
			continue
		}
		if errSave := c.store.SaveCipherSuite(ctx, cs); errSave != nil {
			return updated, errSave
		}
		updated++
	}
	c.logger.Infof("Applied %d %s cipher names to %d cipher suites.", len(ciphers), software, updated)
	return updated, nil
}

func (c *Catalog) completeLibraryNames(cs *CipherSuite) {
	c.libraryMu.RLock()
	defer c.libraryMu.RUnlock()
	if name, ok := c.libraryNames[SoftwareOpenssl][cs.CodePoint()]; ok {
		cs.OpensslName = name
	}
	if name, ok := c.libraryNames[SoftwareGnutls][cs.CodePoint()]; ok {
		cs.GnutlsName = name
	}
}

// SuiteByOpensslName looks up a cipher suite by its OpenSSL name, as reported by scanners like SSLyze
func (c *Catalog) SuiteByOpensslName(ctx context.Context, name string) (*CipherSuite, error) {
	suites, errSuites := c.store.ListCipherSuites(ctx)
	if errSuites != nil {
		return nil, errSuites
	}
	for _, cs := range suites {
		if cs.OpensslName != "" && cs.OpensslName == name {
			return cs, nil
		}
	}
	return nil, fmt.Errorf("cipher suite with OpenSSL name '%s': %w", name, ErrNotFound)
}

// AffectedSuites returns the cipher suites referencing an algorithm linked to the vulnerability
func (c *Catalog) AffectedSuites(ctx context.Context, vulnerability string) ([]*CipherSuite, error) {
	if _, errGet := c.store.GetVulnerability(ctx, vulnerability); errGet != nil {
		return nil, errGet
	}
	snapshot, errSnapshot := TakeSnapshot(ctx, c.store)
	if errSnapshot != nil {
		return nil, errSnapshot
	}
	suites, errSuites := c.store.ListCipherSuites(ctx)
	if errSuites != nil {
		return nil, errSuites
	}
	affected := make([]*CipherSuite, 0)
	for _, cs := range suites {
		if utils.StrContained(vulnerability, snapshot.Vulnerabilities(cs)) {
			affected = append(affected, cs)
		}
	}
	return affected, nil
}

// ensureRfcs creates placeholder records for unknown RFCs
func (c *Catalog) ensureRfcs(ctx context.Context, numbers []int, draft bool) {
	for _, number := range numbers {
		_, errGet := c.store.GetRfc(ctx, number)
		if errGet == nil {
			continue
		}
		if !errors.Is(errGet, ErrNotFound) {
			c.logger.Warningf("Could not look up RFC %d: %s", number, errGet)
			continue
		}
		if errSave := c.store.SaveRfc(ctx, &Rfc{Number: number, IsDraft: draft}); errSave != nil {
			c.logger.Warningf("Could not create RFC %d: %s", number, errSave)
		}
	}
}

func applyDecomposition(cs *CipherSuite, d Decomposition) {
	cs.Protocol = d.Protocol
	cs.KeyExchange = d.KeyExchange
	cs.Authentication = d.Authentication
	cs.Encryption = d.Encryption
	cs.Hash = d.Hash
}

func referencesAny(cs *CipherSuite, keys map[AlgorithmKey]struct{}) bool {
	for _, key := range cs.AlgorithmKeys() {
		if _, ok := keys[key]; ok {
			return true
		}
	}
	return false
}

// isHexOctet checks for a normalized octet like 0xC0
func isHexOctet(s string) bool {
	if len(s) != 4 || !strings.HasPrefix(s, "0x") {
		return false
	}
	return strings.Trim(s[2:], "0123456789ABCDEF") == ""
}
