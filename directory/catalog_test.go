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
	"sync"
	"testing"

	"github.com/siemens/GoCsInfo/utils"
)

var testEntries = []Entry{
	{Name: "TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256", HexByte1: "0xC0", HexByte2: "0x2F", IanaRecommended: true, Rfcs: []int{5289}},
	{Name: "TLS_ECDHE_RSA_WITH_AES_128_CBC_SHA", HexByte1: "0xC0", HexByte2: "0x13", Rfcs: []int{8422}},
	{Name: "TLS_RSA_WITH_RC4_128_MD5", HexByte1: "0x00", HexByte2: "0x04", Rfcs: []int{5246, 6347}},
	{Name: "TLS_RSA_WITH_3DES_EDE_CBC_SHA", HexByte1: "0x00", HexByte2: "0x0A", Rfcs: []int{5246}},
	{Name: "TLS_AES_128_GCM_SHA256", HexByte1: "0x13", HexByte2: "0x01", IanaRecommended: true, Rfcs: []int{8446}},
	{Name: "TLS_DHE_RSA_WITH_AES_256_CCM_8", HexByte1: "0xC0", HexByte2: "0xA3", Rfcs: []int{6655}},
}

var testVulnerabilities = []struct {
	vulnerability Vulnerability
	links         []AlgorithmKey
}{
	{Vulnerability{Name: "Rivest Cipher 4", Description: "RC4 biases", Severity: SeverityHigh},
		[]AlgorithmKey{{CategoryEncryption, "RC4 128"}}},
	{Vulnerability{Name: "Message Digest 5", Description: "MD5 collisions", Severity: SeverityHigh},
		[]AlgorithmKey{{CategoryHash, "MD5"}}},
	{Vulnerability{Name: "Secure Hash Algorithm 1", Description: "SHA1 collisions", Severity: SeverityMedium},
		[]AlgorithmKey{{CategoryHash, "SHA"}}},
	{Vulnerability{Name: "Sweet32", Description: "64 bit block size", Severity: SeverityMedium},
		[]AlgorithmKey{{CategoryEncryption, "3DES EDE CBC"}}},
	{Vulnerability{Name: "Non-Forward Secrecy", Description: "Static key exchange", Severity: SeverityLow},
		[]AlgorithmKey{{CategoryKeyExchange, "RSA"}}},
}

// newTestCatalog returns a catalog with the test entries registered and the test vulnerabilities linked
func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	ctx := context.Background()
	catalog := NewCatalog(utils.NewTestLogger(), NewMemoryStore(), nil, 2)

	res := catalog.RegisterBatch(ctx, testEntries)
	if res.Registered != len(testEntries) {
		t.Fatalf("RegisterBatch() registered %d of %d", res.Registered, len(testEntries))
	}
	for _, tv := range testVulnerabilities {
		v := tv.vulnerability
		if _, err := catalog.SaveVulnerability(ctx, &v); err != nil {
			t.Fatalf("SaveVulnerability() error = '%v'", err)
		}
		for _, key := range tv.links {
			if _, err := catalog.LinkVulnerability(ctx, key, v.Name); err != nil {
				t.Fatalf("LinkVulnerability() error = '%v'", err)
			}
		}
	}
	return catalog
}

func tierOf(t *testing.T, catalog *Catalog, name string) Tier {
	t.Helper()
	cs, err := catalog.Store().GetCipherSuite(context.Background(), name)
	if err != nil {
		t.Fatalf("GetCipherSuite() error = '%v'", err)
	}
	return cs.Tier
}

func TestCatalog_Register(t *testing.T) {

	// Prepare test variables
	ctx := context.Background()
	catalog := NewCatalog(utils.NewTestLogger(), NewMemoryStore(), nil, 0)

	// Register two suites sharing their key exchange
	cs, err := catalog.Register(ctx, "TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256", "c0", "2f")
	if err != nil {
		t.Fatalf("Register() error = '%v'", err)
	}
	if cs.HexByte1 != "0xC0" || cs.HexByte2 != "0x2F" {
		t.Errorf("Register() code point = '%s', want = '0xC0,0x2F'", cs.CodePoint())
	}
	if cs.Tier != TierUnrated {
		t.Errorf("Register() tier = '%v', want = '%v'", cs.Tier, TierUnrated)
	}
	if _, err = catalog.Register(ctx, "TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384", "0xC0", "0x2C"); err != nil {
		t.Fatalf("Register() error = '%v'", err)
	}

	// Shared algorithms must exist once only
	algorithms, _ := catalog.Algorithms(ctx, CategoryKeyExchange)
	if len(algorithms) != 1 || algorithms[0].ShortName != "ECDHE" || !algorithms[0].Pfs {
		t.Errorf("Algorithms() = '%v', want exactly one forward secret 'ECDHE'", algorithms)
	}
	encryptions, _ := catalog.Algorithms(ctx, CategoryEncryption)
	if len(encryptions) != 2 || !encryptions[0].Aead || !encryptions[1].Aead {
		t.Errorf("Algorithms() = '%v', want two AEAD encryption algorithms", encryptions)
	}

	// Duplicates must be rejected without creating algorithms
	before, _ := catalog.Store().ListAlgorithms(ctx)
	if _, err = catalog.Register(ctx, "TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256", "0xC0", "0x30"); !errors.Is(err, ErrDuplicate) {
		t.Errorf("Register() duplicate name error = '%v', want = '%v'", err, ErrDuplicate)
	}
	if _, err = catalog.Register(ctx, "TLS_OTHER_WITH_AES_128_GCM_SHA256", "0xC0", "0x2F"); !errors.Is(err, ErrDuplicate) {
		t.Errorf("Register() duplicate code point error = '%v', want = '%v'", err, ErrDuplicate)
	}
	if _, err = catalog.Register(ctx, "TLS_FOO_WITH_BAR_BAZ", "0xC0", "0x2F"); !errors.Is(err, ErrDuplicate) {
		t.Errorf("Register() duplicate code point error = '%v', want = '%v'", err, ErrDuplicate)
	}
	after, _ := catalog.Store().ListAlgorithms(ctx)
	if len(after) != len(before) {
		t.Errorf("ListAlgorithms() after rejected registrations = %d algorithms, want = %d", len(after), len(before))
	}

	// Invalid input must be rejected
	if _, err = catalog.Register(ctx, "TLS_RSA_WITH_NULL_MD5", "0xZZ", "0x01"); err == nil {
		t.Errorf("Register() with invalid code point should fail")
	}
	if _, err = catalog.Register(ctx, " ", "0x00", "0x01"); err == nil {
		t.Errorf("Register() with empty name should fail")
	}
}

func TestCatalog_RegisterConcurrent(t *testing.T) {

	// Prepare test variables
	ctx := context.Background()
	store := NewMemoryStore()
	catalog := NewCatalog(utils.NewTestLogger(), store, nil, 0)

	// Register suites sharing key exchange and hash in parallel
	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("TLS_ECDHE_RSA_WITH_CIPHER%d_GCM_SHA256", i)
			if _, err := catalog.Register(ctx, name, "0xE0", fmt.Sprintf("0x%02X", i)); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("Register() error = '%v'", err)
	}

	// Check there is exactly one instance of every shared algorithm
	algorithms, _ := store.ListAlgorithms(ctx)
	counts := make(map[AlgorithmKey]int)
	for _, a := range algorithms {
		counts[a.Key()]++
	}
	for _, key := range []AlgorithmKey{
		{CategoryProtocol, "TLS"},
		{CategoryKeyExchange, "ECDHE"},
		{CategoryAuthentication, "RSA"},
		{CategoryHash, "SHA256"},
	} {
		if counts[key] != 1 {
			t.Errorf("algorithm '%s' stored %d times, want once", key, counts[key])
		}
	}
	if len(algorithms) != 4+32 {
		t.Errorf("ListAlgorithms() = %d algorithms, want = %d", len(algorithms), 4+32)
	}
}

func TestCatalog_RegisterBatch(t *testing.T) {

	// Prepare test variables
	ctx := context.Background()
	catalog := NewCatalog(utils.NewTestLogger(), NewMemoryStore(), nil, 0)
	entries := []Entry{
		{Name: "TLS_RSA_WITH_AES_128_CBC_SHA", HexByte1: "0x00", HexByte2: "0x2F", DraftRfcs: []int{4492}},
		{Name: "TLS_RSA_WITH_AES_128_CBC_SHA", HexByte1: "0x00", HexByte2: "0x2F"},
		{Name: "TLS_BROKEN", HexByte1: "invalid", HexByte2: "0x00"},
		{Name: "TLS_RSA_WITH_AES_256_CBC_SHA", HexByte1: "0x00", HexByte2: "0x35", Rfcs: []int{5246}},
	}

	// Run batch
	res := catalog.RegisterBatch(ctx, entries)
	if res.Registered != 2 || res.Skipped != 1 || res.Failed != 1 {
		t.Errorf("RegisterBatch() = %+v, want 2 registered, 1 skipped, 1 failed", res)
	}
	if res.Status != utils.StatusPartial {
		t.Errorf("RegisterBatch() status = '%v', want = '%v'", res.Status, utils.StatusPartial)
	}

	// RFC stubs must have been created
	rfc, err := catalog.Store().GetRfc(ctx, 4492)
	if err != nil || !rfc.IsDraft {
		t.Errorf("GetRfc() = '%v', '%v', want draft stub", rfc, err)
	}
	if _, err = catalog.Store().GetRfc(ctx, 5246); err != nil {
		t.Errorf("GetRfc() error = '%v'", err)
	}

	// Cancelled context must stop the batch
	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	res = catalog.RegisterBatch(cancelled, []Entry{{Name: "TLS_RSA_WITH_NULL_SHA", HexByte1: "0x00", HexByte2: "0x02"}})
	if res.Registered != 0 {
		t.Errorf("RegisterBatch() with cancelled context registered %d", res.Registered)
	}
}

func TestCatalog_RefreshRatings(t *testing.T) {

	// Prepare test variables
	ctx := context.Background()
	catalog := newTestCatalog(t)

	// Refresh ratings
	res, err := catalog.RefreshRatings(ctx)
	if err != nil {
		t.Fatalf("RefreshRatings() error = '%v'", err)
	}
	if res.Updated != len(testEntries) || res.RunId == "" {
		t.Errorf("RefreshRatings() = %+v", res)
	}

	// Check tiers
	want := map[string]Tier{
		"TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256": TierRecommended,
		"TLS_ECDHE_RSA_WITH_AES_128_CBC_SHA":    TierWeak,
		"TLS_RSA_WITH_RC4_128_MD5":              TierInsecure,
		"TLS_RSA_WITH_3DES_EDE_CBC_SHA":         TierWeak,
		"TLS_AES_128_GCM_SHA256":                TierSecure,
		"TLS_DHE_RSA_WITH_AES_256_CCM_8":        TierSecure,
	}
	counts := make(map[Tier]int)
	for name, tier := range want {
		counts[tier]++
		if got := tierOf(t, catalog, name); got != tier {
			t.Errorf("tier of '%s' = '%v', want = '%v'", name, got, tier)
		}
	}
	for tier, count := range counts {
		if res.Counts[tier] != count {
			t.Errorf("RefreshRatings() count of '%v' = %d, want = %d", tier, res.Counts[tier], count)
		}
	}

	// Second refresh with unchanged input must not change anything
	res, err = catalog.RefreshRatings(ctx)
	if err != nil || res.Updated != 0 {
		t.Errorf("RefreshRatings() repeated = %+v, '%v', want no updates", res, err)
	}
}

func TestCatalog_SaveVulnerability(t *testing.T) {

	// Prepare test variables
	ctx := context.Background()
	catalog := newTestCatalog(t)
	if _, err := catalog.RefreshRatings(ctx); err != nil {
		t.Fatalf("RefreshRatings() error = '%v'", err)
	}

	// Changing the description only must not invalidate anything
	invalidated, err := catalog.SaveVulnerability(ctx, &Vulnerability{Name: "Sweet32", Description: "changed", Severity: SeverityMedium})
	if err != nil || invalidated != 0 {
		t.Errorf("SaveVulnerability() = %d, '%v', want no invalidation", invalidated, err)
	}

	// Raising the severity must invalidate the affected suite only
	invalidated, err = catalog.SaveVulnerability(ctx, &Vulnerability{Name: "Sweet32", Description: "changed", Severity: SeverityHigh})
	if err != nil || invalidated != 1 {
		t.Errorf("SaveVulnerability() = %d, '%v', want one invalidation", invalidated, err)
	}
	if got := tierOf(t, catalog, "TLS_RSA_WITH_3DES_EDE_CBC_SHA"); got != TierUnrated {
		t.Errorf("tier of affected suite = '%v', want = '%v'", got, TierUnrated)
	}
	if got := tierOf(t, catalog, "TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256"); got != TierRecommended {
		t.Errorf("tier of unrelated suite = '%v', want = '%v'", got, TierRecommended)
	}

	// Next refresh computes the new tier
	if _, err = catalog.RefreshRatings(ctx); err != nil {
		t.Fatalf("RefreshRatings() error = '%v'", err)
	}
	if got := tierOf(t, catalog, "TLS_RSA_WITH_3DES_EDE_CBC_SHA"); got != TierInsecure {
		t.Errorf("tier after refresh = '%v', want = '%v'", got, TierInsecure)
	}

	// Vulnerabilities of algorithms not referenced must not touch the tier
	unused, _ := catalog.Store().ResolveAlgorithm(ctx, AlgorithmRef{Category: CategoryKeyExchange, ShortName: "KRB5"})
	if _, err = catalog.SaveVulnerability(ctx, &Vulnerability{Name: "Kerberos", Severity: SeverityHigh}); err != nil {
		t.Fatalf("SaveVulnerability() error = '%v'", err)
	}
	if _, err = catalog.LinkVulnerability(ctx, unused.Key(), "Kerberos"); err != nil {
		t.Fatalf("LinkVulnerability() error = '%v'", err)
	}
	if _, err = catalog.RefreshRatings(ctx); err != nil {
		t.Fatalf("RefreshRatings() error = '%v'", err)
	}
	if got := tierOf(t, catalog, "TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256"); got != TierRecommended {
		t.Errorf("tier after unrelated change = '%v', want = '%v'", got, TierRecommended)
	}

	// Invalid input must be rejected
	if _, err = catalog.SaveVulnerability(ctx, &Vulnerability{Name: "Invalid"}); err == nil {
		t.Errorf("SaveVulnerability() without severity should fail")
	}
	if _, err = catalog.LinkVulnerability(ctx, AlgorithmKey{CategoryHash, "MD4"}, "Kerberos"); !errors.Is(err, ErrNotFound) {
		t.Errorf("LinkVulnerability() of unknown algorithm error = '%v', want = '%v'", err, ErrNotFound)
	}
}

func TestCatalog_Rate(t *testing.T) {
	ctx := context.Background()
	catalog := newTestCatalog(t)

	tier, rule, err := catalog.Rate(ctx, "TLS_RSA_WITH_RC4_128_MD5")
	if err != nil {
		t.Fatalf("Rate() error = '%v'", err)
	}
	if tier != TierInsecure || rule != RuleHighSeverity {
		t.Errorf("Rate() = '%v', '%v', want = '%v', '%v'", tier, rule, TierInsecure, RuleHighSeverity)
	}
	if got := tierOf(t, catalog, "TLS_RSA_WITH_RC4_128_MD5"); got != TierInsecure {
		t.Errorf("stored tier = '%v', want = '%v'", got, TierInsecure)
	}
	if _, _, err = catalog.Rate(ctx, "TLS_UNKNOWN"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Rate() of unknown suite error = '%v', want = '%v'", err, ErrNotFound)
	}
}

func TestCatalog_Rederive(t *testing.T) {
	ctx := context.Background()
	catalog := newTestCatalog(t)
	if _, err := catalog.RefreshRatings(ctx); err != nil {
		t.Fatalf("RefreshRatings() error = '%v'", err)
	}

	cs, err := catalog.Rederive(ctx, "TLS_DHE_RSA_WITH_AES_256_CCM_8")
	if err != nil {
		t.Fatalf("Rederive() error = '%v'", err)
	}
	if cs.Encryption != "AES 256 CCM 8" || cs.Hash != "SHA256" || cs.Tier != TierUnrated {
		t.Errorf("Rederive() = %+v", cs)
	}
}

func TestCatalog_ApplyLibraryNames(t *testing.T) {
	ctx := context.Background()
	catalog := newTestCatalog(t)

	updated, err := catalog.ApplyLibraryNames(ctx, SoftwareOpenssl, []LibraryCipher{
		{Name: "ECDHE-RSA-AES128-GCM-SHA256", HexByte1: "0xc0", HexByte2: "0x2f", MinTlsVersion: "TLS1.2"},
		{Name: "SOME-UNKNOWN-CIPHER", HexByte1: "0xFF", HexByte2: "0xFE", MinTlsVersion: "TLS1.2"},
	})
	if err != nil || updated != 1 {
		t.Errorf("ApplyLibraryNames() = %d, '%v', want one update", updated, err)
	}

	// Lookup by library name
	cs, err := catalog.SuiteByOpensslName(ctx, "ECDHE-RSA-AES128-GCM-SHA256")
	if err != nil || cs.Name != "TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256" {
		t.Errorf("SuiteByOpensslName() = '%v', '%v'", cs, err)
	}
	if _, err = catalog.SuiteByOpensslName(ctx, "UNKNOWN"); !errors.Is(err, ErrNotFound) {
		t.Errorf("SuiteByOpensslName() error = '%v', want = '%v'", err, ErrNotFound)
	}

	// Names are remembered for later registrations
	if _, err = catalog.ApplyLibraryNames(ctx, SoftwareGnutls, []LibraryCipher{
		{Name: "TLS_ECDHE_ECDSA_AES_256_GCM_SHA384", HexByte1: "0xC0", HexByte2: "0x2C"},
	}); err != nil {
		t.Fatalf("ApplyLibraryNames() error = '%v'", err)
	}
	cs, err = catalog.Register(ctx, "TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384", "0xC0", "0x2C")
	if err != nil || cs.GnutlsName != "TLS_ECDHE_ECDSA_AES_256_GCM_SHA384" {
		t.Errorf("Register() = '%v', '%v', want GnuTLS name", cs, err)
	}

	if _, err = catalog.ApplyLibraryNames(ctx, Software("libressl"), nil); err == nil {
		t.Errorf("ApplyLibraryNames() with invalid software should fail")
	}
}

func TestCatalog_Suites(t *testing.T) {

	// Prepare test variables
	ctx := context.Background()
	catalog := newTestCatalog(t)
	if _, err := catalog.RefreshRatings(ctx); err != nil {
		t.Fatalf("RefreshRatings() error = '%v'", err)
	}

	// Prepare and run test cases
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"all", Filter{}, []string{
			"TLS_AES_128_GCM_SHA256",
			"TLS_DHE_RSA_WITH_AES_256_CCM_8",
			"TLS_ECDHE_RSA_WITH_AES_128_CBC_SHA",
			"TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256",
			"TLS_RSA_WITH_3DES_EDE_CBC_SHA",
			"TLS_RSA_WITH_RC4_128_MD5",
		}},
		{"tier", Filter{Tiers: []Tier{TierWeak, TierInsecure}}, []string{
			"TLS_ECDHE_RSA_WITH_AES_128_CBC_SHA",
			"TLS_RSA_WITH_3DES_EDE_CBC_SHA",
			"TLS_RSA_WITH_RC4_128_MD5",
		}},
		{"tls13", Filter{TlsVersion: Tlsv1_3}, []string{"TLS_AES_128_GCM_SHA256"}},
		{"kex-term", Filter{Category: CategoryKeyExchange, Term: "ecdhe"}, []string{
			"TLS_ECDHE_RSA_WITH_AES_128_CBC_SHA",
			"TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256",
		}},
		{"search-vulnerability", Filter{Search: "sweet32"}, []string{"TLS_RSA_WITH_3DES_EDE_CBC_SHA"}},
		{"search-words", Filter{Search: "RSA GCM"}, []string{"TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256"}},
		{"descending", Filter{Tiers: []Tier{TierWeak}, Descending: true}, []string{
			"TLS_RSA_WITH_3DES_EDE_CBC_SHA",
			"TLS_ECDHE_RSA_WITH_AES_128_CBC_SHA",
		}},
		{"software", Filter{Software: SoftwareOpenssl}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			suites, err := catalog.Suites(ctx, tt.filter)
			if err != nil {
				t.Fatalf("Suites() error = '%v'", err)
			}
			got := make([]string, 0, len(suites))
			for _, cs := range suites {
				got = append(got, cs.Name)
			}
			if !utils.Equals(got, tt.want) {
				t.Errorf("Suites() = '%v', want = '%v'", got, tt.want)
			}
		})
	}
}

func TestCatalog_AffectedSuites(t *testing.T) {
	ctx := context.Background()
	catalog := newTestCatalog(t)

	suites, err := catalog.AffectedSuites(ctx, "Secure Hash Algorithm 1")
	if err != nil {
		t.Fatalf("AffectedSuites() error = '%v'", err)
	}
	got := make([]string, 0, len(suites))
	for _, cs := range suites {
		got = append(got, cs.Name)
	}
	want := []string{"TLS_ECDHE_RSA_WITH_AES_128_CBC_SHA", "TLS_RSA_WITH_3DES_EDE_CBC_SHA"}
	if !utils.Equals(got, want) {
		t.Errorf("AffectedSuites() = '%v', want = '%v'", got, want)
	}
	if _, err = catalog.AffectedSuites(ctx, "Unknown"); !errors.Is(err, ErrNotFound) {
		t.Errorf("AffectedSuites() error = '%v', want = '%v'", err, ErrNotFound)
	}
}

func TestCatalog_SuiteVulnerabilities(t *testing.T) {

	// Prepare test variables
	ctx := context.Background()
	catalog := newTestCatalog(t)

	got, err := catalog.SuiteVulnerabilities(ctx, "TLS_RSA_WITH_3DES_EDE_CBC_SHA")
	if err != nil {
		t.Fatalf("SuiteVulnerabilities() error = '%v'", err)
	}
	names := make([]string, 0, len(got))
	for _, v := range got {
		names = append(names, v.Name)
	}
	want := []string{"Non-Forward Secrecy", "Secure Hash Algorithm 1", "Sweet32"}
	if !utils.Equals(names, want) {
		t.Errorf("SuiteVulnerabilities() = '%v', want = '%v'", names, want)
	}

	if _, err = catalog.SuiteVulnerabilities(ctx, "TLS_UNKNOWN"); !errors.Is(err, ErrNotFound) {
		t.Errorf("SuiteVulnerabilities() error = '%v', want = '%v'", err, ErrNotFound)
	}
}

func TestCatalog_AlgorithmsBySeverity(t *testing.T) {

	// Prepare test variables
	ctx := context.Background()
	catalog := newTestCatalog(t)

	tests := []struct {
		name     string
		severity Severity
		want     []string
	}{
		{"high", SeverityHigh, []string{"Encryption|RC4 128", "Hash|MD5"}},
		{"medium", SeverityMedium, []string{"Encryption|3DES EDE CBC", "Hash|SHA"}},
		{"low", SeverityLow, []string{"KeyExchange|RSA"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := catalog.AlgorithmsBySeverity(ctx, tt.severity)
			if err != nil {
				t.Fatalf("AlgorithmsBySeverity() error = '%v'", err)
			}
			keys := make([]string, 0, len(got))
			for _, a := range got {
				keys = append(keys, a.Key().String())
			}
			if len(keys) != len(tt.want) || !utils.StrContained(tt.want[0], keys) || !utils.StrContained(tt.want[len(tt.want)-1], keys) {
				t.Errorf("AlgorithmsBySeverity() = '%v', want = '%v'", keys, tt.want)
			}
		})
	}
}

func TestCatalog_Rfcs(t *testing.T) {

	// Prepare test variables
	ctx := context.Background()
	catalog := newTestCatalog(t)

	// Registration created placeholders for every referenced RFC
	rfcs, err := catalog.Rfcs(ctx)
	if err != nil {
		t.Fatalf("Rfcs() error = '%v'", err)
	}
	numbers := make([]string, 0, len(rfcs))
	for _, rfc := range rfcs {
		numbers = append(numbers, fmt.Sprint(rfc.Number))
	}
	want := []string{"5246", "5289", "6347", "6655", "8422", "8446"}
	if !utils.Equals(numbers, want) {
		t.Errorf("Rfcs() = '%v', want = '%v'", numbers, want)
	}

	// Completed metadata replaces the placeholder
	errSave := catalog.SaveRfc(ctx, &Rfc{Number: 5246, Title: "TLS 1.2", Status: RfcProposedStandard, Year: 2008})
	if errSave != nil {
		t.Fatalf("SaveRfc() error = '%v'", errSave)
	}
	rfc, err := catalog.Store().GetRfc(ctx, 5246)
	if err != nil {
		t.Fatalf("GetRfc() error = '%v'", err)
	}
	if rfc.Title != "TLS 1.2" || rfc.Year != 2008 {
		t.Errorf("GetRfc() = '%v', want completed record", rfc)
	}
	if errSave = catalog.SaveRfc(ctx, &Rfc{Number: 0}); errSave == nil {
		t.Errorf("SaveRfc() of invalid RFC error = nil, want error")
	}

	// Cipher suites defined by an RFC
	suites, err := catalog.RfcSuites(ctx, 5246)
	if err != nil {
		t.Fatalf("RfcSuites() error = '%v'", err)
	}
	wantSuites := []string{"TLS_RSA_WITH_3DES_EDE_CBC_SHA", "TLS_RSA_WITH_RC4_128_MD5"}
	if !utils.Equals(suites, wantSuites) {
		t.Errorf("RfcSuites() = '%v', want = '%v'", suites, wantSuites)
	}
	if _, err = catalog.RfcSuites(ctx, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("RfcSuites() error = '%v', want = '%v'", err, ErrNotFound)
	}
}
