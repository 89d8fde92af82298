/*
* GoCsInfo, a directory of TLS cipher suites, RFCs and the cryptographic algorithms they are built from.
*
* Copyright (c) Siemens AG, 2016-2024.
*
* This work is licensed under the terms of the MIT license. For a copy, see the LICENSE file in the top-level
* directory or visit <https://opensource.org/licenses/MIT>.
*
 */

package feeds

import (
	"context"
	"fmt"
	"os"
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"

	"github.com/siemens/GoCsInfo/_test"
	"github.com/siemens/GoCsInfo/directory"
	"github.com/siemens/GoCsInfo/utils"
)

// fakeGetter serves fixed responses by URL
type fakeGetter map[string][]byte

func (f fakeGetter) Get(ctx context.Context, url string) ([]byte, error) {
	data, ok := f[url]
	if !ok {
		return nil, fmt.Errorf("unexpected response status 404")
	}
	return data, nil
}

func readSample(t *testing.T, name string) []byte {
	t.Helper()

	// Retrieve test settings
	testSettings, errSettings := _test.GetSettings()
	if errSettings != nil {
		t.Fatalf("Invalid test settings: %s", errSettings)
	}

	data, errRead := os.ReadFile(testSettings.DataFile(name))
	if errRead != nil {
		t.Fatalf("Could not read sample file '%s': %s", name, errRead)
	}
	return data
}

func TestParseRegistry(t *testing.T) {

	// Prepare and run test cases
	tests := []struct {
		name      string
		file      string
		wantNames []string
	}{
		{"csv", "tls-parameters-4.csv", []string{
			"TLS_NULL_WITH_NULL_NULL",
			"TLS_RSA_WITH_3DES_EDE_CBC_SHA",
			"TLS_DHE_RSA_WITH_AES_128_GCM_SHA256",
			"TLS_AES_128_GCM_SHA256",
			"TLS_AES_256_GCM_SHA384",
			"TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256",
			"TLS_DHE_RSA_WITH_AES_256_CCM_8",
			"TLS_SHA256_SHA256",
			"TLS_GOSTR341112_256_WITH_KUZNYECHIK_CTR_OMAC",
			"TLS_ECDHE_RSA_WITH_CHACHA20_POLY1305_SHA256",
			"TLS_ECDHE_PSK_WITH_AES_128_GCM_SHA256",
		}},
		{"xhtml", "tls-parameters.xhtml", []string{
			"TLS_RSA_WITH_3DES_EDE_CBC_SHA",
			"TLS_AES_128_GCM_SHA256",
			"TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256",
			"TLS_ECDHE_PSK_WITH_AES_128_GCM_SHA256",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errParse := ParseRegistry(readSample(t, tt.file))
			if errParse != nil {
				t.Errorf("ParseRegistry() error = '%v'", errParse)
				return
			}
			names := make([]string, 0, len(got))
			for _, e := range got {
				names = append(names, e.Name)
			}
			if !utils.Equals(names, tt.wantNames) {
				t.Errorf("ParseRegistry() = '%v', want = '%v'", names, tt.wantNames)
			}

			// Metadata of the last entry, which carries an RFC and a draft reference
			last := got[len(got)-1]
			want := directory.Entry{
				Name:            "TLS_ECDHE_PSK_WITH_AES_128_GCM_SHA256",
				HexByte1:        "0xD0",
				HexByte2:        "0x01",
				DtlsOk:          false,
				IanaRecommended: false,
				Rfcs:            []int{8442},
				DraftRfcs:       []int{8446},
			}
			if !reflect.DeepEqual(last, want) {
				t.Errorf("ParseRegistry() last = %s, want = %s", spew.Sdump(last), spew.Sdump(want))
			}
		})
	}
}

func TestParseRegistry_Flags(t *testing.T) {
	got, errParse := ParseRegistry(readSample(t, "tls-parameters-4.csv"))
	if errParse != nil {
		t.Errorf("ParseRegistry() error = '%v'", errParse)
		return
	}
	for _, e := range got {
		if e.Name != "TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256" {
			continue
		}
		if !e.DtlsOk || !e.IanaRecommended {
			t.Errorf("ParseRegistry() flags = '%v'/'%v', want = 'true'/'true'", e.DtlsOk, e.IanaRecommended)
		}
		if !reflect.DeepEqual(e.Rfcs, []int{5289}) {
			t.Errorf("ParseRegistry() rfcs = '%v', want = '%v'", e.Rfcs, []int{5289})
		}
		return
	}
	t.Errorf("ParseRegistry() did not return TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256")
}

func TestParseRegistry_Headless(t *testing.T) {
	data := []byte("\"0xC0,0x2F\",TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,Y,Y,[RFC5289]\n" +
		"\"0xC0,0x30-0x31\",Unassigned,,,\n")
	got, errParse := ParseRegistry(data)
	if errParse != nil {
		t.Errorf("ParseRegistry() error = '%v'", errParse)
		return
	}
	if len(got) != 1 || got[0].HexByte1 != "0xC0" || got[0].HexByte2 != "0x2F" {
		t.Errorf("ParseRegistry() = %s", spew.Sdump(got))
	}
}

func TestParseRegistry_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"html-without-table", "<!DOCTYPE html><html><body><table id=\"other\"></table></body></html>"},
		{"csv-without-suites", "Value,Description\n\"0x00,0x1C-1D\",Reserved\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, errParse := ParseRegistry([]byte(tt.data)); errParse == nil {
				t.Errorf("ParseRegistry() = '%v', want error", got)
			}
		})
	}
}

func TestFetchRegistry(t *testing.T) {
	getter := fakeGetter{IanaCsvUrl: readSample(t, "tls-parameters-4.csv")}
	logger := utils.NewTestLogger()

	got, errFetch := FetchRegistry(context.Background(), logger, getter, IanaCsvUrl)
	if errFetch != nil {
		t.Errorf("FetchRegistry() error = '%v'", errFetch)
		return
	}
	if len(got) != 11 {
		t.Errorf("FetchRegistry() = '%d' entries, want = '%d'", len(got), 11)
	}

	_, errFetch = FetchRegistry(context.Background(), logger, getter, IanaXhtmlUrl)
	if errFetch == nil {
		t.Errorf("FetchRegistry() of unavailable feed did not fail")
	}
}

func TestFetchRegistry_Register(t *testing.T) {
	ctx := context.Background()
	logger := utils.NewTestLogger()
	getter := fakeGetter{IanaCsvUrl: readSample(t, "tls-parameters-4.csv")}

	entries, errFetch := FetchRegistry(ctx, logger, getter, IanaCsvUrl)
	if errFetch != nil {
		t.Errorf("FetchRegistry() error = '%v'", errFetch)
		return
	}

	catalog := directory.NewCatalog(logger, directory.NewMemoryStore(), nil, 2)
	res := catalog.RegisterBatch(ctx, entries)
	if res.Registered != len(entries) || res.Failed != 0 {
		t.Errorf("RegisterBatch() = %s", spew.Sdump(res))
	}

	// RFC stubs must exist for referenced RFCs and drafts
	draft, errRfc := catalog.Store().GetRfc(ctx, 8446)
	if errRfc != nil {
		t.Errorf("GetRfc() error = '%v'", errRfc)
		return
	}
	if draft.IsDraft {
		t.Errorf("GetRfc() is_draft = 'true', want = 'false' as RFC 8446 is referenced directly first")
	}
}
