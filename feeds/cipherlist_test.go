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
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"

	"github.com/siemens/GoCsInfo/directory"
	"github.com/siemens/GoCsInfo/utils"
)

func TestParseCipherList(t *testing.T) {

	// Prepare and run test cases
	type args struct {
		software directory.Software
		file     string
	}
	tests := []struct {
		name         string
		args         args
		want         []directory.LibraryCipher
		wantProblems int
	}{
		{"openssl", args{directory.SoftwareOpenssl, "openssl-ciphers.txt"}, []directory.LibraryCipher{
			{Name: "TLS_AES_256_GCM_SHA384", HexByte1: "0x13", HexByte2: "0x02", MinTlsVersion: "TLS1.3"},
			{Name: "TLS_AES_128_GCM_SHA256", HexByte1: "0x13", HexByte2: "0x01", MinTlsVersion: "TLS1.3"},
			{Name: "ECDHE-RSA-AES128-GCM-SHA256", HexByte1: "0xC0", HexByte2: "0x2F", MinTlsVersion: "TLS1.2"},
			{Name: "DHE-RSA-AES128-GCM-SHA256", HexByte1: "0x00", HexByte2: "0x9E", MinTlsVersion: "TLS1.2"},
			{Name: "DES-CBC3-SHA", HexByte1: "0x00", HexByte2: "0x0A", MinTlsVersion: "SSL3"},
			{Name: "AES128-SHA", HexByte1: "0x00", HexByte2: "0x2F", MinTlsVersion: "TLS1.0"},
		}, 0},
		{"gnutls", args{directory.SoftwareGnutls, "gnutls-ciphers.txt"}, []directory.LibraryCipher{
			{Name: "TLS_AES_128_GCM_SHA256", HexByte1: "0x13", HexByte2: "0x01", MinTlsVersion: "TLS1.3"},
			{Name: "TLS_ECDHE_RSA_AES_128_GCM_SHA256", HexByte1: "0xC0", HexByte2: "0x2F", MinTlsVersion: "TLS1.2"},
			{Name: "TLS_DHE_RSA_AES_128_GCM_SHA256", HexByte1: "0x00", HexByte2: "0x9E", MinTlsVersion: "TLS1.2"},
			{Name: "TLS_RSA_3DES_EDE_CBC_SHA1", HexByte1: "0x00", HexByte2: "0x0A", MinTlsVersion: "TLS1.0"},
		}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, problems := ParseCipherList(tt.args.software, readSample(t, tt.args.file))
			if len(problems) != tt.wantProblems {
				t.Errorf("ParseCipherList() problems = '%v', want = '%d'", problems, tt.wantProblems)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseCipherList() = %s, want = %s", spew.Sdump(got), spew.Sdump(tt.want))
			}
		})
	}
}

func TestParseOpensslCiphers_Malformed(t *testing.T) {
	data := []byte("0xC0,0x2F - ECDHE-RSA-AES128-GCM-SHA256 TLSv1.2 Kx=ECDH\n" +
		"garbage\n" +
		"0xC0 - NO-CODE-POINT TLSv1.2 Kx=ECDH\n" +
		"0xC0,0x30 - ECDHE-RSA-AES256-GCM-SHA384 DTLSv0.9 Kx=ECDH\n")
	got, problems := ParseOpensslCiphers(data)
	if len(got) != 1 {
		t.Errorf("ParseOpensslCiphers() = %s, want 1 cipher", spew.Sdump(got))
	}
	if len(problems) != 3 {
		t.Errorf("ParseOpensslCiphers() problems = '%v', want = '%d'", problems, 3)
	}
}

func TestParseCipherList_InvalidSoftware(t *testing.T) {
	if _, problems := ParseCipherList(directory.Software("boringssl"), []byte("")); len(problems) != 1 {
		t.Errorf("ParseCipherList() problems = '%v', want = '%d'", problems, 1)
	}
}

func TestParseCipherList_Apply(t *testing.T) {
	ctx := context.Background()
	logger := utils.NewTestLogger()
	catalog := directory.NewCatalog(logger, directory.NewMemoryStore(), nil, 2)
	if _, errRegister := catalog.Register(ctx, "TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256", "0xC0", "0x2F"); errRegister != nil {
		t.Fatalf("Register() error = '%v'", errRegister)
	}

	ciphers, _ := ParseCipherList(directory.SoftwareOpenssl, readSample(t, "openssl-ciphers.txt"))
	updated, errApply := catalog.ApplyLibraryNames(ctx, directory.SoftwareOpenssl, ciphers)
	if errApply != nil || updated != 1 {
		t.Errorf("ApplyLibraryNames() = '%d', error = '%v', want = '1'", updated, errApply)
	}
	cs, errLookup := catalog.SuiteByOpensslName(ctx, "ECDHE-RSA-AES128-GCM-SHA256")
	if errLookup != nil || cs.Name != "TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256" {
		t.Errorf("SuiteByOpensslName() = '%v', error = '%v'", cs, errLookup)
	}
}
