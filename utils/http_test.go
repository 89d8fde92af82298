/*
* GoCsInfo, a directory of TLS cipher suites, RFCs and the cryptographic algorithms they are built from.
*
* Copyright (c) Siemens AG, 2016-2024.
*
* This work is licensed under the terms of the MIT license. For a copy, see the LICENSE file in the top-level
* directory or visit <https://opensource.org/licenses/MIT>.
*
 */

package utils

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDecodeBody(t *testing.T) {

	// Prepare and run test cases
	type args struct {
		raw         []byte
		contentType string
	}
	tests := []struct {
		name string
		args args
		want string
	}{
		{"empty", args{[]byte{}, "text/html"}, ""},
		{"utf8-declared", args{[]byte("Grüße"), "text/html; charset=utf-8"}, "Grüße"},
		{"latin1-header", args{[]byte{'G', 'r', 0xfc, 0xdf, 'e'}, "text/html; charset=iso-8859-1"}, "Grüße"},
		{"latin1-meta", args{
			append([]byte(`<html><head><meta charset="iso-8859-1"></head><body>`), []byte{0xfc}...),
			"text/html",
		}, `<html><head><meta charset="iso-8859-1"></head><body>ü`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeBody(tt.args.raw, tt.args.contentType)
			if err != nil {
				t.Errorf("DecodeBody() error = '%v'", err)
				return
			}
			if string(got) != tt.want {
				t.Errorf("DecodeBody() = '%v', want = '%v'", string(got), tt.want)
			}
		})
	}
}

func TestRequester_Get(t *testing.T) {

	// Prepare test server
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			_, _ = fmt.Fprintf(w, "agent=%s", r.UserAgent())
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	// Prepare requester
	requester := NewRequester("csinfo-test", "", "", "", nil, 2*time.Second)

	// Request existing resource
	body, err := requester.Get(context.Background(), server.URL+"/ok")
	if err != nil {
		t.Fatalf("Get() error = '%v'", err)
	}
	if string(body) != "agent=csinfo-test" {
		t.Errorf("Get() = '%v', want = '%v'", string(body), "agent=csinfo-test")
	}

	// Request missing resource
	if _, err = requester.Get(context.Background(), server.URL+"/missing"); err == nil {
		t.Errorf("Get() of missing resource should fail")
	}
}
