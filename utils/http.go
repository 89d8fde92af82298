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
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Azure/go-ntlmssp"
	"github.com/go-resty/resty/v2"
	"golang.org/x/net/html/charset"
)

const maxRetries = 2

// Requester wraps a reusable HTTP client for downloading feeds, such as the IANA registry or RFC pages. It takes
// care of NTLM authentication, if credentials are set, and of decoding response bodies to UTF-8. The requester's
// .Get() method is thread safe, as the underlying client is.
type Requester struct {
	client    *resty.Client
	userAgent string
}

// NewRequester returns a reusable and thread safe HTTP requester. An empty NTLM user disables NTLM authentication,
// a nil proxy disables proxying.
func NewRequester(
	userAgent string,
	ntlmDomain string,
	ntlmUser string,
	ntlmPassword string,
	proxy *url.URL,
	timeout time.Duration,
) *Requester {

	// Prepare credentials
	if ntlmDomain != "" && ntlmUser != "" {
		ntlmUser = ntlmDomain + "\\" + ntlmUser
	}

	// Prepare transport, keep-alive is required for NTLM authentication to work
	transport := &http.Transport{
		TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
		TLSHandshakeTimeout:   timeout,
		ResponseHeaderTimeout: timeout * 2,
		DisableKeepAlives:     false,
	}
	if proxy != nil {
		transport.Proxy = http.ProxyURL(proxy)
	}

	// Build client
	client := resty.New().
		SetTimeout(timeout * 2).
		SetRetryCount(maxRetries).
		SetHeader("User-Agent", userAgent)
	if ntlmUser != "" {
		client.SetTransport(ntlmssp.Negotiator{RoundTripper: transport})
		client.SetBasicAuth(ntlmUser, ntlmPassword) // Negotiator converts basic auth into an NTLM handshake
	} else {
		client.SetTransport(transport)
	}

	// Return preconfigured requester
	return &Requester{
		client:    client,
		userAgent: userAgent,
	}
}

// Get downloads the given URL and returns the UTF-8 decoded body. Non-2xx responses are returned as errors.
func (r *Requester) Get(ctx context.Context, reqUrl string) ([]byte, error) {

	// Send request
	resp, errReq := r.client.R().SetContext(ctx).Get(reqUrl)
	if errReq != nil {
		return nil, fmt.Errorf("could not request '%s': %w", reqUrl, errReq)
	}

	// Check response code
	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return nil, fmt.Errorf("could not request '%s': unexpected status %d", reqUrl, resp.StatusCode())
	}

	// Decode body and return it
	return DecodeBody(resp.Body(), resp.Header().Get("Content-Type"))
}

// DecodeBody converts a raw response body to UTF-8. The encoding is determined from the content type header, a BOM
// or the HTML meta tags. Bodies that are already UTF-8 are returned unchanged.
func DecodeBody(raw []byte, contentType string) ([]byte, error) {

	// Nothing to decode
	if len(raw) == 0 {
		return raw, nil
	}

	// Skip decoding of plain UTF-8 content
	lower := strings.ToLower(contentType)
	if strings.Contains(lower, "charset=utf-8") {
		return raw, nil
	}

	// Prepare decoding reader
	reader, errReader := charset.NewReader(bytes.NewReader(raw), contentType)
	if errReader != nil {
		return nil, fmt.Errorf("could not determine body encoding: %w", errReader)
	}

	// Read and return decoded body
	decoded, errRead := io.ReadAll(reader)
	if errRead != nil {
		return nil, fmt.Errorf("could not decode body: %w", errRead)
	}
	return decoded, nil
}
