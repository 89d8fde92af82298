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
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gabriel-vasile/mimetype"

	"github.com/siemens/GoCsInfo/directory"
	"github.com/siemens/GoCsInfo/utils"
)

const ianaTableSelector = "#table-tls-parameters-4"

var (
	regexHexOctet = regexp.MustCompile(`^0x[0-9A-Fa-f]{2}$`)
	regexRfc      = regexp.MustCompile(`RFC(\d+)`)
	regexDraftRfc = regexp.MustCompile(`RFC-ietf-tls-rfc(\d+)`)
)

// registryColumns holds the column positions of the registry table, -1 if not present
type registryColumns struct {
	value       int
	description int
	dtls        int
	recommended int
	reference   int
}

// defaultColumns is the layout of the current registry
var defaultColumns = registryColumns{value: 0, description: 1, dtls: 2, recommended: 3, reference: 4}

// lookupColumns derives column positions from header names. The boolean indicates whether the header could be
// interpreted at all.
func lookupColumns(header []string) (registryColumns, bool) {
	cols := registryColumns{value: -1, description: -1, dtls: -1, recommended: -1, reference: -1}
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		switch {
		case h == "value":
			cols.value = i
		case h == "description":
			cols.description = i
		case strings.HasPrefix(h, "dtls"):
			cols.dtls = i
		case strings.HasPrefix(h, "recommended"):
			cols.recommended = i
		case strings.HasPrefix(h, "reference"):
			cols.reference = i
		}
	}
	if cols.value < 0 || cols.description < 0 {
		return defaultColumns, false
	}
	return cols, true
}

// ParseRegistry parses the IANA cipher suite registry, either the XHTML page or the CSV export. Code point ranges,
// unassigned or reserved values and signaling values are skipped.
func ParseRegistry(data []byte) ([]directory.Entry, error) {
	if isMarkup(data) {
		return parseRegistryHtml(data)
	}
	return parseRegistryCsv(data)
}

// FetchRegistry downloads and parses the IANA cipher suite registry
func FetchRegistry(ctx context.Context, logger utils.Logger, getter Getter, url string) ([]directory.Entry, error) {
	data, errFetch := fetch(ctx, logger, getter, url)
	if errFetch != nil {
		return nil, errFetch
	}
	entries, errParse := ParseRegistry(data)
	if errParse != nil {
		return nil, fmt.Errorf("could not parse registry '%s': %w", url, errParse)
	}
	logger.Infof("Found %d cipher suites in registry '%s'.", len(entries), url)
	return entries, nil
}

func isMarkup(data []byte) bool {
	for mime := mimetype.Detect(data); mime != nil; mime = mime.Parent() {
		if mime.Is("text/html") || mime.Is("text/xml") || mime.Is("application/xhtml+xml") {
			return true
		}
	}
	return false
}

func parseRegistryHtml(data []byte) ([]directory.Entry, error) {
	doc, errParse := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if errParse != nil {
		return nil, fmt.Errorf("could not parse registry page: %w", errParse)
	}
	table := doc.Find(ianaTableSelector)
	if table.Length() == 0 {
		return nil, fmt.Errorf("registry table '%s' not found", ianaTableSelector)
	}

	// Read header
	header := make([]string, 0, 5)
	table.Find("thead th").Each(func(i int, s *goquery.Selection) {
		header = append(header, s.Text())
	})
	cols, _ := lookupColumns(header)

	// Read rows
	entries := make([]directory.Entry, 0)
	table.Find("tbody tr").Each(func(i int, row *goquery.Selection) {
		cells := make([]string, 0, 5)
		row.Find("td").Each(func(j int, cell *goquery.Selection) {
			cells = append(cells, cell.Text())
		})
		if e, ok := toEntry(cells, cols); ok {
			entries = append(entries, e)
		}
	})
	return entries, nil
}

func parseRegistryCsv(data []byte) ([]directory.Entry, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	cols := defaultColumns
	entries := make([]directory.Entry, 0)
	for first := true; ; first = false {
		record, errRead := r.Read()
		if errRead == io.EOF {
			break
		}
		if errRead != nil {
			return nil, fmt.Errorf("could not read registry csv: %w", errRead)
		}

		// Header rows are optional
		if first {
			if header, ok := lookupColumns(record); ok {
				cols = header
				continue
			}
		}
		if e, ok := toEntry(record, cols); ok {
			entries = append(entries, e)
		}
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no cipher suites in registry csv")
	}
	return entries, nil
}

// toEntry converts a registry row. The boolean is false for rows not describing a single cipher suite.
func toEntry(cells []string, cols registryColumns) (directory.Entry, bool) {
	cell := func(i int) string {
		if i < 0 || i >= len(cells) {
			return ""
		}
		return strings.TrimSpace(cells[i])
	}

	// Code point, ranges do not match
	hex := strings.Split(cell(cols.value), ",")
	if len(hex) != 2 {
		return directory.Entry{}, false
	}
	hex1, hex2 := strings.TrimSpace(hex[0]), strings.TrimSpace(hex[1])
	if !regexHexOctet.MatchString(hex1) || !regexHexOctet.MatchString(hex2) {
		return directory.Entry{}, false
	}

	// Name
	name := cell(cols.description)
	lower := strings.ToLower(name)
	if name == "" || strings.HasPrefix(lower, "unassigned") || strings.HasPrefix(lower, "reserved") ||
		strings.HasSuffix(name, "_SCSV") || strings.ContainsAny(name, " \t") {
		return directory.Entry{}, false
	}

	// References
	reference := cell(cols.reference)
	e := directory.Entry{
		Name:            name,
		HexByte1:        hex1,
		HexByte2:        hex2,
		DtlsOk:          strings.EqualFold(cell(cols.dtls), "Y"),
		IanaRecommended: strings.EqualFold(cell(cols.recommended), "Y"),
		Rfcs:            rfcNumbers(regexRfc, reference),
		DraftRfcs:       rfcNumbers(regexDraftRfc, reference),
	}
	return e, true
}

func rfcNumbers(regex *regexp.Regexp, reference string) []int {
	numbers := make([]int, 0, 1)
	for _, match := range regex.FindAllStringSubmatch(reference, -1) {
		number, errConv := strconv.Atoi(match[1])
		if errConv != nil {
			continue
		}
		numbers = append(numbers, number)
	}
	return numbers
}
