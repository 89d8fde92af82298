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
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/siemens/GoCsInfo/directory"
	"github.com/siemens/GoCsInfo/utils"
)

const rfcFetchWorkers = 4

var (
	regexMonthYear = regexp.MustCompile(
		`\b(?:January|February|March|April|May|June|July|August|September|October|November|December)\b.*?(\d{4})`)
	regexYear = regexp.MustCompile(`\b(\d{4})\b`)
)

// statusKeywords in the order they are searched for
var statusKeywords = []struct {
	keyword string
	status  directory.RfcStatus
}{
	{"INTERNET STANDARD", directory.RfcInternetStandard},
	{"PROPOSED STANDARD", directory.RfcProposedStandard},
	{"DRAFT STANDARD", directory.RfcDraftStandard},
	{"BEST CURRENT PRACTICE", directory.RfcBestCurrentPractise},
	{"BEST CURRENT PRACTISE", directory.RfcBestCurrentPractise},
	{"INFORMATIONAL", directory.RfcInformational},
	{"EXPERIMENTAL", directory.RfcExperimental},
	{"HISTORIC", directory.RfcHistoric},
}

// RfcUrl returns the page of an RFC or of a TLS working group draft
func RfcUrl(number int, draft bool) string {
	if draft {
		return fmt.Sprintf("https://tools.ietf.org/html/draft-ietf-tls-rfc%d", number)
	}
	return fmt.Sprintf("https://tools.ietf.org/html/rfc%d", number)
}

// ParseRfcPage extracts title, status and year of an RFC page. Both the legacy tools.ietf.org layout and the
// RFC editor layout are understood, the latter is recognized by its title element.
func ParseRfcPage(number int, draft bool, data []byte) (*directory.Rfc, error) {
	doc, errParse := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if errParse != nil {
		return nil, fmt.Errorf("could not parse page of RFC %d: %w", number, errParse)
	}

	rfc := &directory.Rfc{
		Number:  number,
		IsDraft: draft,
		Url:     RfcUrl(number, draft),
	}
	if title := doc.Find("h1#title"); title.Length() > 0 {
		rfc.Title = normalizeSpace(title.Text())
		rfc.Year = firstYear(regexYear, doc.Find("time.published").Text())
		rfc.Status = findStatus(doc.Find("dl#external-updates").Text())
	} else {
		rfc.Title = normalizeSpace(joinTexts(doc.Find("span.h1")))
		rfc.Year = firstYear(regexMonthYear, joinTexts(doc.Find("pre")))
		rfc.Status = findStatus(joinTexts(doc.Find("pre.meta-info")))
	}

	if rfc.Title == "" {
		return nil, fmt.Errorf("no title found on page of RFC %d", number)
	}
	return rfc, nil
}

// FetchRfc downloads and parses the page of an RFC
func FetchRfc(ctx context.Context, logger utils.Logger, getter Getter, number int, draft bool) (*directory.Rfc, error) {
	data, errFetch := fetch(ctx, logger, getter, RfcUrl(number, draft))
	if errFetch != nil {
		return nil, errFetch
	}
	return ParseRfcPage(number, draft, data)
}

// CompleteRfcs fetches the details of all stored RFCs without title. Failing downloads are logged and counted, only
// a cancelled context aborts. Returns the number of completed and failed RFCs.
func CompleteRfcs(ctx context.Context, logger utils.Logger, getter Getter, store directory.Store) (int, int, error) {
	rfcs, errList := store.ListRfcs(ctx)
	if errList != nil {
		return 0, 0, errList
	}

	// Fetch in parallel
	pending := make([]*directory.Rfc, 0, len(rfcs))
	for _, rfc := range rfcs {
		if rfc.Title == "" {
			pending = append(pending, rfc)
		}
	}
	fetched := make([]*directory.Rfc, len(pending))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rfcFetchWorkers)
	for i, rfc := range pending {
		g.Go(func() error {
			if errCtx := gctx.Err(); errCtx != nil {
				return errCtx
			}
			complete, errFetch := FetchRfc(gctx, logger, getter, rfc.Number, rfc.IsDraft)
			if errFetch != nil {
				if errors.Is(errFetch, context.Canceled) || errors.Is(errFetch, context.DeadlineExceeded) {
					return errFetch
				}
				logger.Warningf("Could not complete %s: %s", rfc, errFetch)
				return nil
			}
			fetched[i] = complete
			return nil
		})
	}
	if errWait := g.Wait(); errWait != nil {
		return 0, 0, fmt.Errorf("RFC completion aborted: %w", errWait)
	}

	// Store sequentially
	completed, failed := 0, 0
	for _, rfc := range fetched {
		if rfc == nil {
			failed++
			continue
		}
		if errSave := store.SaveRfc(ctx, rfc); errSave != nil {
			return completed, failed, fmt.Errorf("could not store %s: %w", rfc, errSave)
		}
		completed++
	}
	logger.Infof("Completed %d RFCs, %d failed.", completed, failed)
	return completed, failed, nil
}

func findStatus(docinfo string) directory.RfcStatus {
	docinfo = strings.ToUpper(normalizeSpace(docinfo))
	for _, k := range statusKeywords {
		if strings.Contains(docinfo, k.keyword) {
			return k.status
		}
	}
	return directory.RfcUndefined
}

func firstYear(regex *regexp.Regexp, text string) int {
	match := regex.FindStringSubmatch(text)
	if match == nil {
		return 0
	}
	year, _ := strconv.Atoi(match[1])
	return year
}

func joinTexts(s *goquery.Selection) string {
	texts := make([]string, 0, s.Length())
	s.Each(func(i int, sel *goquery.Selection) {
		texts = append(texts, sel.Text())
	})
	return strings.Join(texts, " ")
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
