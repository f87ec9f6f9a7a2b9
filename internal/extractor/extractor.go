// Package extractor parses Diyanet listing pages into candidate PDF
// records using goquery.
package extractor

import (
	"bytes"
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// DefaultSiteBase is the origin relative PDF links resolve against.
const DefaultSiteBase = "https://dinhizmetleri.diyanet.gov.tr"

// minTitleRunes is the shortest anchor text accepted as a title before
// falling back to the filename stem.
const minTitleRunes = 3

// dateRe matches the DD.MM.YYYY dates printed next to listing rows.
var dateRe = regexp.MustCompile(`\b(\d{1,2}\.\d{1,2}\.\d{4})\b`)

// Candidate is one potential catalog entry extracted from a listing
// page. It lives only for the duration of a crawl pass.
type Candidate struct {
	SourcePDFURL string
	Title        string
	Date         *time.Time
	FoundOnPage  string
}

// PageExtractor turns listing page HTML into candidates.
type PageExtractor struct {
	base *url.URL
}

// New creates a page extractor resolving relative links against siteBase.
func New(siteBase string) (*PageExtractor, error) {
	base, err := url.Parse(siteBase)
	if err != nil {
		return nil, fmt.Errorf("parse site base: %w", err)
	}
	return &PageExtractor{base: base}, nil
}

// Extract parses one listing page and returns its candidates in document
// order. The primary strategy scans table rows, which is where the site
// prints the publication date next to each link; when no row yields a
// candidate it falls back to scanning every anchor on the page, dateless.
// Empty or malformed HTML yields zero candidates.
func (e *PageExtractor) Extract(pageURL string, body []byte) ([]Candidate, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse listing page: %w", err)
	}

	candidates := e.extractFromRows(doc, pageURL)
	if len(candidates) == 0 {
		candidates = e.extractFromAnchors(doc, pageURL)
	}

	return candidates, nil
}

// extractFromRows scans structural table rows for the first PDF link in
// each row, taking the date from the row's flattened text.
func (e *PageExtractor) extractFromRows(doc *goquery.Document, pageURL string) []Candidate {
	var candidates []Candidate

	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		anchor := firstPDFAnchor(row)
		if anchor == nil {
			return
		}

		href, _ := anchor.Attr("href")
		sourceURL := e.resolve(strings.TrimSpace(href))
		if sourceURL == "" {
			return
		}

		candidates = append(candidates, Candidate{
			SourcePDFURL: sourceURL,
			Title:        titleFor(anchor, sourceURL),
			Date:         parseRowDate(flatten(row.Text())),
			FoundOnPage:  pageURL,
		})
	})

	return candidates
}

// extractFromAnchors scans the whole document for PDF links, regardless
// of structural context. Dates are never available in this path.
func (e *PageExtractor) extractFromAnchors(doc *goquery.Document, pageURL string) []Candidate {
	var candidates []Candidate

	doc.Find("a[href]").Each(func(_ int, anchor *goquery.Selection) {
		href, _ := anchor.Attr("href")
		href = strings.TrimSpace(href)
		if !isPDFLink(href) {
			return
		}

		sourceURL := e.resolve(href)
		if sourceURL == "" {
			return
		}

		candidates = append(candidates, Candidate{
			SourcePDFURL: sourceURL,
			Title:        titleFor(anchor, sourceURL),
			FoundOnPage:  pageURL,
		})
	})

	return candidates
}

// firstPDFAnchor returns the first anchor in the row whose href ends in
// the PDF extension, or nil.
func firstPDFAnchor(row *goquery.Selection) *goquery.Selection {
	var found *goquery.Selection

	row.Find("a[href]").EachWithBreak(func(_ int, anchor *goquery.Selection) bool {
		href, _ := anchor.Attr("href")
		if isPDFLink(strings.TrimSpace(href)) {
			found = anchor
			return false
		}
		return true
	})

	return found
}

func isPDFLink(href string) bool {
	return strings.HasSuffix(strings.ToLower(href), ".pdf")
}

// resolve turns an extracted href into an absolute URL against the site
// base. Returns "" for unparseable hrefs.
func (e *PageExtractor) resolve(href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return e.base.ResolveReference(ref).String()
}

// titleFor takes the anchor's visible text, falling back to the decoded
// filename stem when the text is missing or implausibly short.
func titleFor(anchor *goquery.Selection, sourceURL string) string {
	title := flatten(anchor.Text())
	if utf8.RuneCountInString(title) < minTitleRunes {
		return PathStem(sourceURL)
	}
	return title
}

// parseRowDate finds the first DD.MM.YYYY token in the row text and
// parses it, tolerating single-digit days and months.
func parseRowDate(rowText string) *time.Time {
	match := dateRe.FindString(rowText)
	if match == "" {
		return nil
	}

	parsed, err := time.Parse("2.1.2006", match)
	if err != nil {
		return nil
	}
	return &parsed
}

// PathStem returns the percent-decoded last path segment of a URL with
// its extension stripped. Used for title fallbacks here and for year
// inference by the harvester.
func PathStem(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	segment := parsed.EscapedPath()
	if decoded, decodeErr := url.PathUnescape(segment); decodeErr == nil {
		segment = decoded
	}

	name := path.Base(segment)
	return strings.TrimSuffix(name, path.Ext(name))
}

// flatten collapses all whitespace runs in the text to single spaces and
// trims the ends, matching how the site's markup is read for dates and
// titles.
func flatten(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
