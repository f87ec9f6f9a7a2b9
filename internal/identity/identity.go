// Package identity derives stable identifiers and filesystem-safe slugs
// for harvested documents.
package identity

import (
	"crypto/sha1"
	"encoding/hex"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// IDLength is the number of hex characters in a hutbe identifier.
const IDLength = 16

// fallbackSlug is returned when slugification leaves nothing usable,
// e.g. for titles written entirely in a non-Latin script.
const fallbackSlug = "hutbe"

// turkish transliterates the Turkish letters the site uses in titles and
// filenames before the ASCII fold strips them.
var turkish = strings.NewReplacer(
	"ı", "i", "İ", "i",
	"ğ", "g", "Ğ", "g",
	"ü", "u", "Ü", "u",
	"ş", "s", "Ş", "s",
	"ö", "o", "Ö", "o",
	"ç", "c", "Ç", "c",
)

var nonAlphanumeric = regexp.MustCompile(`[^A-Za-z0-9]+`)

// HutbeID returns the stable identifier for a source PDF URL: the first
// 16 hex characters of the SHA-1 digest over the exact URL string. Any
// change to the URL, including percent-encoding differences, changes the
// id. That is a known property of the catalog, not something to
// normalize away.
func HutbeID(sourceURL string) string {
	sum := sha1.Sum([]byte(sourceURL))
	return hex.EncodeToString(sum[:])[:IDLength]
}

// Slugify normalizes arbitrary title text into a lowercase ASCII slug
// safe for filenames and URLs. It never fails and is idempotent, so
// re-runs derive the same artifact names.
func Slugify(text string) string {
	if decoded, err := url.PathUnescape(text); err == nil {
		text = decoded
	}
	text = turkish.Replace(strings.TrimSpace(text))
	text = foldASCII(text)
	text = nonAlphanumeric.ReplaceAllString(text, "-")
	text = strings.ToLower(strings.Trim(text, "-"))

	if text == "" {
		return fallbackSlug
	}
	return text
}

// foldASCII decomposes the text (NFKD) and drops every non-ASCII rune,
// so accented Latin letters reduce to their base letter and other
// scripts disappear.
func foldASCII(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	for _, r := range norm.NFKD.String(text) {
		if r < 128 {
			b.WriteRune(r)
		}
	}

	return b.String()
}
