package harvest

import (
	"regexp"
	"strconv"
	"time"

	"github.com/talhay/open-hutbe-api/internal/extractor"
)

// yearRe matches a 4-digit year token starting with "20" inside a
// remote filename.
var yearRe = regexp.MustCompile(`(20\d{2})`)

// resolveYear picks the storage year for a candidate. Priority: the
// year of the date printed on the listing page, then a 20xx token in the
// decoded remote filename, then the current UTC year. The result names
// the language/year partition on disk, so it is load-bearing for
// collision avoidance, not just metadata.
func resolveYear(c extractor.Candidate, now func() time.Time) int {
	if c.Date != nil {
		return c.Date.Year()
	}

	stem := extractor.PathStem(c.SourcePDFURL)
	if match := yearRe.FindString(stem); match != "" {
		year, err := strconv.Atoi(match)
		if err == nil {
			return year
		}
	}

	return now().UTC().Year()
}
