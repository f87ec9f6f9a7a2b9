// Package catalog defines the persisted hutbe and prayer records and the
// JSON-backed store that owns them for the duration of a harvest run.
package catalog

// Entry describes one discovered sermon PDF. Entries are created once at
// discovery time and never mutated; the id (derived from SourcePDFURL)
// is the primary dedup key.
type Entry struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Date         string `json:"date"`
	Year         int    `json:"year"`
	Language     string `json:"language"`
	Filename     string `json:"filename"`
	SourcePDFURL string `json:"source_pdf_url"`
	PDFURL       string `json:"pdf_url"`
}

// PrayerEntry describes one of the fixed prayer documents. The prayer
// catalog is rebuilt wholesale on every run, so these carry no year or
// language partition.
type PrayerEntry struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Filename  string `json:"filename"`
	PDFURL    string `json:"pdf_url"`
	SourceURL string `json:"source_url"`
}
