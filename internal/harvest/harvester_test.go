package harvest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/talhay/open-hutbe-api/internal/catalog"
	"github.com/talhay/open-hutbe-api/internal/config"
	"github.com/talhay/open-hutbe-api/internal/extractor"
	"github.com/talhay/open-hutbe-api/internal/identity"
	"github.com/talhay/open-hutbe-api/internal/logger"
)

// singleRowListing is one listing page with a single dated sermon row.
const singleRowListing = `<html><body><table>
  <tr><td>01.01.2020</td><td><a href="/x/Sermon%20A.pdf">Sermon A</a></td></tr>
</table></body></html>`

// twoRowListing has two sermons; tests mark one download as failing.
const twoRowListing = `<html><body><table>
  <tr><td>01.01.2020</td><td><a href="/x/First%20Sermon.pdf">First Sermon</a></td></tr>
  <tr><td>08.01.2020</td><td><a href="/x/Second%20Sermon.pdf">Second Sermon</a></td></tr>
</table></body></html>`

// collidingListing has two distinct sermons whose titles slug identically.
const collidingListing = `<html><body><table>
  <tr><td>01.01.2020</td><td><a href="/x/week1.pdf">Weekly Sermon</a></td></tr>
  <tr><td>08.01.2020</td><td><a href="/x/week2.pdf">Weekly Sermon</a></td></tr>
</table></body></html>`

type fakePage struct {
	status int
	body   string
}

// fakeFetcher serves canned listing pages and records downloads by
// writing placeholder files, the way the real fetcher materializes PDFs.
type fakeFetcher struct {
	pages         map[string]fakePage
	failDownloads map[string]bool
	downloaded    []string
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		pages:         make(map[string]fakePage),
		failDownloads: make(map[string]bool),
	}
}

func (f *fakeFetcher) Get(_ context.Context, url string) (int, []byte, error) {
	page, ok := f.pages[url]
	if !ok {
		return 404, nil, nil
	}
	return page.status, []byte(page.body), nil
}

func (f *fakeFetcher) Download(_ context.Context, url, dest string) bool {
	if f.failDownloads[url] {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return false
	}
	if err := os.WriteFile(dest, []byte("%PDF"), 0o644); err != nil {
		return false
	}
	f.downloaded = append(f.downloaded, url)
	return true
}

func newTestHarvester(t *testing.T, dataDir string, fetcher Fetcher) (*Harvester, *catalog.Store) {
	t.Helper()

	cfg := config.Config{
		GitHubUser: "someone",
		GitHubRepo: "mirror",
		MaxPages:   2,
		DataDir:    dataDir,
	}.WithDefaults()

	ex, err := extractor.New(extractor.DefaultSiteBase)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	store := catalog.NewStore(cfg.HutbesPath())
	h := New(cfg, fetcher, ex, store, logger.NewNop())
	h.now = fixedNow

	return h, store
}

func englishPage(page string) string {
	return Languages[2].ListURL + "?page=" + page
}

func TestRun_SingleRowEndToEnd(t *testing.T) {
	t.Parallel()

	dataDir := t.TempDir()
	fetcher := newFakeFetcher()
	fetcher.pages[englishPage("1")] = fakePage{status: 200, body: singleRowListing}

	h, store := newTestHarvester(t, dataDir, fetcher)
	if err := h.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if store.Len() != 1 {
		t.Fatalf("expected 1 catalog entry, got %d", store.Len())
	}

	entry := store.Entries()[0]
	wantURL := "https://dinhizmetleri.diyanet.gov.tr/x/Sermon%20A.pdf"
	if entry.SourcePDFURL != wantURL {
		t.Errorf("SourcePDFURL: expected %q, got %q", wantURL, entry.SourcePDFURL)
	}
	if entry.ID != identity.HutbeID(wantURL) {
		t.Errorf("ID: expected %q, got %q", identity.HutbeID(wantURL), entry.ID)
	}
	if entry.Year != 2020 {
		t.Errorf("Year: expected 2020, got %d", entry.Year)
	}
	if entry.Filename != "sermon-a.pdf" {
		t.Errorf("Filename: expected %q, got %q", "sermon-a.pdf", entry.Filename)
	}
	if entry.Date != "2020-01-01" {
		t.Errorf("Date: expected 2020-01-01, got %q", entry.Date)
	}
	wantPublic := "https://someone.github.io/mirror/pdfs/en/2020/sermon-a.pdf"
	if entry.PDFURL != wantPublic {
		t.Errorf("PDFURL: expected %q, got %q", wantPublic, entry.PDFURL)
	}

	assertFileExists(t, filepath.Join(dataDir, "pdfs", "en", "2020", "sermon-a.pdf"))
	assertFileExists(t, filepath.Join(dataDir, "hutbes.json"))
	assertFileExists(t, filepath.Join(dataDir, "prayers.json"))

	// Both static prayers were mirrored before the crawl.
	assertFileExists(t, filepath.Join(dataDir, "pdfs", "prayers", "friday-khutbah-prayers.pdf"))
	assertFileExists(t, filepath.Join(dataDir, "pdfs", "prayers", "eid-khutbah-prayers.pdf"))
}

func TestRun_RerunIsIdempotent(t *testing.T) {
	t.Parallel()

	dataDir := t.TempDir()
	fetcher := newFakeFetcher()
	fetcher.pages[englishPage("1")] = fakePage{status: 200, body: singleRowListing}

	h, _ := newTestHarvester(t, dataDir, fetcher)
	if err := h.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error on first run: %v", err)
	}

	// Fresh harvester and store, same unchanged remote listing.
	h2, store2 := newTestHarvester(t, dataDir, fetcher)
	if err := h2.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error on second run: %v", err)
	}

	if store2.Len() != 1 {
		t.Errorf("expected 1 catalog entry after re-run, got %d", store2.Len())
	}
	if store2.Added() != 0 {
		t.Errorf("expected 0 new entries on re-run, got %d", store2.Added())
	}
}

func TestRun_DownloadFailureIsolated(t *testing.T) {
	t.Parallel()

	dataDir := t.TempDir()
	fetcher := newFakeFetcher()
	fetcher.pages[englishPage("1")] = fakePage{status: 200, body: twoRowListing}
	fetcher.failDownloads["https://dinhizmetleri.diyanet.gov.tr/x/First%20Sermon.pdf"] = true

	h, store := newTestHarvester(t, dataDir, fetcher)
	if err := h.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if store.Len() != 1 {
		t.Fatalf("expected the sibling candidate to survive, got %d entries", store.Len())
	}
	if store.Entries()[0].Title != "Second Sermon" {
		t.Errorf("expected Second Sermon to be catalogued, got %q", store.Entries()[0].Title)
	}
}

func TestRun_SlugCollisionDisambiguated(t *testing.T) {
	t.Parallel()

	dataDir := t.TempDir()
	fetcher := newFakeFetcher()
	fetcher.pages[englishPage("1")] = fakePage{status: 200, body: collidingListing}

	h, store := newTestHarvester(t, dataDir, fetcher)
	if err := h.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if store.Len() != 2 {
		t.Fatalf("expected 2 catalog entries, got %d", store.Len())
	}

	// Entries are prepended, so the second row processed sits first.
	disambiguated := store.Entries()[0]
	plain := store.Entries()[1]

	if plain.Filename != "weekly-sermon.pdf" {
		t.Errorf("first entry: expected plain slug filename, got %q", plain.Filename)
	}
	wantSuffix := "weekly-sermon-" + disambiguated.ID[:idSuffixLen] + ".pdf"
	if disambiguated.Filename != wantSuffix {
		t.Errorf("second entry: expected %q, got %q", wantSuffix, disambiguated.Filename)
	}
	if plain.Filename == disambiguated.Filename {
		t.Error("colliding slugs must resolve to distinct filenames")
	}
}

func TestRun_CorruptCatalogResetsToEmpty(t *testing.T) {
	t.Parallel()

	dataDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dataDir, "hutbes.json"), []byte("{corrupt"), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fetcher := newFakeFetcher()
	fetcher.pages[englishPage("1")] = fakePage{status: 200, body: singleRowListing}

	h, store := newTestHarvester(t, dataDir, fetcher)
	if err := h.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if store.Len() != 1 {
		t.Errorf("expected harvest to proceed from an empty catalog, got %d entries", store.Len())
	}
}

func TestRun_NoNewEntriesLeavesCatalogUntouched(t *testing.T) {
	t.Parallel()

	dataDir := t.TempDir()
	fetcher := newFakeFetcher()

	h, _ := newTestHarvester(t, dataDir, fetcher)
	if err := h.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dataDir, "hutbes.json")); !os.IsNotExist(err) {
		t.Error("hutbes.json must not be written when nothing new was found")
	}

	// The prayer catalog is rebuilt regardless.
	data, err := os.ReadFile(filepath.Join(dataDir, "prayers.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(data), "friday_prayer") {
		t.Errorf("prayers.json missing friday_prayer: %s", data)
	}
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file %s to exist: %v", path, err)
	}
}
