// Package harvest walks the Diyanet listing pages language by language
// and reconciles what it finds against the persisted catalog: new PDFs
// are downloaded into the language/year mirror tree and prepended to the
// catalog, known ones are skipped.
package harvest

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/talhay/open-hutbe-api/internal/catalog"
	"github.com/talhay/open-hutbe-api/internal/config"
	"github.com/talhay/open-hutbe-api/internal/extractor"
	"github.com/talhay/open-hutbe-api/internal/identity"
	"github.com/talhay/open-hutbe-api/internal/logger"
)

// idSuffixLen is how many id characters disambiguate a colliding slug.
const idSuffixLen = 6

// Fetcher is the harvester's view of the HTTP layer.
type Fetcher interface {
	Get(ctx context.Context, url string) (statusCode int, body []byte, err error)
	Download(ctx context.Context, url, dest string) bool
}

// Harvester runs one full harvest pass: prayers first, then the hutbe
// crawl across all languages. It runs strictly sequentially, one request
// in flight at a time, and owns the catalog store for the duration of
// the run. Running two harvests concurrently against the same data
// directory is unsupported; there is no locking around the catalog file.
type Harvester struct {
	cfg       config.Config
	fetcher   Fetcher
	extractor *extractor.PageExtractor
	store     *catalog.Store
	log       logger.Interface
	now       func() time.Time
}

// New creates a harvester. The store should be freshly constructed; Run
// loads it itself.
func New(
	cfg config.Config,
	fetcher Fetcher,
	pageExtractor *extractor.PageExtractor,
	store *catalog.Store,
	log logger.Interface,
) *Harvester {
	return &Harvester{
		cfg:       cfg,
		fetcher:   fetcher,
		extractor: pageExtractor,
		store:     store,
		log:       log.WithComponent("harvest"),
		now:       time.Now,
	}
}

// Run executes the full harvest. Per-item and per-page failures are
// logged and skipped, never escalated; only a failure to persist the
// catalog at the end surfaces as an error.
func (h *Harvester) Run(ctx context.Context) error {
	run := h.log.WithRunID(uuid.NewString())
	started := h.now()

	h.processPrayers(ctx, run)

	if err := h.store.Load(); err != nil {
		run.Warn("catalog unreadable, starting from empty", "path", h.cfg.HutbesPath(), "error", err)
	}
	run.Info("starting hutbe scan", "existing", h.store.Len())

	for _, lang := range Languages {
		h.harvestLanguage(ctx, run, lang)
	}

	if h.store.Added() == 0 {
		run.Info("no new hutbes found")
		return nil
	}

	if err := h.store.Save(); err != nil {
		return fmt.Errorf("persist catalog: %w", err)
	}
	run.WithDuration(h.now().Sub(started)).Info("harvest complete", "added", h.store.Added())

	return nil
}

// harvestLanguage pages through one language section until the site
// signals the end of results or the page budget is spent.
func (h *Harvester) harvestLanguage(ctx context.Context, run logger.Interface, lang Language) {
	log := run.With("language", lang.Code)
	log.Info("scanning language")

	for page := 1; page <= h.cfg.MaxPages; page++ {
		cont, err := h.harvestPage(ctx, log, lang, page)
		if err != nil {
			// A bad page never aborts the language, let alone the run.
			kind := KindUnexpected
			var pageErr *PageError
			if errors.As(err, &pageErr) {
				kind = pageErr.Kind
			}
			log.Warn("page failed", "page", page, "kind", string(kind), "error", err)
			continue
		}
		if !cont {
			break
		}
	}
}

// harvestPage fetches and reconciles one listing page. The returned
// bool reports whether pagination should continue for this language:
// a non-200 status or an empty page means end of results.
func (h *Harvester) harvestPage(ctx context.Context, log logger.Interface, lang Language, page int) (bool, error) {
	pageURL := fmt.Sprintf("%s?page=%d", lang.ListURL, page)
	log.Debug("scanning page", "page", page)

	status, body, err := h.fetcher.Get(ctx, pageURL)
	if err != nil {
		return true, pageError(pageURL, err)
	}
	if status != 200 {
		log.Info("page not available, ending language", "page", page, "status", status)
		return false, nil
	}

	candidates, err := h.extractor.Extract(pageURL, body)
	if err != nil {
		return true, pageError(pageURL, fmt.Errorf("%w: %w", ErrMalformedPage, err))
	}
	if len(candidates) == 0 {
		log.Info("no candidates on page, ending language", "page", page)
		return false, nil
	}

	for _, c := range candidates {
		h.processCandidate(ctx, log, lang, c)
	}

	return true, nil
}

// processCandidate promotes one extracted candidate to a catalog entry,
// unless it is already known or its download fails.
func (h *Harvester) processCandidate(ctx context.Context, log logger.Interface, lang Language, c extractor.Candidate) {
	id := identity.HutbeID(c.SourcePDFURL)
	if h.store.Known(id, c.SourcePDFURL) {
		return
	}

	year := resolveYear(c, h.now)
	baseSlug := identity.Slugify(c.Title)
	filename := baseSlug + ".pdf"
	dest := h.localPath(lang.Code, year, filename)

	// Another entry may already own this slug within the partition.
	// Disambiguate once with an id suffix; a repeat collision against
	// the suffixed name overwrites, which has not happened in practice.
	if fileExists(dest) {
		filename = fmt.Sprintf("%s-%s.pdf", baseSlug, id[:idSuffixLen])
		dest = h.localPath(lang.Code, year, filename)
	}

	log.Info("downloading hutbe", "title", c.Title, "url", c.SourcePDFURL, "year", year)
	if !h.fetcher.Download(ctx, c.SourcePDFURL, dest) {
		log.Warn("download failed, skipping candidate", "url", c.SourcePDFURL)
		return
	}

	h.store.Prepend(catalog.Entry{
		ID:           id,
		Title:        c.Title,
		Date:         h.entryDate(c),
		Year:         year,
		Language:     lang.Code,
		Filename:     filename,
		SourcePDFURL: c.SourcePDFURL,
		PDFURL: fmt.Sprintf("%s/pdfs/%s/%d/%s",
			h.cfg.PagesBase(), lang.Code, year, url.PathEscape(filename)),
	})
}

// processPrayers mirrors the static prayer PDFs and rewrites the prayer
// catalog wholesale, whether or not anything was freshly downloaded.
func (h *Harvester) processPrayers(ctx context.Context, run logger.Interface) {
	log := run.WithComponent("prayers")
	entries := make([]catalog.PrayerEntry, 0, len(Prayers))

	for _, p := range Prayers {
		filename := identity.Slugify(p.Title) + ".pdf"
		dest := filepath.Join(h.cfg.PDFRoot(), "prayers", filename)

		if fileExists(dest) {
			log.Debug("prayer already mirrored", "title", p.Title)
		} else {
			log.Info("downloading prayer", "title", p.Title)
			if !h.fetcher.Download(ctx, p.URL, dest) {
				log.Warn("prayer download failed", "title", p.Title)
				continue
			}
		}

		entries = append(entries, catalog.PrayerEntry{
			ID:        p.Key,
			Title:     p.Title,
			Filename:  filename,
			PDFURL:    fmt.Sprintf("%s/pdfs/prayers/%s", h.cfg.PagesBase(), url.PathEscape(filename)),
			SourceURL: p.URL,
		})
	}

	if err := catalog.WritePrayers(h.cfg.PrayersPath(), entries); err != nil {
		log.Error("writing prayer catalog", "path", h.cfg.PrayersPath(), "error", err)
		return
	}
	log.Info("prayer catalog updated", "entries", len(entries))
}

// entryDate formats the candidate's page date, falling back to the
// observation date when the page carried none. The fallback is a
// discovery timestamp, not a publication date.
func (h *Harvester) entryDate(c extractor.Candidate) string {
	if c.Date != nil {
		return c.Date.Format("2006-01-02")
	}
	return h.now().Format("2006-01-02")
}

func (h *Harvester) localPath(langCode string, year int, filename string) string {
	return filepath.Join(h.cfg.PDFRoot(), langCode, strconv.Itoa(year), filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
