package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/talhay/open-hutbe-api/internal/catalog"
)

func tempCatalogPath(t *testing.T) string {
	t.Helper()

	return filepath.Join(t.TempDir(), "hutbes.json")
}

func TestStore_LoadMissingFile(t *testing.T) {
	t.Parallel()

	s := catalog.NewStore(tempCatalogPath(t))

	require.NoError(t, s.Load())
	require.Zero(t, s.Len())
}

func TestStore_LoadCorruptFile(t *testing.T) {
	t.Parallel()

	path := tempCatalogPath(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s := catalog.NewStore(path)

	err := s.Load()
	require.ErrorIs(t, err, catalog.ErrCorruptCatalog)
	require.Zero(t, s.Len(), "corrupt catalog must reset to empty")
}

func TestStore_SaveAndReload(t *testing.T) {
	t.Parallel()

	path := tempCatalogPath(t)
	s := catalog.NewStore(path)
	require.NoError(t, s.Load())

	first := catalog.Entry{
		ID:           "aaaaaaaaaaaaaaaa",
		Title:        "Older Sermon",
		Date:         "2020-01-01",
		Year:         2020,
		Language:     "en",
		Filename:     "older-sermon.pdf",
		SourcePDFURL: "https://example.test/a.pdf",
		PDFURL:       "https://pages.test/pdfs/en/2020/older-sermon.pdf",
	}
	second := catalog.Entry{
		ID:           "bbbbbbbbbbbbbbbb",
		Title:        "Newer Sermon",
		Date:         "2021-02-02",
		Year:         2021,
		Language:     "en",
		Filename:     "newer-sermon.pdf",
		SourcePDFURL: "https://example.test/b.pdf",
		PDFURL:       "https://pages.test/pdfs/en/2021/newer-sermon.pdf",
	}

	s.Prepend(first)
	s.Prepend(second)
	require.Equal(t, 2, s.Added())
	require.NoError(t, s.Save())

	reloaded := catalog.NewStore(path)
	require.NoError(t, reloaded.Load())
	require.Equal(t, 2, reloaded.Len())
	require.Equal(t, "Newer Sermon", reloaded.Entries()[0].Title, "newest entry stays first")
	require.Zero(t, reloaded.Added())
}

func TestStore_KnownByIDAndURL(t *testing.T) {
	t.Parallel()

	s := catalog.NewStore(tempCatalogPath(t))
	require.NoError(t, s.Load())

	s.Prepend(catalog.Entry{
		ID:           "cafecafecafecafe",
		SourcePDFURL: "https://example.test/c.pdf",
	})

	require.True(t, s.Known("cafecafecafecafe", "https://other.test/x.pdf"))
	require.True(t, s.Known("0000000000000000", "https://example.test/c.pdf"))
	require.False(t, s.Known("0000000000000000", "https://other.test/x.pdf"))
}
