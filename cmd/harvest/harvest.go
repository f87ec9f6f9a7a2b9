// Package harvest implements the harvest command, the main entrypoint
// that mirrors the prayer PDFs and runs the incremental hutbe crawl.
package harvest

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/talhay/open-hutbe-api/internal/catalog"
	"github.com/talhay/open-hutbe-api/internal/config"
	"github.com/talhay/open-hutbe-api/internal/extractor"
	"github.com/talhay/open-hutbe-api/internal/fetcher"
	"github.com/talhay/open-hutbe-api/internal/harvest"
	"github.com/talhay/open-hutbe-api/internal/logger"
)

// Command returns the harvest command.
func Command() *cobra.Command {
	var maxPages int

	cmd := &cobra.Command{
		Use:   "harvest",
		Short: "Run one harvest pass over all language sections",
		Long: `Harvest mirrors the two static prayer PDFs, then walks every language
section page by page, downloading newly published sermon PDFs and
merging them into hutbes.json. Per-item and per-page failures are
logged and skipped; the pass always runs to completion.

The harvest is strictly sequential. Do not run two harvests against the
same data directory at once; nothing locks the catalog files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromViper(viper.GetViper())
			if maxPages > 0 {
				cfg.MaxPages = maxPages
			}
			cfg = cfg.WithDefaults()
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			harvester, err := buildHarvester(cfg)
			if err != nil {
				return err
			}

			return harvester.Run(cmd.Context())
		},
	}

	cmd.Flags().IntVar(&maxPages, "max-pages", 0,
		"Override the per-language page budget (0 means use HUTBE_MAX_PAGES or the default)")

	return cmd
}

// buildHarvester wires config into the logger, fetcher, extractor, and
// catalog store the harvester depends on.
func buildHarvester(cfg config.Config) (*harvest.Harvester, error) {
	log, err := logger.New(logger.Config{
		Level:    cfg.LogLevel,
		Encoding: cfg.LogFormat,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	pageExtractor, err := extractor.New(extractor.DefaultSiteBase)
	if err != nil {
		return nil, fmt.Errorf("failed to create extractor: %w", err)
	}

	httpFetcher := fetcher.New(fetcher.Config{
		Timeout:            cfg.Timeout,
		InsecureSkipVerify: cfg.InsecureSkipVerify,
	}, log)

	store := catalog.NewStore(cfg.HutbesPath())

	return harvest.New(cfg, httpFetcher, pageExtractor, store, log), nil
}
