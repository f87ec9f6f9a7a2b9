package catalog

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	internalcatalog "github.com/talhay/open-hutbe-api/internal/catalog"
	"github.com/talhay/open-hutbe-api/internal/config"
)

// newListCommand creates the catalog list command.
func newListCommand() *cobra.Command {
	var language string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalogued hutbes in a table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromViper(viper.GetViper()).WithDefaults()

			store := internalcatalog.NewStore(cfg.HutbesPath())
			if err := store.Load(); err != nil {
				return fmt.Errorf("failed to load catalog: %w", err)
			}

			entries := store.Entries()
			if len(entries) == 0 {
				fmt.Println("No hutbes catalogued yet. Run 'hutbe harvest' first.")
				return nil
			}

			renderTable(entries, language)
			return nil
		},
	}

	cmd.Flags().StringVar(&language, "language", "", "Only show entries for one language code")

	return cmd
}

// renderTable prints the catalog entries, newest first, optionally
// filtered by language.
func renderTable(entries []internalcatalog.Entry, language string) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"ID", "Title", "Language", "Year", "Date", "Filename"})

	shown := 0
	for _, e := range entries {
		if language != "" && e.Language != language {
			continue
		}
		t.AppendRow(table.Row{e.ID, e.Title, e.Language, e.Year, e.Date, e.Filename})
		shown++
	}

	t.AppendFooter(table.Row{"", fmt.Sprintf("%d entries", shown)})
	t.Render()
}
