package harvest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/talhay/open-hutbe-api/internal/extractor"
)

func fixedNow() time.Time {
	return time.Date(2024, time.July, 1, 12, 0, 0, 0, time.UTC)
}

func TestResolveYear(t *testing.T) {
	t.Parallel()

	pageDate := time.Date(2021, time.March, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		candidate extractor.Candidate
		want      int
	}{
		{
			name: "explicit date wins over filename token",
			candidate: extractor.Candidate{
				SourcePDFURL: "https://example.test/sermon-2019-en.pdf",
				Date:         &pageDate,
			},
			want: 2021,
		},
		{
			name: "filename token used when no date",
			candidate: extractor.Candidate{
				SourcePDFURL: "https://example.test/sermon-2019-en.pdf",
			},
			want: 2019,
		},
		{
			name: "percent encoded filename token",
			candidate: extractor.Candidate{
				SourcePDFURL: "https://example.test/Hutbe%202022%20Ocak.pdf",
			},
			want: 2022,
		},
		{
			name: "current year fallback",
			candidate: extractor.Candidate{
				SourcePDFURL: "https://example.test/sermon-latest.pdf",
			},
			want: 2024,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tt.want, resolveYear(tt.candidate, fixedNow))
		})
	}
}
