package scraper_test

import (
	"testing"

	scraper "github.com/NakaSato/datadog-scraper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "strips fragment",
			input: "https://docs.example.com/api#authentication",
			want:  "https://docs.example.com/api",
		},
		{
			name:  "collapses trailing slash",
			input: "https://docs.example.com/api/",
			want:  "https://docs.example.com/api",
		},
		{
			name:  "collapses repeated trailing slashes",
			input: "https://docs.example.com/api//",
			want:  "https://docs.example.com/api",
		},
		{
			name:  "root path is preserved",
			input: "https://docs.example.com/",
			want:  "https://docs.example.com/",
		},
		{
			name:  "repeated slashes on the root collapse to it",
			input: "https://docs.example.com///",
			want:  "https://docs.example.com/",
		},
		{
			name:  "host only is untouched",
			input: "https://docs.example.com",
			want:  "https://docs.example.com",
		},
		{
			name:  "query string is preserved",
			input: "https://docs.example.com/search?q=metrics&page=2",
			want:  "https://docs.example.com/search?q=metrics&page=2",
		},
		{
			name:  "case is preserved",
			input: "https://docs.example.com/API/Metrics",
			want:  "https://docs.example.com/API/Metrics",
		},
		{
			name:  "fragment and trailing slash together",
			input: "https://docs.example.com/guides/#intro",
			want:  "https://docs.example.com/guides",
		},
		{
			name:  "already normalized input is unchanged",
			input: "https://docs.example.com/api/v2",
			want:  "https://docs.example.com/api/v2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := scraper.NormalizeURL(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		inputs := []string{
			"https://docs.example.com/api/#auth",
			"https://docs.example.com/",
			"https://docs.example.com/a/b/c/",
			"https://docs.example.com/a//",
		}
		for _, input := range inputs {
			once, err := scraper.NormalizeURL(input)
			require.NoError(t, err)
			twice, err := scraper.NormalizeURL(once)
			require.NoError(t, err)
			assert.Equal(t, once, twice, "normalizing %q twice changed the result", input)
		}
	})

	t.Run("rejects relative URLs", func(t *testing.T) {
		t.Parallel()

		_, err := scraper.NormalizeURL("/docs/api")
		require.Error(t, err)
		assert.Equal(t, scraper.EINVALID, scraper.ErrorCode(err))
	})

	t.Run("rejects unparseable input", func(t *testing.T) {
		t.Parallel()

		_, err := scraper.NormalizeURL("ht tp://bad url")
		require.Error(t, err)
		assert.Equal(t, scraper.EINVALID, scraper.ErrorCode(err))
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := scraper.NormalizeURL("")
		require.Error(t, err)
		assert.Equal(t, scraper.EINVALID, scraper.ErrorCode(err))
	})
}
