package yaml_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/capdata"
	"github.com/fwojciec/capdata/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeConfig(t *testing.T) {
	t.Parallel()

	t.Run("returns defaults for an empty document", func(t *testing.T) {
		t.Parallel()

		cfg, err := yaml.DecodeConfig(strings.NewReader(""))

		require.NoError(t, err)
		assert.Equal(t, capdata.DefaultConfig(), cfg)
	})

	t.Run("overrides only the fields that are set", func(t *testing.T) {
		t.Parallel()

		cfg, err := yaml.DecodeConfig(strings.NewReader(`
root_url: http://127.0.0.1:8080/nfl/
selectors:
  roster_table: table.roster
`))

		require.NoError(t, err)
		assert.Equal(t, "http://127.0.0.1:8080/nfl/", cfg.RootURL)
		assert.Equal(t, "table.roster", cfg.Selectors.RosterTable)
		assert.Equal(t, "span.info", cfg.Selectors.SummaryLabel)
		assert.Equal(t, capdata.DefaultConfig().Seasons, cfg.Seasons)
		assert.Equal(t, "Cap Hit.1", cfg.Columns.DuplicateCapHit)
	})

	t.Run("replaces the season list", func(t *testing.T) {
		t.Parallel()

		cfg, err := yaml.DecodeConfig(strings.NewReader(`
seasons:
  - year: 2024
    path_suffix: 2024/
`))

		require.NoError(t, err)
		assert.Equal(t, []capdata.SeasonConfig{{Year: 2024, PathSuffix: "2024/"}}, cfg.Seasons)
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.DecodeConfig(strings.NewReader("root_uri: http://example.com/\n"))

		assert.Equal(t, capdata.EINVALID, capdata.ErrorCode(err))
	})

	t.Run("rejects an invalid result", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.DecodeConfig(strings.NewReader(`
seasons:
  - year: 2023
  - year: 2023
`))

		assert.Equal(t, capdata.EINVALID, capdata.ErrorCode(err))
	})
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("reads a file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "capscrape.yaml")
		require.NoError(t, os.WriteFile(path, []byte("root_url: http://127.0.0.1/nfl/\n"), 0644))

		cfg, err := yaml.LoadConfig(path)

		require.NoError(t, err)
		assert.Equal(t, "http://127.0.0.1/nfl/", cfg.RootURL)
	})

	t.Run("returns error for a missing file", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))

		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
