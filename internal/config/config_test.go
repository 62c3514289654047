package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)

	assert.Equal(t, ":3000", c.ListenAddr)
	assert.Equal(t, "sheets", c.StorageBackend)
	assert.Equal(t, 5, c.RecentLimit)
	assert.Equal(t, 3, c.DaysPerPage)
	assert.Equal(t, "top_articles_with_captions.json", c.SnapshotPath)
	assert.Equal(t, 24*time.Hour, c.RecapInterval)
	assert.Empty(t, c.CredsB64)
	assert.Empty(t, c.GitHubPAT)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.hcl")
	content := `
sheet_id = "sheet-from-file"
recent_limit = 7
feeds = ["https://example.com/feed", "https://example.org/rss"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Setenv("DESK_SHEET_ID", "sheet-from-env")
	t.Setenv("DESK_GITHUB_PAT", "token")

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sheet-from-env", c.SheetID)
	assert.Equal(t, "token", c.GitHubPAT)
	assert.Equal(t, 7, c.RecentLimit)
	assert.Equal(t, []string{"https://example.com/feed", "https://example.org/rss"}, c.Feeds)
}

func TestConfig_Location(t *testing.T) {
	assert.Equal(t, "America/Los_Angeles", Config{Timezone: "America/Los_Angeles"}.Location().String())
	assert.Equal(t, time.UTC, Config{Timezone: "Not/AZone"}.Location())
}
