package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(viper.New(), "")

	require.NoError(t, err)
	assert.Equal(t, "https://pokeapi.co/api/v2/", cfg.API.BaseUrl)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, 600*time.Millisecond, cfg.API.Delay)
	assert.Equal(t, "src/data/pokemon", cfg.Data.Dir)
	assert.Equal(t, "public", cfg.Data.PublicDir)
	assert.Equal(t, 10000, cfg.Index.VarietyThreshold)
	assert.Equal(t, 15, cfg.Transform.MaxMoves)
	assert.Equal(t, 5, cfg.Transform.MaxFlavorTexts)
	assert.Equal(t, 2000, cfg.Cache.Size)
	assert.Equal(t, 2*time.Hour, cfg.Cache.TTL)
	assert.Empty(t, cfg.Cache.Dir)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
api:
  delay: 50ms
data:
  dir: /tmp/pokemon
transform:
  palettes:
    Ice:
      primary: "#98D8D8"
      secondary: "#6890F0"
      accent: "#F8F8F8"
`), 0o644))
	t.Setenv("POKEDATA_DATA_PUBLIC_DIR", "/srv/www")
	t.Setenv("POKEDATA_TRANSFORM_MAX_MOVES", "4")

	cfg, err := Load(viper.New(), file)

	require.NoError(t, err)
	assert.Equal(t, 50*time.Millisecond, cfg.API.Delay)
	assert.Equal(t, "/tmp/pokemon", cfg.Data.Dir)
	assert.Equal(t, "/srv/www", cfg.Data.PublicDir)
	assert.Equal(t, 4, cfg.Transform.MaxMoves)

	tables, err := cfg.Tables()
	require.NoError(t, err)
	assert.Equal(t, "#98D8D8", tables.Palettes["Ice"].Primary)
	assert.Equal(t, "#F08030", tables.Palettes["Fire"].Primary)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Error(t, err)
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := Config{
		API:     API{BaseUrl: "not a url", Timeout: 0, Delay: -time.Second},
		Sprites: Sprites{BaseUrl: "https://sprites.test/"},
		Log:     Log{Format: "xml"},
	}

	err := cfg.Validate()

	require.Error(t, err)
	for _, msg := range []string{
		"api.base_url",
		"api.timeout",
		"api.delay",
		"data.dir",
		"data.public_dir",
		"index.variety_threshold",
		"transform.max_moves",
		"cache.size",
		"log.format",
	} {
		assert.Contains(t, err.Error(), msg)
	}
	assert.NotContains(t, err.Error(), "sprites.base_url")
}

func TestTables_ThresholdFromConfig(t *testing.T) {
	cfg := Config{Index: Index{VarietyThreshold: 20000}}

	tables, err := cfg.Tables()

	require.NoError(t, err)
	assert.False(t, tables.IsVariety(15000, "Bulbasaur"))
	assert.True(t, tables.IsVariety(20000, "Bulbasaur"))
}
