package export

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BielosX/wombat/poke-data/src/pokemon"
	"github.com/BielosX/wombat/poke-data/src/store"
)

func seed(t *testing.T) *store.Store {
	t.Helper()
	s := store.New(t.TempDir())
	require.NoError(t, s.Save(&pokemon.Record{Id: 1, Name: "Bulbasaur", Type: []string{"Grass", "Poison"}, Generation: 1, Rarity: "Common"}))
	require.NoError(t, s.Save(&pokemon.Record{Id: 150, Name: "Mewtwo", Type: []string{"Psychic"}, Generation: 1, Rarity: "Legendary"}))
	return s
}

func TestExport(t *testing.T) {
	s := seed(t)

	result, err := Export(zap.NewNop().Sugar(), s, []int{1, 150, 999})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Rows)
	assert.Equal(t, 1, result.Skipped)
	assert.Positive(t, result.ParquetSize())
	data, err := io.ReadAll(result.Csv())
	require.NoError(t, err)
	assert.Contains(t, string(data), "1,Bulbasaur,,Grass/Poison,0,0,1,Common\n")
	assert.Contains(t, string(data), "150,Mewtwo,,Psychic,0,0,1,Legendary\n")
}

func TestResult_WriteFiles(t *testing.T) {
	s := seed(t)
	result, err := Export(zap.NewNop().Sugar(), s, []int{1})
	require.NoError(t, err)
	dir := filepath.Join(t.TempDir(), "exports")

	paths, err := result.WriteFiles(dir, "pokemon")

	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "pokemon.parquet"), filepath.Join(dir, "pokemon.csv")}, paths)
	raw, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	assert.Equal(t, "PAR1", string(raw[:4]))
	assert.Equal(t, "PAR1", string(raw[len(raw)-4:]))
}
