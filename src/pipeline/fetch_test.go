package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BielosX/wombat/poke-data/src/index"
	"github.com/BielosX/wombat/poke-data/src/outcome"
	"github.com/BielosX/wombat/poke-data/src/pokeapi"
	"github.com/BielosX/wombat/poke-data/src/pokemon"
	"github.com/BielosX/wombat/poke-data/src/store"
)

type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) Pokemon(ctx context.Context, id int) (*pokeapi.PokemonResponse, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*pokeapi.PokemonResponse)
	return p, args.Error(1)
}

func (m *mockAPI) Species(ctx context.Context, id int) (*pokeapi.PokemonSpecies, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*pokeapi.PokemonSpecies)
	return s, args.Error(1)
}

func (m *mockAPI) EvolutionChain(ctx context.Context, idOrUrl string) (*pokeapi.EvolutionChain, error) {
	args := m.Called(ctx, idOrUrl)
	c, _ := args.Get(0).(*pokeapi.EvolutionChain)
	return c, args.Error(1)
}

func (m *mockAPI) Move(ctx context.Context, url string) (*pokeapi.Move, error) {
	args := m.Called(ctx, url)
	mv, _ := args.Get(0).(*pokeapi.Move)
	return mv, args.Error(1)
}

func (m *mockAPI) Form(ctx context.Context, url string) (*pokeapi.PokemonForm, error) {
	args := m.Called(ctx, url)
	f, _ := args.Get(0).(*pokeapi.PokemonForm)
	return f, args.Error(1)
}

func newTestFetcher(t *testing.T) (*Fetcher, *store.Store, *mockAPI) {
	t.Helper()
	sugar := zap.NewNop().Sugar()
	s := store.New(t.TempDir())
	tables := pokemon.DefaultTables()
	api := &mockAPI{}
	transformer := pokemon.NewTransformer(pokemon.Config{Tables: tables})
	return NewFetcher(sugar, api, transformer, s, index.NewUpdater(sugar, s, tables)), s, api
}

func charizard(id int, name string) *pokeapi.PokemonResponse {
	return &pokeapi.PokemonResponse{
		Id:     id,
		Name:   name,
		Height: 17,
		Weight: 905,
		Types:  []pokeapi.PokemonType{{Slot: 1, Type: pokeapi.NamedResource{Name: "fire"}}},
		Moves: []pokeapi.PokemonMove{
			{Move: pokeapi.NamedResource{Name: "mega-punch", Url: "https://pokeapi.test/api/v2/move/5/"}},
		},
		Forms: []pokeapi.NamedResource{{Name: name, Url: "https://pokeapi.test/api/v2/pokemon-form/" + name + "/"}},
	}
}

func charizardSpecies() *pokeapi.PokemonSpecies {
	return &pokeapi.PokemonSpecies{
		Name:           "charizard",
		EvolutionChain: &pokeapi.ApiResource{Url: "https://pokeapi.test/api/v2/evolution-chain/2/"},
		Varieties: []pokeapi.SpeciesVariety{
			{IsDefault: true, Pokemon: pokeapi.NamedResource{Name: "charizard", Url: "https://pokeapi.test/api/v2/pokemon/6/"}},
			{Pokemon: pokeapi.NamedResource{Name: "charizard-mega-x", Url: "https://pokeapi.test/api/v2/pokemon/10034/"}},
		},
	}
}

func TestFetcher_SavesPokemonAndVarieties(t *testing.T) {
	f, s, api := newTestFetcher(t)
	power := 80
	api.On("Pokemon", mock.Anything, 6).Return(charizard(6, "charizard"), nil).Once()
	api.On("Pokemon", mock.Anything, 10034).Return(charizard(10034, "charizard-mega-x"), nil).Once()
	api.On("Species", mock.Anything, 6).Return(charizardSpecies(), nil).Once()
	api.On("EvolutionChain", mock.Anything, "https://pokeapi.test/api/v2/evolution-chain/2/").Return(&pokeapi.EvolutionChain{
		Chain: pokeapi.ChainLink{Species: pokeapi.NamedResource{Name: "charmander"}},
	}, nil).Once()
	api.On("Move", mock.Anything, "https://pokeapi.test/api/v2/move/5/").Return(&pokeapi.Move{
		Power: &power,
		Type:  &pokeapi.NamedResource{Name: "normal"},
	}, nil).Twice()
	api.On("Form", mock.Anything, mock.Anything).Return(nil, pokeapi.ErrNotFound)

	got, err := f.Fetch(context.Background(), 6)

	require.NoError(t, err)
	assert.Equal(t, outcome.Applied, got)
	base, err := s.Load(6)
	require.NoError(t, err)
	assert.Equal(t, "Charizard", base.Name)
	assert.InDelta(t, 1.7, base.Height, 1e-9)
	require.Len(t, base.Moves, 1)
	require.NotNil(t, base.Moves[0].MoveDetails)
	assert.Equal(t, 80, *base.Moves[0].Power)
	require.Len(t, base.Evolution.Chain, 1)

	variety, err := s.Load(10034)
	require.NoError(t, err)
	assert.Equal(t, "Charizard-mega-x", variety.Name)

	entries, err := s.LoadIndex()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 6, entries[0].Id)
	api.AssertExpectations(t)
}

func TestFetcher_PokemonFailureFailsItem(t *testing.T) {
	f, s, api := newTestFetcher(t)
	api.On("Pokemon", mock.Anything, 99999).Return(nil, &pokeapi.StatusError{Url: "pokemon/99999", Status: 404}).Once()

	got, err := f.Fetch(context.Background(), 99999)

	assert.ErrorIs(t, err, pokeapi.ErrNotFound)
	assert.Equal(t, outcome.Failed, got)
	_, err = s.Load(99999)
	assert.ErrorIs(t, err, store.ErrNotExist)
	api.AssertNotCalled(t, "Species", mock.Anything, mock.Anything)
}

func TestFetcher_MissingSpeciesUsesDefaults(t *testing.T) {
	f, s, api := newTestFetcher(t)
	p := charizard(6, "charizard")
	p.Moves = nil
	p.Forms = nil
	api.On("Pokemon", mock.Anything, 6).Return(p, nil).Once()
	api.On("Species", mock.Anything, 6).Return(nil, pokeapi.ErrUnexpectedStatus).Once()

	got, err := f.Fetch(context.Background(), 6)

	require.NoError(t, err)
	assert.Equal(t, outcome.Applied, got)
	record, err := s.Load(6)
	require.NoError(t, err)
	assert.Equal(t, "Common", record.Rarity)
	assert.Equal(t, "Unknown", record.Habitat)
	assert.Equal(t, 1, record.Evolution.Stage)
	api.AssertNotCalled(t, "EvolutionChain", mock.Anything, mock.Anything)
}

func TestFetcher_VarietyFailureIsNotFatal(t *testing.T) {
	f, s, api := newTestFetcher(t)
	species := charizardSpecies()
	species.EvolutionChain = nil
	p := charizard(6, "charizard")
	p.Moves = nil
	p.Forms = nil
	api.On("Pokemon", mock.Anything, 6).Return(p, nil).Once()
	api.On("Pokemon", mock.Anything, 10034).Return(nil, pokeapi.ErrUnexpectedStatus).Once()
	api.On("Species", mock.Anything, 6).Return(species, nil).Once()

	got, err := f.Fetch(context.Background(), 6)

	require.NoError(t, err)
	assert.Equal(t, outcome.Applied, got)
	_, err = s.Load(6)
	require.NoError(t, err)
	_, err = s.Load(10034)
	assert.ErrorIs(t, err, store.ErrNotExist)
}
