package pokemon

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BielosX/wombat/poke-data/src/pokeapi"
)

const bulbasaurJSON = `{
	"id": 1, "name": "bulbasaur", "height": 7, "weight": 69,
	"base_experience": 64, "order": 1, "is_default": true,
	"types": [
		{"slot": 1, "type": {"name": "grass", "url": ""}},
		{"slot": 2, "type": {"name": "poison", "url": ""}}
	],
	"abilities": [
		{"ability": {"name": "overgrow", "url": "https://pokeapi.co/api/v2/ability/65/"}, "is_hidden": false, "slot": 1},
		{"ability": {"name": "chlorophyll", "url": "https://pokeapi.co/api/v2/ability/34/"}, "is_hidden": true, "slot": 3}
	],
	"stats": [
		{"base_stat": 45, "stat": {"name": "hp"}},
		{"base_stat": 49, "stat": {"name": "attack"}},
		{"base_stat": 65, "stat": {"name": "special-attack"}},
		{"base_stat": 1, "stat": {"name": "accuracy"}}
	],
	"sprites": {"front_default": "https://sprites.test/1.png", "back_default": null},
	"held_items": [
		{"item": {"name": "kings-rock"}, "version_details": [{"rarity": 5}]},
		{"item": {"name": "oran-berry"}, "version_details": []}
	],
	"forms": [{"name": "bulbasaur", "url": "https://pokeapi.co/api/v2/pokemon-form/1/"}],
	"cries": {"latest": "https://cries.test/1.ogg", "legacy": null}
}`

const bulbasaurSpeciesJSON = `{
	"id": 1, "name": "bulbasaur",
	"genera": [
		{"genus": "Pokémon Graine", "language": {"name": "fr"}},
		{"genus": "Seed Pokémon", "language": {"name": "en"}}
	],
	"flavor_text_entries": [
		{"flavor_text": "Une graine", "language": {"name": "fr"}, "version": {"name": "red"}},
		{"flavor_text": "A strange seed was\nplanted on its\fback.", "language": {"name": "en"}, "version": {"name": "red"}},
		{"flavor_text": "Second.", "language": {"name": "en"}, "version": {"name": "blue"}}
	],
	"habitat": {"name": "grassland"},
	"generation": {"name": "generation-i"},
	"growth_rate": {"name": "medium-slow"},
	"capture_rate": 45, "base_happiness": 50, "hatch_counter": 20, "gender_rate": 1,
	"has_gender_differences": false,
	"varieties": [
		{"is_default": true, "pokemon": {"name": "bulbasaur", "url": "https://pokeapi.co/api/v2/pokemon/1/"}}
	]
}`

func decode[T any](t *testing.T, raw string) *T {
	t.Helper()
	v := new(T)
	require.NoError(t, json.Unmarshal([]byte(raw), v))
	return v
}

func TestTransform_Bulbasaur(t *testing.T) {
	transformer := NewTransformer(Config{Tables: DefaultTables()})
	bundle := &Bundle{
		Id:      1,
		Pokemon: decode[pokeapi.PokemonResponse](t, bulbasaurJSON),
		Species: decode[pokeapi.PokemonSpecies](t, bulbasaurSpeciesJSON),
		Forms: map[string]*pokeapi.PokemonForm{
			"https://pokeapi.co/api/v2/pokemon-form/1/": {Name: "bulbasaur", IsDefault: true},
		},
	}

	r := transformer.Transform(bundle)

	assert.Equal(t, 1, r.Id)
	assert.Equal(t, "Bulbasaur", r.Name)
	assert.Equal(t, "Seed Pokémon", r.Species)
	assert.Equal(t, []string{"Grass", "Poison"}, r.Type)
	assert.Equal(t, []TypeDetail{{Name: "Grass", Slot: 1}, {Name: "Poison", Slot: 2}}, r.TypeDetails)
	assert.InDelta(t, 0.7, r.Height, 1e-9)
	assert.InDelta(t, 6.9, r.Weight, 1e-9)
	assert.Equal(t, "Chlorophyll", r.Abilities[1].Name)
	assert.True(t, r.Abilities[1].IsHidden)
	assert.Equal(t, map[string]int{
		"hp": 45, "attack": 49, "defense": 0,
		"specialAttack": 65, "specialDefense": 0, "speed": 0,
	}, r.BaseStats)
	assert.Equal(t, "A strange seed was planted on its back.", r.Description)
	assert.Equal(t, []FlavorText{
		{Text: "A strange seed was planted on its back.", Version: "red"},
		{Text: "Second.", Version: "blue"},
	}, r.FlavorTexts)
	assert.Equal(t, "#78C850", r.ColorPalette.Primary)
	assert.Equal(t, []string{"#78C850", "#A040A0", "#F8D030"}, r.ColorPalette.Highlights)
	assert.Equal(t, DefaultSpriteBaseUrl+"other/official-artwork/1.png", r.Artwork.Get("official"))
	assert.Equal(t, "https://sprites.test/1.png", r.Artwork.Get("front"))
	assert.Nil(t, r.Artwork.Back)
	assert.Equal(t, "Grassland", r.Habitat)
	assert.Equal(t, 1, r.Generation)
	assert.Equal(t, "medium slow", r.GrowthRate)
	assert.Equal(t, "Common", r.Rarity)
	assert.Equal(t, 50, r.BaseHappiness)
	assert.Equal(t, 1, r.GenderRate)
	assert.Equal(t, []HeldItem{{Name: "Kings Rock", Rarity: 5}, {Name: "Oran Berry", Rarity: 1}}, r.HeldItems)
	require.Len(t, r.Forms, 1)
	require.NotNil(t, r.Forms[0].FormDetails)
	assert.True(t, r.Forms[0].IsDefault)
	require.Len(t, r.Varieties, 1)
	assert.Equal(t, "", r.Varieties[0].Type)
	assert.Equal(t, Evolution{Stage: 1, Generation: 1}, r.Evolution)
	assert.Equal(t, "https://cries.test/1.ogg", *r.Cries["latest"])
}

func TestTransform_MissingSpeciesFieldsUseDefaults(t *testing.T) {
	transformer := NewTransformer(Config{})
	p := decode[pokeapi.PokemonResponse](t, `{"id": 10, "name": "caterpie", "height": 3, "weight": 29,
		"types": [{"slot": 1, "type": {"name": "bug"}}]}`)

	for name, species := range map[string]*pokeapi.PokemonSpecies{
		"nil species":   nil,
		"empty species": {},
		"null fields": decode[pokeapi.PokemonSpecies](t,
			`{"habitat": null, "generation": null, "growth_rate": null, "base_happiness": null}`),
	} {
		t.Run(name, func(t *testing.T) {
			r := transformer.Transform(&Bundle{Id: 10, Pokemon: p, Species: species})

			assert.Equal(t, "Unknown", r.Habitat)
			assert.Equal(t, 1, r.Generation)
			assert.Equal(t, "medium", r.GrowthRate)
			assert.Equal(t, "Common", r.Rarity)
			assert.Equal(t, "Pokémon", r.Species)
			assert.Equal(t, 45, r.CaptureRate)
			assert.Equal(t, 70, r.BaseHappiness)
			assert.Equal(t, 20, r.HatchCounter)
			assert.Equal(t, -1, r.GenderRate)
			assert.Equal(t, 0, r.BaseExperience)
			assert.Equal(t, 10, r.Order)
			assert.True(t, r.IsDefault)
			assert.Empty(t, r.Description)
			assert.NotNil(t, r.Cries)
		})
	}
}

func TestTransform_RarityPriority(t *testing.T) {
	transformer := NewTransformer(Config{})
	p := &pokeapi.PokemonResponse{Name: "x"}
	tests := []struct {
		species pokeapi.PokemonSpecies
		want    string
	}{
		{pokeapi.PokemonSpecies{IsLegendary: true, IsMythical: true, IsBaby: true}, "Legendary"},
		{pokeapi.PokemonSpecies{IsMythical: true, IsBaby: true}, "Mythical"},
		{pokeapi.PokemonSpecies{IsBaby: true}, "Baby"},
		{pokeapi.PokemonSpecies{}, "Common"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			r := transformer.Transform(&Bundle{Id: 1, Pokemon: p, Species: &tt.species})
			assert.Equal(t, tt.want, r.Rarity)
		})
	}
}

func TestTransform_GenerationFromRomanSuffix(t *testing.T) {
	transformer := NewTransformer(Config{})
	p := &pokeapi.PokemonResponse{Name: "x"}
	for name, want := range map[string]int{
		"generation-iv":   4,
		"generation-ix":   9,
		"generation-viii": 8,
		"generation-3":    3,
		"generation-zz":   1,
	} {
		t.Run(name, func(t *testing.T) {
			s := &pokeapi.PokemonSpecies{Generation: &pokeapi.NamedResource{Name: name}}
			r := transformer.Transform(&Bundle{Id: 1, Pokemon: p, Species: s})
			assert.Equal(t, want, r.Generation)
		})
	}
}

func TestTransform_PaletteTableIsInjected(t *testing.T) {
	p := &pokeapi.PokemonResponse{Name: "gastly", Types: []pokeapi.PokemonType{{Slot: 1, Type: pokeapi.NamedResource{Name: "ghost"}}}}

	r := NewTransformer(Config{Tables: DefaultTables()}).Transform(&Bundle{Id: 92, Pokemon: p})
	assert.Equal(t, "#A8A878", r.ColorPalette.Primary, "unlisted type uses the neutral palette")

	tables, err := DefaultTables().WithPalettes(map[string]TypeColors{
		"Ghost": {Primary: "#705898", Secondary: "#A040A0", Accent: "#F8F8F8"},
	})
	require.NoError(t, err)
	r = NewTransformer(Config{Tables: tables}).Transform(&Bundle{Id: 92, Pokemon: p})
	assert.Equal(t, "#705898", r.ColorPalette.Primary)
	assert.Equal(t, "#F8F8F8", r.ColorPalette.Background)
	assert.Equal(t, "#2C2C2C", r.ColorPalette.Text)
}

func TestTransform_TruncatesMovesAndFlavorTexts(t *testing.T) {
	transformer := NewTransformer(Config{MaxMoves: 15, MaxFlavorTexts: 5})
	p := &pokeapi.PokemonResponse{Name: "mew"}
	for i := 0; i < 40; i++ {
		p.Moves = append(p.Moves, pokeapi.PokemonMove{Move: pokeapi.NamedResource{
			Name: fmt.Sprintf("move-%d", i),
			Url:  fmt.Sprintf("https://pokeapi.co/api/v2/move/%d/", i),
		}})
	}
	s := &pokeapi.PokemonSpecies{}
	for i := 0; i < 9; i++ {
		s.FlavorTextEntries = append(s.FlavorTextEntries, pokeapi.FlavorTextEntry{
			FlavorText: fmt.Sprintf("text %d", i),
			Language:   pokeapi.NamedResource{Name: "en"},
		})
	}
	power := 40
	details := map[string]*pokeapi.Move{
		"https://pokeapi.co/api/v2/move/0/": {Power: &power, Type: &pokeapi.NamedResource{Name: "psychic"}},
	}

	r := transformer.Transform(&Bundle{Id: 151, Pokemon: p, Species: s, Moves: details})

	require.Len(t, r.Moves, 15)
	assert.Len(t, r.FlavorTexts, 5)
	assert.Len(t, transformer.MoveUrls(p), 15)
	assert.Equal(t, "Move 0", r.Moves[0].Name)
	require.NotNil(t, r.Moves[0].MoveDetails)
	assert.Equal(t, "Psychic", r.Moves[0].Type)
	assert.Equal(t, 40, *r.Moves[0].Power)
	assert.Equal(t, "unknown", r.Moves[0].DamageClass)
	assert.Nil(t, r.Moves[1].MoveDetails)
	assert.Equal(t, "unknown", r.FlavorTexts[0].Version)
}

func TestTransform_VarietyLabels(t *testing.T) {
	transformer := NewTransformer(Config{})
	s := &pokeapi.PokemonSpecies{Varieties: []pokeapi.SpeciesVariety{
		{IsDefault: true, Pokemon: pokeapi.NamedResource{Name: "charizard"}},
		{Pokemon: pokeapi.NamedResource{Name: "charizard-mega-x"}},
		{Pokemon: pokeapi.NamedResource{Name: "charizard-gmax"}},
		{Pokemon: pokeapi.NamedResource{Name: "vulpix-alola"}},
	}}

	r := transformer.Transform(&Bundle{Id: 6, Pokemon: &pokeapi.PokemonResponse{Name: "charizard"}, Species: s})

	labels := make([]string, 0, len(r.Varieties))
	for _, v := range r.Varieties {
		labels = append(labels, v.Type)
	}
	assert.Equal(t, []string{"", "Mega", "Gigantamax", "Alolan"}, labels)
	assert.Equal(t, "Charizard mega x", r.Varieties[1].Name)
}

func TestRecord_JSONRoundTripKeepsEvolutionShape(t *testing.T) {
	withChain := Record{Evolution: Evolution{Chain: []EvolutionNode{{Name: "Eevee", Level: 1, Details: []EvolutionDetail{}}}}}
	b, err := json.Marshal(withChain)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"evolution":[{"name":"Eevee","level":1,"details":[]}]`)

	stub := Record{Evolution: Evolution{Stage: 1, Generation: 4}}
	b, err = json.Marshal(stub)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"evolution":{"stage":1,"generation":4}`)

	var back Record
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, stub.Evolution, back.Evolution)
}

func TestMove_DetailsOmittedWhenUnresolved(t *testing.T) {
	b, err := json.Marshal(Move{Name: "Pound", Url: "u"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Pound","url":"u"}`, string(b))
}
