package pokemon

import (
	"fmt"
	"maps"
	"strings"

	"github.com/BielosX/wombat/poke-data/src/pokeapi"
)

const (
	DefaultSpriteBaseUrl  = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/"
	DefaultMaxMoves       = 15
	DefaultMaxFlavorTexts = 5

	defaultGenus         = "Pokémon"
	defaultHabitat       = "Unknown"
	defaultGrowthRate    = "medium"
	defaultGeneration    = 1
	defaultCaptureRate   = 45
	defaultBaseHappiness = 70
	defaultHatchCounter  = 20
	defaultGenderRate    = -1
	defaultHeldRarity    = 1
	defaultMoveType      = "Normal"
	defaultDamageClass   = "unknown"
	defaultVersion       = "unknown"
	englishLanguage      = "en"
)

// Bundle is everything fetched for one entity. Species may be empty and
// Chain, Moves and Forms may be nil when those lookups failed.
type Bundle struct {
	Id      int
	Pokemon *pokeapi.PokemonResponse
	Species *pokeapi.PokemonSpecies
	Chain   *pokeapi.EvolutionChain
	// Moves and Forms are keyed by the resource url.
	Moves map[string]*pokeapi.Move
	Forms map[string]*pokeapi.PokemonForm
}

type Config struct {
	Tables         Tables
	SpriteBaseUrl  string
	MaxMoves       int
	MaxFlavorTexts int
}

type Transformer struct {
	cfg Config
}

// NewTransformer fills unset limits with their defaults. A zero Tables value
// is replaced by DefaultTables.
func NewTransformer(cfg Config) *Transformer {
	if cfg.Tables.StatKeys == nil && cfg.Tables.Palettes == nil {
		cfg.Tables = DefaultTables()
	}
	if cfg.SpriteBaseUrl == "" {
		cfg.SpriteBaseUrl = DefaultSpriteBaseUrl
	}
	if cfg.MaxMoves <= 0 {
		cfg.MaxMoves = DefaultMaxMoves
	}
	if cfg.MaxFlavorTexts <= 0 {
		cfg.MaxFlavorTexts = DefaultMaxFlavorTexts
	}
	if !strings.HasSuffix(cfg.SpriteBaseUrl, "/") {
		cfg.SpriteBaseUrl += "/"
	}
	return &Transformer{cfg: cfg}
}

// MaxMoves is the number of moves a record keeps; callers only need move
// details for that many.
func (t *Transformer) MaxMoves() int {
	return t.cfg.MaxMoves
}

func (t *Transformer) Tables() Tables {
	return t.cfg.Tables
}

// Transform builds the flat record; b.Pokemon must be set. Missing species
// fields fall back to fixed defaults rather than failing.
func (t *Transformer) Transform(b *Bundle) *Record {
	p := b.Pokemon
	s := b.Species
	if s == nil {
		s = &pokeapi.PokemonSpecies{}
	}

	types, typeDetails := t.types(p)
	primary := "Normal"
	if len(types) > 0 {
		primary = types[0]
	}
	description, flavorTexts := t.flavorTexts(s)
	generation := defaultGeneration
	if s.Generation != nil {
		if n, ok := generationNumber(s.Generation.Name); ok {
			generation = n
		}
	}

	record := &Record{
		Id:                   b.Id,
		Name:                 capitalize(p.Name),
		Species:              genus(s),
		Type:                 types,
		TypeDetails:          typeDetails,
		Height:               float64(p.Height) / 10,
		Weight:               float64(p.Weight) / 10,
		Abilities:            abilities(p),
		BaseStats:            t.stats(p),
		Description:          description,
		FlavorTexts:          flavorTexts,
		ColorPalette:         t.cfg.Tables.PaletteFor(primary),
		Artwork:              t.artwork(b.Id, p.Sprites),
		Evolution:            evolution(b.Chain, generation),
		Moves:                t.moves(p, b.Moves),
		Habitat:              habitat(s),
		Generation:           generation,
		Rarity:               rarity(s),
		BaseExperience:       valueOr(p.BaseExperience, 0),
		Order:                valueOr(p.Order, b.Id),
		IsDefault:            valueOr(p.IsDefault, true),
		CaptureRate:          valueOr(s.CaptureRate, defaultCaptureRate),
		BaseHappiness:        valueOr(s.BaseHappiness, defaultBaseHappiness),
		GrowthRate:           growthRate(s),
		HatchCounter:         valueOr(s.HatchCounter, defaultHatchCounter),
		HasGenderDifferences: s.HasGenderDifferences,
		GenderRate:           valueOr(s.GenderRate, defaultGenderRate),
		Forms:                forms(p, b.Forms),
		Varieties:            t.varieties(s),
		HeldItems:            heldItems(p),
		Cries:                maps.Clone(p.Cries),
	}
	if record.Cries == nil {
		record.Cries = map[string]*string{}
	}
	return record
}

func valueOr[T any](v *T, fallback T) T {
	if v == nil {
		return fallback
	}
	return *v
}

func genus(s *pokeapi.PokemonSpecies) string {
	for _, g := range s.Genera {
		if g.Language.Name == englishLanguage {
			if g.Genus == "" {
				return defaultGenus
			}
			return g.Genus
		}
	}
	return defaultGenus
}

func (t *Transformer) types(p *pokeapi.PokemonResponse) ([]string, []TypeDetail) {
	types := make([]string, 0, len(p.Types))
	details := make([]TypeDetail, 0, len(p.Types))
	for _, pt := range p.Types {
		name := capitalize(pt.Type.Name)
		types = append(types, name)
		details = append(details, TypeDetail{Name: name, Slot: pt.Slot})
	}
	return types, details
}

func abilities(p *pokeapi.PokemonResponse) []Ability {
	result := make([]Ability, 0, len(p.Abilities))
	for _, a := range p.Abilities {
		result = append(result, Ability{
			Name:     displayName(a.Ability.Name),
			Url:      a.Ability.Url,
			IsHidden: a.IsHidden,
			Slot:     a.Slot,
		})
	}
	return result
}

func (t *Transformer) stats(p *pokeapi.PokemonResponse) map[string]int {
	stats := maps.Clone(t.cfg.Tables.DefaultStats)
	if stats == nil {
		stats = make(map[string]int)
	}
	for _, st := range p.Stats {
		if key, ok := t.cfg.Tables.StatKeys[st.Stat.Name]; ok {
			stats[key] = st.BaseStat
		}
	}
	return stats
}

func (t *Transformer) flavorTexts(s *pokeapi.PokemonSpecies) (string, []FlavorText) {
	description := ""
	texts := make([]FlavorText, 0, t.cfg.MaxFlavorTexts)
	for _, entry := range s.FlavorTextEntries {
		if entry.Language.Name != englishLanguage {
			continue
		}
		clean := strings.NewReplacer("\n", " ", "\f", " ").Replace(entry.FlavorText)
		if description == "" {
			description = clean
		}
		if len(texts) < t.cfg.MaxFlavorTexts {
			version := entry.Version.Name
			if version == "" {
				version = defaultVersion
			}
			texts = append(texts, FlavorText{Text: clean, Version: version})
		}
	}
	return description, texts
}

func (t *Transformer) artwork(id int, sprites pokeapi.PokemonSprites) *Artwork {
	official := fmt.Sprintf("%sother/official-artwork/%d.png", t.cfg.SpriteBaseUrl, id)
	return &Artwork{
		Official:         &official,
		Front:            sprites.FrontDefault,
		Back:             sprites.BackDefault,
		Shiny:            sprites.FrontShiny,
		BackShiny:        sprites.BackShiny,
		FrontFemale:      sprites.FrontFemale,
		BackFemale:       sprites.BackFemale,
		FrontShinyFemale: sprites.FrontShinyFemale,
		BackShinyFemale:  sprites.BackShinyFemale,
	}
}

func evolution(chain *pokeapi.EvolutionChain, generation int) Evolution {
	if chain == nil || chain.Chain.Species.Name == "" {
		return Evolution{Stage: 1, Generation: generation}
	}
	return Evolution{Chain: FlattenChain(chain.Chain)}
}

// MoveUrls lists the move urls a record will keep, in order.
func (t *Transformer) MoveUrls(p *pokeapi.PokemonResponse) []string {
	n := min(len(p.Moves), t.cfg.MaxMoves)
	urls := make([]string, 0, n)
	for _, m := range p.Moves[:n] {
		urls = append(urls, m.Move.Url)
	}
	return urls
}

func (t *Transformer) moves(p *pokeapi.PokemonResponse, details map[string]*pokeapi.Move) []Move {
	n := min(len(p.Moves), t.cfg.MaxMoves)
	result := make([]Move, 0, n)
	for _, m := range p.Moves[:n] {
		move := Move{
			Name: titleName(m.Move.Name),
			Url:  m.Move.Url,
		}
		if d, ok := details[m.Move.Url]; ok && d != nil {
			moveType := defaultMoveType
			if d.Type != nil {
				moveType = capitalize(d.Type.Name)
			}
			damageClass := defaultDamageClass
			if d.DamageClass != nil {
				damageClass = d.DamageClass.Name
			}
			move.MoveDetails = &MoveDetails{
				Type:        moveType,
				Power:       d.Power,
				Accuracy:    d.Accuracy,
				PP:          d.PP,
				DamageClass: damageClass,
				Priority:    valueOr(d.Priority, 0),
			}
		}
		result = append(result, move)
	}
	return result
}

func habitat(s *pokeapi.PokemonSpecies) string {
	if s.Habitat == nil || s.Habitat.Name == "" {
		return defaultHabitat
	}
	return capitalize(s.Habitat.Name)
}

func growthRate(s *pokeapi.PokemonSpecies) string {
	if s.GrowthRate == nil || s.GrowthRate.Name == "" {
		return defaultGrowthRate
	}
	return strings.ReplaceAll(s.GrowthRate.Name, "-", " ")
}

func rarity(s *pokeapi.PokemonSpecies) string {
	switch {
	case s.IsLegendary:
		return "Legendary"
	case s.IsMythical:
		return "Mythical"
	case s.IsBaby:
		return "Baby"
	default:
		return "Common"
	}
}

func heldItems(p *pokeapi.PokemonResponse) []HeldItem {
	result := make([]HeldItem, 0, len(p.HeldItems))
	for _, item := range p.HeldItems {
		r := defaultHeldRarity
		if len(item.VersionDetails) > 0 {
			r = item.VersionDetails[0].Rarity
		}
		result = append(result, HeldItem{Name: titleName(item.Item.Name), Rarity: r})
	}
	return result
}

func forms(p *pokeapi.PokemonResponse, details map[string]*pokeapi.PokemonForm) []Form {
	result := make([]Form, 0, len(p.Forms))
	for _, f := range p.Forms {
		form := Form{Name: displayName(f.Name), RawName: f.Name}
		if d, ok := details[f.Url]; ok && d != nil {
			form.FormDetails = &FormDetails{
				FormName:     d.FormName,
				IsMega:       d.IsMega,
				IsGigantamax: d.IsGigantamax,
				IsBattleOnly: d.IsBattleOnly,
				IsDefault:    d.IsDefault,
				Sprites: FormSprites{
					FrontDefault: d.Sprites.FrontDefault,
					BackDefault:  d.Sprites.BackDefault,
					FrontShiny:   d.Sprites.FrontShiny,
					BackShiny:    d.Sprites.BackShiny,
					FrontFemale:  d.Sprites.FrontFemale,
					BackFemale:   d.Sprites.BackFemale,
				},
			}
		}
		result = append(result, form)
	}
	return result
}

func (t *Transformer) varieties(s *pokeapi.PokemonSpecies) []Variety {
	result := make([]Variety, 0, len(s.Varieties))
	for _, v := range s.Varieties {
		result = append(result, Variety{
			Name:      displayName(v.Pokemon.Name),
			RawName:   v.Pokemon.Name,
			IsDefault: v.IsDefault,
			Url:       v.Pokemon.Url,
			Type:      t.cfg.Tables.VarietyLabel(v.Pokemon.Name),
		})
	}
	return result
}
