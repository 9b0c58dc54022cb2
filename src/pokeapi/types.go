package pokeapi

type NamedResource struct {
	Name string `json:"name"`
	Url  string `json:"url"`
}

type ApiResource struct {
	Url string `json:"url"`
}

type PokemonType struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

type PokemonAbility struct {
	Ability  NamedResource `json:"ability"`
	IsHidden bool          `json:"is_hidden"`
	Slot     int           `json:"slot"`
}

type PokemonStat struct {
	BaseStat int           `json:"base_stat"`
	Stat     NamedResource `json:"stat"`
}

type PokemonSprites struct {
	FrontDefault     *string `json:"front_default"`
	BackDefault      *string `json:"back_default"`
	FrontShiny       *string `json:"front_shiny"`
	BackShiny        *string `json:"back_shiny"`
	FrontFemale      *string `json:"front_female"`
	BackFemale       *string `json:"back_female"`
	FrontShinyFemale *string `json:"front_shiny_female"`
	BackShinyFemale  *string `json:"back_shiny_female"`
}

type PokemonMove struct {
	Move NamedResource `json:"move"`
}

type HeldItemVersion struct {
	Rarity int `json:"rarity"`
}

type PokemonHeldItem struct {
	Item           NamedResource     `json:"item"`
	VersionDetails []HeldItemVersion `json:"version_details"`
}

// PokemonResponse is the payload of /pokemon/{id}. Pointer fields may be
// null or missing upstream.
type PokemonResponse struct {
	Id             int                `json:"id"`
	Name           string             `json:"name"`
	BaseExperience *int               `json:"base_experience"`
	Order          *int               `json:"order"`
	IsDefault      *bool              `json:"is_default"`
	Height         int                `json:"height"`
	Weight         int                `json:"weight"`
	Types          []PokemonType      `json:"types"`
	Abilities      []PokemonAbility   `json:"abilities"`
	Stats          []PokemonStat      `json:"stats"`
	Sprites        PokemonSprites     `json:"sprites"`
	Moves          []PokemonMove      `json:"moves"`
	HeldItems      []PokemonHeldItem  `json:"held_items"`
	Forms          []NamedResource    `json:"forms"`
	Cries          map[string]*string `json:"cries"`
}

type LocalizedName struct {
	Name     string        `json:"name"`
	Language NamedResource `json:"language"`
}

type Genus struct {
	Genus    string        `json:"genus"`
	Language NamedResource `json:"language"`
}

type FlavorTextEntry struct {
	FlavorText string        `json:"flavor_text"`
	Language   NamedResource `json:"language"`
	Version    NamedResource `json:"version"`
}

type SpeciesVariety struct {
	IsDefault bool          `json:"is_default"`
	Pokemon   NamedResource `json:"pokemon"`
}

// PokemonSpecies is the payload of /pokemon-species/{id}. The zero value
// stands in for a species that could not be fetched.
type PokemonSpecies struct {
	Id                   int               `json:"id"`
	Name                 string            `json:"name"`
	Names                []LocalizedName   `json:"names"`
	Genera               []Genus           `json:"genera"`
	FlavorTextEntries    []FlavorTextEntry `json:"flavor_text_entries"`
	Habitat              *NamedResource    `json:"habitat"`
	Generation           *NamedResource    `json:"generation"`
	GrowthRate           *NamedResource    `json:"growth_rate"`
	CaptureRate          *int              `json:"capture_rate"`
	BaseHappiness        *int              `json:"base_happiness"`
	HatchCounter         *int              `json:"hatch_counter"`
	HasGenderDifferences bool              `json:"has_gender_differences"`
	GenderRate           *int              `json:"gender_rate"`
	IsLegendary          bool              `json:"is_legendary"`
	IsMythical           bool              `json:"is_mythical"`
	IsBaby               bool              `json:"is_baby"`
	EvolutionChain       *ApiResource      `json:"evolution_chain"`
	Varieties            []SpeciesVariety  `json:"varieties"`
}

type EvolutionDetail struct {
	Gender   *int           `json:"gender"`
	HeldItem *NamedResource `json:"held_item"`
	Item     *NamedResource `json:"item"`
	MinLevel *int           `json:"min_level"`
	Trigger  *NamedResource `json:"trigger"`
}

type ChainLink struct {
	Species          NamedResource     `json:"species"`
	EvolutionDetails []EvolutionDetail `json:"evolution_details"`
	EvolvesTo        []ChainLink       `json:"evolves_to"`
}

type EvolutionChain struct {
	Id    int       `json:"id"`
	Chain ChainLink `json:"chain"`
}

type Move struct {
	Id          int            `json:"id"`
	Name        string         `json:"name"`
	Type        *NamedResource `json:"type"`
	Power       *int           `json:"power"`
	Accuracy    *int           `json:"accuracy"`
	PP          *int           `json:"pp"`
	DamageClass *NamedResource `json:"damage_class"`
	Priority    *int           `json:"priority"`
}

type FormSprites struct {
	FrontDefault *string `json:"front_default"`
	BackDefault  *string `json:"back_default"`
	FrontShiny   *string `json:"front_shiny"`
	BackShiny    *string `json:"back_shiny"`
	FrontFemale  *string `json:"front_female"`
	BackFemale   *string `json:"back_female"`
}

type PokemonForm struct {
	Id           int         `json:"id"`
	Name         string      `json:"name"`
	FormName     string      `json:"form_name"`
	IsMega       bool        `json:"is_mega"`
	IsGigantamax bool        `json:"is_gigantamax"`
	IsBattleOnly bool        `json:"is_battle_only"`
	IsDefault    bool        `json:"is_default"`
	Sprites      FormSprites `json:"sprites"`
}
