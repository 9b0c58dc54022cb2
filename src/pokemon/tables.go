package pokemon

import (
	"maps"
	"slices"
	"strings"

	"dario.cat/mergo"
)

// DefaultVarietyThreshold is the first id PokeAPI assigns to alternate forms.
const DefaultVarietyThreshold = 10000

type TypeColors struct {
	Primary   string `json:"primary" mapstructure:"primary"`
	Secondary string `json:"secondary" mapstructure:"secondary"`
	Accent    string `json:"accent" mapstructure:"accent"`
}

// VarietyMarker maps a name fragment such as "-alola" to its display label.
type VarietyMarker struct {
	Fragment string
	Label    string
}

// Tables holds every lookup table the transform and the index consult.
// Values handed out by DefaultTables are never shared.
type Tables struct {
	Palettes         map[string]TypeColors
	DefaultPalette   TypeColors
	Background       string
	Text             string
	StatKeys         map[string]string
	DefaultStats     map[string]int
	VarietyMarkers   []VarietyMarker
	VarietyThreshold int
}

func DefaultTables() Tables {
	return Tables{
		Palettes: map[string]TypeColors{
			"Grass":    {Primary: "#78C850", Secondary: "#A040A0", Accent: "#F8D030"},
			"Poison":   {Primary: "#A040A0", Secondary: "#78C850", Accent: "#F8D030"},
			"Fire":     {Primary: "#F08030", Secondary: "#6890F0", Accent: "#F8D030"},
			"Water":    {Primary: "#6890F0", Secondary: "#F08030", Accent: "#F8D030"},
			"Electric": {Primary: "#F8D030", Secondary: "#F08030", Accent: "#F8F8F8"},
			"Normal":   {Primary: "#A8A878", Secondary: "#F8D030", Accent: "#F8F8F8"},
			"Psychic":  {Primary: "#F85888", Secondary: "#6890F0", Accent: "#F8F8F8"},
			"Rock":     {Primary: "#B8A038", Secondary: "#A040A0", Accent: "#F8D030"},
			"Ground":   {Primary: "#E0C068", Secondary: "#B8A038", Accent: "#F8D030"},
			"Bug":      {Primary: "#A8B820", Secondary: "#78C850", Accent: "#F8D030"},
			"Flying":   {Primary: "#A890F0", Secondary: "#E0C068", Accent: "#F8F8F8"},
		},
		DefaultPalette: TypeColors{Primary: "#A8A878", Secondary: "#F8D030", Accent: "#F8F8F8"},
		Background:     "#F8F8F8",
		Text:           "#2C2C2C",
		StatKeys: map[string]string{
			"hp":              "hp",
			"attack":          "attack",
			"defense":         "defense",
			"special-attack":  "specialAttack",
			"special-defense": "specialDefense",
			"speed":           "speed",
		},
		DefaultStats: map[string]int{
			"hp":             0,
			"attack":         0,
			"defense":        0,
			"specialAttack":  0,
			"specialDefense": 0,
			"speed":          0,
		},
		VarietyMarkers: []VarietyMarker{
			{Fragment: "-alola", Label: "Alolan"},
			{Fragment: "-galar", Label: "Galarian"},
			{Fragment: "-hisui", Label: "Hisuian"},
			{Fragment: "-paldea", Label: "Paldean"},
			{Fragment: "-mega", Label: "Mega"},
			{Fragment: "-gmax", Label: "Gigantamax"},
		},
		VarietyThreshold: DefaultVarietyThreshold,
	}
}

// WithPalettes returns a copy of t whose palette table has overrides merged
// over it, entry by entry.
func (t Tables) WithPalettes(overrides map[string]TypeColors) (Tables, error) {
	merged := maps.Clone(t.Palettes)
	if merged == nil {
		merged = make(map[string]TypeColors)
	}
	if err := mergo.Merge(&merged, overrides, mergo.WithOverride); err != nil {
		return t, err
	}
	out := t
	out.Palettes = merged
	out.VarietyMarkers = slices.Clone(t.VarietyMarkers)
	return out, nil
}

// PaletteFor picks the colors for a primary type, falling back to the
// default palette for unlisted types.
func (t Tables) PaletteFor(primaryType string) Palette {
	colors, ok := t.Palettes[primaryType]
	if !ok {
		colors = t.DefaultPalette
	}
	return Palette{
		Primary:    colors.Primary,
		Secondary:  colors.Secondary,
		Accent:     colors.Accent,
		Background: t.Background,
		Text:       t.Text,
		Highlights: []string{colors.Primary, colors.Secondary, colors.Accent},
	}
}

// VarietyLabel returns the label of the first marker found in name.
func (t Tables) VarietyLabel(name string) string {
	lower := strings.ToLower(name)
	for _, marker := range t.VarietyMarkers {
		if strings.Contains(lower, marker.Fragment) {
			return marker.Label
		}
	}
	return ""
}

// IsVariety reports whether an entity is an alternate form that stays out
// of the index.
func (t Tables) IsVariety(id int, name string) bool {
	if t.VarietyThreshold > 0 && id >= t.VarietyThreshold {
		return true
	}
	return t.VarietyLabel(name) != ""
}
