// Package pokemon defines the flattened entity record and the transform
// from raw PokeAPI payloads into it.
package pokemon

import (
	"bytes"
	"encoding/json"
)

type TypeDetail struct {
	Name string `json:"name"`
	Slot int    `json:"slot"`
}

type Ability struct {
	Name     string `json:"name"`
	Url      string `json:"url"`
	IsHidden bool   `json:"is_hidden"`
	Slot     int    `json:"slot"`
}

type FlavorText struct {
	Text    string `json:"text"`
	Version string `json:"version"`
}

type Palette struct {
	Primary    string   `json:"primary"`
	Secondary  string   `json:"secondary"`
	Accent     string   `json:"accent"`
	Background string   `json:"background"`
	Text       string   `json:"text"`
	Highlights []string `json:"highlights"`
}

// Artwork holds one url per sprite slot. A nil slot has no sprite upstream.
type Artwork struct {
	Official         *string `json:"official"`
	Front            *string `json:"front"`
	Back             *string `json:"back"`
	Shiny            *string `json:"shiny"`
	BackShiny        *string `json:"back_shiny"`
	FrontFemale      *string `json:"front_female"`
	BackFemale       *string `json:"back_female"`
	FrontShinyFemale *string `json:"front_shiny_female"`
	BackShinyFemale  *string `json:"back_shiny_female"`
}

// Slots lists the artwork slots in processing order.
var Slots = []string{
	"official",
	"front",
	"back",
	"shiny",
	"back_shiny",
	"front_female",
	"back_female",
	"front_shiny_female",
	"back_shiny_female",
}

func (a *Artwork) slot(name string) **string {
	switch name {
	case "official":
		return &a.Official
	case "front":
		return &a.Front
	case "back":
		return &a.Back
	case "shiny":
		return &a.Shiny
	case "back_shiny":
		return &a.BackShiny
	case "front_female":
		return &a.FrontFemale
	case "back_female":
		return &a.BackFemale
	case "front_shiny_female":
		return &a.FrontShinyFemale
	case "back_shiny_female":
		return &a.BackShinyFemale
	}
	return nil
}

// Get returns the url stored for slot, or "" when the slot is empty or unknown.
func (a *Artwork) Get(slot string) string {
	p := a.slot(slot)
	if p == nil || *p == nil {
		return ""
	}
	return **p
}

// Set stores url in slot. Unknown slots are ignored.
func (a *Artwork) Set(slot, url string) {
	if p := a.slot(slot); p != nil {
		*p = &url
	}
}

type EvolutionDetail struct {
	Gender   int    `json:"gender,omitempty"`
	HeldItem string `json:"held_item,omitempty"`
	Item     string `json:"item,omitempty"`
	MinLevel int    `json:"min_level,omitempty"`
	Trigger  string `json:"trigger,omitempty"`
}

type EvolutionNode struct {
	Name    string            `json:"name"`
	Level   int               `json:"level"`
	Details []EvolutionDetail `json:"details"`
}

// Evolution is the flattened chain, or a stage/generation stub when the
// species has no chain.
type Evolution struct {
	Chain      []EvolutionNode
	Stage      int
	Generation int
}

type evolutionStub struct {
	Stage      int `json:"stage"`
	Generation int `json:"generation"`
}

func (e Evolution) MarshalJSON() ([]byte, error) {
	if len(e.Chain) > 0 {
		return json.Marshal(e.Chain)
	}
	return json.Marshal(evolutionStub{Stage: e.Stage, Generation: e.Generation})
}

func (e *Evolution) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		*e = Evolution{}
		return json.Unmarshal(trimmed, &e.Chain)
	}
	var stub evolutionStub
	if err := json.Unmarshal(trimmed, &stub); err != nil {
		return err
	}
	*e = Evolution{Stage: stub.Stage, Generation: stub.Generation}
	return nil
}

type MoveDetails struct {
	Type        string `json:"type"`
	Power       *int   `json:"power"`
	Accuracy    *int   `json:"accuracy"`
	PP          *int   `json:"pp"`
	DamageClass string `json:"damage_class"`
	Priority    int    `json:"priority"`
}

// Move carries its details inline only when the move url resolved.
type Move struct {
	Name string `json:"name"`
	Url  string `json:"url"`
	*MoveDetails
}

type HeldItem struct {
	Name   string `json:"name"`
	Rarity int    `json:"rarity"`
}

type FormSprites struct {
	FrontDefault *string `json:"front_default"`
	BackDefault  *string `json:"back_default"`
	FrontShiny   *string `json:"front_shiny"`
	BackShiny    *string `json:"back_shiny"`
	FrontFemale  *string `json:"front_female"`
	BackFemale   *string `json:"back_female"`
}

type FormDetails struct {
	FormName     string      `json:"form_name"`
	IsMega       bool        `json:"is_mega"`
	IsGigantamax bool        `json:"is_gigantamax"`
	IsBattleOnly bool        `json:"is_battle_only"`
	IsDefault    bool        `json:"is_default"`
	Sprites      FormSprites `json:"sprites"`
}

type Form struct {
	Name    string `json:"name"`
	RawName string `json:"raw_name"`
	*FormDetails
}

type Variety struct {
	Name      string `json:"name"`
	RawName   string `json:"raw_name"`
	IsDefault bool   `json:"is_default"`
	Url       string `json:"url"`
	Type      string `json:"type"`
}

// Record is the locally persisted description of one Pokémon or variety.
type Record struct {
	Id                   int                `json:"id"`
	Name                 string             `json:"name"`
	Species              string             `json:"species"`
	Type                 []string           `json:"type"`
	TypeDetails          []TypeDetail       `json:"typeDetails"`
	Height               float64            `json:"height"`
	Weight               float64            `json:"weight"`
	Abilities            []Ability          `json:"abilities"`
	BaseStats            map[string]int     `json:"baseStats"`
	Description          string             `json:"description"`
	FlavorTexts          []FlavorText       `json:"flavorTexts"`
	ColorPalette         Palette            `json:"colorPalette"`
	Artwork              *Artwork           `json:"artwork"`
	Evolution            Evolution          `json:"evolution"`
	Moves                []Move             `json:"moves"`
	Habitat              string             `json:"habitat"`
	Generation           int                `json:"generation"`
	Rarity               string             `json:"rarity"`
	BaseExperience       int                `json:"baseExperience"`
	Order                int                `json:"order"`
	IsDefault            bool               `json:"isDefault"`
	CaptureRate          int                `json:"captureRate"`
	BaseHappiness        int                `json:"baseHappiness"`
	GrowthRate           string             `json:"growthRate"`
	HatchCounter         int                `json:"hatchCounter"`
	HasGenderDifferences bool               `json:"hasGenderDifferences"`
	GenderRate           int                `json:"genderRate"`
	Forms                []Form             `json:"forms"`
	Varieties            []Variety          `json:"varieties"`
	HeldItems            []HeldItem         `json:"heldItems"`
	Cries                map[string]*string `json:"cries"`
	Names                map[string]string  `json:"names,omitempty"`
}

// IndexEntry is the projection of a record kept in index.json.
type IndexEntry struct {
	Id         int      `json:"id"`
	Name       string   `json:"name"`
	Species    string   `json:"species"`
	Type       []string `json:"type"`
	Generation int      `json:"generation"`
	Rarity     string   `json:"rarity"`
}

func (r *Record) IndexEntry() IndexEntry {
	return IndexEntry{
		Id:         r.Id,
		Name:       r.Name,
		Species:    r.Species,
		Type:       r.Type,
		Generation: r.Generation,
		Rarity:     r.Rarity,
	}
}
