// Package enrich adds localized names to stored records.
package enrich

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/BielosX/wombat/poke-data/src/outcome"
	"github.com/BielosX/wombat/poke-data/src/pokeapi"
	"github.com/BielosX/wombat/poke-data/src/store"
)

var ErrNoLanguageData = errors.New("no language data")

type SpeciesFetcher interface {
	Species(ctx context.Context, id int) (*pokeapi.PokemonSpecies, error)
}

type Enricher struct {
	store *store.Store
	api   SpeciesFetcher
	sugar *zap.SugaredLogger
}

func NewEnricher(sugar *zap.SugaredLogger, s *store.Store, api SpeciesFetcher) *Enricher {
	return &Enricher{store: s, api: api, sugar: sugar}
}

// Enrich fills the record's name mapping from the species endpoint. A
// record that already has names is left alone. Only the names key of the
// stored document is rewritten.
func (e *Enricher) Enrich(ctx context.Context, id int) (outcome.Outcome, error) {
	doc, err := e.store.LoadDocument(id)
	if err != nil {
		return outcome.Failed, err
	}
	var name string
	if _, err := doc.Decode("name", &name); err != nil {
		e.sugar.Debugf("Record #%d: %s", id, err)
	}
	e.sugar.Infof("Pokemon: %s", name)

	var existing map[string]string
	if _, err := doc.Decode("names", &existing); err != nil {
		return outcome.Failed, fmt.Errorf("%s: %w", e.store.RecordPath(id), err)
	}
	if len(existing) > 0 {
		e.sugar.Infof("Already has language data, skipping")
		return outcome.Satisfied, nil
	}

	e.sugar.Infof("Fetching language data for Pokemon #%d", id)
	species, err := e.api.Species(ctx, id)
	if err != nil {
		return outcome.Failed, fmt.Errorf("fetching species #%d: %w", id, err)
	}
	names := LanguageNames(species)
	if len(names) == 0 {
		return outcome.Failed, fmt.Errorf("pokemon #%d: %w", id, ErrNoLanguageData)
	}

	if err := doc.Set("names", names); err != nil {
		return outcome.Failed, err
	}
	if err := e.store.SaveDocument(id, doc); err != nil {
		return outcome.Failed, err
	}
	languages := slices.Sorted(maps.Keys(names))
	e.sugar.Infof("Added %d languages: %s", len(languages), strings.Join(languages, ", "))
	return outcome.Applied, nil
}

// LanguageNames maps language code to localized name, dropping entries
// missing either.
func LanguageNames(species *pokeapi.PokemonSpecies) map[string]string {
	names := make(map[string]string)
	if species == nil {
		return names
	}
	for _, entry := range species.Names {
		if entry.Language.Name != "" && entry.Name != "" {
			names[entry.Language.Name] = entry.Name
		}
	}
	return names
}
