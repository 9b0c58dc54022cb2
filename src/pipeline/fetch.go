package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/BielosX/wombat/poke-data/src/outcome"
	"github.com/BielosX/wombat/poke-data/src/pokeapi"
	"github.com/BielosX/wombat/poke-data/src/pokemon"
	"github.com/BielosX/wombat/poke-data/src/store"
)

// API is the subset of the PokeAPI client the fetch step needs.
type API interface {
	Pokemon(ctx context.Context, id int) (*pokeapi.PokemonResponse, error)
	Species(ctx context.Context, id int) (*pokeapi.PokemonSpecies, error)
	EvolutionChain(ctx context.Context, idOrUrl string) (*pokeapi.EvolutionChain, error)
	Move(ctx context.Context, url string) (*pokeapi.Move, error)
	Form(ctx context.Context, url string) (*pokeapi.PokemonForm, error)
}

// Indexer accepts saved records for index.json.
type Indexer interface {
	Add(record *pokemon.Record) (outcome.Outcome, error)
}

type Fetcher struct {
	api         API
	transformer *pokemon.Transformer
	store       *store.Store
	index       Indexer
	sugar       *zap.SugaredLogger
}

func NewFetcher(sugar *zap.SugaredLogger, api API, transformer *pokemon.Transformer, s *store.Store, index Indexer) *Fetcher {
	return &Fetcher{
		api:         api,
		transformer: transformer,
		store:       s,
		index:       index,
		sugar:       sugar,
	}
}

// Fetch downloads, transforms and saves pokemon id and then each of its
// non-default varieties. Only a failure on the pokemon itself fails the
// item; variety failures are logged.
func (f *Fetcher) Fetch(ctx context.Context, id int) (outcome.Outcome, error) {
	p, err := f.api.Pokemon(ctx, id)
	if err != nil {
		return outcome.Failed, fmt.Errorf("pokemon #%d: %w", id, err)
	}
	species, err := f.api.Species(ctx, id)
	if err != nil {
		f.sugar.Warnf("No species data for #%d, using defaults: %s", id, err)
		species = &pokeapi.PokemonSpecies{}
	}
	chain := f.evolutionChain(ctx, species)

	record, err := f.save(ctx, id, p, species, chain)
	if err != nil {
		return outcome.Failed, err
	}
	f.sugar.Infof("Saved %s (#%d)", record.Name, record.Id)

	for _, v := range species.Varieties {
		vid, ok := pokeapi.IdFromUrl(v.Pokemon.Url)
		if !ok || vid == id {
			continue
		}
		if err := f.fetchVariety(ctx, vid, species, chain); err != nil {
			f.sugar.Warnf("Variety %s of #%d: %s", v.Pokemon.Name, id, err)
		}
	}
	return outcome.Applied, nil
}

// fetchVariety reuses the species and chain of the base pokemon; variety
// ids have no species resource of their own.
func (f *Fetcher) fetchVariety(ctx context.Context, id int, species *pokeapi.PokemonSpecies, chain *pokeapi.EvolutionChain) error {
	p, err := f.api.Pokemon(ctx, id)
	if err != nil {
		return err
	}
	record, err := f.save(ctx, id, p, species, chain)
	if err != nil {
		return err
	}
	f.sugar.Infof("Saved variety %s (#%d)", record.Name, record.Id)
	return nil
}

func (f *Fetcher) save(ctx context.Context, id int, p *pokeapi.PokemonResponse, species *pokeapi.PokemonSpecies, chain *pokeapi.EvolutionChain) (*pokemon.Record, error) {
	record := f.transformer.Transform(&pokemon.Bundle{
		Id:      id,
		Pokemon: p,
		Species: species,
		Chain:   chain,
		Moves:   f.moves(ctx, p),
		Forms:   f.forms(ctx, p),
	})
	if err := f.store.Save(record); err != nil {
		return nil, fmt.Errorf("saving #%d: %w", id, err)
	}
	if _, err := f.index.Add(record); err != nil {
		f.sugar.Errorf("Index update for #%d failed: %s", id, err)
	}
	return record, nil
}

func (f *Fetcher) evolutionChain(ctx context.Context, species *pokeapi.PokemonSpecies) *pokeapi.EvolutionChain {
	if species.EvolutionChain == nil || species.EvolutionChain.Url == "" {
		return nil
	}
	chain, err := f.api.EvolutionChain(ctx, species.EvolutionChain.Url)
	if err != nil {
		f.sugar.Warnf("No evolution chain: %s", err)
		return nil
	}
	return chain
}

func (f *Fetcher) moves(ctx context.Context, p *pokeapi.PokemonResponse) map[string]*pokeapi.Move {
	details := make(map[string]*pokeapi.Move)
	for _, url := range f.transformer.MoveUrls(p) {
		if _, ok := details[url]; ok || url == "" {
			continue
		}
		move, err := f.api.Move(ctx, url)
		if err != nil {
			continue
		}
		details[url] = move
	}
	return details
}

func (f *Fetcher) forms(ctx context.Context, p *pokeapi.PokemonResponse) map[string]*pokeapi.PokemonForm {
	details := make(map[string]*pokeapi.PokemonForm)
	for _, form := range p.Forms {
		if form.Url == "" {
			continue
		}
		detail, err := f.api.Form(ctx, form.Url)
		if err != nil {
			continue
		}
		details[form.Url] = detail
	}
	return details
}
