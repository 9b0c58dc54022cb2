// Package index maintains index.json, the sorted summary of base entities.
package index

import (
	"cmp"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/BielosX/wombat/poke-data/src/outcome"
	"github.com/BielosX/wombat/poke-data/src/pokemon"
	"github.com/BielosX/wombat/poke-data/src/store"
)

type Updater struct {
	store  *store.Store
	tables pokemon.Tables
	sugar  *zap.SugaredLogger
}

func NewUpdater(sugar *zap.SugaredLogger, s *store.Store, tables pokemon.Tables) *Updater {
	return &Updater{store: s, tables: tables, sugar: sugar}
}

// Add appends the record's projection and keeps the index sorted by id.
// Varieties and ids already present leave the index untouched and report
// Satisfied. Field changes to an indexed id are not reconciled.
func (u *Updater) Add(record *pokemon.Record) (outcome.Outcome, error) {
	if u.tables.IsVariety(record.Id, record.Name) {
		u.sugar.Debugf("Not indexing variety %s (#%d)", record.Name, record.Id)
		return outcome.Satisfied, nil
	}
	entries, err := u.store.LoadIndex()
	if err != nil {
		return outcome.Failed, fmt.Errorf("loading index: %w", err)
	}
	if slices.ContainsFunc(entries, func(e pokemon.IndexEntry) bool { return e.Id == record.Id }) {
		return outcome.Satisfied, nil
	}
	entries = append(entries, record.IndexEntry())
	slices.SortStableFunc(entries, func(a, b pokemon.IndexEntry) int { return cmp.Compare(a.Id, b.Id) })
	if err := u.store.SaveIndex(entries); err != nil {
		return outcome.Failed, fmt.Errorf("saving index: %w", err)
	}
	u.sugar.Debugf("Indexed %s (#%d)", record.Name, record.Id)
	return outcome.Applied, nil
}
