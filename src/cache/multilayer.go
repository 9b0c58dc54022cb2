// Package cache provides the response caches the PokeAPI client can sit on.
package cache

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/BielosX/wombat/poke-data/src/pokeapi"
)

// MultiLayerCache consults layers fastest first. A hit further down is
// copied into the layers above it. A failing layer is logged and skipped.
type MultiLayerCache struct {
	layers []pokeapi.Cache
	sugar  *zap.SugaredLogger
}

func NewMultiLayerCache(sugar *zap.SugaredLogger, layers ...pokeapi.Cache) *MultiLayerCache {
	return &MultiLayerCache{layers: layers, sugar: sugar}
}

// Set stores value in every layer. Errors from all layers are joined.
func (c *MultiLayerCache) Set(endpoint string, value any) error {
	var errs []error
	for i, layer := range c.layers {
		if err := layer.Set(endpoint, value); err != nil {
			errs = append(errs, fmt.Errorf("layer %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// Get returns the first hit. Lookup errors only surface when no layer has
// the entry.
func (c *MultiLayerCache) Get(endpoint string, value any) (bool, error) {
	var errs []error
	for i, layer := range c.layers {
		found, err := layer.Get(endpoint, value)
		if err != nil {
			c.sugar.Warnf("Cache layer %d lookup for %s failed: %s", i, endpoint, err)
			errs = append(errs, fmt.Errorf("layer %d: %w", i, err))
			continue
		}
		if !found {
			continue
		}
		c.backfill(endpoint, value, i)
		return true, nil
	}
	return false, errors.Join(errs...)
}

func (c *MultiLayerCache) backfill(endpoint string, value any, hit int) {
	for i, layer := range c.layers[:hit] {
		if err := layer.Set(endpoint, value); err != nil {
			c.sugar.Warnf("Cache layer %d backfill for %s failed: %s", i, endpoint, err)
		}
	}
}
