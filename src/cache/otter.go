package cache

import (
	"encoding/json"
	"time"

	"github.com/maypok86/otter"
	"go.uber.org/zap"
)

type OtterCache struct {
	cache otter.Cache[string, []byte]
	sugar *zap.SugaredLogger
}

func NewOtterCache(sugar *zap.SugaredLogger, size int, ttl time.Duration) (*OtterCache, error) {
	c, err := otter.MustBuilder[string, []byte](size).
		WithTTL(ttl).
		Build()
	if err != nil {
		return nil, err
	}
	return &OtterCache{cache: c, sugar: sugar}, nil
}

func (c *OtterCache) Set(endpoint string, value any) error {
	bytes, err := json.Marshal(value)
	if err != nil {
		return err
	}
	_ = c.cache.Set(endpoint, bytes)
	return nil
}

func (c *OtterCache) Get(endpoint string, value any) (bool, error) {
	bytes, found := c.cache.Get(endpoint)
	if !found {
		return false, nil
	}
	if err := json.Unmarshal(bytes, value); err != nil {
		return true, err
	}
	c.sugar.Debugf("Found %s in memory cache", endpoint)
	return true, nil
}

func (c *OtterCache) Close() {
	c.cache.Close()
}
