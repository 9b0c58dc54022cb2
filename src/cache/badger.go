package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger"
	"go.uber.org/zap"
)

type BadgerCache struct {
	db    *badger.DB
	ttl   time.Duration
	sugar *zap.SugaredLogger
}

type badgerLogger struct {
	sugar *zap.SugaredLogger
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.sugar.Errorf("badger: %s", strings.TrimSuffix(fmt.Sprintf(format, args...), "\n"))
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.sugar.Warnf("badger: %s", strings.TrimSuffix(fmt.Sprintf(format, args...), "\n"))
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.sugar.Debugf("badger: %s", strings.TrimSuffix(fmt.Sprintf(format, args...), "\n"))
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.sugar.Debugf("badger: %s", strings.TrimSuffix(fmt.Sprintf(format, args...), "\n"))
}

// OpenBadgerCache opens (creating if needed) a persistent response cache in dir.
func OpenBadgerCache(sugar *zap.SugaredLogger, dir string, ttl time.Duration) (*BadgerCache, error) {
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(badgerLogger{sugar: sugar}))
	if err != nil {
		return nil, fmt.Errorf("opening cache at %s: %w", dir, err)
	}
	return &BadgerCache{db: db, ttl: ttl, sugar: sugar}, nil
}

func (c *BadgerCache) Set(endpoint string, value any) error {
	bytes, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry([]byte(endpoint), bytes).WithTTL(c.ttl))
	})
}

func (c *BadgerCache) Get(endpoint string, value any) (bool, error) {
	var bytes []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(endpoint))
		if err != nil {
			return err
		}
		bytes, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(bytes, value); err != nil {
		return true, err
	}
	c.sugar.Debugf("Found %s in disk cache", endpoint)
	return true, nil
}

func (c *BadgerCache) Close() error {
	return c.db.Close()
}
