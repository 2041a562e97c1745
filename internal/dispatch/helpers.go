package dispatch

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/davrosz/actionhttp/internal/action"
)

// helperCache resolves and caches one Helper per action type. Hits take only
// a read lock; misses serialize on the producer-scoped mutex so resolutions
// of different types never contend once cached. Helpers for a type are
// equivalent, so a lost double-resolution race overwrites harmlessly.
type helperCache struct {
	producer action.Producer

	mu    sync.RWMutex
	cache map[reflect.Type]action.Helper

	produceMu sync.Mutex
}

func newHelperCache(producer action.Producer) *helperCache {
	return &helperCache{
		producer: producer,
		cache:    make(map[reflect.Type]action.Helper),
	}
}

func (c *helperCache) Resolve(t reflect.Type) (action.Helper, error) {
	c.mu.RLock()
	helper, ok := c.cache[t]
	c.mu.RUnlock()
	if ok {
		return helper, nil
	}

	if c.producer == nil {
		return nil, ErrNoProducer
	}

	c.produceMu.Lock()
	defer c.produceMu.Unlock()

	c.mu.RLock()
	helper, ok = c.cache[t]
	c.mu.RUnlock()
	if ok {
		return helper, nil
	}

	helper, err := c.producer.Produce(t)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrHelperUnavailable, t, err)
	}
	if helper == nil {
		return nil, fmt.Errorf("%w: %s", ErrHelperUnavailable, t)
	}

	c.mu.Lock()
	c.cache[t] = helper
	c.mu.Unlock()
	return helper, nil
}
