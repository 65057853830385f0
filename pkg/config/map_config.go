package config

import (
	"sync"
)

// MapConfig is an in-memory Configer, mostly for tests.
type MapConfig struct {
	getters
	configValues sync.Map
}

func NewMapConfig(entries map[string]string) *MapConfig {
	c := &MapConfig{}
	c.getters = getters{lookup: c.load}

	for key, entry := range entries {
		c.configValues.Store(key, entry)
	}

	return c
}

func (c *MapConfig) Load() error {
	return nil
}

func (c *MapConfig) Set(key, value string) {
	c.configValues.Store(key, value)
}

func (c *MapConfig) load(key string) string {
	v, ok := c.configValues.Load(key)
	if !ok || v == nil {
		return ""
	}

	return v.(string)
}
