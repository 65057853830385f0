package config

import (
	"strconv"
	"strings"
)

// getters implements the typed accessors of Configer on top of a single
// string lookup so each backend only has to know how to find a raw value.
type getters struct {
	lookup func(key string) string
}

func (g getters) GetKey(key string) string {
	return g.lookup(key)
}

func (g getters) GetKeyWithDefault(key, defaultValue string) string {
	val := g.lookup(key)
	if val == "" {
		return defaultValue
	}

	return val
}

func (g getters) GetIntKey(key string) int {
	return g.GetIntKeyWithDefault(key, 0)
}

func (g getters) GetIntKeyWithDefault(key string, defaultValue int) int {
	intVal, err := strconv.Atoi(strings.TrimSpace(g.lookup(key)))
	if err != nil {
		return defaultValue
	}

	return intVal
}

// GetBoolKey treats "true", "1" and "yes" (any case) as true.
func (g getters) GetBoolKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(g.lookup(key))) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}
