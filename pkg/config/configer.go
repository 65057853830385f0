package config

// Configer is the read side of the service configuration. Keys are the
// environment variable names (GNEWS_API_KEY, PORT, ...).
type Configer interface {
	Load() error
	GetKey(key string) string
	GetKeyWithDefault(key, defaultValue string) string
	GetIntKey(key string) int
	GetIntKeyWithDefault(key string, defaultValue int) int
	GetBoolKey(key string) bool
}
