package config

import (
	"os"

	"github.com/apex/log"
)

const DefaultDotenvPath = ".env"

var configer Configer = NewDotenvConfig(DefaultDotenvPath)

func SetConfig(c Configer) {
	configer = c
}

func GetIntKeyWithDefault(key string, defaultValue int) int {
	return configer.GetIntKeyWithDefault(key, defaultValue)
}

// DotenvPath picks the dotenv file to load: an explicit path, then
// NEWSAPI_DOTENV_PATH, then .env in the working directory.
func DotenvPath(explicit string) string {
	if explicit != "" {
		return explicit
	}

	if p := os.Getenv("NEWSAPI_DOTENV_PATH"); p != "" {
		return p
	}

	return DefaultDotenvPath
}

// LoadDotenv loads the dotenv file into the environment. A missing file is
// not fatal; the service can still start, it just can't reach GNews without
// a key.
func LoadDotenv(path string) *DotenvConfig {
	c := NewDotenvConfig(path)
	if !c.Exists() {
		log.Warnf("No dotenv file found at %s", path)
		return c
	}

	if err := c.Load(); err != nil {
		log.Fatalf("Failed loading configuration file %s: %s", path, err)
	}

	return c
}
