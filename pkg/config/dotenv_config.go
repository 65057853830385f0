package config

import (
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/subosito/gotenv"
)

// DotenvConfig reads keys from the process environment after loading a
// dotenv file into it. Variables already present in the environment win
// over the file.
type DotenvConfig struct {
	getters
	DotenvPath string
}

func NewDotenvConfig(path string) *DotenvConfig {
	return &DotenvConfig{
		getters:    getters{lookup: os.Getenv},
		DotenvPath: path,
	}
}

func (c *DotenvConfig) Load() error {
	path, err := homedir.Expand(c.DotenvPath)
	if err != nil {
		return err
	}

	return gotenv.Load(path)
}

// Exists reports whether the dotenv file is present on disk.
func (c *DotenvConfig) Exists() bool {
	path, err := homedir.Expand(c.DotenvPath)
	if err != nil {
		return false
	}

	_, err = os.Stat(path)
	return err == nil
}
