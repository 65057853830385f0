package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ViperConfig resolves keys through viper: a bound command line flag takes
// precedence over the environment, which has already been populated from
// the dotenv file.
type ViperConfig struct {
	getters
	v *viper.Viper
}

func NewViperConfig() *ViperConfig {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	c := &ViperConfig{v: v}
	c.getters = getters{lookup: c.v.GetString}
	return c
}

// BindFlag makes the flag the highest priority source for key. The flag only
// overrides the environment when it was set on the command line.
func (c *ViperConfig) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return nil
	}

	return c.v.BindPFlag(key, flag)
}

func (c *ViperConfig) SetDefault(key string, value any) {
	c.v.SetDefault(key, value)
}

func (c *ViperConfig) Load() error {
	return nil
}
