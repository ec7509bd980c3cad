package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "NSDAV"

var ErrConfigInvalid = errors.New("invalid config")

type Config struct {
	BaseURL         string `mapstructure:"base_url"`
	DavPrefix       string `mapstructure:"dav_prefix"`
	OperationPrefix string `mapstructure:"operation_prefix"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Thread          int    `mapstructure:"thread"`
	LogLevel        string `mapstructure:"log_level"`
	Timeout         int64  `mapstructure:"timeout"`
	Trace           bool   `mapstructure:"trace"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("base_url", "https://dav.jianguoyun.com")
	v.SetDefault("dav_prefix", "/dav")
	v.SetDefault("operation_prefix", "/nsdav")
	v.SetDefault("username", "")
	v.SetDefault("password", "")
	v.SetDefault("thread", 5)
	v.SetDefault("log_level", "info")
	v.SetDefault("timeout", 30)
	v.SetDefault("trace", false)
}

// Parse loads f (json or yaml, by extension) and overlays NSDAV_* environment
// variables. An empty f reads the environment only.
func Parse(f string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if len(f) != 0 {
		v.SetConfigFile(f)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w: read file:%v", ErrConfigInvalid, err)
		}
	}
	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("%w: unmarshal:%v", ErrConfigInvalid, err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) validate() error {
	if len(c.Username) == 0 || len(c.Password) == 0 {
		return fmt.Errorf("%w: username and password are required", ErrConfigInvalid)
	}
	if c.Thread <= 0 {
		return fmt.Errorf("%w: thread should be positive, got:%d", ErrConfigInvalid, c.Thread)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: negative timeout:%d", ErrConfigInvalid, c.Timeout)
	}
	return nil
}
