package main

import (
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// config is the on-disk configuration. Everything is optional.
//
//	agent = "my-bagger 2.0"
//	sentry_dsn = "https://key@sentry.example.org/3"
//	tick = "250ms"
type config struct {
	Agent     string   `toml:"agent"`
	SentryDSN string   `toml:"sentry_dsn"`
	Tick      duration `toml:"tick"`
}

type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// loadConfig reads the TOML file at fname. An empty fname gives the
// default configuration.
func loadConfig(fname string) (*config, error) {
	cfg := &config{}
	if fname != "" {
		md, err := toml.DecodeFile(fname, cfg)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.Errorf("unknown configuration key %q", undecoded[0].String())
		}
	}
	if cfg.Tick.Duration < 0 {
		return nil, errors.Errorf("tick must not be negative, got %v", cfg.Tick.Duration)
	}
	return cfg, nil
}

// merge overrides the file settings with any given on the command line, and
// fills in defaults for whatever is still unset.
func (c *config) merge(agent string, tick time.Duration) {
	if agent != "" {
		c.Agent = agent
	}
	if tick > 0 {
		c.Tick.Duration = tick
	}
	if c.Tick.Duration == 0 {
		c.Tick.Duration = defaultTick
	}
}
