// Command baggie turns directories into BagIt bags, in place.
//
//	baggie [flags] <dir>...
//
// Each directory is bagged in turn. A directory which fails does not stop
// the others, but the exit status is non-zero if any failed.
package main

import (
	"time"

	"github.com/alecthomas/kong"
	"github.com/gentoomaniac/logging"
	raven "github.com/getsentry/raven-go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/ndlib/baggie/bagit"
	"github.com/ndlib/baggie/observer"
)

var cli struct {
	logging.LoggingConfig

	Config     string        `type:"path" help:"TOML configuration file."`
	Agent      string        `help:"Bag-Software-Agent to record in bag-info.txt."`
	Tick       time.Duration `help:"How often to report progress (default ${defaultTick})."`
	NoProgress bool          `help:"Only report the outcome of each bag."`

	Version kong.VersionFlag `short:"v" help:"Display version."`

	Dirs []string `arg:"" name:"dir" type:"path" help:"Directories to bag."`
}

const defaultTick = 100 * time.Millisecond

func main() {
	ctx := kong.Parse(&cli,
		kong.Description("Convert directories into BagIt "+bagit.Version+" bags in place."),
		kong.UsageOnError(),
		kong.Vars{
			"version":     bagit.DefaultAgent,
			"defaultTick": defaultTick.String(),
		})
	logging.Setup(&cli.LoggingConfig)

	cfg, err := loadConfig(cli.Config)
	if err != nil {
		log.Fatal().Err(err).Str("config", cli.Config).Msg("could not read configuration")
	}
	cfg.merge(cli.Agent, cli.Tick)

	if cfg.SentryDSN != "" {
		if err := setupSentry(cfg.SentryDSN); err != nil {
			log.Error().Err(err).Msg("sentry disabled")
		}
	}

	st := newLogStats()
	m := observer.New(&bagit.Bagger{Agent: cfg.Agent, Stats: st})
	var failed int
	for _, dir := range cli.Dirs {
		if err := bagOne(m, dir, cfg.Tick.Duration, !cli.NoProgress); err != nil {
			failed++
			if cfg.SentryDSN != "" {
				raven.CaptureErrorAndWait(err, map[string]string{"dir": dir})
			}
		}
		m.Reset()
	}
	st.report()

	if failed > 0 {
		log.Error().Int("failed", failed).Int("total", len(cli.Dirs)).Msg("some directories were not bagged")
		ctx.Exit(1)
	}
	ctx.Exit(0)
}

// bagOne runs m on dir and reports its state every tick until the run ends.
func bagOne(m *observer.Model, dir string, tick time.Duration, verbose bool) error {
	if !m.Start(dir) {
		return errors.Errorf("a bag is already in progress")
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	var last observer.State
	for range ticker.C {
		s := m.Tick()
		if verbose && s != last {
			logState(dir, s)
		}
		last = s
		if !m.Busy() {
			break
		}
	}

	switch s := m.State().(type) {
	case observer.Finished:
		log.Info().Str("path", s.Path).Int("files", s.Count).Msg("Bag Created!")
	case observer.Failed:
		log.Error().Str("dir", dir).Msg(s.Message)
		return errors.Errorf("bagging %s: %s", dir, s.Message)
	}
	return nil
}

func logState(dir string, s observer.State) {
	p, ok := s.(observer.Processing)
	if !ok {
		return
	}
	log.Info().
		Str("dir", dir).
		Str("stage", p.Stage).
		Str("file", p.File).
		Int("current", p.Current).
		Int("total", p.Total).
		Msg("bagging")
}
