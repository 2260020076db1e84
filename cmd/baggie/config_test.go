package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	fname := filepath.Join(t.TempDir(), "baggie.toml")
	if err := os.WriteFile(fname, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return fname
}

func TestLoadConfig(t *testing.T) {
	fname := writeConfig(t, `
agent = "site-bagger 2.0"
sentry_dsn = "https://key@sentry.example.org/3"
tick = "250ms"
`)
	cfg, err := loadConfig(fname)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Agent != "site-bagger 2.0" {
		t.Errorf("Got agent %q", cfg.Agent)
	}
	if cfg.SentryDSN != "https://key@sentry.example.org/3" {
		t.Errorf("Got sentry dsn %q", cfg.SentryDSN)
	}
	if cfg.Tick.Duration != 250*time.Millisecond {
		t.Errorf("Got tick %v, expected 250ms", cfg.Tick.Duration)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	var table = []string{
		`tick = "soon"`,
		`tick = "-1s"`,
		`agnet = "typo"`,
		`agent = `,
	}
	for _, content := range table {
		_, err := loadConfig(writeConfig(t, content))
		if err == nil {
			t.Errorf("Got no error for %q", content)
		}
	}
	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Errorf("Got no error for a missing file")
	}
}

func TestMerge(t *testing.T) {
	var table = []struct {
		file      config
		agent     string
		tick      time.Duration
		goalAgent string
		goalTick  time.Duration
	}{
		{config{}, "", 0, "", defaultTick},
		{config{Agent: "file", Tick: duration{time.Second}}, "", 0, "file", time.Second},
		{config{Agent: "file", Tick: duration{time.Second}}, "flag", time.Minute, "flag", time.Minute},
	}
	for _, test := range table {
		cfg := test.file
		cfg.merge(test.agent, test.tick)
		if cfg.Agent != test.goalAgent || cfg.Tick.Duration != test.goalTick {
			t.Errorf("Got (%q, %v), expected (%q, %v)", cfg.Agent, cfg.Tick.Duration, test.goalAgent, test.goalTick)
		}
	}
}
