package config

import (
	"testing"
	"time"
)

func TestSignalPollIntervalDefault(t *testing.T) {
	cases := []struct {
		min  int
		want time.Duration
	}{
		{0, 60 * time.Minute},
		{-5, 60 * time.Minute},
		{1, time.Minute},
		{240, 4 * time.Hour},
	}
	for _, c := range cases {
		cfg := &Config{SignalPollMin: c.min}
		if got := cfg.SignalPollInterval(); got != c.want {
			t.Errorf("SignalPollInterval(%d) = %v, want %v", c.min, got, c.want)
		}
	}
}

func TestSuggestIntervalDefault(t *testing.T) {
	cfg := &Config{}
	if got := cfg.SuggestInterval(); got != 15*time.Minute {
		t.Errorf("SuggestInterval() = %v, want 15m", got)
	}
	cfg.SuggestMin = 5
	if got := cfg.SuggestInterval(); got != 5*time.Minute {
		t.Errorf("SuggestInterval() = %v, want 5m", got)
	}
}

func TestCatalogRefreshIntervalDefault(t *testing.T) {
	cfg := &Config{}
	if got := cfg.CatalogRefreshInterval(); got != 30*time.Minute {
		t.Errorf("CatalogRefreshInterval() = %v, want 30m", got)
	}
}
