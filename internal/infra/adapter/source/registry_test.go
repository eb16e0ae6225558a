package source

import (
	"testing"

	"research-radar/internal/config"
)

func TestDefaultAdaptersFullSet(t *testing.T) {
	adapters := DefaultAdapters(testClient(t), config.DefaultSourcesConfig())
	if len(adapters) != 15 {
		t.Fatalf("got %d adapters, want 15", len(adapters))
	}

	seen := make(map[string]bool, len(adapters))
	for _, a := range adapters {
		if a.Name() == "" {
			t.Error("adapter with empty name")
		}
		if seen[a.Name()] {
			t.Errorf("duplicate adapter name %q", a.Name())
		}
		seen[a.Name()] = true
	}
}

func TestDefaultAdaptersHonorsDisabledList(t *testing.T) {
	cfg := config.DefaultSourcesConfig()
	cfg.Disabled = []string{"reddit", "hacker news"}

	adapters := DefaultAdapters(testClient(t), cfg)
	if len(adapters) != 13 {
		t.Fatalf("got %d adapters, want 13", len(adapters))
	}
	for _, a := range adapters {
		if a.Name() == "Reddit" || a.Name() == "Hacker News" {
			t.Errorf("disabled adapter %q still present", a.Name())
		}
	}
}
