package source

import (
	"log/slog"

	"research-radar/internal/config"
	"research-radar/internal/infra/fetcher"
)

// DefaultAdapters builds the full adapter set, skipping any source disabled
// through the configuration. All adapters share the one rate-limited client.
func DefaultAdapters(client *fetcher.Client, cfg config.SourcesConfig) []Adapter {
	all := []Adapter{
		NewArXiv(client),
		NewBioRxiv(client),
		NewMedRxiv(client),
		NewNature(client),
		NewScienceDaily(client),
		NewPhysOrg(client),
		NewQuanta(client),
		NewHackerNews(client),
		NewReddit(client),
		NewPubMed(client),
		NewPLOS(client),
		NewCrossref(client),
		NewSemanticScholar(client),
		NewEuropePMC(client),
		NewOpenAlex(client),
	}

	enabled := make([]Adapter, 0, len(all))
	for _, a := range all {
		if cfg.IsDisabled(a.Name()) {
			slog.Info("source adapter disabled by config", slog.String("adapter", a.Name()))
			continue
		}
		enabled = append(enabled, a)
	}
	return enabled
}
