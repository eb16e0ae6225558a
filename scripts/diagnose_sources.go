// Command diagnose_sources fetches from every registered source adapter
// once and prints a per-source diagnostic report. Useful for checking which
// upstream endpoints are reachable before a deploy.
//
// Usage:
//
//	go run scripts/diagnose_sources.go [-q query] [-json]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"
	"time"

	"research-radar/internal/config"
	"research-radar/internal/infra/adapter/source"
	"research-radar/internal/infra/fetcher"
	"research-radar/internal/observability/logging"
)

// SourceDiagnostic is the per-adapter result of one probe fetch.
type SourceDiagnostic struct {
	Name         string `json:"name"`
	Status       string `json:"status"` // "OK", "ERROR", "EMPTY"
	ItemCount    int    `json:"item_count"`
	LatestDate   string `json:"latest_date,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
	ResponseTime int64  `json:"response_time_ms"`
}

func main() {
	query := flag.String("q", "", "optional search query to probe with")
	asJSON := flag.Bool("json", false, "emit results as JSON")
	flag.Parse()

	slog.SetDefault(logging.NewTextLogger())

	sourcesCfg, err := config.LoadSourcesConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load sources config: %v\n", err)
		os.Exit(1)
	}

	client := fetcher.NewClient(fetcher.Config{
		Timeout:   sourcesCfg.FetchTimeout,
		UserAgent: sourcesCfg.UserAgent,
	})
	adapters := source.DefaultAdapters(client, sourcesCfg)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	results := make([]SourceDiagnostic, len(adapters))
	var wg sync.WaitGroup
	for i, adapter := range adapters {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = probe(ctx, adapter, *query)
		}()
	}
	wg.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(results)
		return
	}

	var failures int
	fmt.Printf("%-20s %-7s %6s %9s  %s\n", "SOURCE", "STATUS", "ITEMS", "TIME(ms)", "DETAIL")
	for _, r := range results {
		detail := r.LatestDate
		if r.ErrorMessage != "" {
			detail = r.ErrorMessage
		}
		if r.Status != "OK" {
			failures++
		}
		fmt.Printf("%-20s %-7s %6d %9d  %s\n", r.Name, r.Status, r.ItemCount, r.ResponseTime, detail)
	}
	fmt.Printf("\n%d/%d sources healthy\n", len(results)-failures, len(results))

	if failures > 0 {
		os.Exit(1)
	}
}

func probe(ctx context.Context, adapter source.Adapter, query string) SourceDiagnostic {
	start := time.Now()
	headlines, err := adapter.FetchHeadlines(ctx, query)
	elapsed := time.Since(start).Milliseconds()

	diag := SourceDiagnostic{
		Name:         adapter.Name(),
		ItemCount:    len(headlines),
		ResponseTime: elapsed,
	}

	switch {
	case err != nil:
		diag.Status = "ERROR"
		diag.ErrorMessage = err.Error()
	case len(headlines) == 0:
		diag.Status = "EMPTY"
	default:
		diag.Status = "OK"
		latest := headlines[0].PublishedAt
		for _, h := range headlines[1:] {
			if h.PublishedAt.After(latest) {
				latest = h.PublishedAt
			}
		}
		diag.LatestDate = latest.Format(time.RFC3339)
	}
	return diag
}
