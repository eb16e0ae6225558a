package aggregate

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"research-radar/internal/domain/entity"
)

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "CRISPR Breakthrough", "crispr breakthrough"},
		{"strips punctuation", "CRISPR Breakthrough!", "crispr breakthrough"},
		{"hyphen becomes word break", "CRISPR-Cas9", "crispr cas9"},
		{"collapses whitespace", "gene   x \t found", "gene x found"},
		{"trims", "  spaced out  ", "spaced out"},
		{"keeps word chars and digits", "AlphaFold_3 beats v2", "alphafold_3 beats v2"},
		{"empty", "", ""},
		{"only punctuation", "?!...", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTitle(tt.input); got != tt.want {
				t.Errorf("NormalizeTitle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeTitleIdempotent(t *testing.T) {
	inputs := []string{
		"CRISPR Breakthrough!",
		"  Gene   X -- Found?  ",
		"plain title",
		"",
		"Ünïcode Cäse",
	}
	for _, in := range inputs {
		once := NormalizeTitle(in)
		twice := NormalizeTitle(once)
		if once != twice {
			t.Errorf("NormalizeTitle not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestDedupKeyCollisions(t *testing.T) {
	t.Run("case and punctuation collide", func(t *testing.T) {
		if DedupKey("CRISPR Breakthrough!") != DedupKey("crispr breakthrough") {
			t.Error("titles differing only in case/punctuation must share a key")
		}
	})

	t.Run("hyphen variants collide", func(t *testing.T) {
		if DedupKey("CRISPR-Cas9") != DedupKey("CRISPR Cas9") {
			t.Error("punctuation-only differences must share a key")
		}
	})

	t.Run("different wording does not collide", func(t *testing.T) {
		if DedupKey("Gene X discovered") == DedupKey("Discovery of Gene X") {
			t.Error("paraphrases must not collide")
		}
	})
}

func TestDeduplicateKeepsFirstOccurrence(t *testing.T) {
	a := entity.Headline{Title: "Gene X Found", Source: "Nature"}
	b := entity.Headline{Title: "Quantum advantage shown", Source: "arXiv"}
	aPrime := entity.Headline{Title: "gene x found!!", Source: "Phys.org"}

	got := Deduplicate([]entity.Headline{a, b, aPrime})
	want := []entity.Headline{a, b}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Deduplicate() mismatch (-want +got):\n%s", diff)
	}
}

func TestDeduplicateProperties(t *testing.T) {
	input := []entity.Headline{
		{Title: "alpha", Source: "s1"},
		{Title: "beta", Source: "s2"},
		{Title: "Alpha!", Source: "s3"},
		{Title: "gamma", Source: "s4"},
		{Title: "BETA", Source: "s5"},
	}

	got := Deduplicate(input)

	if len(got) > len(input) {
		t.Error("dedup must never increase list length")
	}
	// Survivors keep their relative input order.
	wantTitles := []string{"alpha", "beta", "gamma"}
	if len(got) != len(wantTitles) {
		t.Fatalf("got %d survivors, want %d", len(got), len(wantTitles))
	}
	for i, w := range wantTitles {
		if got[i].Title != w {
			t.Errorf("survivor %d = %q, want %q", i, got[i].Title, w)
		}
	}
	// First occurrence wins, carrying its original source.
	if got[0].Source != "s1" || got[1].Source != "s2" {
		t.Error("dedup must keep the first-seen record, not a later duplicate")
	}
}

func TestDeduplicateEmptyAndSingle(t *testing.T) {
	if got := Deduplicate(nil); len(got) != 0 {
		t.Errorf("Deduplicate(nil) = %v, want empty", got)
	}
	one := []entity.Headline{{Title: "solo", Source: "s"}}
	if got := Deduplicate(one); len(got) != 1 {
		t.Errorf("Deduplicate(single) = %v, want the single element", got)
	}
}
