package aggregate

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"

	"research-radar/internal/domain/entity"
)

var (
	nonWordPattern    = regexp.MustCompile(`[^\w\s]+`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// NormalizeTitle canonicalizes a headline title for dedup purposes:
// lower-case, strip everything that is not a word character or whitespace
// (punctuation becomes a word break, so "CRISPR-Cas9" and "CRISPR Cas9"
// meet), collapse whitespace runs to single spaces, trim. The procedure is
// idempotent; changing it changes every dedup key.
func NormalizeTitle(title string) string {
	t := strings.ToLower(title)
	t = nonWordPattern.ReplaceAllString(t, " ")
	t = whitespacePattern.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}

// DedupKey derives the uniqueness identity of a title: the hex-encoded
// SHA-256 of its normalized text. Hashing gives uniform fixed-size keys and
// keeps raw titles out of the seen-set; matching is exact normalized-text
// equality, not semantic similarity.
func DedupKey(title string) string {
	sum := sha256.Sum256([]byte(NormalizeTitle(title)))
	return hex.EncodeToString(sum[:])
}

// Deduplicate keeps at most one headline per distinct normalized title,
// preserving first-seen order. Surviving elements are never reordered and
// the result is never longer than the input.
func Deduplicate(headlines []entity.Headline) []entity.Headline {
	seen := make(map[string]struct{}, len(headlines))
	out := make([]entity.Headline, 0, len(headlines))
	for _, h := range headlines {
		key := DedupKey(h.Title)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, h)
	}
	return out
}
