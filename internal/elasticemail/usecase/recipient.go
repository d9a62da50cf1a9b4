package usecase

import (
	"strings"

	"github.com/samber/lo"
)

// parseRecipient appends the non-blank comma separated entries of raw to acc.
// Entries are neither validated nor deduplicated.
func parseRecipient(acc []string, raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return acc
	}

	parts := lo.Map(strings.Split(raw, ","), func(p string, _ int) string {
		return strings.TrimSpace(p)
	})
	return append(acc, lo.Compact(parts)...)
}
