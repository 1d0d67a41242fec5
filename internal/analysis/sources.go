package analysis

import (
	"fmt"
	"strings"
)

// FallbackSources is used whenever no usable grounding citations exist.
const FallbackSources = "Verified via Google."

// FormatSources renders grounding citations as a numbered human-readable
// list, one "{n}. {title}: {uri}" line per citation that carries a URI.
// Citations without one are skipped. Any shape of missing or empty metadata
// degrades to the fallback string; this never fails.
func FormatSources(citations []Citation) string {
	var b strings.Builder
	n := 0
	for _, c := range citations {
		if strings.TrimSpace(c.URI) == "" {
			continue
		}
		n++
		fmt.Fprintf(&b, "%d. %s: %s\n", n, c.Title, c.URI)
	}
	if n == 0 {
		return FallbackSources
	}
	return b.String()
}
