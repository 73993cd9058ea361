package discovery

import (
	"fmt"
	"strings"
)

const (
	missingURLMarker     = "N/A"
	missingSnippetMarker = "No snippet available"
	noResultsSentinel    = "No search results found."
)

// FormatSearchResults renders the flat result aggregate into the single
// text block consumed by the ranking prompt: one fixed-format record per
// item with a 1-based index and a literal separator. Pure and idempotent.
//
// The empty-aggregate sentinel is defensive; the pipeline stops on an empty
// aggregate before formatting is reached.
func FormatSearchResults(items []SearchResultItem) string {
	if len(items) == 0 {
		return noResultsSentinel
	}

	var sb strings.Builder
	for i, item := range items {
		url := item.URL
		if strings.TrimSpace(url) == "" {
			url = missingURLMarker
		}
		content := item.Content
		if strings.TrimSpace(content) == "" {
			content = missingSnippetMarker
		}
		fmt.Fprintf(&sb, "Result %d:\nURL: %s\nSnippet: %s\n---\n", i+1, url, content)
	}
	return sb.String()
}
