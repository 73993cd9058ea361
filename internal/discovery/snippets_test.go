package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatSearchResults(t *testing.T) {
	t.Parallel()

	items := []SearchResultItem{
		{URL: "https://www.linkedin.com/in/alice", Content: "Alice - Senior Data Engineer at Acme Corp"},
		{URL: "https://www.linkedin.com/in/bob", Content: "Bob - Data Platform Engineer"},
	}

	want := "Result 1:\n" +
		"URL: https://www.linkedin.com/in/alice\n" +
		"Snippet: Alice - Senior Data Engineer at Acme Corp\n" +
		"---\n" +
		"Result 2:\n" +
		"URL: https://www.linkedin.com/in/bob\n" +
		"Snippet: Bob - Data Platform Engineer\n" +
		"---\n"

	assert.Equal(t, want, FormatSearchResults(items))
}

func TestFormatSearchResults_MissingFields(t *testing.T) {
	t.Parallel()

	got := FormatSearchResults([]SearchResultItem{{}})

	assert.Contains(t, got, "URL: N/A\n")
	assert.Contains(t, got, "Snippet: No snippet available\n")
}

func TestFormatSearchResults_Idempotent(t *testing.T) {
	t.Parallel()

	items := []SearchResultItem{
		{URL: "https://www.linkedin.com/in/alice", Content: "snippet"},
		{URL: "", Content: ""},
	}

	assert.Equal(t, FormatSearchResults(items), FormatSearchResults(items))
}

func TestFormatSearchResults_EmptySentinel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "No search results found.", FormatSearchResults(nil))
	assert.Equal(t, "No search results found.", FormatSearchResults([]SearchResultItem{}))
}
