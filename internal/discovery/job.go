package discovery

import "context"

// JobRecord is the structured extraction of a job description, holding the
// fields that drive profile search. Produced once per run and never mutated.
type JobRecord struct {
	// PrimaryTitle is the most accurate primary job title mentioned.
	PrimaryTitle string `json:"primary_job_title"`

	// CompanyName is the name of the hiring company.
	CompanyName string `json:"company_name"`

	// Industry is the company's industry, inferred if not explicitly stated.
	Industry string `json:"industry,omitempty"`

	// Location is the primary work location (city, region, or "Remote").
	Location string `json:"location,omitempty"`

	// KeySkills lists up to 7 specific technical, domain, or high-impact
	// soft skills useful for identifying relevant people.
	KeySkills []string `json:"key_skills_for_networking"`

	// AlternateTitles lists up to 3 closely related job titles for
	// broader searching.
	AlternateTitles []string `json:"suggested_search_titles"`

	// AccuracyKeywords disambiguates common job titles or company names
	// from unrelated uses of the same phrase.
	AccuracyKeywords string `json:"accuracy_keywords"`
}

// SearchResultItem is one hit from the search provider. Content may be
// empty when the provider returned no snippet for the URL.
type SearchResultItem struct {
	URL     string `json:"url"`
	Content string `json:"content"`
}

// ProfileResult is a single ranked profile in the final output.
type ProfileResult struct {
	// URL is the direct URL to the profile.
	URL string `json:"url"`

	// Justification is a one-sentence relevance rationale grounded
	// strictly in the search snippet content.
	Justification string `json:"justification"`
}

// RankedProfiles is the terminal artifact of a discovery run, best match
// first. An empty Profiles slice is a valid outcome, distinct from failure.
type RankedProfiles struct {
	Profiles []ProfileResult `json:"profiles"`
}

// ResponseKind tags the shape of a search provider response.
type ResponseKind int

const (
	// KindItems means the provider returned decomposable result items.
	KindItems ResponseKind = iota
	// KindSummary means the provider returned a prose summary instead of
	// items; it cannot be decomposed into per-profile snippets.
	KindSummary
	// KindUnrecognized means the response had no usable shape.
	KindUnrecognized
)

// SearchResponse is the tagged result variant returned by search clients.
// Exactly one of Items or Summary is meaningful, selected by Kind.
type SearchResponse struct {
	Kind    ResponseKind
	Items   []SearchResultItem
	Summary string
}

// JobExtractor turns free-text job-description prose into a JobRecord.
type JobExtractor interface {
	ExtractJob(ctx context.Context, jobDescription string) (JobRecord, error)
}

// Searcher executes one site-scoped web search query.
type Searcher interface {
	Search(ctx context.Context, query string) (SearchResponse, error)
}

// ProfileRanker filters and ranks aggregated snippets against the target
// job, returning an ordered, justified subset.
type ProfileRanker interface {
	RankProfiles(ctx context.Context, job JobRecord, snippets string) (RankedProfiles, error)
}
