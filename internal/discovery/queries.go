package discovery

import (
	"fmt"
	"strings"
)

// SiteScope restricts search hits to public profile pages.
const SiteScope = "site:linkedin.com/in/"

// maxQueries caps the number of search API calls per run. Synthesis order
// front-loads the most discriminating queries (title+company) so the cap
// drops the broadest ones first.
const maxQueries = 10

// BuildSearchQueries maps a JobRecord to an ordered, deduplicated list of
// site-scoped search queries, capped at maxQueries. Deterministic: the same
// record always yields the same list.
func BuildSearchQueries(job JobRecord) []string {
	title := strings.TrimSpace(job.PrimaryTitle)
	company := strings.TrimSpace(job.CompanyName)
	keywords := strings.TrimSpace(job.AccuracyKeywords)

	// A record with neither title nor company cannot anchor any query.
	if title == "" && company == "" {
		return nil
	}

	base := buildQuery(quoted(title), quoted(company), "company")

	queries := []string{
		base,
		buildQuery(base, keywords),
		buildQuery(quoted(company), "company", keywords),
	}

	for _, skill := range job.KeySkills {
		queries = append(queries, buildQuery(base, quoted(skill)))
	}

	for _, alt := range job.AlternateTitles {
		queries = append(queries, buildQuery(quoted(alt), quoted(company), "company"))
	}

	if loc := strings.TrimSpace(job.Location); loc != "" && !strings.EqualFold(loc, "remote") {
		queries = append(queries, buildQuery(base, quoted(loc)))
	}

	unique := dedupePreserveOrder(queries)
	if len(unique) > maxQueries {
		unique = unique[:maxQueries]
	}
	return unique
}

// buildQuery joins non-empty parts after the site-scope token with single
// spaces. Parts already carrying the scope (a base query) pass through.
func buildQuery(parts ...string) string {
	kept := make([]string, 0, len(parts)+1)
	kept = append(kept, SiteScope)
	for _, p := range parts {
		if p == "" {
			continue
		}
		if strings.HasPrefix(p, SiteScope) {
			p = strings.TrimSpace(strings.TrimPrefix(p, SiteScope))
			if p == "" {
				continue
			}
		}
		kept = append(kept, p)
	}
	return strings.Join(kept, " ")
}

func quoted(s string) string {
	if s == "" {
		return ""
	}
	return fmt.Sprintf("%q", s)
}

func dedupePreserveOrder(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
