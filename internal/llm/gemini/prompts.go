package gemini

// extractPrompt drives the structured-extraction call. The response schema
// constrains the output shape; the prompt steers field quality.
const extractPrompt = `Analyze the following job description. Your goal is to extract key information that will be used to search for people on LinkedIn holding similar roles (considering job function, scope, company, and industry) for networking purposes.
Other things to consider:
1. When extracting specific technical, domain, or high-impact soft skills mentioned, avoid locations or generic phrases.
2. Add keywords to improve the accuracy of the search results, especially if the job description or company name are common phrases used in other contexts.

Job Description:
%s
`

// rankPrompt drives the filter-and-rank call. Relevance judgments must be
// grounded in snippet content only; the model never fetches the URLs.
const rankPrompt = `Based on the target job information below, please evaluate the following web search results intended to find relevant LinkedIn profiles.

Target Job Information:
- Title: %s
- Company: %s
- Key Skills: %s

Web Search Results (Snippets from search engine for site:linkedin.com/in/):
%s

Instructions:
1. Carefully review each search result snippet and its URL.
2. Filter out any results that are clearly irrelevant (e.g., links to job postings themselves, company pages, recruiter profiles if distinguishable, profiles with titles/companies/skills completely unrelated to the target job).
3. From the remaining potentially relevant profiles, select and rank the top 5-7 most promising ones that likely represent individuals currently or recently in roles similar to the target job, based only on the information in the snippet. Prioritize relevance based on matching title, company, and mentioned skills apparent in the snippet.
4. Provide your ranked list with a one-sentence justification per profile.
`
