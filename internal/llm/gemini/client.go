// Package gemini adapts the Gemini API to the model-call boundaries of the
// application: schema-constrained extraction and ranking calls for the
// discovery pipeline, and freeform generation for the analysis prompts.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/careerkit/profilescout/internal/discovery"
	"github.com/careerkit/profilescout/pkg/pipeline/core"
	"google.golang.org/genai"
)

const (
	// retryAttempts bounds total tries per model call. Transient provider
	// errors are the dominant real-world failure mode.
	retryAttempts = 3

	backoffInitial = 1 * time.Second
	backoffMax     = 5 * time.Second

	// temperature keeps extraction and ranking output stable.
	temperature float32 = 0.3
)

type Config struct {
	APIKey string
	Model  string

	// BaseURL overrides the Gemini API base URL. Useful for proxies/testing.
	BaseURL string
}

type Client struct {
	client *genai.Client
	model  string
}

func New(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("GEMINI_MODEL is required")
	}

	cc := &genai.ClientConfig{
		APIKey:  strings.TrimSpace(cfg.APIKey),
		Backend: genai.BackendGeminiAPI,
	}
	if strings.TrimSpace(cfg.BaseURL) != "" {
		cc.HTTPOptions.BaseURL = strings.TrimSpace(cfg.BaseURL)
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, err
	}
	return &Client{client: client, model: strings.TrimSpace(cfg.Model)}, nil
}

var jobSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"primary_job_title": {
			Type:        genai.TypeString,
			Description: "The most accurate primary job title mentioned.",
		},
		"company_name": {
			Type:        genai.TypeString,
			Description: "The name of the hiring company.",
		},
		"industry": {
			Type:        genai.TypeString,
			Description: "The company's industry (inferred if not explicitly stated).",
		},
		"location": {
			Type:        genai.TypeString,
			Description: "The primary work location (e.g., city, region, remote) if specified.",
		},
		"key_skills_for_networking": {
			Type:        genai.TypeArray,
			Items:       &genai.Schema{Type: genai.TypeString},
			Description: "3-5 specific technical, domain, or high-impact soft skills mentioned, useful for identifying relevant people. At most 7.",
		},
		"suggested_search_titles": {
			Type:        genai.TypeArray,
			Items:       &genai.Schema{Type: genai.TypeString},
			Description: "2-3 alternative but closely related job titles for broader searching. At most 3.",
		},
		"accuracy_keywords": {
			Type:        genai.TypeString,
			Description: "Keywords used to improve accuracy of search results.",
		},
	},
	Required: []string{
		"primary_job_title",
		"company_name",
		"key_skills_for_networking",
		"suggested_search_titles",
		"accuracy_keywords",
	},
}

var profilesSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"profiles": {
			Type:        genai.TypeArray,
			Description: "A ranked list of the most relevant profile URLs and justifications, best match first.",
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"url": {
						Type:        genai.TypeString,
						Description: "The direct URL to the profile.",
					},
					"justification": {
						Type:        genai.TypeString,
						Description: "Brief (1-sentence) justification for relevance based strictly on the search snippet content.",
					},
				},
				Required: []string{"url", "justification"},
			},
		},
	},
	Required: []string{"profiles"},
}

// ExtractJob runs the structured-extraction call of the discovery pipeline.
// Output that does not parse into a usable JobRecord is a *discovery.SchemaError.
func (c *Client) ExtractJob(ctx context.Context, jobDescription string) (discovery.JobRecord, error) {
	raw, err := c.generateJSON(ctx, fmt.Sprintf(extractPrompt, jobDescription), jobSchema)
	if err != nil {
		return discovery.JobRecord{}, fmt.Errorf("extract job details: %w", err)
	}

	job, err := parseJobRecord(raw)
	if err != nil {
		return discovery.JobRecord{}, &discovery.SchemaError{Stage: discovery.StageExtract, Err: err}
	}
	return job, nil
}

// RankProfiles runs the filter-and-rank call. Output missing the profiles
// field, or containing a profile without url/justification, is rejected
// whole as a *discovery.SchemaError.
func (c *Client) RankProfiles(ctx context.Context, job discovery.JobRecord, snippets string) (discovery.RankedProfiles, error) {
	prompt := fmt.Sprintf(rankPrompt,
		job.PrimaryTitle,
		job.CompanyName,
		strings.Join(job.KeySkills, ", "),
		snippets,
	)

	raw, err := c.generateJSON(ctx, prompt, profilesSchema)
	if err != nil {
		return discovery.RankedProfiles{}, fmt.Errorf("rank profiles: %w", err)
	}

	ranked, err := parseRankedProfiles(raw)
	if err != nil {
		return discovery.RankedProfiles{}, &discovery.SchemaError{Stage: discovery.StageRank, Err: err}
	}
	return ranked, nil
}

// Generate runs a freeform prompt and returns the response text. Used by
// the single-shot analysis workflows.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	var out string
	err := c.withRetry(ctx, func() error {
		resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
			CandidateCount: 1,
		})
		if err != nil {
			return classifyErr(err)
		}
		out = resp.Text()
		return nil
	})
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(out) == "" {
		return "", errors.New("gemini: empty response")
	}
	return out, nil
}

func (c *Client) generateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	var out string
	err := c.withRetry(ctx, func() error {
		resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
			CandidateCount:   1,
			Temperature:      genai.Ptr(temperature),
			ResponseMIMEType: "application/json",
			ResponseSchema:   schema,
		})
		if err != nil {
			return classifyErr(err)
		}
		out = resp.Text()
		return nil
	})
	return out, err
}

// withRetry retries transient provider failures with exponential backoff.
// Schema and auth failures are surfaced immediately.
func (c *Client) withRetry(ctx context.Context, fn func() error) error {
	var lastErr error
	sleep := backoffInitial
	for attempt := 0; attempt < retryAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !core.IsTransient(lastErr) || attempt == retryAttempts-1 {
			return lastErr
		}

		t := time.NewTimer(sleep)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		}
		sleep *= 2
		if sleep > backoffMax {
			sleep = backoffMax
		}
	}
	return lastErr
}

func parseJobRecord(raw string) (discovery.JobRecord, error) {
	var job discovery.JobRecord
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		return discovery.JobRecord{}, fmt.Errorf("parse structured json: %w", err)
	}
	if strings.TrimSpace(job.PrimaryTitle) == "" && strings.TrimSpace(job.CompanyName) == "" {
		return discovery.JobRecord{}, errors.New("both primary_job_title and company_name are empty")
	}
	// Clamp list fields to their schema bounds rather than failing the run.
	if len(job.KeySkills) > 7 {
		job.KeySkills = job.KeySkills[:7]
	}
	if len(job.AlternateTitles) > 3 {
		job.AlternateTitles = job.AlternateTitles[:3]
	}
	return job, nil
}

func parseRankedProfiles(raw string) (discovery.RankedProfiles, error) {
	var envelope struct {
		Profiles *[]discovery.ProfileResult `json:"profiles"`
	}
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return discovery.RankedProfiles{}, fmt.Errorf("parse structured json: %w", err)
	}
	if envelope.Profiles == nil {
		return discovery.RankedProfiles{}, errors.New("missing required field profiles")
	}
	for i, p := range *envelope.Profiles {
		if strings.TrimSpace(p.URL) == "" {
			return discovery.RankedProfiles{}, fmt.Errorf("profile %d: missing url", i+1)
		}
		if strings.TrimSpace(p.Justification) == "" {
			return discovery.RankedProfiles{}, fmt.Errorf("profile %d: missing justification", i+1)
		}
	}
	return discovery.RankedProfiles{Profiles: *envelope.Profiles}, nil
}

// classifyErr wraps transient provider failures so retry loops try again
// with backoff.
func classifyErr(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == 429 || apiErr.Code/100 == 5 {
			return core.Transient(err)
		}
		return err
	}
	var ne net.Error
	if errors.As(err, &ne) && (ne.Timeout() || ne.Temporary()) {
		return core.Transient(err)
	}
	return err
}
