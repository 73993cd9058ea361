// Package analysis implements the single-shot prompt workflows: a résumé
// gap analysis against a job description, and an action plan derived from
// that analysis.
package analysis

import (
	"context"
	"fmt"
	"strings"
)

// maxInputChars truncates résumé and job-description text before prompting
// to keep the calls within model context limits.
const maxInputChars = 8000

// TextGenerator runs one freeform prompt against a language model.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Analyzer runs the gap-analysis and action-plan workflows.
type Analyzer struct {
	llm TextGenerator
}

func NewAnalyzer(llm TextGenerator) *Analyzer {
	return &Analyzer{llm: llm}
}

// GapAnalysis compares a résumé against a job description and returns a
// Markdown report of categorized gaps.
func (a *Analyzer) GapAnalysis(ctx context.Context, resumeText, jobDescription string) (string, error) {
	if strings.TrimSpace(resumeText) == "" {
		return "", fmt.Errorf("empty resume text")
	}
	if strings.TrimSpace(jobDescription) == "" {
		return "", fmt.Errorf("empty job description")
	}

	prompt := fmt.Sprintf(gapAnalysisPrompt, truncate(resumeText), truncate(jobDescription))
	out, err := a.llm.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("gap analysis: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// ActionPlan turns a gap analysis into a numbered Markdown action plan.
func (a *Analyzer) ActionPlan(ctx context.Context, gapAnalysis string) (string, error) {
	if strings.TrimSpace(gapAnalysis) == "" {
		return "", fmt.Errorf("empty gap analysis")
	}

	out, err := a.llm.Generate(ctx, fmt.Sprintf(actionPlanPrompt, truncate(gapAnalysis)))
	if err != nil {
		return "", fmt.Errorf("action plan: %w", err)
	}
	return strings.TrimSpace(out), nil
}

func truncate(s string) string {
	if len(s) <= maxInputChars {
		return s
	}
	return s[:maxInputChars]
}
