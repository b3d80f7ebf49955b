// Package analysis sends a resume and job description to the analysis model
// and returns the structured report with the optimized resume text.
package analysis

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rodrigoplimafreire/ats-resume/internal/llm"
	"github.com/rodrigoplimafreire/ats-resume/internal/prompts"
	"github.com/rodrigoplimafreire/ats-resume/internal/schemas"
	"github.com/rodrigoplimafreire/ats-resume/internal/types"
)

// Options configures a single analysis call.
type Options struct {
	// APIKey authenticates against the model provider. Required by Analyze.
	APIKey string
	// Language the model writes the report and optimized resume in.
	// Defaults to English.
	Language types.Language
	// Tier selects the model tier. Defaults to TierStandard.
	Tier llm.ModelTier
	// Models overrides the tier-to-model mapping. Defaults to the provider
	// defaults.
	Models *llm.Config
}

// Analyze runs one full analysis against the model provider. It constructs
// and closes its own client; use AnalyzeWithClient to supply one.
func Analyze(ctx context.Context, jobDescription, resumeText string, opts Options) (*types.AnalysisResult, error) {
	if opts.APIKey == "" {
		return nil, &APICallError{Message: "API key is required"}
	}

	config := opts.Models
	if config == nil {
		config = llm.DefaultConfig()
	}
	client, err := llm.NewClient(ctx, config, opts.APIKey)
	if err != nil {
		return nil, &APICallError{
			Message: "failed to create LLM client",
			Cause:   err,
		}
	}
	defer func() { _ = client.Close() }()

	return AnalyzeWithClient(ctx, client, jobDescription, resumeText, opts)
}

// AnalyzeWithClient runs one full analysis through an existing client. The
// response is schema-validated; an invalid response is sent back to the model
// once with a repair prompt before giving up.
func AnalyzeWithClient(ctx context.Context, client llm.Client, jobDescription, resumeText string, opts Options) (*types.AnalysisResult, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return nil, &ValidationError{Field: "jobDescription", Message: "job description text is required"}
	}
	if strings.TrimSpace(resumeText) == "" {
		return nil, &ValidationError{Field: "resumeText", Message: "resume text is required"}
	}

	language := opts.Language
	if language == "" {
		language = types.DefaultLanguage
	}
	if !types.ValidLanguage(string(language)) {
		return nil, &ValidationError{Field: "language", Message: "unsupported language code: " + string(language)}
	}

	tier := opts.Tier
	if tier == "" {
		tier = llm.TierStandard
	}

	prompt := buildAnalysisPrompt(jobDescription, resumeText, language)

	responseText, err := client.GenerateJSON(ctx, prompt, tier)
	if err != nil {
		return nil, &APICallError{
			Message: "failed to generate analysis",
			Cause:   err,
		}
	}
	responseText = llm.CleanJSONBlock(responseText)

	if validationErr := schemas.ValidateAnalysisResult(responseText); validationErr != nil {
		// One repair round: feed the violations back to the model.
		responseText, err = repairResponse(ctx, client, tier, responseText, validationErr)
		if err != nil {
			return nil, err
		}
	}

	var result types.AnalysisResult
	if err := json.Unmarshal([]byte(responseText), &result); err != nil {
		return nil, &ParseError{
			Message: "failed to parse JSON response",
			Cause:   err,
		}
	}

	normalizeResult(&result)

	return &result, nil
}

// buildAnalysisPrompt constructs the analysis prompt from the embedded template
func buildAnalysisPrompt(jobDescription, resumeText string, language types.Language) string {
	template := prompts.MustGet("analysis.json", "analyze_resume")
	return prompts.Format(template, map[string]string{
		"JobDescription": jobDescription,
		"ResumeText":     resumeText,
		"Language":       languageName(language),
	})
}

// repairResponse asks the model to fix a schema-invalid response. Returns the
// repaired text or a ParseError when the second attempt is still invalid.
func repairResponse(ctx context.Context, client llm.Client, tier llm.ModelTier, badResponse string, validationErr error) (string, error) {
	template := prompts.MustGet("analysis.json", "repair_json")
	prompt := prompts.Format(template, map[string]string{
		"Errors":   validationErr.Error(),
		"Response": badResponse,
	})

	responseText, err := client.GenerateJSON(ctx, prompt, tier)
	if err != nil {
		return "", &APICallError{
			Message: "failed to repair analysis response",
			Cause:   err,
		}
	}
	responseText = llm.CleanJSONBlock(responseText)

	if err := schemas.ValidateAnalysisResult(responseText); err != nil {
		return "", &ParseError{
			Message: "response does not match the analysis schema after repair",
			Cause:   err,
		}
	}

	return responseText, nil
}

// languageName maps a language code to the name used in the prompt
func languageName(language types.Language) string {
	switch language {
	case types.LanguagePortuguese:
		return "Portuguese"
	case types.LanguageSpanish:
		return "Spanish"
	default:
		return "English"
	}
}
