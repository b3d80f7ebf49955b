// Package pipeline orchestrates a full resume scan: input resolution,
// analysis, scoring, and highlighted views.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/rodrigoplimafreire/ats-resume/internal/analysis"
	"github.com/rodrigoplimafreire/ats-resume/internal/extract"
	"github.com/rodrigoplimafreire/ats-resume/internal/highlight"
	"github.com/rodrigoplimafreire/ats-resume/internal/ingestion"
	"github.com/rodrigoplimafreire/ats-resume/internal/llm"
	"github.com/rodrigoplimafreire/ats-resume/internal/scoring"
	"github.com/rodrigoplimafreire/ats-resume/internal/types"
)

// Stage names reported through progress events.
const (
	StageExtract = "extract"
	StageIngest  = "ingest"
	StageAnalyze = "analyze"
	StageScore   = "score"
	StageRender  = "render"
)

// TotalSteps is the number of progress steps in one scan.
const TotalSteps = 5

var (
	// ErrMissingResume is returned when neither resume text nor a resume
	// file is provided
	ErrMissingResume = errors.New("resume input is required")
	// ErrMissingJob is returned when no job description source is provided
	ErrMissingJob = errors.New("job description input is required")
)

// ProgressEvent represents a progress update during a scan
type ProgressEvent struct {
	Step       int    `json:"step"`
	TotalSteps int    `json:"totalSteps"`
	Stage      string `json:"stage"`
	Message    string `json:"message"`
	ScanID     string `json:"scanId,omitempty"`
}

// ProgressCallback is called as scan stages begin
type ProgressCallback func(event ProgressEvent)

// Analyzer produces an analysis result for a job description and resume.
// It matches analysis.Analyze.
type Analyzer func(ctx context.Context, jobDescription, resumeText string, opts analysis.Options) (*types.AnalysisResult, error)

// ScanOptions holds the inputs for one scan.
type ScanOptions struct {
	// Resume source: direct text, or a file to extract.
	ResumeText string
	ResumePath string

	// Job description source: direct text, a file, or a posting URL.
	JobDescription string
	JobPath        string
	JobURL         string

	Language types.Language

	// Analysis configuration.
	APIKey string
	Tier   llm.ModelTier
	Models *llm.Config

	// UseBrowser enables the headless-browser fallback for job URLs.
	UseBrowser bool
	Verbose    bool

	// OnProgress receives stage events. May be nil.
	OnProgress ProgressCallback
}

// Runner executes scans. The zero value is not usable; construct with
// NewRunner.
type Runner struct {
	analyze Analyzer
}

// NewRunner returns a Runner backed by the live analysis client.
func NewRunner() *Runner {
	return &Runner{analyze: analysis.Analyze}
}

// NewRunnerWithAnalyzer returns a Runner with a custom analyzer.
func NewRunnerWithAnalyzer(analyze Analyzer) *Runner {
	return &Runner{analyze: analyze}
}

// Scan runs one full scan and returns its result.
func (r *Runner) Scan(ctx context.Context, opts ScanOptions) (*ScanResult, error) {
	if opts.ResumeText == "" && opts.ResumePath == "" {
		return nil, ErrMissingResume
	}
	if opts.JobDescription == "" && opts.JobPath == "" && opts.JobURL == "" {
		return nil, ErrMissingJob
	}

	language := opts.Language
	if language == "" {
		language = types.DefaultLanguage
	}

	scanID := uuid.New()
	emit := func(step int, stage, message string) {
		if opts.OnProgress != nil {
			opts.OnProgress(ProgressEvent{
				Step:       step,
				TotalSteps: TotalSteps,
				Stage:      stage,
				Message:    message,
				ScanID:     scanID.String(),
			})
		}
	}

	emit(1, StageExtract, resumeStageMessage(opts))
	emit(2, StageIngest, jobStageMessage(opts))

	resumeText, jobText, jobMeta, err := r.resolveInputs(ctx, opts)
	if err != nil {
		return nil, err
	}

	emit(3, StageAnalyze, "Analyzing resume against job description")
	analysisResult, err := r.analyze(ctx, jobText, resumeText, analysis.Options{
		APIKey:   opts.APIKey,
		Language: language,
		Tier:     opts.Tier,
		Models:   opts.Models,
	})
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	emit(4, StageScore, "Computing match scores")
	originalScore := scoring.ComputeScore(analysisResult.Report)
	optimizedScore := scoring.ComputeOptimizedScore(analysisResult.Report, analysisResult.OptimizedResume)
	if opts.Verbose {
		log.Printf("[SCAN] %s: original score %d, optimized score %d", scanID, originalScore, optimizedScore)
	}

	emit(5, StageRender, "Preparing highlighted resume views")
	keywords := analysisResult.Report.Keywords()

	return &ScanResult{
		ID:              scanID,
		CreatedAt:       time.Now().UTC(),
		Language:        language,
		JobPosting:      jobMeta,
		Report:          analysisResult.Report,
		OriginalResume:  resumeText,
		OptimizedResume: analysisResult.OptimizedResume,
		OriginalScore:   originalScore,
		OptimizedScore:  optimizedScore,
		OriginalColor:   scoring.ScoreColor(originalScore),
		OptimizedColor:  scoring.ScoreColor(optimizedScore),
		OriginalView:    highlight.Highlight(resumeText, keywords),
		OptimizedView:   highlight.Highlight(analysisResult.OptimizedResume, keywords),
	}, nil
}

// resolveInputs produces the resume and job-description texts. File
// extraction and URL ingestion run concurrently when both are needed.
func (r *Runner) resolveInputs(ctx context.Context, opts ScanOptions) (resumeText, jobText string, jobMeta *ingestion.Metadata, err error) {
	resumeText = opts.ResumeText
	jobText = opts.JobDescription

	g, gCtx := errgroup.WithContext(ctx)

	if resumeText == "" {
		g.Go(func() error {
			text, extractErr := extract.FromFile(opts.ResumePath)
			if extractErr != nil {
				return fmt.Errorf("resume extraction failed: %w", extractErr)
			}
			resumeText = ingestion.CleanText(text)
			return nil
		})
	}

	if jobText == "" {
		g.Go(func() error {
			var ingestErr error
			switch {
			case opts.JobURL != "":
				jobText, jobMeta, ingestErr = ingestion.FromURL(gCtx, opts.JobURL, ingestion.Options{
					UseBrowser: opts.UseBrowser,
					Verbose:    opts.Verbose,
				})
			default:
				jobText, jobMeta, ingestErr = ingestion.FromFile(opts.JobPath)
			}
			if ingestErr != nil {
				return fmt.Errorf("job ingestion failed: %w", ingestErr)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return "", "", nil, err
	}

	return resumeText, jobText, jobMeta, nil
}

func resumeStageMessage(opts ScanOptions) string {
	if opts.ResumeText != "" {
		return "Using provided resume text"
	}
	return fmt.Sprintf("Extracting resume text from %s", opts.ResumePath)
}

func jobStageMessage(opts ScanOptions) string {
	switch {
	case opts.JobDescription != "":
		return "Using provided job description"
	case opts.JobURL != "":
		return fmt.Sprintf("Ingesting job posting from %s", opts.JobURL)
	default:
		return fmt.Sprintf("Ingesting job description from %s", opts.JobPath)
	}
}
