package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rodrigoplimafreire/ats-resume/internal/config"
	"github.com/rodrigoplimafreire/ats-resume/internal/llm"
	"github.com/rodrigoplimafreire/ats-resume/internal/pipeline"
	"github.com/rodrigoplimafreire/ats-resume/internal/render"
	"github.com/rodrigoplimafreire/ats-resume/internal/types"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run one resume scan end to end",
	Long: `Reads the resume and job description, asks Gemini for the compatibility
report and an optimized rewrite, scores both versions, and renders the report.

The job description can be a file path, literal text, or a posting URL.`,
	RunE: runScanCmd,
}

var (
	scanResumePath string
	scanResumeText string
	scanJob        string
	scanJobURL     string
	scanLanguage   string
	scanTier       string
	scanAPIKey     string
	scanOutFile    string
	scanJSON       bool
	scanUseBrowser bool
	scanVerbose    bool
)

func init() {
	scanCmd.Flags().StringVarP(&scanResumePath, "resume", "r", "", "Path to resume file (.txt, .pdf or .docx; mutually exclusive with --resume-text)")
	scanCmd.Flags().StringVar(&scanResumeText, "resume-text", "", "Resume text passed directly (mutually exclusive with --resume)")
	scanCmd.Flags().StringVarP(&scanJob, "job-description", "j", "", "Job description as a file path or literal text (mutually exclusive with --job-url)")
	scanCmd.Flags().StringVar(&scanJobURL, "job-url", "", "URL to fetch the job posting from (mutually exclusive with --job-description)")
	scanCmd.Flags().StringVarP(&scanLanguage, "language", "l", "", "Report language: en, pt or es (default en)")
	scanCmd.Flags().StringVar(&scanTier, "model-tier", "", "Model tier: lite, standard or advanced (default standard)")
	scanCmd.Flags().StringVar(&scanAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	scanCmd.Flags().StringVarP(&scanOutFile, "out", "o", "", "Also write the scan result JSON to this file")
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "Print the scan result as JSON instead of the report")
	scanCmd.Flags().BoolVar(&scanUseBrowser, "use-browser", false, "Use a headless browser for SPA job pages (requires Chrome)")
	scanCmd.Flags().BoolVarP(&scanVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(scanCmd)
}

func runScanCmd(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if scanAPIKey != "" {
		cfg.APIKey = scanAPIKey
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts, err := buildScanOptions(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ScanTimeout)
	defer cancel()

	result, err := pipeline.NewRunner().Scan(ctx, opts)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if scanOutFile != "" {
		if err := writeResultFile(result, scanOutFile); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(os.Stderr, "Scan result written to %s\n", scanOutFile)
	}

	printer := render.NewPrinter(os.Stdout)
	if scanJSON {
		return printer.PrintJSON(result)
	}
	printer.PrintResult(result)
	return nil
}

// buildScanOptions validates the flag combination and maps it onto the
// pipeline. The --job-description value is treated as a file path when
// it names an existing file, literal text otherwise.
func buildScanOptions(cfg *config.AppConfig) (pipeline.ScanOptions, error) {
	var opts pipeline.ScanOptions

	if scanResumePath == "" && scanResumeText == "" {
		return opts, fmt.Errorf("either --resume or --resume-text must be provided")
	}
	if scanResumePath != "" && scanResumeText != "" {
		return opts, fmt.Errorf("--resume and --resume-text are mutually exclusive; provide only one")
	}
	if scanJob == "" && scanJobURL == "" {
		return opts, fmt.Errorf("either --job-description or --job-url must be provided")
	}
	if scanJob != "" && scanJobURL != "" {
		return opts, fmt.Errorf("--job-description and --job-url are mutually exclusive; provide only one")
	}
	if scanLanguage != "" && !types.ValidLanguage(scanLanguage) {
		return opts, fmt.Errorf("unsupported language %q (valid: en, pt, es)", scanLanguage)
	}
	if scanTier != "" && !llm.ValidTier(scanTier) {
		return opts, fmt.Errorf("unknown model tier %q (valid: lite, standard, advanced)", scanTier)
	}

	opts = pipeline.ScanOptions{
		ResumePath: scanResumePath,
		ResumeText: scanResumeText,
		JobURL:     scanJobURL,
		Language:   types.Language(scanLanguage),
		APIKey:     cfg.APIKey,
		Tier:       llm.ModelTier(scanTier),
		Models:     cfg.Models,
		UseBrowser: scanUseBrowser,
		Verbose:    scanVerbose,
		OnProgress: printProgress,
	}

	if scanJob != "" {
		if isFile(scanJob) {
			opts.JobPath = scanJob
		} else {
			opts.JobDescription = scanJob
		}
	}

	return opts, nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// printProgress writes stage updates to stderr so stdout stays clean
// for the report.
func printProgress(event pipeline.ProgressEvent) {
	_, _ = fmt.Fprintf(os.Stderr, "[%d/%d] %s\n", event.Step, event.TotalSteps, event.Message)
}

func writeResultFile(result *pipeline.ScanResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal scan result: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
