// Package ingestion turns job postings (URLs or files) into cleaned text
// ready for analysis.
package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"

	"github.com/rodrigoplimafreire/ats-resume/internal/fetch"
)

var (
	// ErrInvalidURL is returned when the URL is malformed or not http(s)
	ErrInvalidURL = errors.New("invalid URL")
	// ErrFetchFailed is returned when the posting could not be retrieved
	ErrFetchFailed = errors.New("fetch failed")
	// ErrNoContent is returned when no usable text could be extracted
	ErrNoContent = errors.New("no content extracted")
)

// Options configures job-posting ingestion.
type Options struct {
	// UseBrowser enables the headless-browser fallback for pages that
	// render their content client-side.
	UseBrowser bool
	// Verbose logs each step of the extraction.
	Verbose bool
	// Fetch overrides the HTTP fetch options.
	Fetch *fetch.Options
}

// FromURL fetches a job posting, extracts its main text using
// platform-specific selectors, cleans it, and returns it with provenance
// metadata.
func FromURL(ctx context.Context, urlStr string, opts Options) (string, *Metadata, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return "", nil, fmt.Errorf("%w: %s", ErrInvalidURL, urlStr)
	}

	platform := fetch.DetectPlatform(urlStr)
	if opts.Verbose {
		log.Printf("[INGEST] URL: %s (platform: %s)", urlStr, platform)
	}

	result, err := fetch.URL(ctx, urlStr, opts.Fetch)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	if opts.Verbose {
		log.Printf("[INGEST] Fetched HTML: %d bytes", len(result.HTML))
	}

	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)

	textContent, err := fetch.ExtractMainText(result.HTML, contentSelectors, noiseSelectors...)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrNoContent, err)
	}
	if opts.Verbose {
		log.Printf("[INGEST] Extracted text: %d chars", len(textContent))
	}

	if opts.UseBrowser && fetch.ShouldUseBrowser(textContent) {
		if opts.Verbose {
			log.Printf("[INGEST] Content too short (%d chars < %d), retrying with browser rendering",
				len(textContent), fetch.MinContentLength)
		}
		textContent = browserRetry(ctx, urlStr, textContent, contentSelectors, noiseSelectors, opts.Verbose)
	}

	cleaned := CleanText(textContent)
	if cleaned == "" {
		return "", nil, fmt.Errorf("%w: %s", ErrNoContent, urlStr)
	}

	metadata := NewMetadata(cleaned, urlStr)
	metadata.Platform = string(platform)

	return cleaned, metadata, nil
}

// browserRetry re-fetches the page through a headless browser. The HTTP
// content is kept when rendering or re-extraction fails.
func browserRetry(ctx context.Context, urlStr, httpText string, contentSelectors, noiseSelectors []string, verbose bool) string {
	browserHTML, err := fetch.BrowserSimple(ctx, urlStr, verbose)
	if err != nil {
		if verbose {
			log.Printf("[INGEST] Browser rendering failed: %v, keeping HTTP content", err)
		}
		return httpText
	}

	rendered, err := fetch.ExtractMainText(browserHTML, contentSelectors, noiseSelectors...)
	if err != nil {
		if verbose {
			log.Printf("[INGEST] Browser content extraction failed: %v, keeping HTTP content", err)
		}
		return httpText
	}

	if verbose {
		log.Printf("[INGEST] Browser extracted text: %d chars", len(rendered))
	}
	return rendered
}
