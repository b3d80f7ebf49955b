package ingestion

import (
	"regexp"
	"strings"

	"github.com/rodrigoplimafreire/ats-resume/internal/extract"
)

var (
	spaceRun      = regexp.MustCompile(`\s+`)
	blankLineRun  = regexp.MustCompile(`\n\n\n+`)
	bulletMarkers = []string{"- ", "* ", "• ", "· "}
)

// CleanText normalizes text content while preserving its structure: line
// endings become LF, space runs collapse, headings and bullet lists keep
// their markers, and blank-line runs shrink to at most two.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := strings.Join(cleaned, "\n")
	result = blankLineRun.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	if strings.TrimSpace(line) == "" {
		return ""
	}

	trimmed := strings.TrimLeft(line, " \t")

	// Markdown headings lose their leading indentation
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	// Bullet items keep their marker and indentation
	if isBulletLine(trimmed) {
		if indent := len(line) - len(trimmed); indent > 0 {
			return strings.Repeat(" ", indent) + trimmed
		}
		return trimmed
	}

	// Regular lines keep leading indentation and collapse inner space runs
	indent := len(line) - len(trimmed)
	collapsed := spaceRun.ReplaceAllString(strings.TrimSpace(line), " ")
	if indent > 0 {
		return strings.Repeat(" ", indent) + collapsed
	}
	return collapsed
}

func isBulletLine(trimmed string) bool {
	for _, marker := range bulletMarkers {
		if strings.HasPrefix(trimmed, marker) {
			return true
		}
	}
	return false
}

// FromFile extracts text from a job-description file (txt, md, pdf or docx),
// cleans it, and returns it with metadata.
func FromFile(path string) (string, *Metadata, error) {
	text, err := extract.FromFile(path)
	if err != nil {
		return "", nil, err
	}

	cleaned := CleanText(text)
	metadata := NewMetadata(cleaned, "")

	return cleaned, metadata, nil
}
