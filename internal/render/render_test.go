package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodrigoplimafreire/ats-resume/internal/highlight"
	"github.com/rodrigoplimafreire/ats-resume/internal/pipeline"
	"github.com/rodrigoplimafreire/ats-resume/internal/scoring"
	"github.com/rodrigoplimafreire/ats-resume/internal/types"
)

func sampleResult() *pipeline.ScanResult {
	optimized := "Engineer with Python and SQL."
	keywords := []string{"Python", "SQL"}

	return &pipeline.ScanResult{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
		Language:  types.LanguageEnglish,
		Report: types.Report{
			Searchability: types.TipSection{Tips: []types.StatusTip{
				{Name: "contact", Status: types.StatusPass, Message: "email and phone found"},
				{Name: "headings", Status: types.StatusFail, Message: "no summary section"},
			}},
			HardSkills: types.SkillSection{Issues: 1, Skills: []types.SkillEntry{
				{Skill: "Python", ResumeCount: -1, JDCount: 3},
				{Skill: "SQL", ResumeCount: 2, JDCount: 1},
			}},
			SoftSkills: types.SkillSection{Skills: []types.SkillEntry{
				{Skill: "Communication", ResumeCount: 1, JDCount: 1},
			}},
			RecruiterTips: types.TipSection{Tips: []types.StatusTip{
				{Name: "word count", Status: types.StatusInfo, Message: "480 words"},
				{Name: "measurable results", Status: types.StatusWarning, Message: "add metrics"},
			}},
		},
		OriginalResume:  "Engineer with SQL.",
		OptimizedResume: optimized,
		OriginalScore:   78,
		OptimizedScore:  100,
		OriginalColor:   scoring.ColorYellow,
		OptimizedColor:  scoring.ColorGreen,
		OriginalView:    highlight.Highlight("Engineer with SQL.", keywords),
		OptimizedView:   highlight.Highlight(optimized, keywords),
	}
}

func TestPrintResult(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResult(sampleResult())
	output := buf.String()

	assert.Contains(t, output, "MATCH SCORE")
	assert.Contains(t, output, "78/100")
	assert.Contains(t, output, "100/100")
	assert.Contains(t, output, "moderate match")
	assert.Contains(t, output, "strong match")

	assert.Contains(t, output, "SEARCHABILITY")
	assert.Contains(t, output, "HARD SKILLS")
	assert.Contains(t, output, "SOFT SKILLS")
	assert.Contains(t, output, "RECRUITER TIPS")

	assert.Contains(t, output, "✓ contact")
	assert.Contains(t, output, "✗ headings")
	assert.Contains(t, output, "! measurable results")
	assert.Contains(t, output, "• word count")

	assert.Contains(t, output, "✗ Python")
	assert.Contains(t, output, "✓ SQL")
	assert.Contains(t, output, "Issues found: 1")

	assert.Contains(t, output, "OPTIMIZED RESUME")
	assert.Contains(t, output, "Engineer with Python and SQL.")
}

func TestPrintResult_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResult(nil)

	assert.Empty(t, buf.String())
}

func TestPrintResult_WeakMatch(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	result := sampleResult()
	result.OriginalScore = 42
	result.OriginalColor = scoring.ColorRed

	p.PrintResult(result)

	assert.Contains(t, buf.String(), "42/100")
	assert.Contains(t, buf.String(), "weak match")
}

func TestPrintResult_EmptySections(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	result := sampleResult()
	result.Report.HardSkills = types.SkillSection{}
	result.Report.Searchability = types.TipSection{}

	p.PrintResult(result)

	assert.Contains(t, buf.String(), "No skills reported")
	assert.Contains(t, buf.String(), "No checks reported")
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	result := sampleResult()
	require.NoError(t, p.PrintJSON(result))

	// No box drawing in JSON mode
	assert.NotContains(t, buf.String(), "┌")

	var decoded pipeline.ScanResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, result.ID, decoded.ID)
	assert.Equal(t, 78, decoded.OriginalScore)
	assert.Equal(t, 100, decoded.OptimizedScore)
}

func TestPrintHighlighted(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	segments := highlight.Highlight("Built APIs in Go.", []string{"Go"})
	p.PrintHighlighted("ORIGINAL RESUME", segments)
	output := buf.String()

	assert.Contains(t, output, "ORIGINAL RESUME")
	assert.Contains(t, output, "Built APIs in Go.")
}

func TestPrintHighlighted_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintHighlighted("ORIGINAL RESUME", nil)

	assert.Empty(t, buf.String())
}

func TestPrintBox_Alignment(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResult(sampleResult())

	for _, line := range strings.Split(buf.String(), "\n") {
		if !strings.HasPrefix(line, "│") {
			continue
		}
		assert.Equal(t, boxWidth, lipgloss.Width(line), "misaligned box line: %q", line)
		assert.True(t, strings.HasSuffix(line, "│"), "unterminated box line: %q", line)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly10!", truncate("exactly10!", 10))
	assert.Equal(t, "a very ...", truncate("a very long string", 10))
}
