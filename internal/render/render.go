// Package render formats scan results for the terminal.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rodrigoplimafreire/ats-resume/internal/highlight"
	"github.com/rodrigoplimafreire/ats-resume/internal/pipeline"
	"github.com/rodrigoplimafreire/ats-resume/internal/scoring"
	"github.com/rodrigoplimafreire/ats-resume/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxMessageLen truncates tip messages so lines fit the box
	maxMessageLen = 38
	// maxSkillLen truncates skill names in section listings
	maxSkillLen = 24
)

var (
	greenBadge = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("28")) // green

	yellowBadge = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("16")).
			Background(lipgloss.Color("178")) // amber

	redBadge = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("124")) // red

	passGlyphStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	failGlyphStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
	warnGlyphStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("178"))
	infoGlyphStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	keywordStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

// Printer renders scan results for the terminal
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// PrintJSON writes the result as indented JSON, bypassing all styling.
func (p *Printer) PrintJSON(result *pipeline.ScanResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(p.out, string(data))
	return err
}

// PrintResult renders the full scan report: scores, report sections, and
// the optimized resume with matched keywords emphasized.
func (p *Printer) PrintResult(result *pipeline.ScanResult) {
	if result == nil {
		return
	}

	p.printScores(result)
	p.printTipSection("SEARCHABILITY", result.Report.Searchability)
	p.printSkillSection("HARD SKILLS", result.Report.HardSkills)
	p.printSkillSection("SOFT SKILLS", result.Report.SoftSkills)
	p.printTipSection("RECRUITER TIPS", result.Report.RecruiterTips)
	p.PrintHighlighted("OPTIMIZED RESUME", result.OptimizedView)
}

// PrintHighlighted renders resume text with matched keywords emphasized.
// The text flows unboxed so nothing is truncated.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintHighlighted(title string, segments []highlight.Segment) {
	if len(segments) == 0 {
		return
	}

	p.printRule(title)
	for _, segment := range segments {
		if segment.Highlighted {
			fmt.Fprint(p.out, keywordStyle.Render(segment.Text))
			continue
		}
		fmt.Fprint(p.out, segment.Text)
	}
	fmt.Fprint(p.out, "\n")
	p.printRule("")
}

// printScores renders the before/after score box.
func (p *Printer) printScores(result *pipeline.ScanResult) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Original    %s  %s\n",
		scoreBadge(result.OriginalScore, result.OriginalColor), scoreLabel(result.OriginalColor)))
	sb.WriteString(fmt.Sprintf("Optimized   %s  %s",
		scoreBadge(result.OptimizedScore, result.OptimizedColor), scoreLabel(result.OptimizedColor)))
	p.printBox("MATCH SCORE", sb.String())
}

// printTipSection renders a named-check section (searchability, recruiter
// tips).
func (p *Printer) printTipSection(title string, section types.TipSection) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Issues found: %d\n\n", section.Issues))

	if len(section.Tips) == 0 {
		sb.WriteString("No checks reported")
	}
	for i, tip := range section.Tips {
		sb.WriteString(fmt.Sprintf("%s %s", statusGlyph(tip.Status), tip.Name))
		if tip.Message != "" {
			sb.WriteString(": " + truncate(tip.Message, maxMessageLen))
		}
		if i < len(section.Tips)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox(title, sb.String())
}

// printSkillSection renders a keyword-count section (hard or soft skills).
// A resume count of -1 means the skill was not found in the resume.
func (p *Printer) printSkillSection(title string, section types.SkillSection) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Issues found: %d\n\n", section.Issues))

	if len(section.Skills) == 0 {
		sb.WriteString("No skills reported")
	}
	for i, skill := range section.Skills {
		glyph := statusGlyph(types.StatusPass)
		resumeCount := skill.ResumeCount
		if resumeCount < 0 {
			glyph = statusGlyph(types.StatusFail)
			resumeCount = 0
		}
		sb.WriteString(fmt.Sprintf("%s %-*s resume %2d / job %2d",
			glyph, maxSkillLen, truncate(skill.Skill, maxSkillLen), resumeCount, skill.JDCount))
		if i < len(section.Skills)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox(title, sb.String())
}

// scoreBadge renders "NN/100" on the background of its color band.
func scoreBadge(score int, color scoring.Color) string {
	text := fmt.Sprintf(" %3d/100 ", score)
	switch color {
	case scoring.ColorGreen:
		return greenBadge.Render(text)
	case scoring.ColorYellow:
		return yellowBadge.Render(text)
	default:
		return redBadge.Render(text)
	}
}

func scoreLabel(color scoring.Color) string {
	switch color {
	case scoring.ColorGreen:
		return "strong match"
	case scoring.ColorYellow:
		return "moderate match"
	default:
		return "weak match"
	}
}

// statusGlyph maps a tip status to its styled marker.
func statusGlyph(status types.Status) string {
	switch status {
	case types.StatusPass:
		return passGlyphStyle.Render("✓")
	case types.StatusFail:
		return failGlyphStyle.Render("✗")
	case types.StatusWarning:
		return warnGlyphStyle.Render("!")
	default:
		return infoGlyphStyle.Render("•")
	}
}

// printBox prints a formatted box with a title and content. Padding is
// computed from the rendered cell width so styled lines stay aligned.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	p.printBoxLine(title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		p.printBoxLine(line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBoxLine(line string) {
	pad := boxWidth - 4 - lipgloss.Width(line)
	if pad < 0 {
		pad = 0
	}
	fmt.Fprintf(p.out, "│ %s%s │\n", line, strings.Repeat(" ", pad))
}

// printRule prints a horizontal rule, optionally titled.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printRule(title string) {
	if title == "" {
		fmt.Fprintln(p.out, strings.Repeat("─", boxWidth))
		return
	}
	label := "── " + title + " "
	pad := boxWidth - lipgloss.Width(label)
	if pad < 0 {
		pad = 0
	}
	fmt.Fprintln(p.out, label+strings.Repeat("─", pad))
}

// truncate shortens s to limit bytes, appending "..." when cut.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit-3] + "..."
}
