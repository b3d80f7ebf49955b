// Package scoring computes resume match scores from an analysis report.
package scoring

import (
	"math"
	"regexp"

	"github.com/rodrigoplimafreire/ats-resume/internal/types"
)

// Section weights for the overall match score. The four weights sum to
// exactly 1.0.
const (
	searchabilityWeight = 0.30
	hardSkillsWeight    = 0.45
	softSkillsWeight    = 0.10
	recruiterTipsWeight = 0.15
)

// Color classifies a score for presentation.
type Color string

// Score colors: 90 and above is green, 75 to 89 yellow, below 75 red.
const (
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorRed    Color = "red"
)

func (c Color) String() string {
	return string(c)
}

// ComputeScore converts a report into a 0-100 match score. Each section
// contributes the fraction of its checks that are satisfied, weighted by
// section; an empty section earns full credit. Rounding is half-up, so a
// raw 97.5 becomes 98.
func ComputeScore(report types.Report) int {
	weighted := tipRatio(report.Searchability.Tips)*searchabilityWeight +
		skillRatio(report.HardSkills.Skills)*hardSkillsWeight +
		skillRatio(report.SoftSkills.Skills)*softSkillsWeight +
		tipRatio(report.RecruiterTips.Tips)*recruiterTipsWeight

	return roundHalfUp(weighted * 100)
}

// ComputeOptimizedScore scores the hypothetical state where the optimized
// resume resolves every flagged tip and contains the previously missing
// skills it now mentions. The given report is never modified; the score is
// computed on an independently constructed copy.
func ComputeOptimizedScore(report types.Report, optimizedResume string) int {
	return ComputeScore(optimizedReport(report, optimizedResume))
}

// ScoreColor returns the presentation color for a score.
func ScoreColor(score int) Color {
	switch {
	case score >= 90:
		return ColorGreen
	case score >= 75:
		return ColorYellow
	default:
		return ColorRed
	}
}

// tipRatio is the fraction of tips with status pass or info. An empty
// section earns full credit.
func tipRatio(tips []types.StatusTip) float64 {
	if len(tips) == 0 {
		return 1.0
	}

	satisfied := 0
	for _, tip := range tips {
		if tip.Status == types.StatusPass || tip.Status == types.StatusInfo {
			satisfied++
		}
	}

	return float64(satisfied) / float64(len(tips))
}

// skillRatio is the fraction of skills present in the resume, i.e. entries
// whose ResumeCount is not the -1 sentinel. An empty section earns full
// credit.
func skillRatio(skills []types.SkillEntry) float64 {
	if len(skills) == 0 {
		return 1.0
	}

	found := 0
	for _, skill := range skills {
		if skill.ResumeCount != -1 {
			found++
		}
	}

	return float64(found) / float64(len(skills))
}

// roundHalfUp rounds to the nearest integer with ties going up.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// optimizedReport builds a new report reflecting the optimized resume text:
// missing skills that appear in the text as whole words are marked found, and
// every searchability and recruiter tip is forced to pass. Each section is
// reconstructed field by field so the input report stays untouched.
func optimizedReport(report types.Report, optimizedResume string) types.Report {
	return types.Report{
		Searchability: types.TipSection{
			Issues: report.Searchability.Issues,
			Tips:   passAll(report.Searchability.Tips),
		},
		HardSkills: types.SkillSection{
			Issues: report.HardSkills.Issues,
			Skills: markFound(report.HardSkills.Skills, optimizedResume),
		},
		SoftSkills: types.SkillSection{
			Issues: report.SoftSkills.Issues,
			Skills: markFound(report.SoftSkills.Skills, optimizedResume),
		},
		RecruiterTips: types.TipSection{
			Issues: report.RecruiterTips.Issues,
			Tips:   passAll(report.RecruiterTips.Tips),
		},
	}
}

// passAll returns a copy of tips with every status forced to pass. The
// rewritten resume is assumed to resolve all flagged issues; this is a fixed
// policy, not a re-analysis.
func passAll(tips []types.StatusTip) []types.StatusTip {
	out := make([]types.StatusTip, len(tips))
	for i, tip := range tips {
		out[i] = types.StatusTip{Name: tip.Name, Status: types.StatusPass, Message: tip.Message}
	}
	return out
}

// markFound returns a copy of skills where each entry missing from the
// resume is set to the found sentinel (1) when its name occurs in text as a
// case-insensitive whole word. The exact occurrence count is not recomputed.
func markFound(skills []types.SkillEntry, text string) []types.SkillEntry {
	out := make([]types.SkillEntry, len(skills))
	for i, skill := range skills {
		entry := types.SkillEntry{Skill: skill.Skill, ResumeCount: skill.ResumeCount, JDCount: skill.JDCount}
		if entry.ResumeCount == -1 && containsWholeWord(text, entry.Skill) {
			entry.ResumeCount = 1
		}
		out[i] = entry
	}
	return out
}

// containsWholeWord reports whether word occurs in text as a whole word,
// case-insensitively. Regexp metacharacters in the word are escaped so skill
// names like "Node.js" match literally.
func containsWholeWord(text, word string) bool {
	if word == "" {
		return false
	}

	re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
	if err != nil {
		return false
	}

	return re.MatchString(text)
}
