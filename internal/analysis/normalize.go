package analysis

import (
	"strings"

	"github.com/rodrigoplimafreire/ats-resume/internal/types"
)

// normalizeResult cleans up model output in place so downstream scoring sees
// consistent data: counts are clamped into range, statuses lowercased, blank
// skill names dropped, and nil slices replaced with empty ones.
func normalizeResult(result *types.AnalysisResult) {
	result.Report.Searchability = normalizeTips(result.Report.Searchability)
	result.Report.RecruiterTips = normalizeTips(result.Report.RecruiterTips)
	result.Report.HardSkills = normalizeSkills(result.Report.HardSkills)
	result.Report.SoftSkills = normalizeSkills(result.Report.SoftSkills)
	result.OptimizedResume = strings.TrimSpace(result.OptimizedResume)
}

func normalizeTips(section types.TipSection) types.TipSection {
	section.Issues = clampNonNegative(section.Issues)
	if section.Tips == nil {
		section.Tips = []types.StatusTip{}
	}
	for i := range section.Tips {
		section.Tips[i].Name = strings.TrimSpace(section.Tips[i].Name)
		section.Tips[i].Status = types.Status(strings.ToLower(strings.TrimSpace(string(section.Tips[i].Status))))
		section.Tips[i].Message = strings.TrimSpace(section.Tips[i].Message)
	}
	return section
}

func normalizeSkills(section types.SkillSection) types.SkillSection {
	section.Issues = clampNonNegative(section.Issues)
	if section.Skills == nil {
		section.Skills = []types.SkillEntry{}
	}
	cleaned := make([]types.SkillEntry, 0, len(section.Skills))
	for _, entry := range section.Skills {
		entry.Skill = strings.TrimSpace(entry.Skill)
		if entry.Skill == "" {
			continue
		}
		if entry.JDCount < 0 {
			entry.JDCount = 0
		}
		// -1 is the "not found in resume" sentinel; anything below it is noise.
		if entry.ResumeCount < -1 {
			entry.ResumeCount = -1
		}
		cleaned = append(cleaned, entry)
	}
	section.Skills = cleaned
	return section
}

func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
